package users

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
)

var (
	errAlreadyActive = errors.New("already active")
	errPayerNotFound = errors.New("payer not found")
)

type ActivateRequest struct {
	UserID int64 `json:"userId" validate:"required"`
	// PayerID, when set, is the sponsor or agent covering the fee. Defaults to
	// the account being activated.
	PayerID *int64 `json:"payerId"`
}

// ActivateHandler flips an account to active after charging the one-time
// activation fee. The fee debit and the status flip commit together; an
// already-active account is never charged twice.
func ActivateHandler(w http.ResponseWriter, r *http.Request) {
	var req ActivateRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	payerID := req.UserID
	if req.PayerID != nil {
		payerID = *req.PayerID
	}
	fee := config.Active().ActivationFee

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		if user.Active() {
			return errAlreadyActive
		}

		res := tx.Model(&models.User{}).
			Where("user_id = ? AND balance >= ?", payerID, fee).
			UpdateColumn("balance", gorm.Expr("balance - ?", fee))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			var payer models.User
			if err := tx.Where("user_id = ?", payerID).First(&payer).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errPayerNotFound
				}
				return err
			}
			return errInsufficientBalance
		}

		return tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Update("status", "active").Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		case errors.Is(err, errAlreadyActive):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Account already active"})
		case errors.Is(err, errPayerNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Payer not found"})
		case errors.Is(err, errInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance for activation"})
		default:
			log.Printf("[activate] userId %d payer %d: %v", req.UserID, payerID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       "Account activated",
		"userId":        req.UserID,
		"paidBy":        payerID,
		"activationFee": fee,
	})
}
