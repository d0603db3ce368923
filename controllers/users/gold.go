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
	"github.com/bkbadhon/fulus-backend/wallet"
)

type WithdrawGoldRequest struct {
	UserID int64   `json:"userId" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// WithdrawGoldHandler converts gold holdings into cash. Amount is in SAR; the
// gram cost at the configured price is debited from the gold balance with a
// guard, then the cash lands on the main balance.
func WithdrawGoldHandler(w http.ResponseWriter, r *http.Request) {
	var req WithdrawGoldRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	price := config.Active().GoldPricePerGram
	grams := wallet.GoldGramsFor(req.Amount, price)
	if grams <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid amount"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("user_id = ? AND gold_balance >= ?", req.UserID, grams).
			Updates(map[string]interface{}{
				"gold_balance": gorm.Expr("gold_balance - ?", grams),
				"balance":      gorm.Expr("balance + ?", req.Amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			var user models.User
			if err := tx.Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errUserNotFound
				}
				return err
			}
			return errInsufficientBalance
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		case errors.Is(err, errInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient gold balance"})
		default:
			log.Printf("[withdraw-gold] userId %d amount %.2f: %v", req.UserID, req.Amount, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":          true,
		"message":          "Gold withdrawn successfully",
		"amount":           req.Amount,
		"grams":            grams,
		"goldPricePerGram": price,
	})
}
