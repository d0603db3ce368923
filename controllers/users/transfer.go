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

var errSenderNotFound = errors.New("sender not found")

type TransferRequest struct {
	FromUserID int64   `json:"fromUserId" validate:"required"`
	ToUserID   int64   `json:"toUserId" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
}

// TransferHandler moves funds from an agent's float to a user's balance. The
// debit is a guarded update, so a race between two transfers cannot push the
// agent balance negative.
func TransferHandler(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.FromUserID == req.ToUserID {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cannot transfer to self"})
		return
	}

	record := models.Transfer{FromUserID: req.FromUserID, ToUserID: req.ToUserID, Amount: req.Amount}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var receiver models.User
		if err := tx.Where("user_id = ?", req.ToUserID).First(&receiver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		res := tx.Model(&models.User{}).
			Where("user_id = ? AND agent_balance >= ?", req.FromUserID, req.Amount).
			UpdateColumn("agent_balance", gorm.Expr("agent_balance - ?", req.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			var sender models.User
			if err := tx.Where("user_id = ?", req.FromUserID).First(&sender).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errSenderNotFound
				}
				return err
			}
			return errInsufficientBalance
		}

		if err := tx.Model(&models.User{}).Where("user_id = ?", req.ToUserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", req.Amount)).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Receiver not found"})
		case errors.Is(err, errSenderNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Sender not found"})
		case errors.Is(err, errInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient agent balance"})
		default:
			log.Printf("[transfer] %d -> %d amount %.2f: %v", req.FromUserID, req.ToUserID, req.Amount, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Transfer successful",
		"transfer": record,
	})
}

type SendMoneyRequest struct {
	FromUserID int64   `json:"fromUserId" validate:"required"`
	ToUserID   int64   `json:"toUserId" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Message    *string `json:"message"`
}

// SendMoneyHandler is the peer-to-peer balance transfer. The sender pays the
// amount plus a percentage fee, the receiver gets the amount, and both sides
// of the movement land in the audit log under one order id.
func SendMoneyHandler(w http.ResponseWriter, r *http.Request) {
	var req SendMoneyRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.FromUserID == req.ToUserID {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cannot send money to self"})
		return
	}

	charge := wallet.Charge(req.Amount, config.Active().SendMoneyFeePercent)
	totalDeduction := wallet.Round2(req.Amount + charge)
	orderID := utils.GenerateOrderID(req.FromUserID)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var receiver models.User
		if err := tx.Where("user_id = ?", req.ToUserID).First(&receiver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}

		res := tx.Model(&models.User{}).
			Where("user_id = ? AND balance >= ?", req.FromUserID, totalDeduction).
			Updates(map[string]interface{}{
				"balance":       gorm.Expr("balance - ?", totalDeduction),
				"charge_amount": gorm.Expr("charge_amount + ?", charge),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			var sender models.User
			if err := tx.Where("user_id = ?", req.FromUserID).First(&sender).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errSenderNotFound
				}
				return err
			}
			return errInsufficientBalance
		}

		if err := tx.Model(&models.User{}).Where("user_id = ?", req.ToUserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", req.Amount)).Error; err != nil {
			return err
		}

		entries := []models.Transaction{
			{UserID: req.FromUserID, PeerID: req.ToUserID, Amount: req.Amount, Charge: charge,
				Flow: "send", OrderID: orderID, Message: req.Message},
			{UserID: req.ToUserID, PeerID: req.FromUserID, Amount: req.Amount,
				Flow: "receive", OrderID: orderID + "R", Message: req.Message},
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Receiver not found"})
		case errors.Is(err, errSenderNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Sender not found"})
		case errors.Is(err, errInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance"})
		default:
			log.Printf("[send-money] %d -> %d amount %.2f: %v", req.FromUserID, req.ToUserID, req.Amount, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Money sent successfully",
		"orderId": orderID,
		"amount":  req.Amount,
		"charge":  charge,
	})
}
