package users

import (
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
	"github.com/bkbadhon/fulus-backend/wallet"
)

var (
	errInsufficientBalance = errors.New("insufficient balance")
	errPinNotSet           = errors.New("transaction pin not set")
	errInvalidPin          = errors.New("invalid transaction pin")
	errUserNotFound        = errors.New("user not found")
)

type WithdrawRequest struct {
	UserID          int64   `json:"userId" validate:"required"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Method          string  `json:"method" validate:"required"`
	AccountNumber   string  `json:"accountNumber"`
	DeliveryAddress string  `json:"deliveryAddress"`
	Pin             string  `json:"pin" validate:"required"`
}

// WithdrawHandler escrows a cash withdraw. The PIN is checked against the
// stored bcrypt hash, the fee plus amount leaves the balance in one guarded
// update, and the legacy sub-account pools are drained by the amount. The
// request then waits in Pending for an agent.
func WithdrawHandler(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	rates := config.Active()
	charge := wallet.Charge(req.Amount, rates.WithdrawFeePercent)
	totalDeduction := wallet.Round2(req.Amount + charge)

	record := models.Withdraw{
		UserID:          req.UserID,
		Method:          req.Method,
		AccountNumber:   req.AccountNumber,
		DeliveryAddress: req.DeliveryAddress,
		Amount:          req.Amount,
		Charge:          charge,
		FinalAmount:     req.Amount,
		Status:          "Pending",
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		if user.TransactionPin == nil {
			return errPinNotSet
		}
		if bcrypt.CompareHashAndPassword([]byte(*user.TransactionPin), []byte(req.Pin)) != nil {
			return errInvalidPin
		}
		if user.Balance < totalDeduction {
			return errInsufficientBalance
		}

		drained := wallet.Drain(wallet.Pools{
			Savings:     user.Savings,
			DailyIncome: user.DailyIncome,
			Generation:  user.GenerationBonus,
		}, req.Amount)

		res := tx.Model(&models.User{}).
			Where("user_id = ? AND balance >= ?", req.UserID, totalDeduction).
			Updates(map[string]interface{}{
				"balance":          gorm.Expr("balance - ?", totalDeduction),
				"charge_amount":    gorm.Expr("charge_amount + ?", charge),
				"savings":          drained.Savings,
				"daily_income":     drained.DailyIncome,
				"generation_bonus": drained.Generation,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errInsufficientBalance
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		case errors.Is(err, errPinNotSet):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Transaction PIN not set"})
		case errors.Is(err, errInvalidPin):
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Invalid transaction PIN"})
		case errors.Is(err, errInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance"})
		default:
			log.Printf("[withdraw] userId %d amount %.2f: %v", req.UserID, req.Amount, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusCreated, map[string]interface{}{
		"success":        true,
		"message":        "Withdraw request submitted",
		"withdraw":       record,
		"totalDeduction": totalDeduction,
	})
}

// MyWithdrawsHandler returns the authenticated user's withdraw history.
func MyWithdrawsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	var withdraws []models.Withdraw
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&withdraws).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"withdraws": withdraws,
	})
}

// ListWithdrawsHandler returns the user's withdraw history, newest first.
func ListWithdrawsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	var withdraws []models.Withdraw
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&withdraws).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"withdraws": withdraws,
	})
}

type WithdrawSarRequest struct {
	UserID int64   `json:"userId" validate:"required"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// WithdrawSarHandler is the legacy pool-only withdraw: it drains the savings,
// daily-income and generation buckets by amount without touching the main
// balance and without an agent round-trip.
func WithdrawSarHandler(w http.ResponseWriter, r *http.Request) {
	var req WithdrawSarRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var drained wallet.Pools
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		drained = wallet.Drain(wallet.Pools{
			Savings:     user.Savings,
			DailyIncome: user.DailyIncome,
			Generation:  user.GenerationBonus,
		}, req.Amount)

		return tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Updates(map[string]interface{}{
				"savings":          drained.Savings,
				"daily_income":     drained.DailyIncome,
				"generation_bonus": drained.Generation,
			}).Error
	})
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
			return
		}
		log.Printf("[withdraw-sar] userId %d: %v", req.UserID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"message":         "Withdraw successful",
		"savings":         drained.Savings,
		"dailyIncome":     drained.DailyIncome,
		"generationBonus": drained.Generation,
	})
}
