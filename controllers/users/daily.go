package users

import (
	"errors"
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
	"github.com/bkbadhon/fulus-backend/wallet"
)

var errCollectedToday = errors.New("already collected today")

func today() string {
	return time.Now().Format("2006-01-02")
}

type DailyCollectRequest struct {
	UserID int64 `json:"userId" validate:"required"`
}

// CollectDailySavingHandler claims the fixed daily savings amount. The unique
// (user, date) row in the log makes the claim once per calendar day.
func CollectDailySavingHandler(w http.ResponseWriter, r *http.Request) {
	var req DailyCollectRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	amount := config.Active().SavingsDist.Rate("own")
	date := today()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.DailySaving{UserID: req.UserID, Date: date, Amount: amount}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errCollectedToday
			}
			return err
		}
		res := tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Updates(map[string]interface{}{
				"savings":                 gorm.Expr("savings + ?", amount),
				"total_savings_collected": gorm.Expr("total_savings_collected + ?", amount),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errUserNotFound
		}
		return nil
	})
	if err != nil {
		writeDailyErr(w, err, "[daily-saving]", req.UserID)
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daily saving collected",
		"date":    date,
		"amount":  amount,
	})
}

// ListDailySavingsHandler returns the user's savings collection log.
func ListDailySavingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	var entries []models.DailySaving
	if err := database.DB.Where("user_id = ?", userID).
		Order("date DESC").Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"savings": entries,
	})
}

// CollectDailyIncomeHandler claims the fixed daily income amount, once per
// calendar day, crediting both the income bucket and the spendable balance.
func CollectDailyIncomeHandler(w http.ResponseWriter, r *http.Request) {
	var req DailyCollectRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	amount := config.Active().DailyIncomeDist.Rate("own")
	date := today()

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.DailyIncomeCollect{UserID: req.UserID, Date: date, Amount: amount, CollectedAt: time.Now()}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errCollectedToday
			}
			return err
		}
		res := tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Updates(map[string]interface{}{
				"daily_income":       gorm.Expr("daily_income + ?", amount),
				"balance":            gorm.Expr("balance + ?", amount),
				"last_daily_collect": date,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errUserNotFound
		}
		return nil
	})
	if err != nil {
		writeDailyErr(w, err, "[daily-income]", req.UserID)
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Daily income collected",
		"date":    date,
		"amount":  amount,
	})
}

// CollectGenerationHandler claims the weekly generation commission. Only
// allowed on Fridays; moves the accrued generation bucket onto the balance.
func CollectGenerationHandler(w http.ResponseWriter, r *http.Request) {
	var req DailyCollectRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	if time.Now().Weekday() != time.Friday {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Generation commission is collectable on Fridays only"})
		return
	}

	date := today()
	var amount float64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		amount = wallet.Round2(user.GenerationBonus)
		if amount <= 0 {
			return errInsufficientBalance
		}

		entry := models.GenerationCollect{UserID: req.UserID, Date: date, Amount: amount, CollectedAt: time.Now()}
		if err := tx.Create(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errCollectedToday
			}
			return err
		}
		return tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Updates(map[string]interface{}{
				"generation_bonus": 0,
				"balance":          gorm.Expr("balance + ?", amount),
			}).Error
	})
	if err != nil {
		if errors.Is(err, errInsufficientBalance) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No generation bonus to collect"})
			return
		}
		writeDailyErr(w, err, "[generation-collect]", req.UserID)
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Generation commission collected",
		"date":    date,
		"amount":  amount,
	})
}

// WithdrawSavingsHandler is the monthly savings payout, allowed only on the
// first day of the month: 75% of the savings bucket moves to the balance and
// the remaining 25% stays in savings for the next cycle.
func WithdrawSavingsHandler(w http.ResponseWriter, r *http.Request) {
	var req DailyCollectRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	if time.Now().Day() != 1 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Savings are withdrawable on the 1st of the month only"})
		return
	}

	var payout, carried float64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errUserNotFound
			}
			return err
		}
		if user.Savings <= 0 {
			return errInsufficientBalance
		}

		payout = wallet.Round2(user.Savings * 0.75)
		carried = wallet.Round2(user.Savings - payout)

		return tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Updates(map[string]interface{}{
				"savings": carried,
				"balance": gorm.Expr("balance + ?", payout),
			}).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		case errors.Is(err, errInsufficientBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No savings to withdraw"})
		default:
			log.Printf("[savings-withdraw] userId %d: %v", req.UserID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Savings withdrawn",
		"payout":  payout,
		"carried": carried,
	})
}

func writeDailyErr(w http.ResponseWriter, err error, tag string, userID int64) {
	switch {
	case errors.Is(err, errCollectedToday):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Already collected today"})
	case errors.Is(err, errUserNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
	default:
		log.Printf("%s userId %d: %v", tag, userID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
