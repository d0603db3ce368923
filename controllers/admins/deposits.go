package admins

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
	"github.com/bkbadhon/fulus-backend/wallet"
)

var errInsufficientAgentBalance = errors.New("insufficient agent balance")

// ListDepositsHandler returns all deposit claims, optionally filtered by
// ?status=, newest first.
func ListDepositsHandler(w http.ResponseWriter, r *http.Request) {
	q := database.DB.Order("created_at DESC")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var deposits []models.Deposit
	if err := q.Find(&deposits).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"deposits": deposits,
	})
}

type AcceptDepositRequest struct {
	AgentID int64 `json:"agentId" validate:"required"`
}

// AcceptDepositHandler lets an agent commit to a pending deposit claim. No
// funds move until the claim is completed.
func AcceptDepositHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req AcceptDepositRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	res := database.DB.Model(&models.Deposit{}).
		Where("id = ? AND status = ?", id, "pending").
		Updates(map[string]interface{}{
			"status":      "accepted",
			"accepted_by": req.AgentID,
		})
	if res.Error != nil {
		log.Printf("[admin-deposit] accept %d: %v", id, res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected != 1 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Deposit is not pending"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Deposit accepted"})
}

// CompleteDepositHandler settles an accepted deposit: the committed agent is
// debited with a guard, the user is credited, and the agent earns the deposit
// commission. The agent float is re-checked here because time may have passed
// since acceptance.
func CompleteDepositHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var record models.Deposit
	var commission float64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, id).Error; err != nil {
			return err
		}
		if record.Status != "accepted" || record.AcceptedBy == nil {
			return errStateConflict
		}

		res := tx.Model(&models.User{}).
			Where("user_id = ? AND agent_balance >= ?", *record.AcceptedBy, record.Amount).
			UpdateColumn("agent_balance", gorm.Expr("agent_balance - ?", record.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errInsufficientAgentBalance
		}

		if err := tx.Model(&models.User{}).Where("user_id = ?", record.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", record.Amount)).Error; err != nil {
			return err
		}

		commission = wallet.Charge(record.Amount, config.Active().DepositCommissionRate)
		if err := tx.Model(&models.User{}).Where("user_id = ?", *record.AcceptedBy).
			UpdateColumn("agent_balance", gorm.Expr("agent_balance + ?", commission)).Error; err != nil {
			return err
		}

		res = tx.Model(&models.Deposit{}).
			Where("id = ? AND status = ?", record.ID, "accepted").
			Update("status", "success")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errStateConflict
		}
		record.Status = "success"
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Deposit not found"})
		case errors.Is(err, errStateConflict):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Deposit is not accepted"})
		case errors.Is(err, errInsufficientAgentBalance):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient agent balance"})
		default:
			log.Printf("[admin-deposit] complete %d: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Deposit completed",
		"deposit":    record,
		"commission": commission,
	})
}
