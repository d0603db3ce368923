package admins

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
	"github.com/bkbadhon/fulus-backend/wallet"
)

var errStateConflict = errors.New("request is not in the expected state")

// pathID parses the {id} path variable, writing the 400 itself.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ListWithdrawsHandler returns all withdraw requests, optionally filtered by
// ?status=, newest first.
func ListWithdrawsHandler(w http.ResponseWriter, r *http.Request) {
	q := database.DB.Order("created_at DESC")
	if status := r.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	var withdraws []models.Withdraw
	if err := q.Find(&withdraws).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"withdraws": withdraws,
	})
}

type AcceptWithdrawRequest struct {
	AgentID int64 `json:"agentId" validate:"required"`
}

// AcceptWithdrawHandler lets an agent take a pending withdraw. The guarded
// status flip means only one agent can win the request.
func AcceptWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req AcceptWithdrawRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	res := database.DB.Model(&models.Withdraw{}).
		Where("id = ? AND status = ?", id, "Pending").
		Updates(map[string]interface{}{
			"status":   "Processing",
			"agent_id": req.AgentID,
		})
	if res.Error != nil {
		log.Printf("[admin-withdraw] accept %d: %v", id, res.Error)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if res.RowsAffected != 1 {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdraw is not pending"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Withdraw accepted"})
}

// CompleteWithdrawHandler settles a processing withdraw: the handling agent's
// float receives the paid-out amount plus the commission, and the request
// flips to Success. Idempotent via the guarded status transition.
func CompleteWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var record models.Withdraw
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}
		if record.Status != "Processing" || record.AgentID == nil {
			return errStateConflict
		}

		commission := wallet.Charge(record.FinalAmount, config.Active().WithdrawCommissionRate)

		res := tx.Model(&models.Withdraw{}).
			Where("id = ? AND status = ?", record.ID, "Processing").
			Updates(map[string]interface{}{
				"status":     "Success",
				"commission": commission,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errStateConflict
		}

		record.Status = "Success"
		record.Commission = commission
		return tx.Model(&models.User{}).Where("user_id = ?", *record.AgentID).
			UpdateColumn("agent_balance", gorm.Expr("agent_balance + ?", record.FinalAmount+commission)).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Withdraw not found"})
		case errors.Is(err, errStateConflict):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdraw is not processing"})
		default:
			log.Printf("[admin-withdraw] complete %d: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Withdraw completed",
		"withdraw": record,
	})
}

// RejectWithdrawHandler cancels a pending or processing withdraw and refunds
// the escrowed amount. The fee charged at request time is not returned.
func RejectWithdrawHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var record models.Withdraw
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&record, id).Error; err != nil {
			return err
		}
		if record.Status != "Pending" && record.Status != "Processing" {
			return errStateConflict
		}

		res := tx.Model(&models.Withdraw{}).
			Where("id = ? AND status IN ?", record.ID, []string{"Pending", "Processing"}).
			Update("status", "rejected")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return errStateConflict
		}

		record.Status = "rejected"
		return tx.Model(&models.User{}).Where("user_id = ?", record.UserID).
			UpdateColumn("balance", gorm.Expr("balance + ?", record.Amount)).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Withdraw not found"})
		case errors.Is(err, errStateConflict):
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Withdraw already settled"})
		default:
			log.Printf("[admin-withdraw] reject %d: %v", id, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Withdraw rejected and amount refunded",
		"refunded": record.Amount,
	})
}
