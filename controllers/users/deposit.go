package users

import (
	"log"
	"net/http"

	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
)

type DepositRequest struct {
	UserID        int64   `json:"userId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	TransactionID string  `json:"transactionId" validate:"required"`
	AgentNumber   string  `json:"agentNumber" validate:"required"`
}

// DepositHandler records a deposit claim. No money moves here; funds settle
// only when an agent marks the claim success.
func DepositHandler(w http.ResponseWriter, r *http.Request) {
	var req DepositRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	var user models.User
	if err := database.DB.Where("user_id = ?", req.UserID).First(&user).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	record := models.Deposit{
		UserID:        req.UserID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		AgentNumber:   req.AgentNumber,
		Status:        "pending",
	}
	if err := database.DB.Create(&record).Error; err != nil {
		log.Printf("[deposit] create userId %d: %v", req.UserID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteRaw(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Deposit request submitted",
		"deposit": record,
	})
}

// ListDepositsHandler returns the user's deposit history, newest first.
func ListDepositsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	var deposits []models.Deposit
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&deposits).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"deposits": deposits,
	})
}
