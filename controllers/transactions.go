package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/utils"
)

type historyEntry struct {
	Kind      string    `json:"kind"`
	Amount    float64   `json:"amount"`
	Charge    float64   `json:"charge,omitempty"`
	Status    string    `json:"status,omitempty"`
	Flow      string    `json:"flow,omitempty"`
	PeerID    int64     `json:"peerId,omitempty"`
	OrderID   string    `json:"orderId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionsHandler merges a user's deposits, withdraws and peer transfers
// into one history, newest first.
func TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["userId"]
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid userId"})
		return
	}
	db := database.DB

	var deposits []models.Deposit
	var withdraws []models.Withdraw
	var peer []models.Transaction
	if err := db.Where("user_id = ?", userID).Find(&deposits).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := db.Where("user_id = ?", userID).Find(&withdraws).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if err := db.Where("user_id = ?", userID).Find(&peer).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	entries := make([]historyEntry, 0, len(deposits)+len(withdraws)+len(peer))
	for _, d := range deposits {
		entries = append(entries, historyEntry{
			Kind: "deposit", Amount: d.Amount, Status: d.Status, CreatedAt: d.CreatedAt,
		})
	}
	for _, wd := range withdraws {
		entries = append(entries, historyEntry{
			Kind: "withdraw", Amount: wd.Amount, Charge: wd.Charge, Status: wd.Status, CreatedAt: wd.CreatedAt,
		})
	}
	for _, t := range peer {
		entries = append(entries, historyEntry{
			Kind: "transfer", Amount: t.Amount, Charge: t.Charge, Flow: t.Flow,
			PeerID: t.PeerID, OrderID: t.OrderID, CreatedAt: t.CreatedAt,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"userId":       userID,
		"transactions": entries,
	})
}
