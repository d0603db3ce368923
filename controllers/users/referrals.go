package users

import (
	"log"
	"net/http"

	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/referral"
	"github.com/bkbadhon/fulus-backend/utils"
)

// ReferralsHandler resolves the full downward referral tree with generation
// labels and the total descendant count.
func ReferralsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	idx, err := referral.LoadIndex(database.DB)
	if err != nil {
		log.Printf("[referrals] load index: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	tree := idx.BuildTree(userID, referral.MaxDepth)
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"userId":         userID,
		"totalReferrals": tree.TotalCount,
		"referrals":      tree.Referrals,
	})
}

// GenerationsHandler walks the sponsor chain live and returns the g1..g10
// ancestor map. The frozen signup snapshot is deliberately not consulted.
func GenerationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	idx, err := referral.LoadIndex(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	chain := idx.Ancestry(userID, referral.MaxDepth)
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"generations": referral.AncestryMap(chain),
	})
}

// Gen1RefTotalsHandler reports, for each direct referral, the size of that
// branch's full subtree. This is the team-summary view rank tiers are judged
// against.
func Gen1RefTotalsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	idx, err := referral.LoadIndex(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	gen1 := idx.Children(userID)
	gen1Data := make([]map[string]interface{}, 0, len(gen1))
	for _, g1 := range gen1 {
		sub := idx.BuildTree(g1.UserID, referral.MaxDepth)
		gen1Data = append(gen1Data, map[string]interface{}{
			"userId":         g1.UserID,
			"name":           g1.Name,
			"phone":          g1.Phone,
			"totalReferrals": sub.TotalCount,
		})
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"userId":   userID,
		"gen1Data": gen1Data,
	})
}

// Gen1RefCountHandler reports, for each direct referral, only their direct
// referral count.
func Gen1RefCountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	idx, err := referral.LoadIndex(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	gen1 := idx.Children(userID)
	details := make([]map[string]interface{}, 0, len(gen1))
	for _, g1 := range gen1 {
		details = append(details, map[string]interface{}{
			"userId":       g1.UserID,
			"name":         g1.Name,
			"phone":        g1.Phone,
			"gen1RefCount": len(idx.Children(g1.UserID)),
		})
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"userId":      userID,
		"totalGen1":   len(gen1),
		"gen1Details": details,
	})
}
