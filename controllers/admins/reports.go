package admins

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/referral"
	"github.com/bkbadhon/fulus-backend/utils"
	"github.com/bkbadhon/fulus-backend/wallet"
)

// highestRank returns the name of the best fully-met tier for the given gen1
// subtree sizes, or "" when none is met. Tiers are configured in ascending
// order.
func highestRank(sizes []int, tiers []config.RankTier) string {
	best := ""
	for _, tier := range tiers {
		if _, complete := wallet.RankProgress(sizes, tier.Required); complete {
			best = tier.Name
		}
	}
	return best
}

// ReferralReportHandler builds the network-wide team report from a single
// user scan: per user, the direct referral count and the full team size.
func ReferralReportHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := referral.LoadIndex(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	rows := make([]map[string]interface{}, 0)
	for _, u := range idx.Users() {
		tree := idx.BuildTree(u.UserID, referral.MaxDepth)
		rows = append(rows, map[string]interface{}{
			"userId":         u.UserID,
			"name":           u.Name,
			"phone":          u.Phone,
			"status":         u.Status,
			"directCount":    len(idx.Children(u.UserID)),
			"totalReferrals": tree.TotalCount,
		})
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  rows,
	})
}

type leaderboardEntry struct {
	UserID         int64  `json:"userId"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Rank           int    `json:"rank"`
	TotalReferrals int    `json:"totalReferrals"`
	Tier           string `json:"tier,omitempty"`
}

// leaderboard orders every user by total team size, largest first, and assigns
// 1-based positions. Ties break on the lower userId. Tier carries the best
// fully-met reward tier, when any.
func leaderboard(idx *referral.Index, tiers []config.RankTier) []leaderboardEntry {
	users := idx.Users()
	entries := make([]leaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, leaderboardEntry{
			UserID:         u.UserID,
			Name:           u.Name,
			Phone:          u.Phone,
			TotalReferrals: idx.BuildTree(u.UserID, referral.MaxDepth).TotalCount,
			Tier:           highestRank(idx.Gen1SubtreeSizes(u.UserID), tiers),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalReferrals != entries[j].TotalReferrals {
			return entries[i].TotalReferrals > entries[j].TotalReferrals
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// UsersWithRankHandler lists every user with their leaderboard position by
// total referral tree size.
func UsersWithRankHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := referral.LoadIndex(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   leaderboard(idx, config.Active().RankTiers),
	})
}

// UserRankHandler reports a single user's leaderboard position.
func UserRankHandler(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["userId"]
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid userId"})
		return
	}

	idx, err := referral.LoadIndex(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if _, ok := idx.Lookup(userID); !ok {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	for _, entry := range leaderboard(idx, config.Active().RankTiers) {
		if entry.UserID != userID {
			continue
		}
		utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
			"success":        true,
			"userId":         userID,
			"rank":           entry.Rank,
			"totalReferrals": entry.TotalReferrals,
			"tier":           entry.Tier,
			"gen1Top3":       idx.Gen1SubtreeSizes(userID),
		})
		return
	}
}
