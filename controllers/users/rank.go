package users

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/referral"
	"github.com/bkbadhon/fulus-backend/utils"
	"github.com/bkbadhon/fulus-backend/wallet"
)

var errRankIncomplete = errors.New("rank requirements not met")

func rewardKey(rank string) string {
	return strings.ToLower(rank) + "_all"
}

type rankStatus struct {
	Rank      string  `json:"rank"`
	Required  [3]int  `json:"required"`
	Actual    []int   `json:"actual"`
	Percent   int     `json:"percent"`
	Complete  bool    `json:"complete"`
	Collected bool    `json:"collected"`
	Sar       float64 `json:"sar"`
	Gold      float64 `json:"gold"`
}

// RankRewardsHandler scores every rank tier against the user's three largest
// gen1 branches and reports progress, completion and claim state.
func RankRewardsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(w, r)
	if !ok {
		return
	}
	db := database.DB
	idx, err := referral.LoadIndex(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if _, ok := idx.Lookup(userID); !ok {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}
	sizes := idx.Gen1SubtreeSizes(userID)

	var claims []models.RankBonus
	if err := db.Where("user_id = ?", userID).Find(&claims).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	claimed := make(map[string]bool, len(claims))
	for _, c := range claims {
		claimed[c.RewardKey] = true
	}

	tiers := config.Active().RankTiers
	statuses := make([]rankStatus, 0, len(tiers))
	for _, tier := range tiers {
		percent, complete := wallet.RankProgress(sizes, tier.Required)
		statuses = append(statuses, rankStatus{
			Rank:      tier.Name,
			Required:  tier.Required,
			Actual:    sizes,
			Percent:   percent,
			Complete:  complete,
			Collected: claimed[rewardKey(tier.Name)],
			Sar:       tier.Sar,
			Gold:      tier.Gold,
		})
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"userId":  userID,
		"ranks":   statuses,
	})
}

type CollectRankRewardRequest struct {
	UserID int64  `json:"userId" validate:"required"`
	Rank   string `json:"rank" validate:"required"`
}

// CollectRankRewardHandler pays out a completed rank tier once. The claim row
// insert and the SAR plus gold credits share one DB transaction, with the
// unique (userId, rewardKey) index blocking a second payout.
func CollectRankRewardHandler(w http.ResponseWriter, r *http.Request) {
	var req CollectRankRewardRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	tiers := config.Active().RankTiers
	var tier *config.RankTier
	for i := range tiers {
		if strings.EqualFold(tiers[i].Name, req.Rank) {
			tier = &tiers[i]
			break
		}
	}
	if tier == nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown rank"})
		return
	}

	db := database.DB
	idx, err := referral.LoadIndex(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	if _, ok := idx.Lookup(req.UserID); !ok {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	errAlreadyClaimed := errors.New("already_claimed")

	err = db.Transaction(func(tx *gorm.DB) error {
		_, complete := wallet.RankProgress(idx.Gen1SubtreeSizes(req.UserID), tier.Required)
		if !complete {
			return errRankIncomplete
		}

		claim := models.RankBonus{
			UserID:      req.UserID,
			RewardKey:   rewardKey(tier.Name),
			SarAmount:   tier.Sar,
			GoldAmount:  tier.Gold,
			CollectedAt: time.Now(),
		}
		if err := tx.Create(&claim).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyClaimed
			}
			return err
		}

		return tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Updates(map[string]interface{}{
				"balance":      gorm.Expr("balance + ?", tier.Sar),
				"gold_balance": gorm.Expr("gold_balance + ?", tier.Gold),
			}).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, errRankIncomplete):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Rank requirements not met"})
		case errors.Is(err, errAlreadyClaimed):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Reward already collected"})
		default:
			log.Printf("[rank] collect %s for %d: %v", req.Rank, req.UserID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Rank reward collected",
		"rank":    tier.Name,
		"sar":     tier.Sar,
		"gold":    tier.Gold,
	})
}
