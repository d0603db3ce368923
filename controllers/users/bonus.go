package users

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/database"
	"github.com/bkbadhon/fulus-backend/middleware"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/referral"
	"github.com/bkbadhon/fulus-backend/utils"
)

// BonusPreviewHandler shows the per-generation entitlement preview for a
// user's live ancestor chain.
func BonusPreviewHandler(w http.ResponseWriter, r *http.Request) {
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
	rates := config.Active()

	generationBonus := make(map[string]float64, len(chain))
	for _, link := range chain {
		generationBonus[link.Generation] = rates.View.Rate(link.Generation)
	}
	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"userId":          userID,
		"generations":     referral.AncestryMap(chain),
		"generationBonus": generationBonus,
	})
}

type generationEntitlement struct {
	FromUserID   int64   `json:"fromUserId"`
	Name         string  `json:"name"`
	Generation   string  `json:"generation"`
	DailyBonus   float64 `json:"dailyBonus"`
	GenBonus     float64 `json:"genBonus"`
	SavingsBonus float64 `json:"savingsBonus"`
	InstantGold  float64 `json:"instantGold"`
	Collected    bool    `json:"collected"`
}

// BonusByGenerationHandler lists every member of the user's referral tree
// with the bonus each one entitles and whether it has been collected.
func BonusByGenerationHandler(w http.ResponseWriter, r *http.Request) {
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
	tree := idx.BuildTree(userID, referral.MaxDepth)

	var records []models.BonusCollection
	if err := db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}
	collected := make(map[string]bool, len(records))
	for _, rec := range records {
		if rec.BonusCollect {
			collected[fmt.Sprintf("%d/%s", rec.FromUserID, rec.Generation)] = true
		}
	}

	rates := config.Active()
	var entitlements []generationEntitlement
	var walk func(nodes []*referral.Node)
	walk = func(nodes []*referral.Node) {
		for _, n := range nodes {
			entitlements = append(entitlements, generationEntitlement{
				FromUserID:   n.UserID,
				Name:         n.Name,
				Generation:   n.Generation,
				DailyBonus:   rates.Daily.Rate(n.Generation),
				GenBonus:     rates.Generation.Rate(n.Generation),
				SavingsBonus: rates.Savings.Rate(n.Generation),
				InstantGold:  rates.InstantGold.Rate(n.Generation),
				Collected:    collected[fmt.Sprintf("%d/%s", n.UserID, n.Generation)],
			})
			walk(n.Referrals)
		}
	}
	walk(tree.Referrals)

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"userId":         userID,
		"totalReferrals": tree.TotalCount,
		"bonuses":        entitlements,
	})
}

type CollectBonusRequest struct {
	UserID     int64  `json:"userId" validate:"required"`
	FromUserID int64  `json:"fromUserId" validate:"required"`
	Generation string `json:"generation" validate:"required"`
}

// CollectBonusHandler claims the bonus a tree member entitles. At-most-once
// delivery rests on the unique (userId, fromUserId, generation) index: the
// record insert and all balance increments share one DB transaction, so two
// racing claims cannot both pay out.
func CollectBonusHandler(w http.ResponseWriter, r *http.Request) {
	var req CollectBonusRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	gen, ok := parseGeneration(req.Generation)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid generation"})
		return
	}
	// Canonical label: "gen01" and "gen1" must key the same ledger row.
	genLabel := fmt.Sprintf("gen%d", gen)

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

	// The claimed generation must match the live sponsor chain: the recipient
	// has to be exactly the gen-th ancestor of the source user.
	chain := idx.Ancestry(req.FromUserID, referral.MaxDepth)
	if gen > len(chain) || chain[gen-1].UserID != req.UserID {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No such generation relationship"})
		return
	}

	rates := config.Active()
	daily := rates.Daily.Rate(genLabel)
	genBonus := rates.Generation.Rate(genLabel)
	savings := rates.Savings.Rate(genLabel)
	gold := rates.InstantGold.Rate(genLabel)
	memberCount := len(idx.Children(req.UserID))

	errAlreadyCollected := errors.New("already_collected")

	if err := db.Transaction(func(tx *gorm.DB) error {
		record := models.BonusCollection{
			UserID:       req.UserID,
			FromUserID:   req.FromUserID,
			Generation:   genLabel,
			BonusCollect: true,
			DailyBonus:   daily,
			GenBonus:     genBonus,
			SavingsBonus: savings,
			InstantGold:  gold,
			CollectedAt:  time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errAlreadyCollected
			}
			return err
		}

		return tx.Model(&models.User{}).Where("user_id = ?", req.UserID).
			Updates(map[string]interface{}{
				"balance":                          gorm.Expr("balance + ?", daily+genBonus+savings),
				"generation_bonus":                 gorm.Expr("generation_bonus + ?", genBonus),
				"savings":                          gorm.Expr("savings + ?", savings),
				"daily_income":                     gorm.Expr("daily_income + ?", daily),
				"gold_balance":                     gorm.Expr("gold_balance + ?", gold),
				"total_savings_collected":          gorm.Expr("total_savings_collected + ?", savings),
				"total_generation_bonus_collected": gorm.Expr("total_generation_bonus_collected + ?", genBonus),
				"member_count":                     memberCount,
			}).Error
	}); err != nil {
		if errors.Is(err, errAlreadyCollected) {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Bonus already collected"})
			return
		}
		log.Printf("[bonus] collect %d<-%d %s: %v", req.UserID, req.FromUserID, genLabel, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	var updated models.User
	_ = db.Where("user_id = ?", req.UserID).First(&updated).Error

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":                       true,
		"message":                       "Bonus collected successfully",
		"totalSavingsCollected":         updated.TotalSavingsCollected,
		"totalGenerationBonusCollected": updated.TotalGenerationBonusCollected,
		"currentBalance":                updated.Balance,
	})
}

func parseGeneration(label string) (int, bool) {
	digits, ok := strings.CutPrefix(label, "gen")
	if !ok || digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > referral.MaxDepth {
		return 0, false
	}
	return n, true
}

// DailyIncomeDistributeHandler pays the daily-income schedule upward over the
// live chain: the user, their sponsor, and generations 2-5 above.
func DailyIncomeDistributeHandler(w http.ResponseWriter, r *http.Request) {
	distributeSchedule(w, r, config.Active().DailyIncomeDist, "daily income")
}

// SavingsDistributeHandler pays the savings schedule upward the same way.
func SavingsDistributeHandler(w http.ResponseWriter, r *http.Request) {
	distributeSchedule(w, r, config.Active().SavingsDist, "savings")
}

func distributeSchedule(w http.ResponseWriter, r *http.Request, dist config.RateTable, kind string) {
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

	chain := idx.AncestryWithSelf(userID, referral.MaxDepth)
	gens := referral.AncestryMap(chain)

	type payout struct {
		UserID int64   `json:"userId"`
		Amount float64 `json:"amount"`
		Reason string  `json:"reason"`
	}
	var payouts []payout

	if own := dist.Rate("own"); own > 0 {
		payouts = append(payouts, payout{userID, own, "Own " + kind + " bonus"})
	}
	if sponsor, ok := gens["g2"]; ok {
		if amt := dist.Rate("sponsor"); amt > 0 {
			payouts = append(payouts, payout{sponsor, amt, "Sponsor " + kind + " bonus (g1)"})
		}
	}
	// The schedule's gN pays the occupant one slot higher in the with-self
	// labeling (g2 of the schedule is the sponsor's sponsor).
	for level := 2; level <= referral.MaxDepth; level++ {
		occupant, ok := gens[fmt.Sprintf("g%d", level+1)]
		amt := dist.Rate(fmt.Sprintf("g%d", level))
		if ok && amt > 0 {
			payouts = append(payouts, payout{occupant, amt, fmt.Sprintf("Generation %d %s bonus", level, kind)})
		}
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		for _, p := range payouts {
			if err := tx.Model(&models.User{}).Where("user_id = ?", p.UserID).
				UpdateColumn("balance", gorm.Expr("balance + ?", p.Amount)).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		log.Printf("[bonus] distribute %s for %d: %v", kind, userID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteRaw(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"userId":             userID,
		"generations":        gens,
		"distributedBonuses": payouts,
	})
}
