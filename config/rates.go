package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// RateTable maps a generation label ("gen1".."gen10", "own", "sponsor") to an
// amount. Lookups on absent labels yield 0 rather than an error so callers can
// probe any label the resolver produces.
type RateTable map[string]float64

// Rate returns the configured amount for label, or 0 when absent.
func (t RateTable) Rate(label string) float64 {
	if t == nil {
		return 0
	}
	return t[label]
}

// RankTier is a rank reward requirement: the sizes the user's top three gen1
// branches must each reach, and the reward paid on full completion.
type RankTier struct {
	Name     string  `json:"name"`
	Required [3]int  `json:"required"`
	Sar      float64 `json:"sar"`
	Gold     float64 `json:"gold"`
}

// Rates is the active, injectable bonus configuration. The bonus engine and
// settlement handlers only ever read from the instance they were given, so
// swapping the table version never touches resolver or ledger code.
type Rates struct {
	// Collect tables, keyed gen1..gen10: applied together by /api/bonus/collect.
	Daily      RateTable `json:"daily"`
	Generation RateTable `json:"generation"`
	Savings    RateTable `json:"savings"`
	// InstantGold is denominated in grams and credited to goldBalance.
	InstantGold RateTable `json:"instantGold"`

	// View is the per-generation preview shown by GET /api/bonus/:userId.
	View RateTable `json:"view"`

	// Distribution schedules for the upward daily-income / savings flows,
	// keyed own, sponsor, g2..g10.
	DailyIncomeDist RateTable `json:"dailyIncomeDist"`
	SavingsDist     RateTable `json:"savingsDist"`

	RankTiers []RankTier `json:"rankTiers"`

	WithdrawFeePercent     float64 `json:"withdrawFeePercent"`
	WithdrawCommissionRate float64 `json:"withdrawCommissionPercent"`
	DepositCommissionRate  float64 `json:"depositCommissionPercent"`
	SendMoneyFeePercent    float64 `json:"sendMoneyFeePercent"`
	ActivationFee          float64 `json:"activationFee"`
	GoldPricePerGram       float64 `json:"goldPricePerGram"`
}

// Default returns the canonical rate configuration. Several incompatible table
// versions existed historically; these are the ones kept as canonical, one per
// bonus kind.
func Default() *Rates {
	return &Rates{
		Daily: RateTable{
			"gen1": 30, "gen2": 25, "gen3": 20, "gen4": 15, "gen5": 10,
			"gen6": 5, "gen7": 3, "gen8": 2, "gen9": 1, "gen10": 0,
		},
		Generation: RateTable{
			"gen1": 20, "gen2": 15, "gen3": 10, "gen4": 5, "gen5": 3,
			"gen6": 2, "gen7": 1, "gen8": 1, "gen9": 1, "gen10": 0,
		},
		Savings: RateTable{
			"gen1": 20, "gen2": 15, "gen3": 10, "gen4": 5, "gen5": 3,
			"gen6": 2, "gen7": 1, "gen8": 1, "gen9": 1, "gen10": 0,
		},
		InstantGold: RateTable{
			"gen1": 0.10, "gen2": 0.05, "gen3": 0.04, "gen4": 0.03, "gen5": 0.02,
			"gen6": 0.01,
		},
		View: RateTable{
			"g1": 20, "g2": 10, "g3": 5, "g4": 5, "g5": 5,
		},
		DailyIncomeDist: RateTable{
			"own": 30, "sponsor": 15, "g2": 12, "g3": 9, "g4": 6, "g5": 3,
		},
		SavingsDist: RateTable{
			"own": 20, "sponsor": 10, "g2": 8, "g3": 6, "g4": 4, "g5": 2,
		},
		RankTiers: []RankTier{
			{Name: "Bronze", Required: [3]int{3, 3, 3}, Sar: 300, Gold: 1.05},
			{Name: "Silver", Required: [3]int{7, 7, 7}, Sar: 800, Gold: 2.10},
			{Name: "Gold", Required: [3]int{15, 15, 15}, Sar: 2000, Gold: 5.25},
			{Name: "Diamond", Required: [3]int{30, 30, 30}, Sar: 5000, Gold: 10.50},
		},
		WithdrawFeePercent:     5,
		WithdrawCommissionRate: 5,
		DepositCommissionRate:  2,
		SendMoneyFeePercent:    1,
		ActivationFee:          599,
		GoldPricePerGram:       250,
	}
}

// Load builds the active configuration: defaults overridden by the JSON file
// named in RATES_FILE, when set. Missing file is an error; an unset env is not.
func Load() (*Rates, error) {
	r := Default()
	path := os.Getenv("RATES_FILE")
	if path == "" {
		return r, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rates file: %w", err)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("parse rates file %s: %w", path, err)
	}
	return r, nil
}
