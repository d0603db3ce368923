package models

import "time"

// RankBonus records a claimed rank reward. RewardKey is the sanitized
// "<rank>_all" claim key; the unique index makes the claim insert-if-absent.
type RankBonus struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex:idx_rank_key;not null" json:"userId"`
	RewardKey   string    `gorm:"column:reward_key;size:50;uniqueIndex:idx_rank_key;not null" json:"rewardKey"`
	SarAmount   float64   `gorm:"column:sar_amount;type:decimal(15,2);default:0" json:"sarAmount"`
	GoldAmount  float64   `gorm:"column:gold_amount;type:decimal(15,4);default:0" json:"goldAmount"`
	CollectedAt time.Time `gorm:"column:collected_at" json:"collectedAt"`
}

func (RankBonus) TableName() string {
	return "rank_bonuses"
}
