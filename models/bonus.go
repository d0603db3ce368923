package models

import "time"

// BonusCollection is the idempotency record for generation bonus payouts.
// The composite unique index is what guarantees at-most-once collection:
// a second insert for the same (user, fromUser, generation) fails with a
// duplicate-key error and no funds move.
type BonusCollection struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       int64     `gorm:"column:user_id;uniqueIndex:idx_bonus_key;not null" json:"userId"`
	FromUserID   int64     `gorm:"column:from_user_id;uniqueIndex:idx_bonus_key;not null" json:"fromUserId"`
	Generation   string    `gorm:"size:10;uniqueIndex:idx_bonus_key;not null" json:"generation"`
	BonusCollect bool      `gorm:"column:bonus_collect;not null;default:false" json:"bonusCollect"`
	DailyBonus   float64   `gorm:"column:daily_bonus;type:decimal(15,2);default:0" json:"dailyBonus"`
	GenBonus     float64   `gorm:"column:gen_bonus;type:decimal(15,2);default:0" json:"genBonus"`
	SavingsBonus float64   `gorm:"column:savings_bonus;type:decimal(15,2);default:0" json:"savingsBonus"`
	InstantGold  float64   `gorm:"column:instant_gold;type:decimal(15,4);default:0" json:"instantGold"`
	CollectedAt  time.Time `gorm:"column:collected_at" json:"collectedAt"`
}

func (BonusCollection) TableName() string {
	return "bonuses"
}
