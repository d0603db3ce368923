package models

import "time"

// DailySaving is one day's savings collection. The unique (user, date) index
// enforces the once-per-day rule.
type DailySaving struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	UserID int64   `gorm:"column:user_id;uniqueIndex:idx_saving_day;not null" json:"userId"`
	Date   string  `gorm:"size:10;uniqueIndex:idx_saving_day;not null" json:"date"`
	Amount float64 `gorm:"type:decimal(15,2);not null" json:"amount"`
}

func (DailySaving) TableName() string {
	return "savings_log"
}

// DailyIncomeCollect is one day's daily-income claim.
type DailyIncomeCollect struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex:idx_income_day;not null" json:"userId"`
	Date        string    `gorm:"size:10;uniqueIndex:idx_income_day;not null" json:"date"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CollectedAt time.Time `gorm:"column:collected_at" json:"collectedAt"`
}

func (DailyIncomeCollect) TableName() string {
	return "dailyincome"
}

// GenerationCollect is a Friday generation-commission claim.
type GenerationCollect struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex:idx_gen_day;not null" json:"userId"`
	Date        string    `gorm:"size:10;uniqueIndex:idx_gen_day;not null" json:"date"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CollectedAt time.Time `gorm:"column:collected_at" json:"collectedAt"`
}

func (GenerationCollect) TableName() string {
	return "dailygen"
}
