package models

import "time"

// Transfer is the append-only log of agent-balance to user-balance moves.
type Transfer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID int64     `gorm:"column:from_user_id;index;not null" json:"fromUserId"`
	ToUserID   int64     `gorm:"column:to_user_id;index;not null" json:"toUserId"`
	Amount     float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (Transfer) TableName() string {
	return "transfers"
}
