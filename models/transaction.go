package models

import "time"

// Transaction is the audit log for peer-to-peer money movement. Send-money
// inserts a send/receive pair inside the same DB transaction.
type Transaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;index;not null" json:"userId"`
	PeerID    int64     `gorm:"column:peer_id;not null" json:"peerId"`
	Amount    float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Charge    float64   `gorm:"type:decimal(15,2);not null;default:0" json:"charge"`
	Flow      string    `gorm:"type:enum('send','receive');not null" json:"flow"`
	OrderID   string    `gorm:"column:order_id;size:50;uniqueIndex;not null" json:"orderId"`
	Message   *string   `gorm:"type:text" json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Transaction) TableName() string {
	return "transactions"
}
