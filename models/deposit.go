package models

import "time"

// Deposit lifecycle: pending -> accepted (agent committed, no funds moved)
// -> success (agent debited, user credited, agent earns commission).
type Deposit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        int64     `gorm:"column:user_id;index;not null" json:"userId"`
	Amount        float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	TransactionID string    `gorm:"column:transaction_id;size:100" json:"transactionId"`
	AgentNumber   string    `gorm:"column:agent_number;size:20" json:"agentNumber"`
	Status        string    `gorm:"type:enum('pending','accepted','success');default:'pending'" json:"status"`
	AcceptedBy    *int64    `gorm:"column:accepted_by" json:"acceptedBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"-"`
}

func (Deposit) TableName() string {
	return "deposits"
}
