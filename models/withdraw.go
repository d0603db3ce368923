package models

import "time"

// Withdraw lifecycle: Pending -> Processing (agent accepted) -> Success
// (agent paid out) or rejected (admin refund). Funds are escrowed from the
// user's balance at request time.
type Withdraw struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          int64     `gorm:"column:user_id;index;not null" json:"userId"`
	Method          string    `gorm:"size:50" json:"method"`
	AccountNumber   string    `gorm:"column:account_number;size:50" json:"accountNumber"`
	DeliveryAddress string    `gorm:"column:delivery_address;size:255" json:"deliveryAddress"`
	Amount          float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Charge          float64   `gorm:"type:decimal(15,2);not null;default:0" json:"charge"`
	FinalAmount     float64   `gorm:"column:final_amount;type:decimal(15,2);not null" json:"finalAmount"`
	Status          string    `gorm:"type:enum('Pending','Processing','Success','rejected');default:'Pending'" json:"status"`
	AgentID         *int64    `gorm:"column:agent_id" json:"agentId,omitempty"`
	Commission      float64   `gorm:"type:decimal(15,2);default:0" json:"commission"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"-"`
}

func (Withdraw) TableName() string {
	return "withdraws"
}
