package models

import "time"

// AgentInfo is a singleton record (one row, upserted).
type AgentInfo struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Number    string    `gorm:"size:20;not null" json:"number"`
	UpdatedAt time.Time `json:"-"`
}

func (AgentInfo) TableName() string {
	return "agents"
}
