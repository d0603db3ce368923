package models

import "time"

// Notice is a singleton record (one row, upserted).
type Notice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UpdatedAt time.Time `json:"-"`
}

func (Notice) TableName() string {
	return "notice"
}
