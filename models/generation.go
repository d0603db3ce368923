package models

import "time"

// Generation is the ancestry snapshot frozen at signup time. It is written for
// compatibility with older clients; live resolution (referral.Ancestry) is the
// source of truth for every read path.
type Generation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null" json:"userId"`
	SponsorID int64     `gorm:"column:sponsor_id;not null" json:"sponsorId"`
	G2        *int64    `gorm:"column:g2" json:"g2"`
	G3        *int64    `gorm:"column:g3" json:"g3"`
	G4        *int64    `gorm:"column:g4" json:"g4"`
	G5        *int64    `gorm:"column:g5" json:"g5"`
	G6        *int64    `gorm:"column:g6" json:"g6"`
	G7        *int64    `gorm:"column:g7" json:"g7"`
	G8        *int64    `gorm:"column:g8" json:"g8"`
	G9        *int64    `gorm:"column:g9" json:"g9"`
	G10       *int64    `gorm:"column:g10" json:"g10"`
	CreatedAt time.Time `json:"-"`
}

func (Generation) TableName() string {
	return "generations"
}
