package models

import "time"

type User struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserID         int64   `gorm:"column:user_id;uniqueIndex;not null" json:"userId"`
	Name           string  `gorm:"size:100;not null" json:"name"`
	Phone          string  `gorm:"size:20;not null" json:"phone"`
	Password       string  `gorm:"size:255;not null" json:"-"`
	AvatarURL      string  `gorm:"column:avatar_url;size:255" json:"avatarUrl"`
	Role           string  `gorm:"size:20;default:'user'" json:"role"`
	SponsorID      *int64  `gorm:"column:sponsor_id;index" json:"sponsorId"`
	Status         string  `gorm:"type:enum('inactive','active');default:'inactive'" json:"status"`
	TransactionPin *string `gorm:"column:transaction_pin;size:255" json:"-"`

	Balance         float64 `gorm:"type:decimal(15,2);default:0" json:"balance"`
	GoldBalance     float64 `gorm:"column:gold_balance;type:decimal(15,4);default:0" json:"goldBalance"`
	GenerationBonus float64 `gorm:"column:generation_bonus;type:decimal(15,2);default:0" json:"generationBonus"`
	Savings         float64 `gorm:"type:decimal(15,2);default:0" json:"savings"`
	DailyIncome     float64 `gorm:"column:daily_income;type:decimal(15,2);default:0" json:"dailyIncome"`
	AgentBalance    float64 `gorm:"column:agent_balance;type:decimal(15,2);default:0" json:"agentBalance"`
	ChargeAmount    float64 `gorm:"column:charge_amount;type:decimal(15,2);default:0" json:"chargeAmount"`

	MemberCount                   int     `gorm:"column:member_count;default:0" json:"memberCount"`
	TotalSavingsCollected         float64 `gorm:"column:total_savings_collected;type:decimal(15,2);default:0" json:"totalSavingsCollected"`
	TotalGenerationBonusCollected float64 `gorm:"column:total_generation_bonus_collected;type:decimal(15,2);default:0" json:"totalGenerationBonusCollected"`

	LastDailyCollect *string   `gorm:"column:last_daily_collect;size:10" json:"lastDailyCollect,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Active reports whether the account has paid the activation fee.
func (u *User) Active() bool {
	return u.Status == "active"
}
