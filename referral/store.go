package referral

import (
	"gorm.io/gorm"

	"github.com/bkbadhon/fulus-backend/models"
)

// LoadIndex batch-fetches every user once and builds the adjacency index.
// All tree and ancestry resolution then runs in memory; this replaces the
// query-per-node traversals the older endpoints grew organically.
func LoadIndex(db *gorm.DB) (*Index, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return NewIndex(users), nil
}
