package admins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkbadhon/fulus-backend/config"
	"github.com/bkbadhon/fulus-backend/models"
	"github.com/bkbadhon/fulus-backend/referral"
)

func sponsor(id int64) *int64 { return &id }

func TestLeaderboardOrdersByTeamSize(t *testing.T) {
	users := []models.User{
		{UserID: 1, Name: "A"},
		{UserID: 2, Name: "B"},
		{UserID: 3, Name: "C"},
		{UserID: 10, SponsorID: sponsor(1)},
		{UserID: 11, SponsorID: sponsor(1)},
		{UserID: 12, SponsorID: sponsor(1)},
		{UserID: 13, SponsorID: sponsor(1)},
		{UserID: 14, SponsorID: sponsor(1)},
		{UserID: 20, SponsorID: sponsor(2)},
		{UserID: 21, SponsorID: sponsor(2)},
	}
	entries := leaderboard(referral.NewIndex(users), config.Default().RankTiers)

	// Every user appears, including those with zero referrals.
	require.Len(t, entries, len(users))

	assert.Equal(t, int64(1), entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 5, entries[0].TotalReferrals)

	assert.Equal(t, int64(2), entries[1].UserID)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 2, entries[1].TotalReferrals)

	// Ties on zero break on the lower userId.
	assert.Equal(t, int64(3), entries[2].UserID)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, 0, entries[2].TotalReferrals)

	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestLeaderboardTierField(t *testing.T) {
	// Three gen1 branches of size 3 each meet Bronze [3,3,3].
	users := []models.User{
		{UserID: 1, Name: "Root"},
		{UserID: 2, SponsorID: sponsor(1)},
		{UserID: 3, SponsorID: sponsor(1)},
		{UserID: 4, SponsorID: sponsor(1)},
		{UserID: 5, SponsorID: sponsor(2)},
		{UserID: 6, SponsorID: sponsor(2)},
		{UserID: 7, SponsorID: sponsor(3)},
		{UserID: 8, SponsorID: sponsor(3)},
		{UserID: 9, SponsorID: sponsor(4)},
		{UserID: 10, SponsorID: sponsor(4)},
	}
	entries := leaderboard(referral.NewIndex(users), config.Default().RankTiers)

	require.Equal(t, int64(1), entries[0].UserID)
	assert.Equal(t, "Bronze", entries[0].Tier)
	assert.Equal(t, 9, entries[0].TotalReferrals)

	// Branch heads have a single gen1 branch of size 2, no tier met.
	assert.Equal(t, "", entries[1].Tier)
}
