package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkbadhon/fulus-backend/models"
)

func ptr(v int64) *int64 { return &v }

// fixture:
//
//	1
//	├── 2
//	│   ├── 4
//	│   │   └── 6
//	│   └── 5
//	└── 3
//	7 (separate root)
func fixtureUsers() []models.User {
	return []models.User{
		{UserID: 1, Name: "root"},
		{UserID: 2, Name: "a", SponsorID: ptr(1)},
		{UserID: 3, Name: "b", SponsorID: ptr(1)},
		{UserID: 4, Name: "c", SponsorID: ptr(2)},
		{UserID: 5, Name: "d", SponsorID: ptr(2)},
		{UserID: 6, Name: "e", SponsorID: ptr(4)},
		{UserID: 7, Name: "other"},
	}
}

func TestBuildTree_CountsAndLabels(t *testing.T) {
	idx := NewIndex(fixtureUsers())
	tree := idx.BuildTree(1, MaxDepth)

	assert.Equal(t, 5, tree.TotalCount)
	require.Len(t, tree.Referrals, 2)

	gen1 := tree.Referrals[0]
	assert.Equal(t, int64(2), gen1.UserID)
	assert.Equal(t, "gen1", gen1.Generation)
	require.Len(t, gen1.Referrals, 2)
	assert.Equal(t, "gen2", gen1.Referrals[0].Generation)
	require.Len(t, gen1.Referrals[0].Referrals, 1)
	assert.Equal(t, "gen3", gen1.Referrals[0].Referrals[0].Generation)
}

func TestBuildTree_DepthLimit(t *testing.T) {
	idx := NewIndex(fixtureUsers())
	tree := idx.BuildTree(1, 1)
	assert.Equal(t, 2, tree.TotalCount)
	for _, n := range tree.Referrals {
		assert.Empty(t, n.Referrals)
	}
}

func TestBuildTree_UnknownOrLeafRoot(t *testing.T) {
	idx := NewIndex(fixtureUsers())

	tree := idx.BuildTree(999, MaxDepth)
	assert.Equal(t, 0, tree.TotalCount)
	assert.Empty(t, tree.Referrals)

	tree = idx.BuildTree(6, MaxDepth)
	assert.Equal(t, 0, tree.TotalCount)
}

func TestAncestry_OrderAndTruncation(t *testing.T) {
	idx := NewIndex(fixtureUsers())

	chain := idx.Ancestry(6, MaxDepth)
	require.Len(t, chain, 3)
	assert.Equal(t, AncestryLink{Generation: "g1", UserID: 4}, chain[0])
	assert.Equal(t, AncestryLink{Generation: "g2", UserID: 2}, chain[1])
	assert.Equal(t, AncestryLink{Generation: "g3", UserID: 1}, chain[2])

	// the walk stops at a forest root
	assert.Empty(t, idx.Ancestry(1, MaxDepth))

	// maxDepth truncates the chain
	assert.Len(t, idx.Ancestry(6, 2), 2)
}

func TestAncestryWithSelf(t *testing.T) {
	idx := NewIndex(fixtureUsers())

	chain := idx.AncestryWithSelf(6, MaxDepth)
	require.Len(t, chain, 4)
	assert.Equal(t, AncestryLink{Generation: "g1", UserID: 6}, chain[0])
	assert.Equal(t, AncestryLink{Generation: "g2", UserID: 4}, chain[1])
	assert.Equal(t, AncestryLink{Generation: "g4", UserID: 1}, chain[3])

	assert.Nil(t, idx.AncestryWithSelf(999, MaxDepth))
}

func TestAncestryMap(t *testing.T) {
	idx := NewIndex(fixtureUsers())
	m := AncestryMap(idx.Ancestry(6, MaxDepth))
	assert.Equal(t, map[string]int64{"g1": 4, "g2": 2, "g3": 1}, m)
}

func TestGen1SubtreeSizes_SortedDescending(t *testing.T) {
	idx := NewIndex(fixtureUsers())

	// branch under 2 has 3 members, branch under 3 has 0
	assert.Equal(t, []int{3, 0}, idx.Gen1SubtreeSizes(1))
	assert.Empty(t, idx.Gen1SubtreeSizes(7))
}

func TestChildren_SortedByUserID(t *testing.T) {
	idx := NewIndex(fixtureUsers())
	children := idx.Children(2)
	require.Len(t, children, 2)
	assert.Equal(t, int64(4), children[0].UserID)
	assert.Equal(t, int64(5), children[1].UserID)
}

func TestUsers_SortedByUserID(t *testing.T) {
	idx := NewIndex(fixtureUsers())
	all := idx.Users()
	require.Len(t, all, 7)
	assert.Equal(t, int64(1), all[0].UserID)
	assert.Equal(t, int64(7), all[6].UserID)
}
