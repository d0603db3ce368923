package referral

import (
	"fmt"
	"sort"

	"github.com/bkbadhon/fulus-backend/models"
)

// MaxDepth bounds every traversal of the sponsor forest.
const MaxDepth = 10

// Node is one member of a referral subtree, labeled with its generation
// relative to the root ("gen1" = direct referral).
type Node struct {
	UserID     int64   `json:"userId"`
	Name       string  `json:"name"`
	Phone      string  `json:"phone"`
	AvatarURL  string  `json:"avatarUrl"`
	Generation string  `json:"generation"`
	Referrals  []*Node `json:"referrals"`
}

// Tree is a resolved referral subtree. TotalCount counts every reachable
// descendant once, at any depth.
type Tree struct {
	Referrals  []*Node `json:"referrals"`
	TotalCount int     `json:"totalCount"`
}

// Index is an in-memory adjacency view of the sponsor forest, built once from
// a batch fetch. All traversals run against it without further round trips.
type Index struct {
	byID      map[int64]*models.User
	bySponsor map[int64][]*models.User
}

// NewIndex builds the adjacency index. Users with a nil sponsor are forest
// roots and simply have no upward edge.
func NewIndex(users []models.User) *Index {
	idx := &Index{
		byID:      make(map[int64]*models.User, len(users)),
		bySponsor: make(map[int64][]*models.User),
	}
	for i := range users {
		u := &users[i]
		idx.byID[u.UserID] = u
		if u.SponsorID != nil {
			idx.bySponsor[*u.SponsorID] = append(idx.bySponsor[*u.SponsorID], u)
		}
	}
	for _, children := range idx.bySponsor {
		sort.Slice(children, func(i, j int) bool { return children[i].UserID < children[j].UserID })
	}
	return idx
}

// Lookup returns the user record for id, if present.
func (idx *Index) Lookup(id int64) (*models.User, bool) {
	u, ok := idx.byID[id]
	return u, ok
}

// Children returns the direct referrals of id.
func (idx *Index) Children(id int64) []*models.User {
	return idx.bySponsor[id]
}

// BuildTree resolves the referral subtree under rootID down to maxDepth
// generations. A root that is absent from the index, or has no referrals,
// yields an empty tree with count 0; resolution is best-effort and never
// signals failure.
func (idx *Index) BuildTree(rootID int64, maxDepth int) *Tree {
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	nodes, count := idx.buildLevel(rootID, 1, maxDepth)
	return &Tree{Referrals: nodes, TotalCount: count}
}

func (idx *Index) buildLevel(parentID int64, depth, maxDepth int) ([]*Node, int) {
	if depth > maxDepth {
		return nil, 0
	}
	children := idx.bySponsor[parentID]
	nodes := make([]*Node, 0, len(children))
	count := len(children)
	for _, c := range children {
		sub, subCount := idx.buildLevel(c.UserID, depth+1, maxDepth)
		count += subCount
		nodes = append(nodes, &Node{
			UserID:     c.UserID,
			Name:       c.Name,
			Phone:      c.Phone,
			AvatarURL:  c.AvatarURL,
			Generation: fmt.Sprintf("gen%d", depth),
			Referrals:  sub,
		})
	}
	return nodes, count
}

// Users returns every indexed user, ordered by userId.
func (idx *Index) Users() []*models.User {
	users := make([]*models.User, 0, len(idx.byID))
	for _, u := range idx.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users
}

// Gen1SubtreeSizes returns the descendant counts of each direct referral of
// rootID, sorted descending. Rank tiers are judged against the top three.
func (idx *Index) Gen1SubtreeSizes(rootID int64) []int {
	children := idx.bySponsor[rootID]
	sizes := make([]int, 0, len(children))
	for _, c := range children {
		t := idx.BuildTree(c.UserID, MaxDepth)
		sizes = append(sizes, t.TotalCount)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}
