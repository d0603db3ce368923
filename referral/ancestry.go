package referral

import "fmt"

// AncestryLink is one step of an upward sponsor-chain walk.
type AncestryLink struct {
	Generation string `json:"generation"`
	UserID     int64  `json:"userId"`
}

// Ancestry walks the sponsor chain upward from userID: g1 is the immediate
// sponsor, g2 the sponsor's sponsor, and so on up to maxDepth. The walk stops
// early at a forest root or a missing record; a partial chain is a valid
// result, never an error.
func (idx *Index) Ancestry(userID int64, maxDepth int) []AncestryLink {
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	var chain []AncestryLink
	current := userID
	for i := 1; i <= maxDepth; i++ {
		u, ok := idx.byID[current]
		if !ok || u.SponsorID == nil {
			break
		}
		chain = append(chain, AncestryLink{
			Generation: fmt.Sprintf("g%d", i),
			UserID:     *u.SponsorID,
		})
		current = *u.SponsorID
	}
	return chain
}

// AncestryWithSelf is the counting-context variant: g1 is the user themselves
// and g2 the immediate sponsor. The distribution schedules (daily income,
// savings) are keyed against this labeling.
func (idx *Index) AncestryWithSelf(userID int64, maxDepth int) []AncestryLink {
	if maxDepth <= 0 || maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}
	if _, ok := idx.byID[userID]; !ok {
		return nil
	}
	chain := []AncestryLink{{Generation: "g1", UserID: userID}}
	up := idx.Ancestry(userID, maxDepth-1)
	for _, link := range up {
		chain = append(chain, AncestryLink{
			Generation: fmt.Sprintf("g%d", len(chain)+1),
			UserID:     link.UserID,
		})
	}
	return chain
}

// AncestryMap renders a chain as the {"g1": id, ...} object older clients
// expect.
func AncestryMap(chain []AncestryLink) map[string]int64 {
	m := make(map[string]int64, len(chain))
	for _, link := range chain {
		m[link.Generation] = link.UserID
	}
	return m
}
