package search

// Predicates is the set of optional filters of one search call.
//
// A nil field (or an empty TagIDs) means "no filter on that dimension", never
// "match empty/NULL".
type Predicates struct {
	Title      *string
	ContentURL *string
	OwnerID    *int64
	CategoryID *int64
	MinViews   *int
	MaxViews   *int

	// TagIDs selects articles carrying at least one of the tags (OR).
	TagIDs []int64
}

// IsEmpty reports whether no predicate is populated.
func (p Predicates) IsEmpty() bool {
	return p.Title == nil &&
		p.ContentURL == nil &&
		p.OwnerID == nil &&
		p.CategoryID == nil &&
		p.MinViews == nil &&
		p.MaxViews == nil &&
		len(p.TagIDs) == 0
}

// uniqueIDs drops duplicate ids, keeping first-seen order.
func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
