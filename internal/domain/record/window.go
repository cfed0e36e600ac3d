package record

// Surround returns the neighbors of the record whose slug equals slug.
//
// The result always has before+after slots and never contains the target itself.
// The first before slots hold the predecessors, nearest last; the remaining after
// slots hold the successors in order. Slots without a neighbor are nil. When slug
// is not present every slot is nil.
func Surround(records []Record, slug string, before, after int) []Record {
	before = max(before, 0)
	after = max(after, 0)
	window := make([]Record, before+after)

	idx := -1
	for i, r := range records {
		if v, ok := r[FieldSlug]; ok && v != nil && Slug(r) == slug {
			idx = i
			break
		}
	}
	if idx == -1 {
		return window
	}

	// predecessors fill the window right-aligned against the target
	for i := 1; i <= before && idx-i >= 0; i++ {
		window[before-i] = records[idx-i]
	}
	for i := 1; i <= after && idx+i < len(records); i++ {
		window[before+i-1] = records[idx+i]
	}
	return window
}
