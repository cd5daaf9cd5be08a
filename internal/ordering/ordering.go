// Package ordering keeps sibling groups (modules in a course, videos in a
// module) on a dense, gap-free, 1-based position sequence. The same
// primitives back both group types; callers load the siblings sorted by
// position, transform them here, and persist whatever changed.
package ordering

// Item is a record carrying a position within its sibling group.
type Item interface {
	Position() int
	SetPosition(int)
}

// Next returns the position an appended item takes: one past the current
// maximum, 1 for an empty group.
func Next[T Item](items []T) int {
	max := 0
	for _, it := range items {
		if it.Position() > max {
			max = it.Position()
		}
	}
	return max + 1
}

// Clamp bounds a requested 1-based position to [1, n]. A group of size 0
// clamps to 1 so an insert into an empty group is always valid.
func Clamp(pos, n int) int {
	if n < 1 {
		n = 1
	}
	if pos < 1 {
		return 1
	}
	if pos > n {
		return n
	}
	return pos
}

// Renumber reassigns positions 1..N in slice order and returns the items
// whose stored position changed and therefore need a write.
func Renumber[T Item](items []T) []T {
	var changed []T
	for i, it := range items {
		if it.Position() != i+1 {
			it.SetPosition(i + 1)
			changed = append(changed, it)
		}
	}
	return changed
}

// Move pulls the element at index from out of the position-sorted sibling
// list, reinserts it so it lands at the clamped 1-based target position,
// and renumbers the whole group. It returns the reordered list and the
// items whose position changed. Relative order of the other siblings is
// preserved; the renumber is what keeps the sequence contiguous under the
// store's (parent, position) uniqueness constraint.
func Move[T Item](items []T, from, target int) (reordered, changed []T) {
	item := items[from]
	rest := make([]T, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	idx := Clamp(target, len(items)) - 1
	reordered = make([]T, 0, len(items))
	reordered = append(reordered, rest[:idx]...)
	reordered = append(reordered, item)
	reordered = append(reordered, rest[idx:]...)

	return reordered, Renumber(reordered)
}
