// Package ordering holds the slot arithmetic shared by every sibling
// sequence in the system: columns within a board and tasks within a column.
// Callers load the siblings ordered by their stored position inside a write
// transaction, ask this package where the subject item lands, and rewrite
// every sibling's position from its index. Positions are therefore always
// recomputed from the actual sibling count; stored values and client-supplied
// positions are treated as advisory only.
package ordering

// Append is the insert sentinel meaning "after the last sibling". It is set
// by the service handlers when a request carries no position.
const Append = -1

// ClampInsert bounds a requested insert position to [0, count], where count
// is the number of existing siblings. The Append sentinel lands after the
// last sibling; any other negative request clamps to the front.
func ClampInsert(requested, count int) int {
	if requested == Append || requested > count {
		return count
	}
	if requested < 0 {
		return 0
	}
	return requested
}

// ClampMove bounds a requested move position to [0, count], where count is
// the number of siblings excluding the item being moved.
func ClampMove(requested, count int) int {
	if requested < 0 {
		return 0
	}
	if requested > count {
		return count
	}
	return requested
}

// Slots returns dense positions for count siblings ordered by their current
// position, leaving the given slot free for the item being placed. Passing
// slot >= count leaves no hole, which makes Slots(count, count) the
// gap-closing assignment 0..count-1 after a deletion.
func Slots(count, slot int) []int {
	out := make([]int, count)
	for i := 0; i < count; i++ {
		if i < slot {
			out[i] = i
		} else {
			out[i] = i + 1
		}
	}
	return out
}
