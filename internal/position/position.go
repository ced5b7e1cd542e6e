// Package position computes the minimal position deltas that keep a
// container's children densely ordered (0..N-1, no gaps, no duplicates)
// across moves and removals. Containers are lists holding cards, or boards
// holding lists; the math is the same for both.
package position

// Shift is a ranged delta over one container's children: every child with
// Low <= position <= High gets Delta added. High == Unbounded means the
// range is open-ended.
type Shift struct {
	ContainerID uint64
	Low         int
	High        int
	Delta       int
}

const Unbounded = -1

// Clamp bounds a requested insertion index to [0, count]. count is the
// number of children already in the destination, so count itself means
// insertion at the tail.
func Clamp(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count {
		return count
	}
	return index
}

// PlanSameContainer returns the shifts for relocating a child from position
// `from` to position `to` inside one container. The moving child itself is
// never inside any returned range, so ranged updates need no exclusion
// clause. A nil result means the move is a no-op.
func PlanSameContainer(containerID uint64, from, to int) []Shift {
	if from == to {
		return nil
	}
	if from < to {
		// Children strictly between the old and new slot slide down one.
		return []Shift{{ContainerID: containerID, Low: from + 1, High: to, Delta: -1}}
	}
	// Children from the new slot up to (not including) the old slide up one.
	return []Shift{{ContainerID: containerID, Low: to, High: from - 1, Delta: +1}}
}

// PlanCrossContainer returns the shifts for relocating a child out of
// `sourceID` (closing the gap at `from`) and into `targetID` (opening a
// slot at `to`).
func PlanCrossContainer(sourceID, targetID uint64, from, to int) []Shift {
	return []Shift{
		{ContainerID: sourceID, Low: from + 1, High: Unbounded, Delta: -1},
		{ContainerID: targetID, Low: to, High: Unbounded, Delta: +1},
	}
}

// PlanRemoval returns the shift that closes the gap left by deleting the
// child at position `from`.
func PlanRemoval(containerID uint64, from int) []Shift {
	return []Shift{{ContainerID: containerID, Low: from + 1, High: Unbounded, Delta: -1}}
}

// Apply replays shifts over an in-memory ordering. It exists for tests and
// for reconciling cached snapshots without a re-fetch; the stores translate
// the same shifts into ranged UPDATEs instead.
func Apply(positions map[uint64]int, containerOf map[uint64]uint64, shifts []Shift) {
	for _, s := range shifts {
		for id, pos := range positions {
			if containerOf[id] != s.ContainerID {
				continue
			}
			if pos < s.Low {
				continue
			}
			if s.High != Unbounded && pos > s.High {
				continue
			}
			positions[id] = pos + s.Delta
		}
	}
}
