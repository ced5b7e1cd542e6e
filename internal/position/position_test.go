package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	listA uint64 = 1
	listB uint64 = 2
)

// apply runs shifts over an ordered slice of card ids for one or two lists
// and returns the resulting order per list.
func replay(t *testing.T, cards map[uint64]uint64, positions map[uint64]int, shifts []Shift) map[uint64][]uint64 {
	t.Helper()
	Apply(positions, cards, shifts)

	out := make(map[uint64][]uint64)
	for listID := range map[uint64]bool{listA: true, listB: true} {
		var n int
		for id := range positions {
			if cards[id] == listID {
				n++
			}
		}
		order := make([]uint64, n)
		seen := make(map[int]bool)
		for id, pos := range positions {
			if cards[id] != listID {
				continue
			}
			require.GreaterOrEqual(t, pos, 0, "negative position")
			require.Less(t, pos, n, "position out of range")
			require.False(t, seen[pos], "duplicate position %d in list %d", pos, listID)
			seen[pos] = true
			order[pos] = id
		}
		out[listID] = order
	}
	return out
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5, 3))
	assert.Equal(t, 0, Clamp(0, 3))
	assert.Equal(t, 2, Clamp(2, 3))
	assert.Equal(t, 3, Clamp(3, 3))
	assert.Equal(t, 3, Clamp(99, 3))
	assert.Equal(t, 0, Clamp(0, 0))
}

func TestPlanSameContainerNoOp(t *testing.T) {
	assert.Nil(t, PlanSameContainer(listA, 2, 2))
}

func TestPlanSameContainerMoveUp(t *testing.T) {
	// [X Y Z] at [0 1 2], move Y (1) to 0 -> [Y X Z].
	cards := map[uint64]uint64{10: listA, 11: listA, 12: listA}
	positions := map[uint64]int{10: 0, 11: 1, 12: 2}

	Apply(positions, cards, PlanSameContainer(listA, 1, 0))
	positions[11] = 0
	out := replay(t, cards, positions, nil)
	assert.Equal(t, []uint64{11, 10, 12}, out[listA])
}

func TestPlanSameContainerMoveDown(t *testing.T) {
	// [A B C D] at [0..3], move A (0) to 2 -> [B C A D].
	cards := map[uint64]uint64{20: listA, 21: listA, 22: listA, 23: listA}
	positions := map[uint64]int{20: 0, 21: 1, 22: 2, 23: 3}

	Apply(positions, cards, PlanSameContainer(listA, 0, 2))
	positions[20] = 2
	out := replay(t, cards, positions, nil)
	assert.Equal(t, []uint64{21, 22, 20, 23}, out[listA])
}

func TestPlanCrossContainer(t *testing.T) {
	// listA [A B C], listB [X Y]; move B to listB index 1 -> listA [A C], listB [X B Y].
	cards := map[uint64]uint64{1: listA, 2: listA, 3: listA, 4: listB, 5: listB}
	positions := map[uint64]int{1: 0, 2: 1, 3: 2, 4: 0, 5: 1}

	shifts := PlanCrossContainer(listA, listB, 1, 1)
	Apply(positions, cards, shifts)
	cards[2] = listB
	positions[2] = 1

	out := replay(t, cards, positions, nil)
	assert.Equal(t, []uint64{1, 3}, out[listA])
	assert.Equal(t, []uint64{4, 2, 5}, out[listB])
}

func TestPlanCrossContainerToTail(t *testing.T) {
	cards := map[uint64]uint64{1: listA, 2: listB}
	positions := map[uint64]int{1: 0, 2: 0}

	to := Clamp(7, 1)
	require.Equal(t, 1, to)
	shifts := PlanCrossContainer(listA, listB, 0, to)
	Apply(positions, cards, shifts)
	cards[1] = listB
	positions[1] = to

	out := replay(t, cards, positions, nil)
	assert.Empty(t, out[listA])
	assert.Equal(t, []uint64{2, 1}, out[listB])
}

func TestPlanRemoval(t *testing.T) {
	// [A B C D], delete B -> [A C D] dense.
	cards := map[uint64]uint64{1: listA, 3: listA, 4: listA}
	positions := map[uint64]int{1: 0, 3: 2, 4: 3}

	shifts := PlanRemoval(listA, 1)
	out := replay(t, cards, positions, shifts)
	assert.Equal(t, []uint64{1, 3, 4}, out[listA])
}

func TestDensityHoldsAcrossMoveSequence(t *testing.T) {
	cards := map[uint64]uint64{1: listA, 2: listA, 3: listA, 4: listA, 5: listB}
	positions := map[uint64]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 0}

	move := func(id uint64, target uint64, to int) {
		from := positions[id]
		source := cards[id]
		var count int
		for other := range positions {
			if cards[other] == target {
				count++
			}
		}
		if source == target {
			to = Clamp(to, count-1)
			Apply(positions, cards, PlanSameContainer(source, from, to))
		} else {
			to = Clamp(to, count)
			Apply(positions, cards, PlanCrossContainer(source, target, from, to))
			cards[id] = target
		}
		positions[id] = to
	}

	move(3, listB, 0)
	move(1, listA, 2)
	move(5, listA, 0)
	move(2, listB, 5) // clamped to tail
	move(4, listA, 0)

	replay(t, cards, positions, nil) // asserts density for both lists
}
