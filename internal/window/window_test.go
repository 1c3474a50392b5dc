package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountUnorderedOverlapScenario(t *testing.T) {
	// document term_list [a,x,b,y,a,b]; query {a,b}; a=[0,4], b=[2,5]; W=3.
	positions := [][]uint32{{0, 4}, {2, 5}}
	count := Count(positions, 3, false, true)
	assert.Equal(t, 3, count)
}

func TestOverlapAtLeastAsLargeAsNonOverlap(t *testing.T) {
	positions := [][]uint32{{0, 4, 8, 12}, {2, 5, 9, 13}}
	withOverlap := Count(positions, 3, false, true)
	withoutOverlap := Count(positions, 3, false, false)
	assert.GreaterOrEqual(t, withOverlap, withoutOverlap)
}

func TestOrderedNeverExceedsUnordered(t *testing.T) {
	positions := [][]uint32{{0, 4, 8}, {2, 5, 9}, {1, 6, 10}}
	ordered := Count(positions, 5, true, true)
	unordered := Count(positions, 5, false, true)
	assert.LessOrEqual(t, ordered, unordered)
}

func TestNoQualifyingWindowWhenATermMissing(t *testing.T) {
	positions := [][]uint32{{0}, {}}
	assert.Equal(t, 0, Count(positions, 10, false, true))
}
