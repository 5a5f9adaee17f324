package chess

import (
	"fmt"
	"math/rand"
)

// Magic is the perfect-hash function for one square and one sliding piece:
// ((blockers & Mask) * Mult) >> Shift indexes that square's region of the
// shared attack table, starting at Offset. Two blocker subsets may share a
// slot only when their true attack sets coincide.
type Magic struct {
	Mask   uint64
	Mult   uint64
	Shift  uint
	Offset uint32
}

func (m *Magic) Index(blockers uint64) int {
	return int(((blockers&m.Mask)*m.Mult)>>m.Shift) + int(m.Offset)
}

func (m *Magic) tableSize() int {
	return 1 << uint(PopCount(m.Mask))
}

var (
	rookDirections   = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// occupancyMask returns the squares whose occupancy can change the piece's
// attack set: every ray square except the outermost one, since a blocker on
// the board edge attacks the same squares as an empty edge.
func occupancyMask(sq int, directions [4][2]int) uint64 {
	var mask uint64
	for _, d := range directions {
		var df, dr = d[0], d[1]
		var f, r = File(sq) + df, Rank(sq) + dr
		for f+df >= 0 && f+df <= 7 && r+dr >= 0 && r+dr <= 7 {
			mask |= SquareMask[MakeSquare(f, r)]
			f += df
			r += dr
		}
	}
	return mask
}

// slideAttacks ray-casts the true attack set: each ray stops at the first
// blocker, inclusive.
func slideAttacks(sq int, occ uint64, directions [4][2]int) uint64 {
	var attacks uint64
	for _, d := range directions {
		var df, dr = d[0], d[1]
		var f, r = File(sq) + df, Rank(sq) + dr
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			var b = SquareMask[MakeSquare(f, r)]
			attacks |= b
			if occ&b != 0 {
				break
			}
			f += df
			r += dr
		}
	}
	return attacks
}

// blockerSubset expands the index-th subset of mask: bit i of index selects
// the i-th set bit of mask.
func blockerSubset(mask uint64, index int) uint64 {
	var subset uint64
	var count = PopCount(mask)
	for i, our := 0, mask; i < count; i++ {
		var their = ((our - 1) & our) ^ our
		our &= our - 1
		if (1<<uint(i))&index != 0 {
			subset |= their
		}
	}
	return subset
}

const magicTrialBudget = 100000000

// findMagic searches for a multiplier that maps every blocker subset to a
// slot holding that subset's attack set. Aliased slots are accepted when the
// colliding subsets attack the same squares; a value-changing collision
// restarts the search with the next candidate. The RNG is seeded from the
// square so the table is identical on every build.
func findMagic(sq int, mask uint64, blockers, attacks []uint64) (uint64, error) {
	var shift = uint(64 - PopCount(mask))
	var used = make([]uint64, len(blockers))
	var r = rand.New(rand.NewSource(int64(sq) + 12345))

search:
	for attempt := 0; attempt < magicTrialBudget; attempt++ {
		var mult = r.Uint64() & r.Uint64() & r.Uint64()
		if PopCount((mask*mult)&0xFF00000000000000) < 6 {
			continue
		}
		for i := range used {
			used[i] = 0
		}
		for i, b := range blockers {
			// A slider always attacks its neighbor, so no attack set is
			// zero and zero can mark unfilled slots.
			var idx = (b * mult) >> shift
			if used[idx] == 0 {
				used[idx] = attacks[i]
			} else if used[idx] != attacks[i] {
				continue search
			}
		}
		return mult, nil
	}
	return 0, fmt.Errorf("magic search for %v exhausted %v trials", SquareName(sq), magicTrialBudget)
}
