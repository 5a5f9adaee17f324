package chess

import "golang.org/x/sync/errgroup"

// AttackTable owns every precomputed attack bitboard: the magic-indexed
// rook/bishop tables packed into flat arrays, the static knight, king and
// pawn tables, and the between-squares table. It is immutable after
// NewAttackTable returns and safe to share across any number of goroutines.
type AttackTable struct {
	rookMagics    [64]Magic
	bishopMagics  [64]Magic
	rookAttacks   []uint64
	bishopAttacks []uint64
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
	pawnAttacks   [2][64]uint64
	between       [64][64]uint64
}

// NewAttackTable builds all tables. Magic multipliers are searched at
// construction time with per-square deterministic seeds; exhausting the
// trial budget surfaces as an error since no table can be built.
func NewAttackTable() (*AttackTable, error) {
	var t = &AttackTable{}
	t.initLeapers()

	var rookSize, bishopSize uint32
	for sq := 0; sq < 64; sq++ {
		var rookMask = occupancyMask(sq, rookDirections)
		t.rookMagics[sq] = Magic{Mask: rookMask, Shift: uint(64 - PopCount(rookMask)), Offset: rookSize}
		rookSize += uint32(t.rookMagics[sq].tableSize())

		var bishopMask = occupancyMask(sq, bishopDirections)
		t.bishopMagics[sq] = Magic{Mask: bishopMask, Shift: uint(64 - PopCount(bishopMask)), Offset: bishopSize}
		bishopSize += uint32(t.bishopMagics[sq].tableSize())
	}
	t.rookAttacks = make([]uint64, rookSize)
	t.bishopAttacks = make([]uint64, bishopSize)

	// Each (square, piece) search is independent and fills a disjoint
	// slice of the shared table, so the searches run concurrently.
	var g errgroup.Group
	for sq := 0; sq < 64; sq++ {
		var sq = sq
		g.Go(func() error {
			return fillSlider(sq, &t.rookMagics[sq], rookDirections, t.rookAttacks)
		})
		g.Go(func() error {
			return fillSlider(sq, &t.bishopMagics[sq], bishopDirections, t.bishopAttacks)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t.initBetween()
	return t, nil
}

func fillSlider(sq int, m *Magic, directions [4][2]int, table []uint64) error {
	var size = m.tableSize()
	var blockers = make([]uint64, size)
	var attacks = make([]uint64, size)
	for i := 0; i < size; i++ {
		blockers[i] = blockerSubset(m.Mask, i)
		attacks[i] = slideAttacks(sq, blockers[i], directions)
	}
	var mult, err = findMagic(sq, m.Mask, blockers, attacks)
	if err != nil {
		return err
	}
	m.Mult = mult
	for i := 0; i < size; i++ {
		table[m.Index(blockers[i])] = attacks[i]
	}
	return nil
}

func (t *AttackTable) initLeapers() {
	for sq := 0; sq < 64; sq++ {
		var b = SquareMask[sq]

		t.pawnAttacks[White][sq] = Up(Left(b) | Right(b))
		t.pawnAttacks[Black][sq] = Down(Left(b) | Right(b))

		t.knightAttacks[sq] = Right(UpRight(b)) | Up(UpRight(b)) |
			Up(UpLeft(b)) | Left(UpLeft(b)) |
			Left(DownLeft(b)) | Down(DownLeft(b)) |
			Down(DownRight(b)) | Right(DownRight(b))

		t.kingAttacks[sq] = UpRight(b) | Up(b) | UpLeft(b) | Left(b) |
			DownLeft(b) | Down(b) | DownRight(b) | Right(b)
	}
}

func (t *AttackTable) initBetween() {
	for s1 := 0; s1 < 64; s1++ {
		for s2 := 0; s2 < 64; s2++ {
			if (t.QueenAttacks(s1, 0) & SquareMask[s2]) != 0 {
				var delta = (s2 - s1) / SquareDistance(s1, s2)
				for s := s1 + delta; s != s2; s += delta {
					t.between[s1][s2] |= SquareMask[s]
				}
			}
		}
	}
}

func (t *AttackTable) RookAttacks(sq int, occ uint64) uint64 {
	return t.rookAttacks[t.rookMagics[sq].Index(occ)]
}

func (t *AttackTable) BishopAttacks(sq int, occ uint64) uint64 {
	return t.bishopAttacks[t.bishopMagics[sq].Index(occ)]
}

func (t *AttackTable) QueenAttacks(sq int, occ uint64) uint64 {
	return t.RookAttacks(sq, occ) | t.BishopAttacks(sq, occ)
}

func (t *AttackTable) KnightAttacks(sq int) uint64 {
	return t.knightAttacks[sq]
}

func (t *AttackTable) KingAttacks(sq int) uint64 {
	return t.kingAttacks[sq]
}

// PawnAttacks is capture-only: forward pushes are moves, not attacks.
func (t *AttackTable) PawnAttacks(sq int, c Color) uint64 {
	return t.pawnAttacks[c][sq]
}

// Between returns the squares strictly between two aligned squares, and zero
// when they share no rank, file or diagonal.
func (t *AttackTable) Between(sq1, sq2 int) uint64 {
	return t.between[sq1][sq2]
}
