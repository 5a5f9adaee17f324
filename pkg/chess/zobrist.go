package chess

import "math/rand"

var (
	sideKey        uint64
	enpassantKey   [8]uint64
	castlingKey    [16]uint64
	pieceSquareKey [2][7][64]uint64
)

func init() {
	var r = rand.New(rand.NewSource(0))
	sideKey = r.Uint64()
	for i := range enpassantKey {
		enpassantKey[i] = r.Uint64()
	}
	for c := range pieceSquareKey {
		for pt := Pawn; pt <= King; pt++ {
			for sq := range pieceSquareKey[c][pt] {
				pieceSquareKey[c][pt][sq] = r.Uint64()
			}
		}
	}

	// castlingKey is composed so that toggling one right XORs one key,
	// which lets the incremental update hash the rights delta directly.
	var castle [4]uint64
	for i := range castle {
		castle[i] = r.Uint64()
	}
	for i := range castlingKey {
		for j := 0; j < 4; j++ {
			if (i & (1 << uint(j))) != 0 {
				castlingKey[i] ^= castle[j]
			}
		}
	}
}

func (p *Position) computeKey() uint64 {
	var result = uint64(0)
	if p.sideToMove == White {
		result ^= sideKey
	}
	result ^= castlingKey[p.castlingRights]
	if p.epSquare != SquareNone {
		result ^= enpassantKey[File(p.epSquare)]
	}
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for b := p.pieces[c][pt]; b != 0; b &= b - 1 {
				result ^= pieceSquareKey[c][pt][FirstOne(b)]
			}
		}
	}
	return result
}
