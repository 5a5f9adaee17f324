package chess

// Move packs from, to, the moving piece, the captured piece (if any), the
// promotion piece (if any) and the special-move flags into one value.
type Move int32

const MoveEmpty = Move(0)

const (
	flagEnPassant Move = 1 << 21
	flagCastle    Move = 1 << 22
)

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15))
}

func makePawnMove(from, to, capturedPiece, promotion int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (capturedPiece << 15) ^ (promotion << 18))
}

func makeEnPassantMove(from, to int) Move {
	return makeMove(from, to, Pawn, Pawn) | flagEnPassant
}

func makeCastleMove(from, to int) Move {
	return makeMove(from, to, King, Empty) | flagCastle
}

func (m Move) From() int {
	return int(m & 63)
}

func (m Move) To() int {
	return int((m >> 6) & 63)
}

func (m Move) MovingPiece() int {
	return int((m >> 12) & 7)
}

func (m Move) CapturedPiece() int {
	return int((m >> 15) & 7)
}

func (m Move) Promotion() int {
	return int((m >> 18) & 7)
}

func (m Move) IsEnPassant() bool {
	return m&flagEnPassant != 0
}

func (m Move) IsCastle() bool {
	return m&flagCastle != 0
}

func (m Move) IsCapture() bool {
	return m.CapturedPiece() != Empty
}

func (m Move) IsPromotion() bool {
	return m.Promotion() != Empty
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// MoveUndo snapshots the irreversible parts of a position before a move is
// made. Each value pairs with exactly one MakeMove call and must be handed
// back to UnmakeMove in reverse order of the makes.
type MoveUndo struct {
	capturedPiece  int
	epSquare       int
	castlingRights int
	halfmoveClock  int
	hash           uint64
}
