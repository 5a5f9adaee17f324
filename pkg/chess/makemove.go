package chess

import "fmt"

func pawnForward(c Color) int {
	if c == White {
		return 8
	}
	return -8
}

// MakeMove applies a move produced by this position's generator and returns
// the undo record for the exactly inverse UnmakeMove call. The move is
// trusted: an inconsistent move (no mover on from, mismatched capture) is a
// contract violation and panics instead of corrupting the board.
func (p *Position) MakeMove(m Move) MoveUndo {
	var undo = MoveUndo{
		capturedPiece:  m.CapturedPiece(),
		epSquare:       p.epSquare,
		castlingRights: p.castlingRights,
		halfmoveClock:  p.halfmoveClock,
		hash:           p.hash,
	}

	var from = m.From()
	var to = m.To()
	var movingPiece = m.MovingPiece()
	var capturedPiece = m.CapturedPiece()
	var us = p.sideToMove
	var them = us.Opposite()

	if p.pieces[us][movingPiece]&SquareMask[from] == 0 {
		panic(fmt.Errorf("no %v to move on %v", pieceToChar(movingPiece, us), SquareName(from)))
	}

	if capturedPiece != Empty {
		var captureSq = to
		if m.IsEnPassant() {
			captureSq = to - pawnForward(us)
		}
		if p.pieces[them][capturedPiece]&SquareMask[captureSq] == 0 {
			panic(fmt.Errorf("no %v to capture on %v", pieceToChar(capturedPiece, them), SquareName(captureSq)))
		}
		p.xorPiece(capturedPiece, them, captureSq)
	}

	p.movePiece(movingPiece, us, from, to)
	if promotion := m.Promotion(); promotion != Empty {
		p.xorPiece(Pawn, us, to)
		p.xorPiece(promotion, us, to)
	}
	if m.IsCastle() {
		switch to {
		case SquareG1:
			p.movePiece(Rook, us, SquareH1, SquareF1)
		case SquareC1:
			p.movePiece(Rook, us, SquareA1, SquareD1)
		case SquareG8:
			p.movePiece(Rook, us, SquareH8, SquareF8)
		case SquareC8:
			p.movePiece(Rook, us, SquareA8, SquareD8)
		}
	}

	// Moving from or capturing on a rook home square, or moving the king,
	// revokes the matching rights for good.
	var newRights = p.castlingRights & castleMask[from] & castleMask[to]
	p.hash ^= castlingKey[p.castlingRights^newRights]
	p.castlingRights = newRights

	if p.epSquare != SquareNone {
		p.hash ^= enpassantKey[File(p.epSquare)]
	}
	p.epSquare = SquareNone
	if movingPiece == Pawn && AbsDelta(from, to) == 16 {
		p.epSquare = (from + to) / 2
		p.hash ^= enpassantKey[File(p.epSquare)]
	}

	if movingPiece == Pawn || capturedPiece != Empty {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if us == Black {
		p.fullmoveNumber++
	}

	p.sideToMove = them
	p.hash ^= sideKey

	return undo
}

// UnmakeMove reverses the matching MakeMove call bit for bit: all piece
// bitboards, the occupancy caches, the rights, clocks and hash come back to
// their prior values. Undo records must be consumed in LIFO order.
func (p *Position) UnmakeMove(m Move, undo MoveUndo) {
	var from = m.From()
	var to = m.To()
	var movingPiece = m.MovingPiece()
	var us = p.sideToMove.Opposite()
	var them = p.sideToMove

	if promotion := m.Promotion(); promotion != Empty {
		p.xorPiece(promotion, us, to)
		p.xorPiece(Pawn, us, to)
	}
	p.movePiece(movingPiece, us, to, from)
	if m.IsCastle() {
		switch to {
		case SquareG1:
			p.movePiece(Rook, us, SquareF1, SquareH1)
		case SquareC1:
			p.movePiece(Rook, us, SquareD1, SquareA1)
		case SquareG8:
			p.movePiece(Rook, us, SquareF8, SquareH8)
		case SquareC8:
			p.movePiece(Rook, us, SquareD8, SquareA8)
		}
	}

	if undo.capturedPiece != Empty {
		var captureSq = to
		if m.IsEnPassant() {
			captureSq = to - pawnForward(us)
		}
		p.xorPiece(undo.capturedPiece, them, captureSq)
	}

	if us == Black {
		p.fullmoveNumber--
	}
	p.sideToMove = us
	p.epSquare = undo.epSquare
	p.castlingRights = undo.castlingRights
	p.halfmoveClock = undo.halfmoveClock
	p.hash = undo.hash
}
