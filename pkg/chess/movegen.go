package chess

const (
	f1g1Mask = (uint64(1) << SquareF1) | (uint64(1) << SquareG1)
	b1d1Mask = (uint64(1) << SquareB1) | (uint64(1) << SquareC1) | (uint64(1) << SquareD1)
	f8g8Mask = (uint64(1) << SquareF8) | (uint64(1) << SquareG8)
	b8d8Mask = (uint64(1) << SquareB8) | (uint64(1) << SquareC8) | (uint64(1) << SquareD8)
)

var (
	whiteKingSideCastle  = makeCastleMove(SquareE1, SquareG1)
	whiteQueenSideCastle = makeCastleMove(SquareE1, SquareC1)
	blackKingSideCastle  = makeCastleMove(SquareE8, SquareG8)
	blackQueenSideCastle = makeCastleMove(SquareE8, SquareC8)
)

// addPromotions expands a pawn move to the last rank into the four
// promotion moves.
func addPromotions(ml []Move, move Move) (count int) {
	ml[0] = move ^ Move(Queen<<18)
	ml[1] = move ^ Move(Rook<<18)
	ml[2] = move ^ Move(Bishop<<18)
	ml[3] = move ^ Move(Knight<<18)
	return 4
}

// GenerateMoves fills ml with the pseudo-legal moves of the side to move and
// returns the filled prefix. Pseudo-legal moves obey piece movement rules
// but may leave the own king attacked; castle candidates only require the
// right and empty squares between king and rook, the attacked-square
// conditions belong to the legality filter.
func (p *Position) GenerateMoves(ml []Move) []Move {
	var count = 0
	var fromBB, toBB uint64
	var from, to int

	var us = p.sideToMove
	var them = us.Opposite()
	var ownPieces = p.colors[us]
	var oppPieces = p.colors[them]
	var target = ^ownPieces

	var forward = pawnForward(us)
	var promotionRankMask = Rank8Mask
	var doublePushRank = Rank2
	if us == Black {
		promotionRankMask = Rank1Mask
		doublePushRank = Rank7
	}

	for fromBB = p.pieces[us][Pawn]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		to = from + forward
		if p.all&SquareMask[to] == 0 {
			if SquareMask[to]&promotionRankMask != 0 {
				count += addPromotions(ml[count:], makePawnMove(from, to, Empty, Empty))
			} else {
				ml[count] = makeMove(from, to, Pawn, Empty)
				count++
				if Rank(from) == doublePushRank && p.all&SquareMask[to+forward] == 0 {
					ml[count] = makeMove(from, to+forward, Pawn, Empty)
					count++
				}
			}
		}
		for toBB = p.att.PawnAttacks(from, us) & oppPieces; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			if SquareMask[to]&promotionRankMask != 0 {
				count += addPromotions(ml[count:], makePawnMove(from, to, p.WhatPiece(to), Empty))
			} else {
				ml[count] = makeMove(from, to, Pawn, p.WhatPiece(to))
				count++
			}
		}
		if p.epSquare != SquareNone &&
			p.att.PawnAttacks(from, us)&SquareMask[p.epSquare] != 0 {
			ml[count] = makeEnPassantMove(from, p.epSquare)
			count++
		}
	}

	for fromBB = p.pieces[us][Knight]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = p.att.KnightAttacks(from) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Knight, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = p.pieces[us][Bishop]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = p.att.BishopAttacks(from, p.all) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Bishop, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = p.pieces[us][Rook]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = p.att.RookAttacks(from, p.all) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Rook, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = p.pieces[us][Queen]; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = p.att.QueenAttacks(from, p.all) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Queen, p.WhatPiece(to))
			count++
		}
	}

	from = p.KingSquare(us)
	for toBB = p.att.KingAttacks(from) & target; toBB != 0; toBB &= toBB - 1 {
		to = FirstOne(toBB)
		ml[count] = makeMove(from, to, King, p.WhatPiece(to))
		count++
	}

	if us == White {
		if p.castlingRights&WhiteKingSide != 0 && p.all&f1g1Mask == 0 {
			ml[count] = whiteKingSideCastle
			count++
		}
		if p.castlingRights&WhiteQueenSide != 0 && p.all&b1d1Mask == 0 {
			ml[count] = whiteQueenSideCastle
			count++
		}
	} else {
		if p.castlingRights&BlackKingSide != 0 && p.all&f8g8Mask == 0 {
			ml[count] = blackKingSideCastle
			count++
		}
		if p.castlingRights&BlackQueenSide != 0 && p.all&b8d8Mask == 0 {
			ml[count] = blackQueenSideCastle
			count++
		}
	}

	return ml[:count]
}

// IsMoveLegal reports whether a pseudo-legal move leaves the mover's king
// unattacked. The move is tried on the live position and unmade; castling
// additionally requires the king's start and transit squares to be safe,
// the destination is covered by the usual king test.
func (p *Position) IsMoveLegal(m Move) bool {
	var us = p.sideToMove
	var them = us.Opposite()
	if m.IsCastle() {
		var transit = (m.From() + m.To()) / 2
		if p.IsAttackedBy(m.From(), them) || p.IsAttackedBy(transit, them) {
			return false
		}
	}
	var undo = p.MakeMove(m)
	var legal = !p.IsAttackedBy(p.KingSquare(us), them)
	p.UnmakeMove(m, undo)
	return legal
}

// GenerateLegalMoves returns every move of the side to move that does not
// leave its own king attacked.
func (p *Position) GenerateLegalMoves() []Move {
	var buffer [MaxMoves]Move
	var ml []Move
	for _, m := range p.GenerateMoves(buffer[:]) {
		if p.IsMoveLegal(m) {
			ml = append(ml, m)
		}
	}
	return ml
}
