package chess

import (
	"bytes"
	"fmt"
	"strconv"
	s "strings"
	"unicode"
)

// Position is the full game state. The per-piece bitboards partition the
// board; the color bitboards and the all-pieces bitboard are derived caches
// that every mutation re-establishes before returning. A Position is
// single-writer: concurrent workers must each own their own copy.
type Position struct {
	att            *AttackTable
	pieces         [2][7]uint64
	colors         [2]uint64
	all            uint64
	sideToMove     Color
	castlingRights int
	epSquare       int
	halfmoveClock  int
	fullmoveNumber int
	hash           uint64
}

func (p *Position) SideToMove() Color { return p.sideToMove }

func (p *Position) CastlingRights() int { return p.castlingRights }

func (p *Position) EpSquare() int { return p.epSquare }

func (p *Position) HalfmoveClock() int { return p.halfmoveClock }

func (p *Position) FullmoveNumber() int { return p.fullmoveNumber }

func (p *Position) Hash() uint64 { return p.hash }

func (p *Position) AllPieces() uint64 { return p.all }

func (p *Position) AttackTable() *AttackTable { return p.att }

func (p *Position) PiecesByColor(c Color) uint64 {
	return p.colors[c]
}

func (p *Position) Pieces(c Color, pieceType int) uint64 {
	return p.pieces[c][pieceType]
}

func (p *Position) KingSquare(c Color) int {
	return FirstOne(p.pieces[c][King])
}

// xorPiece toggles one piece on one square and keeps the occupancy caches
// and the incremental hash in step.
func (p *Position) xorPiece(pieceType int, c Color, sq int) {
	var b = SquareMask[sq]
	p.pieces[c][pieceType] ^= b
	p.colors[c] ^= b
	p.all = p.colors[White] | p.colors[Black]
	p.hash ^= pieceSquareKey[c][pieceType][sq]
}

func (p *Position) movePiece(pieceType int, c Color, from, to int) {
	var b = SquareMask[from] ^ SquareMask[to]
	p.pieces[c][pieceType] ^= b
	p.colors[c] ^= b
	p.all = p.colors[White] | p.colors[Black]
	p.hash ^= pieceSquareKey[c][pieceType][from] ^ pieceSquareKey[c][pieceType][to]
}

func (p *Position) WhatPiece(sq int) int {
	var b = SquareMask[sq]
	if p.all&b == 0 {
		return Empty
	}
	for pieceType := Pawn; pieceType <= King; pieceType++ {
		if (p.pieces[White][pieceType]|p.pieces[Black][pieceType])&b != 0 {
			return pieceType
		}
	}
	panic(fmt.Errorf("inconsistent occupancy on %v", SquareName(sq)))
}

func (p *Position) PieceAt(sq int) (pieceType int, c Color, ok bool) {
	var b = SquareMask[sq]
	if p.colors[White]&b != 0 {
		c = White
	} else if p.colors[Black]&b != 0 {
		c = Black
	} else {
		return Empty, White, false
	}
	return p.WhatPiece(sq), c, true
}

// IsAttackedBy reports whether any piece of color c attacks sq. The pawn
// test looks the defender's capture pattern up from sq, which lands exactly
// on the squares an attacking pawn of color c would stand on.
func (p *Position) IsAttackedBy(sq int, c Color) bool {
	if p.att.PawnAttacks(sq, c.Opposite())&p.pieces[c][Pawn] != 0 {
		return true
	}
	if p.att.KnightAttacks(sq)&p.pieces[c][Knight] != 0 {
		return true
	}
	if p.att.KingAttacks(sq)&p.pieces[c][King] != 0 {
		return true
	}
	if p.att.BishopAttacks(sq, p.all)&(p.pieces[c][Bishop]|p.pieces[c][Queen]) != 0 {
		return true
	}
	if p.att.RookAttacks(sq, p.all)&(p.pieces[c][Rook]|p.pieces[c][Queen]) != 0 {
		return true
	}
	return false
}

// AttackersTo unions, over both colors and all piece kinds, every piece that
// attacks sq under the current occupancy.
func (p *Position) AttackersTo(sq int) uint64 {
	var pawns = p.pieces[White][Pawn] | p.pieces[Black][Pawn]
	var knights = p.pieces[White][Knight] | p.pieces[Black][Knight]
	var kings = p.pieces[White][King] | p.pieces[Black][King]
	var bishops = p.pieces[White][Bishop] | p.pieces[Black][Bishop] |
		p.pieces[White][Queen] | p.pieces[Black][Queen]
	var rooks = p.pieces[White][Rook] | p.pieces[Black][Rook] |
		p.pieces[White][Queen] | p.pieces[Black][Queen]
	return (p.att.PawnAttacks(sq, Black) & pawns & p.colors[White]) |
		(p.att.PawnAttacks(sq, White) & pawns & p.colors[Black]) |
		(p.att.KnightAttacks(sq) & knights) |
		(p.att.BishopAttacks(sq, p.all) & bishops) |
		(p.att.RookAttacks(sq, p.all) & rooks) |
		(p.att.KingAttacks(sq) & kings)
}

func (p *Position) Checkers() uint64 {
	return p.AttackersTo(p.KingSquare(p.sideToMove)) & p.colors[p.sideToMove.Opposite()]
}

func (p *Position) IsCheck() bool {
	return p.Checkers() != 0
}

// Pinned returns the pieces of color c that cannot leave the ray between
// their king and an enemy slider. A candidate slider must see the king on an
// otherwise empty board; the pin holds only when exactly one piece stands
// strictly between and that piece belongs to c. Two or more blockers shield
// the king instead of pinning.
func (p *Position) Pinned(c Color) uint64 {
	var kingSq = p.KingSquare(c)
	var them = c.Opposite()
	var snipers = (p.att.RookAttacks(kingSq, 0) & (p.pieces[them][Rook] | p.pieces[them][Queen])) |
		(p.att.BishopAttacks(kingSq, 0) & (p.pieces[them][Bishop] | p.pieces[them][Queen]))

	var pinned uint64
	for ; snipers != 0; snipers &= snipers - 1 {
		var blockers = p.att.Between(FirstOne(snipers), kingSq) & p.all
		if blockers != 0 && !MoreThanOne(blockers) && blockers&p.colors[c] != 0 {
			pinned |= blockers
		}
	}
	return pinned
}

var castleMask [64]int

func init() {
	for i := range castleMask {
		castleMask[i] = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
	}
	castleMask[SquareA1] &^= WhiteQueenSide
	castleMask[SquareE1] &^= WhiteQueenSide | WhiteKingSide
	castleMask[SquareH1] &^= WhiteKingSide
	castleMask[SquareA8] &^= BlackQueenSide
	castleMask[SquareE8] &^= BlackQueenSide | BlackKingSide
	castleMask[SquareH8] &^= BlackKingSide
}

type coloredPiece struct {
	Type int
	Side Color
}

func parsePiece(ch rune) coloredPiece {
	var side = Black
	if unicode.IsUpper(ch) {
		side = White
	}
	var i = s.Index("pnbrqk", string(unicode.ToLower(ch)))
	if i < 0 {
		return coloredPiece{Empty, White}
	}
	return coloredPiece{i + Pawn, side}
}

func pieceToChar(pieceType int, side Color) string {
	var result = string("pnbrqk"[pieceType-Pawn])
	if side == White {
		result = s.ToUpper(result)
	}
	return result
}

func createPosition(att *AttackTable, board [64]coloredPiece, stm Color,
	castlingRights, ep, halfmove, fullmove int) (Position, bool) {
	var p = Position{
		att:            att,
		sideToMove:     stm,
		castlingRights: castlingRights,
		epSquare:       ep,
		halfmoveClock:  halfmove,
		fullmoveNumber: fullmove,
	}

	for sq, piece := range board {
		if piece.Type != Empty {
			p.xorPiece(piece.Type, piece.Side, sq)
		}
	}

	p.hash = p.computeKey()

	if p.pieces[White][King] == 0 || p.pieces[Black][King] == 0 {
		return Position{}, false
	}
	// The side not on move may not be left in check.
	if p.IsAttackedBy(p.KingSquare(stm.Opposite()), stm) {
		return Position{}, false
	}
	return p, true
}

// ParseFEN builds a Position from a FEN record, bound to the given attack
// table for all of its queries.
func ParseFEN(att *AttackTable, fen string) (Position, error) {
	var tokens = s.Split(fen, " ")
	if len(tokens) <= 3 {
		return Position{}, fmt.Errorf("parse fen failed %v", fen)
	}

	var board [64]coloredPiece
	var i = 0
	for _, ch := range tokens[0] {
		if unicode.IsDigit(ch) {
			var n, _ = strconv.Atoi(string(ch))
			i += n
		} else if unicode.IsLetter(ch) {
			board[FlipSquare(i)] = parsePiece(ch)
			i++
		}
	}

	var stm = Black
	if tokens[1] == "w" {
		stm = White
	}

	var castlingRights = 0
	if s.Contains(tokens[2], "K") {
		castlingRights |= WhiteKingSide
	}
	if s.Contains(tokens[2], "Q") {
		castlingRights |= WhiteQueenSide
	}
	if s.Contains(tokens[2], "k") {
		castlingRights |= BlackKingSide
	}
	if s.Contains(tokens[2], "q") {
		castlingRights |= BlackQueenSide
	}

	var epSquare = ParseSquare(tokens[3])

	var halfmove = 0
	if len(tokens) > 4 {
		halfmove, _ = strconv.Atoi(tokens[4])
	}
	var fullmove = 1
	if len(tokens) > 5 {
		fullmove, _ = strconv.Atoi(tokens[5])
	}

	var pos, ok = createPosition(att, board, stm, castlingRights, epSquare, halfmove, fullmove)
	if !ok {
		return Position{}, fmt.Errorf("parse fen failed %v", fen)
	}
	return pos, nil
}

// String renders the position back as a FEN record.
func (p *Position) String() string {
	var sb bytes.Buffer

	var emptyCount = 0
	for i := 0; i < 64; i++ {
		var sq = FlipSquare(i)
		var pieceType, side, ok = p.PieceAt(sq)
		if !ok {
			emptyCount++
		} else {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			sb.WriteString(pieceToChar(pieceType, side))
		}

		if File(sq) == FileH {
			if emptyCount != 0 {
				sb.WriteString(strconv.Itoa(emptyCount))
				emptyCount = 0
			}
			if Rank(sq) != Rank1 {
				sb.WriteString("/")
			}
		}
	}
	sb.WriteString(" ")
	sb.WriteString(p.sideToMove.String())
	sb.WriteString(" ")

	if p.castlingRights == 0 {
		sb.WriteString("-")
	} else {
		if p.castlingRights&WhiteKingSide != 0 {
			sb.WriteString("K")
		}
		if p.castlingRights&WhiteQueenSide != 0 {
			sb.WriteString("Q")
		}
		if p.castlingRights&BlackKingSide != 0 {
			sb.WriteString("k")
		}
		if p.castlingRights&BlackQueenSide != 0 {
			sb.WriteString("q")
		}
	}
	sb.WriteString(" ")

	if p.epSquare == SquareNone {
		sb.WriteString("-")
	} else {
		sb.WriteString(SquareName(p.epSquare))
	}
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.halfmoveClock))
	sb.WriteString(" ")
	sb.WriteString(strconv.Itoa(p.fullmoveNumber))

	return sb.String()
}
