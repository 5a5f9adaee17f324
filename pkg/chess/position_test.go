package chess

import "testing"

var testFENs = []string{
	InitialPositionFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
}

func TestFENRoundTrip(t *testing.T) {
	for _, fen := range testFENs {
		var p = mustParseFEN(t, fen)
		if got := p.String(); got != fen {
			t.Errorf("round trip: got %v, want %v", got, fen)
		}
	}
}

func TestParseFENRejectsBroken(t *testing.T) {
	var tab = testTable(t)
	var bad = []string{
		"",
		"rnbqkbnr/pppppppp/8/8",
		// Side not to move left in check.
		"4K3/8/8/8/8/8/8/4k2R w - - 0 1",
		// Missing king.
		"8/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(tab, fen); err == nil {
			t.Errorf("ParseFEN(%q) accepted a broken record", fen)
		}
	}
}

// occupancy caches must always equal the union of the piece bitboards.
func checkOccupancy(t *testing.T, p *Position, context string) {
	t.Helper()
	for c := White; c <= Black; c++ {
		var union uint64
		for pieceType := Pawn; pieceType <= King; pieceType++ {
			union |= p.Pieces(c, pieceType)
		}
		if union != p.PiecesByColor(c) {
			t.Fatalf("%v: color %v cache %v != union %v",
				context, c, BitboardString(p.PiecesByColor(c)), BitboardString(union))
		}
	}
	if p.PiecesByColor(White)|p.PiecesByColor(Black) != p.AllPieces() {
		t.Fatalf("%v: all-pieces cache out of sync", context)
	}
	if p.PiecesByColor(White)&p.PiecesByColor(Black) != 0 {
		t.Fatalf("%v: color bitboards overlap", context)
	}
}

func TestOccupancyCaches(t *testing.T) {
	for _, fen := range testFENs {
		var p = mustParseFEN(t, fen)
		checkOccupancy(t, &p, fen)
		for _, m := range p.GenerateLegalMoves() {
			var undo = p.MakeMove(m)
			checkOccupancy(t, &p, fen+" after "+m.String())
			p.UnmakeMove(m, undo)
			checkOccupancy(t, &p, fen+" after unmake "+m.String())
		}
	}
}

func TestMakeUnmakeRestoresState(t *testing.T) {
	for _, fen := range testFENs {
		var p = mustParseFEN(t, fen)
		var before = p
		for _, m := range p.GenerateLegalMoves() {
			var undo = p.MakeMove(m)
			if p.Hash() != p.computeKey() {
				t.Fatalf("%v %v: incremental hash diverged from full recompute", fen, m)
			}
			p.UnmakeMove(m, undo)
			if p != before {
				t.Fatalf("%v: make/unmake of %v did not restore the position", fen, m)
			}
		}
	}
}

// A nested make/make/unmake/unmake sequence exercises the LIFO discipline.
func TestMakeUnmakeNested(t *testing.T) {
	var p = mustParseFEN(t, InitialPositionFEN)
	var before = p
	for _, m1 := range p.GenerateLegalMoves() {
		var u1 = p.MakeMove(m1)
		var afterFirst = p
		for _, m2 := range p.GenerateLegalMoves() {
			var u2 = p.MakeMove(m2)
			p.UnmakeMove(m2, u2)
			if p != afterFirst {
				t.Fatalf("inner unmake of %v after %v corrupted state", m2, m1)
			}
		}
		p.UnmakeMove(m1, u1)
		if p != before {
			t.Fatalf("outer unmake of %v corrupted state", m1)
		}
	}
}

func TestMakeMoveBookkeeping(t *testing.T) {
	t.Run("double push sets en passant", func(t *testing.T) {
		var p = mustParseFEN(t, InitialPositionFEN)
		var m = findMove(t, &p, "e2e4")
		p.MakeMove(m)
		if p.EpSquare() != SquareE3 {
			t.Fatalf("ep square = %v, want e3", SquareName(p.EpSquare()))
		}
		if p.SideToMove() != Black {
			t.Fatal("side to move did not toggle")
		}
	})

	t.Run("single push clears en passant", func(t *testing.T) {
		var p = mustParseFEN(t, "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
		var m = findMove(t, &p, "g1f3")
		p.MakeMove(m)
		if p.EpSquare() != SquareNone {
			t.Fatal("ep square must clear on a non-double-push")
		}
	})

	t.Run("en passant capture removes pawn behind target", func(t *testing.T) {
		var p = mustParseFEN(t, "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
		var m = findMove(t, &p, "e5f6")
		if !m.IsEnPassant() {
			t.Fatal("e5f6 must be an en passant capture")
		}
		p.MakeMove(m)
		if p.Pieces(Black, Pawn)&SquareMask[SquareF5] != 0 {
			t.Fatal("captured pawn must be removed from f5, one rank behind the target")
		}
		if p.Pieces(White, Pawn)&SquareMask[SquareF6] == 0 {
			t.Fatal("capturing pawn must land on f6")
		}
	})

	t.Run("king move revokes both rights", func(t *testing.T) {
		var p = mustParseFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
		p.MakeMove(findMove(t, &p, "e1d1"))
		if p.CastlingRights()&(WhiteKingSide|WhiteQueenSide) != 0 {
			t.Fatal("king move must revoke both own rights")
		}
		if p.CastlingRights()&(BlackKingSide|BlackQueenSide) != (BlackKingSide | BlackQueenSide) {
			t.Fatal("king move must not touch opponent rights")
		}
	})

	t.Run("capture on rook square revokes that right", func(t *testing.T) {
		var p = mustParseFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
		p.MakeMove(findMove(t, &p, "f3h3")) // not a rook-square capture
		if p.CastlingRights() != WhiteKingSide|WhiteQueenSide|BlackKingSide|BlackQueenSide {
			t.Fatal("unrelated capture must keep all rights")
		}
		p = mustParseFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R b KQkq - 0 1")
		p.MakeMove(findMove(t, &p, "h3g2"))
		p.MakeMove(findMove(t, &p, "e2d3"))
		p.MakeMove(findMove(t, &p, "g2h1q"))
		if p.CastlingRights()&WhiteKingSide != 0 {
			t.Fatal("capture on h1 must revoke the white kingside right")
		}
	})

	t.Run("castling relocates rook", func(t *testing.T) {
		var p = mustParseFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
		var m = findMove(t, &p, "e1g1")
		if !m.IsCastle() {
			t.Fatal("e1g1 must be a castle move here")
		}
		p.MakeMove(m)
		if p.Pieces(White, Rook)&SquareMask[SquareF1] == 0 {
			t.Fatal("castling must move the rook to f1")
		}
		if p.Pieces(White, Rook)&SquareMask[SquareH1] != 0 {
			t.Fatal("castling must clear the rook from h1")
		}
	})

	t.Run("promotion replaces pawn", func(t *testing.T) {
		var p = mustParseFEN(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
		var m = findMove(t, &p, "d7c8q")
		p.MakeMove(m)
		if p.Pieces(White, Pawn)&SquareMask[SquareC8] != 0 {
			t.Fatal("promoted pawn must leave the board")
		}
		if p.Pieces(White, Queen)&SquareMask[SquareC8] == 0 {
			t.Fatal("promotion must place the queen")
		}
	})

	t.Run("clocks", func(t *testing.T) {
		var p = mustParseFEN(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10")
		p.MakeMove(findMove(t, &p, "a1b1"))
		if p.HalfmoveClock() != 1 {
			t.Fatalf("halfmove clock = %v, want 1", p.HalfmoveClock())
		}
		if p.FullmoveNumber() != 10 {
			t.Fatalf("fullmove number = %v, want 10 before black moved", p.FullmoveNumber())
		}
		p.MakeMove(findMove(t, &p, "c6d4"))
		if p.HalfmoveClock() != 2 {
			t.Fatalf("halfmove clock = %v, want 2", p.HalfmoveClock())
		}
		if p.FullmoveNumber() != 11 {
			t.Fatalf("fullmove number = %v, want 11 after black moved", p.FullmoveNumber())
		}
		p.MakeMove(findMove(t, &p, "f3d4"))
		if p.HalfmoveClock() != 0 {
			t.Fatal("capture must reset the halfmove clock")
		}
	})
}

func TestMakeMovePanicsOnInconsistentMove(t *testing.T) {
	var p = mustParseFEN(t, InitialPositionFEN)
	defer func() {
		if recover() == nil {
			t.Fatal("MakeMove must panic when no mover stands on the from square")
		}
	}()
	p.MakeMove(makeMove(SquareE4, SquareE5, Pawn, Empty))
}

func findMove(t *testing.T, p *Position, lan string) Move {
	t.Helper()
	for _, m := range p.GenerateLegalMoves() {
		if m.String() == lan {
			return m
		}
	}
	t.Fatalf("move %v not found in %v", lan, p)
	return MoveEmpty
}
