// Command diagram renders a position as an SVG board, optionally overlaying
// the attack set of the piece standing on one square. Useful for eyeballing
// bitboards while debugging the move generator.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/avolkov/sokolmg/pkg/chess"
)

const cell = 64

var glyphs = [2][7]string{
	{"", "♙", "♘", "♗", "♖", "♕", "♔"},
	{"", "♟", "♞", "♝", "♜", "♛", "♚"},
}

func main() {
	var fen = flag.String("fen", chess.InitialPositionFEN, "position to render")
	var square = flag.String("square", "", "overlay the attack set of the piece on this square (e.g. e4)")
	var outPath = flag.String("out", "", "output file (default stdout)")
	flag.Parse()

	var att, err = chess.NewAttackTable()
	if err != nil {
		log.Fatal(err)
	}
	pos, err := chess.ParseFEN(att, *fen)
	if err != nil {
		log.Fatal(err)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	}

	var overlay uint64
	if *square != "" {
		var sq = chess.ParseSquare(*square)
		if sq == chess.SquareNone {
			log.Fatalf("bad square %q", *square)
		}
		overlay = attackSet(&pos, sq)
	}

	render(out, &pos, overlay)
}

func attackSet(p *chess.Position, sq int) uint64 {
	var pieceType, c, ok = p.PieceAt(sq)
	if !ok {
		return 0
	}
	var att = p.AttackTable()
	switch pieceType {
	case chess.Pawn:
		return att.PawnAttacks(sq, c)
	case chess.Knight:
		return att.KnightAttacks(sq)
	case chess.Bishop:
		return att.BishopAttacks(sq, p.AllPieces())
	case chess.Rook:
		return att.RookAttacks(sq, p.AllPieces())
	case chess.Queen:
		return att.QueenAttacks(sq, p.AllPieces())
	case chess.King:
		return att.KingAttacks(sq)
	}
	return 0
}

func render(out io.Writer, p *chess.Position, overlay uint64) {
	var canvas = svg.New(out)
	canvas.Start(8*cell, 8*cell)
	for rank := chess.Rank8; rank >= chess.Rank1; rank-- {
		for file := chess.FileA; file <= chess.FileH; file++ {
			var sq = chess.MakeSquare(file, rank)
			var x = file * cell
			var y = (7 - rank) * cell
			var fill = "fill:#f0d9b5"
			if chess.IsDarkSquare(sq) {
				fill = "fill:#b58863"
			}
			canvas.Rect(x, y, cell, cell, fill)
			if pieceType, c, ok := p.PieceAt(sq); ok {
				canvas.Text(x+cell/2, y+cell*3/4, glyphs[c][pieceType],
					"font-size:48px;text-anchor:middle")
			}
			if overlay&chess.SquareMask[sq] != 0 {
				canvas.Circle(x+cell/2, y+cell/2, cell/6,
					"fill:#15781b;fill-opacity:0.5")
			}
		}
	}
	canvas.End()
}
