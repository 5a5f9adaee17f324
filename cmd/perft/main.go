package main

import (
	"flag"
	"log"
	"runtime"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/avolkov/sokolmg/pkg/chess"
)

func main() {
	var fen = flag.String("fen", chess.InitialPositionFEN, "position to count from")
	var depth = flag.Int("depth", 5, "perft depth")
	var divide = flag.Bool("divide", false, "print per-root-move node counts")
	var workers = flag.Int("workers", runtime.NumCPU(), "concurrent root moves")
	flag.Parse()

	if *depth < 1 {
		log.Fatal("depth must be at least 1")
	}

	var att, err = chess.NewAttackTable()
	if err != nil {
		log.Fatal(err)
	}
	pos, err := chess.ParseFEN(att, *fen)
	if err != nil {
		log.Fatal(err)
	}

	var started = time.Now()

	// The root moves split across workers; every worker owns its own copy
	// of the position, the attack table is shared read-only.
	var mu sync.Mutex
	var counts = make(map[string]int)
	var g errgroup.Group
	g.SetLimit(*workers)
	for _, m := range pos.GenerateLegalMoves() {
		var m = m
		var child = pos
		child.MakeMove(m)
		g.Go(func() error {
			var nodes = perft(&child, *depth-1)
			mu.Lock()
			counts[m.String()] = nodes
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	var moves = maps.Keys(counts)
	slices.Sort(moves)
	var total = 0
	for _, lan := range moves {
		total += counts[lan]
		if *divide {
			log.Printf("%v: %v", lan, counts[lan])
		}
	}

	var elapsed = time.Since(started)
	log.Printf("perft(%v) = %v nodes in %v (%.0f knps)",
		*depth, total, elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds()/1000)
}

func perft(p *chess.Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var nodes = 0
	for _, m := range p.GenerateLegalMoves() {
		if depth == 1 {
			nodes++
			continue
		}
		var undo = p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UnmakeMove(m, undo)
	}
	return nodes
}
