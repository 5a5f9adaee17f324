package chess

import (
	"sync"
	"testing"
)

var (
	testTableOnce sync.Once
	testTableVal  *AttackTable
	testTableErr  error
)

// testTable builds the shared attack table once per test binary. The build
// is deterministic, so every test sees identical tables.
func testTable(tb testing.TB) *AttackTable {
	testTableOnce.Do(func() {
		testTableVal, testTableErr = NewAttackTable()
	})
	if testTableErr != nil {
		tb.Fatal(testTableErr)
	}
	return testTableVal
}

func mustParseFEN(tb testing.TB, fen string) Position {
	var p, err = ParseFEN(testTable(tb), fen)
	if err != nil {
		tb.Fatal(err)
	}
	return p
}
