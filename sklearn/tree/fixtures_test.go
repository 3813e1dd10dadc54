package tree

import (
	"strings"
	"testing"

	"github.com/YuminosukeSato/c45/core/dataset"
)

const weatherCSV = `sunny hot high false no
sunny hot high true no
overcast hot high false yes
rainy mild high false yes
rainy cool normal false yes
rainy cool normal true no
overcast cool normal true yes
sunny mild high false no
sunny cool normal false yes
rainy mild normal false yes
sunny mild normal true yes
overcast mild high true yes
overcast hot normal false yes
rainy mild high true no`

// weatherTable is the classic 14-row play-tennis dataset, all categorical.
func weatherTable(t testing.TB) *dataset.Table {
	t.Helper()
	var rows [][]dataset.Value
	for _, line := range strings.Split(weatherCSV, "\n") {
		var row []dataset.Value
		for _, f := range strings.Fields(line) {
			row = append(row, dataset.NewCategorical(f))
		}
		rows = append(rows, row)
	}
	return mustTable(t, []string{"outlook", "temperature", "humidity", "windy", "play"}, rows)
}

// stairTable has x = 1..9 with classes a a a b b b a a b.
func stairTable(t testing.TB) *dataset.Table {
	t.Helper()
	var rows [][]dataset.Value
	for i, c := range "aaabbbaab" {
		rows = append(rows, []dataset.Value{dataset.NewNumeric(i + 1), dataset.NewCategorical(string(c))})
	}
	return mustTable(t, []string{"x", "y"}, rows)
}

func mustTable(t testing.TB, header []string, rows [][]dataset.Value) *dataset.Table {
	t.Helper()
	tbl, err := dataset.NewTable(header, rows)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	return tbl
}

func cat(s string) dataset.Value { return dataset.NewCategorical(s) }
func num(n int) dataset.Value    { return dataset.NewNumeric(n) }
