package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fastaRecord(name string, length int) string {
	return ">" + name + "\n" + strings.Repeat("ACGT", length/4) + strings.Repeat("A", length%4)
}

// testGenome builds a genome without reading a fasta file.
func testGenome(t *testing.T, name string, chrs []string, lengths []int) *Genome {
	t.Helper()
	g := newGenome(name, name+".fa")
	for i, c := range chrs {
		if err := g.addChromosome(c, lengths[i]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}
