package main

import (
	"fmt"

	"github.com/fredericlemoine/bitset"
)

// Group is a set of homologous chromosomes, one per genome, in genome order.
// Group[0] is the reference chromosome.
type Group []string

// BuildGroups chains the homology maps of the annotation sets starting from
// every reference chromosome annotated in the first set, in fasta order.
// Every chromosome may belong to one group only.
func BuildGroups(genomes []*Genome, sets []*AlignmentSet) ([]Group, error) {
	if len(sets) != len(genomes)-1 {
		return nil, fmt.Errorf("%d genomes need %d annotation files, got %d", len(genomes), len(genomes)-1, len(sets))
	}
	annotated := make(map[string]bool)
	for _, r := range sets[0].Rows {
		annotated[r.AChr] = true
	}
	claimed := make([]*bitset.BitSet, len(genomes))
	for i, g := range genomes {
		claimed[i] = bitset.New(uint(len(g.Chrs)))
	}
	var groups []Group
	for _, c := range genomes[0].Chrs {
		if !annotated[c] {
			continue
		}
		group := Group{c}
		cur := c
		for i, set := range sets {
			next, ok := set.Homology[cur]
			if !ok {
				return nil, fmt.Errorf("no chromosome of %s is homologous to %s:%s in %s",
					genomes[i+1].Name, genomes[i].Name, cur, set.Name)
			}
			group = append(group, next)
			cur = next
		}
		for i, chr := range group {
			idx, ok := genomes[i].Index(chr)
			if !ok {
				return nil, fmt.Errorf("chromosome %s not found in genome %s", chr, genomes[i].Name)
			}
			if claimed[i].Test(uint(idx)) {
				return nil, fmt.Errorf("chromosome %s:%s is homologous to more than one reference chromosome (%s, %s)",
					genomes[i].Name, chr, owner(groups, i, chr), c)
			}
			claimed[i].Set(uint(idx))
		}
		groups = append(groups, group)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no homologous chromosome group left to plot")
	}
	log.Infof("%d groups of homologous chromosomes", len(groups))
	return groups, nil
}

func owner(groups []Group, genome int, chr string) string {
	for _, g := range groups {
		if g[genome] == chr {
			return g[0]
		}
	}
	return ""
}
