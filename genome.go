package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/evolbioinfo/goalign/io/utils"
	"gonum.org/v1/plot/vg"
)

// Genome is one assembly of the figure with its chromosomes in fasta order.
type Genome struct {
	Name string
	Path string
	Chrs []string

	// LineColor and LineWidth are nil/zero unless set with the lc and lw tags.
	LineColor color.Color
	LineWidth vg.Length

	lengths map[string]int
	index   map[string]int
}

// Length returns the length of chromosome chr.
func (g *Genome) Length(chr string) (int, bool) {
	l, ok := g.lengths[chr]
	return l, ok
}

// Index returns the fasta position of chromosome chr.
func (g *Genome) Index(chr string) (int, bool) {
	i, ok := g.index[chr]
	return i, ok
}

func newGenome(name, path string) *Genome {
	return &Genome{
		Name:    name,
		Path:    path,
		lengths: make(map[string]int),
		index:   make(map[string]int),
	}
}

func (g *Genome) addChromosome(chr string, length int) error {
	if _, exists := g.lengths[chr]; exists {
		return fmt.Errorf("duplicate chromosome %s in %s", chr, g.Path)
	}
	g.index[chr] = len(g.Chrs)
	g.Chrs = append(g.Chrs, chr)
	g.lengths[chr] = length
	return nil
}

// ReadGenomes reads the genomes file: one "fasta<TAB>name[<TAB>tags]" line per
// genome, in plotting order. Every fasta is read to get chromosome lengths.
func ReadGenomes(path string) ([]*Genome, error) {
	fi, r, err := utils.GetReader(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open genomes file: %w", err)
	}
	defer fi.Close()
	reader := newTSVReader(r)
	var genomes []*Genome
	names := make(map[string]bool)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("cannot read genomes file %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, fmt.Errorf("%s:%d: expected fasta path and genome name", path, line)
		}
		name := strings.TrimSpace(record[1])
		if names[name] {
			return nil, fmt.Errorf("%s:%d: genome name %s is not unique", path, line, name)
		}
		names[name] = true
		g := newGenome(name, strings.TrimSpace(record[0]))
		if len(record) > 2 {
			if err := g.parseTags(record[2]); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, line, err)
			}
		}
		if err := g.readFasta(); err != nil {
			return nil, err
		}
		log.Infof("read %d chromosomes for genome %s", len(g.Chrs), g.Name)
		genomes = append(genomes, g)
	}
	if len(genomes) < 2 {
		return nil, fmt.Errorf("genomes file %s lists %d genome(s), at least 2 are needed", path, len(genomes))
	}
	return genomes, nil
}

func (g *Genome) parseTags(tags string) error {
	for _, tag := range strings.Split(tags, ";") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key, value, ok := strings.Cut(tag, ":")
		if !ok {
			return fmt.Errorf("malformed tag %q for genome %s", tag, g.Name)
		}
		switch key {
		case "lc":
			c, err := parseColor(value)
			if err != nil {
				return fmt.Errorf("genome %s: %w", g.Name, err)
			}
			g.LineColor = c
		case "lw":
			w, err := strconv.ParseFloat(value, 64)
			if err != nil || w <= 0 {
				return fmt.Errorf("genome %s: invalid line width %q", g.Name, value)
			}
			g.LineWidth = vg.Points(w)
		default:
			return fmt.Errorf("unknown tag %q for genome %s", key, g.Name)
		}
	}
	return nil
}

func (g *Genome) readFasta() error {
	fi, r, err := utils.GetReader(g.Path)
	if err != nil {
		return fmt.Errorf("cannot open fasta for genome %s: %w", g.Name, err)
	}
	defer fi.Close()
	// one record at a time, only ids and lengths are kept
	in := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	for {
		seq, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return fmt.Errorf("cannot parse fasta %s: %w", g.Path, err)
		}
		if seq.Name() == "" {
			return fmt.Errorf("unnamed sequence in %s", g.Path)
		}
		if err := g.addChromosome(seq.Name(), seq.Len()); err != nil {
			return err
		}
	}
	if len(g.Chrs) == 0 {
		return fmt.Errorf("no sequence in %s", g.Path)
	}
	return nil
}

func newTSVReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}
