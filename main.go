package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type args struct {
	syriFiles   []string
	bedFiles    []string
	genomesFile string
	markerFile  string
	styleFile   string
	chrs        []string
	filter      FilterOptions
	ribbons     bool
	fontSize    float64
	height      float64
	width       float64
	space       float64
	format      string
	prefix      string
	dpi         int
	vertical    bool
	logLevel    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var a args
	cmd := &cobra.Command{
		Use:   "plotsr --sr FILE... --genomes FILE [flags]",
		Short: "Plot structural rearrangements between genomes",
		Long: `Plot synteny and structural rearrangements between two or more genomes.

Give one annotation file (--sr syri.out, or --bp BEDPE-like) per pair of
consecutive genomes of the --genomes file.` + StyleHelp,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := setupLogging(a.logLevel); err != nil {
				return err
			}
			return run(a)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&a.syriFiles, "sr", nil, "syri.out file, once per genome pair")
	f.StringArrayVar(&a.bedFiles, "bp", nil, "BEDPE-like annotation file, once per genome pair")
	f.StringVar(&a.genomesFile, "genomes", "", "tab separated file listing fasta path, genome name and tags of every genome")
	f.StringVarP(&a.markerFile, "markers", "B", "", "annotation bed file for marking specific positions on genomes")
	f.StringVar(&a.styleFile, "cfg", "", "TOML style file")
	f.StringSliceVar(&a.chrs, "chr", nil, "reference chromosomes to plot (default all)")
	f.BoolVar(&a.filter.NoSyn, "nosyn", false, "do not plot syntenic regions")
	f.BoolVar(&a.filter.NoInv, "noinv", false, "do not plot inversions")
	f.BoolVar(&a.filter.NoTr, "notr", false, "do not plot translocations")
	f.BoolVar(&a.filter.NoDup, "nodup", false, "do not plot duplications")
	f.IntVarP(&a.filter.MinSize, "size", "s", 10000, "minimum size of a structural annotation to be plotted")
	f.BoolVarP(&a.ribbons, "ribbons", "R", false, "join consecutive annotations into ribbons")
	f.Float64VarP(&a.fontSize, "fontsize", "f", 6, "font size")
	f.Float64VarP(&a.height, "height", "H", 0, "height of the plot in inches")
	f.Float64VarP(&a.width, "width", "W", 0, "width of the plot in inches")
	f.Float64VarP(&a.space, "space", "S", 0.7, "space between homologous chromosomes (0.1-0.9), increase it to make room for markers")
	f.StringVarP(&a.format, "format", "o", "pdf", "output file format ("+strings.Join(outputFormats, ", ")+")")
	f.StringVar(&a.prefix, "prefix", "plotsr", "output file name, without extension")
	f.IntVarP(&a.dpi, "dpi", "d", 300, "DPI of png images")
	f.BoolVarP(&a.vertical, "vertical", "v", false, "plot vertical chromosomes")
	f.StringVar(&a.logLevel, "log", "WARN", "log level ("+strings.Join(logLevels, ", ")+")")
	cmd.MarkFlagRequired("genomes")
	cmd.MarkFlagsMutuallyExclusive("sr", "bp")
	return cmd
}

func (a args) validate() error {
	if len(a.syriFiles) == 0 && len(a.bedFiles) == 0 {
		return fmt.Errorf("one of --sr or --bp is required")
	}
	if a.space < minSpace || a.space > maxSpace {
		return fmt.Errorf("out of range value for -S, use a value in [%g, %g]", minSpace, maxSpace)
	}
	if !slices.Contains(outputFormats, a.format) {
		return fmt.Errorf("unsupported output format %q, expected one of %s", a.format, strings.Join(outputFormats, ", "))
	}
	if a.fontSize <= 0 || a.height < 0 || a.width < 0 || a.dpi <= 0 {
		return fmt.Errorf("font size, DPI and figure sizes must be positive")
	}
	return nil
}

func run(a args) error {
	if err := a.validate(); err != nil {
		return err
	}
	style := DefaultStyle()
	if a.styleFile != "" {
		var err error
		if style, err = ReadStyle(a.styleFile); err != nil {
			return err
		}
	}
	genomes, err := ReadGenomes(a.genomesFile)
	if err != nil {
		return err
	}
	sets, err := readAlignmentSets(a)
	if err != nil {
		return err
	}
	if err := ValidateAlignments(sets, genomes); err != nil {
		return err
	}
	for _, set := range sets {
		n := len(set.Rows)
		set.Rows = Filter(set.Rows, set.Homology, a.filter)
		log.Infof("%s: %d of %d annotations kept", set.Name, len(set.Rows), n)
	}
	groups, err := BuildGroups(genomes, sets)
	if err != nil {
		return err
	}
	if len(a.chrs) > 0 {
		if groups, err = SelectChromosomes(groups, a.chrs); err != nil {
			return err
		}
	}
	for _, set := range sets {
		if a.ribbons {
			set.Rows = CreateRibbons(set.Rows)
		}
		set.Rows = CorrectInversions(set.Rows)
	}
	layout, err := NewLayout(genomes, groups, a.vertical, a.space)
	if err != nil {
		return err
	}
	var markers []Marker
	if a.markerFile != "" {
		if markers, err = ReadMarkers(a.markerFile, genomes, a.fontSize); err != nil {
			return err
		}
	}
	p, err := Render(layout, sets, markers, style, a.fontSize)
	if err != nil {
		return err
	}
	w, h := FigureSize(a.height, a.width, len(groups), a.vertical)
	out := a.prefix + "." + a.format
	if err := Save(p, out, w, h, a.dpi); err != nil {
		return err
	}
	log.Infof("plot written to %s", out)
	return nil
}

func readAlignmentSets(a args) ([]*AlignmentSet, error) {
	files, read := a.syriFiles, ReadSyriOut
	if len(a.bedFiles) > 0 {
		files, read = a.bedFiles, ReadBedOut
	}
	sets := make([]*AlignmentSet, 0, len(files))
	for _, fin := range files {
		set, err := read(fin)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}
