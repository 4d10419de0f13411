// Command brindley answers point-to-point coordinate liftover queries
// against a CoordMap file: given "chrom<TAB>pos" lines on stdin, it
// prints the translated "chrom<TAB>pos" on stdout, or a blank line
// when a point falls outside every mapped interval. Modelled on
// cmd/doppelmark's flag/runner shape.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"

	"github.com/wtsi-hgi/bridgebuilder/coordmap"
)

var (
	mapFile = flag.String("map", "", "CoordMap TSV file (optionally gzip-compressed)")
	input   = flag.String("input", "", "File of chrom<TAB>pos query points, one per line; default stdin")
	output  = flag.String("output", "", "Destination for translated points; default stdout")
)

const (
	exitArgs     = 1
	exitMapOpen  = 2
	exitOutOpen  = 3
	exitQueryBad = 4
	exitWrite    = 15
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: brindley --map <coordmap.tsv> [--input queries.tsv] [--output out.tsv]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *mapFile == "" {
		fmt.Fprintln(os.Stderr, "brindley: --map is required")
		os.Exit(exitArgs)
	}

	m, err := coordmap.LoadPath(*mapFile)
	if err != nil {
		log.Error.Printf("loading coordmap %s: %v", *mapFile, err)
		os.Exit(exitMapOpen)
	}

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Error.Printf("opening input %s: %v", *input, err)
			os.Exit(exitMapOpen)
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Error.Printf("opening output %s: %v", *output, err)
			os.Exit(exitOutOpen)
		}
		defer f.Close()
		out = f
	}

	if err := run(m, in, out); err != nil {
		log.Error.Printf("%v", err)
		if err == errQuery {
			os.Exit(exitQueryBad)
		}
		os.Exit(exitWrite)
	}
	log.Debug.Printf("exiting")
}

var errQuery = fmt.Errorf("malformed query line")

func run(m *coordmap.CoordMap, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return errQuery
		}
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return errQuery
		}
		translated, ok := m.Lookup(coordmap.Point{Chrom: fields[0], Pos: pos})
		if !ok {
			if _, err := fmt.Fprintln(bw); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", translated.Chrom, translated.Pos); err != nil {
			return err
		}
	}
	return scanner.Err()
}
