package coordmap

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
)

// Load reads a liftover file from r: tab-separated lines of the form
// `from_chrom from_start from_end to_chrom to_start to_end` (spec.md
// §6). The first line is a header and is always skipped, per spec.md
// §6 ("skipped up to and including the first newline"), mirroring
// grailbio-bio/interval.NewBEDUnion's bufio.Scanner-based line loop.
func Load(r io.Reader) (*CoordMap, error) {
	m := New()
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := parseLine(m, line); err != nil {
			return nil, fmt.Errorf("coordmap: line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseLine(m *CoordMap, line string) error {
	fields := strings.Split(line, "\t")
	if len(fields) != 6 {
		return fmt.Errorf("expected 6 tab-separated fields, got %d", len(fields))
	}

	fromChrom, toChrom := fields[0], fields[3]
	fromStart, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("from_start: %w", err)
	}
	fromEnd, err := strconv.Atoi(fields[2])
	if err != nil {
		return fmt.Errorf("from_end: %w", err)
	}
	toStart, err := strconv.Atoi(fields[4])
	if err != nil {
		return fmt.Errorf("to_start: %w", err)
	}
	toEnd, err := strconv.Atoi(fields[5])
	if err != nil {
		return fmt.Errorf("to_end: %w", err)
	}

	return m.Insert(fromChrom, fromStart, fromEnd, toChrom, toStart, toEnd)
}

// LoadPath opens path and loads it with Load, transparently
// decompressing gzip-suffixed paths, mirroring
// grailbio-bio/interval.NewBEDUnionFromPath's file.Open +
// fileio.DetermineType + gzip.NewReader pattern.
func LoadPath(path string) (*CoordMap, error) {
	ctx := vcontext.Background()
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer f.Close(ctx)

	reader := f.Reader(ctx)
	if fileio.DetermineType(path) == fileio.Gzip {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}

	return Load(reader)
}
