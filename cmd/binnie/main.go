// Command binnie partitions reads from an aligned read stream into
// three sinks (unchanged/bridged/remap) by comparing each read's
// alignment in an original reference against its alignment in a
// derived bridge reference. See binning.Pipeline for the core engine;
// this file is the thin, non-core CLI wiring spec.md §6 sketches.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"

	"github.com/wtsi-hgi/bridgebuilder/binning"
)

var (
	unchangedOut        = flag.String("unchanged_out", "", "Unchanged-bin output BAM path (default: <original>_unchanged.bam)")
	bridgedOut          = flag.String("bridged_out", "", "Bridged-bin output BAM path (default: <original>_bridged.bam)")
	remapOut            = flag.String("remap_out", "", "Remap-bin output BAM path (default: <original>_remap.bam)")
	bufferSize          = flag.Int("buffer_size", 0, "Force a flush once the buffer holds this many reads (0 disables)")
	maxBufferBases      = flag.Int("max_buffer_bases", 0, "Force a flush once the buffer spans this many bases (0 disables)")
	ignoreRG            = flag.Bool("ignore_rg", false, "Use qname-only template identity, ignoring the RG tag")
	allowSortedUnmapped = flag.Bool("allow_sorted_unmapped", false, "Surface-compatibility switch; see binning.Config.AllowSortedUnmapped")
	verbose             = flag.Int("verbose", 0, "Verbosity level")
	debug               = flag.Bool("debug", false, "Enable debug logging")
	version             = flag.Bool("version", false, "Print version and exit")
)

const binnieVersion = "bridgebuilder-binnie/1.0"

// exit codes, per spec.md §6.
const (
	exitArgs         = 1
	exitInputOpen    = 2
	exitOutputOpen   = 3
	exitReadOriginal = 5
	exitReadBridge   = 6
	exitWrite        = 15
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: binnie [flags] <original.bam> <bridge.bam>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version {
		fmt.Println(binnieVersion)
		return
	}
	if *debug || *verbose > 0 {
		log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	}

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "binnie: expected exactly two positional arguments: <original.bam> <bridge.bam>")
		os.Exit(exitArgs)
	}
	originalPath, bridgePath := flag.Arg(0), flag.Arg(1)

	originalFile, err := os.Open(originalPath)
	if err != nil {
		log.Error.Printf("opening original %s: %v", originalPath, err)
		os.Exit(exitInputOpen)
	}
	defer originalFile.Close()

	bridgeFile, err := os.Open(bridgePath)
	if err != nil {
		log.Error.Printf("opening bridge %s: %v", bridgePath, err)
		os.Exit(exitInputOpen)
	}
	defer bridgeFile.Close()

	originalReader, err := bam.NewReader(originalFile, runtime.NumCPU())
	if err != nil {
		log.Error.Printf("reading original header %s: %v", originalPath, err)
		os.Exit(exitInputOpen)
	}
	defer originalReader.Close()

	bridgeReader, err := bam.NewReader(bridgeFile, runtime.NumCPU())
	if err != nil {
		log.Error.Printf("reading bridge header %s: %v", bridgePath, err)
		os.Exit(exitInputOpen)
	}
	defer bridgeReader.Close()

	unchangedWriter, bridgedWriter, remapWriter, err := openSinks(originalPath, originalReader.Header(), bridgeReader.Header())
	if err != nil {
		log.Error.Printf("opening output sinks: %v", err)
		os.Exit(exitOutputOpen)
	}

	cfg := &binning.Config{
		IgnoreRG:            *ignoreRG,
		BufferSizeLimit:     *bufferSize,
		MaxBufferBases:      *maxBufferBases,
		AllowSortedUnmapped: *allowSortedUnmapped,
		Warnf:               log.Error,
	}
	sinks := binning.Sinks{
		Unchanged: newBamSink(unchangedWriter),
		Bridged:   newBamSink(bridgedWriter),
		Remap:     newBamSink(remapWriter),
	}

	original := newBamSource(originalReader)
	bridge := newBamSource(bridgeReader)

	pipeline := binning.NewPipeline(cfg, bridge, sinks)
	runErr := pipeline.Run(original)

	closeErr := closeSinks(unchangedWriter, bridgedWriter, remapWriter)

	if runErr != nil {
		if berr, ok := runErr.(*binning.Error); ok {
			log.Error.Printf("%v", berr)
			os.Exit(berr.ExitCode())
		}
		if original.Err() != nil {
			log.Error.Printf("reading original: %v", runErr)
			os.Exit(exitReadOriginal)
		}
		if bridge.Err() != nil {
			log.Error.Printf("reading bridge: %v", runErr)
			os.Exit(exitReadBridge)
		}
		log.Error.Printf("%v", runErr)
		os.Exit(exitReadOriginal)
	}
	if closeErr != nil {
		log.Error.Printf("closing output sinks: %v", closeErr)
		os.Exit(exitWrite)
	}
	log.Debug.Printf("exiting")
}

func openSinks(originalPath string, originalHeader, bridgeHeader *sam.Header) (unchanged, bridged, remap *bam.Writer, err error) {
	unchangedPath := *unchangedOut
	if unchangedPath == "" {
		unchangedPath = originalPath + "_unchanged.bam"
	}
	bridgedPath := *bridgedOut
	if bridgedPath == "" {
		bridgedPath = originalPath + "_bridged.bam"
	}
	remapPath := *remapOut
	if remapPath == "" {
		remapPath = originalPath + "_remap.bam"
	}

	unchanged, err = openWriter(unchangedPath, originalHeader)
	if err != nil {
		return nil, nil, nil, err
	}
	bridged, err = openWriter(bridgedPath, bridgeHeader)
	if err != nil {
		return nil, nil, nil, err
	}
	remap, err = openWriter(remapPath, originalHeader)
	if err != nil {
		return nil, nil, nil, err
	}
	return unchanged, bridged, remap, nil
}

func openWriter(path string, header *sam.Header) (*bam.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return bam.NewWriter(f, header, runtime.NumCPU())
}

// closeSinks closes the three output sinks concurrently, collecting
// the first error, exactly as
// grailbio-bio/markduplicates/mark_duplicates.go closes its sharded
// writers via errors.Once (SPEC_FULL.md §5).
func closeSinks(writers ...*bam.Writer) error {
	e := errors.Once{}
	done := make(chan struct{}, len(writers))
	for _, w := range writers {
		w := w
		go func() {
			e.Set(w.Close())
			done <- struct{}{}
		}()
	}
	for range writers {
		<-done
	}
	return e.Err()
}
