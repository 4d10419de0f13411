package binning

import "github.com/wtsi-hgi/bridgebuilder/alignio"

// Pipeline wires C1-C4 together into the one-shot, single-threaded pass
// over the original and bridge streams described in spec.md §2 and §5.
type Pipeline struct {
	cfg     *Config
	reader  *StreamPairReader
	binner  *Binner
	buffer  *TemplateBuffer
	flusher *FlushController
}

// NewPipeline constructs a Pipeline. original is driven by Run; bridge
// is driven internally by the StreamPairReader look-ahead.
func NewPipeline(cfg *Config, bridge RecordSource, sinks Sinks) *Pipeline {
	buffer := NewTemplateBuffer()
	return &Pipeline{
		cfg:     cfg,
		reader:  NewStreamPairReader(bridge, cfg),
		binner:  NewBinner(cfg),
		buffer:  buffer,
		flusher: NewFlushController(cfg, buffer, sinks),
	}
}

// Run consumes original to exhaustion, binning and buffering each
// matched (original, bridge?) pair and draining the buffer under the
// bounded-memory policy, per spec.md §2/§4. It returns the first fatal
// *Error encountered (spec.md §7), or nil on a clean, fully-drained run.
func (p *Pipeline) Run(original RecordSource) error {
	for original.Next() {
		o := original.Record()

		bridge, err := p.reader.Match(o)
		if err != nil {
			return err
		}

		binned, err := p.binner.Bin(o, bridge)
		if err != nil {
			return err
		}
		if binned == nil {
			// Secondary alignment: discarded per spec.md §4.2 row 1,
			// never buffered, never subject to the sort-order check.
			continue
		}

		id := alignio.Identity(o, p.cfg.IgnoreRG)
		if err := p.buffer.Enqueue(*binned, id); err != nil {
			return err
		}
		if err := p.flusher.Observe(binned.OriginalRefID, binned.OriginalPos); err != nil {
			return err
		}
		if err := p.flusher.Drain(false); err != nil {
			return err
		}
	}
	if err := original.Err(); err != nil {
		return err
	}

	if err := p.flusher.Drain(true); err != nil {
		return err
	}
	if err := p.flusher.CheckFinalPostConditions(); err != nil {
		return err
	}
	return p.reader.Finish()
}
