package binning

import (
	"github.com/biogo/hts/sam"
	"github.com/wtsi-hgi/bridgebuilder/alignio"
)

// StreamPairReader implements C1: it advances the bridge stream on
// demand and matches each original record to at most one bridge record
// by template identity, per spec.md §4.1.
type StreamPairReader struct {
	bridge RecordSource
	cfg    *Config

	currentBridge *sam.Record
	bridgeDone    bool
}

// NewStreamPairReader returns a StreamPairReader pulling from bridge on
// demand as originals are matched against it.
func NewStreamPairReader(bridge RecordSource, cfg *Config) *StreamPairReader {
	return &StreamPairReader{bridge: bridge, cfg: cfg}
}

// Match implements the per-original-record algorithm of spec.md §4.1:
// maintain a one-record look-ahead into the bridge stream, and yield it
// alongside o exactly when their template identities agree.
func (s *StreamPairReader) Match(o *sam.Record) (*sam.Record, error) {
	if err := s.fill(); err != nil {
		return nil, err
	}

	if s.currentBridge != nil && s.sameTemplate(o, s.currentBridge) {
		b := s.currentBridge
		s.currentBridge = nil
		return b, nil
	}
	return nil, nil
}

// Finish checks the post-condition of spec.md §4.1 / §4.4: once the
// original stream is exhausted, the bridge stream must be exhausted
// too, with no unmatched look-ahead record remaining.
func (s *StreamPairReader) Finish() error {
	if err := s.fill(); err != nil {
		return err
	}
	if !s.bridgeDone || s.currentBridge != nil {
		return newError(ErrOrigTruncated, "", "",
			"bridge stream has records beyond the end of the original stream")
	}
	return nil
}

// fill pulls the next bridge record into the look-ahead slot if it's
// empty and the bridge stream hasn't been exhausted yet.
func (s *StreamPairReader) fill() error {
	if s.currentBridge != nil || s.bridgeDone {
		return nil
	}
	if s.bridge.Next() {
		s.currentBridge = s.bridge.Record()
		return nil
	}
	if err := s.bridge.Err(); err != nil {
		return err
	}
	s.bridgeDone = true
	return nil
}

func (s *StreamPairReader) sameTemplate(o, b *sam.Record) bool {
	return alignio.Identity(o, s.cfg.IgnoreRG) == alignio.Identity(b, s.cfg.IgnoreRG)
}
