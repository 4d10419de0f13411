package binning

// Sinks groups the three output destinations FlushController drains
// into (spec.md §4.4, §6).
type Sinks struct {
	Unchanged RecordSink
	Bridged   RecordSink
	Remap     RecordSink
}

func (s Sinks) sinkFor(b Bin) RecordSink {
	switch b {
	case Unchanged:
		return s.Unchanged
	case Bridged:
		return s.Bridged
	default:
		return s.Remap
	}
}

// FlushController implements C4: it enforces the (refid, pos)
// sort-order invariant on every newly enqueued read, and drains the
// TemplateBuffer under the bounded-memory policy of spec.md §4.4.
type FlushController struct {
	cfg    *Config
	buffer *TemplateBuffer
	sinks  Sinks

	haveLast bool
	lastRef  int
	lastPos  int

	bufferFirstPos int
	bufferLastPos  int
	newRefID       bool
}

// NewFlushController returns a FlushController draining buffer into
// sinks under cfg's bounded-memory limits.
func NewFlushController(cfg *Config, buffer *TemplateBuffer, sinks Sinks) *FlushController {
	return &FlushController{cfg: cfg, buffer: buffer, sinks: sinks}
}

// Observe applies the sort-order invariant checks of spec.md §4.4 to a
// read that was just enqueued, using its original (refid, pos). It must
// be called exactly once per enqueued read, in enqueue order.
func (fc *FlushController) Observe(refID, pos int) error {
	if err := fc.checkSortOrder(refID, pos); err != nil {
		return err
	}

	fc.newRefID = fc.haveLast && refID != fc.lastRef
	fc.lastRef, fc.lastPos, fc.haveLast = refID, pos, true

	if fc.buffer.Size() == 1 {
		fc.bufferFirstPos = pos
	}
	fc.bufferLastPos = pos
	return nil
}

func (fc *FlushController) checkSortOrder(refID, pos int) error {
	if !fc.haveLast {
		return nil
	}
	switch {
	case fc.lastRef != -1 && refID != -1 && refID < fc.lastRef:
		return newError(ErrBamUnsorted, "", "", "reference id decreased")
	case fc.lastRef == -1 && refID != -1:
		return newError(ErrBamUnsorted, "", "", "mapped record follows an unmapped one; unmapped records must sort last")
	case refID == fc.lastRef && pos == -1 && fc.lastPos != -1:
		return newError(ErrBamUnsorted, "", "", "position transitioned to -1 within a fixed reference id")
	case refID == fc.lastRef && pos != -1 && fc.lastPos != -1 && pos < fc.lastPos:
		return newError(ErrBamUnsorted, "", "", "position decreased within a fixed reference id")
	}
	return nil
}

// ShouldFlush reports whether a flush step should run right now, per
// the four triggers of spec.md §4.4. inputExhausted is true once the
// input stream has yielded its last record.
func (fc *FlushController) ShouldFlush(inputExhausted bool) bool {
	n := fc.buffer.Size()
	if n == 0 {
		return false
	}
	if inputExhausted {
		return true
	}
	if fc.newRefID {
		return true
	}
	if fc.cfg.BufferSizeLimit > 0 && n >= fc.cfg.BufferSizeLimit {
		return true
	}
	if fc.cfg.MaxBufferBases > 0 && (fc.bufferLastPos-fc.bufferFirstPos) >= fc.cfg.MaxBufferBases {
		return true
	}
	return false
}

// FlushOne pops the buffer's head and writes it to the sink selected by
// its Bin, per spec.md §4.4. It panics if the buffer is empty; callers
// must check ShouldFlush first.
//
// The read is emitted with its current Bin: there is no flush-time
// promotion to Remap of a read whose ObservedMateCount is below its
// ExpectedMateCount, so a read whose mates never arrived keeps its
// tentative bin.
func (fc *FlushController) FlushOne() error {
	br := fc.buffer.PopFront()
	if br == nil {
		panic("binning: FlushOne called on an empty buffer")
	}
	if br.Bin != Unchanged && br.Bin != Bridged && br.Bin != Remap {
		return newError(ErrInvalidBin, "", "", "binned read carries an unrecognised bin value")
	}
	if err := fc.sinks.sinkFor(br.Bin).Write(br.Alignment); err != nil {
		return err
	}

	if fc.buffer.Size() == 0 {
		fc.bufferFirstPos, fc.bufferLastPos = 0, 0
	} else if next := fc.buffer.PeekFront(); next != nil {
		fc.bufferFirstPos = next.OriginalPos
	}
	return nil
}

// Drain runs the flush loop of spec.md §4.4 until ShouldFlush is false.
func (fc *FlushController) Drain(inputExhausted bool) error {
	for fc.ShouldFlush(inputExhausted) {
		if err := fc.FlushOne(); err != nil {
			return err
		}
	}
	return nil
}

// CheckFinalPostConditions enforces spec.md §4.4's final post-condition:
// the buffer must be empty once the input stream is fully consumed.
func (fc *FlushController) CheckFinalPostConditions() error {
	if fc.buffer.Size() != 0 {
		return newError(ErrBufferNotEmpty, "", "", "buffer is non-empty after the input stream ended")
	}
	return nil
}
