package binary

// PlaceholderWidth is the fixed LEB128 width of every length slot.
const PlaceholderWidth = 4

// Region marks a reserved length slot awaiting its backpatch.
type Region struct {
	offset int
}

// Offset returns the position of the length slot in the sink.
func (r Region) Offset() int {
	return r.offset
}

// BeginRegion reserves a fixed-width length slot at the current offset.
func (s *Sink) BeginRegion() Region {
	r := Region{offset: len(s.buf)}
	// zero always fits, the error is unreachable
	s.buf, _ = AppendUFixed(s.buf, 0, PlaceholderWidth)
	return r
}

// EndRegion patches the slot of r with the number of bytes written after it.
func (s *Sink) EndRegion(r Region) error {
	length := len(s.buf) - r.offset - PlaceholderWidth
	slot, err := AppendUFixed(nil, uint64(length), PlaceholderWidth)
	if err != nil {
		return err
	}
	return s.OverwriteAt(r.offset, slot)
}

// Region emits fn's output behind a backpatched length prefix.
func (s *Sink) Region(fn func() error) error {
	r := s.BeginRegion()
	if err := fn(); err != nil {
		return err
	}
	return s.EndRegion(r)
}

// Section emits a section id followed by fn's output as a length-prefixed region.
func (s *Sink) Section(id byte, fn func() error) error {
	s.Byte(id)
	return s.Region(fn)
}
