package comb2

import "strings"

// Sequencer is a random-access cursor over an immutable input buffer. It
// never allocates on read and signals failure only through boolean/Status
// return values, never through a Go error — restoring Rptr always restores
// every observable piece of state a combinator can see.
type Sequencer struct {
	buf  string
	Rptr int
}

// NewSequencer wraps buf for reading from the start.
func NewSequencer(buf string) *Sequencer {
	return &Sequencer{buf: buf}
}

// Len is the total length of the underlying buffer.
func (s *Sequencer) Len() int { return len(s.buf) }

// Buf returns the full underlying buffer, for diagnostics (line/column
// computation) only; combinators must not mutate it.
func (s *Sequencer) Buf() string { return s.buf }

// Eos reports whether the cursor is at or past the end of the buffer.
func (s *Sequencer) Eos() bool { return s.Rptr >= len(s.buf) }

// Current returns the byte at Rptr+offset, or 0 if out of range.
func (s *Sequencer) Current(offset int) (byte, bool) {
	i := s.Rptr + offset
	if i < 0 || i >= len(s.buf) {
		return 0, false
	}
	return s.buf[i], true
}

// Remain returns the unread suffix of the buffer.
func (s *Sequencer) Remain() string {
	if s.Rptr >= len(s.buf) {
		return ""
	}
	return s.buf[s.Rptr:]
}

// Read returns up to n unread bytes without advancing the cursor.
func (s *Sequencer) Read(n int) string {
	r := s.Remain()
	if n < len(r) {
		return r[:n]
	}
	return r
}

// ReadAt returns up to n bytes starting at an arbitrary absolute offset,
// used by composite scanners that need to inspect bytes already consumed
// (e.g. matched-delimiter raw string tails).
func (s *Sequencer) ReadAt(pos, n int) string {
	if pos < 0 || pos > len(s.buf) {
		return ""
	}
	end := pos + n
	if end > len(s.buf) {
		end = len(s.buf)
	}
	return s.buf[pos:end]
}

// Consume advances the cursor by one byte. Callers must ensure !Eos().
func (s *Sequencer) Consume() { s.Rptr++ }

// ConsumeN advances the cursor by n bytes.
func (s *Sequencer) ConsumeN(n int) { s.Rptr += n }

// ConsumeIf advances by one byte iff the current byte equals c.
func (s *Sequencer) ConsumeIf(c byte) bool {
	if cur, ok := s.Current(0); ok && cur == c {
		s.Consume()
		return true
	}
	return false
}

// Match reports whether the upcoming bytes equal lit, without advancing.
func (s *Sequencer) Match(lit string) bool {
	return strings.HasPrefix(s.Remain(), lit)
}

// SeekIf advances past lit iff the upcoming bytes equal lit.
func (s *Sequencer) SeekIf(lit string) bool {
	if s.Match(lit) {
		s.ConsumeN(len(lit))
		return true
	}
	return false
}
