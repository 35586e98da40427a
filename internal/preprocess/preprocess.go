// Package preprocess implements the tokenizer's input preprocessor
// (C1): it turns a UTF-16 code unit buffer into a position-annotated
// stream of Unicode scalar values, collapsing CR/CRLF to LF and
// flagging surrogate, noncharacter, and control code points along the
// way. The whole buffer is decoded up front — the spec is written for
// a complete in-memory input (spec.md §1 Non-goals) — so reconsume is
// just moving a cursor backward over an already-decoded slice.
package preprocess

import (
	"strings"
	"unicode/utf16"

	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/token"
)

// pendingError is a classification error tied to a specific decoded
// rune, fired the first time that rune is consumed (not on reconsume).
type pendingError struct {
	code errs.Code
}

// Preprocessor exposes peek/consume/reconsume/match over a fully
// decoded, position-annotated rune stream.
type Preprocessor struct {
	runes     []rune
	positions []token.Position // len(runes)+1; last entry is the EOF position
	pending   map[int]errs.Code
	consumed  map[int]bool
	i         int
	sink      *errs.Sink
}

// New decodes units (UTF-16 code units) and returns a ready Preprocessor.
// Errors detected purely by decoding (surrogates, controls,
// noncharacters) are queued and flushed into sink lazily, the first
// time the tokenizer actually consumes the offending rune — so their
// position in the sink matches where the state machine observed them,
// not where the preprocessor happened to notice them.
func New(units []uint16, sink *errs.Sink) *Preprocessor {
	p := &Preprocessor{
		pending:  make(map[int]errs.Code),
		consumed: make(map[int]bool),
		sink:     sink,
	}
	p.decode(units)
	p.computePositions()
	return p
}

// NewFromString is a convenience constructor for callers holding a Go
// (UTF-8) string rather than a raw UTF-16 buffer.
func NewFromString(s string, sink *errs.Sink) *Preprocessor {
	return New(utf16.Encode([]rune(s)), sink)
}

func (p *Preprocessor) decode(units []uint16) {
	i := 0
	for i < len(units) {
		u := units[i]
		switch {
		case u == '\r':
			i++
			if i < len(units) && units[i] == '\n' {
				i++
			}
			p.append('\n', 0, false)
		case utf16.IsSurrogate(rune(u)):
			if i+1 < len(units) {
				if r := utf16.DecodeRune(rune(u), rune(units[i+1])); r != 0xFFFD {
					i += 2
					p.append(r, 0, false)
					continue
				}
			}
			i++
			p.append(0xFFFD, 0, true)
		default:
			i++
			p.append(rune(u), 0, false)
		}
	}
}

func (p *Preprocessor) append(r rune, _ int, surrogateErr bool) {
	idx := len(p.runes)
	p.runes = append(p.runes, r)
	switch {
	case surrogateErr:
		p.pending[idx] = errs.SurrogateInInputStream
	case isControl(r) || isNoncharacter(r):
		p.pending[idx] = errs.ControlCharacterInInputStream
	}
}

func (p *Preprocessor) computePositions() {
	p.positions = make([]token.Position, len(p.runes)+1)
	line, col := 1, 1
	for k, r := range p.runes {
		p.positions[k] = token.Position{Line: line, Column: col}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	p.positions[len(p.runes)] = token.Position{Line: line, Column: col}
}

func isControl(r rune) bool {
	switch {
	case r >= 0x0001 && r <= 0x001F:
		return r != 0x09 && r != 0x0A && r != 0x0C && r != 0x0D
	case r >= 0x007F && r <= 0x009F:
		return true
	default:
		return false
	}
}

func isNoncharacter(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	low := r & 0xFFFF
	return low == 0xFFFE || low == 0xFFFF
}

// Position returns the position the next consume() would report.
func (p *Preprocessor) Position() token.Position {
	return p.positions[p.i]
}

// Eof reports whether the cursor has reached the end of input.
func (p *Preprocessor) Eof() bool {
	return p.i >= len(p.runes)
}

// Peek returns the rune that would be consumed next and true, or
// (0, false) at EOF.
func (p *Preprocessor) Peek() (rune, bool) {
	if p.Eof() {
		return 0, false
	}
	return p.runes[p.i], true
}

// PeekAt returns the rune offset code points ahead of the cursor
// (PeekAt(0) == Peek()), or (0, false) if that position is at or past
// EOF. Used by states that must look more than one character ahead
// without consuming (e.g. the "--" and "[CDATA[" checks in markup
// declaration open, and the named-reference lookahead in internal/charref).
func (p *Preprocessor) PeekAt(offset int) (rune, bool) {
	idx := p.i + offset
	if idx < 0 || idx >= len(p.runes) {
		return 0, false
	}
	return p.runes[idx], true
}

// Consume advances the cursor by one rune, recording any pending
// classification error (control-character-in-input-stream,
// surrogate-in-input-stream) at the position just consumed, exactly
// once regardless of how many times that rune is later reconsumed.
func (p *Preprocessor) Consume() (rune, bool) {
	if p.Eof() {
		return 0, false
	}
	idx := p.i
	r := p.runes[idx]
	if code, ok := p.pending[idx]; ok && !p.consumed[idx] {
		pos := p.positions[idx]
		p.sink.Append(code, pos.Line, pos.Column)
	}
	p.consumed[idx] = true
	p.i++
	return r, true
}

// Reconsume moves the cursor back by one rune. The caller must only
// reconsume a rune it just consumed (or one on the same cursor path);
// the preprocessor does not validate the argument against the
// underlying buffer, matching the teacher's `reconsume` contract
// (_examples/hoplang-hop-go/tokenizer/tokenizer.go uses an explicit
// peek-before-advance pattern for the same purpose).
func (p *Preprocessor) Reconsume(rune) {
	if p.i > 0 {
		p.i--
	}
}

// MatchASCIICI atomically checks whether the next len(s) code points
// are an ASCII case-insensitive match for s; on match it consumes
// them (without re-running error classification logic — s is always
// an ASCII keyword with no pending errors) and returns true, otherwise
// it leaves the cursor untouched.
func (p *Preprocessor) MatchASCIICI(s string) bool {
	n := len(s)
	if p.i+n > len(p.runes) {
		return false
	}
	for k := 0; k < n; k++ {
		if !asciiEqFold(p.runes[p.i+k], rune(s[k])) {
			return false
		}
	}
	p.i += n
	return true
}

func asciiEqFold(a, b rune) bool {
	return a == b || (asciiUpper(a) == asciiUpper(b) && asciiUpper(a) != 0)
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	if r >= 'A' && r <= 'Z' {
		return r
	}
	return 0
}

// Mark is an opaque cursor bookmark returned by Save and consumed by
// Restore.
type Mark int

// Save bookmarks the current cursor for later lookahead. (The
// longest-match search in internal/charref looks ahead with PeekAt
// instead and does not use it.)
func (p *Preprocessor) Save() Mark {
	return Mark(p.i)
}

// Restore rewinds the cursor to a previously saved Mark.
func (p *Preprocessor) Restore(m Mark) {
	p.i = int(m)
}

// Slice returns the raw runes between two marks, for re-inserting a
// failed character-reference match verbatim.
func (p *Preprocessor) Slice(from, to Mark) string {
	var b strings.Builder
	for k := int(from); k < int(to) && k < len(p.runes); k++ {
		b.WriteRune(p.runes[k])
	}
	return b.String()
}
