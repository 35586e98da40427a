// Package builder implements the tokenizer's mutable builder slots
// (C4): the tag, comment, and doctype builders that accumulate state
// across many single-character state transitions before being emitted
// as a single Token, plus the in-progress character-run buffer.
//
// Exactly one of {tag, comment, doctype} builder is alive at a time in
// the owning state machine; this package only implements the pieces
// that are genuinely stateful, and leaves "which one is active right
// now" to tokenizer (C5), which is the only component that knows the
// current state.
package builder

import (
	"strings"

	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/token"
)

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// CharRun accumulates an in-progress run of character data. A run with
// empty data is never emitted (spec.md §3.2 invariant 3).
type CharRun struct {
	data  strings.Builder
	start token.Position
	open  bool
}

// Append adds r to the run, opening it (recording start) if it was
// empty.
func (c *CharRun) Append(r rune, pos token.Position) {
	if !c.open {
		c.start = pos
		c.open = true
	}
	c.data.WriteRune(r)
}

// AppendString is Append for a multi-rune sequence (e.g. a resolved
// character reference), all reported at the same start position.
func (c *CharRun) AppendString(s string, pos token.Position) {
	for _, r := range s {
		c.Append(r, pos)
	}
}

// Flush emits the accumulated run as a Character token, or returns
// (zero, false) if the run is empty.
func (c *CharRun) Flush(end token.Position) (token.Token, bool) {
	if c.data.Len() == 0 {
		return token.Token{}, false
	}
	t := token.Token{
		Type:  token.Character,
		Data:  c.data.String(),
		Start: c.start,
		End:   end,
	}
	c.data.Reset()
	c.open = false
	return t, true
}

// Tag is the mutable builder for a start or end tag.
type Tag struct {
	IsEnd       bool
	name        strings.Builder
	attrs       *token.AttributeList
	selfClosing bool
	start       token.Position

	curAttrName  strings.Builder
	curAttrValue strings.Builder
	attrDropped  bool
	haveAttr     bool
}

// NewTag starts a new tag builder at start, discarding whatever was
// previously building (spec.md §3.1 "Builder slots").
func NewTag(isEnd bool, start token.Position) *Tag {
	return &Tag{IsEnd: isEnd, attrs: token.NewAttributeList(), start: start}
}

// AppendName appends a lowercased rune to the tag name (spec.md §3.2
// invariant 2: case folding happens at append time).
func (b *Tag) AppendName(r rune) { b.name.WriteRune(lowerASCII(r)) }

// Name returns the tag name accumulated so far.
func (b *Tag) Name() string { return b.name.String() }

// SetSelfClosing marks the tag as self-closing.
func (b *Tag) SetSelfClosing() { b.selfClosing = true }

// BeginAttr opens a new attribute slot, first committing any
// in-progress one.
func (b *Tag) BeginAttr() {
	b.commitPendingAttr()
	b.curAttrName.Reset()
	b.curAttrValue.Reset()
	b.attrDropped = false
	b.haveAttr = true
}

// AppendAttrName appends a lowercased rune to the in-progress
// attribute name.
func (b *Tag) AppendAttrName(r rune) { b.curAttrName.WriteRune(lowerASCII(r)) }

// AppendAttrValue appends a rune to the in-progress attribute value
// (a resolved character reference goes through AppendAttrValueString).
// A dropped (duplicate) attribute still consumes value characters, it
// just discards them (spec.md §4.4).
func (b *Tag) AppendAttrValue(r rune) {
	if b.attrDropped {
		return
	}
	b.curAttrValue.WriteRune(r)
}

// AppendAttrValueString is AppendAttrValue for a multi-rune sequence.
func (b *Tag) AppendAttrValueString(s string) {
	if b.attrDropped {
		return
	}
	b.curAttrValue.WriteString(s)
}

// CheckDuplicate must be called once the attribute name is complete
// (on leaving attribute-name state). If the name already exists, it
// records duplicate-attribute and marks the slot dropped.
func (b *Tag) CheckDuplicate(sink *errs.Sink, pos token.Position) {
	if !b.haveAttr {
		return
	}
	name := b.curAttrName.String()
	if b.attrs.Has(name) {
		sink.Append(errs.DuplicateAttribute, pos.Line, pos.Column)
		b.attrDropped = true
	}
}

// commitPendingAttr inserts the in-progress attribute (if any, and not
// dropped) into the attribute list.
func (b *Tag) commitPendingAttr() {
	if !b.haveAttr {
		return
	}
	if !b.attrDropped {
		b.attrs.Set(b.curAttrName.String(), b.curAttrValue.String())
	}
	b.haveAttr = false
}

// Emit finalizes the builder into a StartTag or EndTag token.
// End tags silently drop attributes and self-closing after the state
// machine has already recorded whatever errors they warranted
// (spec.md §3.1 Token).
func (b *Tag) Emit(end token.Position) token.Token {
	b.commitPendingAttr()
	t := token.Token{
		Name:  b.name.String(),
		Start: b.start,
		End:   end,
	}
	if b.IsEnd {
		t.Type = token.EndTag
	} else {
		t.Type = token.StartTag
		t.Attrs = b.attrs
		t.SelfClosing = b.selfClosing
	}
	return t
}

// Comment is the mutable builder for a comment.
type Comment struct {
	data  strings.Builder
	start token.Position
}

// NewComment starts a new comment builder at start.
func NewComment(start token.Position) *Comment {
	return &Comment{start: start}
}

// Append adds r to the comment data, unmodified (no case folding).
func (b *Comment) Append(r rune) { b.data.WriteRune(r) }

// AppendString is Append for a pre-seeded sequence (e.g. the "?" or
// misdeclared text bogus-comment states pre-seed per spec.md §4.5).
func (b *Comment) AppendString(s string) { b.data.WriteString(s) }

// Data returns the comment data accumulated so far.
func (b *Comment) Data() string { return b.data.String() }

// Emit finalizes the builder into a Comment token.
func (b *Comment) Emit(end token.Position) token.Token {
	return token.Token{
		Type:        token.Comment,
		CommentData: b.data.String(),
		Start:       b.start,
		End:         end,
	}
}

// Doctype is the mutable builder for a DOCTYPE. ForceQuirks starts
// true for any newly-opened doctype (spec.md §3.2 invariant 5) and is
// cleared only when the state machine closes the doctype on a
// well-formed '>' (SetForceQuirks(false)).
type Doctype struct {
	name        *string
	nameBuf     strings.Builder
	publicID    *string
	publicBuf   strings.Builder
	systemID    *string
	systemBuf   strings.Builder
	forceQuirks bool
	start       token.Position
}

// NewDoctype starts a new doctype builder with ForceQuirks true.
func NewDoctype(start token.Position) *Doctype {
	return &Doctype{forceQuirks: true, start: start}
}

// EnsureName transitions Name from absent to present-but-empty.
func (b *Doctype) EnsureName() {
	if b.name == nil {
		s := ""
		b.name = &s
	}
}

// AppendName appends a lowercased rune to the (already-ensured) name.
func (b *Doctype) AppendName(r rune) {
	b.EnsureName()
	b.nameBuf.WriteRune(lowerASCII(r))
	s := b.nameBuf.String()
	b.name = &s
}

func (b *Doctype) EnsurePublicID() {
	if b.publicID == nil {
		s := ""
		b.publicID = &s
	}
}

func (b *Doctype) AppendPublicID(r rune) {
	b.EnsurePublicID()
	b.publicBuf.WriteRune(r)
	s := b.publicBuf.String()
	b.publicID = &s
}

func (b *Doctype) EnsureSystemID() {
	if b.systemID == nil {
		s := ""
		b.systemID = &s
	}
}

func (b *Doctype) AppendSystemID(r rune) {
	b.EnsureSystemID()
	b.systemBuf.WriteRune(r)
	s := b.systemBuf.String()
	b.systemID = &s
}

// SetForceQuirks sets or clears force-quirks.
func (b *Doctype) SetForceQuirks(v bool) { b.forceQuirks = v }

// ForceQuirks reports the current force-quirks value.
func (b *Doctype) ForceQuirks() bool { return b.forceQuirks }

// Emit finalizes the builder into a Doctype token.
func (b *Doctype) Emit(end token.Position) token.Token {
	return token.Token{
		Type:        token.Doctype,
		DoctypeName: b.name,
		PublicID:    b.publicID,
		SystemID:    b.systemID,
		ForceQuirks: b.forceQuirks,
		Start:       b.start,
		End:         end,
	}
}

// IsASCIIWhitespace reports whether r is tokenizer whitespace: TAB, LF,
// FF, or SPACE (spec.md §4.5 Tag name & attrs; CR never reaches the
// state machine, per the preprocessor's CR/CRLF collapse).
func IsASCIIWhitespace(r rune) bool {
	return r == '\t' || r == '\n' || r == '\f' || r == ' '
}

// IsASCIIUpper/IsASCIILetter are small shared classifiers kept here so
// tokenizer doesn't need its own copy of ASCII range checks used
// across many states.
func IsASCIIUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func IsASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
