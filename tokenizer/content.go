package tokenizer

import (
	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/errs"
)

// stepData implements the Data content state (spec.md §4.5 Content
// family). '&' and '<' are both live; NUL is preserved and flagged.
func (m *Machine) stepData() {
	r, _ := m.pp.Peek()
	switch r {
	case '&':
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.AppendString(m.resolveCharRef(false), pos)
	case '<':
		pos := m.pp.Position()
		m.pp.Consume()
		m.flushRun()
		m.beginTagAttempt(pos)
		m.state = TagOpen
	case 0:
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0, pos)
	default:
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.Append(r, pos)
	}
}

// stepRCDATA is Data without markup declarations, but keeps character
// references live and replaces NUL with U+FFFD (spec.md §4.5).
func (m *Machine) stepRCDATA() {
	r, _ := m.pp.Peek()
	switch r {
	case '&':
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.AppendString(m.resolveCharRef(false), pos)
	case '<':
		pos := m.pp.Position()
		m.pp.Consume()
		m.flushRun()
		m.ltPos = pos
		m.state = RCDATALessThanSign
	case 0:
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
	default:
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.Append(r, pos)
	}
}

// stepRAWTEXT is RCDATA without character references.
func (m *Machine) stepRAWTEXT() {
	r, _ := m.pp.Peek()
	switch r {
	case '<':
		pos := m.pp.Position()
		m.pp.Consume()
		m.flushRun()
		m.ltPos = pos
		m.state = RAWTEXTLessThanSign
	case 0:
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
	default:
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.Append(r, pos)
	}
}

// stepScriptData is the plain (non-escaped) script-data content state.
func (m *Machine) stepScriptData() {
	r, _ := m.pp.Peek()
	switch r {
	case '<':
		pos := m.pp.Position()
		m.pp.Consume()
		m.flushRun()
		m.ltPos = pos
		m.state = ScriptDataLessThanSign
	case 0:
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
	default:
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.Append(r, pos)
	}
}

// stepPlaintext never recognizes markup again once entered (spec.md
// §4.5): '<' is just another character.
func (m *Machine) stepPlaintext() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	m.pp.Consume()
	if r == 0 {
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
		return
	}
	m.run.Append(r, pos)
}

// escapableLessThanSign handles '<' for the RCDATA/RAWTEXT family: a
// following '/' opens an end-tag attempt, anything else is not markup
// at all (the '<' was already consumed by the caller; the content
// state continues on the very next character).
func (m *Machine) escapableLessThanSign(onSlash State, contentState State) {
	r, ok := m.pp.Peek()
	if ok && r == '/' {
		m.tempBuf.Reset()
		m.pp.Consume()
		m.state = onSlash
		return
	}
	m.run.Append('<', m.ltPos)
	m.state = contentState
}

// escapableEndTagOpen handles the character right after "</" in the
// RCDATA/RAWTEXT/ScriptData family: an ASCII letter starts a candidate
// end tag (reconsumed into endTagNameState so that state handles the
// first letter uniformly); anything else aborts.
func (m *Machine) escapableEndTagOpen(contentState, endTagNameState State) {
	r, ok := m.pp.Peek()
	if ok && builder.IsASCIILetter(r) {
		m.tag = builder.NewTag(true, m.ltPos)
		m.state = endTagNameState
		return
	}
	m.abortEscapableEndTag(contentState)
}

// escapableEndTagName accumulates a candidate end-tag name; it only
// completes (and only then checks whitespace/'/'/'>' terminators) once
// the tag name equals the last start tag name emitted by this machine
// — the "appropriate end tag token" rule (spec.md §4.5, "End-tag
// appropriateness").
func (m *Machine) escapableEndTagName(contentState State) {
	r, _ := m.pp.Peek()
	if builder.IsASCIILetter(r) {
		m.pp.Consume()
		m.tag.AppendName(r)
		m.tempBuf.WriteRune(r)
		return
	}

	appropriate := m.lastStartTagName != "" && m.tag.Name() == m.lastStartTagName
	if appropriate {
		switch {
		case builder.IsASCIIWhitespace(r):
			m.pp.Consume()
			m.state = BeforeAttributeName
			return
		case r == '/':
			m.pp.Consume()
			m.state = SelfClosingStartTag
			return
		case r == '>':
			pos := m.pp.Position()
			m.pp.Consume()
			m.emit(m.tag.Emit(pos))
			m.tag = nil
			m.state = Data
			return
		}
	}
	m.abortEscapableEndTag(contentState)
}

// abortEscapableEndTag re-emits the literal "</" plus whatever letters
// were buffered as character data and drops back into contentState to
// reconsume whatever character ended the attempt.
func (m *Machine) abortEscapableEndTag(contentState State) {
	m.tag = nil
	m.run.Append('<', m.ltPos)
	m.run.Append('/', m.ltPos)
	m.run.AppendString(m.tempBuf.String(), m.ltPos)
	m.state = contentState
}
