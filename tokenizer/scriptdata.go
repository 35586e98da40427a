package tokenizer

import (
	"strings"

	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/errs"
)

// stepScriptDataLessThanSign handles '<' in the plain (non-escaped)
// script-data content state (spec.md §4.5 Script-data escape family).
func (m *Machine) stepScriptDataLessThanSign() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '/':
		m.pp.Consume()
		m.tempBuf.Reset()
		m.state = ScriptDataEndTagOpen
	case ok && r == '!':
		m.pp.Consume()
		m.run.Append('<', m.ltPos)
		m.run.Append('!', m.ltPos)
		m.state = ScriptDataEscapeStart
	default:
		m.run.Append('<', m.ltPos)
		m.state = ScriptData
	}
}

func (m *Machine) stepScriptDataEscapeStart() {
	r, ok := m.pp.Peek()
	if ok && r == '-' {
		m.pp.Consume()
		m.run.Append('-', m.pp.Position())
		m.state = ScriptDataEscapeStartDash
		return
	}
	m.state = ScriptData
}

func (m *Machine) stepScriptDataEscapeStartDash() {
	r, ok := m.pp.Peek()
	if ok && r == '-' {
		m.pp.Consume()
		m.run.Append('-', m.pp.Position())
		m.state = ScriptDataEscapedDashDash
		return
	}
	m.state = ScriptData
}

func (m *Machine) stepScriptDataEscaped() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	switch r {
	case '-':
		m.pp.Consume()
		m.run.Append('-', pos)
		m.state = ScriptDataEscapedDash
	case '<':
		m.pp.Consume()
		m.ltPos = pos
		m.state = ScriptDataEscapedLessThanSign
	case 0:
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
	default:
		m.pp.Consume()
		m.run.Append(r, pos)
	}
}

func (m *Machine) stepScriptDataEscapedDash() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	switch r {
	case '-':
		m.pp.Consume()
		m.run.Append('-', pos)
		m.state = ScriptDataEscapedDashDash
	case '<':
		m.pp.Consume()
		m.ltPos = pos
		m.state = ScriptDataEscapedLessThanSign
	case 0:
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
		m.state = ScriptDataEscaped
	default:
		m.pp.Consume()
		m.run.Append(r, pos)
		m.state = ScriptDataEscaped
	}
}

func (m *Machine) stepScriptDataEscapedDashDash() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	switch r {
	case '-':
		m.pp.Consume()
		m.run.Append('-', pos)
	case '<':
		m.pp.Consume()
		m.ltPos = pos
		m.state = ScriptDataEscapedLessThanSign
	case '>':
		m.pp.Consume()
		m.run.Append('>', pos)
		m.state = ScriptData
	case 0:
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
		m.state = ScriptDataEscaped
	default:
		m.pp.Consume()
		m.run.Append(r, pos)
		m.state = ScriptDataEscaped
	}
}

func (m *Machine) stepScriptDataEscapedLessThanSign() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '/':
		m.pp.Consume()
		m.tempBuf.Reset()
		m.state = ScriptDataEscapedEndTagOpen
	case ok && builder.IsASCIILetter(r):
		m.tempBuf.Reset()
		m.run.Append('<', m.ltPos)
		m.state = ScriptDataDoubleEscapeStart
	default:
		m.run.Append('<', m.ltPos)
		m.state = ScriptDataEscaped
	}
}

// stepScriptDataDoubleEscapeStart and stepScriptDataDoubleEscapeEnd
// are mirror images of each other (one transitions into double-escaped
// script data when it sees "script", the other transitions back out
// of it) — both keyed off the same case-folded temp-buffer match.
func (m *Machine) stepScriptDataDoubleEscapeStart() {
	r, ok := m.pp.Peek()
	switch {
	case ok && (builder.IsASCIIWhitespace(r) || r == '/' || r == '>'):
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.Append(r, pos)
		if strings.EqualFold(m.tempBuf.String(), "script") {
			m.state = ScriptDataDoubleEscaped
		} else {
			m.state = ScriptDataEscaped
		}
	case ok && builder.IsASCIILetter(r):
		pos := m.pp.Position()
		m.pp.Consume()
		m.tempBuf.WriteRune(lowerASCIIRune(r))
		m.run.Append(r, pos)
	default:
		m.state = ScriptDataEscaped
	}
}

func (m *Machine) stepScriptDataDoubleEscaped() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	switch r {
	case '-':
		m.pp.Consume()
		m.run.Append('-', pos)
		m.state = ScriptDataDoubleEscapedDash
	case '<':
		m.pp.Consume()
		m.run.Append('<', pos)
		m.state = ScriptDataDoubleEscapedLessThanSign
	case 0:
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
	default:
		m.pp.Consume()
		m.run.Append(r, pos)
	}
}

func (m *Machine) stepScriptDataDoubleEscapedDash() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	switch r {
	case '-':
		m.pp.Consume()
		m.run.Append('-', pos)
		m.state = ScriptDataDoubleEscapedDashDash
	case '<':
		m.pp.Consume()
		m.run.Append('<', pos)
		m.state = ScriptDataDoubleEscapedLessThanSign
	case 0:
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
		m.state = ScriptDataDoubleEscaped
	default:
		m.pp.Consume()
		m.run.Append(r, pos)
		m.state = ScriptDataDoubleEscaped
	}
}

func (m *Machine) stepScriptDataDoubleEscapedDashDash() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	switch r {
	case '-':
		m.pp.Consume()
		m.run.Append('-', pos)
	case '<':
		m.pp.Consume()
		m.run.Append('<', pos)
		m.state = ScriptDataDoubleEscapedLessThanSign
	case '>':
		m.pp.Consume()
		m.run.Append('>', pos)
		m.state = ScriptData
	case 0:
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0xFFFD, pos)
		m.state = ScriptDataDoubleEscaped
	default:
		m.pp.Consume()
		m.run.Append(r, pos)
		m.state = ScriptDataDoubleEscaped
	}
}

func (m *Machine) stepScriptDataDoubleEscapedLessThanSign() {
	r, ok := m.pp.Peek()
	if ok && r == '/' {
		pos := m.pp.Position()
		m.pp.Consume()
		m.tempBuf.Reset()
		m.run.Append('/', pos)
		m.state = ScriptDataDoubleEscapeEnd
		return
	}
	m.state = ScriptDataDoubleEscaped
}

func (m *Machine) stepScriptDataDoubleEscapeEnd() {
	r, ok := m.pp.Peek()
	switch {
	case ok && (builder.IsASCIIWhitespace(r) || r == '/' || r == '>'):
		pos := m.pp.Position()
		m.pp.Consume()
		m.run.Append(r, pos)
		if strings.EqualFold(m.tempBuf.String(), "script") {
			m.state = ScriptDataEscaped
		} else {
			m.state = ScriptDataDoubleEscaped
		}
	case ok && builder.IsASCIILetter(r):
		pos := m.pp.Position()
		m.pp.Consume()
		m.tempBuf.WriteRune(lowerASCIIRune(r))
		m.run.Append(r, pos)
	default:
		m.state = ScriptDataDoubleEscaped
	}
}

func lowerASCIIRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
