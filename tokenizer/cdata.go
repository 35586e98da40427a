package tokenizer

import "github.com/aldermoss/html5tok/internal/errs"

// stepCDATASection implements the CDATA section state (spec.md §4.5
// CDATA section family): content between "<![CDATA[" and "]]>",
// emitted verbatim as character data. As in Data (and unlike RCDATA,
// RAWTEXT, ScriptData and Plaintext), a NUL here is preserved rather
// than replaced with U+FFFD (spec.md §3.2 invariant 3), though it is
// still flagged.
func (m *Machine) stepCDATASection() {
	r, _ := m.pp.Peek()
	pos := m.pp.Position()
	switch r {
	case ']':
		m.pp.Consume()
		m.state = CDATASectionBracket
	case 0:
		m.pp.Consume()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.run.Append(0, pos)
	default:
		m.pp.Consume()
		m.run.Append(r, pos)
	}
}

func (m *Machine) stepCDATASectionBracket() {
	r, ok := m.pp.Peek()
	if ok && r == ']' {
		m.pp.Consume()
		m.state = CDATASectionEnd
		return
	}
	m.run.Append(']', m.pp.Position())
	m.state = CDATASection
}

func (m *Machine) stepCDATASectionEnd() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == ']':
		m.pp.Consume()
		m.run.Append(']', m.pp.Position())
	case ok && r == '>':
		m.pp.Consume()
		m.state = Data
	default:
		pos := m.pp.Position()
		m.run.Append(']', pos)
		m.run.Append(']', pos)
		m.state = CDATASection
	}
}
