package tokenizer

import (
	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/token"
)

func (m *Machine) emitDoctype(end token.Position) {
	m.emit(m.doctype.Emit(end))
	m.doctype = nil
	m.state = Data
}

func (m *Machine) stepDoctype() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
		m.state = BeforeDoctypeName
	case ok && r == '>':
		m.state = BeforeDoctypeName
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceBeforeDoctypeName, pos.Line, pos.Column)
		m.state = BeforeDoctypeName
	}
}

func (m *Machine) stepBeforeDoctypeName() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
	case ok && r == 0:
		m.pp.Consume()
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.doctype = builder.NewDoctype(m.ltPos)
		m.doctype.AppendName(0xFFFD)
		m.state = DoctypeName
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.MissingDoctypeName, pos.Line, pos.Column)
		m.doctype = builder.NewDoctype(m.ltPos)
		m.emitDoctype(pos)
	default:
		m.doctype = builder.NewDoctype(m.ltPos)
		m.pp.Consume()
		m.doctype.AppendName(r)
		m.state = DoctypeName
	}
}

func (m *Machine) stepDoctypeName() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
		m.state = AfterDoctypeName
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.doctype.SetForceQuirks(false)
		m.emitDoctype(pos)
	case ok && r == 0:
		m.pp.Consume()
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.doctype.AppendName(0xFFFD)
	default:
		m.pp.Consume()
		m.doctype.AppendName(r)
	}
}

func (m *Machine) stepAfterDoctypeName() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.doctype.SetForceQuirks(false)
		m.emitDoctype(pos)
	case m.pp.MatchASCIICI("PUBLIC"):
		m.state = AfterDoctypePublicKeyword
	case m.pp.MatchASCIICI("SYSTEM"):
		m.state = AfterDoctypeSystemKeyword
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.InvalidCharacterSequenceAfterDoctypeName, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepAfterDoctypePublicKeyword() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
		m.state = BeforeDoctypePublicIdentifier
	case ok && r == '"':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceAfterDoctypePublicKeyword, pos.Line, pos.Column)
		m.pp.Consume()
		m.doctype.EnsurePublicID()
		m.state = DoctypePublicIdentifierDoubleQuoted
	case ok && r == '\'':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceAfterDoctypePublicKeyword, pos.Line, pos.Column)
		m.pp.Consume()
		m.doctype.EnsurePublicID()
		m.state = DoctypePublicIdentifierSingleQuoted
	case ok && r == '>':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingDoctypePublicIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.pp.Consume()
		m.emitDoctype(pos)
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingQuoteBeforeDoctypePublicIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepBeforeDoctypePublicIdentifier() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
	case ok && r == '"':
		m.pp.Consume()
		m.doctype.EnsurePublicID()
		m.state = DoctypePublicIdentifierDoubleQuoted
	case ok && r == '\'':
		m.pp.Consume()
		m.doctype.EnsurePublicID()
		m.state = DoctypePublicIdentifierSingleQuoted
	case ok && r == '>':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingDoctypePublicIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.pp.Consume()
		m.emitDoctype(pos)
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingQuoteBeforeDoctypePublicIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepDoctypePublicIdentifierQuoted(quote rune) {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == quote:
		m.pp.Consume()
		m.state = AfterDoctypePublicIdentifier
	case ok && r == 0:
		m.pp.Consume()
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.doctype.AppendPublicID(0xFFFD)
	case ok && r == '>':
		pos := m.pp.Position()
		m.sink.Append(errs.AbruptDoctypePublicIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.pp.Consume()
		m.emitDoctype(pos)
	default:
		m.pp.Consume()
		m.doctype.AppendPublicID(r)
	}
}

func (m *Machine) stepAfterDoctypePublicIdentifier() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
		m.state = BetweenDoctypePublicAndSystemIdentifiers
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.doctype.SetForceQuirks(false)
		m.emitDoctype(pos)
	case ok && r == '"':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceBetweenDoctypePublicAndSystemIDs, pos.Line, pos.Column)
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierDoubleQuoted
	case ok && r == '\'':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceBetweenDoctypePublicAndSystemIDs, pos.Line, pos.Column)
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierSingleQuoted
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingQuoteBeforeDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepBetweenDoctypePublicAndSystemIdentifiers() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.doctype.SetForceQuirks(false)
		m.emitDoctype(pos)
	case ok && r == '"':
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierDoubleQuoted
	case ok && r == '\'':
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierSingleQuoted
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingQuoteBeforeDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepAfterDoctypeSystemKeyword() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
		m.state = BeforeDoctypeSystemIdentifier
	case ok && r == '"':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceAfterDoctypeSystemKeyword, pos.Line, pos.Column)
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierDoubleQuoted
	case ok && r == '\'':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceAfterDoctypeSystemKeyword, pos.Line, pos.Column)
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierSingleQuoted
	case ok && r == '>':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.pp.Consume()
		m.emitDoctype(pos)
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingQuoteBeforeDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepBeforeDoctypeSystemIdentifier() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
	case ok && r == '"':
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierDoubleQuoted
	case ok && r == '\'':
		m.pp.Consume()
		m.doctype.EnsureSystemID()
		m.state = DoctypeSystemIdentifierSingleQuoted
	case ok && r == '>':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.pp.Consume()
		m.emitDoctype(pos)
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingQuoteBeforeDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepDoctypeSystemIdentifierQuoted(quote rune) {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == quote:
		m.pp.Consume()
		m.state = AfterDoctypeSystemIdentifier
	case ok && r == 0:
		m.pp.Consume()
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.doctype.AppendSystemID(0xFFFD)
	case ok && r == '>':
		pos := m.pp.Position()
		m.sink.Append(errs.AbruptDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.pp.Consume()
		m.emitDoctype(pos)
	default:
		m.pp.Consume()
		m.doctype.AppendSystemID(r)
	}
}

func (m *Machine) stepAfterDoctypeSystemIdentifier() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIIWhitespace(r):
		m.pp.Consume()
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.doctype.SetForceQuirks(false)
		m.emitDoctype(pos)
	default:
		// This does not set the force-quirks flag.
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedCharacterAfterDoctypeSystemIdentifier, pos.Line, pos.Column)
		m.state = BogusDoctype
	}
}

func (m *Machine) stepBogusDoctype() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.emitDoctype(pos)
	case ok && r == 0:
		m.pp.Consume()
	default:
		if ok {
			m.pp.Consume()
		}
	}
}
