package tokenizer

import (
	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/token"
)

// stepTagOpen implements the Tag open state (spec.md §4.5 Tag open
// family) — the only state reached by consuming '<' out of Data.
func (m *Machine) stepTagOpen() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '!':
		m.consumeTagRune()
		m.state = MarkupDeclarationOpen
	case ok && r == '/':
		m.consumeTagRune()
		m.state = EndTagOpen
	case ok && builder.IsASCIILetter(r):
		m.tag = builder.NewTag(false, m.ltPos)
		m.state = TagName
	case ok && r == '?':
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedQuestionMarkInsteadOfTagName, pos.Line, pos.Column)
		m.comment = builder.NewComment(m.ltPos)
		m.endTagAttempt()
		m.state = BogusComment
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.InvalidFirstCharacterOfTagName, pos.Line, pos.Column)
		m.run.Append('<', m.ltPos)
		m.endTagAttempt()
		m.state = Data
	}
}

// stepEndTagOpen implements the End tag open state.
func (m *Machine) stepEndTagOpen() {
	r, ok := m.pp.Peek()
	switch {
	case ok && builder.IsASCIILetter(r):
		m.tag = builder.NewTag(true, m.ltPos)
		m.state = TagName
	case ok && r == '>':
		pos := m.pp.Position()
		m.consumeTagRune()
		m.sink.Append(errs.MissingEndTagName, pos.Line, pos.Column)
		m.endTagAttempt()
		m.state = Data
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.InvalidFirstCharacterOfTagName, pos.Line, pos.Column)
		m.comment = builder.NewComment(m.ltPos)
		m.endTagAttempt()
		m.state = BogusComment
	}
}

// stepTagName implements the Tag name state, shared by start and end
// tags (b.IsEnd was fixed by the constructor call in TagOpen/EndTagOpen).
func (m *Machine) stepTagName() {
	r, _ := m.pp.Peek()
	switch {
	case builder.IsASCIIWhitespace(r):
		m.consumeTagRune()
		m.state = BeforeAttributeName
	case r == '/':
		m.consumeTagRune()
		m.state = SelfClosingStartTag
	case r == '>':
		pos := m.pp.Position()
		m.consumeTagRune()
		m.emitTag(pos)
	case r == 0:
		pos := m.pp.Position()
		m.consumeTagRune()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.tag.AppendName(0xFFFD)
	default:
		m.consumeTagRune()
		m.tag.AppendName(r)
	}
}

// emitTag finalizes and emits the in-progress tag, remembering the
// last start tag name (for the escapable-family appropriateness check)
// and returning to Data.
func (m *Machine) emitTag(end token.Position) {
	t := m.tag.Emit(end)
	if !m.tag.IsEnd {
		m.lastStartTagName = t.Name
	}
	m.emit(t)
	m.tag = nil
	m.endTagAttempt()
	m.state = Data
}
