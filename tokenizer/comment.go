package tokenizer

import (
	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/token"
)

// stepMarkupDeclarationOpen implements the Markup declaration open
// state, entered right after "<!" (spec.md §4.5 Markup declaration
// family). The three recognized productions — comment, DOCTYPE, CDATA
// section — are each tried in turn via atomic lookahead matches;
// anything else falls back to a bogus comment.
func (m *Machine) stepMarkupDeclarationOpen() {
	if matchExact(m.pp, "--") {
		m.pp.Consume()
		m.pp.Consume()
		m.comment = builder.NewComment(m.ltPos)
		m.endTagAttempt()
		m.state = CommentStart
		return
	}
	if m.pp.MatchASCIICI("DOCTYPE") {
		m.endTagAttempt()
		m.state = Doctype
		return
	}
	if matchExact(m.pp, "[CDATA[") {
		for i := 0; i < 7; i++ {
			m.pp.Consume()
		}
		m.endTagAttempt()
		if m.inForeignContent {
			m.state = CDATASection
			return
		}
		pos := m.pp.Position()
		m.sink.Append(errs.CdataInHTMLContent, pos.Line, pos.Column)
		m.comment = builder.NewComment(m.ltPos)
		m.comment.AppendString("[CDATA[")
		m.state = BogusComment
		return
	}
	pos := m.pp.Position()
	m.sink.Append(errs.IncorrectlyOpenedComment, pos.Line, pos.Column)
	m.comment = builder.NewComment(m.ltPos)
	m.endTagAttempt()
	m.state = BogusComment
}

// matchExact checks an exact (case-sensitive) lookahead match without
// consuming — used for "--" and "[CDATA[", which (unlike DOCTYPE,
// PUBLIC, SYSTEM) the standard does not fold case on.
func matchExact(pp interface {
	PeekAt(int) (rune, bool)
}, s string) bool {
	for i := 0; i < len(s); i++ {
		r, ok := pp.PeekAt(i)
		if !ok || r != rune(s[i]) {
			return false
		}
	}
	return true
}

func (m *Machine) emitComment(end token.Position) {
	m.emit(m.comment.Emit(end))
	m.comment = nil
	m.state = Data
}

func (m *Machine) stepBogusComment() {
	r, _ := m.pp.Peek()
	switch r {
	case '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.emitComment(pos)
	case 0:
		m.pp.Consume()
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.comment.Append(0xFFFD)
	default:
		m.pp.Consume()
		m.comment.Append(r)
	}
}

func (m *Machine) stepCommentStart() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '-':
		m.pp.Consume()
		m.state = CommentStartDash
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.AbruptClosingOfEmptyComment, pos.Line, pos.Column)
		m.emitComment(pos)
	default:
		m.state = Comment
	}
}

func (m *Machine) stepCommentStartDash() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '-':
		m.pp.Consume()
		m.state = CommentEnd
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.AbruptClosingOfEmptyComment, pos.Line, pos.Column)
		m.emitComment(pos)
	default:
		m.comment.Append('-')
		m.state = Comment
	}
}

func (m *Machine) stepComment() {
	r, _ := m.pp.Peek()
	switch r {
	case '<':
		m.pp.Consume()
		m.comment.Append('<')
		m.state = CommentLessThanSign
	case '-':
		m.pp.Consume()
		m.state = CommentEndDash
	case 0:
		m.pp.Consume()
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.comment.Append(0xFFFD)
	default:
		m.pp.Consume()
		m.comment.Append(r)
	}
}

func (m *Machine) stepCommentLessThanSign() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '!':
		m.pp.Consume()
		m.comment.Append('!')
		m.state = CommentLessThanSignBang
	case ok && r == '<':
		m.pp.Consume()
		m.comment.Append('<')
	default:
		m.state = Comment
	}
}

func (m *Machine) stepCommentLessThanSignBang() {
	r, ok := m.pp.Peek()
	if ok && r == '-' {
		m.pp.Consume()
		m.state = CommentLessThanSignBangDash
		return
	}
	m.state = Comment
}

func (m *Machine) stepCommentLessThanSignBangDash() {
	r, ok := m.pp.Peek()
	if ok && r == '-' {
		m.pp.Consume()
		m.state = CommentLessThanSignBangDashDash
		return
	}
	m.state = CommentEndDash
}

func (m *Machine) stepCommentLessThanSignBangDashDash() {
	r, ok := m.pp.Peek()
	if !ok || r == '>' {
		m.state = CommentEnd
		return
	}
	pos := m.pp.Position()
	m.sink.Append(errs.NestedComment, pos.Line, pos.Column)
	m.state = CommentEnd
}

func (m *Machine) stepCommentEndDash() {
	r, ok := m.pp.Peek()
	if ok && r == '-' {
		m.pp.Consume()
		m.state = CommentEnd
		return
	}
	m.comment.Append('-')
	m.state = Comment
}

func (m *Machine) stepCommentEnd() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.emitComment(pos)
	case ok && r == '!':
		m.pp.Consume()
		m.state = CommentEndBang
	case ok && r == '-':
		m.pp.Consume()
		m.comment.Append('-')
	default:
		m.comment.AppendString("--")
		m.state = Comment
	}
}

func (m *Machine) stepCommentEndBang() {
	r, ok := m.pp.Peek()
	switch {
	case ok && r == '-':
		m.pp.Consume()
		m.comment.AppendString("--!")
		m.state = CommentEndDash
	case ok && r == '>':
		pos := m.pp.Position()
		m.pp.Consume()
		m.sink.Append(errs.IncorrectlyClosedComment, pos.Line, pos.Column)
		m.emitComment(pos)
	default:
		m.comment.AppendString("--!")
		m.state = Comment
	}
}
