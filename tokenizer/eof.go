package tokenizer

import (
	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/token"
)

// handleEOF runs once, after the preprocessor reports end-of-file, to
// finish whatever the state machine was in the middle of: flush a
// pending character run, emit or drop an in-progress builder, and
// record the one parse error (if any) each state contracts for at EOF
// (spec.md §4.5, "EOF" column of every state family; §3.3 on builder
// lifecycles).
func (m *Machine) handleEOF() {
	pos := m.pp.Position()

	switch m.state {
	case Data, RCDATA, RAWTEXT, ScriptData, Plaintext,
		ScriptDataEscapeStart, ScriptDataEscapeStartDash:
		m.flushRun()

	case ScriptDataEscaped, ScriptDataEscapedDash, ScriptDataEscapedDashDash,
		ScriptDataDoubleEscaped, ScriptDataDoubleEscapedDash, ScriptDataDoubleEscapedDashDash:
		m.sink.Append(errs.EOFInScriptHTMLCommentLikeText, pos.Line, pos.Column)
		m.flushRun()

	case RCDATALessThanSign, RAWTEXTLessThanSign, ScriptDataLessThanSign,
		ScriptDataEscapedLessThanSign, ScriptDataDoubleEscapedLessThanSign:
		m.run.Append('<', m.ltPos)
		m.flushRun()

	case RCDATAEndTagOpen, RAWTEXTEndTagOpen, ScriptDataEndTagOpen, ScriptDataEscapedEndTagOpen:
		m.run.Append('<', m.ltPos)
		m.run.Append('/', m.ltPos)
		m.flushRun()

	case RCDATAEndTagName, RAWTEXTEndTagName, ScriptDataEndTagName, ScriptDataEscapedEndTagName:
		m.run.Append('<', m.ltPos)
		m.run.Append('/', m.ltPos)
		m.run.AppendString(m.tempBuf.String(), m.ltPos)
		m.tag = nil
		m.flushRun()

	case ScriptDataDoubleEscapeStart, ScriptDataDoubleEscapeEnd:
		m.flushRun()

	case CDATASection:
		m.sink.Append(errs.EOFInCdata, pos.Line, pos.Column)
		m.flushRun()
	case CDATASectionBracket:
		m.run.Append(']', pos)
		m.sink.Append(errs.EOFInCdata, pos.Line, pos.Column)
		m.flushRun()
	case CDATASectionEnd:
		m.run.Append(']', pos)
		m.run.Append(']', pos)
		m.sink.Append(errs.EOFInCdata, pos.Line, pos.Column)
		m.flushRun()

	case TagOpen, EndTagOpen:
		m.sink.Append(errs.EOFBeforeTagName, pos.Line, pos.Column)
		m.flushRun()
		m.emit(m.charToken(m.tagRaw.String()))
		m.endTagAttempt()

	case TagName, BeforeAttributeName, AttributeName, AfterAttributeName,
		BeforeAttributeValue, AttributeValueDoubleQuoted, AttributeValueSingleQuoted,
		AttributeValueUnquoted, AfterAttributeValueQuoted, SelfClosingStartTag:
		m.sink.Append(errs.EOFInTag, pos.Line, pos.Column)
		m.tag = nil

	case MarkupDeclarationOpen:
		m.sink.Append(errs.IncorrectlyOpenedComment, pos.Line, pos.Column)
		m.comment = builder.NewComment(m.ltPos)
		m.emit(m.comment.Emit(pos))
		m.comment = nil

	case BogusComment, CommentStart, Comment, CommentLessThanSign, CommentLessThanSignBang:
		if m.state != BogusComment {
			m.sink.Append(errs.EOFInComment, pos.Line, pos.Column)
		}
		m.emit(m.comment.Emit(pos))
		m.comment = nil

	case CommentStartDash, CommentLessThanSignBangDash, CommentLessThanSignBangDashDash,
		CommentEndDash, CommentEnd, CommentEndBang:
		m.sink.Append(errs.EOFInComment, pos.Line, pos.Column)
		m.emit(m.comment.Emit(pos))
		m.comment = nil

	case Doctype, BeforeDoctypeName:
		m.sink.Append(errs.EOFInDoctype, pos.Line, pos.Column)
		if m.doctype == nil {
			m.doctype = builder.NewDoctype(m.ltPos)
		}
		m.doctype.SetForceQuirks(true)
		m.emit(m.doctype.Emit(pos))
		m.doctype = nil

	case DoctypeName, AfterDoctypeName, AfterDoctypePublicKeyword,
		BeforeDoctypePublicIdentifier, DoctypePublicIdentifierDoubleQuoted, DoctypePublicIdentifierSingleQuoted,
		AfterDoctypePublicIdentifier, BetweenDoctypePublicAndSystemIdentifiers,
		AfterDoctypeSystemKeyword, BeforeDoctypeSystemIdentifier,
		DoctypeSystemIdentifierDoubleQuoted, DoctypeSystemIdentifierSingleQuoted,
		AfterDoctypeSystemIdentifier:
		m.sink.Append(errs.EOFInDoctype, pos.Line, pos.Column)
		m.doctype.SetForceQuirks(true)
		m.emit(m.doctype.Emit(pos))
		m.doctype = nil

	case BogusDoctype:
		m.sink.Append(errs.EOFInDoctype, pos.Line, pos.Column)
		m.emit(m.doctype.Emit(pos))
		m.doctype = nil
	}
}

// charToken builds a bare Character token spanning from the opening
// '<' position to the current (EOF) position, for the TagOpen /
// EndTagOpen abandonment cases where no CharRun was ever opened.
func (m *Machine) charToken(s string) token.Token {
	return token.Token{
		Type:  token.Character,
		Data:  s,
		Start: m.ltPos,
		End:   m.pp.Position(),
	}
}
