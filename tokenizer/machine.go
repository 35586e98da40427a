// Package tokenizer implements the WHATWG HTML5 tokenizer's state
// machine (C5) — the core of this module. A Machine owns the active
// builder slot, the in-progress character run, and the end-tag
// appropriateness bookkeeping, and drives them one source code point
// at a time by pulling from an internal/preprocess.Preprocessor.
//
// This mirrors the shape of the teacher's own hand-rolled tokenizer
// (_examples/hoplang-hop-go/tokenizer/tokenizer.go): one big dispatch
// over a state enum, a peek/advance cursor, and a handful of small
// builder structs — generalized here from ~19 states covering a toy
// tag/comment/doctype grammar to the full 80-ish state WHATWG machine.
package tokenizer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/charref"
	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/internal/preprocess"
	"github.com/aldermoss/html5tok/token"
)

// Machine is the tokenizer state machine. Construct with New, then
// call Run once.
type Machine struct {
	pp   *preprocess.Preprocessor
	sink *errs.Sink
	log  *zap.Logger

	state            State
	inForeignContent bool

	tokens []token.Token
	run    builder.CharRun

	tag     *builder.Tag
	comment *builder.Comment
	doctype *builder.Doctype

	lastStartTagName string

	// ltPos is the position of the most recently consumed '<' that
	// opened the tag/comment/doctype attempt currently in progress.
	ltPos token.Position

	// tempBuf accumulates the original-case characters of a candidate
	// end-tag name (RCDATA/RAWTEXT/ScriptData family), or the
	// lowercased characters of a "script" keyword match (script-data
	// (double) escape family).
	tempBuf strings.Builder

	// tagRaw mirrors every raw character consumed since the opening
	// '<' of a tag attempt still in progress. It is re-emitted as
	// character data only when EOF arrives in TagOpen or EndTagOpen
	// (where it holds "<" or "</"); an EOF in any later tag state drops
	// the tag and its characters with eof-in-tag. tagRawActive is false
	// outside of a tag attempt.
	tagRaw       strings.Builder
	tagRawActive bool
}

// Option configures a Machine constructed by New.
type Option func(*Machine)

// WithLastStartTagName seeds the end-tag-appropriateness check, for a
// caller resuming tokenization of RCDATA/RAWTEXT/ScriptData content
// whose opening tag was tokenized in an earlier call.
func WithLastStartTagName(name string) Option {
	return func(m *Machine) { m.lastStartTagName = name }
}

// WithForeignContent controls whether "<![CDATA[" opens a CDATA
// section (true) or becomes a bogus comment with cdata-in-html-content
// (false, the default) — spec.md §4.5 Markup declaration row.
func WithForeignContent(v bool) Option {
	return func(m *Machine) { m.inForeignContent = v }
}

// WithLogger attaches a zap logger that receives a Debug-level trace
// line for every state transition. The default is a no-op logger, so
// tracing costs nothing unless explicitly enabled.
func WithLogger(l *zap.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.log = l
		}
	}
}

// New constructs a Machine over pp, starting in initial, recording
// parse errors into sink.
func New(pp *preprocess.Preprocessor, sink *errs.Sink, initial State, opts ...Option) *Machine {
	m := &Machine{
		pp:    pp,
		sink:  sink,
		log:   zap.NewNop(),
		state: initial,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Run tokenizes the entire input and returns the resulting tokens.
// Errors accumulated along the way are available from the Sink passed
// to New.
func (m *Machine) Run() []token.Token {
	for !m.pp.Eof() {
		m.log.Debug("step",
			zap.String("state", m.state.String()),
			zap.Int("line", m.pp.Position().Line),
			zap.Int("column", m.pp.Position().Column),
		)
		m.step()
	}
	m.handleEOF()
	return m.tokens
}

func (m *Machine) emit(t token.Token) {
	m.tokens = append(m.tokens, t)
}

// flushRun emits the in-progress character run, if non-empty, ending
// it at the current cursor position.
func (m *Machine) flushRun() {
	if t, ok := m.run.Flush(m.pp.Position()); ok {
		m.emit(t)
	}
}

// beginTagAttempt resets raw-tag tracking for a new '<'-initiated
// attempt and records its position for the eventual token Start.
func (m *Machine) beginTagAttempt(ltPos token.Position) {
	m.ltPos = ltPos
	m.tagRaw.Reset()
	m.tagRaw.WriteRune('<')
	m.tagRawActive = true
}

// consumeTagRune consumes one code point and, if a tag attempt is in
// progress, mirrors it into tagRaw for EOF reconstitution.
func (m *Machine) consumeTagRune() (rune, bool) {
	r, ok := m.pp.Consume()
	if ok && m.tagRawActive {
		m.tagRaw.WriteRune(r)
	}
	return r, ok
}

// endTagAttempt stops raw-tag tracking (tag emitted, or handed off to
// a path — like bogus comment — that defines its own EOF behavior).
func (m *Machine) endTagAttempt() {
	m.tagRawActive = false
}

func (m *Machine) step() {
	switch m.state {
	case Data:
		m.stepData()
	case RCDATA:
		m.stepRCDATA()
	case RAWTEXT:
		m.stepRAWTEXT()
	case ScriptData:
		m.stepScriptData()
	case Plaintext:
		m.stepPlaintext()
	case CDATASection:
		m.stepCDATASection()
	case CDATASectionBracket:
		m.stepCDATASectionBracket()
	case CDATASectionEnd:
		m.stepCDATASectionEnd()

	case TagOpen:
		m.stepTagOpen()
	case EndTagOpen:
		m.stepEndTagOpen()
	case TagName:
		m.stepTagName()

	case RCDATALessThanSign:
		m.escapableLessThanSign(RCDATAEndTagOpen, RCDATA)
	case RCDATAEndTagOpen:
		m.escapableEndTagOpen(RCDATA, RCDATAEndTagName)
	case RCDATAEndTagName:
		m.escapableEndTagName(RCDATA)

	case RAWTEXTLessThanSign:
		m.escapableLessThanSign(RAWTEXTEndTagOpen, RAWTEXT)
	case RAWTEXTEndTagOpen:
		m.escapableEndTagOpen(RAWTEXT, RAWTEXTEndTagName)
	case RAWTEXTEndTagName:
		m.escapableEndTagName(RAWTEXT)

	case ScriptDataLessThanSign:
		m.stepScriptDataLessThanSign()
	case ScriptDataEndTagOpen:
		m.escapableEndTagOpen(ScriptData, ScriptDataEndTagName)
	case ScriptDataEndTagName:
		m.escapableEndTagName(ScriptData)
	case ScriptDataEscapeStart:
		m.stepScriptDataEscapeStart()
	case ScriptDataEscapeStartDash:
		m.stepScriptDataEscapeStartDash()
	case ScriptDataEscaped:
		m.stepScriptDataEscaped()
	case ScriptDataEscapedDash:
		m.stepScriptDataEscapedDash()
	case ScriptDataEscapedDashDash:
		m.stepScriptDataEscapedDashDash()
	case ScriptDataEscapedLessThanSign:
		m.stepScriptDataEscapedLessThanSign()
	case ScriptDataEscapedEndTagOpen:
		m.escapableEndTagOpen(ScriptDataEscaped, ScriptDataEscapedEndTagName)
	case ScriptDataEscapedEndTagName:
		m.escapableEndTagName(ScriptDataEscaped)
	case ScriptDataDoubleEscapeStart:
		m.stepScriptDataDoubleEscapeStart()
	case ScriptDataDoubleEscaped:
		m.stepScriptDataDoubleEscaped()
	case ScriptDataDoubleEscapedDash:
		m.stepScriptDataDoubleEscapedDash()
	case ScriptDataDoubleEscapedDashDash:
		m.stepScriptDataDoubleEscapedDashDash()
	case ScriptDataDoubleEscapedLessThanSign:
		m.stepScriptDataDoubleEscapedLessThanSign()
	case ScriptDataDoubleEscapeEnd:
		m.stepScriptDataDoubleEscapeEnd()

	case BeforeAttributeName:
		m.stepBeforeAttributeName()
	case AttributeName:
		m.stepAttributeName()
	case AfterAttributeName:
		m.stepAfterAttributeName()
	case BeforeAttributeValue:
		m.stepBeforeAttributeValue()
	case AttributeValueDoubleQuoted:
		m.stepAttributeValueQuoted('"')
	case AttributeValueSingleQuoted:
		m.stepAttributeValueQuoted('\'')
	case AttributeValueUnquoted:
		m.stepAttributeValueUnquoted()
	case AfterAttributeValueQuoted:
		m.stepAfterAttributeValueQuoted()
	case SelfClosingStartTag:
		m.stepSelfClosingStartTag()

	case MarkupDeclarationOpen:
		m.stepMarkupDeclarationOpen()
	case BogusComment:
		m.stepBogusComment()
	case CommentStart:
		m.stepCommentStart()
	case CommentStartDash:
		m.stepCommentStartDash()
	case Comment:
		m.stepComment()
	case CommentLessThanSign:
		m.stepCommentLessThanSign()
	case CommentLessThanSignBang:
		m.stepCommentLessThanSignBang()
	case CommentLessThanSignBangDash:
		m.stepCommentLessThanSignBangDash()
	case CommentLessThanSignBangDashDash:
		m.stepCommentLessThanSignBangDashDash()
	case CommentEndDash:
		m.stepCommentEndDash()
	case CommentEnd:
		m.stepCommentEnd()
	case CommentEndBang:
		m.stepCommentEndBang()

	case Doctype:
		m.stepDoctype()
	case BeforeDoctypeName:
		m.stepBeforeDoctypeName()
	case DoctypeName:
		m.stepDoctypeName()
	case AfterDoctypeName:
		m.stepAfterDoctypeName()
	case AfterDoctypePublicKeyword:
		m.stepAfterDoctypePublicKeyword()
	case BeforeDoctypePublicIdentifier:
		m.stepBeforeDoctypePublicIdentifier()
	case DoctypePublicIdentifierDoubleQuoted:
		m.stepDoctypePublicIdentifierQuoted('"')
	case DoctypePublicIdentifierSingleQuoted:
		m.stepDoctypePublicIdentifierQuoted('\'')
	case AfterDoctypePublicIdentifier:
		m.stepAfterDoctypePublicIdentifier()
	case BetweenDoctypePublicAndSystemIdentifiers:
		m.stepBetweenDoctypePublicAndSystemIdentifiers()
	case AfterDoctypeSystemKeyword:
		m.stepAfterDoctypeSystemKeyword()
	case BeforeDoctypeSystemIdentifier:
		m.stepBeforeDoctypeSystemIdentifier()
	case DoctypeSystemIdentifierDoubleQuoted:
		m.stepDoctypeSystemIdentifierQuoted('"')
	case DoctypeSystemIdentifierSingleQuoted:
		m.stepDoctypeSystemIdentifierQuoted('\'')
	case AfterDoctypeSystemIdentifier:
		m.stepAfterDoctypeSystemIdentifier()
	case BogusDoctype:
		m.stepBogusDoctype()

	default:
		panic("tokenizer: unhandled state " + m.state.String())
	}
}

// resolveCharRef is the shared entry point for '&' in Data and RCDATA
// (the only two content states where character references are live).
func (m *Machine) resolveCharRef(inAttribute bool) string {
	return charref.Resolve(m.pp, m.sink, inAttribute)
}
