package tokenizer

import "golang.org/x/net/html/atom"

// State names one of the tokenizer's states. The content states
// (Data, RCDATA, RAWTEXT, ScriptData, Plaintext, CDATASection) are the
// six a caller may pick as the initial state (spec.md §6); every other
// state is reached only by the state machine itself.
type State int

const (
	Data State = iota
	RCDATA
	RAWTEXT
	ScriptData
	Plaintext
	CDATASection

	TagOpen
	EndTagOpen
	TagName

	RCDATALessThanSign
	RCDATAEndTagOpen
	RCDATAEndTagName

	RAWTEXTLessThanSign
	RAWTEXTEndTagOpen
	RAWTEXTEndTagName

	ScriptDataLessThanSign
	ScriptDataEndTagOpen
	ScriptDataEndTagName
	ScriptDataEscapeStart
	ScriptDataEscapeStartDash
	ScriptDataEscaped
	ScriptDataEscapedDash
	ScriptDataEscapedDashDash
	ScriptDataEscapedLessThanSign
	ScriptDataEscapedEndTagOpen
	ScriptDataEscapedEndTagName
	ScriptDataDoubleEscapeStart
	ScriptDataDoubleEscaped
	ScriptDataDoubleEscapedDash
	ScriptDataDoubleEscapedDashDash
	ScriptDataDoubleEscapedLessThanSign
	ScriptDataDoubleEscapeEnd

	BeforeAttributeName
	AttributeName
	AfterAttributeName
	BeforeAttributeValue
	AttributeValueDoubleQuoted
	AttributeValueSingleQuoted
	AttributeValueUnquoted
	AfterAttributeValueQuoted
	SelfClosingStartTag

	MarkupDeclarationOpen
	BogusComment
	CommentStart
	CommentStartDash
	Comment
	CommentLessThanSign
	CommentLessThanSignBang
	CommentLessThanSignBangDash
	CommentLessThanSignBangDashDash
	CommentEndDash
	CommentEnd
	CommentEndBang

	Doctype
	BeforeDoctypeName
	DoctypeName
	AfterDoctypeName
	AfterDoctypePublicKeyword
	BeforeDoctypePublicIdentifier
	DoctypePublicIdentifierDoubleQuoted
	DoctypePublicIdentifierSingleQuoted
	AfterDoctypePublicIdentifier
	BetweenDoctypePublicAndSystemIdentifiers
	AfterDoctypeSystemKeyword
	BeforeDoctypeSystemIdentifier
	DoctypeSystemIdentifierDoubleQuoted
	DoctypeSystemIdentifierSingleQuoted
	AfterDoctypeSystemIdentifier
	BogusDoctype

	CDATASectionBracket
	CDATASectionEnd
)

var stateNames = map[State]string{
	Data: "Data", RCDATA: "RCDATA", RAWTEXT: "RAWTEXT", ScriptData: "ScriptData",
	Plaintext: "Plaintext", CDATASection: "CDATASection",
	TagOpen: "TagOpen", EndTagOpen: "EndTagOpen", TagName: "TagName",
	RCDATALessThanSign: "RCDATALessThanSign", RCDATAEndTagOpen: "RCDATAEndTagOpen", RCDATAEndTagName: "RCDATAEndTagName",
	RAWTEXTLessThanSign: "RAWTEXTLessThanSign", RAWTEXTEndTagOpen: "RAWTEXTEndTagOpen", RAWTEXTEndTagName: "RAWTEXTEndTagName",
	ScriptDataLessThanSign: "ScriptDataLessThanSign", ScriptDataEndTagOpen: "ScriptDataEndTagOpen", ScriptDataEndTagName: "ScriptDataEndTagName",
	ScriptDataEscapeStart: "ScriptDataEscapeStart", ScriptDataEscapeStartDash: "ScriptDataEscapeStartDash",
	ScriptDataEscaped: "ScriptDataEscaped", ScriptDataEscapedDash: "ScriptDataEscapedDash", ScriptDataEscapedDashDash: "ScriptDataEscapedDashDash",
	ScriptDataEscapedLessThanSign: "ScriptDataEscapedLessThanSign", ScriptDataEscapedEndTagOpen: "ScriptDataEscapedEndTagOpen", ScriptDataEscapedEndTagName: "ScriptDataEscapedEndTagName",
	ScriptDataDoubleEscapeStart: "ScriptDataDoubleEscapeStart", ScriptDataDoubleEscaped: "ScriptDataDoubleEscaped",
	ScriptDataDoubleEscapedDash: "ScriptDataDoubleEscapedDash", ScriptDataDoubleEscapedDashDash: "ScriptDataDoubleEscapedDashDash",
	ScriptDataDoubleEscapedLessThanSign: "ScriptDataDoubleEscapedLessThanSign", ScriptDataDoubleEscapeEnd: "ScriptDataDoubleEscapeEnd",
	BeforeAttributeName: "BeforeAttributeName", AttributeName: "AttributeName", AfterAttributeName: "AfterAttributeName",
	BeforeAttributeValue: "BeforeAttributeValue", AttributeValueDoubleQuoted: "AttributeValueDoubleQuoted",
	AttributeValueSingleQuoted: "AttributeValueSingleQuoted", AttributeValueUnquoted: "AttributeValueUnquoted",
	AfterAttributeValueQuoted: "AfterAttributeValueQuoted", SelfClosingStartTag: "SelfClosingStartTag",
	MarkupDeclarationOpen: "MarkupDeclarationOpen", BogusComment: "BogusComment",
	CommentStart: "CommentStart", CommentStartDash: "CommentStartDash", Comment: "Comment",
	CommentLessThanSign: "CommentLessThanSign", CommentLessThanSignBang: "CommentLessThanSignBang",
	CommentLessThanSignBangDash: "CommentLessThanSignBangDash", CommentLessThanSignBangDashDash: "CommentLessThanSignBangDashDash",
	CommentEndDash: "CommentEndDash", CommentEnd: "CommentEnd", CommentEndBang: "CommentEndBang",
	Doctype: "Doctype", BeforeDoctypeName: "BeforeDoctypeName", DoctypeName: "DoctypeName",
	AfterDoctypeName: "AfterDoctypeName", AfterDoctypePublicKeyword: "AfterDoctypePublicKeyword",
	BeforeDoctypePublicIdentifier: "BeforeDoctypePublicIdentifier", DoctypePublicIdentifierDoubleQuoted: "DoctypePublicIdentifierDoubleQuoted",
	DoctypePublicIdentifierSingleQuoted: "DoctypePublicIdentifierSingleQuoted", AfterDoctypePublicIdentifier: "AfterDoctypePublicIdentifier",
	BetweenDoctypePublicAndSystemIdentifiers: "BetweenDoctypePublicAndSystemIdentifiers", AfterDoctypeSystemKeyword: "AfterDoctypeSystemKeyword",
	BeforeDoctypeSystemIdentifier: "BeforeDoctypeSystemIdentifier", DoctypeSystemIdentifierDoubleQuoted: "DoctypeSystemIdentifierDoubleQuoted",
	DoctypeSystemIdentifierSingleQuoted: "DoctypeSystemIdentifierSingleQuoted", AfterDoctypeSystemIdentifier: "AfterDoctypeSystemIdentifier",
	BogusDoctype: "BogusDoctype", CDATASectionBracket: "CDATASectionBracket", CDATASectionEnd: "CDATASectionEnd",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "Unknown"
}

// StateForElement classifies an element name into the content-model
// state a parser would switch the tokenizer to after seeing its start
// tag (title/textarea -> RCDATA, style/xmp/iframe/noembed/noframes/noscript
// -> RAWTEXT, script -> ScriptData, plaintext -> Plaintext, anything else
// -> Data). The core state machine never does this switch itself — per
// spec.md §1 Non-goals, reacting to parser feedback is out of scope —
// this is a convenience for an embedding caller that tokenizes a
// document region by region and needs to pick the next region's
// initial state the way a tree builder would. It uses
// golang.org/x/net/html/atom's interned lookup table rather than a
// hand-rolled string switch, the same technique x/net/html's own
// tokenizer uses for this exact classification.
func StateForElement(name string) State {
	switch atom.Lookup([]byte(name)) {
	case atom.Title, atom.Textarea:
		return RCDATA
	case atom.Style, atom.Xmp, atom.Iframe, atom.Noembed, atom.Noframes, atom.Noscript:
		return RAWTEXT
	case atom.Script:
		return ScriptData
	case atom.Plaintext:
		return Plaintext
	default:
		return Data
	}
}
