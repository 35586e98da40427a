// Package errs implements the tokenizer's parse-error taxonomy (C6):
// an ordered, append-only sink of positioned diagnostics. Parse errors
// are data, never Go errors — the state machine never aborts because
// of one.
package errs

import "fmt"

// Code identifies one WHATWG parse-error kind. The string values match
// the identifiers the standard (and the html5lib-tests corpus) use
// verbatim, so a Code can be compared directly against a JSON fixture's
// "code" field.
type Code string

const (
	SurrogateInInputStream                            Code = "surrogate-in-input-stream"
	ControlCharacterInInputStream                     Code = "control-character-in-input-stream"
	UnexpectedNullCharacter                           Code = "unexpected-null-character"
	EOFBeforeTagName                                  Code = "eof-before-tag-name"
	EOFInTag                                          Code = "eof-in-tag"
	EOFInComment                                      Code = "eof-in-comment"
	EOFInDoctype                                      Code = "eof-in-doctype"
	EOFInCdata                                        Code = "eof-in-cdata"
	EOFInScriptHTMLCommentLikeText                    Code = "eof-in-script-html-comment-like-text"
	MissingEndTagName                                 Code = "missing-end-tag-name"
	MissingAttributeValue                             Code = "missing-attribute-value"
	MissingWhitespaceAfterDoctypePublicKeyword        Code = "missing-whitespace-after-doctype-public-keyword"
	MissingWhitespaceAfterDoctypeSystemKeyword        Code = "missing-whitespace-after-doctype-system-keyword"
	MissingWhitespaceBeforeDoctypeName                Code = "missing-whitespace-before-doctype-name"
	MissingWhitespaceBetweenAttributes                Code = "missing-whitespace-between-attributes"
	MissingWhitespaceBetweenDoctypePublicAndSystemIDs Code = "missing-whitespace-between-doctype-public-and-system-identifiers"
	MissingDoctypeName                                Code = "missing-doctype-name"
	MissingDoctypePublicIdentifier                    Code = "missing-doctype-public-identifier"
	MissingDoctypeSystemIdentifier                    Code = "missing-doctype-system-identifier"
	MissingQuoteBeforeDoctypePublicIdentifier         Code = "missing-quote-before-doctype-public-identifier"
	MissingQuoteBeforeDoctypeSystemIdentifier         Code = "missing-quote-before-doctype-system-identifier"
	AbruptDoctypePublicIdentifier                     Code = "abrupt-doctype-public-identifier"
	AbruptDoctypeSystemIdentifier                     Code = "abrupt-doctype-system-identifier"
	AbruptClosingOfEmptyComment                       Code = "abrupt-closing-of-empty-comment"
	InvalidCharacterSequenceAfterDoctypeName          Code = "invalid-character-sequence-after-doctype-name"
	InvalidFirstCharacterOfTagName                    Code = "invalid-first-character-of-tag-name"
	IncorrectlyOpenedComment                          Code = "incorrectly-opened-comment"
	IncorrectlyClosedComment                          Code = "incorrectly-closed-comment"
	NestedComment                                     Code = "nested-comment"
	UnexpectedCharacterInAttributeName                Code = "unexpected-character-in-attribute-name"
	UnexpectedCharacterInUnquotedAttributeValue       Code = "unexpected-character-in-unquoted-attribute-value"
	UnexpectedEqualsSignBeforeAttributeName           Code = "unexpected-equals-sign-before-attribute-name"
	UnexpectedQuestionMarkInsteadOfTagName            Code = "unexpected-question-mark-instead-of-tag-name"
	UnexpectedSolidusInTag                            Code = "unexpected-solidus-in-tag"
	UnexpectedNullCharacterRef                        Code = "null-character-reference"
	CharacterReferenceOutsideUnicodeRange             Code = "character-reference-outside-unicode-range"
	SurrogateCharacterReference                       Code = "surrogate-character-reference"
	NoncharacterCharacterReference                    Code = "noncharacter-character-reference"
	ControlCharacterReference                         Code = "control-character-reference"
	AbsenceOfDigitsInNumericCharacterReference        Code = "absence-of-digits-in-numeric-character-reference"
	MissingSemicolonAfterCharacterReference           Code = "missing-semicolon-after-character-reference"
	DuplicateAttribute                                Code = "duplicate-attribute"
	CdataInHTMLContent                                Code = "cdata-in-html-content"
	UnexpectedCharacterAfterDoctypeSystemIdentifier   Code = "unexpected-character-after-doctype-system-identifier"
)

// Location is a 1-based (line, column) source position.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one positioned parse-error record.
type Error struct {
	Code     Code     `json:"code"`
	Location Location `json:"location"`
}

func (e Error) String() string {
	return fmt.Sprintf("%s@%d:%d", e.Code, e.Location.Line, e.Location.Column)
}

// Sink is an ordered, append-only list of parse errors. Two records at
// the same location are both kept — the sink never sorts or dedupes,
// since fixtures assert on insertion order (spec.md §4.6, §9).
type Sink struct {
	errors []Error
}

// Append records one error at the given position.
func (s *Sink) Append(code Code, line, column int) {
	s.errors = append(s.errors, Error{Code: code, Location: Location{Line: line, Column: column}})
}

// Errors returns the accumulated errors in detection order.
func (s *Sink) Errors() []Error {
	return s.errors
}
