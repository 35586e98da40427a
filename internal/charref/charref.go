// Package charref implements the character-reference sub-state-machine
// (C3): it is invoked whenever the tokenizer consumes '&', and returns
// the literal or resolved code point sequence to splice into the
// calling context (a character run or an attribute value), plus any
// parse errors.
package charref

import (
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/aldermoss/html5tok/internal/entity"
	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/internal/preprocess"
)

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexVal(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	default:
		return r - 'A' + 10
	}
}

// Resolve is called with the preprocessor positioned immediately after
// a consumed '&'. inAttribute selects the ambiguous-ampersand rule
// (spec.md §4.3 step 2) that only applies inside attribute values.
// It returns the code point sequence the caller should splice in.
func Resolve(pp *preprocess.Preprocessor, sink *errs.Sink, inAttribute bool) string {
	nxt, ok := pp.Peek()
	if !ok {
		return "&"
	}

	if isASCIIAlnum(nxt) {
		return resolveNamed(pp, sink, inAttribute)
	}
	if nxt == '#' {
		return resolveNumeric(pp, sink)
	}
	return "&"
}

func resolveNamed(pp *preprocess.Preprocessor, sink *errs.Sink, inAttribute bool) string {
	window := entity.MaxNameLen()
	var b strings.Builder
	for k := 0; k < window; k++ {
		r, ok := pp.PeekAt(k)
		if !ok {
			break
		}
		b.WriteRune(r)
	}
	lookahead := b.String()

	nameLen, rep, hadSemicolon, found := entity.LongestMatch(lookahead)
	if !found {
		return "&"
	}

	if !hadSemicolon && inAttribute {
		if after, ok := pp.PeekAt(nameLen); ok && (after == '=' || isASCIIAlnum(after)) {
			matched := lookahead[:nameLen]
			for k := 0; k < nameLen; k++ {
				pp.Consume()
			}
			return "&" + matched
		}
	}

	for k := 0; k < nameLen; k++ {
		pp.Consume()
	}
	if !hadSemicolon {
		pos := pp.Position()
		sink.Append(errs.MissingSemicolonAfterCharacterReference, pos.Line, pos.Column)
	}
	return string(rep.CodePoints)
}

func resolveNumeric(pp *preprocess.Preprocessor, sink *errs.Sink) string {
	pp.Consume() // '#'
	hex := false
	consumedXPrefix := ""
	if r, ok := pp.Peek(); ok && (r == 'x' || r == 'X') {
		hex = true
		consumedXPrefix = string(r)
		pp.Consume()
	}

	var digits strings.Builder
	for {
		r, ok := pp.Peek()
		if !ok {
			break
		}
		if hex && isASCIIHexDigit(r) {
			digits.WriteRune(r)
			pp.Consume()
			continue
		}
		if !hex && isASCIIDigit(r) {
			digits.WriteRune(r)
			pp.Consume()
			continue
		}
		break
	}

	if digits.Len() == 0 {
		pos := pp.Position()
		sink.Append(errs.AbsenceOfDigitsInNumericCharacterReference, pos.Line, pos.Column)
		return "&#" + consumedXPrefix
	}

	if r, ok := pp.Peek(); ok && r == ';' {
		pp.Consume()
	} else {
		pos := pp.Position()
		sink.Append(errs.MissingSemicolonAfterCharacterReference, pos.Line, pos.Column)
	}

	value := decodeDigits(digits.String(), hex)
	return string(validate(value, pp, sink))
}

func decodeDigits(s string, hex bool) int64 {
	var v int64
	const cap64 = 0x20000000 // comfortably above 0x10FFFF; stops overflow on pathological input
	for _, r := range s {
		if v > cap64 {
			continue
		}
		if hex {
			v = v*16 + int64(hexVal(r))
		} else {
			v = v*10 + int64(r-'0')
		}
	}
	return v
}

func validate(value int64, pp *preprocess.Preprocessor, sink *errs.Sink) []rune {
	pos := pp.Position()
	switch {
	case value == 0:
		sink.Append(errs.UnexpectedNullCharacterRef, pos.Line, pos.Column)
		return []rune{0xFFFD}
	case value > 0x10FFFF:
		sink.Append(errs.CharacterReferenceOutsideUnicodeRange, pos.Line, pos.Column)
		return []rune{0xFFFD}
	case value >= 0xD800 && value <= 0xDFFF:
		sink.Append(errs.SurrogateCharacterReference, pos.Line, pos.Column)
		return []rune{0xFFFD}
	case value >= 0x80 && value <= 0x9F:
		sink.Append(errs.ControlCharacterReference, pos.Line, pos.Column)
		return []rune{windows1252(rune(value))}
	case isControlCodePoint(rune(value)):
		sink.Append(errs.ControlCharacterReference, pos.Line, pos.Column)
		return []rune{rune(value)}
	case isNoncharacterCodePoint(rune(value)):
		sink.Append(errs.NoncharacterCharacterReference, pos.Line, pos.Column)
		return []rune{rune(value)}
	default:
		return []rune{rune(value)}
	}
}

// windows1252 maps a C1 control byte (0x80-0x9F) to its Windows-1252
// equivalent code point, per spec.md §4.3 step 3. golang.org/x/text
// ships the Windows-1252 table pre-built; we round-trip through it
// rather than hand-maintaining the 32-entry remap ourselves.
func windows1252(c1 rune) rune {
	return charmap.Windows1252.DecodeByte(byte(c1))
}

func isControlCodePoint(r rune) bool {
	switch {
	case r >= 0x0001 && r <= 0x001F:
		return r != 0x09 && r != 0x0A && r != 0x0C
	case r == 0x7F:
		return true
	default:
		return false
	}
}

func isNoncharacterCodePoint(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	low := r & 0xFFFF
	return low == 0xFFFE || low == 0xFFFF
}
