package tokenizer

import (
	"github.com/aldermoss/html5tok/internal/builder"
	"github.com/aldermoss/html5tok/internal/errs"
)

func (m *Machine) stepBeforeAttributeName() {
	r, _ := m.pp.Peek()
	switch {
	case builder.IsASCIIWhitespace(r):
		m.consumeTagRune()
	case r == '/' || r == '>':
		m.state = AfterAttributeName
	case r == '=':
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedEqualsSignBeforeAttributeName, pos.Line, pos.Column)
		m.tag.BeginAttr()
		m.consumeTagRune()
		m.tag.AppendAttrName('=')
		m.state = AttributeName
	default:
		m.tag.BeginAttr()
		m.state = AttributeName
	}
}

func (m *Machine) stepAttributeName() {
	r, _ := m.pp.Peek()
	switch {
	case builder.IsASCIIWhitespace(r) || r == '/' || r == '>':
		pos := m.pp.Position()
		m.tag.CheckDuplicate(m.sink, pos)
		m.state = AfterAttributeName
	case r == '=':
		pos := m.pp.Position()
		m.tag.CheckDuplicate(m.sink, pos)
		m.consumeTagRune()
		m.state = BeforeAttributeValue
	case r == 0:
		pos := m.pp.Position()
		m.consumeTagRune()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.tag.AppendAttrName(0xFFFD)
	case r == '"' || r == '\'' || r == '<':
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedCharacterInAttributeName, pos.Line, pos.Column)
		m.consumeTagRune()
		m.tag.AppendAttrName(r)
	default:
		m.consumeTagRune()
		m.tag.AppendAttrName(r)
	}
}

func (m *Machine) stepAfterAttributeName() {
	r, _ := m.pp.Peek()
	switch {
	case builder.IsASCIIWhitespace(r):
		m.consumeTagRune()
	case r == '/':
		m.consumeTagRune()
		m.state = SelfClosingStartTag
	case r == '=':
		m.consumeTagRune()
		m.state = BeforeAttributeValue
	case r == '>':
		pos := m.pp.Position()
		m.consumeTagRune()
		m.emitTag(pos)
	default:
		m.tag.BeginAttr()
		m.state = AttributeName
	}
}

func (m *Machine) stepBeforeAttributeValue() {
	r, _ := m.pp.Peek()
	switch {
	case builder.IsASCIIWhitespace(r):
		m.consumeTagRune()
	case r == '"':
		m.consumeTagRune()
		m.state = AttributeValueDoubleQuoted
	case r == '\'':
		m.consumeTagRune()
		m.state = AttributeValueSingleQuoted
	case r == '>':
		pos := m.pp.Position()
		m.sink.Append(errs.MissingAttributeValue, pos.Line, pos.Column)
		m.consumeTagRune()
		m.emitTag(pos)
	default:
		m.state = AttributeValueUnquoted
	}
}

func (m *Machine) stepAttributeValueQuoted(quote rune) {
	r, _ := m.pp.Peek()
	switch r {
	case quote:
		m.consumeTagRune()
		m.state = AfterAttributeValueQuoted
	case '&':
		m.consumeTagRune()
		m.tag.AppendAttrValueString(m.resolveCharRef(true))
	case 0:
		pos := m.pp.Position()
		m.consumeTagRune()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.tag.AppendAttrValue(0xFFFD)
	default:
		m.consumeTagRune()
		m.tag.AppendAttrValue(r)
	}
}

func (m *Machine) stepAttributeValueUnquoted() {
	r, _ := m.pp.Peek()
	switch {
	case builder.IsASCIIWhitespace(r):
		m.consumeTagRune()
		m.state = BeforeAttributeName
	case r == '&':
		m.consumeTagRune()
		m.tag.AppendAttrValueString(m.resolveCharRef(true))
	case r == '>':
		pos := m.pp.Position()
		m.consumeTagRune()
		m.emitTag(pos)
	case r == 0:
		pos := m.pp.Position()
		m.consumeTagRune()
		m.sink.Append(errs.UnexpectedNullCharacter, pos.Line, pos.Column)
		m.tag.AppendAttrValue(0xFFFD)
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedCharacterInUnquotedAttributeValue, pos.Line, pos.Column)
		m.consumeTagRune()
		m.tag.AppendAttrValue(r)
	default:
		m.consumeTagRune()
		m.tag.AppendAttrValue(r)
	}
}

func (m *Machine) stepAfterAttributeValueQuoted() {
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
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.MissingWhitespaceBetweenAttributes, pos.Line, pos.Column)
		m.state = BeforeAttributeName
	}
}

func (m *Machine) stepSelfClosingStartTag() {
	r, _ := m.pp.Peek()
	switch r {
	case '>':
		pos := m.pp.Position()
		m.consumeTagRune()
		m.tag.SetSelfClosing()
		m.emitTag(pos)
	default:
		pos := m.pp.Position()
		m.sink.Append(errs.UnexpectedSolidusInTag, pos.Line, pos.Column)
		m.state = BeforeAttributeName
	}
}
