package html5tok_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aldermoss/html5tok"
	"github.com/aldermoss/html5tok/token"
)

func TestNewRejectsInvalidState(t *testing.T) {
	_, err := html5tok.New(html5tok.WithInitialState(html5tok.InitialState(99)))
	require.Error(t, err)
}

func TestRunStringSimpleTag(t *testing.T) {
	tok, err := html5tok.New()
	require.NoError(t, err)

	result := tok.RunString("<a href='x'>hi</a>")
	require.Empty(t, result.Errors)
	require.Len(t, result.Tokens, 3)

	require.Equal(t, token.StartTag, result.Tokens[0].Type)
	require.Equal(t, "a", result.Tokens[0].Name)
	v, ok := result.Tokens[0].Attrs.Get("href")
	require.True(t, ok)
	require.Equal(t, "x", v)

	require.Equal(t, token.Character, result.Tokens[1].Type)
	require.Equal(t, "hi", result.Tokens[1].Data)

	require.Equal(t, token.EndTag, result.Tokens[2].Type)
	require.Equal(t, "a", result.Tokens[2].Name)
}

func TestWithInitialStateRawText(t *testing.T) {
	tok, err := html5tok.New(
		html5tok.WithInitialState(html5tok.RawText),
		html5tok.WithLastStartTag("style"),
	)
	require.NoError(t, err)

	result := tok.RunString("body { color: red; }</style>")
	require.Empty(t, result.Errors)
	require.Len(t, result.Tokens, 2)
	require.Equal(t, token.Character, result.Tokens[0].Type)
	require.Equal(t, "body { color: red; }", result.Tokens[0].Data)
	require.Equal(t, token.EndTag, result.Tokens[1].Type)
	require.Equal(t, "style", result.Tokens[1].Name)
}

func TestWithLastStartTagMismatchStaysCharacterData(t *testing.T) {
	tok, err := html5tok.New(
		html5tok.WithInitialState(html5tok.RawText),
		html5tok.WithLastStartTag("textarea"),
	)
	require.NoError(t, err)

	result := tok.RunString("</style>")
	require.Len(t, result.Tokens, 1)
	require.Equal(t, token.Character, result.Tokens[0].Type)
	require.Equal(t, "</style>", result.Tokens[0].Data)
}

func TestFromUTF8ToUTF8RoundTrip(t *testing.T) {
	s := "héllo \U0001F600"
	units := html5tok.FromUTF8(s)
	require.Equal(t, s, html5tok.ToUTF8(units))
}

func TestRunAcceptsRawUnits(t *testing.T) {
	tok, err := html5tok.New()
	require.NoError(t, err)

	result := tok.Run(html5tok.FromUTF8("<p>"))
	require.Empty(t, result.Errors)
	require.Len(t, result.Tokens, 1)
	require.Equal(t, token.StartTag, result.Tokens[0].Type)
	require.Equal(t, "p", result.Tokens[0].Name)
}
