// Package conformance loads and runs html5lib-style JSON tokenizer
// fixtures (spec.md §6 wire format) against the tokenizer state machine
// (preprocess + tokenizer.Machine, built directly rather than through
// the root html5tok driver). It is shared by conformance_test.go and
// the cmd/html5tok fixtures subcommand, grounded in the teacher's own txtar-based
// tokenizer_test.go (_examples/hoplang-hop-go/tokenizer/tokenizer_test.go)
// but adapted to the JSON corpus format the wider html5lib-tests project
// uses, since that is the format the bulk conformance suite under
// testdata/html5lib ships in.
package conformance

import (
	"encoding/json"
	"os"
	"unicode/utf16"

	"github.com/juju/errors"

	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/internal/preprocess"
	"github.com/aldermoss/html5tok/token"
	"github.com/aldermoss/html5tok/tokenizer"
)

// File is the top-level shape of one testdata/html5lib/*.json fixture
// file: a named group of independent Cases.
type File struct {
	Tests []Case `json:"tests"`
}

// Case is one tokenizer fixture: an input, the initial state(s) to run
// it in, and the expected token and error streams.
type Case struct {
	Description   string            `json:"description"`
	Input         string            `json:"input"`
	InputUTF16    []uint16          `json:"inputUtf16,omitempty"`
	InitialStates []string          `json:"initialStates,omitempty"`
	LastStartTag  string            `json:"lastStartTag,omitempty"`
	Output        []json.RawMessage `json:"output"`
	Errors        []ErrorCase       `json:"errors,omitempty"`
}

// ErrorCase is one expected parse error, in the same (code, location)
// shape internal/errs.Error renders to JSON.
type ErrorCase struct {
	Code     errs.Code `json:"code"`
	Location struct {
		Line   int `json:"line"`
		Column int `json:"column"`
	} `json:"location"`
}

// stateKeywords maps the html5lib-style state names used in
// "initialStates" to this module's tokenizer.State. Absent or empty
// means Data, the Case default.
var stateKeywords = map[string]tokenizer.State{
	"Data state":           tokenizer.Data,
	"RCDATA state":         tokenizer.RCDATA,
	"RAWTEXT state":        tokenizer.RAWTEXT,
	"Script data state":    tokenizer.ScriptData,
	"PLAINTEXT state":      tokenizer.Plaintext,
	"CDATA section state":  tokenizer.CDATASection,
}

// LoadFile reads and parses one JSON fixture file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "conformance: reading %s", path)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Annotatef(err, "conformance: parsing %s", path)
	}
	return &f, nil
}

// initialState resolves the state a Case should run in; a Case with
// more than one entry in InitialStates is expanded by the caller into
// one run per state, so this only ever needs the single name given to
// it by RunAll.
func (c Case) initialState(name string) (tokenizer.State, error) {
	if name == "" {
		return tokenizer.Data, nil
	}
	st, ok := stateKeywords[name]
	if !ok {
		return 0, errors.Errorf("conformance: unknown initial state %q", name)
	}
	return st, nil
}

// checkEncoding verifies that Input and InputUTF16, when both present,
// decode to the same scalar value sequence (spec.md §6.1) — a fixture
// authoring error otherwise silent.
func (c Case) checkEncoding() error {
	if len(c.InputUTF16) == 0 {
		return nil
	}
	fromUTF16 := utf16.Decode(c.InputUTF16)
	fromString := []rune(c.Input)
	if len(fromUTF16) != len(fromString) {
		return errors.Errorf("conformance: input/inputUtf16 length mismatch (%d vs %d runes)", len(fromString), len(fromUTF16))
	}
	for i := range fromString {
		if fromString[i] != fromUTF16[i] {
			return errors.Errorf("conformance: input/inputUtf16 disagree at rune %d", i)
		}
	}
	return nil
}

// expectedTokens decodes Output's tagged-array entries into Tokens,
// positions zeroed since the wire format carries no source span.
func (c Case) expectedTokens() ([]token.Token, error) {
	tokens := make([]token.Token, 0, len(c.Output))
	for _, raw := range c.Output {
		var tagged []json.RawMessage
		if err := json.Unmarshal(raw, &tagged); err != nil {
			return nil, errors.Annotate(err, "conformance: decoding output entry")
		}
		if len(tagged) == 0 {
			return nil, errors.New("conformance: empty output entry")
		}
		var kind string
		if err := json.Unmarshal(tagged[0], &kind); err != nil {
			return nil, errors.Annotate(err, "conformance: decoding output entry tag")
		}
		tok, err := decodeToken(kind, tagged[1:])
		if err != nil {
			return nil, errors.Annotatef(err, "conformance: decoding %q entry", kind)
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func decodeToken(kind string, fields []json.RawMessage) (token.Token, error) {
	switch kind {
	case "Character":
		var data string
		if err := unmarshalField(fields, 0, &data); err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.Character, Data: data}, nil
	case "Comment":
		var data string
		if err := unmarshalField(fields, 0, &data); err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.Comment, CommentData: data}, nil
	case "EndTag":
		var name string
		if err := unmarshalField(fields, 0, &name); err != nil {
			return token.Token{}, err
		}
		return token.Token{Type: token.EndTag, Name: name}, nil
	case "StartTag":
		var name string
		if err := unmarshalField(fields, 0, &name); err != nil {
			return token.Token{}, err
		}
		attrMap := map[string]string{}
		if len(fields) > 1 {
			if err := unmarshalField(fields, 1, &attrMap); err != nil {
				return token.Token{}, err
			}
		}
		selfClosing := false
		if len(fields) > 2 {
			if err := unmarshalField(fields, 2, &selfClosing); err != nil {
				return token.Token{}, err
			}
		}
		attrs := token.NewAttributeList()
		for k, v := range attrMap {
			attrs.Set(k, v)
		}
		return token.Token{Type: token.StartTag, Name: name, Attrs: attrs, SelfClosing: selfClosing}, nil
	case "DOCTYPE":
		var name, public, system *string
		var forceQuirks bool
		if err := unmarshalField(fields, 0, &name); err != nil {
			return token.Token{}, err
		}
		if len(fields) > 1 {
			if err := unmarshalField(fields, 1, &public); err != nil {
				return token.Token{}, err
			}
		}
		if len(fields) > 2 {
			if err := unmarshalField(fields, 2, &system); err != nil {
				return token.Token{}, err
			}
		}
		if len(fields) > 3 {
			var correct bool
			if err := unmarshalField(fields, 3, &correct); err != nil {
				return token.Token{}, err
			}
			forceQuirks = !correct
		}
		return token.Token{Type: token.Doctype, DoctypeName: name, PublicID: public, SystemID: system, ForceQuirks: forceQuirks}, nil
	default:
		return token.Token{}, errors.Errorf("conformance: unknown token kind %q", kind)
	}
}

func unmarshalField(fields []json.RawMessage, i int, dst interface{}) error {
	if i >= len(fields) {
		return errors.Errorf("conformance: missing field %d", i)
	}
	return json.Unmarshal(fields[i], dst)
}

// Outcome is the observed result of running one Case in one initial
// state: what the driver actually produced, ready for the caller to
// diff against Case's expectations with go-cmp.
type Outcome struct {
	State  string
	Got    []token.Token
	Want   []token.Token
	Errors []errs.Error
}

// Run tokenizes Case's input in the named initial state and returns the
// actual and expected token streams for comparison. stateName is one
// entry from InitialStates, or "" to mean the single implicit Data run.
func Run(c Case, stateName string) (Outcome, error) {
	if err := c.checkEncoding(); err != nil {
		return Outcome{}, err
	}
	st, err := c.initialState(stateName)
	if err != nil {
		return Outcome{}, err
	}
	want, err := c.expectedTokens()
	if err != nil {
		return Outcome{}, err
	}

	sink := &errs.Sink{}
	pp := preprocessorFor(c, sink)
	opts := []tokenizer.Option{}
	if c.LastStartTag != "" {
		opts = append(opts, tokenizer.WithLastStartTagName(c.LastStartTag))
	}
	m := tokenizer.New(pp, sink, st, opts...)
	got := m.Run()

	return Outcome{
		State:  stateName,
		Got:    got,
		Want:   want,
		Errors: sink.Errors(),
	}, nil
}

// RunAll expands a Case across every entry in InitialStates (or the
// single implicit Data state if none are given) and runs each.
func RunAll(c Case) ([]Outcome, error) {
	states := c.InitialStates
	if len(states) == 0 {
		states = []string{""}
	}
	outcomes := make([]Outcome, 0, len(states))
	for _, s := range states {
		o, err := Run(c, s)
		if err != nil {
			return nil, errors.Annotatef(err, "case %q", c.Description)
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}

// preprocessorFor builds the Preprocessor from whichever of
// Input/InputUTF16 the fixture populated, preferring InputUTF16 since
// that is the driver's authoritative wire format (spec.md §6.1).
func preprocessorFor(c Case, sink *errs.Sink) *preprocess.Preprocessor {
	if len(c.InputUTF16) > 0 {
		return preprocess.New(c.InputUTF16, sink)
	}
	return preprocess.NewFromString(c.Input, sink)
}
