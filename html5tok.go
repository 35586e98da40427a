// Package html5tok is the public driver (C7): it wires the input
// preprocessor, the state machine, and the error sink together and
// hands back a tokenized Result. Everything else in this module is
// implementation detail reachable through this entry point or, for
// embedders that need the lower-level pieces directly, through the
// public token and tokenizer packages.
package html5tok

import (
	"unicode/utf16"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/aldermoss/html5tok/internal/errs"
	"github.com/aldermoss/html5tok/internal/preprocess"
	"github.com/aldermoss/html5tok/token"
	"github.com/aldermoss/html5tok/tokenizer"
)

// InitialState selects which of the six content states (spec.md §6)
// a Tokenizer starts in. The zero value is Data.
type InitialState int

const (
	Data InitialState = iota
	RCData
	RawText
	ScriptDataState
	PlainText
	CdataSection
)

func (s InitialState) toTokenizerState() (tokenizer.State, error) {
	switch s {
	case Data:
		return tokenizer.Data, nil
	case RCData:
		return tokenizer.RCDATA, nil
	case RawText:
		return tokenizer.RAWTEXT, nil
	case ScriptDataState:
		return tokenizer.ScriptData, nil
	case PlainText:
		return tokenizer.Plaintext, nil
	case CdataSection:
		return tokenizer.CDATASection, nil
	default:
		return 0, errors.Errorf("html5tok: invalid initial state %d", int(s))
	}
}

// Option configures a Tokenizer constructed by New, following the
// functional-options shape the teacher's own root package (and
// flosch-pongo2's pongo2_options.go) configures their entry points
// with.
type Option func(*config)

type config struct {
	initial          InitialState
	lastStartTagName string
	inForeignContent bool
	logger           *zap.Logger
}

// WithInitialState overrides the default Data initial state.
func WithInitialState(s InitialState) Option {
	return func(c *config) { c.initial = s }
}

// WithLastStartTag seeds end-tag-appropriateness checks in RCDATA,
// RAWTEXT, and ScriptData (spec.md §6), for a caller resuming
// tokenization of content whose opening tag was tokenized earlier.
func WithLastStartTag(name string) Option {
	return func(c *config) { c.lastStartTagName = name }
}

// WithForeignContent controls whether "<![CDATA[" opens a CDATA
// section (true) or becomes a bogus comment (false, the default).
func WithForeignContent(v bool) Option {
	return func(c *config) { c.inForeignContent = v }
}

// WithLogger attaches a zap logger that receives a Debug-level trace
// line per state transition. Default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Result is the driver's output: the token stream and the parallel
// parse-error stream, both in detection order (spec.md §6).
type Result struct {
	Tokens []token.Token
	Errors []errs.Error
}

// Tokenizer holds the configuration needed to tokenize one input; it
// has no mutable state of its own; build one with New and call Run as
// many times as needed.
type Tokenizer struct {
	cfg config
}

// New constructs a Tokenizer. An out-of-range InitialState is the only
// construction-time failure mode (spec.md §3 draws a hard line between
// this kind of caller-error and the parse errors tokenization itself
// produces as data); it is reported as a wrapped error, in the style
// flosch-pongo2's tag/context constructors use github.com/juju/errors
// for their own construction failures.
func New(opts ...Option) (*Tokenizer, error) {
	c := config{initial: Data, logger: zap.NewNop()}
	for _, o := range opts {
		o(&c)
	}
	if _, err := c.initial.toTokenizerState(); err != nil {
		return nil, errors.Annotate(err, "html5tok.New")
	}
	return &Tokenizer{cfg: c}, nil
}

// Run tokenizes units (a UTF-16 code unit buffer, spec.md §6) and
// returns the resulting tokens and parse errors.
func (t *Tokenizer) Run(units []uint16) Result {
	state, _ := t.cfg.initial.toTokenizerState() // validated in New
	sink := &errs.Sink{}
	pp := preprocess.New(units, sink)

	var tokOpts []tokenizer.Option
	if t.cfg.lastStartTagName != "" {
		tokOpts = append(tokOpts, tokenizer.WithLastStartTagName(t.cfg.lastStartTagName))
	}
	if t.cfg.inForeignContent {
		tokOpts = append(tokOpts, tokenizer.WithForeignContent(true))
	}
	tokOpts = append(tokOpts, tokenizer.WithLogger(t.cfg.logger))

	m := tokenizer.New(pp, sink, state, tokOpts...)
	toks := m.Run()
	return Result{Tokens: toks, Errors: sink.Errors()}
}

// RunString is Run for a caller holding a UTF-8 Go string, via
// FromUTF8 (spec.md §6: "the tokenizer's authoritative source is the
// UTF-16 array", but every fixture and most Go callers hand over
// UTF-8 text).
func (t *Tokenizer) RunString(s string) Result {
	return t.Run(FromUTF8(s))
}

// FromUTF8 encodes a Go string as the UTF-16 code unit buffer the
// driver's authoritative input format requires (spec.md §6.1).
func FromUTF8(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// ToUTF8 decodes a UTF-16 code unit buffer back into a Go string, the
// inverse of FromUTF8.
func ToUTF8(units []uint16) string {
	return string(utf16.Decode(units))
}
