package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/aldermoss/html5tok"
	"github.com/aldermoss/html5tok/token"
)

var stateNames = map[string]html5tok.InitialState{
	"data":       html5tok.Data,
	"rcdata":     html5tok.RCData,
	"rawtext":    html5tok.RawText,
	"scriptdata": html5tok.ScriptDataState,
	"plaintext":  html5tok.PlainText,
	"cdata":      html5tok.CdataSection,
}

var (
	tokenizeState        string
	tokenizeLastStartTag string
	tokenizePretty       bool
	tokenizeColor        bool
)

func init() {
	tokenizeCmd.Flags().StringVar(&tokenizeState, "state", "data", "initial tokenizer state (data, rcdata, rawtext, scriptdata, plaintext, cdata)")
	tokenizeCmd.Flags().StringVar(&tokenizeLastStartTag, "last-start-tag", "", "last start tag name, for end-tag-appropriateness checks in rcdata/rawtext/scriptdata")
	tokenizeCmd.Flags().BoolVar(&tokenizePretty, "pretty", false, "pretty-print tokens with kr/pretty instead of one line each")
	tokenizeCmd.Flags().BoolVar(&tokenizeColor, "color", true, "colorize parse errors")
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [file]",
	Short: "Tokenize a file (or stdin) and print the resulting tokens and parse errors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cfg := loadDisplayConfig(tokenizePretty, tokenizeColor, flags.Changed("pretty"), flags.Changed("color"))

		initial, ok := stateNames[tokenizeState]
		if !ok {
			return fmt.Errorf("unknown --state %q", tokenizeState)
		}

		input, err := readInput(args)
		if err != nil {
			return err
		}

		opts := []html5tok.Option{html5tok.WithInitialState(initial)}
		if tokenizeLastStartTag != "" {
			opts = append(opts, html5tok.WithLastStartTag(tokenizeLastStartTag))
		}

		tok, err := html5tok.New(opts...)
		if err != nil {
			return err
		}
		result := tok.RunString(input)

		errColor := color.New(color.FgRed)
		if !cfg.Color {
			errColor.DisableColor()
		}

		for _, t := range result.Tokens {
			if cfg.Pretty {
				pretty.Println(t)
				continue
			}
			fmt.Println(describeToken(t))
		}
		for _, e := range result.Errors {
			errColor.Fprintf(os.Stderr, "parse error: %s\n", e)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d parse error(s)", len(result.Errors))
		}
		return nil
	},
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

// describeToken renders a Token as one line, enough for a human to
// visually diff against the input without a --pretty kr/pretty dump.
func describeToken(t token.Token) string {
	switch t.Type {
	case token.Character:
		return fmt.Sprintf("Character %q", t.Data)
	case token.StartTag:
		return fmt.Sprintf("StartTag <%s> attrs=%v self-closing=%v", t.Name, attrMap(t.Attrs), t.SelfClosing)
	case token.EndTag:
		return fmt.Sprintf("EndTag </%s>", t.Name)
	case token.Comment:
		return fmt.Sprintf("Comment %q", t.CommentData)
	case token.Doctype:
		return fmt.Sprintf("Doctype name=%s public=%s system=%s force-quirks=%v",
			derefStr(t.DoctypeName), derefStr(t.PublicID), derefStr(t.SystemID), t.ForceQuirks)
	default:
		return t.Type.String()
	}
}

func attrMap(a *token.AttributeList) map[string]string {
	if a == nil {
		return nil
	}
	return a.Map()
}

func derefStr(s *string) string {
	if s == nil {
		return "<absent>"
	}
	return *s
}
