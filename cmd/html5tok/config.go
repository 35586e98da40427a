package main

import "github.com/spf13/viper"

// displayConfig holds the presentation flags every subcommand that
// prints tokens shares: whether to pretty-print and whether to
// colorize. Both can be set by flag or by environment variable
// (HTML5TOK_PRETTY, HTML5TOK_COLOR), following the viper
// AutomaticEnv + SetDefault idiom
// (_examples/dphaener-conduit/internal/cli/config/config.go).
type displayConfig struct {
	Pretty bool
	Color  bool
}

func loadDisplayConfig(prettyFlag, colorFlag bool, prettySet, colorSet bool) displayConfig {
	v := viper.New()
	v.SetEnvPrefix("HTML5TOK")
	v.AutomaticEnv()
	v.SetDefault("pretty", false)
	v.SetDefault("color", true)

	cfg := displayConfig{
		Pretty: v.GetBool("pretty"),
		Color:  v.GetBool("color"),
	}
	if prettySet {
		cfg.Pretty = prettyFlag
	}
	if colorSet {
		cfg.Color = colorFlag
	}
	return cfg
}
