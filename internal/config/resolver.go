package config

import (
	"os"
	"strings"

	"github.com/notscripter/compose-cli/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from a command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceArg indicates value came from a positional argument.
	SourceArg ConfigSource = "arg"
	// SourceEnv indicates value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from the config file.
	SourceConfig ConfigSource = "config"
	// SourcePrompt indicates value was entered interactively.
	SourcePrompt ConfigSource = "prompt"
	// SourceDefault indicates value is a built-in default.
	SourceDefault ConfigSource = "default"
)

// Candidate is one entry of an ordered resolution list.
type Candidate struct {
	Source ConfigSource
	lookup func() (string, error)
	lazy   bool
}

// Value is a candidate with a known value.
func Value(source ConfigSource, v string) Candidate {
	return Candidate{Source: source, lookup: func() (string, error) { return v, nil }}
}

// Env is a candidate read from the named environment variable.
func Env(name string) Candidate {
	return Candidate{Source: SourceEnv, lookup: func() (string, error) { return os.Getenv(name), nil }}
}

// Lazy is a candidate whose lookup runs only when every earlier candidate is
// blank. Used for interactive prompts.
func Lazy(source ConfigSource, fn func() (string, error)) Candidate {
	return Candidate{Source: source, lookup: fn, lazy: true}
}

// ResolvedValue is the outcome of Resolve.
type ResolvedValue struct {
	// Key names the value, for logging.
	Key string
	// Value is the winning value, trimmed. Empty when nothing resolved.
	Value string
	// Source is where Value came from. Empty when nothing resolved.
	Source ConfigSource
	// Shadowed holds non-lazy values that lost to a higher precedence source.
	Shadowed map[ConfigSource]string
}

// IsSet reports whether a value was resolved.
func (r ResolvedValue) IsSet() bool {
	return r.Value != ""
}

// Resolve walks candidates in order; the first non-blank value wins. Lazy
// candidates after the winner are never evaluated.
func Resolve(key string, candidates ...Candidate) (ResolvedValue, error) {
	result := ResolvedValue{
		Key:      key,
		Shadowed: make(map[ConfigSource]string),
	}

	for _, c := range candidates {
		if result.Source != "" && c.lazy {
			continue
		}

		v, err := c.lookup()
		if err != nil {
			return result, err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		if result.Source == "" {
			result.Value = v
			result.Source = c.Source
			continue
		}
		if _, seen := result.Shadowed[c.Source]; !seen {
			result.Shadowed[c.Source] = v
		}
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values ...ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
