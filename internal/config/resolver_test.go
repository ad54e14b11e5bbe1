package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_FlagPrecedence(t *testing.T) {
	t.Setenv("COMPOSE_TEST_VALUE", "env-value")

	result, err := Resolve("template",
		Value(SourceFlag, "flag-value"),
		Value(SourceArg, "arg-value"),
		Env("COMPOSE_TEST_VALUE"),
		Value(SourceConfig, "config-value"),
	)
	require.NoError(t, err)

	assert.Equal(t, "flag-value", result.Value)
	assert.Equal(t, SourceFlag, result.Source)
	assert.Equal(t, "arg-value", result.Shadowed[SourceArg])
	assert.Equal(t, "env-value", result.Shadowed[SourceEnv])
	assert.Equal(t, "config-value", result.Shadowed[SourceConfig])
}

func TestResolve_BlankValuesAreSkipped(t *testing.T) {
	result, err := Resolve("name",
		Value(SourceFlag, ""),
		Value(SourceArg, "   "),
		Value(SourceConfig, " MyApp "),
	)
	require.NoError(t, err)

	assert.Equal(t, "MyApp", result.Value)
	assert.Equal(t, SourceConfig, result.Source)
	assert.Empty(t, result.Shadowed)
	assert.True(t, result.IsSet())
}

func TestResolve_LazyOnlyWhenNeeded(t *testing.T) {
	calls := 0
	prompt := Lazy(SourcePrompt, func() (string, error) {
		calls++
		return "prompted", nil
	})

	result, err := Resolve("name", Value(SourceFlag, "flag"), prompt)
	require.NoError(t, err)
	assert.Equal(t, "flag", result.Value)
	assert.Equal(t, 0, calls, "prompt must not run when an earlier source wins")
	assert.NotContains(t, result.Shadowed, SourcePrompt)

	result, err = Resolve("name", Value(SourceFlag, ""), prompt)
	require.NoError(t, err)
	assert.Equal(t, "prompted", result.Value)
	assert.Equal(t, SourcePrompt, result.Source)
	assert.Equal(t, 1, calls)
}

func TestResolve_LookupError(t *testing.T) {
	boom := errors.New("prompt aborted")

	_, err := Resolve("name", Lazy(SourcePrompt, func() (string, error) { return "", boom }))
	assert.ErrorIs(t, err, boom)
}

func TestResolve_Nothing(t *testing.T) {
	result, err := Resolve("location", Value(SourceFlag, ""), Value(SourceArg, ""))
	require.NoError(t, err)

	assert.False(t, result.IsSet())
	assert.Empty(t, result.Source)
	assert.Equal(t, "location", result.Key)
}

func TestResolve_FirstOfSameSourceWins(t *testing.T) {
	result, err := Resolve("templatesDir",
		Value(SourceFlag, "/flag"),
		Value(SourceDefault, "/exe/templates"),
		Value(SourceDefault, "/xdg/templates"),
	)
	require.NoError(t, err)
	assert.Equal(t, "/exe/templates", result.Shadowed[SourceDefault])
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "flag", string(SourceFlag))
	assert.Equal(t, "arg", string(SourceArg))
	assert.Equal(t, "env", string(SourceEnv))
	assert.Equal(t, "config", string(SourceConfig))
	assert.Equal(t, "prompt", string(SourcePrompt))
	assert.Equal(t, "default", string(SourceDefault))
}
