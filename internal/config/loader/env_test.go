package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader()
	l.lookup = envFrom(map[string]string{
		"EVIL_ENABLE":       "off",
		"EVIL_INITIAL_MODE": "insert",
		"UNRELATED":         "x",
	})

	config, err := l.Load()
	require.NoError(t, err)

	editor, ok := config["editor"].(map[string]any)
	require.True(t, ok, "editor section missing: %v", config)
	assert.Equal(t, false, editor["evil"])
	evil, ok := config["evil"].(map[string]any)
	require.True(t, ok, "evil section missing: %v", config)
	assert.Equal(t, "insert", evil["initial-mode"])
	assert.NotContains(t, config, "modeline", "unset variable produced a value")
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoaderWithMapping(nil)
	l.AddMapping("EVIL_TAB_WIDTH", "indent.tab-width")
	l.lookup = envFrom(map[string]string{"EVIL_TAB_WIDTH": "4"})

	config, err := l.Load()
	require.NoError(t, err)
	indent := config["indent"].(map[string]any)
	assert.Equal(t, int64(4), indent["tab-width"])
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Yes", true},
		{"1", int64(1)},
		{"off", false},
		{"0", int64(0)},
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"normal", "normal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.in), "parseValue(%q)", tt.in)
	}
}
