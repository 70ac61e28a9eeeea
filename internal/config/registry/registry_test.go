package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterDefaults(t *testing.T) {
	r := NewWithDefaults()

	for _, path := range []string{EditorEvil, EvilInitialMode, EvilDwStopsAtWordEnd, IndentUnit, IndentTabWidth, LineEnding, Language, ModelineEnable, ModelineLines, ModelineDisabledLangs} {
		assert.True(t, r.Has(path), "%s is not registered", path)
	}

	assert.Equal(t, true, r.Default(EditorEvil))
	assert.Equal(t, "auto", r.Default(LineEnding))
	assert.Nil(t, r.Default("nope"), "unknown settings have no default")

	all := r.All()
	paths := make([]string, len(all))
	for i, s := range all {
		paths[i] = s.Path
	}
	assert.IsIncreasing(t, paths, "All() is sorted by path")
	assert.Len(t, r.Defaults(), len(all))
}

func TestRegister(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(Setting{Path: "a", Type: TypeInt, Default: 1}))
	assert.ErrorIs(t, r.Register(Setting{Path: "a", Type: TypeInt, Default: 2}), ErrSettingAlreadyRegistered)
	assert.Error(t, r.Register(Setting{Path: "b", Type: TypeInt, Default: "x"}), "default of the wrong type")

	assert.Panics(t, func() {
		r.MustRegister(Setting{Path: "a", Type: TypeInt, Default: 1})
	})
}

func TestNormalize(t *testing.T) {
	r := NewWithDefaults()

	tests := []struct {
		path    string
		value   any
		want    any
		wantErr error
	}{
		{ModelineLines, int64(3), 3, nil},
		{ModelineLines, 3.0, 3, nil},
		{ModelineLines, int64(500), nil, nil},
		{ModelineLines, "3", nil, ErrTypeMismatch},
		{EditorEvil, "yes", nil, ErrTypeMismatch},
		{EditorEvil, false, false, nil},
		{LineEnding, "crlf", "crlf", nil},
		{LineEnding, "dos", nil, nil},
		{EvilInitialMode, "visual", nil, nil},
		{"unknown.key", 1, nil, ErrSettingNotFound},
	}

	for _, tt := range tests {
		got, err := r.Normalize(tt.path, tt.value)
		switch {
		case tt.wantErr != nil:
			assert.ErrorIs(t, err, tt.wantErr, "Normalize(%s, %v)", tt.path, tt.value)
		case tt.want == nil:
			assert.Error(t, err, "Normalize(%s, %v)", tt.path, tt.value)
		default:
			if assert.NoError(t, err, "Normalize(%s, %v)", tt.path, tt.value) {
				assert.Equal(t, tt.want, got, "Normalize(%s, %v)", tt.path, tt.value)
			}
		}
	}

	list, err := r.Normalize(ModelineDisabledLangs, []any{"go", "rust"})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, list)
	_, err = r.Normalize(ModelineDisabledLangs, []any{"go", 1})
	assert.ErrorIs(t, err, ErrTypeMismatch, "mixed list")
}

func TestNormalizeModeline(t *testing.T) {
	r := NewWithDefaults()

	_, err := r.NormalizeModeline(IndentUnit, "  ")
	assert.NoError(t, err, "indent.unit from a modeline")
	_, err = r.NormalizeModeline(EditorEvil, false)
	assert.ErrorIs(t, err, ErrNotModeline)
	_, err = r.NormalizeModeline(ModelineEnable, false)
	assert.ErrorIs(t, err, ErrNotModeline)
	_, err = r.NormalizeModeline("nope", 1)
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

type mapStore map[string]any

func (m mapStore) GetValue(path string) (any, bool) {
	v, ok := m[path]
	return v, ok
}

func TestAccessor(t *testing.T) {
	r := NewWithDefaults()
	a := NewAccessor(r, mapStore{
		IndentUnit:            "  ",
		ModelineLines:         int64(2),
		ModelineDisabledLangs: []any{"markdown"},
		EditorEvil:            "true",
	})

	s, err := a.GetString(IndentUnit)
	require.NoError(t, err)
	assert.Equal(t, "  ", s)

	n, err := a.GetInt(ModelineLines)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	b, err := a.GetBool(ModelineEnable)
	require.NoError(t, err)
	assert.True(t, b, "modeline.enable default")

	l, err := a.GetStringSlice(ModelineDisabledLangs)
	require.NoError(t, err)
	assert.Equal(t, []string{"markdown"}, l)

	_, err = a.GetBool(EditorEvil)
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, EditorEvil, te.Path)
	assert.Equal(t, "boolean", te.Expected)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = a.GetInt(IndentUnit)
	assert.ErrorIs(t, err, ErrTypeMismatch, "GetInt on a string setting")
	_, err = a.GetString("nope")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}
