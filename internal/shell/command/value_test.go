package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_String(t *testing.T) {
	v, err := Coerce("anything at all", KindString)
	require.NoError(t, err)
	s, ok := v.Str()
	require.True(t, ok)
	assert.Equal(t, "anything at all", s)
}

func TestCoerce_Int(t *testing.T) {
	v, err := Coerce("42", KindInt)
	require.NoError(t, err)
	n, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	v, err = Coerce("-7", KindInt)
	require.NoError(t, err)
	n, _ = v.Int()
	assert.Equal(t, int64(-7), n)
}

func TestCoerce_IntRejectsPartialParse(t *testing.T) {
	for _, input := range []string{"", "12abc", "1.0", "0x10", " 5", "5 "} {
		_, err := Coerce(input, KindInt)
		assert.Error(t, err, "input %q should not coerce to int", input)
	}
}

func TestCoerce_Float(t *testing.T) {
	v, err := Coerce("3.5", KindFloat)
	require.NoError(t, err)
	f, ok := v.Float()
	require.True(t, ok)
	assert.InDelta(t, 3.5, f, 1e-9)
}

func TestCoerce_FloatRejectsPartialParse(t *testing.T) {
	for _, input := range []string{"", "1.0abc", "abc", "1,5"} {
		_, err := Coerce(input, KindFloat)
		assert.Error(t, err, "input %q should not coerce to float", input)
	}
}

func TestCoerce_BoolLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"yes", true},
		{"1", true},
		{"false", false},
		{"no", false},
		{"0", false},
	}
	for _, tt := range tests {
		v, err := Coerce(tt.input, KindBool)
		require.NoError(t, err, "input %q", tt.input)
		b, ok := v.Bool()
		require.True(t, ok)
		assert.Equal(t, tt.want, b, "input %q", tt.input)
	}
}

func TestCoerce_BoolSetIsClosedAndCaseSensitive(t *testing.T) {
	// The literal sets are deliberately closed; "TRUE", "y", "on" and
	// friends must keep failing.
	for _, input := range []string{"TRUE", "False", "Yes", "y", "n", "on", "off", "2", ""} {
		_, err := Coerce(input, KindBool)
		assert.Error(t, err, "input %q should not coerce to bool", input)
	}
}

func TestCoerce_NeverReturnsWrongKind(t *testing.T) {
	v, err := Coerce("123", KindInt)
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind())
	_, ok := v.Str()
	assert.False(t, ok)
	_, ok = v.Bool()
	assert.False(t, ok)
}

func TestValue_ZeroValueIsEmptyString(t *testing.T) {
	var v Value
	assert.Equal(t, KindString, v.Kind())
	s, ok := v.Str()
	assert.True(t, ok)
	assert.Equal(t, "", s)
}
