package tabular_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/equiref/diverso/pkg/tabular"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want tabular.Kind
	}{
		{"empty is missing", "", tabular.KindMissing},
		{"whitespace is missing", "   ", tabular.KindMissing},
		{"integer", "42", tabular.KindNumber},
		{"decimal", "1.82", tabular.KindNumber},
		{"negative", "-3", tabular.KindNumber},
		{"padded number", " 170 ", tabular.KindNumber},
		{"text", "P-0042", tabular.KindString},
		{"nan stays textual", "NaN", tabular.KindString},
		{"infinity stays textual", "Inf", tabular.KindString},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tabular.Parse(tc.raw).Kind())
		})
	}
}

func TestValueAccessors(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		v := tabular.String("hello")
		s, ok := v.AsString()
		assert.True(t, ok)
		assert.Equal(t, "hello", s)
		_, ok = v.AsNumber()
		assert.False(t, ok)
		assert.False(t, v.IsMissing())
	})

	t.Run("number", func(t *testing.T) {
		v := tabular.Number(1.75)
		n, ok := v.AsNumber()
		assert.True(t, ok)
		assert.Equal(t, 1.75, n)
		_, ok = v.AsString()
		assert.False(t, ok)
	})

	t.Run("missing", func(t *testing.T) {
		v := tabular.Missing()
		assert.True(t, v.IsMissing())
		assert.Equal(t, tabular.KindMissing, v.Kind())
	})

	t.Run("zero value is missing", func(t *testing.T) {
		var v tabular.Value
		assert.True(t, v.IsMissing())
		assert.Equal(t, tabular.Missing(), v)
	})
}

func TestValueFormat(t *testing.T) {
	tests := []struct {
		name string
		v    tabular.Value
		want string
	}{
		{"missing", tabular.Missing(), ""},
		{"string", tabular.String("P-1"), "P-1"},
		{"integer number", tabular.Number(180), "180"},
		{"decimal number", tabular.Number(1.8), "1.8"},
		{"large number stays plain", tabular.Number(1000000), "1000000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.Format())
		})
	}
}

func TestValueRoundTrip(t *testing.T) {
	// Formatting then reparsing a parsed value must be stable, otherwise
	// repeated runs would not be idempotent.
	for _, raw := range []string{"42", "1.82", "0.5", "P-0042", ""} {
		v := tabular.Parse(raw)
		assert.Equal(t, v, tabular.Parse(v.Format()), "raw %q", raw)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "missing", tabular.KindMissing.String())
	assert.Equal(t, "string", tabular.KindString.String())
	assert.Equal(t, "number", tabular.KindNumber.String())
}
