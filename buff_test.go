package fixedlength

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRawValue(t *testing.T) {
	for _, tt := range []struct {
		name                string
		data                string
		useCodepointIndices bool
		expectLen           int
		expectIndices       []int
	}{
		{"ascii bytes", "foo", false, 3, nil},
		{"ascii codepoints", "foo", true, 3, nil},
		{"multibyte bytes", "føø", false, 5, nil},
		{"multibyte codepoints", "føø", true, 3, []int{0, 1, 3}},
		{"multibyte first", "øf", true, 2, []int{0, 2}},
		{"invalid utf8", "f\xffo", true, 3, []int{0, 1, 2}},
		{"empty", "", true, 0, nil},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v := newRawValue(tt.data, tt.useCodepointIndices)
			assert.Equal(t, tt.expectLen, v.len())
			assert.Equal(t, tt.expectIndices, v.codepointIndices)
		})
	}
}

func TestRawValue_slice(t *testing.T) {
	for _, tt := range []struct {
		name                string
		data                string
		useCodepointIndices bool
		start, size         int
		expect              string
	}{
		{"start", "foobar", false, 0, 3, "foo"},
		{"end", "foobar", false, 3, 3, "bar"},
		{"past end", "foobar", false, 4, 3, "ar"},
		{"after end", "foobar", false, 6, 3, ""},
		{"empty value", "", false, 0, 3, ""},
		{"codepoints start", "føøbår", true, 0, 3, "føø"},
		{"codepoints end", "føøbår", true, 3, 3, "bår"},
		{"codepoints past end", "føøbår", true, 4, 5, "år"},
		{"codepoints after end", "føøbår", true, 7, 1, ""},
		{"bytes over multibyte", "føøbår", false, 0, 3, "fø"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			v := newRawValue(tt.data, tt.useCodepointIndices)
			assert.Equal(t, tt.expect, v.slice(tt.start, tt.size))
		})
	}
}

func TestFit(t *testing.T) {
	zeroRight := format{alignment: right, padChar: '0'}
	for _, tt := range []struct {
		name                string
		value               string
		useCodepointIndices bool
		width               int
		format              format
		expect              string
	}{
		{"default pad", "foo", false, 5, defaultFormat, "foo  "},
		{"left pad", "foo", false, 5, format{left, '_'}, "foo__"},
		{"right pad", "42", false, 5, zeroRight, "00042"},
		{"none", "foo", false, 5, format{noAlignment, ' '}, "foo"},
		{"exact", "foo", false, 3, zeroRight, "foo"},
		{"truncate left aligned", "foobar", false, 3, defaultFormat, "foo"},
		{"truncate right aligned", "foobar", false, 3, zeroRight, "bar"},
		{"truncate none", "foobar", false, 3, format{noAlignment, ' '}, "foo"},
		{"empty", "", false, 3, defaultFormat, "   "},
		{"codepoints pad", "føø", true, 5, defaultFormat, "føø  "},
		{"codepoints right pad", "føø", true, 5, format{right, ' '}, "  føø"},
		{"codepoints truncate", "føøbår", true, 4, defaultFormat, "føøb"},
		{"codepoints truncate right", "føøbår", true, 4, format{right, ' '}, "øbår"},
		{"bytes pad counts bytes", "føø", false, 6, defaultFormat, "føø "},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := fit(newRawValue(tt.value, tt.useCodepointIndices), tt.width, tt.format)
			assert.Equal(t, tt.expect, got)
		})
	}
}
