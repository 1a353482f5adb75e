package fixedlength

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	nilFloat64 *float64
	nilInt     *int
	nilString  *string
)

func float64p(v float64) *float64 { return &v }
func intp(v int) *int             { return &v }
func stringp(v string) *string    { return &v }

// EncodableString is a string that implements the encoding TextUnmarshaler and TextMarshaler interface.
// This is useful for testing.
type EncodableString struct {
	S   string
	Err error
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EncodableString) UnmarshalText(text []byte) error {
	s.S = string(text)
	return s.Err
}

// MarshalText implements encoding.TextMarshaler.
func (s EncodableString) MarshalText() ([]byte, error) {
	return []byte(s.S), s.Err
}

// upper is a Marshaler and Unmarshaler that stores its value in upper case.
type upper string

func (u upper) MarshalFixedWidth(width int) ([]byte, error) {
	b := []byte(u)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	if len(b) > width {
		b = b[:width]
	}
	return b, nil
}

func (u *upper) UnmarshalFixedWidth(data []byte) error {
	*u = upper(data)
	return nil
}

// newTestLayout returns a layout with record types built from ids and sizes.
func newTestLayout(t *testing.T, types ...RecordType) *Layout {
	t.Helper()
	l := NewLayout()
	require.NoError(t, l.SetRecordTypes(types...))
	return l
}

func fieldIDs(fields []Field) []string {
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
	}
	return ids
}
