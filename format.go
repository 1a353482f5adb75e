package fixedlength

import (
	"github.com/pkg/errors"
)

// Field attributes read by Pad and Trim.
const (
	AttrAlign = "align" // "left", "right", "none" or "default"
	AttrPad   = "pad"   // a single byte string, " " if unset
)

const (
	defaultAlignment alignment = "default"
	noAlignment      alignment = "none"
	right            alignment = "right"
	left             alignment = "left"
)

const (
	defaultPadChar = ' '
)

var defaultFormat = format{
	alignment: defaultAlignment,
	padChar:   defaultPadChar,
}

type format struct {
	alignment alignment
	padChar   byte
}

type alignment string

func (a alignment) Valid() bool {
	switch a {
	case defaultAlignment, right, left, noAlignment:
		return true
	default:
		return false
	}
}

// formatOf reads the alignment and pad character of a field from its
// attributes.
func formatOf(f Field) (format, error) {
	ff := defaultFormat
	if v, ok := f.Attr(AttrAlign); ok {
		s, _ := v.(string)
		a := alignment(s)
		if !a.Valid() {
			return ff, errors.Errorf("fixedlength: field %q has invalid %s attribute %v", f.ID, AttrAlign, v)
		}
		ff.alignment = a
	}
	if v, ok := f.Attr(AttrPad); ok {
		s, _ := v.(string)
		if len(s) != 1 {
			return ff, errors.Errorf("fixedlength: field %q has invalid %s attribute %v", f.ID, AttrPad, v)
		}
		ff.padChar = s[0]
	}
	return ff, nil
}
