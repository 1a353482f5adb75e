package fixedlength

import "strings"

// Identity is the Transform in effect until one is set. It returns value
// unchanged.
func Identity(_ Field, value interface{}, _ View, _ Extra) (interface{}, error) {
	return value, nil
}

// Pad is a Transform for encoding. It converts the value to text (see
// Writer.EncodeLine) and pads or truncates it to the size of the field,
// following the "align" and "pad" attributes of the field:
//
//	left, default  value is written at the start, padded and truncated on the right
//	right          value is written at the end, padded and truncated on the left
//	none           value is truncated on the right but never padded
//
// The pad character defaults to a space.
func Pad(f Field, value interface{}, v View, _ Extra) (interface{}, error) {
	ff, err := formatOf(f)
	if err != nil {
		return nil, err
	}
	s, err := formatValue(value, f.Size)
	if err != nil {
		return nil, err
	}
	return fit(newRawValue(s, v.UseCodepointIndices()), f.Size, ff), nil
}

// Trim is a Transform for decoding. It strips the pad character the way Pad
// added it: from the right of left aligned fields, from the left of right
// aligned fields and from both sides by default. Fields aligned "none" and
// non-string values are returned unchanged.
func Trim(f Field, value interface{}, _ View, _ Extra) (interface{}, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	ff, err := formatOf(f)
	if err != nil {
		return nil, err
	}
	pad := string([]byte{ff.padChar})
	switch ff.alignment {
	case left:
		return strings.TrimRight(s, pad), nil
	case right:
		return strings.TrimLeft(s, pad), nil
	case noAlignment:
		return s, nil
	}
	return strings.Trim(s, pad), nil
}

// Chain returns a Transform applying ts in order, each receiving the result
// of the previous one.
func Chain(ts ...Transform) Transform {
	return func(f Field, value interface{}, v View, extra Extra) (interface{}, error) {
		var err error
		for _, t := range ts {
			if value, err = t(f, value, v, extra); err != nil {
				return nil, err
			}
		}
		return value, nil
	}
}
