// Package fixedlength decodes and encodes fixed-length (column positional)
// flat-file records according to a mutable set of record type layouts.
//
// A Layout maps record type ids to ordered field definitions. A Reader slices
// raw lines into field values, detecting the record type of each line with a
// caller supplied Detector; a Writer concatenates field values back into
// fixed-width lines. Both apply an optional Transform to every field value.
package fixedlength

// Marshaler is the interface implemented by an object that can
// marshal itself into a fixed-width form.
//
// MarshalFixedWidth is provided the size of the field being written
// and should return the encoded value of the receiver. The Pad
// transform truncates or pads the result if it does not fit.
type Marshaler interface {
	MarshalFixedWidth(width int) (data []byte, err error)
}

// Unmarshaler is the interface implemented by an object that can
// unmarshal a fixed-width representation of itself.
//
// Record.Unmarshal passes the raw field value with leading and
// trailing space removed.
//
// UnmarshalFixedWidth should be able to decode the form generated
// by MarshalFixedWidth.
type Unmarshaler interface {
	UnmarshalFixedWidth(data []byte) error
}
