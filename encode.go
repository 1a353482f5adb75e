package fixedlength

import (
	"encoding"
	"reflect"
	"strconv"
)

// MarshalInvalidTypeError describes a value that cannot be written as text.
type MarshalInvalidTypeError struct {
	typeName string
}

func (e *MarshalInvalidTypeError) Error() string {
	return "fixedlength: cannot marshal unknown Type " + e.typeName
}

// formatValue converts a field value to its text form. width is the size of
// the field and is handed to Marshaler implementations.
//
// nil pointers and interfaces are written as the empty string. Strings,
// integers, floats (two decimal places), Marshaler and
// encoding.TextMarshaler implementations are supported.
func formatValue(value interface{}, width int) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	}
	v := reflect.ValueOf(value)
	return newValueEncoder(v.Type())(v, width)
}

type valueEncoder func(v reflect.Value, width int) (string, error)

var (
	marshalerType     = reflect.TypeOf(new(Marshaler)).Elem()
	textMarshalerType = reflect.TypeOf(new(encoding.TextMarshaler)).Elem()
)

func newValueEncoder(t reflect.Type) valueEncoder {
	if t == nil {
		return nilEncoder
	}
	if t.Kind() == reflect.Ptr || t.Kind() == reflect.Interface {
		return ptrInterfaceEncoder
	}
	if t.Implements(marshalerType) {
		return marshalerEncoder
	}
	if t.Implements(textMarshalerType) {
		return textMarshalerEncoder
	}

	switch t.Kind() {
	case reflect.String:
		return stringEncoder
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8:
		return intEncoder
	case reflect.Uint, reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		return uintEncoder
	case reflect.Float64:
		return floatEncoder(2, 64)
	case reflect.Float32:
		return floatEncoder(2, 32)
	}
	return unknownTypeEncoder(t)
}

func marshalerEncoder(v reflect.Value, width int) (string, error) {
	b, err := v.Interface().(Marshaler).MarshalFixedWidth(width)
	return string(b), err
}

func textMarshalerEncoder(v reflect.Value, _ int) (string, error) {
	b, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	return string(b), err
}

func ptrInterfaceEncoder(v reflect.Value, width int) (string, error) {
	if v.IsNil() {
		return nilEncoder(v, width)
	}
	// Pointer receivers are checked before following the pointer.
	if v.Kind() == reflect.Ptr {
		if v.Type().Implements(marshalerType) {
			return marshalerEncoder(v, width)
		}
		if v.Type().Implements(textMarshalerType) {
			return textMarshalerEncoder(v, width)
		}
	}
	return newValueEncoder(v.Elem().Type())(v.Elem(), width)
}

func stringEncoder(v reflect.Value, _ int) (string, error) {
	return v.String(), nil
}

func intEncoder(v reflect.Value, _ int) (string, error) {
	return strconv.FormatInt(v.Int(), 10), nil
}

func uintEncoder(v reflect.Value, _ int) (string, error) {
	return strconv.FormatUint(v.Uint(), 10), nil
}

func floatEncoder(perc, bitSize int) valueEncoder {
	return func(v reflect.Value, _ int) (string, error) {
		return strconv.FormatFloat(v.Float(), 'f', perc, bitSize), nil
	}
}

func nilEncoder(_ reflect.Value, _ int) (string, error) {
	return "", nil
}

func unknownTypeEncoder(t reflect.Type) valueEncoder {
	return func(reflect.Value, int) (string, error) {
		return "", &MarshalInvalidTypeError{typeName: t.String()}
	}
}

// structValues collects the values of the tagged fields of a struct, keyed by
// field id.
func structValues(v interface{}) (map[string]interface{}, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, &MarshalInvalidTypeError{typeName: rv.Type().String()}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		name := "nil"
		if rv.IsValid() {
			name = rv.Type().String()
		}
		return nil, &MarshalInvalidTypeError{typeName: name}
	}
	ss := cachedStructSpec(rv.Type())
	data := make(map[string]interface{}, len(ss.fieldSpecs))
	for _, fs := range ss.fieldSpecs {
		data[fs.id] = rv.Field(fs.index).Interface()
	}
	return data, nil
}
