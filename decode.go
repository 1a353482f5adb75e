package fixedlength

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An InvalidUnmarshalError describes an invalid argument passed to
// Record.Unmarshal. (The argument must be a non-nil pointer to a struct.)
type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "fixedlength: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Ptr {
		return "fixedlength: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "fixedlength: Unmarshal(nil " + e.Type.String() + ")"
}

// An UnmarshalTypeError describes a field value that was
// not appropriate for a value of a specific Go type.
type UnmarshalTypeError struct {
	Value  string       // the field value
	Type   reflect.Type // type of Go value it could not be assigned to
	Struct string       // name of the struct type containing the field
	Field  string       // name of the field holding the Go value
	Cause  error        // original error
}

func (e *UnmarshalTypeError) Error() string {
	s := "fixedlength: cannot unmarshal " + strconv.Quote(e.Value) + " into Go struct field " + e.Struct + "." + e.Field + " of type " + e.Type.String()
	if e.Cause != nil {
		return s + ": " + e.Cause.Error()
	}
	return s
}

func (e *UnmarshalTypeError) Unwrap() error {
	return e.Cause
}

// Unmarshal stores the field values of the record in the struct pointed to by
// v. Struct fields are matched by the id in their fixed tag; record fields
// without a matching struct field are ignored.
//
// Text values have leading and trailing space removed and are parsed into
// strings, integers, floats, booleans, pointers to those, Unmarshaler and
// encoding.TextUnmarshaler implementations. Values a Transform already
// converted are assigned directly when their type is assignable to the field.
func (r Record) Unmarshal(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return &InvalidUnmarshalError{reflect.TypeOf(v)}
	}

	t := rv.Type()
	for _, fs := range cachedStructSpec(t).fieldSpecs {
		value, ok := r.Get(fs.id)
		if !ok {
			continue
		}
		if err := fs.setter(rv.Field(fs.index), value); err != nil {
			return &UnmarshalTypeError{
				Value:  fmt.Sprint(value),
				Type:   t.Field(fs.index).Type,
				Struct: t.Name(),
				Field:  fs.name,
				Cause:  err,
			}
		}
	}
	return nil
}

type valueSetter func(v reflect.Value, value interface{}) error

var (
	unmarshalerType     = reflect.TypeOf(new(Unmarshaler)).Elem()
	textUnmarshalerType = reflect.TypeOf(new(encoding.TextUnmarshaler)).Elem()
)

func newValueSetter(t reflect.Type) valueSetter {
	var set func(v reflect.Value, raw string) error
	switch {
	case reflect.PtrTo(t).Implements(unmarshalerType):
		set = unmarshalerSetter
	case reflect.PtrTo(t).Implements(textUnmarshalerType):
		set = textUnmarshalerSetter
	default:
		switch t.Kind() {
		case reflect.Ptr:
			set = ptrSetter(t)
		case reflect.String:
			set = stringSetter
		case reflect.Int, reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8:
			set = intSetter
		case reflect.Uint, reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8:
			set = uintSetter
		case reflect.Float32, reflect.Float64:
			set = floatSetter
		case reflect.Bool:
			set = boolSetter
		default:
			set = unknownSetter
		}
	}

	return func(v reflect.Value, value interface{}) error {
		switch value := value.(type) {
		case nil:
			v.Set(reflect.Zero(v.Type()))
			return nil
		case string:
			if v.Kind() == reflect.Interface && v.NumMethod() == 0 {
				v.Set(reflect.ValueOf(value))
				return nil
			}
			return set(v, strings.TrimSpace(value))
		}
		rv := reflect.ValueOf(value)
		if rv.Type().AssignableTo(v.Type()) {
			v.Set(rv)
			return nil
		}
		if c := kindClass(rv.Kind()); c != 0 && c == kindClass(v.Kind()) {
			if overflows(v, rv, c) {
				return errors.Errorf("fixedlength: value %v overflows %s", value, v.Type())
			}
			v.Set(rv.Convert(v.Type()))
			return nil
		}
		raw, err := formatValue(value, 0)
		if err != nil {
			return err
		}
		return set(v, strings.TrimSpace(raw))
	}
}

// kindClass groups kinds that convert into each other without changing the
// meaning of the value.
func kindClass(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int64, reflect.Int32, reflect.Int16, reflect.Int8:
		return 1
	case reflect.Uint, reflect.Uint64, reflect.Uint32, reflect.Uint16, reflect.Uint8:
		return 2
	case reflect.Float32, reflect.Float64:
		return 3
	case reflect.String:
		return 4
	}
	return 0
}

// overflows reports whether rv, of kind class c, does not fit in v.
func overflows(v, rv reflect.Value, c int) bool {
	switch c {
	case 1:
		return v.OverflowInt(rv.Int())
	case 2:
		return v.OverflowUint(rv.Uint())
	case 3:
		return v.OverflowFloat(rv.Float())
	}
	return false
}

func unknownSetter(reflect.Value, string) error {
	return errors.New("fixedlength: unknown type")
}

func unmarshalerSetter(v reflect.Value, raw string) error {
	return v.Addr().Interface().(Unmarshaler).UnmarshalFixedWidth([]byte(raw))
}

func textUnmarshalerSetter(v reflect.Value, raw string) error {
	return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))
}

func ptrSetter(t reflect.Type) func(v reflect.Value, raw string) error {
	elem := newValueSetter(t.Elem())
	return func(v reflect.Value, raw string) error {
		if len(raw) == 0 {
			v.Set(reflect.Zero(t))
			return nil
		}
		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}
		return elem(v.Elem(), raw)
	}
}

func stringSetter(v reflect.Value, raw string) error {
	v.SetString(raw)
	return nil
}

func intSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		return nil
	}
	i, err := strconv.ParseInt(raw, 10, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetInt(i)
	return nil
}

func uintSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		return nil
	}
	i, err := strconv.ParseUint(raw, 10, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetUint(i)
	return nil
}

func floatSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		return nil
	}
	f, err := strconv.ParseFloat(raw, v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetFloat(f)
	return nil
}

func boolSetter(v reflect.Value, raw string) error {
	if len(raw) < 1 {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return err
	}
	v.SetBool(b)
	return nil
}
