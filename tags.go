package fixedlength

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// parseTag splits a struct field's fixed tag into its field id, size and
// format. Every part but the id is optional:
//
//	`fixed:"{id}"`
//	`fixed:"{id},{size}"`
//	`fixed:"{id},{size},{alignment},{padChar}"`
//
// If the tag is not valid, ok will be false.
func parseTag(tag string) (id string, size int, f format, ok bool) {
	f = defaultFormat
	parts := strings.Split(tag, ",")
	if len(parts) < 1 || len(parts) > 4 || parts[0] == "" {
		return id, size, f, false
	}
	id = parts[0]

	if len(parts) > 1 && parts[1] != "" {
		var err error
		if size, err = strconv.Atoi(parts[1]); err != nil || size < 0 {
			return "", 0, defaultFormat, false
		}
	}

	if len(parts) > 2 {
		f.alignment = alignment(parts[2])
		if !f.alignment.Valid() {
			return "", 0, defaultFormat, false
		}
	}

	if len(parts) > 3 {
		if len(parts[3]) != 1 {
			return "", 0, defaultFormat, false
		}
		f.padChar = parts[3][0]
	}

	return id, size, f, true
}

type structSpec struct {
	fieldSpecs []fieldSpec
}

type fieldSpec struct {
	index  int
	name   string
	id     string
	size   int
	format format
	// hasFormat is set when the tag named an alignment or pad character.
	hasFormat bool
	setter    valueSetter
}

func buildStructSpec(t reflect.Type) structSpec {
	var ss structSpec
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := f.Tag.Get("fixed")
		id, size, ff, ok := parseTag(tag)
		if !ok {
			continue
		}
		ss.fieldSpecs = append(ss.fieldSpecs, fieldSpec{
			index:     i,
			name:      f.Name,
			id:        id,
			size:      size,
			format:    ff,
			hasFormat: strings.Count(tag, ",") > 1,
			setter:    newValueSetter(f.Type),
		})
	}
	return ss
}

var fieldSpecCache sync.Map // map[reflect.Type]structSpec

// cachedStructSpec is like buildStructSpec but cached to prevent duplicate work.
func cachedStructSpec(t reflect.Type) structSpec {
	if f, ok := fieldSpecCache.Load(t); ok {
		return f.(structSpec)
	}
	f, _ := fieldSpecCache.LoadOrStore(t, buildStructSpec(t))
	return f.(structSpec)
}

// structType returns the struct type behind v, following pointers.
func structType(v interface{}) (reflect.Type, bool) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return t, false
	}
	return t, true
}

// FieldsOf builds field definitions from the fixed tags of a struct, in
// declaration order. v may be a struct or a pointer to one. Every tagged
// field must declare a size; alignment and pad character become the "align"
// and "pad" attributes.
//
//	type header struct {
//		Kind string `fixed:"kind,2"`
//		Name string `fixed:"name,20"`
//		Paid int    `fixed:"paid,8,right,0"`
//	}
//	fields, err := fixedlength.FieldsOf(header{})
func FieldsOf(v interface{}) ([]Field, error) {
	t, ok := structType(v)
	if !ok {
		return nil, errors.Errorf("fixedlength: FieldsOf(non-struct %v)", t)
	}
	ss := cachedStructSpec(t)
	fields := make([]Field, 0, len(ss.fieldSpecs))
	for _, fs := range ss.fieldSpecs {
		if fs.size < 1 {
			return nil, &SchemaError{Kind: ErrInvalidFieldConfiguration, Field: fs.id}
		}
		f := Field{ID: fs.id, Size: fs.size}
		if fs.hasFormat {
			f.Attrs = map[string]interface{}{
				AttrAlign: string(fs.format.alignment),
				AttrPad:   string([]byte{fs.format.padChar}),
			}
		}
		fields = append(fields, f)
	}
	return fields, nil
}
