package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wallaceicy06/go-fixedlength"
)

// parseRecordType parses a --record flag of the form
//
//	ID=field:size[:align[:pad]],field:size...
func parseRecordType(s string) (fixedlength.RecordType, error) {
	var rt fixedlength.RecordType
	id, fields, ok := strings.Cut(s, "=")
	if !ok || id == "" {
		return rt, errors.Errorf("record %q: want ID=field:size,...", s)
	}
	rt.ID = id
	for _, part := range strings.Split(fields, ",") {
		f, err := parseField(part)
		if err != nil {
			return rt, errors.Wrapf(err, "record %q", id)
		}
		rt.Fields = append(rt.Fields, f)
	}
	return rt, nil
}

func parseField(s string) (fixedlength.Field, error) {
	var f fixedlength.Field
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return f, errors.Errorf("field %q: want field:size[:align[:pad]]", s)
	}
	size, err := strconv.Atoi(parts[1])
	if err != nil {
		return f, errors.Wrapf(err, "field %q: size", s)
	}
	f.ID, f.Size = parts[0], size
	if len(parts) > 2 {
		f.Attrs = map[string]interface{}{fixedlength.AttrAlign: parts[2]}
	}
	if len(parts) > 3 {
		f.Attrs[fixedlength.AttrPad] = parts[3]
	}
	return f, nil
}

func parseRecordTypes(specs []string) ([]fixedlength.RecordType, error) {
	types := make([]fixedlength.RecordType, 0, len(specs))
	for _, s := range specs {
		rt, err := parseRecordType(s)
		if err != nil {
			return nil, err
		}
		types = append(types, rt)
	}
	return types, nil
}
