package fixedlength

import (
	"strconv"
	"strings"
)

// ErrorKind categorizes a SchemaError. Every kind is itself an error so it can
// be matched with errors.Is:
//
//	if errors.Is(err, fixedlength.ErrFieldAlreadyExists) { ... }
type ErrorKind int

const (
	ErrRecordTypeAlreadyExists ErrorKind = iota + 1
	ErrRecordTypeDoesNotExist
	ErrFieldAlreadyExists
	ErrFieldDoesNotExist
	ErrInvalidFieldConfiguration
	ErrRequiredCallbackNotSet
	ErrLineNotDetected
)

var kindNames = map[ErrorKind]string{
	ErrRecordTypeAlreadyExists:   "record type already exists",
	ErrRecordTypeDoesNotExist:    "record type does not exist",
	ErrFieldAlreadyExists:        "field already exists",
	ErrFieldDoesNotExist:         "field does not exist",
	ErrInvalidFieldConfiguration: "invalid field configuration",
	ErrRequiredCallbackNotSet:    "required callback not set",
	ErrLineNotDetected:           "line not detected",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

func (k ErrorKind) Error() string {
	return "fixedlength: " + k.String()
}

// A SchemaError describes a violation of the layout rules or a failure to
// detect a line. The detail fields are set when they apply to the failure.
type SchemaError struct {
	Kind       ErrorKind
	RecordType string // offending record type id
	Field      string // offending field id
	Line       int    // 1-based line number, set while decoding a file
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("fixedlength: ")
	b.WriteString(e.Kind.String())
	if e.Field != "" {
		b.WriteString(": field ")
		b.WriteString(strconv.Quote(e.Field))
		if e.RecordType != "" {
			b.WriteString(" in record type ")
			b.WriteString(strconv.Quote(e.RecordType))
		}
	} else if e.RecordType != "" {
		b.WriteString(": record type ")
		b.WriteString(strconv.Quote(e.RecordType))
	}
	if e.Line > 0 {
		b.WriteString(" (line ")
		b.WriteString(strconv.Itoa(e.Line))
		b.WriteByte(')')
	}
	return b.String()
}

// Unwrap returns the kind of the error.
func (e *SchemaError) Unwrap() error {
	return e.Kind
}

func recordTypeError(kind ErrorKind, recordType string) *SchemaError {
	return &SchemaError{Kind: kind, RecordType: recordType}
}

func fieldError(kind ErrorKind, recordType, field string) *SchemaError {
	return &SchemaError{Kind: kind, RecordType: recordType, Field: field}
}
