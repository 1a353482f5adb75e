package fixedlength

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Record is a decoded line. It is immutable.
type Record struct {
	recordType string
	line       string
	ids        []string
	values     map[string]interface{}
}

// RecordType returns the id of the record type the line was decoded with.
func (r Record) RecordType() string { return r.recordType }

// Line returns the raw line.
func (r Record) Line() string { return r.line }

// FieldIDs returns the field ids in layout order.
func (r Record) FieldIDs() []string {
	return append([]string(nil), r.ids...)
}

// Get returns the decoded value of a field.
func (r Record) Get(fieldID string) (interface{}, bool) {
	v, ok := r.values[fieldID]
	return v, ok
}

// String returns the decoded value of a field if it is a string, and ""
// otherwise.
func (r Record) String(fieldID string) string {
	s, _ := r.values[fieldID].(string)
	return s
}

// Values returns a copy of the decoded values keyed by field id.
func (r Record) Values() map[string]interface{} {
	values := make(map[string]interface{}, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	return values
}

// Detector returns the id of the record type of a raw line, or "" if the line
// cannot be recognized.
type Detector func(line string, v ReaderView, extra Extra) string

// ReaderView is the read-only handle on a Reader handed to a Detector.
type ReaderView interface {
	View
	CurrentLineNumber() int
}

// A Reader decodes raw lines into records and accumulates them.
//
// The embedded Layout holds the record types. A Reader is not safe for
// concurrent use.
type Reader struct {
	Layout

	records     []Record
	currentLine int
	linesLoaded int
	inFile      bool
	detector    Detector
}

// NewReader returns an empty reader.
func NewReader() *Reader {
	return &Reader{}
}

// DecodeLine slices line into the fields of recordTypeID, left to right
// starting at offset 0. A line shorter than the layout yields whatever
// remains for the trailing fields, possibly the empty string; the line length
// is not validated. The record is appended to Records.
func (r *Reader) DecodeLine(recordTypeID, line string) (Record, error) {
	rl, ok := r.types[recordTypeID]
	if !ok {
		return Record{}, recordTypeError(ErrRecordTypeDoesNotExist, recordTypeID)
	}

	rec := Record{
		recordType: recordTypeID,
		line:       line,
		ids:        make([]string, 0, len(rl.fields)),
		values:     make(map[string]interface{}, len(rl.fields)),
	}
	raw := newRawValue(line, r.useCodepointIndices)
	extra := Extra{ExtraRawLineData: line}
	offset := 0
	for _, f := range rl.fields {
		value, err := r.transformValue(f, raw.slice(offset, f.Size), extra)
		if err != nil {
			return Record{}, errors.Wrapf(err, "fixedlength: transform field %q of record type %q", f.ID, recordTypeID)
		}
		rec.ids = append(rec.ids, f.ID)
		rec.values[f.ID] = value
		offset += f.Size
	}

	r.records = append(r.records, rec)
	r.linesLoaded++
	return rec, nil
}

// DecodeFile decodes every line of content, detecting the record type of each
// line with the configured Detector. CRLF line endings are accepted. Blank
// lines at the end of content are dropped; blank lines anywhere else are
// decoded like any other line.
//
// Decoding stops at the first failing line; CurrentLineNumber reports which
// one. The returned slice holds every record accumulated by the reader.
func (r *Reader) DecodeFile(content string) ([]Record, error) {
	if r.detector == nil {
		return nil, &SchemaError{Kind: ErrRequiredCallbackNotSet}
	}
	content = strings.TrimRight(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	log := Logger()
	r.currentLine = 0
	r.inFile = true
	defer func() { r.inFile = false }()
	if content == "" {
		return r.Records(), nil
	}
	lines := strings.Split(content, "\n")
	log.Debug("decoding file", zap.Int("lines", len(lines)))

	for _, line := range lines {
		r.currentLine++
		id, err := r.DetectRecordType(line, nil)
		if err != nil {
			log.Debug("line detection failed", zap.Int("line", r.currentLine), zap.Error(err))
			return r.Records(), err
		}
		if _, err := r.DecodeLine(id, line); err != nil {
			log.Debug("line decoding failed",
				zap.Int("line", r.currentLine),
				zap.String("recordType", id),
				zap.Error(err))
			return r.Records(), errors.Wrapf(err, "line %d", r.currentLine)
		}
	}

	log.Debug("decoded file", zap.Int("records", len(r.records)), zap.Int("linesLoaded", r.linesLoaded))
	return r.Records(), nil
}

// SetRecordTypeDetector installs the Detector used by DecodeFile and
// DetectRecordType.
func (r *Reader) SetRecordTypeDetector(d Detector) {
	r.detector = d
}

// DetectRecordType returns the id of the record type of line. extra is passed
// to the Detector as is. The line must be recognized and its record type
// registered. Errors carry the line number only while DecodeFile is running.
func (r *Reader) DetectRecordType(line string, extra Extra) (string, error) {
	if r.detector == nil {
		return "", &SchemaError{Kind: ErrRequiredCallbackNotSet}
	}
	if extra == nil {
		extra = Extra{}
	}
	var lineNumber int
	if r.inFile {
		lineNumber = r.currentLine
	}
	id := r.detector(line, readerView{layoutView{&r.Layout}, r}, extra)
	if id == "" {
		return "", &SchemaError{Kind: ErrLineNotDetected, Line: lineNumber}
	}
	if !r.HasRecordType(id) {
		return "", &SchemaError{Kind: ErrRecordTypeDoesNotExist, RecordType: id, Line: lineNumber}
	}
	return id, nil
}

// CurrentLineNumber returns the 1-based number of the line DecodeFile is
// processing, or processed last.
func (r *Reader) CurrentLineNumber() int {
	return r.currentLine
}

// LinesLoaded returns the number of lines decoded since the last Reset.
func (r *Reader) LinesLoaded() int {
	return r.linesLoaded
}

// Records returns the decoded records in decoding order.
func (r *Reader) Records() []Record {
	return append([]Record(nil), r.records...)
}

// Reset discards the decoded records, the counters, the detector and the
// layout.
func (r *Reader) Reset() {
	r.records = nil
	r.currentLine = 0
	r.linesLoaded = 0
	r.detector = nil
	r.Layout.Reset()
}

type readerView struct {
	layoutView
	r *Reader
}

func (v readerView) CurrentLineNumber() int { return v.r.currentLine }

// PrefixDetector returns a Detector that uses the first width characters of a
// line, without surrounding space, as the record type id.
func PrefixDetector(width int) Detector {
	return func(line string, v ReaderView, _ Extra) string {
		raw := newRawValue(line, v.UseCodepointIndices())
		return strings.TrimSpace(raw.slice(0, width))
	}
}

// StaticDetector returns a Detector that assigns every line to one record
// type.
func StaticDetector(recordTypeID string) Detector {
	return func(string, ReaderView, Extra) string {
		return recordTypeID
	}
}
