package fixedlength

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultLineDelimiter separates generated lines unless SetLineDelimiter is
// called.
const DefaultLineDelimiter = "\n"

// A Writer encodes field values into fixed-width lines and accumulates them.
//
// The embedded Layout holds the record types. A Writer is not safe for
// concurrent use.
type Writer struct {
	Layout

	lines []string

	delimiter    string
	delimiterSet bool
}

// NewWriter returns an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// EncodeLine writes the fields of recordTypeID in layout order, taking each
// value from data by field id. A field missing from data is encoded from the
// empty string. Transformed values are converted to text and concatenated
// without separators; the Writer does not pad them, so fields keep their
// width only if the values, or the Transform (see Pad), do. The line is
// appended to GeneratedLines.
func (w *Writer) EncodeLine(recordTypeID string, data map[string]interface{}) (string, error) {
	rl, ok := w.types[recordTypeID]
	if !ok {
		return "", recordTypeError(ErrRecordTypeDoesNotExist, recordTypeID)
	}

	var b strings.Builder
	extra := Extra{ExtraRawLineData: data}
	for _, f := range rl.fields {
		value, ok := data[f.ID]
		if !ok {
			value = ""
		}
		value, err := w.transformValue(f, value, extra)
		if err != nil {
			return "", errors.Wrapf(err, "fixedlength: transform field %q of record type %q", f.ID, recordTypeID)
		}
		s, err := formatValue(value, f.Size)
		if err != nil {
			return "", errors.Wrapf(err, "fixedlength: field %q of record type %q", f.ID, recordTypeID)
		}
		b.WriteString(s)
	}

	line := b.String()
	w.lines = append(w.lines, line)
	return line, nil
}

// EncodeStruct encodes the fixed tagged fields of v, a struct or a pointer
// to one, as a line of recordTypeID. See FieldsOf for the tag format.
func (w *Writer) EncodeStruct(recordTypeID string, v interface{}) (string, error) {
	data, err := structValues(v)
	if err != nil {
		return "", err
	}
	return w.EncodeLine(recordTypeID, data)
}

// GeneratedLines returns the encoded lines in encoding order.
func (w *Writer) GeneratedLines() []string {
	return append([]string(nil), w.lines...)
}

// GeneratedContent returns the encoded lines joined by the line delimiter.
func (w *Writer) GeneratedContent() string {
	return strings.Join(w.lines, w.LineDelimiter())
}

// SetLineDelimiter sets the string placed between generated lines.
func (w *Writer) SetLineDelimiter(delimiter string) {
	w.delimiter = delimiter
	w.delimiterSet = true
}

// LineDelimiter returns the string placed between generated lines.
func (w *Writer) LineDelimiter() string {
	if !w.delimiterSet {
		return DefaultLineDelimiter
	}
	return w.delimiter
}

// WriteToStorage hands the generated content to s for dest.
func (w *Writer) WriteToStorage(s Sink, dest string) error {
	content := w.GeneratedContent()
	if err := s.Store(dest, []byte(content)); err != nil {
		Logger().Debug("storing generated content failed", zap.String("dest", dest), zap.Error(err))
		return errors.Wrapf(err, "fixedlength: store %s", dest)
	}
	Logger().Debug("stored generated content",
		zap.String("dest", dest),
		zap.Int("lines", len(w.lines)),
		zap.Int("bytes", len(content)))
	return nil
}

// Reset discards the generated lines, restores the default line delimiter
// and resets the layout.
func (w *Writer) Reset() {
	w.lines = nil
	w.delimiter, w.delimiterSet = "", false
	w.Layout.Reset()
}
