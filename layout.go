package fixedlength

// Field is one fixed-width slot of a record type.
//
// Size is the number of bytes the field occupies, or the number of codepoints
// when the layout uses codepoint indices. Attrs holds caller-defined metadata
// (a display name, the pad character, ...) and is never interpreted by the
// layout itself; the built-in transforms read the "align" and "pad" keys.
type Field struct {
	ID    string
	Size  int
	Attrs map[string]interface{}
}

// Attr returns the attribute stored under key.
func (f Field) Attr(key string) (interface{}, bool) {
	v, ok := f.Attrs[key]
	return v, ok
}

// AttrString returns the attribute stored under key if it is a string.
func (f Field) AttrString(key string) string {
	s, _ := f.Attrs[key].(string)
	return s
}

func (f Field) clone() Field {
	if f.Attrs == nil {
		return f
	}
	attrs := make(map[string]interface{}, len(f.Attrs))
	for k, v := range f.Attrs {
		attrs[k] = v
	}
	f.Attrs = attrs
	return f
}

// RecordType is a named record layout. The order of Fields is the
// left-to-right position of each field in a raw line.
type RecordType struct {
	ID     string
	Fields []Field
}

// Extra carries additional context into a callback. The engine sets
// ExtraRawLineData; callers may pass anything else through DetectRecordType.
type Extra map[string]interface{}

// ExtraRawLineData is the Extra key holding the raw line being decoded
// (a string) or the data being encoded (a map[string]interface{}).
const ExtraRawLineData = "rawLineData"

// Transform converts a field value while decoding or encoding. On decode value
// is the raw slice of the line; on encode it is the caller supplied value.
// The returned value replaces it.
type Transform func(f Field, value interface{}, v View, extra Extra) (interface{}, error)

// View is a read-only handle on a layout handed to callbacks.
type View interface {
	RecordType(id string) ([]Field, bool)
	Field(recordTypeID, fieldID string) (Field, bool)
	HasRecordType(id string) bool
	UseCodepointIndices() bool
}

// A Layout holds the record type definitions shared by a Reader or a Writer.
//
// The zero value is an empty layout ready to use. A Layout is not safe for
// concurrent mutation.
type Layout struct {
	ids                 []string
	types               map[string]*recordLayout
	transform           Transform
	useCodepointIndices bool
}

// recordLayout keeps the ordered fields and an index by id in sync.
type recordLayout struct {
	fields []Field
	index  map[string]Field
}

// NewLayout returns an empty layout.
func NewLayout() *Layout {
	return &Layout{}
}

// SetRecordTypes resets the layout and installs types in the given order.
// Either all of types are installed or, on the first invalid definition, the
// layout is left as it was. Like Reset, a successful call clears the
// transform and the codepoint setting.
func (l *Layout) SetRecordTypes(types ...RecordType) error {
	var staged Layout
	for _, rt := range types {
		if err := staged.AddRecordType(rt.ID, rt.Fields...); err != nil {
			return err
		}
	}
	*l = staged
	return nil
}

// AddRecordType registers a record type and appends fields to it one at a
// time. If a field is rejected the record type stays registered with the
// fields added before it.
func (l *Layout) AddRecordType(id string, fields ...Field) error {
	if l.HasRecordType(id) {
		return recordTypeError(ErrRecordTypeAlreadyExists, id)
	}
	if l.types == nil {
		l.types = make(map[string]*recordLayout)
	}
	l.types[id] = &recordLayout{index: make(map[string]Field, len(fields))}
	l.ids = append(l.ids, id)
	for _, f := range fields {
		if err := l.AddField(id, f); err != nil {
			return err
		}
	}
	return nil
}

// RemoveRecordType deletes a record type and all of its fields.
func (l *Layout) RemoveRecordType(id string) error {
	if !l.HasRecordType(id) {
		return recordTypeError(ErrRecordTypeDoesNotExist, id)
	}
	delete(l.types, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i:i], l.ids[i+1:]...)
			break
		}
	}
	return nil
}

// AddField appends f to the end of a record type.
func (l *Layout) AddField(recordTypeID string, f Field) error {
	rl, err := l.checkNewField(recordTypeID, f)
	if err != nil {
		return err
	}
	f = f.clone()
	rl.fields = append(rl.fields, f)
	rl.index[f.ID] = f
	return nil
}

// InsertField adds f to a record type immediately before the field
// beforeFieldID, which must exist.
func (l *Layout) InsertField(recordTypeID, beforeFieldID string, f Field) error {
	rl, err := l.checkNewField(recordTypeID, f)
	if err != nil {
		return err
	}
	if _, ok := rl.index[beforeFieldID]; !ok {
		return fieldError(ErrFieldDoesNotExist, recordTypeID, beforeFieldID)
	}
	f = f.clone()
	fields := make([]Field, 0, len(rl.fields)+1)
	for _, existing := range rl.fields {
		if existing.ID == beforeFieldID {
			fields = append(fields, f)
		}
		fields = append(fields, existing)
	}
	rl.fields = fields
	rl.index[f.ID] = f
	return nil
}

func (l *Layout) checkNewField(recordTypeID string, f Field) (*recordLayout, error) {
	if f.ID == "" || f.Size < 1 {
		return nil, &SchemaError{Kind: ErrInvalidFieldConfiguration, RecordType: recordTypeID, Field: f.ID}
	}
	rl, ok := l.types[recordTypeID]
	if !ok {
		return nil, recordTypeError(ErrRecordTypeDoesNotExist, recordTypeID)
	}
	if _, ok := rl.index[f.ID]; ok {
		return nil, fieldError(ErrFieldAlreadyExists, recordTypeID, f.ID)
	}
	return rl, nil
}

// RemoveField deletes a field from a record type. The remaining fields keep
// their relative order.
func (l *Layout) RemoveField(recordTypeID, fieldID string) error {
	rl, ok := l.types[recordTypeID]
	if !ok {
		return recordTypeError(ErrRecordTypeDoesNotExist, recordTypeID)
	}
	if _, ok := rl.index[fieldID]; !ok {
		return fieldError(ErrFieldDoesNotExist, recordTypeID, fieldID)
	}
	fields := make([]Field, 0, len(rl.fields)-1)
	for _, f := range rl.fields {
		if f.ID != fieldID {
			fields = append(fields, f)
		}
	}
	rl.fields = fields
	delete(rl.index, fieldID)
	return nil
}

// RecordType returns a copy of the fields of a record type in layout order.
func (l *Layout) RecordType(id string) ([]Field, bool) {
	rl, ok := l.types[id]
	if !ok {
		return nil, false
	}
	fields := make([]Field, len(rl.fields))
	for i, f := range rl.fields {
		fields[i] = f.clone()
	}
	return fields, true
}

// Field returns a copy of a single field definition.
func (l *Layout) Field(recordTypeID, fieldID string) (Field, bool) {
	rl, ok := l.types[recordTypeID]
	if !ok {
		return Field{}, false
	}
	f, ok := rl.index[fieldID]
	if !ok {
		return Field{}, false
	}
	return f.clone(), true
}

// HasRecordType reports whether id is registered.
func (l *Layout) HasRecordType(id string) bool {
	_, ok := l.types[id]
	return ok
}

// RecordTypeIDs returns the registered record type ids in registration order.
func (l *Layout) RecordTypeIDs() []string {
	return append([]string(nil), l.ids...)
}

// LineLength returns the total width of a record type, or 0 if it does not
// exist.
func (l *Layout) LineLength(id string) int {
	rl, ok := l.types[id]
	if !ok {
		return 0
	}
	var n int
	for _, f := range rl.fields {
		n += f.Size
	}
	return n
}

// SetFieldTransform installs the transform applied to every field value.
// A nil transform restores Identity.
func (l *Layout) SetFieldTransform(t Transform) {
	l.transform = t
}

// SetUseCodepointIndices configures whether field sizes are expressed in
// bytes (the default behavior) or in UTF-8 decoded codepoints.
func (l *Layout) SetUseCodepointIndices(use bool) {
	l.useCodepointIndices = use
}

// UseCodepointIndices reports whether field sizes count codepoints.
func (l *Layout) UseCodepointIndices() bool {
	return l.useCodepointIndices
}

// Reset removes every record type and clears the transform and the codepoint
// setting.
func (l *Layout) Reset() {
	*l = Layout{}
}

func (l *Layout) view() View {
	return layoutView{l}
}

func (l *Layout) transformValue(f Field, value interface{}, extra Extra) (interface{}, error) {
	t := l.transform
	if t == nil {
		t = Identity
	}
	return t(f.clone(), value, l.view(), extra)
}

// layoutView exposes only the read methods of a Layout.
type layoutView struct {
	l *Layout
}

func (v layoutView) RecordType(id string) ([]Field, bool) { return v.l.RecordType(id) }
func (v layoutView) Field(recordTypeID, fieldID string) (Field, bool) {
	return v.l.Field(recordTypeID, fieldID)
}
func (v layoutView) HasRecordType(id string) bool { return v.l.HasRecordType(id) }
func (v layoutView) UseCodepointIndices() bool    { return v.l.useCodepointIndices }
