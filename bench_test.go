package fixedlength

import (
	"strings"
	"testing"
)

var benchFields = []Field{
	{ID: "kind", Size: 2},
	{ID: "F1", Size: 10},
	{ID: "F2", Size: 10, Attrs: map[string]interface{}{AttrAlign: "right"}},
	{ID: "F3", Size: 10, Attrs: map[string]interface{}{AttrAlign: "right", AttrPad: "0"}},
	{ID: "F4", Size: 10},
	{ID: "F5", Size: 10, Attrs: map[string]interface{}{AttrAlign: "right"}},
}

const benchLine = `01       foo       foo0000000042      true       4.2`

func benchReader(b *testing.B, codepoints bool) *Reader {
	r := NewReader()
	if err := r.AddRecordType("01", benchFields...); err != nil {
		b.Fatal(err)
	}
	r.SetRecordTypeDetector(PrefixDetector(2))
	r.SetFieldTransform(Trim)
	r.SetUseCodepointIndices(codepoints)
	return r
}

func benchmarkDecodeFile(b *testing.B, lines int, codepoints bool) {
	data := strings.Repeat(benchLine+"\n", lines)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := benchReader(b, codepoints)
		if _, err := r.DecodeFile(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeFile_1(b *testing.B)      { benchmarkDecodeFile(b, 1, false) }
func BenchmarkDecodeFile_1000(b *testing.B)   { benchmarkDecodeFile(b, 1000, false) }
func BenchmarkDecodeFile_100000(b *testing.B) { benchmarkDecodeFile(b, 100000, false) }

func BenchmarkDecodeFile_CodePoints_1000(b *testing.B) { benchmarkDecodeFile(b, 1000, true) }

func BenchmarkEncodeLine(b *testing.B) {
	w := NewWriter()
	if err := w.AddRecordType("01", benchFields...); err != nil {
		b.Fatal(err)
	}
	w.SetFieldTransform(Pad)
	data := map[string]interface{}{
		"kind": "01",
		"F1":   "foo",
		"F2":   stringp("foo"),
		"F3":   Digits(42),
		"F4":   "true",
		"F5":   Float(4.2),
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := w.EncodeLine("01", data); err != nil {
			b.Fatal(err)
		}
	}
}
