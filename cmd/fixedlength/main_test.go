package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	testRecord = "01=kind:2,name:10,amount:8:right:0"
	testLine   = "01Ian       00004250"
)

func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func xzBytes(t *testing.T, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDecodeCmd(t *testing.T) {
	plain := writeTestFile(t, "data.txt", []byte(testLine+"\r\n"))
	compressed := writeTestFile(t, "data.txt.xz", xzBytes(t, testLine+"\n"))

	for _, tt := range []struct {
		name string
		cmd  DecodeCmd
		want string
	}{
		{
			name: "trimmed",
			cmd:  DecodeCmd{File: plain, Record: []string{testRecord}, DetectWidth: 2, Trim: true},
			want: `{"recordType":"01","line":"01Ian       00004250","fields":{"amount":"4250","kind":"01","name":"Ian"}}` + "\n",
		},
		{
			name: "raw",
			cmd:  DecodeCmd{File: plain, Record: []string{testRecord}, DetectWidth: 2},
			want: `{"recordType":"01","line":"01Ian       00004250","fields":{"amount":"00004250","kind":"01","name":"Ian       "}}` + "\n",
		},
		{
			name: "xz",
			cmd:  DecodeCmd{File: compressed, Record: []string{testRecord}, DetectWidth: 2, Trim: true},
			want: `{"recordType":"01","line":"01Ian       00004250","fields":{"amount":"4250","kind":"01","name":"Ian"}}` + "\n",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, tt.cmd.run(&out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestDecodeCmd_Errors(t *testing.T) {
	unknown := writeTestFile(t, "data.txt", []byte("02something\n"))

	var out bytes.Buffer
	cmd := DecodeCmd{File: unknown, Record: []string{testRecord}, DetectWidth: 2}
	err := cmd.run(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Empty(t, out.String())

	cmd = DecodeCmd{File: unknown, Record: []string{"01=kind"}, DetectWidth: 2}
	assert.Error(t, cmd.run(&out))
}

func TestEncodeCmd(t *testing.T) {
	input := `{"recordType":"01","fields":{"kind":"01","name":"Ian","amount":4250}}
{"recordType":"01","fields":{"kind":"01","name":"Lopshire","amount":"7"}}
`
	in := writeTestFile(t, "in.jsonl", []byte(input))
	want := testLine + "\n" + "01Lopshire  00000007"

	t.Run("plain", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.txt")
		cmd := EncodeCmd{File: in, Record: []string{testRecord}, Out: out}
		require.NoError(t, cmd.Run())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, want, string(data))
	})

	t.Run("xz with delimiter", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "out.txt.xz")
		cmd := EncodeCmd{File: in, Record: []string{testRecord}, Out: out, XZ: true, Delimiter: `\r\n`}
		require.NoError(t, cmd.Run())

		content, err := readFile(out)
		require.NoError(t, err)
		assert.Equal(t, testLine+"\r\n"+"01Lopshire  00000007", content)
	})

	t.Run("unknown record type", func(t *testing.T) {
		bad := writeTestFile(t, "bad.jsonl", []byte(`{"recordType":"99","fields":{}}`))
		cmd := EncodeCmd{File: bad, Record: []string{testRecord}, Out: filepath.Join(t.TempDir(), "out.txt")}
		err := cmd.Run()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record 1")
	})
}

// syncBuffer records how often the logger flushed it.
type syncBuffer struct {
	bytes.Buffer
	syncs int
}

func (b *syncBuffer) Sync() error {
	b.syncs++
	return nil
}

func TestExecute_VerboseFlushesOnFailure(t *testing.T) {
	logs := &syncBuffer{}
	orig := newVerboseLogger
	newVerboseLogger = func(...zap.Option) (*zap.Logger, error) {
		enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		return zap.New(zapcore.NewCore(enc, logs, zapcore.DebugLevel)), nil
	}
	t.Cleanup(func() { newVerboseLogger = orig })

	unknown := writeTestFile(t, "data.txt", []byte("02something\n"))
	var stdout, stderr bytes.Buffer
	parser, err := kong.New(&CLI, kong.Name("fixedlength"), kong.Writers(&stdout, &stderr))
	require.NoError(t, err)
	ctx, err := parser.Parse([]string{"decode", "--record", testRecord, unknown})
	require.NoError(t, err)

	err = execute(ctx, true)
	require.Error(t, err)
	assert.GreaterOrEqual(t, logs.syncs, 1)
	assert.Contains(t, logs.String(), "line detection failed")
	assert.Empty(t, stdout.String())
}
