// Command fixedlength decodes fixed-length files into JSON lines and encodes
// JSON lines back into fixed-length files.
//
// Record layouts are given on the command line:
//
//	fixedlength decode --record 01=kind:2,name:10,amount:8:right:0 data.txt
package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
	"go.uber.org/zap"

	"github.com/wallaceicy06/go-fixedlength"
)

// CLI defines the command-line interface.
var CLI struct {
	Verbose bool `short:"v" help:"Log decoding and encoding details to stderr"`

	Decode DecodeCmd `cmd:"" help:"Decode a fixed-length file into JSON lines"`
	Encode EncodeCmd `cmd:"" help:"Encode JSON lines into a fixed-length file"`
}

// DecodeCmd decodes a fixed-length file.
type DecodeCmd struct {
	File        string   `arg:"" help:"File to decode, xz-compressed if it ends in .xz" type:"existingfile"`
	Record      []string `short:"r" required:"" sep:"none" help:"Record layout ID=field:size[:align[:pad]],... (repeatable)"`
	DetectWidth int      `default:"2" help:"Number of leading characters holding the record type id"`
	Codepoints  bool     `help:"Count sizes in UTF-8 codepoints instead of bytes"`
	Trim        bool     `help:"Strip pad characters from decoded values"`
}

// EncodeCmd encodes JSON lines into a fixed-length file.
type EncodeCmd struct {
	File       string   `arg:"" help:"JSON lines to encode, xz-compressed if it ends in .xz" type:"existingfile"`
	Record     []string `short:"r" required:"" sep:"none" help:"Record layout ID=field:size[:align[:pad]],... (repeatable)"`
	Out        string   `short:"o" required:"" help:"Output file" type:"path"`
	XZ         bool     `name:"xz" help:"Compress the output with xz"`
	Delimiter  string   `help:"Line delimiter, Go string escapes allowed (default newline)"`
	Codepoints bool     `help:"Count sizes in UTF-8 codepoints instead of bytes"`
}

// decodedRecord is the JSON form of a decoded line.
type decodedRecord struct {
	RecordType string                 `json:"recordType"`
	Line       string                 `json:"line,omitempty"`
	Fields     map[string]interface{} `json:"fields"`
}

func (c *DecodeCmd) Run(ctx *kong.Context) error {
	return c.run(ctx.Stdout)
}

func (c *DecodeCmd) run(out io.Writer) error {
	types, err := parseRecordTypes(c.Record)
	if err != nil {
		return err
	}
	content, err := readFile(c.File)
	if err != nil {
		return err
	}

	r := fixedlength.NewReader()
	if err := r.SetRecordTypes(types...); err != nil {
		return err
	}
	r.SetUseCodepointIndices(c.Codepoints)
	r.SetRecordTypeDetector(fixedlength.PrefixDetector(c.DetectWidth))
	if c.Trim {
		r.SetFieldTransform(fixedlength.Trim)
	}

	records, err := r.DecodeFile(content)
	if err != nil {
		return errors.Wrapf(err, "decode %s", c.File)
	}
	enc := json.NewEncoder(out)
	for _, rec := range records {
		if err := enc.Encode(decodedRecord{
			RecordType: rec.RecordType(),
			Line:       rec.Line(),
			Fields:     rec.Values(),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *EncodeCmd) Run() error {
	types, err := parseRecordTypes(c.Record)
	if err != nil {
		return err
	}
	content, err := readFile(c.File)
	if err != nil {
		return err
	}

	w := fixedlength.NewWriter()
	if err := w.SetRecordTypes(types...); err != nil {
		return err
	}
	w.SetUseCodepointIndices(c.Codepoints)
	if c.Delimiter != "" {
		delimiter, err := strconv.Unquote(`"` + c.Delimiter + `"`)
		if err != nil {
			return errors.Wrapf(err, "delimiter %q", c.Delimiter)
		}
		w.SetLineDelimiter(delimiter)
	}
	w.SetFieldTransform(fixedlength.Pad)

	if err := encodeJSONLines(w, content); err != nil {
		return errors.Wrapf(err, "encode %s", c.File)
	}

	var sink fixedlength.Sink = fixedlength.FileSink{}
	if c.XZ {
		sink = fixedlength.XZFileSink{}
	}
	return w.WriteToStorage(sink, c.Out)
}

// encodeJSONLines encodes one line per decodedRecord object in content.
func encodeJSONLines(w *fixedlength.Writer, content string) error {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	for n := 1; ; n++ {
		var rec decodedRecord
		if err := dec.Decode(&rec); err == io.EOF {
			return nil
		} else if err != nil {
			return errors.Wrapf(err, "record %d", n)
		}
		if _, err := w.EncodeLine(rec.RecordType, rec.Fields); err != nil {
			return errors.Wrapf(err, "record %d", n)
		}
	}
}

// readFile reads a whole file, decompressing .xz files.
func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if filepath.Ext(path) == ".xz" {
		if r, err = xz.NewReader(f); err != nil {
			return "", errors.Wrapf(err, "open xz stream %s", path)
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	return string(data), nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("fixedlength"),
		kong.Description("Decode and encode fixed-length flat files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.FatalIfErrorf(execute(ctx, CLI.Verbose))
}

// newVerboseLogger builds the logger installed by --verbose.
var newVerboseLogger = zap.NewDevelopment

// execute runs the selected command. The verbose logger is flushed before
// returning so its output survives a failing command.
func execute(ctx *kong.Context, verbose bool) error {
	if !verbose {
		return ctx.Run(ctx)
	}
	l, err := newVerboseLogger()
	if err != nil {
		return err
	}
	fixedlength.SetLogger(l)
	defer func() {
		_ = l.Sync()
		fixedlength.SetLogger(nil)
	}()
	return ctx.Run(ctx)
}
