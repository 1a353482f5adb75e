package fixedlength

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// A Sink persists generated content.
type Sink interface {
	Store(dest string, content []byte) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(dest string, content []byte) error

func (f SinkFunc) Store(dest string, content []byte) error {
	return f(dest, content)
}

// FileSink writes content to the file named by dest, truncating it.
type FileSink struct {
	// Perm is the mode used to create missing files; 0644 if zero.
	Perm os.FileMode
}

func (s FileSink) Store(dest string, content []byte) error {
	return os.WriteFile(dest, content, s.perm())
}

func (s FileSink) perm() os.FileMode {
	if s.Perm == 0 {
		return 0o644
	}
	return s.Perm
}

// XZFileSink writes content xz-compressed to the file named by dest.
type XZFileSink struct {
	Perm os.FileMode
}

func (s XZFileSink) Store(dest string, content []byte) error {
	var buf bytes.Buffer
	zw, err := xz.NewWriter(&buf)
	if err != nil {
		return errors.Wrap(err, "create xz writer")
	}
	if _, err := zw.Write(content); err != nil {
		return errors.Wrap(err, "compress")
	}
	if err := zw.Close(); err != nil {
		return errors.Wrap(err, "close xz writer")
	}
	return FileSink{Perm: s.Perm}.Store(dest, buf.Bytes())
}
