package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rana718/tabqa/internal/types"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	CompressionNone = "none"
	CompressionZstd = "zstd"

	zstdSuffix = ".zst"
)

// Sink is a buffered corpus file, optionally zstd-compressed.
type Sink struct {
	// Path is the file actually written, with the .zst suffix when compressed.
	Path string

	file *os.File
	buf  *bufio.Writer
	enc  *zstd.Encoder
	w    io.Writer
}

// ValidCompression reports whether c names a supported codec.
func ValidCompression(c string) bool {
	switch c {
	case "", CompressionNone, CompressionZstd:
		return true
	}
	return false
}

// ResolvePath returns the file Create writes for path.
func ResolvePath(path, compression string) string {
	if compression == CompressionZstd && !strings.HasSuffix(path, zstdSuffix) {
		return path + zstdSuffix
	}
	return path
}

// Create truncates path and returns a sink for it. A .zst suffix implies
// zstd, and zstd output always gets the suffix.
func Create(path, compression string) (*Sink, error) {
	if !ValidCompression(compression) {
		return nil, types.ConfigurationError("create output", fmt.Errorf("unknown compression %q", compression))
	}
	path = ResolvePath(path, compression)
	compressed := strings.HasSuffix(path, zstdSuffix)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, types.IOError("create output", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, types.IOError("create output", path, err)
	}

	s := &Sink{Path: path, file: file, buf: bufio.NewWriterSize(file, 64*1024)}
	s.w = s.buf
	if compressed {
		enc, err := zstd.NewWriter(s.buf)
		if err != nil {
			file.Close()
			return nil, types.IOError("create output", path, err)
		}
		s.enc = enc
		s.w = enc
	}

	log.Debugf("writing %s (compressed: %v)", path, compressed)
	return s, nil
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes every layer before closing the file. The first error wins.
func (s *Sink) Close() error {
	var firstErr error
	if s.enc != nil {
		if err := s.enc.Close(); err != nil {
			firstErr = err
		}
	}
	if err := s.buf.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		return types.IOError("close output", s.Path, firstErr)
	}
	return nil
}

type zstdReadCloser struct {
	*zstd.Decoder
	file *os.File
}

func (r *zstdReadCloser) Close() error {
	r.Decoder.Close()
	return r.file.Close()
}

// Open reads a plain or .zst corpus.
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, types.IOError("open corpus", path, err)
	}
	if !strings.HasSuffix(path, zstdSuffix) {
		return file, nil
	}

	dec, err := zstd.NewReader(file)
	if err != nil {
		file.Close()
		return nil, types.IOError("open corpus", path, fmt.Errorf("failed to create zstd reader: %w", err))
	}
	return &zstdReadCloser{Decoder: dec, file: file}, nil
}

// WriteProfile stores report as YAML for .yaml/.yml paths and as indented
// JSON otherwise.
func WriteProfile(report interface{}, path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(report)
	default:
		data, err = json.MarshalIndent(report, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return types.IOError("write profile", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return types.IOError("write profile", path, err)
	}
	return nil
}
