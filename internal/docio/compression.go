package docio

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// Compression identifies how a document file is compressed
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	XZ
)

// String returns the file extension of the compression, without the dot
func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gz"
	case Zstd:
		return "zst"
	case XZ:
		return "xz"
	default:
		return "none"
	}
}

// CompressionFor picks the compression from the file extension
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst":
		return Zstd
	case ".xz":
		return XZ
	default:
		return None
	}
}

// Decompress returns the uncompressed bytes of data
func Decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case Gzip:
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case Zstd:
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case XZ:
		r, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(r)
	default:
		return data, nil
	}
}

// Compress returns data compressed with c
func Compress(c Compression, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	var w io.WriteCloser
	var err error

	switch c {
	case Gzip:
		w = gzip.NewWriter(&buf)
	case Zstd:
		w, err = zstd.NewWriter(&buf)
	case XZ:
		w, err = xz.NewWriter(&buf)
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
