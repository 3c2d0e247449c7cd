package scanner

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ralt/wpkgedit/internal/docio"
)

// Magic bytes of the supported compressions
var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	xzMagic   = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}
)

// DocumentExt is the extension of a package document before compression
const DocumentExt = ".xml"

// DetectDocument reports whether path names a package document and returns
// its compression. The extension selects candidates; the content must agree
// with it.
func DetectDocument(path string) (docio.Compression, bool, error) {
	c := docio.CompressionFor(path)
	name := strings.ToLower(filepath.Base(path))
	if c != docio.None {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if filepath.Ext(name) != DocumentExt {
		return docio.None, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return docio.None, false, err
	}
	defer f.Close()

	header := make([]byte, 512)
	n, err := f.Read(header)
	if err != nil && n == 0 {
		return docio.None, false, err
	}
	header = header[:n]

	if found := compressionOf(header); found != c {
		return docio.None, false, fmt.Errorf("content is %s compressed but the name says %s", found, c)
	}
	return c, true, nil
}

func compressionOf(header []byte) docio.Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic):
		return docio.Gzip
	case bytes.HasPrefix(header, zstdMagic):
		return docio.Zstd
	case bytes.HasPrefix(header, xzMagic):
		return docio.XZ
	default:
		return docio.None
	}
}
