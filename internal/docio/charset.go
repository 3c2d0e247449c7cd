package docio

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

var encodingPattern = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([^"']+)["']`)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// DeclaredEncoding returns the encoding named in the XML declaration, or ""
func DeclaredEncoding(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(data) > 256 {
		data = data[:256]
	}
	if m := encodingPattern.FindSubmatch(data); m != nil {
		return strings.ToLower(string(m[1]))
	}
	return ""
}

// lookupEncoding returns nil for UTF-8, which needs no transcoding
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch name {
	case "", "utf-8", "utf8":
		return nil, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// Decode converts raw document bytes to text using the declared encoding
func Decode(data []byte) (string, error) {
	enc, err := lookupEncoding(DeclaredEncoding(data))
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode document: %w", err)
	}
	return string(out), nil
}

// Encode converts text to bytes in the encoding its declaration names.
// Characters the encoding cannot represent are an error.
func Encode(text string) ([]byte, error) {
	enc, err := lookupEncoding(DeclaredEncoding([]byte(text)))
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return []byte(text), nil
	}

	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return out, nil
}
