// Package mzml writes gzip-compressed mzML placeholder documents and
// recognizes compressed instrument files.
package mzml

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// File extensions the pipeline accepts.
const (
	RawExt        = ".raw"
	CompressedExt = ".mzML.gz"
	MzmlExt       = ".mzML"
)

// gzipMagic is the two-byte gzip member header.
var gzipMagic = []byte{0x1f, 0x8b}

const placeholderTemplate = `<?xml version="1.0" encoding="utf-8"?>
<mzML xmlns="http://psi.hupo.org/ms/mzml" version="1.1.0">
  <run id="%s">
    <spectrumList count="0"/>
  </run>
</mzML>
`

// WritePlaceholder writes a gzip-compressed mzML document with an empty
// run named runID. The file is truncated if it exists.
func WritePlaceholder(path, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(runID)); err != nil {
		f.Close()
		return err
	}

	zw := gzip.NewWriter(f)
	zw.Name = strings.TrimSuffix(filepath.Base(path), ".gz")
	if _, err := fmt.Fprintf(zw, placeholderTemplate, escaped.String()); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finish %s: %w", path, err)
	}
	return f.Close()
}

// IsCompressed reports whether the file at path starts with the gzip magic.
func IsCompressed(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, len(gzipMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return false, nil
		}
		return false, err
	}
	return bytes.Equal(head, gzipMagic), nil
}

// RunID decompresses the mzML at path and returns the id attribute of its
// first <run> element.
func RunID(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	zr, err := gzip.NewReader(bufio.NewReader(f))
	if err != nil {
		return "", fmt.Errorf("open gzip %s: %w", path, err)
	}
	defer zr.Close()

	dec := xml.NewDecoder(zr)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return "", fmt.Errorf("%s: no run element", path)
		}
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", path, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "run" {
			continue
		}
		for _, attr := range se.Attr {
			if attr.Name.Local == "id" {
				return attr.Value, nil
			}
		}
		return "", nil
	}
}

// Stem strips a known instrument extension from a file name.
func Stem(name string) string {
	for _, ext := range []string{CompressedExt, MzmlExt, RawExt} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
