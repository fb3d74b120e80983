package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// wordText extracts raw text from a Word document. Modern .docx files
// are zip archives carrying word/document.xml; legacy .doc binaries
// fall back to a printable-run scan.
func wordText(data []byte) (string, error) {
	if text, err := docxText(data); err == nil {
		return text, nil
	} else if !strings.Contains(err.Error(), "not a valid zip") && !strings.Contains(err.Error(), "zip:") {
		return "", err
	}
	return legacyDocText(data), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("zip: %w", err)
	}

	var doc *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("zip: word/document.xml missing")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	// Collect character data, breaking lines at paragraph ends so the
	// structure the menu relies on (one entry per line) survives.
	var b strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" {
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}

// legacyDocText pulls printable character runs out of an OLE .doc
// binary. Crude, but menu text survives well enough for structuring.
func legacyDocText(data []byte) string {
	var b strings.Builder
	var run []rune
	flush := func() {
		if len(run) >= 4 {
			b.WriteString(string(run))
			b.WriteString("\n")
		}
		run = run[:0]
	}
	for _, r := range string(data) {
		if unicode.IsPrint(r) && r != unicode.ReplacementChar {
			run = append(run, r)
			continue
		}
		flush()
	}
	flush()
	return b.String()
}
