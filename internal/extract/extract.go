// Package extract converts uploaded documents into plain text for the
// ingestion pipeline. Extraction is local and in-process, keyed by the
// declared MIME type with content sniffing as a fallback.
package extract

import (
	"fmt"
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	mimePDF   = "application/pdf"
	mimeDoc   = "application/msword"
	mimeDocx  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePlain = "text/plain"
)

// UnsupportedFileTypeError is returned when the document type matches
// none of the supported extractors.
type UnsupportedFileTypeError struct {
	MIME string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q (supported: pdf, word, plain text)", e.MIME)
}

// EmptyExtractionError is returned when extraction produced only whitespace
type EmptyExtractionError struct {
	MIME string
}

func (e *EmptyExtractionError) Error() string {
	return fmt.Sprintf("document of type %q contained no extractable text", e.MIME)
}

// Text extracts plain text from the document. declaredType is the MIME
// type the uploader claims; when it is empty or generic the content is
// sniffed instead.
func Text(data []byte, declaredType string) (string, error) {
	mt := normalizeMIME(declaredType)
	if mt == "" || mt == "application/octet-stream" {
		mt = sniff(data)
	}

	var (
		text string
		err  error
	)
	switch mt {
	case mimePDF:
		text, err = pdfText(data)
	case mimeDoc, mimeDocx:
		text, err = wordText(data)
	case mimePlain:
		text = string(data)
	default:
		return "", &UnsupportedFileTypeError{MIME: mt}
	}
	if err != nil {
		return "", fmt.Errorf("extract %s text: %w", mt, err)
	}

	text = Clean(text)
	if strings.TrimSpace(text) == "" {
		return "", &EmptyExtractionError{MIME: mt}
	}
	return text, nil
}

// normalizeMIME drops parameters like "; charset=utf-8" and lowercases
func normalizeMIME(declared string) string {
	if declared == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(declared))
	}
	return mt
}

func sniff(data []byte) string {
	detected := mimetype.Detect(data)
	if detected.Is(mimePlain) || strings.HasPrefix(detected.String(), "text/") {
		return mimePlain
	}
	mt, _, err := mime.ParseMediaType(detected.String())
	if err != nil {
		return detected.String()
	}
	return mt
}
