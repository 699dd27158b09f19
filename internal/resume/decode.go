package resume

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// DocumentDecoder produces plain text from raw document bytes. Decoding is
// CPU-bound and never talks to the network.
type DocumentDecoder interface {
	Decode(filename string, data []byte) (string, error)
}

// LocalDecoder decodes PDF and DOCX in-process and hands legacy office formats
// to docconv.
type LocalDecoder struct{}

func (LocalDecoder) Decode(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return string(data), nil
	case ".pdf":
		return decodePDF(data)
	case ".docx":
		return decodeDocx(data)
	case ".doc", ".rtf", ".odt":
		res, err := docconv.Convert(bytes.NewReader(data), docconv.MimeTypeByExtension(filename), true)
		if err != nil {
			return "", fmt.Errorf("convert document: %w", err)
		}
		return res.Body, nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}
}

func decodePDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var textBuilder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		textBuilder.WriteString(text)
	}
	return textBuilder.String(), nil
}

func decodeDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
