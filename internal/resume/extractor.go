package resume

import (
	"context"
	"errors"
	"strings"

	"code.sajari.com/docconv"
	"go.uber.org/zap"
)

// Extraction sources.
const (
	SourceLocal    = "local"
	SourceExternal = "external-fallback"
)

const (
	// localAcceptMin is the "probably got real text" gate: shorter local
	// extractions still trigger the fallback attempt.
	localAcceptMin = 50

	// minUsableText is the terminal gate after both attempts.
	minUsableText = 20

	ocrPrompt = "Extract all text from this document. Return only the text content."
)

// Generator is the external text-generation collaborator.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	GenerateWithDocument(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// ExtractionResult is produced once per parse request and consumed immediately.
type ExtractionResult struct {
	Text   string
	Source string
}

// Extractor turns raw document bytes into plain text, trying the local decoder
// first and an OCR-style external call second.
type Extractor struct {
	decoder DocumentDecoder
	ai      Generator
	logger  *zap.Logger
}

func NewExtractor(decoder DocumentDecoder, ai Generator, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{decoder: decoder, ai: ai, logger: logger}
}

// Extract returns best-effort plain text for the document. Local decode
// failures are recovered via the fallback and never surfaced; a failed
// fallback call is an ExternalServiceError, and a final result shorter than
// minUsableText is an InsufficientTextError.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (*ExtractionResult, error) {
	text, err := e.decoder.Decode(filename, data)
	if err != nil {
		e.logger.Warn("local decode failed, using OCR fallback",
			zap.String("filename", filename), zap.Error(err))
	}

	text = strings.TrimSpace(text)
	if err == nil && len(text) >= localAcceptMin {
		return &ExtractionResult{Text: text, Source: SourceLocal}, nil
	}

	if e.ai == nil {
		return nil, &ExternalServiceError{Err: errors.New("no external text service configured")}
	}

	e.logger.Info("using OCR fallback for resume extraction",
		zap.String("filename", filename), zap.Int("local_text_length", len(text)))

	reply, err := e.ai.GenerateWithDocument(ctx, ocrPrompt, docconv.MimeTypeByExtension(filename), data)
	if err != nil {
		return nil, &ExternalServiceError{Err: err}
	}

	text = strings.TrimSpace(reply)
	if len(text) < minUsableText {
		return nil, &InsufficientTextError{Length: len(text)}
	}

	return &ExtractionResult{Text: text, Source: SourceExternal}, nil
}
