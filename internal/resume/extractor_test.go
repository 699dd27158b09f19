package resume_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"recruitai/internal/resume"
)

type stubDecoder struct {
	text string
	err  error
}

func (d stubDecoder) Decode(string, []byte) (string, error) {
	return d.text, d.err
}

type fakeGenerator struct {
	reply string
	err   error

	docCalls    int
	promptCalls int
	lastPrompt  string
}

func (g *fakeGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.promptCalls++
	g.lastPrompt = prompt
	return g.reply, g.err
}

func (g *fakeGenerator) GenerateWithDocument(_ context.Context, prompt, _ string, _ []byte) (string, error) {
	g.docCalls++
	g.lastPrompt = prompt
	return g.reply, g.err
}

func TestExtract_LocalTextAccepted(t *testing.T) {
	localText := strings.Repeat("resume content ", 10) // well over 50 chars
	gen := &fakeGenerator{}
	e := resume.NewExtractor(stubDecoder{text: localText}, gen, nil)

	result, err := e.Extract(context.Background(), "cv.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != resume.SourceLocal {
		t.Errorf("source = %q, want %q", result.Source, resume.SourceLocal)
	}
	if result.Text != strings.TrimSpace(localText) {
		t.Errorf("unexpected text: %q", result.Text)
	}
	if gen.docCalls != 0 {
		t.Errorf("fallback invoked %d times, want 0", gen.docCalls)
	}
}

func TestExtract_DecodeFailureTriggersFallbackOnce(t *testing.T) {
	ocrText := strings.Repeat("text recovered by OCR ", 5)
	gen := &fakeGenerator{reply: ocrText}
	e := resume.NewExtractor(stubDecoder{err: errors.New("corrupt pdf")}, gen, nil)

	result, err := e.Extract(context.Background(), "cv.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != resume.SourceExternal {
		t.Errorf("source = %q, want %q", result.Source, resume.SourceExternal)
	}
	if gen.docCalls != 1 {
		t.Errorf("fallback invoked %d times, want exactly 1", gen.docCalls)
	}
}

func TestExtract_ShortLocalTextStillFallsBack(t *testing.T) {
	// 49 characters decodes fine but is below the local-accept gate.
	gen := &fakeGenerator{reply: strings.Repeat("full text from the fallback ", 4)}
	e := resume.NewExtractor(stubDecoder{text: strings.Repeat("x", 49)}, gen, nil)

	result, err := e.Extract(context.Background(), "cv.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Source != resume.SourceExternal {
		t.Errorf("source = %q, want %q", result.Source, resume.SourceExternal)
	}
	if gen.docCalls != 1 {
		t.Errorf("fallback invoked %d times, want 1", gen.docCalls)
	}
}

func TestExtract_FallbackFailureIsExternalServiceError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	e := resume.NewExtractor(stubDecoder{err: errors.New("corrupt")}, gen, nil)

	_, err := e.Extract(context.Background(), "cv.pdf", []byte("raw"))
	var external *resume.ExternalServiceError
	if !errors.As(err, &external) {
		t.Fatalf("error = %v, want ExternalServiceError", err)
	}
}

func TestExtract_MissingGeneratorIsExternalServiceError(t *testing.T) {
	e := resume.NewExtractor(stubDecoder{err: errors.New("corrupt")}, nil, nil)

	_, err := e.Extract(context.Background(), "cv.pdf", []byte("raw"))
	var external *resume.ExternalServiceError
	if !errors.As(err, &external) {
		t.Fatalf("error = %v, want ExternalServiceError", err)
	}
}

func TestExtract_TinyFallbackTextIsInsufficient(t *testing.T) {
	gen := &fakeGenerator{reply: "short"}
	e := resume.NewExtractor(stubDecoder{err: errors.New("corrupt")}, gen, nil)

	_, err := e.Extract(context.Background(), "cv.pdf", []byte("raw"))
	var insufficient *resume.InsufficientTextError
	if !errors.As(err, &insufficient) {
		t.Fatalf("error = %v, want InsufficientTextError", err)
	}
	if insufficient.Length != len("short") {
		t.Errorf("Length = %d, want %d", insufficient.Length, len("short"))
	}
}
