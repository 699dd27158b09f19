package resume_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"recruitai/internal/resume"
	"recruitai/internal/storage"
)

type fakeStore struct {
	candidates map[string]*storage.Candidate

	updatedFields map[string]storage.ParsedFields
	updatedStatus map[string]string
	updateErr     error
}

func newFakeStore(candidates ...*storage.Candidate) *fakeStore {
	s := &fakeStore{
		candidates:    map[string]*storage.Candidate{},
		updatedFields: map[string]storage.ParsedFields{},
		updatedStatus: map[string]string{},
	}
	for _, c := range candidates {
		s.candidates[c.ID] = c
	}
	return s
}

func (s *fakeStore) GetCandidate(_ context.Context, id string) (*storage.Candidate, error) {
	c, ok := s.candidates[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeStore) UpdateParsedFields(_ context.Context, id string, fields storage.ParsedFields, _ time.Time) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedFields[id] = fields
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id, status string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedStatus[id] = status
	return nil
}

func writeResume(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPipeline_ParsePersistsSanitizedFields(t *testing.T) {
	dir := t.TempDir()
	writeResume(t, dir, "cv.txt",
		"Senior engineer with 5 years of experience with React and MongoDB. Master of Science in Engineering.")

	store := newFakeStore(&storage.Candidate{ID: "c1", Resume: "cv.txt", Status: storage.StatusPending})
	extractor := resume.NewExtractor(resume.LocalDecoder{}, nil, nil)
	p := resume.NewPipeline(store, extractor, resume.KeywordStrategy{}, dir, nil)

	parsed, candidate, err := p.Parse(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if parsed.Experience != "5" {
		t.Errorf("experience = %q, want %q", parsed.Experience, "5")
	}
	if candidate.Status != storage.StatusParsed {
		t.Errorf("status = %q, want %q", candidate.Status, storage.StatusParsed)
	}
	if candidate.ParsedAt == nil {
		t.Error("parsedAt not set")
	}
	if got, ok := store.updatedFields["c1"]; !ok {
		t.Error("parsed fields not persisted")
	} else if got.Experience != "5" {
		t.Errorf("persisted experience = %q, want %q", got.Experience, "5")
	}
}

func TestPipeline_ParseUnknownCandidate(t *testing.T) {
	store := newFakeStore()
	extractor := resume.NewExtractor(resume.LocalDecoder{}, nil, nil)
	p := resume.NewPipeline(store, extractor, resume.KeywordStrategy{}, t.TempDir(), nil)

	_, _, err := p.Parse(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestPipeline_ParseMissingFile(t *testing.T) {
	store := newFakeStore(&storage.Candidate{ID: "c1", Resume: "gone.pdf"})
	extractor := resume.NewExtractor(resume.LocalDecoder{}, nil, nil)
	p := resume.NewPipeline(store, extractor, resume.KeywordStrategy{}, t.TempDir(), nil)

	_, _, err := p.Parse(context.Background(), "c1")
	if !errors.Is(err, resume.ErrFileMissing) {
		t.Fatalf("error = %v, want ErrFileMissing", err)
	}
}

type failingStrategy struct{}

func (failingStrategy) Name() string { return "failing" }

func (failingStrategy) ExtractFields(context.Context, string) (storage.ParsedFields, error) {
	return storage.ParsedFields{}, &resume.AIResponseFormatError{Raw: "???", Err: errors.New("bad json")}
}

func TestPipeline_FailedExtractionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeResume(t, dir, "cv.txt",
		"Long enough resume text to pass the local extraction threshold without any trouble.")

	store := newFakeStore(&storage.Candidate{ID: "c1", Resume: "cv.txt"})
	extractor := resume.NewExtractor(resume.LocalDecoder{}, nil, nil)
	p := resume.NewPipeline(store, extractor, failingStrategy{}, dir, nil)

	_, _, err := p.Parse(context.Background(), "c1")
	var formatErr *resume.AIResponseFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("error = %v, want AIResponseFormatError", err)
	}
	if len(store.updatedFields) != 0 {
		t.Error("fields were persisted despite extraction failure")
	}
}

func TestPipeline_QueueBatch(t *testing.T) {
	store := newFakeStore(
		&storage.Candidate{ID: "a", Resume: "a.pdf"},
		&storage.Candidate{ID: "b", Resume: "b.pdf"},
	)
	extractor := resume.NewExtractor(resume.LocalDecoder{}, nil, nil)
	p := resume.NewPipeline(store, extractor, resume.KeywordStrategy{}, t.TempDir(), nil)

	results, errs := p.QueueBatch(context.Background(), []string{"a", "missing", "b"})

	if len(results) != 2 {
		t.Errorf("results = %v, want 2 entries", results)
	}
	if len(errs) != 1 || errs[0].ID != "missing" {
		t.Errorf("errors = %v, want single entry for %q", errs, "missing")
	}
	if store.updatedStatus["a"] != storage.StatusQueued || store.updatedStatus["b"] != storage.StatusQueued {
		t.Errorf("statuses = %v, want both queued", store.updatedStatus)
	}
}
