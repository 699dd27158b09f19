package resume

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"recruitai/internal/storage"

	"go.uber.org/zap"
)

// Store is the persistence collaborator the pipeline needs. *storage.DB
// satisfies it.
type Store interface {
	GetCandidate(ctx context.Context, id string) (*storage.Candidate, error)
	UpdateParsedFields(ctx context.Context, id string, fields storage.ParsedFields, parsedAt time.Time) error
	UpdateStatus(ctx context.Context, id, status string) error
}

// Pipeline composes text extraction, field extraction and persistence for a
// single candidate. Extracted fields are written atomically together with the
// Parsed status; any stage failure leaves the stored fields untouched.
type Pipeline struct {
	store      Store
	extractor  *Extractor
	strategy   FieldExtractionStrategy
	uploadsDir string
	logger     *zap.Logger
	now        func() time.Time
}

func NewPipeline(store Store, extractor *Extractor, strategy FieldExtractionStrategy, uploadsDir string, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		store:      store,
		extractor:  extractor,
		strategy:   strategy,
		uploadsDir: uploadsDir,
		logger:     log,
		now:        time.Now,
	}
}

// Parse runs the full extraction pipeline for one candidate and persists the
// sanitized fields. Re-parsing an already parsed candidate is allowed.
func (p *Pipeline) Parse(ctx context.Context, candidateID string) (storage.ParsedFields, *storage.Candidate, error) {
	var empty storage.ParsedFields

	candidate, err := p.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return empty, nil, err
	}

	path := filepath.Join(p.uploadsDir, candidate.Resume)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return empty, nil, ErrFileMissing
		}
		return empty, nil, fmt.Errorf("read resume file: %w", err)
	}

	result, err := p.extractor.Extract(ctx, candidate.Resume, data)
	if err != nil {
		return empty, nil, err
	}

	p.logger.Info("resume text extracted",
		zap.String("candidate_id", candidateID),
		zap.String("source", result.Source),
		zap.Int("text_length", len(result.Text)))

	fields, err := p.strategy.ExtractFields(ctx, result.Text)
	if err != nil {
		return empty, nil, err
	}
	fields = SanitizeFields(fields)

	parsedAt := p.now()
	if err := p.store.UpdateParsedFields(ctx, candidateID, fields, parsedAt); err != nil {
		return empty, nil, fmt.Errorf("persist parsed fields: %w", err)
	}

	candidate.Skills = fields.Skills
	candidate.Experience = fields.Experience
	candidate.Education = fields.Education
	candidate.Status = storage.StatusParsed
	candidate.ParsedAt = &parsedAt

	return fields, candidate, nil
}

// BatchResult reports the outcome for one candidate of a batch request.
type BatchResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// BatchError reports a per-candidate failure; a failing candidate never aborts
// the rest of the batch.
type BatchError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// QueueBatch marks each candidate as queued for parsing. No background worker
// exists; actual parsing happens when the single-parse endpoint is called.
func (p *Pipeline) QueueBatch(ctx context.Context, candidateIDs []string) ([]BatchResult, []BatchError) {
	results := []BatchResult{}
	errs := []BatchError{}

	for _, id := range candidateIDs {
		if _, err := p.store.GetCandidate(ctx, id); err != nil {
			msg := err.Error()
			if errors.Is(err, storage.ErrNotFound) {
				msg = "Candidate not found"
			}
			errs = append(errs, BatchError{ID: id, Error: msg})
			continue
		}
		if err := p.store.UpdateStatus(ctx, id, storage.StatusQueued); err != nil {
			errs = append(errs, BatchError{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, BatchResult{ID: id, Status: storage.StatusQueued})
	}

	return results, errs
}
