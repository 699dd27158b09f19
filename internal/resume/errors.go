package resume

import (
	"errors"
	"fmt"
)

// ErrFileMissing indicates the candidate record references a resume file that
// is not present in the uploads directory.
var ErrFileMissing = errors.New("resume file not found")

// ExternalServiceError wraps a failed, timed-out or malformed external
// text-generation call. The caller may retry the whole request; the pipeline
// never retries on its own.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external text service: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// InsufficientTextError indicates both extraction attempts yielded unusable
// text. Length carries the partial text length for diagnosis.
type InsufficientTextError struct {
	Length int
}

func (e *InsufficientTextError) Error() string {
	return fmt.Sprintf("could not extract usable text from resume (got %d characters)", e.Length)
}

// AIResponseFormatError indicates the model reply could not be recovered as a
// well-formed JSON object. Raw holds the offending reply truncated for
// diagnosis.
type AIResponseFormatError struct {
	Raw string
	Err error
}

func (e *AIResponseFormatError) Error() string {
	return fmt.Sprintf("ai reply is not valid json: %v", e.Err)
}

func (e *AIResponseFormatError) Unwrap() error { return e.Err }
