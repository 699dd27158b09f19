package ranking

import (
	"context"
)

// ScoreStore persists computed match scores. *storage.DB satisfies it.
type ScoreStore interface {
	UpdateMatchScore(ctx context.Context, id string, score int) error
}

// ApplyError reports a failed score write for one candidate.
type ApplyError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// ApplyScores writes every ranked candidate's match score through to the
// store. Ranking is best-effort: a failed write is collected per candidate and
// does not abort the remaining writes.
func ApplyScores(ctx context.Context, store ScoreStore, ranked []RankedCandidate) []ApplyError {
	var errs []ApplyError
	for _, rc := range ranked {
		if err := store.UpdateMatchScore(ctx, rc.ID, rc.MatchScore); err != nil {
			errs = append(errs, ApplyError{ID: rc.ID, Error: err.Error()})
		}
		rc.Candidate.MatchScore = rc.MatchScore
	}
	return errs
}
