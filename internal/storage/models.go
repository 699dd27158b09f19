package storage

import "time"

// Candidate statuses. Transitions are monotonic (Pending/Queued -> Parsed);
// re-parsing an already Parsed candidate is allowed.
const (
	StatusPending = "Pending"
	StatusQueued  = "Queued"
	StatusParsed  = "Parsed"
)

// Candidate is a resume record plus fields derived by the parsing pipeline.
// Skills/Experience/Education are only ever written together with status and
// parsed_at in a single statement.
type Candidate struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Resume     string    `json:"resume"` // stored filename under the uploads dir
	UploadedAt time.Time `json:"uploadedAt"`

	Status     string     `json:"status"`
	Skills     []string   `json:"skills"`
	Experience string     `json:"experience"`
	Education  string     `json:"education"`
	ParsedAt   *time.Time `json:"parsedAt,omitempty"`

	// MatchScore is derived and recomputed on each ranking request.
	MatchScore int `json:"matchScore"`

	Verification *Verification `json:"verification,omitempty"`
}

// Verification records the outcome of a certificate anchoring.
type Verification struct {
	Status     string    `json:"status"`
	Hash       string    `json:"hash"`
	Date       time.Time `json:"date"`
	VerifiedBy string    `json:"verifiedBy"`
}

// User is an authenticated recruiter account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ParsedFields is the sanitized output of field extraction, persisted
// atomically onto a candidate.
type ParsedFields struct {
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Education  string   `json:"education"`
}

// WeeklyCount is an upload count bucketed by week start date.
type WeeklyCount struct {
	WeekStart time.Time `json:"weekStart"`
	Count     int       `json:"count"`
}
