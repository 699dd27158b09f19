package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// ErrNotFound is returned when a candidate or user does not exist.
var ErrNotFound = errors.New("not found")

type DB struct {
	connection *sql.DB
}

func NewDB(dataSourceName string) (*DB, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &DB{connection: db}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// GetConnection returns the underlying database connection for advanced queries.
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

const candidateColumns = `id, name, email, resume, uploaded_at, status, skills, experience, education,
	parsed_at, match_score, verification_status, verification_hash, verified_at, verified_by`

func (db *DB) scanCandidate(row interface{ Scan(...interface{}) error }) (*Candidate, error) {
	c := &Candidate{}
	var skills string
	var parsedAt, verifiedAt sql.NullTime
	var verStatus, verHash, verBy sql.NullString

	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Resume, &c.UploadedAt, &c.Status,
		&skills, &c.Experience, &c.Education, &parsedAt, &c.MatchScore,
		&verStatus, &verHash, &verifiedAt, &verBy)
	if err != nil {
		return nil, err
	}

	if skills != "" {
		c.Skills = splitAndTrim(skills)
	} else {
		c.Skills = []string{}
	}
	if parsedAt.Valid {
		t := parsedAt.Time
		c.ParsedAt = &t
	}
	if verStatus.Valid && verStatus.String != "" {
		c.Verification = &Verification{
			Status:     verStatus.String,
			Hash:       verHash.String,
			VerifiedBy: verBy.String,
		}
		if verifiedAt.Valid {
			c.Verification.Date = verifiedAt.Time
		}
	}
	return c, nil
}

func (db *DB) InsertCandidate(ctx context.Context, c *Candidate) error {
	query := `INSERT INTO candidates (id, name, email, resume, uploaded_at, status, skills, experience, education, match_score)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := db.connection.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Resume, c.UploadedAt, c.Status,
		strings.Join(c.Skills, ","), c.Experience, c.Education, c.MatchScore,
	)
	return err
}

func (db *DB) GetCandidate(ctx context.Context, id string) (*Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1`, candidateColumns)
	c, err := db.scanCandidate(db.connection.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

// CandidateExists checks if a candidate with the given email already exists.
func (db *DB) CandidateExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM candidates WHERE email = $1)`
	err := db.connection.QueryRowContext(ctx, query, email).Scan(&exists)
	return exists, err
}

// ListCandidates returns a page of candidates ordered by upload time, newest first.
func (db *DB) ListCandidates(ctx context.Context, page, limit int) ([]*Candidate, error) {
	if page < 1 {
		page = 1
	}
	query := fmt.Sprintf(`SELECT %s FROM candidates ORDER BY uploaded_at DESC LIMIT $1 OFFSET $2`, candidateColumns)
	return db.queryCandidates(ctx, query, limit, (page-1)*limit)
}

// AllCandidates returns every candidate. Ranking operates on the full pool.
func (db *DB) AllCandidates(ctx context.Context) ([]*Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates ORDER BY uploaded_at DESC`, candidateColumns)
	return db.queryCandidates(ctx, query)
}

// TopCandidates returns candidates ordered by match score, best first.
func (db *DB) TopCandidates(ctx context.Context, limit int) ([]*Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates ORDER BY match_score DESC LIMIT $1`, candidateColumns)
	return db.queryCandidates(ctx, query, limit)
}

func (db *DB) queryCandidates(ctx context.Context, query string, args ...interface{}) ([]*Candidate, error) {
	rows, err := db.connection.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*Candidate
	for rows.Next() {
		c, err := db.scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (db *DB) CountCandidates(ctx context.Context) (int, error) {
	var n int
	err := db.connection.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n)
	return n, err
}

func (db *DB) DeleteCandidate(ctx context.Context, id string) error {
	res, err := db.connection.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateParsedFields overwrites the extracted fields, status and parsed_at in a
// single statement so a failed parse can never leave the candidate half-written.
func (db *DB) UpdateParsedFields(ctx context.Context, id string, fields ParsedFields, parsedAt time.Time) error {
	query := `UPDATE candidates
	          SET skills = $2, experience = $3, education = $4, status = $5, parsed_at = $6
	          WHERE id = $1`
	res, err := db.connection.ExecContext(ctx, query,
		id, strings.Join(fields.Skills, ","), fields.Experience, fields.Education,
		StatusParsed, parsedAt,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := db.connection.ExecContext(ctx, `UPDATE candidates SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) UpdateMatchScore(ctx context.Context, id string, score int) error {
	res, err := db.connection.ExecContext(ctx, `UPDATE candidates SET match_score = $2 WHERE id = $1`, id, score)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) UpdateVerification(ctx context.Context, id string, v Verification) error {
	query := `UPDATE candidates
	          SET verification_status = $2, verification_hash = $3, verified_at = $4, verified_by = $5
	          WHERE id = $1`
	res, err := db.connection.ExecContext(ctx, query, id, v.Status, v.Hash, v.Date, v.VerifiedBy)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- dashboard queries ----

func (db *DB) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := db.connection.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (db *DB) CountVerified(ctx context.Context) (int, error) {
	var n int
	err := db.connection.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates WHERE verification_status = 'Verified'`).Scan(&n)
	return n, err
}

func (db *DB) CountUploadedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := db.connection.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM candidates WHERE uploaded_at >= $1`, since).Scan(&n)
	return n, err
}

func (db *DB) AverageMatchScore(ctx context.Context) (int, error) {
	var avg sql.NullFloat64
	err := db.connection.QueryRowContext(ctx,
		`SELECT AVG(match_score) FROM candidates WHERE match_score > 0`).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return int(avg.Float64 + 0.5), nil
}

// WeeklyUploadCounts buckets uploads by week start for the trailing n weeks.
func (db *DB) WeeklyUploadCounts(ctx context.Context, weeks int) ([]WeeklyCount, error) {
	query := `SELECT date_trunc('week', uploaded_at)::date AS week_start, COUNT(*)
	          FROM candidates
	          WHERE uploaded_at >= NOW() - ($1 * INTERVAL '1 week')
	          GROUP BY week_start
	          ORDER BY week_start`
	rows, err := db.connection.QueryContext(ctx, query, weeks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []WeeklyCount
	for rows.Next() {
		var wc WeeklyCount
		if err := rows.Scan(&wc.WeekStart, &wc.Count); err != nil {
			return nil, err
		}
		res = append(res, wc)
	}
	return res, rows.Err()
}

// ---- users ----

func (db *DB) CreateUser(ctx context.Context, u *User) error {
	query := `INSERT INTO users (id, name, email, password_hash, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := db.connection.ExecContext(ctx, query, u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
	return err
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	query := `SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`
	err := db.connection.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (db *DB) UserExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.connection.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// helper to split comma-separated skills
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
