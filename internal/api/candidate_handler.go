package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"recruitai/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadResumeHandler stores the resume file and creates the candidate record.
// @Summary Upload resume
// @Description Upload a resume file (PDF/DOC/DOCX/TXT) and register the candidate
// @Tags resume
// @Accept multipart/form-data
// @Produce json
// @Param resume formData file true "Resume file"
// @Param name formData string true "Candidate name"
// @Param email formData string true "Candidate email"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /resume/upload [post]
func (a *API) UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "file too large or invalid (max 10MB)")
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if name == "" || email == "" {
		writeMessage(w, http.StatusBadRequest, "Name and Email are required")
		return
	}
	if !emailPattern.MatchString(email) {
		writeMessage(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" && ext != ".doc" && ext != ".docx" && ext != ".txt" {
		writeMessage(w, http.StatusBadRequest, "Invalid file type for resume (supported: PDF, DOC, DOCX, TXT)")
		return
	}

	exists, err := a.db.CandidateExists(r.Context(), email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if exists {
		writeMessage(w, http.StatusBadRequest, "Candidate with this email already exists")
		return
	}

	storedName := uuid.NewString() + "-" + filenameSanitizer.ReplaceAllString(header.Filename, "_")
	if err := a.saveUpload(storedName, file); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to store resume file", err)
		return
	}

	candidate := &storage.Candidate{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Resume:     storedName,
		UploadedAt: time.Now(),
		Status:     storage.StatusPending,
		Skills:     []string{},
	}

	if err := a.db.InsertCandidate(r.Context(), candidate); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	a.logger.Info("resume uploaded",
		zap.String("candidate_id", candidate.ID),
		zap.String("filename", storedName))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":   "Resume uploaded & candidate saved successfully",
		"candidate": candidate,
	})
}

func (a *API) saveUpload(storedName string, src io.Reader) error {
	if err := os.MkdirAll(a.uploadsDir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(a.uploadsDir, storedName))
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// ListCandidatesHandler returns a page of candidates.
// @Summary List candidates
// @Tags resume
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]interface{}
// @Router /resume [get]
func (a *API) ListCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	candidates, err := a.db.ListCandidates(r.Context(), page, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	total, err := a.db.CountCandidates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	if candidates == nil {
		candidates = []*storage.Candidate{}
	}

	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
		"pagination": map[string]int{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// GetCandidateHandler returns a single candidate.
// @Summary Get candidate
// @Tags resume
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} storage.Candidate
// @Failure 404 {object} map[string]string
// @Router /resume/{id} [get]
func (a *API) GetCandidateHandler(w http.ResponseWriter, r *http.Request) {
	candidate, err := a.db.GetCandidate(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

// DeleteCandidateHandler removes the candidate record and its stored resume.
// @Summary Delete candidate
// @Tags resume
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resume/{id} [delete]
func (a *API) DeleteCandidateHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	candidate, err := a.db.GetCandidate(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	if candidate.Resume != "" {
		path := filepath.Join(a.uploadsDir, candidate.Resume)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			a.logger.Warn("could not remove resume file", zap.String("path", path), zap.Error(err))
		}
	}

	if err := a.db.DeleteCandidate(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	writeMessage(w, http.StatusOK, "Candidate deleted successfully")
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
