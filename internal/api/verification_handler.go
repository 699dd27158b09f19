package api

import (
	"errors"
	"io"
	"net/http"

	"recruitai/internal/storage"
	"recruitai/internal/verification"
)

// UploadCertificateHandler anchors a certificate on the verification provider
// and records the outcome on the candidate.
// @Summary Upload and verify certificate
// @Tags verify
// @Accept multipart/form-data
// @Produce json
// @Param certificate formData file true "Certificate file"
// @Param candidateId formData string true "Candidate ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /verify/upload [post]
func (a *API) UploadCertificateHandler(w http.ResponseWriter, r *http.Request) {
	data, ok := a.readCertificate(w, r)
	if !ok {
		return
	}

	candidateID := r.FormValue("candidateId")
	candidate, err := a.db.GetCandidate(r.Context(), candidateID)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	result, err := a.verifier.Anchor(r.Context(), data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error during certificate upload", err)
		return
	}

	ver := storage.Verification{
		Status:     verification.StatusVerified,
		Hash:       result.Hash,
		Date:       result.Date,
		VerifiedBy: result.VerifiedBy,
	}
	if err := a.db.UpdateVerification(r.Context(), candidateID, ver); err != nil {
		writeError(w, http.StatusInternalServerError, "Server error during certificate upload", err)
		return
	}
	candidate.Verification = &ver

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Certificate uploaded and verified successfully",
		"verificationHash": result.Hash,
		"candidate":        candidate,
	})
}

// VerifyCertificateHandler spot-checks a certificate against the provider
// without touching any candidate record.
// @Summary Verify certificate
// @Tags verify
// @Accept multipart/form-data
// @Produce json
// @Param certificate formData file true "Certificate file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /verify/check [post]
func (a *API) VerifyCertificateHandler(w http.ResponseWriter, r *http.Request) {
	data, ok := a.readCertificate(w, r)
	if !ok {
		return
	}

	result, err := a.verifier.Verify(r.Context(), data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error during certificate verification", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":          "Certificate verification completed",
		"isVerified":       result.Verified,
		"verificationDate": result.Date,
	})
}

// VerificationStatusHandler returns a candidate's verification record.
// @Summary Verification status
// @Tags verify
// @Produce json
// @Param id path string true "Candidate ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /verify/status/{id} [get]
func (a *API) VerificationStatusHandler(w http.ResponseWriter, r *http.Request) {
	candidate, err := a.db.GetCandidate(r.Context(), r.PathValue("id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error retrieving verification status", err)
		return
	}

	var ver interface{} = candidate.Verification
	if candidate.Verification == nil {
		ver = map[string]string{"status": verification.StatusNotVerified}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Verification status retrieved",
		"verification": ver,
	})
}

// VerificationDetailsHandler returns the ledger record details.
// @Summary Verification details
// @Tags verify
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /verify/details [get]
func (a *API) VerificationDetailsHandler(w http.ResponseWriter, r *http.Request) {
	details, err := a.verifier.Details(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error retrieving verification details", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Verification details retrieved",
		"details": details,
	})
}

func (a *API) readCertificate(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "file too large or invalid (max 10MB)")
		return nil, false
	}
	file, _, err := r.FormFile("certificate")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No certificate file uploaded")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read certificate file", err)
		return nil, false
	}
	return data, true
}
