// Package verification models the certificate-verification collaborator.
// Business logic only ever sees the Provider interface; the simulated ledger
// implementation keeps its randomness behind that boundary so tests can
// substitute a deterministic double.
package verification

import (
	"context"
	"time"
)

const (
	StatusVerified    = "Verified"
	StatusNotVerified = "Not Verified"
)

// Result is the outcome of anchoring or checking a certificate.
type Result struct {
	Verified   bool      `json:"verified"`
	Hash       string    `json:"hash"`
	Date       time.Time `json:"date"`
	VerifiedBy string    `json:"verifiedBy"`
}

// Details describes the ledger record backing a verification.
type Details struct {
	Network         string    `json:"network"`
	ContractAddress string    `json:"contractAddress"`
	BlockNumber     int64     `json:"blockNumber"`
	TransactionHash string    `json:"transactionHash"`
	Timestamp       time.Time `json:"timestamp"`
}

// Provider is the external verification service.
type Provider interface {
	// Anchor stores a certificate fingerprint on the ledger.
	Anchor(ctx context.Context, certificate []byte) (Result, error)
	// Verify checks a certificate against the ledger.
	Verify(ctx context.Context, certificate []byte) (Result, error)
	// Details returns the ledger record details.
	Details(ctx context.Context) (Details, error)
}
