package verification

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// SimulatedLedger is a stand-in for a real blockchain anchoring service. It
// fingerprints certificates with SHA-256 and simulates the occasional
// verification miss a real ledger lookup would have.
type SimulatedLedger struct {
	network  string
	contract string
	rng      *rand.Rand
	now      func() time.Time
}

func NewSimulatedLedger() *SimulatedLedger {
	return &SimulatedLedger{
		network:  "Ethereum",
		contract: "0x742d35Cc6634C0532925a3b8D91D0a74b4A3Bb3D",
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

func (l *SimulatedLedger) Anchor(_ context.Context, certificate []byte) (Result, error) {
	sum := sha256.Sum256(certificate)
	return Result{
		Verified:   true,
		Hash:       "0x" + hex.EncodeToString(sum[:]),
		Date:       l.now(),
		VerifiedBy: "Blockchain",
	}, nil
}

func (l *SimulatedLedger) Verify(_ context.Context, certificate []byte) (Result, error) {
	sum := sha256.Sum256(certificate)
	// Simulated lookups succeed 80% of the time.
	verified := l.rng.Float64() > 0.2
	return Result{
		Verified:   verified,
		Hash:       "0x" + hex.EncodeToString(sum[:]),
		Date:       l.now(),
		VerifiedBy: "Blockchain",
	}, nil
}

func (l *SimulatedLedger) Details(_ context.Context) (Details, error) {
	txID := uuid.New()
	sum := sha256.Sum256(txID[:])
	return Details{
		Network:         l.network,
		ContractAddress: l.contract,
		BlockNumber:     12345678,
		TransactionHash: fmt.Sprintf("0x%x", sum[:]),
		Timestamp:       l.now(),
	}, nil
}
