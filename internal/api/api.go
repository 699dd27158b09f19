package api

import (
	"recruitai/internal/auth"
	"recruitai/internal/ranking"
	"recruitai/internal/resume"
	"recruitai/internal/storage"
	"recruitai/internal/verification"

	"go.uber.org/zap"
)

type API struct {
	db         *storage.DB
	pipeline   *resume.Pipeline
	engine     *ranking.Engine
	verifier   verification.Provider
	auth       *auth.Service
	uploadsDir string
	logger     *zap.Logger
}

func NewAPI(db *storage.DB, pipeline *resume.Pipeline, engine *ranking.Engine,
	verifier verification.Provider, authSvc *auth.Service, uploadsDir string, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		db:         db,
		pipeline:   pipeline,
		engine:     engine,
		verifier:   verifier,
		auth:       authSvc,
		uploadsDir: uploadsDir,
		logger:     logger,
	}
}
