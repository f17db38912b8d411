package api

import (
	"context"

	"amphorank/app"
	model "amphorank/domain/ranking"
)

// Ranker is the service surface the handlers need
type Ranker interface {
	Rank(ctx context.Context, req app.RankRequest) (*app.Report, error)
	Specimens(ctx context.Context, stackFile, holdDropFile string) ([]string, error)
	Config() model.EngineConfig
}

// RankingRequest is the body of POST /api/v1/rankings
type RankingRequest struct {
	Records   []map[string]any `json:"records" binding:"required,min=1"`
	Selection []string         `json:"selection"`
	Seed      *int64           `json:"seed"`
}

// SpecimensResponse lists the identities in the configured files
type SpecimensResponse struct {
	Specimens []string `json:"specimens"`
	Count     int      `json:"count"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
