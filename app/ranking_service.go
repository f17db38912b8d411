package app

import (
	"context"
	"time"

	"amphorank/domain/core"
	model "amphorank/domain/ranking"
	"amphorank/domain/specimen"
	"amphorank/internal"
	"amphorank/internal/errors"
	"amphorank/internal/monitoring"
	"amphorank/internal/ranking"
	"amphorank/ports"
)

// ServiceConfig holds what a ranking service needs besides its collaborators
type ServiceConfig struct {
	Engine       model.EngineConfig
	StackFile    string // used when a request names no files and carries no records
	HoldDropFile string
	DefaultSeed  int64
}

// Dependencies are the collaborators of a RankingService. Metrics and
// Logger may be nil.
type Dependencies struct {
	Source  ports.RecordSource
	NewRNG  func(seed int64) ports.RNGPort
	Metrics *monitoring.Metrics
	Logger  *internal.Logger
}

// RankingService loads measurement records, runs the ranking engine and
// reports which selected specimens were ranked or excluded
type RankingService struct {
	config  ServiceConfig
	source  ports.RecordSource
	newRNG  func(seed int64) ports.RNGPort
	metrics *monitoring.Metrics
	logger  *internal.Logger
}

// RankRequest defines the inputs of one ranking run. Records take
// precedence over file paths; with neither, the configured files are used.
type RankRequest struct {
	Records      []specimen.Record
	StackFile    string
	HoldDropFile string
	Selection    []string // empty selects every identity in the records
	Seed         *int64   // nil uses the configured default
}

// Exclusion names a selected specimen that could not be ranked
type Exclusion struct {
	Identity         string              `json:"identity"`
	MissingProtocols []specimen.Protocol `json:"missing_protocols"`
}

// Report is the complete output of one ranking run
type Report struct {
	RunID       core.RunID         `json:"run_id"`
	GeneratedAt core.Timestamp     `json:"generated_at"`
	Seed        int64              `json:"seed"`
	Config      model.EngineConfig `json:"config"`
	Selected    []string           `json:"selected"`
	Excluded    []Exclusion        `json:"excluded"`
	Result      model.Result       `json:"result"`
	Duration    time.Duration      `json:"-"`
	RuntimeMs   int64              `json:"runtime_ms"`
}

// NewRankingService creates a ranking service. The engine configuration is
// validated once here.
func NewRankingService(cfg ServiceConfig, deps Dependencies) (*RankingService, error) {
	if err := cfg.Engine.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if deps.NewRNG == nil {
		return nil, errors.InternalError("ranking service needs an RNG factory")
	}
	logger := deps.Logger
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &RankingService{
		config:  cfg,
		source:  deps.Source,
		newRNG:  deps.NewRNG,
		metrics: deps.Metrics,
		logger:  logger.Named("ranking"),
	}, nil
}

// Config returns the engine configuration every run uses
func (s *RankingService) Config() model.EngineConfig {
	return s.config.Engine
}

// Rank executes one ranking run
func (s *RankingService) Rank(ctx context.Context, req RankRequest) (*Report, error) {
	records, err := s.records(ctx, req.Records, req.StackFile, req.HoldDropFile)
	if err != nil {
		s.metrics.ObserveRun(monitoring.OutcomeError, 0, 0, 0)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.metrics.ObserveRun(monitoring.OutcomeError, 0, 0, 0)
		return nil, errors.Wrap(err, "ranking cancelled")
	}

	selection := normalizeSelection(req.Selection)
	if len(selection) == 0 {
		selection = ranking.Identities(records)
	}
	seed := s.config.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	runID := core.NewRunID()
	s.logger.Debug("[RankingService] Run %s: %d records, %d selected, seed %d", runID, len(records), len(selection), seed)

	start := time.Now()
	result := ranking.Rank(records, selection, s.config.Engine, s.newRNG(seed))
	duration := time.Since(start)

	report := &Report{
		RunID:       runID,
		GeneratedAt: core.Now(),
		Seed:        seed,
		Config:      s.config.Engine,
		Selected:    selection,
		Excluded:    exclusions(result, selection),
		Result:      result,
		Duration:    duration,
		RuntimeMs:   duration.Milliseconds(),
	}

	outcome := monitoring.OutcomeSuccess
	if len(result.Entries) == 0 {
		outcome = monitoring.OutcomeEmpty
	}
	s.metrics.ObserveRun(outcome, duration, len(result.Entries), len(report.Excluded))
	for _, p := range result.Processed {
		s.metrics.AddOutliers(p.Protocol.String(), p.OutlierCount)
	}

	s.logger.Info("[RankingService] Run %s: %d selected, %d ranked, %d excluded in %v",
		runID, len(selection), len(result.Entries), len(report.Excluded), duration)
	for _, ex := range report.Excluded {
		s.logger.Debug("[RankingService] Excluded %s: missing %v", ex.Identity, ex.MissingProtocols)
	}

	return report, nil
}

// Specimens lists every identity available in the given files, or in the
// configured files when both paths are empty
func (s *RankingService) Specimens(ctx context.Context, stackFile, holdDropFile string) ([]string, error) {
	records, err := s.records(ctx, nil, stackFile, holdDropFile)
	if err != nil {
		return nil, err
	}
	return ranking.Identities(records), nil
}

func (s *RankingService) records(ctx context.Context, given []specimen.Record, stackFile, holdDropFile string) ([]specimen.Record, error) {
	if len(given) > 0 {
		return given, nil
	}
	if stackFile == "" && holdDropFile == "" {
		stackFile, holdDropFile = s.config.StackFile, s.config.HoldDropFile
	}
	if stackFile == "" || holdDropFile == "" {
		return nil, errors.InvalidInput("both a stack file and a hold/drop file are required")
	}
	if s.source == nil {
		return nil, errors.InternalError("no record source configured")
	}

	start := time.Now()
	records, err := s.source.Load(ctx, stackFile, holdDropFile)
	if err != nil {
		s.logger.Error("[RankingService] Failed to load records: %v", err)
		return nil, errors.Wrap(err, "failed to load measurement records")
	}
	s.logger.Debug("[RankingService] Loaded %d records in %v", len(records), time.Since(start))
	return records, nil
}

// normalizeSelection maps selection entries to identities, dropping blanks
// and duplicates while keeping the caller's order
func normalizeSelection(selection []string) []string {
	seen := make(map[string]bool, len(selection))
	out := make([]string, 0, len(selection))
	for _, raw := range selection {
		id := specimen.Identity(raw)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func exclusions(result model.Result, selection []string) []Exclusion {
	out := []Exclusion{}
	for _, id := range selection {
		if _, ok := result.Entry(id); ok {
			continue
		}
		out = append(out, Exclusion{Identity: id, MissingProtocols: result.MissingProtocols(id)})
	}
	return out
}
