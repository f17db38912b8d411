package api

import (
	"net/http"
	"strconv"
	"strings"

	"amphorank/app"
	"amphorank/domain/specimen"
	"amphorank/internal"
	"amphorank/internal/errors"

	"github.com/gin-gonic/gin"
)

// Handlers serves the ranking JSON API
type Handlers struct {
	svc    Ranker
	logger *internal.Logger
}

// NewHandlers creates the API handlers
func NewHandlers(svc Ranker, logger *internal.Logger) *Handlers {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Handlers{svc: svc, logger: logger.Named("api")}
}

// HandleRankRecords ranks the records posted in the request body
func (h *Handlers) HandleRankRecords(c *gin.Context) {
	var req RankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("[API] Invalid ranking request body: %v", err)
		h.respondError(c, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "invalid request body")))
		return
	}

	records := make([]specimen.Record, len(req.Records))
	for i, r := range req.Records {
		records[i] = specimen.Record(r)
	}

	report, err := h.svc.Rank(c.Request.Context(), app.RankRequest{
		Records:   records,
		Selection: req.Selection,
		Seed:      req.Seed,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// HandleRankConfigured ranks the configured input files.
// Query: select=A,B (optional), seed=N (optional)
func (h *Handlers) HandleRankConfigured(c *gin.Context) {
	req := app.RankRequest{Selection: splitList(c.Query("select"))}

	if raw := c.Query("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.respondError(c, errors.InvalidInput("seed must be an integer"))
			return
		}
		req.Seed = &seed
	}

	report, err := h.svc.Rank(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// HandleSpecimens lists identities available in the configured files
func (h *Handlers) HandleSpecimens(c *gin.Context) {
	ids, err := h.svc.Specimens(c.Request.Context(), "", "")
	if err != nil {
		h.respondError(c, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, SpecimensResponse{Specimens: ids, Count: len(ids)})
}

// HandleConfig returns the active engine configuration
func (h *Handlers) HandleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Config())
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, ErrorResponse{
		Error: err.Error(),
		Code:  errors.GetCode(err, errors.CodeInternalError),
	})
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
