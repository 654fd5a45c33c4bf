// Package server exposes the evaluation pipeline over HTTP to external
// callers. It is a thin collaborator: it validates input, invokes the
// pipeline and renders its output, nothing more.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-evaluator/internal/pipeline"
	"github.com/spigell/resume-evaluator/internal/store"
)

// Runner abstracts the pipeline so handlers can be tested without a provider.
type Runner interface {
	Run(ctx context.Context, resumeText, jobText string) (*pipeline.Result, error)
}

// History is the slice of the evaluation store consumed by the server. A nil
// History disables the persistence endpoints.
type History interface {
	Save(ctx context.Context, rec *store.Record) error
	Get(ctx context.Context, id string) (*store.Record, error)
	Recent(ctx context.Context, limit int) ([]*store.Record, error)
}

// Server wires the HTTP routes to the pipeline and the evaluation history.
type Server struct {
	app     *fiber.App
	runner  Runner
	history History
	logger  *zap.Logger
}

// New builds the fiber application with all routes registered.
func New(runner Runner, history History, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:               "resume-evaluator",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())

	s := &Server{
		app:     app,
		runner:  runner,
		history: history,
		logger:  logger,
	}

	app.Get("/health", s.handleHealth)
	app.Post("/evaluate", s.handleEvaluate)
	app.Get("/evaluations", s.handleRecent)
	app.Get("/evaluations/:id", s.handleGet)

	return s
}

// App exposes the underlying fiber application for serving and tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves HTTP on the given address until Shutdown is called.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server, honouring the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

type evaluateRequest struct {
	ResumeText         string `json:"resume_text"`
	JobDescriptionText string `json:"job_description_text"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleEvaluate(c *fiber.Ctx) error {
	var req evaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request payload",
		})
	}

	if strings.TrimSpace(req.ResumeText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_text is required",
		})
	}
	if strings.TrimSpace(req.JobDescriptionText) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description_text is required",
		})
	}

	ctx := c.UserContext()
	result, err := s.runner.Run(ctx, req.ResumeText, req.JobDescriptionText)
	if err != nil {
		return s.renderPipelineError(c, err)
	}

	id := uuid.NewString()
	if s.history != nil {
		payload, err := json.Marshal(result)
		if err != nil {
			s.logger.Error("marshaling result for history", zap.Error(err))
		} else {
			rec := &store.Record{
				ID:       id,
				FitScore: result.Evaluation.FitScore,
				IsFit:    result.Evaluation.IsFit,
				Result:   payload,
			}
			if err := s.history.Save(ctx, rec); err != nil {
				// History is best effort; the evaluation itself succeeded.
				s.logger.Error("saving evaluation to history", zap.String("id", id), zap.Error(err))
			}
		}
	}

	return c.JSON(fiber.Map{
		"id":                id,
		"candidate_profile": result.CandidateProfile,
		"job_description":   result.JobDescription,
		"evaluation":        result.Evaluation,
	})
}

func (s *Server) renderPipelineError(c *fiber.Ctx, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "evaluation timed out",
		})
	}

	var stageErr *pipeline.Error
	if errors.As(err, &stageErr) {
		s.logger.Error("pipeline stage failed",
			zap.String("stage", string(stageErr.Stage)),
			zap.Int("attempts", stageErr.Attempts),
			zap.Error(stageErr.Err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"stage": string(stageErr.Stage),
			"error": stageErr.Err.Error(),
		})
	}

	s.logger.Error("pipeline run failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (s *Server) handleGet(c *fiber.Ctx) error {
	if s.history == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "evaluation history is not configured",
		})
	}

	rec, err := s.history.Get(c.UserContext(), c.Params("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "evaluation not found",
		})
	}
	if err != nil {
		s.logger.Error("fetching evaluation", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "fetching evaluation failed",
		})
	}

	return c.JSON(fiber.Map{
		"id":         rec.ID,
		"created_at": rec.CreatedAt,
		"fit_score":  rec.FitScore,
		"is_fit":     rec.IsFit,
		"result":     json.RawMessage(rec.Result),
	})
}

func (s *Server) handleRecent(c *fiber.Ctx) error {
	if s.history == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "evaluation history is not configured",
		})
	}

	records, err := s.history.Recent(c.UserContext(), c.QueryInt("limit", 20))
	if err != nil {
		s.logger.Error("listing evaluations", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "listing evaluations failed",
		})
	}

	items := make([]fiber.Map, 0, len(records))
	for _, rec := range records {
		items = append(items, fiber.Map{
			"id":         rec.ID,
			"created_at": rec.CreatedAt,
			"fit_score":  rec.FitScore,
			"is_fit":     rec.IsFit,
		})
	}

	return c.JSON(fiber.Map{"items": items})
}
