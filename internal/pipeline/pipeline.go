// Package pipeline sequences the LLM-backed stages that turn raw resume and
// job-description text into a validated fit evaluation. Data flows strictly
// forward: raw text, structured records, fit evaluation. All retry policy
// lives here; the provider clients never retry on their own.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-evaluator/internal/llm"
	"github.com/spigell/resume-evaluator/internal/retry"
	"github.com/spigell/resume-evaluator/internal/schema"
	"github.com/spigell/resume-evaluator/internal/utils"
)

const (
	defaultMaxAttempts  = 3
	defaultBaseBackoff  = 2 * time.Second
	defaultMaxLogLength = 200
)

// Config tunes the retry discipline applied around every LLM call.
type Config struct {
	MaxAttempts  int
	BaseBackoff  time.Duration
	MaxLogLength int
}

// Pipeline runs the extraction and evaluation stages against a single
// provider client. A Pipeline owns no mutable state besides its configuration,
// so concurrent runs are safe.
type Pipeline struct {
	client    llm.Client
	logger    *zap.Logger
	policy    retry.Policy
	maxLogLen int
}

// New creates a Pipeline around the provided client. Zero config values fall
// back to the defaults (3 attempts, 2s base backoff).
func New(client llm.Client, logger *zap.Logger, cfg Config) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = defaultBaseBackoff
	}

	maxLogLen := cfg.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Pipeline{
		client: client,
		logger: logger,
		policy: retry.Policy{
			MaxAttempts: maxAttempts,
			BaseBackoff: baseBackoff,
			Classify:    classify,
		},
		maxLogLen: maxLogLen,
	}
}

// Result is the terminal artifact of a successful run. Every record in it has
// passed schema validation.
type Result struct {
	CandidateProfile *schema.CandidateProfile `json:"candidate_profile"`
	JobDescription   *schema.JobDescription   `json:"job_description"`
	Evaluation       *schema.FitEvaluation    `json:"evaluation"`
}

// Run executes the full pipeline. The two extraction calls have no data
// dependency on each other and run concurrently; evaluation waits for both.
// On failure the returned error is an *Error naming the failed stage.
func (p *Pipeline) Run(ctx context.Context, resumeText, jobText string) (*Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, errors.New("resume text is required")
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, errors.New("job description text is required")
	}

	var (
		profile *schema.CandidateProfile
		job     *schema.JobDescription
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = p.ExtractProfile(gctx, resumeText)
		return err
	})
	g.Go(func() error {
		var err error
		job, err = p.ExtractJobDescription(gctx, jobText)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	evaluation, err := p.Evaluate(ctx, profile, job)
	if err != nil {
		return nil, err
	}

	p.logger.Info("pipeline run finished",
		zap.Int("fit_score", evaluation.FitScore),
		zap.Bool("is_fit", evaluation.IsFit),
	)

	return &Result{
		CandidateProfile: profile,
		JobDescription:   job,
		Evaluation:       evaluation,
	}, nil
}

// structured performs one retried structured-completion call: prompt, parse,
// validate. Malformed or invalid model output is fed back into the retry loop
// as a fresh attempt.
func (p *Pipeline) structured(ctx context.Context, stage Stage, template string, kind schema.Kind, user string) (map[string]any, int, error) {
	system, err := systemPrompt(template, kind)
	if err != nil {
		return nil, 0, err
	}

	logger := p.logger.With(
		zap.String("stage", string(stage)),
		zap.String("model", p.client.Model()),
	)

	logger.Debug("sending structured completion request",
		zap.Int("prompt_length", utf8.RuneCountInString(user)),
		zap.String("prompt_preview", utils.TruncateForLog(user, p.maxLogLen)),
	)

	return retry.Invoke(ctx, p.policy, func(ctx context.Context) (map[string]any, error) {
		raw, err := p.client.Complete(ctx, llm.Request{System: system, User: user})
		if err != nil {
			logger.Debug("completion attempt failed", zap.Error(err))
			return nil, err
		}

		logger.Debug("completion response received",
			zap.Int("response_length", utf8.RuneCountInString(raw)),
			zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
		)

		var data map[string]any
		if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
			return nil, fmt.Errorf("parse %s response: %w", kind, err)
		}

		if err := schema.Validate(data, kind); err != nil {
			return nil, fmt.Errorf("validate %s response: %w", kind, err)
		}

		return data, nil
	})
}
