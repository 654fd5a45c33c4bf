package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-evaluator/internal/schema"
)

// FitThreshold is the fit_score at or above which a candidate is considered a
// fit. IsFit is always re-derived from this rule after validation; the
// model's own verdict is never trusted.
const FitThreshold = 70

const evaluationContentTemplate = `Evaluate the candidate's fit for this job:

CANDIDATE PROFILE:
{{PROFILE_JSON}}

JOB DESCRIPTION:
{{JOB_JSON}}`

// Evaluate grounds a fit evaluation on two already-validated records.
func (p *Pipeline) Evaluate(ctx context.Context, profile *schema.CandidateProfile, job *schema.JobDescription) (*schema.FitEvaluation, error) {
	if profile == nil {
		return nil, errors.New("candidate profile is required")
	}
	if job == nil {
		return nil, errors.New("job description is required")
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate profile: %w", err)
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job description: %w", err)
	}

	user := strings.ReplaceAll(evaluationContentTemplate, "{{PROFILE_JSON}}", string(profileJSON))
	user = strings.ReplaceAll(user, "{{JOB_JSON}}", string(jobJSON))

	raw, attempts, err := p.structured(ctx, StageEvaluation, evaluationPromptTemplate, schema.KindFitEvaluation, user)
	if err != nil {
		return nil, &Error{Stage: StageEvaluation, Attempts: attempts, Err: err}
	}

	evaluation, err := schema.DecodeFitEvaluation(raw)
	if err != nil {
		return nil, &Error{Stage: StageEvaluation, Attempts: attempts, Err: err}
	}

	derived := evaluation.FitScore >= FitThreshold
	if evaluation.IsFit != derived {
		p.logger.Debug("overriding model fit verdict by threshold rule",
			zap.Int("fit_score", evaluation.FitScore),
			zap.Bool("model_is_fit", evaluation.IsFit),
			zap.Int("threshold", FitThreshold),
		)
	}
	evaluation.IsFit = derived

	return evaluation, nil
}
