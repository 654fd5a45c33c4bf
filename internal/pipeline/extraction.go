package pipeline

import (
	"context"

	"github.com/spigell/resume-evaluator/internal/schema"
)

// ExtractProfile turns raw resume text into a validated candidate profile.
func (p *Pipeline) ExtractProfile(ctx context.Context, resumeText string) (*schema.CandidateProfile, error) {
	user := "Extract the candidate profile from the following resume text:\n\n" + resumeText

	raw, attempts, err := p.structured(ctx, StageProfileExtraction, profilePromptTemplate, schema.KindCandidateProfile, user)
	if err != nil {
		return nil, &Error{Stage: StageProfileExtraction, Attempts: attempts, Err: err}
	}

	profile, err := schema.DecodeCandidateProfile(raw)
	if err != nil {
		return nil, &Error{Stage: StageProfileExtraction, Attempts: attempts, Err: err}
	}

	return profile, nil
}

// ExtractJobDescription turns raw job-posting text into a validated job description.
func (p *Pipeline) ExtractJobDescription(ctx context.Context, jobText string) (*schema.JobDescription, error) {
	user := "Extract the job description details from the following text:\n\n" + jobText

	raw, attempts, err := p.structured(ctx, StageJobExtraction, jobPromptTemplate, schema.KindJobDescription, user)
	if err != nil {
		return nil, &Error{Stage: StageJobExtraction, Attempts: attempts, Err: err}
	}

	job, err := schema.DecodeJobDescription(raw)
	if err != nil {
		return nil, &Error{Stage: StageJobExtraction, Attempts: attempts, Err: err}
	}

	return job, nil
}
