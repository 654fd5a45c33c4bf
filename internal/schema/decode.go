package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DecodeCandidateProfile converts a validated JSON object into a typed record.
func DecodeCandidateProfile(raw map[string]any) (*CandidateProfile, error) {
	var profile CandidateProfile
	if err := decode(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DecodeJobDescription converts a validated JSON object into a typed record.
func DecodeJobDescription(raw map[string]any) (*JobDescription, error) {
	var job JobDescription
	if err := decode(raw, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// DecodeFitEvaluation converts a validated JSON object into a typed record.
func DecodeFitEvaluation(raw map[string]any) (*FitEvaluation, error) {
	var evaluation FitEvaluation
	if err := decode(raw, &evaluation); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

func decode(raw map[string]any, out any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:  out,
		TagName: "json",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return fmt.Errorf("building decoder for %T: %w", out, err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("decoding %T: %w", out, err)
	}

	return nil
}
