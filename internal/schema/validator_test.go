package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func decodeJSON(t *testing.T, payload string) map[string]any {
	t.Helper()

	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		t.Fatalf("invalid test payload: %v", err)
	}
	return data
}

func TestValidateCandidateProfile(t *testing.T) {
	t.Parallel()

	payload := decodeJSON(t, `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"years_experience": 5,
		"summary": "Backend engineer with cloud experience",
		"skills_primary": ["Python", "AWS"],
		"skills_secondary": ["Communication"],
		"education": [{"institution": "MIT", "degree": "BSc", "graduation_year": 2015}],
		"work_experience": [{"title": "Engineer", "company": "Acme", "description": "Built services"}],
		"projects": [],
		"keywords": ["python", "aws"],
		"linkedin": "ignored-unknown-field"
	}`)

	if err := Validate(payload, KindCandidateProfile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, err := DecodeCandidateProfile(payload)
	if err != nil {
		t.Fatalf("decoding profile: %v", err)
	}

	if profile.Name != "Jane Doe" {
		t.Fatalf("unexpected name: %q", profile.Name)
	}
	if profile.YearsExperience != 5 {
		t.Fatalf("unexpected years_experience: %v", profile.YearsExperience)
	}
	if len(profile.SkillsPrimary) != 2 || profile.SkillsPrimary[0] != "Python" {
		t.Fatalf("unexpected primary skills: %v", profile.SkillsPrimary)
	}
	if len(profile.Education) != 1 || profile.Education[0].GraduationYear != 2015 {
		t.Fatalf("unexpected education: %+v", profile.Education)
	}
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		kind     Kind
		payload  string
		field    string
		expected string
	}{
		{
			name:     "missing required summary",
			kind:     KindCandidateProfile,
			payload:  `{"name": "Jane Doe"}`,
			field:    "summary",
			expected: "string",
		},
		{
			name:     "null required title",
			kind:     KindJobDescription,
			payload:  `{"title": null, "summary": "A job"}`,
			field:    "title",
			expected: "string",
		},
		{
			name:     "wrong typed fit_score",
			kind:     KindFitEvaluation,
			payload:  `{"fit_score": "85", "is_fit": true, "fit_summary": "ok"}`,
			field:    "fit_score",
			expected: "integer",
		},
		{
			name:     "fractional fit_score",
			kind:     KindFitEvaluation,
			payload:  `{"fit_score": 85.5, "is_fit": true, "fit_summary": "ok"}`,
			field:    "fit_score",
			expected: "integer",
		},
		{
			name:     "fit_score above bounds",
			kind:     KindFitEvaluation,
			payload:  `{"fit_score": 180, "is_fit": true, "fit_summary": "ok"}`,
			field:    "fit_score",
			expected: "integer between 0 and 100",
		},
		{
			name:     "is_fit not boolean",
			kind:     KindFitEvaluation,
			payload:  `{"fit_score": 80, "is_fit": "yes", "fit_summary": "ok"}`,
			field:    "is_fit",
			expected: "boolean",
		},
		{
			name:     "skills not a list",
			kind:     KindCandidateProfile,
			payload:  `{"summary": "ok", "skills_primary": "Python"}`,
			field:    "skills_primary",
			expected: "array of strings",
		},
		{
			name:     "non-string skill entry",
			kind:     KindCandidateProfile,
			payload:  `{"summary": "ok", "skills_primary": ["Python", 3]}`,
			field:    "skills_primary[1]",
			expected: "string",
		},
		{
			name:     "nested education entry missing degree",
			kind:     KindCandidateProfile,
			payload:  `{"summary": "ok", "education": [{"institution": "MIT"}]}`,
			field:    "education[0].degree",
			expected: "string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(decodeJSON(t, tt.payload), tt.kind)

			var validation *ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected a validation error, got %v", err)
			}
			if validation.Field != tt.field {
				t.Fatalf("expected failing field %q, got %q", tt.field, validation.Field)
			}
			if validation.Expected != tt.expected {
				t.Fatalf("expected type %q, got %q", tt.expected, validation.Expected)
			}
		})
	}
}

func TestValidateRequiresObject(t *testing.T) {
	t.Parallel()

	err := Validate([]any{"not", "an", "object"}, KindFitEvaluation)

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if validation.Field != "$" || validation.Expected != "object" {
		t.Fatalf("unexpected validation error: %+v", validation)
	}
}

func TestValidateUnknownKind(t *testing.T) {
	t.Parallel()

	if err := Validate(map[string]any{}, Kind("nonsense")); err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	t.Parallel()

	payload := decodeJSON(t, `{"fit_score": "bad", "is_fit": "also bad", "fit_summary": 1}`)

	first := Validate(payload, KindFitEvaluation)
	for i := 0; i < 10; i++ {
		if got := Validate(payload, KindFitEvaluation); got.Error() != first.Error() {
			t.Fatalf("validation is not deterministic: %v vs %v", first, got)
		}
	}
}

func TestJSONSchemaShape(t *testing.T) {
	t.Parallel()

	raw, err := JSONSchema(KindFitEvaluation)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if raw["type"] != "object" {
		t.Fatalf("expected object schema, got %v", raw["type"])
	}

	required, ok := raw["required"].([]string)
	if !ok || len(required) != 3 {
		t.Fatalf("unexpected required list: %v", raw["required"])
	}

	properties, ok := raw["properties"].(map[string]any)
	if !ok {
		t.Fatalf("expected properties map, got %T", raw["properties"])
	}

	score, ok := properties["fit_score"].(map[string]any)
	if !ok {
		t.Fatalf("expected fit_score schema, got %T", properties["fit_score"])
	}
	if score["minimum"] != 0 || score["maximum"] != 100 {
		t.Fatalf("unexpected fit_score bounds: %v", score)
	}

	if _, err := json.Marshal(raw); err != nil {
		t.Fatalf("schema must marshal to JSON: %v", err)
	}
}
