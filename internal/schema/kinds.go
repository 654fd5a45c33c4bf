package schema

import "fmt"

// Kind names a structured-record schema that LLM output can be validated against.
type Kind string

const (
	KindCandidateProfile Kind = "candidate_profile"
	KindJobDescription   Kind = "job_description"
	KindFitEvaluation    Kind = "fit_evaluation"
)

// fieldType is the JSON shape expected for a single field.
type fieldType int

const (
	typeString fieldType = iota
	typeNumber
	typeInteger
	typeBool
	typeStringList
	typeObjectList
)

func (t fieldType) String() string {
	switch t {
	case typeString:
		return "string"
	case typeNumber:
		return "number"
	case typeInteger:
		return "integer"
	case typeBool:
		return "boolean"
	case typeStringList:
		return "array of strings"
	case typeObjectList:
		return "array of objects"
	default:
		return "unknown"
	}
}

// fieldSpec describes a single field of a record kind. Min/Max apply only to
// integer fields and are inclusive; they are used for the fit_score bounds.
type fieldSpec struct {
	name     string
	typ      fieldType
	required bool
	min, max *int
	elem     []fieldSpec // element specs for typeObjectList
}

func bound(v int) *int { return &v }

var educationSpecs = []fieldSpec{
	{name: "institution", typ: typeString, required: true},
	{name: "degree", typ: typeString, required: true},
	{name: "field_of_study", typ: typeString},
	{name: "graduation_year", typ: typeInteger},
	{name: "gpa", typ: typeNumber},
}

var roleSpecs = []fieldSpec{
	{name: "title", typ: typeString, required: true},
	{name: "company", typ: typeString, required: true},
	{name: "start_date", typ: typeString},
	{name: "end_date", typ: typeString},
	{name: "location", typ: typeString},
	{name: "description", typ: typeString, required: true},
	{name: "achievements", typ: typeStringList},
}

var projectSpecs = []fieldSpec{
	{name: "name", typ: typeString, required: true},
	{name: "description", typ: typeString, required: true},
	{name: "technologies", typ: typeStringList},
	{name: "url", typ: typeString},
	{name: "role", typ: typeString},
}

var recordSpecs = map[Kind][]fieldSpec{
	KindCandidateProfile: {
		{name: "name", typ: typeString},
		{name: "email", typ: typeString},
		{name: "phone", typ: typeString},
		{name: "location", typ: typeString},
		{name: "years_experience", typ: typeNumber},
		{name: "summary", typ: typeString, required: true},
		{name: "skills_primary", typ: typeStringList},
		{name: "skills_secondary", typ: typeStringList},
		{name: "certifications", typ: typeStringList},
		{name: "education", typ: typeObjectList, elem: educationSpecs},
		{name: "work_experience", typ: typeObjectList, elem: roleSpecs},
		{name: "projects", typ: typeObjectList, elem: projectSpecs},
		{name: "keywords", typ: typeStringList},
	},
	KindJobDescription: {
		{name: "title", typ: typeString, required: true},
		{name: "company", typ: typeString},
		{name: "location", typ: typeString},
		{name: "summary", typ: typeString, required: true},
		{name: "responsibilities", typ: typeStringList},
		{name: "required_skills", typ: typeStringList},
		{name: "preferred_skills", typ: typeStringList},
		{name: "qualifications", typ: typeStringList},
		{name: "seniority", typ: typeString},
		{name: "keywords", typ: typeStringList},
	},
	KindFitEvaluation: {
		{name: "fit_score", typ: typeInteger, required: true, min: bound(0), max: bound(100)},
		{name: "is_fit", typ: typeBool, required: true},
		{name: "fit_summary", typ: typeString, required: true},
		{name: "strengths", typ: typeStringList},
		{name: "gaps", typ: typeStringList},
		{name: "recommendations", typ: typeStringList},
		{name: "missing_keywords", typ: typeStringList},
		{name: "risk_flags", typ: typeStringList},
	},
}

func specsFor(kind Kind) ([]fieldSpec, error) {
	specs, ok := recordSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	return specs, nil
}
