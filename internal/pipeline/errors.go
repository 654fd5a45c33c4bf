package pipeline

import "fmt"

// Stage identifies the pipeline step that produced a failure.
type Stage string

const (
	StageProfileExtraction Stage = "profile_extraction"
	StageJobExtraction     Stage = "job_description_extraction"
	StageEvaluation        Stage = "evaluation"
)

// Error reports which stage failed, how many attempts were made and the last
// underlying cause. Nothing is silently swallowed: every terminal failure of
// Run is an *Error.
type Error struct {
	Stage    Stage
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stage %s failed after %d attempt(s): %v", e.Stage, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
