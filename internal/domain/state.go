package domain

// Stage identifies a step of the URL pipeline.
type Stage string

const (
	StageIdle           Stage = "idle"
	StageExtracting     Stage = "extracting"
	StageSummarizing    Stage = "summarizing"
	StageResolvingImage Stage = "resolving_image"
	StageAssembling     Stage = "assembling"
	StageDone           Stage = "done"
	StageFailed         Stage = "failed"
)

// PipelineState accumulates the outputs of all stages for a single URL.
// Fields are set additively in stage order; once Err is set no later
// stage mutates the state.
type PipelineState struct {
	URL       string
	Stage     Stage
	Extracted *ExtractedContent
	Processed *ProcessedContent
	ImageRef  string
	Success   bool
	Err       error
	FailedAt  Stage
	PostID    int64
}

// Fail records the terminal failure for the given stage.
func (s *PipelineState) Fail(stage Stage, err error) {
	s.Stage = StageFailed
	s.FailedAt = stage
	s.Err = err
	s.Success = false
}
