package ingest

// Stage identifies one step of the document ingestion pipeline
type Stage int

const (
	StageIdle Stage = iota
	StageExtractingText
	StageBasicStructuring
	StageEnhancingBatch1
	StageEnhancingBatch2
	StagePersisting
	StageDone
	StageFailed
)

// stageInfo drives both progress reporting and error messages
var stageInfo = map[Stage]struct {
	name string
	step int
	desc string
}{
	StageIdle:             {"idle", 0, "waiting for upload"},
	StageExtractingText:   {"extracting_text", 1, "extracting text from document"},
	StageBasicStructuring: {"basic_structuring", 2, "structuring menu items"},
	StageEnhancingBatch1:  {"enhancing_batch_1", 3, "enhancing items (first batch)"},
	StageEnhancingBatch2:  {"enhancing_batch_2", 4, "enhancing items (second batch)"},
	StagePersisting:       {"persisting", 5, "saving menu"},
	StageDone:             {"done", 5, "menu imported"},
	StageFailed:           {"failed", 0, "import failed"},
}

// totalSteps is the number of discrete progress steps a full run has
const totalSteps = 5

func (s Stage) String() string {
	if info, ok := stageInfo[s]; ok {
		return info.name
	}
	return "unknown"
}

// Step returns the 1-based progress step for the stage
func (s Stage) Step() int {
	return stageInfo[s].step
}

// Description returns a user-facing label for the stage
func (s Stage) Description() string {
	return stageInfo[s].desc
}

// Terminal reports whether the pipeline can leave this stage
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// ProgressEvent is the discrete per-stage progress indicator, rendered
// by callers as "step X of Y: description".
type ProgressEvent struct {
	Stage       Stage  `json:"-"`
	StageName   string `json:"stage"`
	Step        int    `json:"step"`
	Total       int    `json:"total"`
	Description string `json:"description"`
	Error       string `json:"error,omitempty"`
}

func progressFor(s Stage) ProgressEvent {
	return ProgressEvent{
		Stage:       s,
		StageName:   s.String(),
		Step:        s.Step(),
		Total:       totalSteps,
		Description: s.Description(),
	}
}
