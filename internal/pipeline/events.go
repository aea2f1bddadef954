package pipeline

// Stage identifies one step of the generation pipeline.
type Stage string

const (
	StageResearch Stage = "research"
	StageOutline  Stage = "outline"
	StageWriting  Stage = "writing"
	StageEditing  Stage = "editing"
)

// Stages is the fixed execution order.
var Stages = []Stage{StageResearch, StageOutline, StageWriting, StageEditing}

// Event is one frame of the generation progress stream.
type Event struct {
	Event     string      `json:"event"`
	Stage     string      `json:"stage,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Progress  int         `json:"progress"`
	SessionID string      `json:"session_id,omitempty"`
	Status    string      `json:"status,omitempty"`
	FinalBlog string      `json:"final_blog,omitempty"`
	Error     string      `json:"error,omitempty"`
	Metrics   *Metrics    `json:"metrics,omitempty"`
}

// Metrics summarizes a finished generation for the terminal event.
type Metrics struct {
	WordCount       int      `json:"word_count"`
	StagesCompleted []string `json:"stages_completed"`
	ElapsedSeconds  float64  `json:"elapsed_seconds"`
}

// Emitter receives progress events in order. Implementations must not block
// for long; slow consumers stall the pipeline.
type Emitter func(Event)

// stageProgress is the cumulative progress after each stage completes.
var stageProgress = map[Stage]int{
	StageResearch: 25,
	StageOutline:  50,
	StageWriting:  75,
	StageEditing:  100,
}

// startMessages announce each stage to the client.
var startMessages = map[Stage]string{
	StageResearch: "Research Agent is researching...",
	StageOutline:  "Outline Agent is structuring the blog...",
	StageWriting:  "Writing Agent is generating the blog draft...",
	StageEditing:  "Editing Agent is polishing and optimizing the draft...",
}
