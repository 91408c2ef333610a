package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Level event actions.
const (
	LevelStart   = "start"
	LevelPass    = "pass"
	LevelFail    = "fail"
	LevelAbandon = "abandon"
)

// AnswerEventData captures one finalised answer.
type AnswerEventData struct {
	AttemptID  string
	Level      int
	Mode       string
	Native     string
	Target     string
	QuestionID string
	Given      string
	Expected   string
	Correct    bool
}

// AnswerRecord is a stored answer event.
type AnswerRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// LevelEventData captures a level attempt starting or ending.
type LevelEventData struct {
	AttemptID string
	Level     int
	Mode      string
	Native    string
	Target    string
	Action    string // LevelStart, LevelPass, LevelFail, LevelAbandon
	Answered  int
	Correct   int
	Score     int
}

// LevelStat aggregates level events for one (level, mode) pair.
type LevelStat struct {
	Level    int
	Mode     string
	Attempts int
	Passes   int
	Fails    int
	Answered int
	Correct  int
}

// Accuracy is the share of correct answers across finished attempts.
func (s LevelStat) Accuracy() float64 {
	if s.Answered == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Answered)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMPurposeUsage aggregates token usage for one purpose.
type LLMPurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendAnswerEvent records a finalised answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLevelEvent records a level attempt transition.
	AppendLevelEvent(ctx context.Context, data LevelEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentAnswers returns answer events, newest first.
	RecentAnswers(ctx context.Context, opts QueryOpts) ([]AnswerRecord, error)

	// LevelStats aggregates level events by level and mode.
	LevelStats(ctx context.Context) ([]LevelStat, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if id is unknown.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose sums tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMPurposeUsage, error)

	// LLMUsageByModel sums tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
