package types

import "github.com/google/uuid"

// MaxGenerationCount bounds a single bulk generation request.
const MaxGenerationCount = 1000

// GenerationOutcome is where a generated order ended up.
type GenerationOutcome string

const (
	OutcomePending   GenerationOutcome = "pending"
	OutcomeCompleted GenerationOutcome = "completed"
	OutcomeCancelled GenerationOutcome = "cancelled"
	OutcomeFailed    GenerationOutcome = "failed"
)

// GenerationAttempt records one iteration of bulk generation.
// Err is set when creation failed, or when a follow-up transition failed and the order stayed pending.
type GenerationAttempt struct {
	OrderID uuid.UUID
	Outcome GenerationOutcome
	Err     error
}

// GenerationReport lists every attempt of a bulk generation run.
type GenerationReport struct {
	Requested int
	Attempts  []GenerationAttempt
}

// Summary counts attempts per outcome.
func (r *GenerationReport) Summary() GenerationSummary {
	summary := GenerationSummary{}
	if r == nil {
		return summary
	}
	summary.Requested = r.Requested
	for _, attempt := range r.Attempts {
		summary.add(attempt.Outcome, 1)
	}
	return summary
}

// GenerationSummary is the serializable tally of a generation run.
type GenerationSummary struct {
	Requested int `json:"requested"`
	Created   int `json:"created"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Failed    int `json:"failed"`
}

// Merge adds the counts of other into s.
func (s GenerationSummary) Merge(other GenerationSummary) GenerationSummary {
	s.Requested += other.Requested
	s.Created += other.Created
	s.Pending += other.Pending
	s.Completed += other.Completed
	s.Cancelled += other.Cancelled
	s.Failed += other.Failed
	return s
}

func (s *GenerationSummary) add(outcome GenerationOutcome, n int) {
	switch outcome {
	case OutcomePending:
		s.Pending += n
		s.Created += n
	case OutcomeCompleted:
		s.Completed += n
		s.Created += n
	case OutcomeCancelled:
		s.Cancelled += n
		s.Created += n
	default:
		s.Failed += n
	}
}
