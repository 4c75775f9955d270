package queue

import "time"

type State string

const (
	StateWaiting   State = "waiting"
	StateActive    State = "active"
	StateDelayed   State = "delayed"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

type Payload struct {
	Timestamp int64 `json:"timestamp"` // unix millis at enqueue time
}

// Job is one unit of fetch-then-store work, scheduled or manually triggered.
// Lifecycle: waiting -> active -> completed, or on failure
// active -> delayed -> waiting (retry) until attempts run out, then failed.
type Job struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Payload     Payload   `json:"payload"`
	State       State     `json:"state"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
	CreatedAt   time.Time `json:"createdAt"`
	FinishedAt  time.Time `json:"finishedAt,omitzero"`
	LastError   string    `json:"lastError,omitempty"`
}
