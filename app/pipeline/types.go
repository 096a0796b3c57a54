package pipeline

import (
	"context"
	"encoding/json"
	"errors"
)

// Terminal pipeline states after which polling stops.
const (
	StateUnknown    = "UNKNOWN"
	StateDone       = "DONE"
	StateFailed     = "FAILED"
	StateTerminated = "TERMINATED"
)

// ErrNoRunID indicates the pipeline accepted the start call but returned no
// run identifier. The caller is expected to synthesize a local one.
var ErrNoRunID = errors.New("pipeline start response contained no run id")

// API is the behavior the poller needs from the pipeline client.
// Tests substitute fakes.
type API interface {
	StartRun(ctx context.Context, url string) (string, error)
	GetRun(ctx context.Context, runID string) (json.RawMessage, string, error)
}

// RunResult is what one full poll cycle produced: the run identifier, the
// final reported state, and the last successfully fetched payload (nil when
// no status call ever returned HTTP success).
type RunResult struct {
	RunID   string
	State   string
	Payload json.RawMessage
}
