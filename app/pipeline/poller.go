package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// Poller drives one extraction run to completion: it starts the job and then
// polls the status endpoint until a terminal state is reported or the attempt
// budget runs out. The wait between attempts honors context cancellation.
type Poller struct {
	api            API
	interval       time.Duration
	maxAttempts    int
	terminalStates map[string]bool
}

func NewPoller(api API, interval time.Duration, maxAttempts int) *Poller {
	return &Poller{
		api:         api,
		interval:    interval,
		maxAttempts: maxAttempts,
		terminalStates: map[string]bool{
			StateDone:       true,
			StateFailed:     true,
			StateTerminated: true,
		},
	}
}

// Run starts an extraction job for the URL and polls it to completion.
// The returned result carries the last fetched payload and the final state;
// state stays UNKNOWN when no status call ever succeeded. A nil result is
// returned only when the start call itself failed (including ErrNoRunID), in
// which case the caller persists a partial record.
func (p *Poller) Run(ctx context.Context, pageURL string) (*RunResult, error) {
	runID, err := p.api.StartRun(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		RunID: runID,
		State: StateUnknown,
	}

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		if err := sleepCtx(ctx, p.interval); err != nil {
			slog.Debug("Polling cancelled", "run_id", runID, "attempt", attempt)
			return result, nil
		}

		payload, state, err := p.api.GetRun(ctx, runID)
		if err != nil {
			slog.Warn("Pipeline status poll failed", "run_id", runID, "attempt", attempt, "error", err)
			continue
		}

		result.Payload = payload
		result.State = state

		if p.terminalStates[state] {
			slog.Debug("Pipeline run reached terminal state", "run_id", runID, "state", state, "attempts", attempt)
			return result, nil
		}
	}

	slog.Warn("Pipeline run did not finish within attempt budget", "run_id", runID, "state", result.State, "attempts", p.maxAttempts)
	return result, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
