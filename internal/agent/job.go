package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ladle/internal/logging"
	"ladle/internal/recipes"
)

const (
	statusProcessing = "processing"
	statusCompleted  = "completed"
	statusFailed     = "failed"
)

// statusEnvelope is the wire shape of GET /status/{job_id}. Exactly one of
// Result and Error is meaningful, matching the status tag.
type statusEnvelope struct {
	Status string       `json:"status"`
	Result *recipes.Raw `json:"result"`
	Error  string       `json:"error"`
}

// Job is a cancellable handle on one submitted chat request. Each job owns its
// own poll loop; concurrent jobs do not share state.
type Job struct {
	id            string
	correlationID string
	client        *Client
	cancel        context.CancelFunc
	done          chan struct{}

	// Written once by the poll goroutine before done is closed.
	result recipes.Raw
	err    error
}

func (c *Client) startJob(id, correlationID string) *Job {
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.maxPoll > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), c.maxPoll)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}

	job := &Job{
		id:            id,
		correlationID: correlationID,
		client:        c,
		cancel:        cancel,
		done:          make(chan struct{}),
	}
	go job.run(ctx)
	return job
}

// ID returns the backend-assigned job identifier.
func (j *Job) ID() string {
	return j.id
}

// Cancel stops polling. It is safe to call at any time, including after the
// job has settled.
func (j *Job) Cancel() {
	j.cancel()
}

// Wait blocks until the job settles or ctx ends. A ctx error abandons the wait
// but leaves polling running; call Cancel to stop it.
func (j *Job) Wait(ctx context.Context) (recipes.Raw, error) {
	select {
	case <-ctx.Done():
		return recipes.Raw{}, ctx.Err()
	case <-j.done:
		return j.result, j.err
	}
}

// run drives the fixed-interval poll loop. Ticks are strictly sequential: the
// next delay starts only after the previous status check finished, and no
// request is issued once a terminal state was observed.
func (j *Job) run(ctx context.Context) {
	defer j.cancel()
	defer close(j.done)

	logger := j.client.logger.With(
		logging.FieldComponent, "agent",
		logging.FieldJobID, j.id,
		logging.FieldCorrelationID, j.correlationID)

	timer := time.NewTimer(j.client.pollInterval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			j.err = pollInterrupted(ctx, j.id)
			logger.Debug("polling stopped", "error", j.err)
			return
		case <-timer.C:
		}

		raw, terminal, err := j.client.checkStatus(ctx, j.id)
		if err != nil {
			// A response aborted by cancellation is reported as the
			// cancellation, not as a transport failure.
			if ctx.Err() != nil {
				j.err = pollInterrupted(ctx, j.id)
			} else {
				j.err = err
			}
			logger.Debug("polling finished", "error", j.err)
			return
		}
		if terminal {
			j.result = raw
			logger.Debug("job completed", "recipes", len(raw.Recipes))
			return
		}
		timer.Reset(j.client.pollInterval)
	}
}

func pollInterrupted(ctx context.Context, jobID string) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: job %s did not reach a terminal state in time", ErrTimeout, jobID)
	}
	return fmt.Errorf("%w: job %s", ErrCanceled, jobID)
}

// checkStatus performs one status request. It returns the embedded raw result
// with terminal=true on completion, terminal=false while processing, and an
// error on transport failure, backend-reported failure, or contract violation.
func (c *Client) checkStatus(ctx context.Context, jobID string) (recipes.Raw, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status/"+jobID, nil)
	if err != nil {
		return recipes.Raw{}, false, fmt.Errorf("build status request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return recipes.Raw{}, false, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return recipes.Raw{}, false, fmt.Errorf("%w: %s", ErrTransport, resp.Status)
	}

	var envelope statusEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return recipes.Raw{}, false, fmt.Errorf("%w: decode status: %v", ErrProtocol, err)
	}

	switch envelope.Status {
	case statusProcessing:
		return recipes.Raw{}, false, nil
	case statusCompleted:
		if envelope.Result == nil {
			return recipes.Raw{}, false, fmt.Errorf("%w: completed status carried no result", ErrProtocol)
		}
		return *envelope.Result, true, nil
	case statusFailed:
		return recipes.Raw{}, false, &JobFailedError{JobID: jobID, Message: envelope.Error}
	default:
		return recipes.Raw{}, false, fmt.Errorf("%w: unknown status %q", ErrProtocol, envelope.Status)
	}
}
