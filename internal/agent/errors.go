package agent

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSubmission marks a job submission the backend rejected. The wrapped
	// detail is the verbatim response body text.
	ErrSubmission = errors.New("job submission rejected")
	// ErrTransport marks a non-OK HTTP status observed while polling. Polling
	// stops on the first occurrence; transport hiccups are not retried.
	ErrTransport = errors.New("status check failed")
	// ErrProtocol marks a response that violated the submit/poll contract, such
	// as a missing job_id or a completed status without a result.
	ErrProtocol = errors.New("protocol violation")
	// ErrCanceled is returned by Wait after the job's polling was canceled.
	ErrCanceled = errors.New("job polling canceled")
	// ErrTimeout is returned when the configured max poll duration elapses
	// before the job reaches a terminal state.
	ErrTimeout = errors.New("job polling timed out")
)

// Fallback shown when the backend reports failure without a message.
const genericJobFailure = "백엔드 작업 처리 중 에러 발생"

// JobFailedError reports an explicit failure surfaced by the backend for a job.
type JobFailedError struct {
	JobID   string
	Message string
}

func (e *JobFailedError) Error() string {
	message := strings.TrimSpace(e.Message)
	if message == "" {
		message = genericJobFailure
	}
	return fmt.Sprintf("job %s failed: %s", e.JobID, message)
}

// DisplayMessage returns the backend-provided failure message, or the generic
// fallback when none was given.
func (e *JobFailedError) DisplayMessage() string {
	if strings.TrimSpace(e.Message) == "" {
		return genericJobFailure
	}
	return e.Message
}
