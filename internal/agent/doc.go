// Package agent implements the asynchronous submit/poll protocol of the
// cooking assistant service.
//
// A chat message is submitted with POST /chat, which must answer 202 Accepted
// with a job identifier. The returned Job polls GET /status/{job_id} on a
// fixed interval until the backend reports completed or failed, failing fast
// on the first transport error. Jobs are cancellable handles: each owns its
// poll loop and settles exactly once.
//
// CheckHealth probes GET /health and degrades to an unhealthy report instead
// of returning errors.
package agent
