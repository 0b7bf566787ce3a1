package agent_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ladle/internal/agent"
	"ladle/internal/testsupport"
)

const testPollInterval = 5 * time.Millisecond

// agentStub serves the submit/poll contract with a scripted status sequence.
type agentStub struct {
	statuses      []string
	statusCalls   atomic.Int64
	acceptedBody  string
	submitStatus  int
	statusHandler http.HandlerFunc
}

func newAgentStub(statuses ...string) *agentStub {
	return &agentStub{
		statuses:     statuses,
		acceptedBody: `{"job_id":"job-1"}`,
		submitStatus: http.StatusAccepted,
	}
}

func (s *agentStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/chat":
			w.WriteHeader(s.submitStatus)
			_, _ = w.Write([]byte(s.acceptedBody))
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/status/"):
			call := s.statusCalls.Add(1)
			if s.statusHandler != nil {
				s.statusHandler(w, r)
				return
			}
			idx := int(call) - 1
			if idx >= len(s.statuses) {
				idx = len(s.statuses) - 1
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(s.statuses[idx]))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, baseURL string, opts ...agent.Option) *agent.Client {
	t.Helper()
	opts = append([]agent.Option{agent.WithPollInterval(testPollInterval)}, opts...)
	client, err := agent.New(baseURL, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := agent.New("  "); err == nil {
		t.Fatal("expected error for empty base url")
	}
	if _, err := agent.New("ftp://example.com"); err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestSubmitRequiresMessage(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1")
	if _, err := client.Submit(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty message")
	}
}

func TestSubmitRejectionCarriesBodyText(t *testing.T) {
	stub := newAgentStub()
	stub.submitStatus = http.StatusServiceUnavailable
	stub.acceptedBody = "agent warming up"
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	_, err := client.Submit(context.Background(), "kimchi stew")
	if !errors.Is(err, agent.ErrSubmission) {
		t.Fatalf("expected ErrSubmission, got %v", err)
	}
	if !strings.Contains(err.Error(), "agent warming up") {
		t.Fatalf("expected verbatim body in error, got %q", err)
	}
}

func TestSubmitWithoutJobIDIsProtocolError(t *testing.T) {
	stub := newAgentStub()
	stub.acceptedBody = `{}`
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	if _, err := client.Submit(context.Background(), "hello"); !errors.Is(err, agent.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestPollResolvesAfterProcessing(t *testing.T) {
	stub := newAgentStub(
		`{"status":"processing"}`,
		`{"status":"processing"}`,
		`{"status":"completed","result":{"answer":"done","recipes":[]}}`,
	)
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	raw, err := job.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait returned error: %v", err)
	}
	if raw.Answer != "done" {
		t.Fatalf("unexpected answer %q", raw.Answer)
	}
	assertNoFurtherStatusCalls(t, stub)
}

func TestPollFailureUsesBackendMessage(t *testing.T) {
	stub := newAgentStub(`{"status":"failed","error":"pot boiled over"}`)
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	_, err = job.Wait(context.Background())
	var failure *agent.JobFailedError
	if !errors.As(err, &failure) {
		t.Fatalf("expected JobFailedError, got %v", err)
	}
	if failure.DisplayMessage() != "pot boiled over" {
		t.Fatalf("unexpected display message %q", failure.DisplayMessage())
	}
}

func TestPollFailureWithoutMessageFallsBack(t *testing.T) {
	stub := newAgentStub(`{"status":"failed"}`)
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	_, err = job.Wait(context.Background())
	var failure *agent.JobFailedError
	if !errors.As(err, &failure) {
		t.Fatalf("expected JobFailedError, got %v", err)
	}
	if failure.DisplayMessage() == "" {
		t.Fatal("expected generic fallback message")
	}
}

func TestPollFailsFastOnTransportError(t *testing.T) {
	stub := newAgentStub()
	stub.statusHandler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if _, err := job.Wait(context.Background()); !errors.Is(err, agent.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	assertNoFurtherStatusCalls(t, stub)
}

func TestCompletedWithoutResultIsProtocolError(t *testing.T) {
	stub := newAgentStub(`{"status":"completed"}`)
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if _, err := job.Wait(context.Background()); !errors.Is(err, agent.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
}

func TestMalformedStatusBodyStopsPolling(t *testing.T) {
	stub := newAgentStub(`{not json`)
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if _, err := job.Wait(context.Background()); !errors.Is(err, agent.ErrProtocol) {
		t.Fatalf("expected ErrProtocol, got %v", err)
	}
	assertNoFurtherStatusCalls(t, stub)
}

func TestCancelStopsPolling(t *testing.T) {
	stub := newAgentStub(`{"status":"processing"}`)
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	job.Cancel()
	if _, err := job.Wait(context.Background()); !errors.Is(err, agent.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	assertNoFurtherStatusCalls(t, stub)
}

func TestMaxPollDurationTimesOut(t *testing.T) {
	stub := newAgentStub(`{"status":"processing"}`)
	server := stub.server(t)

	client := newTestClient(t, server.URL, agent.WithMaxPollDuration(30*time.Millisecond))
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if _, err := job.Wait(context.Background()); !errors.Is(err, agent.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
}

func TestWaitHonorsCallerContext(t *testing.T) {
	stub := newAgentStub(`{"status":"processing"}`)
	server := stub.server(t)

	client := newTestClient(t, server.URL)
	job, err := client.Submit(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	defer job.Cancel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := job.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConcurrentJobsAreIndependent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/chat":
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte(fmt.Sprintf(`{"job_id":%q}`, r.Header.Get("X-Test-Job"))))
		case strings.HasPrefix(r.URL.Path, "/status/"):
			id := strings.TrimPrefix(r.URL.Path, "/status/")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"status":"completed","result":{"answer":%q,"recipes":[]}}`, id)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	// The stub echoes the job id into the answer, so mixed-up results would
	// be visible.
	client := newTestClient(t, server.URL, agent.WithHTTPClient(&http.Client{
		Transport: jobHeaderTransport{},
		Timeout:   time.Second,
	}))

	jobA, err := client.Submit(withJobHeader(context.Background(), "job-a"), "first")
	if err != nil {
		t.Fatalf("Submit job-a: %v", err)
	}
	jobB, err := client.Submit(withJobHeader(context.Background(), "job-b"), "second")
	if err != nil {
		t.Fatalf("Submit job-b: %v", err)
	}

	rawA, err := jobA.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait job-a: %v", err)
	}
	rawB, err := jobB.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait job-b: %v", err)
	}
	if rawA.Answer != "job-a" || rawB.Answer != "job-b" {
		t.Fatalf("results crossed: %q / %q", rawA.Answer, rawB.Answer)
	}
}

func TestCheckHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server.URL)
	if health := client.CheckHealth(context.Background()); !health.Agent {
		t.Fatal("expected healthy agent")
	}

	server.Close()
	if health := client.CheckHealth(context.Background()); health.Agent {
		t.Fatal("expected unhealthy agent after server shutdown")
	}
}

func TestNewFromConfig(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithAgentURL(server.URL))
	client, err := agent.NewFromConfig(cfg, nil)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if health := client.CheckHealth(context.Background()); !health.Agent {
		t.Fatal("expected healthy agent")
	}
}

// assertNoFurtherStatusCalls verifies the poll loop issues no request after a
// terminal observation.
func assertNoFurtherStatusCalls(t *testing.T, stub *agentStub) {
	t.Helper()
	settled := stub.statusCalls.Load()
	time.Sleep(6 * testPollInterval)
	if after := stub.statusCalls.Load(); after != settled {
		t.Fatalf("expected no status calls after settlement, saw %d more", after-settled)
	}
}

type jobHeaderKey struct{}

func withJobHeader(ctx context.Context, job string) context.Context {
	return context.WithValue(ctx, jobHeaderKey{}, job)
}

// jobHeaderTransport copies the context's job marker onto submit requests so
// the stub can hand out distinct job ids.
type jobHeaderTransport struct{}

func (jobHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if job, ok := req.Context().Value(jobHeaderKey{}).(string); ok {
		req = req.Clone(req.Context())
		req.Header.Set("X-Test-Job", job)
	}
	return http.DefaultTransport.RoundTrip(req)
}
