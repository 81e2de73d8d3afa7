// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/campaign-pipeline/internal/llm"
)

// Response is one scripted reply. Err takes precedence over Result.
type Response struct {
	Result *llm.Result
	Err    error
}

// Text returns a scripted successful reply with the given text
func Text(text string) Response {
	return Response{Result: &llm.Result{Text: text}}
}

// Fail returns a scripted failing reply
func Fail(err error) Response {
	return Response{Err: err}
}

// FakeClient replays scripted responses in order and records every request.
type FakeClient struct {
	mu        sync.Mutex
	responses []Response
	requests  []*llm.Request
	closed    bool
}

// NewFakeClient creates a client that answers calls with responses, in order
func NewFakeClient(responses ...Response) *FakeClient {
	return &FakeClient{responses: responses}
}

// Generate returns the next scripted response
func (f *FakeClient) Generate(_ context.Context, req *llm.Request) (*llm.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	idx := len(f.requests) - 1
	if idx >= len(f.responses) {
		return nil, fmt.Errorf("llmtest: unexpected call %d", idx+1)
	}

	resp := f.responses[idx]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return resp.Result, nil
}

// Model returns a fixed model name
func (f *FakeClient) Model() string {
	return "fake-model"
}

// Close marks the client closed
func (f *FakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Calls returns the number of Generate calls made
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns the recorded requests in call order
func (f *FakeClient) Requests() []*llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*llm.Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Closed reports whether Close was called
func (f *FakeClient) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

var _ llm.Client = (*FakeClient)(nil)
