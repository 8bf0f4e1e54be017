package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider. Text is returned
// by Transcribe; Content by Generate.
type MockResponse struct {
	Content json.RawMessage
	Text    string
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider and Transcriber for testing.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
	Audio     [][]byte
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	resp, err := m.next()
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

// Transcribe returns the next canned response's Text.
func (m *MockProvider) Transcribe(_ context.Context, audio []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Audio = append(m.Audio, audio)
	resp, err := m.next()
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

func (m *MockProvider) next() (MockResponse, error) {
	if len(m.responses) == 0 {
		return MockResponse{}, &ErrProviderUnavailable{}
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, resp.Err
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// TranscribeModelID returns "mock-speech".
func (m *MockProvider) TranscribeModelID() string {
	return "mock-speech"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
