package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okReply = MockResponse{Content: json.RawMessage(`{"reply":"ok"}`)}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantErr   bool
	}{
		{"first attempt", []MockResponse{okReply}, 1, false},
		{"transient then success", []MockResponse{unavailable(), okReply}, 2, false},
		{"all attempts fail", []MockResponse{unavailable(), unavailable(), unavailable(), okReply}, 3, true},
		{"rate limit honours retry-after", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
			okReply,
		}, 2, false},
		{"truncation not retried", []MockResponse{
			{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"re`)}},
			okReply,
		}, 1, true},
		{"rejection not retried", []MockResponse{
			{Err: &ErrRejected{Status: http.StatusUnauthorized, Err: errors.New("bad key")}},
			okReply,
		}, 1, true},
		{"invalid response retried once", []MockResponse{
			{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
			{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
			okReply,
		}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if string(resp.Content) != `{"reply":"ok"}` {
					t.Fatalf("unexpected content: %s", resp.Content)
				}
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), okReply)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, retryConfig()).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call before giving up, got %d", mock.CallCount())
	}
}

func TestRetry_SingleAttemptIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	cfg := retryConfig()
	cfg.MaxAttempts = 1
	if p := WithRetry(mock, cfg); p != Provider(mock) {
		t.Fatalf("expected the inner provider back, got %T", p)
	}
	if p := WithRetry(mock, retryConfig()); p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("sdk")
	header := http.Header{"Retry-After": []string{"7"}}

	var rl *ErrRateLimit
	if err := classifyStatus(cause, http.StatusTooManyRequests, header); !errors.As(err, &rl) || rl.RetryAfter != 7*time.Second {
		t.Fatalf("429 = %v", err)
	}
	if err := classifyStatus(cause, http.StatusTooManyRequests, nil); !errors.As(err, &rl) || rl.RetryAfter != 0 {
		t.Fatalf("429 without header = %v", err)
	}

	var rej *ErrRejected
	if err := classifyStatus(cause, http.StatusUnauthorized, nil); !errors.As(err, &rej) || rej.Status != 401 {
		t.Fatalf("401 = %v", err)
	}

	var unavail *ErrProviderUnavailable
	for _, status := range []int{0, http.StatusRequestTimeout, http.StatusBadGateway} {
		if err := classifyStatus(cause, status, nil); !errors.As(err, &unavail) {
			t.Fatalf("%d = %T", status, err)
		}
	}
	if err := classifyStatus(cause, 500, nil); !errors.Is(err, cause) {
		t.Fatal("classified errors should wrap the SDK error")
	}
}
