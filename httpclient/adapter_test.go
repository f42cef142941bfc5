package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestAdapter_Do_GET(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/v1/models" {
			t.Errorf("expected /v1/models, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"model_id": "scribe_v2"})
	}))
	defer srv.Close()

	c, err := New(Config{BaseURL: srv.URL + "/v1/"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/models"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsSuccess() || resp.IsError() {
		t.Errorf("expected success, got %d", resp.StatusCode)
	}
	if resp.Status != "OK" {
		t.Errorf("expected reason phrase OK, got %q", resp.Status)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("unexpected headers %v", resp.Headers)
	}
	if !strings.Contains(resp.Text(), "scribe_v2") {
		t.Errorf("response body should contain scribe_v2, got %s", resp.Text())
	}
}

func TestAdapter_Do_POST_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected Content-Type application/json, got %s", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "x" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/", Body: map[string]string{"name": "x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("expected 201, got %d", resp.StatusCode)
	}
}

func TestAdapter_Do_HeadersQueryAndAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("xi-api-key"); got != "request-key" {
			t.Errorf("xi-api-key = %q, want request-key", got)
		}
		if got := r.Header.Get("User-Agent"); got != "scribeproxy/test" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("X-Trace"); got != "override" {
			t.Errorf("X-Trace = %q, want override", got)
		}
		if got := r.URL.Query().Get("enable_logging"); got != "false" {
			t.Errorf("query = %q", r.URL.RawQuery)
		}
	}))
	defer srv.Close()

	c, _ := New(Config{
		BaseURL: srv.URL,
		Auth:    APIKeyAuthHeader("client-key", "xi-api-key"),
		Headers: map[string]string{"User-Agent": "scribeproxy/test", "X-Trace": "default"},
	})
	_, err := c.Do(context.Background(), Request{
		Method:  http.MethodGet,
		Path:    "/",
		Headers: map[string]string{"X-Trace": "override"},
		Query:   map[string]string{"enable_logging": "false"},
		Auth:    APIKeyAuthHeader("request-key", "xi-api-key"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAdapter_Do_ErrorStatusKeepsResponse(t *testing.T) {
	tests := []struct {
		code    int
		reason  string
		checker func(error) bool
	}{
		{401, "Unauthorized", IsAuth},
		{422, "Unprocessable Entity", IsStatusError},
		{429, "Too Many Requests", IsRateLimit},
		{500, "Internal Server Error", IsServerError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP_%d", tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(`{"detail":{"message":"nope"}}`))
			}))
			defer srv.Close()

			c, _ := New(Config{BaseURL: srv.URL})
			resp, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/"})
			if err == nil || !tt.checker(err) {
				t.Fatalf("unexpected error classification: %v", err)
			}
			if resp == nil {
				t.Fatal("expected response even on error")
			}
			if resp.StatusCode != tt.code || resp.Status != tt.reason {
				t.Errorf("got %d %q, want %d %q", resp.StatusCode, resp.Status, tt.code, tt.reason)
			}
			if resp.Text() != `{"detail":{"message":"nope"}}` {
				t.Errorf("body not kept: %s", resp.Text())
			}
		})
	}
}

func TestAdapter_Do_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if resp != nil {
		t.Error("expected no response on timeout")
	}
	if !IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if IsStatusError(err) {
		t.Error("timeout must not look like an upstream answer")
	}
}

func TestAdapter_Do_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(Config{BaseURL: url})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsConnection(err) {
		t.Fatalf("expected connection error, got %v", err)
	}
}

func TestAdapter_Do_FullURL_IgnoresBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: "http://should-not-be-used.invalid"})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL + "/direct"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

type countingTransport struct {
	next  http.RoundTripper
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return c.next.RoundTrip(r)
}

func TestAdapter_WithTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ct := &countingTransport{next: http.DefaultTransport}
	c, _ := New(Config{BaseURL: srv.URL}, WithTransport(ct))
	if _, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct.calls != 1 {
		t.Errorf("expected 1 round trip through custom transport, got %d", ct.calls)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{Timeout: -time.Second}); err == nil {
		t.Fatal("expected error for negative timeout")
	}
}

func TestReasonPhrase(t *testing.T) {
	tests := []struct {
		resp *http.Response
		want string
	}{
		{&http.Response{StatusCode: 400, Status: "400 Bad Request"}, "Bad Request"},
		{&http.Response{StatusCode: 418, Status: "418 Custom Reason"}, "Custom Reason"},
		{&http.Response{StatusCode: 404}, "Not Found"},
	}
	for _, tt := range tests {
		if got := reasonPhrase(tt.resp); got != tt.want {
			t.Errorf("reasonPhrase(%q) = %q, want %q", tt.resp.Status, got, tt.want)
		}
	}
}
