package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestClient_Get_InjectsCredentialAndHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("appid"); got != "test-key-1234567890" {
			t.Errorf("appid = %q, want test-key-1234567890", got)
		}
		if got := r.Header.Get("User-Agent"); got != "weather-app/1.0" {
			t.Errorf("User-Agent = %q, want weather-app/1.0", got)
		}
		if got := r.URL.Query().Get("lat"); got != "40.4165" {
			t.Errorf("lat = %q, want 40.4165", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := NewClient("test-key-1234567890", "weather-app/1.0", 2*time.Second, zap.NewNop())

	params := url.Values{}
	params.Set("lat", "40.4165")
	result, err := c.Get(context.Background(), "onecall", server.URL, params)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !result.OK() {
		t.Errorf("OK() = false, want true")
	}
	if !strings.Contains(string(result.Body), `"ok":true`) {
		t.Errorf("Body = %q, want json payload", result.Body)
	}
}

func TestClient_GetPlain_OmitsCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("appid") {
			t.Errorf("appid present in plain request: %s", r.URL.RawQuery)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClient("test-key-1234567890", "weather-app/1.0", 2*time.Second, zap.NewNop())

	if _, err := c.GetPlain(context.Background(), "nominatim", server.URL, nil); err != nil {
		t.Fatalf("GetPlain() error = %v", err)
	}
}

func TestClient_Get_NonOKStillReturnsBody(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"401 unauthorized", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`},
		{"429 rate limited", http.StatusTooManyRequests, `{"cod":429,"message":"quota exceeded"}`},
		{"500 server error", http.StatusInternalServerError, `{"cod":500}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient("test-key-1234567890", "weather-app/1.0", 2*time.Second, zap.NewNop())

			result, err := c.Get(context.Background(), "onecall", server.URL, nil)
			if err != nil {
				t.Fatalf("Get() error = %v, non-200 must not be a transport error", err)
			}
			if result.OK() {
				t.Errorf("OK() = true for status %d", tt.status)
			}
			if result.Status != tt.status {
				t.Errorf("Status = %d, want %d", result.Status, tt.status)
			}
			if string(result.Body) != tt.body {
				t.Errorf("Body = %q, want %q (error payload returned as data)", result.Body, tt.body)
			}
		})
	}
}

func TestClient_Get_TransportFailureIsAbsent(t *testing.T) {
	// A closed server produces a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := NewClient("test-key-1234567890", "weather-app/1.0", 500*time.Millisecond, zap.NewNop())

	result, err := c.Get(context.Background(), "onecall", server.URL, nil)
	if err == nil {
		t.Fatal("Get() error = nil, want transport error")
	}
	if result != nil {
		t.Errorf("result = %+v, want nil on transport failure", result)
	}
}

func TestClient_Get_InvalidURL(t *testing.T) {
	c := NewClient("k", "ua", time.Second, zap.NewNop())
	if _, err := c.Get(context.Background(), "onecall", "://bad", nil); err == nil {
		t.Fatal("Get() with invalid URL expected error")
	}
}

func TestResult_Decode(t *testing.T) {
	r := &Result{Status: http.StatusOK, Body: []byte(`{"lat":40.4,"lon":-3.7}`)}

	var got struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := r.Decode(&got); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.Lat != 40.4 || got.Lon != -3.7 {
		t.Errorf("Decode() = %+v, want lat 40.4 lon -3.7", got)
	}

	bad := &Result{Status: http.StatusOK, Body: []byte(`not json`)}
	if err := bad.Decode(&got); err == nil {
		t.Error("Decode() of invalid JSON expected error")
	}
}
