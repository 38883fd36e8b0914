package studentapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/studentportal/profilecli/internal/profile"
)

const testUserID = "6f1c2a3b-4d5e-4f60-8a7b-9c0d1e2f3a4b"

const mockProfileResponse = `{"id":"0b9f3f0e-4b1d-4c55-9a39-1f1f7d1f2c10","user_id":"6f1c2a3b-4d5e-4f60-8a7b-9c0d1e2f3a4b","iin":"123456789012","last_name":"Doe","first_name":"John","phone":"+7 700 0000000","date_of_birth":"1990-01-01","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}`

func testDraft() profile.ProfileDraft {
	return profile.ProfileDraft{
		IIN:         "123456789012",
		LastName:    "Doe",
		FirstName:   "John",
		Phone:       "+7 700 0000000",
		DateOfBirth: "1990-01-01",
	}
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	client, err := NewClient(url, testUserID)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.RetryDelay = time.Millisecond
	client.MaxRetryDelay = 5 * time.Millisecond
	return client
}

func TestNewClient(t *testing.T) {
	client, err := NewClient("http://localhost:8080/", testUserID)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	if client.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %s, want http://localhost:8080", client.BaseURL)
	}
	if client.UserID.String() != testUserID {
		t.Errorf("UserID = %s, want %s", client.UserID, testUserID)
	}
	if client.Role != RoleStudent {
		t.Errorf("Role = %s, want %s", client.Role, RoleStudent)
	}
	if client.HTTPClient == nil {
		t.Error("HTTPClient should not be nil")
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		userID  string
	}{
		{"empty url", "", testUserID},
		{"empty user id", "http://localhost", ""},
		{"malformed user id", "http://localhost", "not-a-uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.baseURL, tt.userID)
			if !IsConfigError(err) {
				t.Errorf("NewClient() error = %v, want config error", err)
			}
		})
	}
}

func TestSetTimeout(t *testing.T) {
	client := newTestClient(t, "http://localhost")
	client.SetTimeout(5 * time.Second)

	if client.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", client.HTTPClient.Timeout)
	}
}

func TestSubmitProfile_CreateSendsHeadersAndBody(t *testing.T) {
	var gotMethod string
	var gotBody map[string]string
	var gotUser, gotRole, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotUser = r.Header.Get("X-User-ID")
		gotRole = r.Header.Get("X-User-Role")
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != ProfilePath {
			t.Errorf("path = %s, want %s", r.URL.Path, ProfilePath)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(mockProfileResponse))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.Token = "abc"

	if err := client.SubmitProfile(context.Background(), testDraft()); err != nil {
		t.Fatalf("SubmitProfile() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotUser != testUserID {
		t.Errorf("X-User-ID = %s, want %s", gotUser, testUserID)
	}
	if gotRole != "student" {
		t.Errorf("X-User-Role = %s, want student", gotRole)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %s, want Bearer abc", gotAuth)
	}
	if gotBody["iin"] != "123456789012" || gotBody["last_name"] != "Doe" || gotBody["date_of_birth"] != "1990-01-01" {
		t.Errorf("body = %v", gotBody)
	}
	if _, ok := gotBody["middle_name"]; ok {
		t.Error("empty middle_name should be omitted")
	}
}

func TestSubmitProfile_UpdateUsesPut(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(mockProfileResponse))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.UpdateExisting = true

	if err := client.SubmitProfile(context.Background(), testDraft()); err != nil {
		t.Fatalf("SubmitProfile() error = %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s, want PUT", gotMethod)
	}
}

func TestSubmitProfile_ErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantMsg  string
		wantType ErrorType
	}{
		{"conflict", http.StatusConflict, `{"error":"profile already exists"}`, "profile already exists", ErrTypeConflict},
		{"forbidden", http.StatusForbidden, `{"error":"Only students can create student profile"}`, "Only students can create student profile", ErrTypeForbidden},
		{"not found", http.StatusNotFound, `{"error":"profile not found"}`, "profile not found", ErrTypeNotFound},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Invalid token"}`, "Invalid token", ErrTypeAuth},
		{"server error empty body", http.StatusInternalServerError, ``, "", ErrTypeHTTP},
		{"empty error field", http.StatusBadRequest, `{"error":""}`, "", ErrTypeHTTP},
		{"plain text body", http.StatusBadGateway, "bad gateway\n", "bad gateway", ErrTypeHTTP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newTestClient(t, server.URL).SubmitProfile(context.Background(), testDraft())
			if err == nil {
				t.Fatal("SubmitProfile() should fail")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) || apiErr.Type != tt.wantType {
				t.Errorf("error type = %v, want %v", apiErr, tt.wantType)
			}
		})
	}
}

func TestSubmitProfile_NeverRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_ = newTestClient(t, server.URL).SubmitProfile(context.Background(), testDraft())

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server called %d times, want 1", n)
	}
}

func TestSubmitProfile_ThroughController(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"success", http.StatusCreated, mockProfileResponse, ""},
		{"server message", http.StatusConflict, `{"error":"network down"}`, "network down"},
		{"empty message", http.StatusInternalServerError, ``, profile.MsgSubmitFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			ctrl := profile.NewController()
			for _, f := range profile.Fields {
				ctrl.SetField(f, testDraft().Get(f))
			}
			ctrl.Submit(context.Background(), newTestClient(t, server.URL))

			if ctrl.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", ctrl.Error(), tt.wantMsg)
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		_, _ = w.Write([]byte(mockProfileResponse))
	}))
	defer server.Close()

	p, err := newTestClient(t, server.URL).GetProfile(context.Background())
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}

	if p.IIN != "123456789012" {
		t.Errorf("IIN = %s, want 123456789012", p.IIN)
	}
	if p.FullName() != "Doe John" {
		t.Errorf("FullName() = %q, want %q", p.FullName(), "Doe John")
	}
	if p.Draft() != testDraft() {
		t.Errorf("Draft() = %+v, want %+v", p.Draft(), testDraft())
	}
}

func TestGetProfile_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(mockProfileResponse))
	}))
	defer server.Close()

	if _, err := newTestClient(t, server.URL).GetProfile(context.Background()); err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("server called %d times, want 3", n)
	}
}

func TestGetProfile_DoesNotRetryNotFound(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"profile not found"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).GetProfile(context.Background())
	if !IsNotFoundError(err) {
		t.Errorf("GetProfile() error = %v, want not found", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server called %d times, want 1", n)
	}
}

func TestGetProfile_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"iin":`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).GetProfile(context.Background())
	if !IsParseError(err) {
		t.Errorf("GetProfile() error = %v, want parse error", err)
	}
}

func TestGetProfile_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.RetryDelay = time.Hour
	client.MaxRetryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.GetProfile(ctx)
	if err == nil {
		t.Fatal("GetProfile() should fail")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("GetProfile() ignored context cancellation")
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != HealthPath {
			t.Errorf("path = %s, want %s", r.URL.Path, HealthPath)
		}
		_, _ = w.Write([]byte(`{"status":"ok","service":"student-service"}`))
	}))
	defer server.Close()

	h, err := newTestClient(t, server.URL).Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if !h.OK() || h.Service != "student-service" {
		t.Errorf("Health() = %+v", h)
	}
}

func TestHealth_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(t, url)
	client.MaxRetries = 0

	_, err := client.Health(context.Background())
	if !IsNetworkError(err) {
		t.Errorf("Health() error = %v, want network error", err)
	}
}
