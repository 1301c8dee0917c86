package signup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClient_Register_Created(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/captains/register" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %s", ct)
		}

		var p Payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if p.Vehicle.Capacity != "4" {
			t.Errorf("expected capacity sent as string 4, got %q", p.Vehicle.Capacity)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(createdBody))
	}))
	defer srv.Close()

	// Trailing slash on the base URL must not double up.
	client := NewClient(srv.URL+"/api/", srv.Client())

	resp, err := client.Register(context.Background(), Payload{Vehicle: VehiclePayload{Capacity: "4"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token != "tok-123" {
		t.Errorf("expected token tok-123, got %s", resp.Token)
	}
	if resp.Captain.FullName.FirstName != "Ramesh" || resp.Captain.Vehicle.VehicleType != "car" {
		t.Errorf("unexpected captain %+v", resp.Captain)
	}
}

func TestClient_Register_CreatedWithBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.Client()).Register(context.Background(), Payload{})

	var regErr *RegistrationError
	if !errors.As(err, &regErr) {
		t.Fatalf("expected *RegistrationError, got %v", err)
	}
	if regErr.StatusCode != http.StatusCreated || regErr.Err == nil {
		t.Errorf("unexpected error %+v", regErr)
	}
}

func TestClient_Register_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, srv.Client()).Register(ctx, Payload{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRegistrationError_Error(t *testing.T) {
	testCases := []struct {
		name string
		err  *RegistrationError
		want string
	}{
		{"transport", &RegistrationError{Err: errors.New("dial tcp: refused")}, "registration request failed: dial tcp: refused"},
		{"message", &RegistrationError{StatusCode: 400, Message: "captain already exists"}, "registration rejected with status 400: captain already exists"},
		{"fields", &RegistrationError{StatusCode: 400, Fields: map[string]string{"email": "Invalid Email"}}, "registration rejected with status 400: 1 invalid fields"},
		{"bare", &RegistrationError{StatusCode: 502}, "registration rejected with status 502"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDecodeRejection_ErrorText(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusUnauthorized,
		Body:       httptestBody(`{"error":"unauthorized","message":"Unauthorized"}`),
	}

	regErr := decodeRejection(resp)
	if regErr.Message != "Unauthorized" {
		t.Errorf("expected message Unauthorized, got %q", regErr.Message)
	}
	if regErr.Err == nil || regErr.Err.Error() != "unauthorized" {
		t.Errorf("expected wrapped error text, got %v", regErr.Err)
	}
}

func httptestBody(s string) *readCloser {
	return &readCloser{Reader: strings.NewReader(s)}
}

type readCloser struct {
	*strings.Reader
}

func (readCloser) Close() error { return nil }
