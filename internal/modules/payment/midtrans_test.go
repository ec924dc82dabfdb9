package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/snap/v1/transactions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") == "" {
			t.Error("missing Authorization header")
		}
		var payload snapPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		if payload.TransactionDetails.OrderID != "ORDER-1" {
			t.Errorf("order id = %s", payload.TransactionDetails.OrderID)
		}
		if payload.TransactionDetails.GrossAmount != 25000 {
			t.Errorf("gross amount = %d", payload.TransactionDetails.GrossAmount)
		}
		json.NewEncoder(w).Encode(Session{Token: "tok-1", RedirectURL: "https://pay.example/tok-1"})
	}))
	defer srv.Close()

	g := NewMidtransGateway(MidtransConfig{ServerKey: "sk", SnapBaseURL: srv.URL})
	session, err := g.CreateSession(context.Background(), SessionRequest{
		OrderID:     "ORDER-1",
		GrossAmount: 25000,
		Items:       []Item{{ID: "1", Name: "mug", Price: 12500, Qty: 2}},
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if session.Token != "tok-1" || session.RedirectURL != "https://pay.example/tok-1" {
		t.Errorf("unexpected session %+v", session)
	}
}

func TestCreateSession_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewMidtransGateway(MidtransConfig{ServerKey: "sk", SnapBaseURL: srv.URL})
	_, err := g.CreateSession(context.Background(), SessionRequest{OrderID: "ORDER-1", GrossAmount: 1})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}

func TestCreateSession_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	g := NewMidtransGateway(MidtransConfig{ServerKey: "sk", SnapBaseURL: srv.URL, Timeout: 10 * time.Millisecond})
	_, err := g.CreateSession(context.Background(), SessionRequest{OrderID: "ORDER-1", GrossAmount: 1})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}
}

func TestQueryStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/ORDER-1/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"transaction_status": "settlement"})
	}))
	defer srv.Close()

	g := NewMidtransGateway(MidtransConfig{ServerKey: "sk", APIBaseURL: srv.URL})
	status, err := g.QueryStatus(context.Background(), "ORDER-1")
	if err != nil {
		t.Fatalf("QueryStatus: %v", err)
	}
	if status != StatusSuccess {
		t.Errorf("status = %s", status)
	}
}

func TestMapStatus(t *testing.T) {
	cases := map[string]Status{
		"settlement": StatusSuccess,
		"capture":    StatusSuccess,
		"deny":       StatusFailure,
		"cancel":     StatusFailure,
		"expire":     StatusFailure,
		"failure":    StatusFailure,
		"pending":    StatusPending,
		"authorize":  StatusPending,
		"":           StatusPending,
	}
	for in, want := range cases {
		if got := MapStatus(in); got != want {
			t.Errorf("MapStatus(%q) = %s, want %s", in, got, want)
		}
	}
}
