package httpsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchCharges(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"NETFLIX": {"tipo": "mensual", "dia_pago": 19, "promedio_monto": 11.62},
			"OXXO": {"tipo": "mensual", "dia_pago": 12, "promedio_monto": 15.25}
		}`))
	}))
	defer srv.Close()

	charges, err := New(srv.URL, 5*time.Second).FetchCharges(context.Background())
	if err != nil {
		t.Fatalf("FetchCharges: %v", err)
	}
	if len(charges) != 2 || charges[0].MerchantName != "NETFLIX" {
		t.Fatalf("charges = %+v", charges)
	}
}

func TestFetchChargesNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := New(srv.URL, 5*time.Second).FetchCharges(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}

func TestFetchChargesRejectsMalformedEntry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"OXXO": {"tipo": "mensual", "dia_pago": 42, "promedio_monto": 1}}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, 5*time.Second).FetchCharges(context.Background()); err == nil {
		t.Fatal("expected validation error for day 42")
	}
}
