package crm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud-savings/internal/leads"
)

func TestSendLeads(t *testing.T) {
	var (
		gotAuth string
		gotBody payload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-key", WithSource("dashboard"), WithTimeout(2*time.Second))
	batch := []leads.Record{
		{CompanyName: "Acme", Industry: leads.IndustrySaaS, CloudProvider: leads.ProviderAWS, EstimatedSpend: 1.5, GrowthRate: 25, ChurnRisk: 60, LeadScore: 58},
		{CompanyName: "Bolt", Industry: leads.IndustryFinTech, CloudProvider: leads.ProviderGCP, LeadScore: 11},
	}
	if err := client.SendLeads(context.Background(), batch); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAuth != "Bearer secret-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody.Source != "dashboard" || len(gotBody.Leads) != 2 {
		t.Fatalf("unexpected payload %+v", gotBody)
	}
	if gotBody.Leads[0].Rank != 1 || gotBody.Leads[0].CompanyName != "Acme" || gotBody.Leads[0].LeadScore != 58 {
		t.Fatalf("unexpected first lead %+v", gotBody.Leads[0])
	}
}

func TestSendLeadsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "").SendLeads(context.Background(), []leads.Record{{CompanyName: "Acme"}})
	if err == nil || !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected non-2xx error with body excerpt, got %v", err)
	}
}

func TestSendLeadsRequiresURL(t *testing.T) {
	if err := NewClient("", "").SendLeads(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty webhook url")
	}
}
