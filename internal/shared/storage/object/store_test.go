package object

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExportKey(t *testing.T) {
	at := time.Date(2026, 1, 18, 9, 30, 0, 0, time.FixedZone("CET", 3600))
	key, err := ExportKey("session-1", "prioritized_leads.csv", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := strings.Split(key, "/")
	if len(parts) != 2 {
		t.Fatalf("expected owner/name key, got %q", key)
	}
	if len(parts[0]) != 64 {
		t.Fatalf("expected hashed owner segment, got %q", parts[0])
	}
	if parts[1] != "20260118T083000Z_prioritized_leads.csv" {
		t.Fatalf("unexpected file segment %q", parts[1])
	}
}

func TestExportKeyRejectsBadInput(t *testing.T) {
	now := time.Now()
	if _, err := ExportKey("", "leads.csv", now); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for empty owner, got %v", err)
	}
	if _, err := ExportKey("s", "../leads.csv", now); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey for traversal, got %v", err)
	}
}
