package health

import "testing"

type sessionCount int

func (s sessionCount) Len() int { return int(s) }

func TestStatusWithoutIntegrations(t *testing.T) {
	svc := &Service{Sessions: sessionCount(3), MailConfigured: true, ArchiveEnabled: true}
	report := svc.Status(t.Context())
	if !report.OK {
		t.Fatalf("expected ok report")
	}
	if report.Sessions != 3 {
		t.Fatalf("expected 3 sessions, got %d", report.Sessions)
	}
	want := map[string]string{"database": StatusDisabled, "mail": StatusOK, "events": StatusDisabled, "crm": StatusDisabled, "archive": StatusOK}
	for k, v := range want {
		if report.Components[k] != v {
			t.Fatalf("component %s: expected %s, got %s", k, v, report.Components[k])
		}
	}
}
