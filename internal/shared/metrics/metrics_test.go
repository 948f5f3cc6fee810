package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

func parse(t *testing.T, body string) map[string]*dto.MetricFamily {
	t.Helper()
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse metrics: %v\n%s", err, body)
	}
	return families
}

func TestRenderIsValidExposition(t *testing.T) {
	before := parse(t, Render())
	startSent := before["notifications_sent_total"].GetMetric()[0].GetCounter().GetValue()

	AddLeadsUploaded(3)
	IncNotificationSent()
	IncSavingsAnalysis("Storage")
	IncSavingsAnalysis("Storage")
	IncSavingsAnalysis("Compute")
	ObserveMailSendMs(75)
	ObserveMailSendMs(20000)

	families := parse(t, Render())

	sent := families["notifications_sent_total"].GetMetric()[0].GetCounter().GetValue()
	if sent != startSent+1 {
		t.Fatalf("expected notifications_sent_total %v, got %v", startSent+1, sent)
	}

	analyses := families["savings_analyses_total"]
	if analyses == nil || analyses.GetType() != dto.MetricType_COUNTER {
		t.Fatalf("expected savings_analyses_total counter family")
	}
	byService := map[string]float64{}
	for _, m := range analyses.GetMetric() {
		for _, lp := range m.GetLabel() {
			if lp.GetName() == "service" {
				byService[lp.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	if byService["Storage"] < 2 || byService["Compute"] < 1 {
		t.Fatalf("unexpected per-service counts: %v", byService)
	}

	hist := families["mail_send_duration_ms"].GetMetric()[0].GetHistogram()
	if hist.GetSampleCount() < 2 {
		t.Fatalf("expected at least 2 samples, got %d", hist.GetSampleCount())
	}
	var prev uint64
	for _, b := range hist.GetBucket() {
		if b.GetCumulativeCount() < prev {
			t.Fatalf("bucket counts must be cumulative, got %d after %d", b.GetCumulativeCount(), prev)
		}
		prev = b.GetCumulativeCount()
	}
	if prev > hist.GetSampleCount() {
		t.Fatalf("largest finite bucket %d exceeds sample count %d", prev, hist.GetSampleCount())
	}
}

func TestHistogramBuckets(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)
	snap := h.Snapshot()
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts %v", snap.counts)
	}
	if snap.count != 3 || snap.sum != 555 {
		t.Fatalf("unexpected count/sum %d/%v", snap.count, snap.sum)
	}
}

func TestHandlerContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/metrics", Handler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/plain") {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(w.Body.String(), "leads_uploaded_total") {
		t.Fatalf("expected leads_uploaded_total in body")
	}
}
