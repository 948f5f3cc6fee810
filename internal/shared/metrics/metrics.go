package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	leadsUploadedTotal  atomic.Uint64
	leadsAddedTotal     atomic.Uint64
	leadsExportedTotal  atomic.Uint64
	leadsSyncedTotal    atomic.Uint64
	notificationsSent   atomic.Uint64
	notificationsFailed atomic.Uint64

	analysesByService = newCounterVec("service")

	mailSendDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000})
)

// AddLeadsUploaded counts leads ingested from CSV uploads.
func AddLeadsUploaded(n int) {
	if n > 0 {
		leadsUploadedTotal.Add(uint64(n))
	}
}

// IncLeadsAdded counts a manually added lead.
func IncLeadsAdded() {
	leadsAddedTotal.Add(1)
}

// IncLeadsExported counts a CSV export.
func IncLeadsExported() {
	leadsExportedTotal.Add(1)
}

// AddLeadsSynced counts leads pushed to the CRM webhook.
func AddLeadsSynced(n int) {
	if n > 0 {
		leadsSyncedTotal.Add(uint64(n))
	}
}

// IncSavingsAnalysis counts one rule-engine run for the given service type.
func IncSavingsAnalysis(service string) {
	analysesByService.Inc(service)
}

// IncNotificationSent counts a delivered email.
func IncNotificationSent() {
	notificationsSent.Add(1)
}

// IncNotificationFailed counts a failed email.
func IncNotificationFailed() {
	notificationsFailed.Add(1)
}

// ObserveMailSendMs records one SMTP round trip in milliseconds.
func ObserveMailSendMs(value float64) {
	if value < 0 {
		value = 0
	}
	mailSendDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "leads_uploaded_total", "Total leads ingested from CSV uploads", leadsUploadedTotal.Load())
	writeCounter(&buf, "leads_added_total", "Total leads added manually", leadsAddedTotal.Load())
	writeCounter(&buf, "leads_exported_total", "Total prioritized lead exports", leadsExportedTotal.Load())
	writeCounter(&buf, "leads_synced_total", "Total leads pushed to the CRM webhook", leadsSyncedTotal.Load())
	writeCounterVec(&buf, "savings_analyses_total", "Total savings analyses by service type", analysesByService)
	writeCounter(&buf, "notifications_sent_total", "Total recommendation emails delivered", notificationsSent.Load())
	writeCounter(&buf, "notifications_failed_total", "Total recommendation emails that failed", notificationsFailed.Load())
	writeHistogram(&buf, "mail_send_duration_ms", "SMTP send duration in milliseconds", mailSendDuration.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	label  string
	values map[string]uint64
}

func newCounterVec(label string) *counterVec {
	return &counterVec{label: label, values: make(map[string]uint64)}
}

func (v *counterVec) Inc(labelValue string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.values[labelValue]++
}

func (v *counterVec) snapshot() (keys []string, values map[string]uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	values = make(map[string]uint64, len(v.values))
	for k, n := range v.values {
		keys = append(keys, k)
		values[k] = n
	}
	sort.Strings(keys)
	return keys, values
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket that holds it; rendering accumulates.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeCounterVec(buf *bytes.Buffer, name, help string, vec *counterVec) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys, values := vec.snapshot()
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s=\"%s\"} %d\n", name, vec.label, escapeLabel(k), values[k])
	}
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(v string) string {
	return labelEscaper.Replace(v)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
