package savings_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cloud-savings/internal/bootstrap"
	"cloud-savings/internal/savings"
	"cloud-savings/internal/shared/config"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Defaults()
	cfg.Env = "test"
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(app.Close)
	return app.Router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := newRouter(t)
	resp := post(router, "/api/v1/savings/analyze",
		`{"serviceType":"Storage (S3)","utilization":15,"billingFrequency":"Hourly","currentCost":1000}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		ServiceType      string   `json:"serviceType"`
		Recommendations  []string `json:"recommendations"`
		PotentialSavings float64  `json:"potentialSavings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ServiceType != "Storage (S3)" || len(body.Recommendations) != 3 || body.PotentialSavings != 600 {
		t.Fatalf("unexpected response %+v", body)
	}
	if body.Recommendations[0] != savings.RecStorageGlacierArchive {
		t.Fatalf("unexpected first recommendation %q", body.Recommendations[0])
	}
}

func TestAnalyzeEndpointAcceptsStringCost(t *testing.T) {
	router := newRouter(t)
	resp := post(router, "/api/v1/savings/analyze",
		`{"serviceType":"compute","instanceType":"t2.micro","utilization":80,"billingFrequency":"monthly","currentCost":"99.99"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), `"potentialSavings":59.99`) {
		t.Fatalf("expected savings rounded to cents, got %s", resp.Body.String())
	}
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	router := newRouter(t)
	cases := []string{
		`{"serviceType":"Lambda","utilization":15,"billingFrequency":"Hourly","currentCost":1}`,
		`{"serviceType":"Storage","utilization":150,"billingFrequency":"Hourly","currentCost":1}`,
		`{"serviceType":"Storage","billingFrequency":"Hourly","currentCost":1}`,
		`{"serviceType":"Storage","utilization":15,"billingFrequency":"Weekly","currentCost":1}`,
		`{"serviceType":"Storage","utilization":15,"billingFrequency":"Hourly","currentCost":-5}`,
		`{"serviceType":"Compute","instanceType":"db.t3.micro","utilization":15,"billingFrequency":"Hourly","currentCost":1}`,
		`not json`,
	}
	for _, body := range cases {
		resp := post(router, "/api/v1/savings/analyze", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, resp.Code)
		}
	}
}

func TestVisualizeEndpoint(t *testing.T) {
	router := newRouter(t)
	body := `{"serviceType":"Database (RDS)","instanceType":"db.m5.large","utilization":30,"billingFrequency":"Hourly","currentCost":250.5}`

	resp := post(router, "/api/v1/savings/visualize", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"optimizedCost":100.20`) {
		t.Fatalf("unexpected comparison %s", resp.Body.String())
	}

	resp = post(router, "/api/v1/savings/visualize?format=html", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "Savings Visualization") {
		t.Fatalf("expected rendered chart")
	}
}

func TestCatalogEndpoint(t *testing.T) {
	router := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/savings/catalog", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "c5.xlarge") || !strings.Contains(resp.Body.String(), "db.r5.xlarge") {
		t.Fatalf("expected instance types in catalog, got %s", resp.Body.String())
	}
}
