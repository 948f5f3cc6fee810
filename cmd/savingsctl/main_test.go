package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"cloud-savings/internal/leads"
)

const leadsCSV = `Company Name,Industry,Cloud Provider,Company Size (Employees),Estimated Spend ($M/year),Growth Rate (%),Churn Risk (%)
Bolt,FinTech,GCP,40,0.2,5,10
Acme,SaaS,AWS,250,1.5,25,60
Cobalt,Gaming,Azure,1200,0.75,12,55
`

func runApp(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	if err := app.Run(append([]string{"savingsctl"}, args...)); err != nil {
		t.Fatalf("run %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestScoreExportKeepsFileOrder(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "leads.csv")
	out := filepath.Join(dir, leads.ExportFileName)
	if err := os.WriteFile(in, []byte(leadsCSV), 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	printed := runApp(t, "score", "--file", in, "--export", out)
	if !strings.Contains(printed, "Leads: 3") {
		t.Fatalf("expected summary line, got %q", printed)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(lines))
	}
	var names []string
	for _, line := range lines[1:] {
		names = append(names, strings.SplitN(line, ",", 2)[0])
	}
	if strings.Join(names, ",") != "Bolt,Acme,Cobalt" {
		t.Fatalf("expected rows in file order, got %v", names)
	}
}

func TestScoreFileFlagNamesRealColumns(t *testing.T) {
	var usage string
	for _, f := range scoreCommand().Flags {
		if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "file" {
			usage = sf.Usage
		}
	}
	for _, col := range leads.InputColumns() {
		if !strings.Contains(usage, col) {
			t.Fatalf("usage %q does not mention column %q", usage, col)
		}
	}
}

func TestAnalyzePrintsSavings(t *testing.T) {
	printed := runApp(t, "analyze", "--service", "Storage (S3)", "--utilization", "15", "--billing", "Hourly", "--cost", "1000")
	for _, want := range []string{"Storage (S3)", "Potential Savings: $600.00", "Optimized Cost: $400.00"} {
		if !strings.Contains(printed, want) {
			t.Fatalf("expected %q in output:\n%s", want, printed)
		}
	}
}
