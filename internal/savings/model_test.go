package savings

import (
	"errors"
	"testing"
)

func TestParseServiceType(t *testing.T) {
	cases := map[string]ServiceType{
		"Compute (EC2)":  ServiceCompute,
		"compute":        ServiceCompute,
		" EC2 ":          ServiceCompute,
		"Storage (S3)":   ServiceStorage,
		"s3":             ServiceStorage,
		"Database (RDS)": ServiceDatabase,
		"rds":            ServiceDatabase,
	}
	for raw, want := range cases {
		got, err := ParseServiceType(raw)
		if err != nil || got != want {
			t.Fatalf("ParseServiceType(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}
	if _, err := ParseServiceType("Lambda"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestServiceLabel(t *testing.T) {
	if ServiceCompute.Label() != "Compute (EC2)" || ServiceStorage.Label() != "Storage (S3)" || ServiceDatabase.Label() != "Database (RDS)" {
		t.Fatalf("unexpected labels")
	}
}

func TestConfigRequestToConfig(t *testing.T) {
	util := 15
	req := ConfigRequest{
		ServiceType:      "Storage (S3)",
		InstanceType:     "t2.micro",
		Utilization:      &util,
		BillingFrequency: "hourly",
		CurrentCost:      cost("1000"),
	}
	cfg, err := req.ToConfig()
	if err != nil {
		t.Fatalf("to config: %v", err)
	}
	if cfg.ServiceType != ServiceStorage || cfg.InstanceType != "" || cfg.BillingFrequency != BillingHourly {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := ResourceConfig{ServiceType: ServiceCompute, InstanceType: "t2.micro", Utilization: 50, BillingFrequency: BillingHourly, CurrentCost: cost("10")}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(c *ResourceConfig){
		"unknown service":  func(c *ResourceConfig) { c.ServiceType = "Queue" },
		"utilization high": func(c *ResourceConfig) { c.Utilization = 101 },
		"utilization low":  func(c *ResourceConfig) { c.Utilization = -1 },
		"billing":          func(c *ResourceConfig) { c.BillingFrequency = "Yearly" },
		"negative cost":    func(c *ResourceConfig) { c.CurrentCost = cost("-1") },
		"foreign instance": func(c *ResourceConfig) { c.InstanceType = "db.t3.micro" },
		"unknown instance": func(c *ResourceConfig) { c.InstanceType = "x9.huge" },
	}
	for name, mutate := range cases {
		cfg := valid
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestCatalog(t *testing.T) {
	entries := Catalog()
	if len(entries) != 3 {
		t.Fatalf("expected 3 services, got %d", len(entries))
	}
	if len(entries[0].InstanceTypes) != 8 || len(entries[1].InstanceTypes) != 0 || len(entries[2].InstanceTypes) != 6 {
		t.Fatalf("unexpected catalog %+v", entries)
	}
	if !ValidInstance(ServiceDatabase, "db.r5.large") || ValidInstance(ServiceStorage, "t2.micro") {
		t.Fatalf("unexpected ValidInstance results")
	}
}
