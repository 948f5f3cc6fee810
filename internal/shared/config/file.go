package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML overlay. Secrets are intentionally absent; they are read from the environment only.
type fileConfig struct {
	Port             string        `yaml:"port"`
	Env              string        `yaml:"env"`
	LogLevel         string        `yaml:"log_level"`
	CORSAllowOrigins []string      `yaml:"cors_allow_origins"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
	TopLeadsLimit    int           `yaml:"top_leads_limit"`

	Mail struct {
		Host    string        `yaml:"host"`
		Port    int           `yaml:"port"`
		From    string        `yaml:"from"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"mail"`

	NATS struct {
		URL           string `yaml:"url"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"nats"`

	CRM struct {
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"crm"`

	Notify struct {
		Rate  float64 `yaml:"rate"`
		Burst int     `yaml:"burst"`
	} `yaml:"notify"`

	AWSRegion string `yaml:"aws_region"`

	SQS struct {
		QueueURL string `yaml:"queue_url"`
	} `yaml:"sqs"`

	Archive struct {
		Dir    string `yaml:"dir"`
		Bucket string `yaml:"bucket"`
		Prefix string `yaml:"prefix"`
	} `yaml:"archive"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	setString(&cfg.Port, fc.Port)
	if fc.Env != "" {
		cfg.Env = normalizeEnv(fc.Env)
	}
	setString(&cfg.LogLevel, fc.LogLevel)
	if len(fc.CORSAllowOrigins) > 0 {
		cfg.CORSAllowOrigin = fc.CORSAllowOrigins
	}
	if fc.SessionTTL > 0 {
		cfg.SessionTTL = fc.SessionTTL
	}
	if fc.TopLeadsLimit > 0 {
		cfg.TopLeadsLimit = fc.TopLeadsLimit
	}
	setString(&cfg.Mail.Host, fc.Mail.Host)
	if fc.Mail.Port > 0 {
		cfg.Mail.Port = fc.Mail.Port
	}
	setString(&cfg.Mail.From, fc.Mail.From)
	if fc.Mail.Timeout > 0 {
		cfg.Mail.Timeout = fc.Mail.Timeout
	}
	setString(&cfg.NATSURL, fc.NATS.URL)
	setString(&cfg.NATSSubjectPrefix, fc.NATS.SubjectPrefix)
	setString(&cfg.CRMWebhookURL, fc.CRM.WebhookURL)
	if fc.Notify.Rate > 0 {
		cfg.NotifyRate = fc.Notify.Rate
	}
	if fc.Notify.Burst > 0 {
		cfg.NotifyBurst = fc.Notify.Burst
	}
	setString(&cfg.AWSRegion, fc.AWSRegion)
	setString(&cfg.SQSQueueURL, fc.SQS.QueueURL)
	setString(&cfg.Archive.Dir, fc.Archive.Dir)
	setString(&cfg.Archive.Bucket, fc.Archive.Bucket)
	setString(&cfg.Archive.Prefix, fc.Archive.Prefix)
	return nil
}

func setString(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}
