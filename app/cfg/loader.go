package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./saved_pages.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port         string `long:"port" env:"PORT" default:"5001" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	SearchConfig string `long:"search-config" env:"SEARCH_CONFIG" description:"Path to YAML search tuning file (optional)"`

	// Pipeline configuration
	PipelineAPIURL      string `long:"pipeline-api-url" env:"PIPELINE_API_URL" default:"https://api.gumloop.com/api/v1" description:"Base URL of the extraction pipeline API"`
	PipelineAPIKey      string `long:"pipeline-api-key" env:"PIPELINE_API_KEY" description:"Bearer token for the extraction pipeline API"`
	PipelineUserID      string `long:"pipeline-user-id" env:"PIPELINE_USER_ID" description:"Pipeline account user id"`
	PipelineID          string `long:"pipeline-id" env:"PIPELINE_ID" description:"Identifier of the extraction pipeline to run"`
	PollInterval        int    `long:"poll-interval" env:"POLL_INTERVAL" default:"2" description:"Delay between pipeline status polls in seconds"`
	PollMaxAttempts     int    `long:"poll-max-attempts" env:"POLL_MAX_ATTEMPTS" default:"10" description:"Maximum number of pipeline status polls per save"`
	PipelineHTTPTimeout int    `long:"pipeline-http-timeout" env:"PIPELINE_HTTP_TIMEOUT" default:"30" description:"Timeout for individual pipeline HTTP calls in seconds"`

	// LLM configuration
	LLMAPIKey  string `long:"llm-api-key" env:"LLM_API_KEY" description:"API key for the chat completion endpoint (optional)"`
	LLMBaseURL string `long:"llm-base-url" env:"LLM_BASE_URL" description:"Base URL of an OpenAI-compatible endpoint (optional)"`
	LLMModel   string `long:"llm-model" env:"LLM_MODEL" default:"gpt-4o-mini" description:"Model used for search ranking and chat"`

	// Email configuration
	SMTPHost     string `long:"smtp-host" env:"SMTP_HOST" default:"smtp.gmail.com" description:"SMTP server host for event invitations"`
	SMTPPort     string `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUsername string `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP username (invitations disabled when unset)"`
	SMTPPassword string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"SecondBrain/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Los_Angeles)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:              raw.DBPath,
		Port:                raw.Port,
		APIAccessKey:        raw.APIAccessKey,
		SearchConfig:        raw.SearchConfig,
		PipelineAPIURL:      raw.PipelineAPIURL,
		PipelineAPIKey:      raw.PipelineAPIKey,
		PipelineUserID:      raw.PipelineUserID,
		PipelineID:          raw.PipelineID,
		PollInterval:        raw.PollInterval,
		PollMaxAttempts:     raw.PollMaxAttempts,
		PipelineHTTPTimeout: raw.PipelineHTTPTimeout,
		LLMAPIKey:           raw.LLMAPIKey,
		LLMBaseURL:          raw.LLMBaseURL,
		LLMModel:            raw.LLMModel,
		SMTPHost:            raw.SMTPHost,
		SMTPPort:            raw.SMTPPort,
		SMTPUsername:        raw.SMTPUsername,
		SMTPPassword:        raw.SMTPPassword,
		UserAgent:           raw.UserAgent,
		Timezone:            raw.Timezone,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
