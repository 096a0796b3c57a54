package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port         string
	APIAccessKey string
	SearchConfig string

	// Pipeline (Gumloop) configuration
	PipelineAPIURL      string
	PipelineAPIKey      string
	PipelineUserID      string
	PipelineID          string
	PollInterval        int
	PollMaxAttempts     int
	PipelineHTTPTimeout int

	// LLM configuration
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Email (event invitations)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
