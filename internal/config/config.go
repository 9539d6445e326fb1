package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir     string `yaml:"data_dir"`
	MergedFile  string `yaml:"merged_file"`
	SummaryFile string `yaml:"summary_file"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	RequestDelay   time.Duration `yaml:"request_delay"`
	NewJobTarget   int           `yaml:"new_job_target"`
	DetailWorkers  int           `yaml:"detail_workers"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"retry_delay"`

	BDJobsSearchURL  string `yaml:"bdjobs_search_url"`
	BDJobsGatewayURL string `yaml:"bdjobs_gateway_url"`
	BDJobsPages      int    `yaml:"bdjobs_pages"`
	BDJobsPerPage    int    `yaml:"bdjobs_per_page"`

	NaukriSearchURL string `yaml:"naukri_search_url"`
	NaukriDetailURL string `yaml:"naukri_detail_url"`
	NaukriKeyword   string `yaml:"naukri_keyword"`
	NaukriSEOKey    string `yaml:"naukri_seo_key"`
	NaukriToken     string `yaml:"naukri_token"`

	RozeeSearchURL string `yaml:"rozee_search_url"`

	JobStreetSearchURL string `yaml:"jobstreet_search_url"`

	NATSURL         string        `yaml:"nats_url"`
	NATSConnTimeout time.Duration `yaml:"nats_conn_timeout"`

	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`

	ClickHouseDSN          string        `yaml:"clickhouse_dsn"`
	ClickHouseMaxOpenConns int           `yaml:"clickhouse_max_open_conns"`
	ClickHouseMaxIdleConns int           `yaml:"clickhouse_max_idle_conns"`
	ClickHouseConnMaxLife  time.Duration `yaml:"clickhouse_conn_max_life"`
	ClickHouseUsername     string        `yaml:"clickhouse_username"`
	ClickHousePassword     string        `yaml:"clickhouse_password"`
	ClickHouseDatabase     string        `yaml:"clickhouse_database"`

	HTTPAddr string `yaml:"http_addr"`

	TracingEndpoint string `yaml:"tracing_endpoint"`

	SMTPHost        string   `yaml:"smtp_host"`
	SMTPPort        int      `yaml:"smtp_port"`
	EmailSender     string   `yaml:"email_sender"`
	EmailPassword   string   `yaml:"email_password"`
	EmailRecipients []string `yaml:"email_recipients"`

	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// (JOBSWEEP_CONFIG), and environment variable overrides, in that order.
func LoadConfig() (*Config, error) {
	config := defaults()

	if path := os.Getenv("JOBSWEEP_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	config.DataDir = getEnvString("DATA_DIR", config.DataDir)
	config.MergedFile = getEnvString("MERGED_FILE", config.MergedFile)
	config.SummaryFile = getEnvString("SUMMARY_FILE", config.SummaryFile)

	config.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", config.RequestTimeout)
	config.RequestDelay = getEnvDuration("REQUEST_DELAY", config.RequestDelay)
	config.NewJobTarget = getEnvInt("NEW_JOB_TARGET", config.NewJobTarget)
	config.DetailWorkers = getEnvInt("DETAIL_WORKERS", config.DetailWorkers)
	config.MaxRetries = getEnvInt("MAX_RETRIES", config.MaxRetries)
	config.RetryDelay = getEnvDuration("RETRY_DELAY", config.RetryDelay)

	config.NaukriToken = getEnvString("NAUKRI_TOKEN", config.NaukriToken)

	config.NATSURL = getEnvString("NATS_URL", config.NATSURL)
	config.NATSConnTimeout = getEnvDuration("NATS_CONN_TIMEOUT", config.NATSConnTimeout)

	config.RedisAddr = getEnvString("REDIS_ADDR", config.RedisAddr)
	config.RedisPassword = getEnvString("REDIS_PASSWORD", config.RedisPassword)
	config.RedisDB = getEnvInt("REDIS_DB", config.RedisDB)
	config.CacheTTL = getEnvDuration("CACHE_TTL", config.CacheTTL)

	config.ClickHouseDSN = getEnvString("CLICKHOUSE_DSN", config.ClickHouseDSN)
	config.ClickHouseMaxOpenConns = getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", config.ClickHouseMaxOpenConns)
	config.ClickHouseMaxIdleConns = getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", config.ClickHouseMaxIdleConns)
	config.ClickHouseConnMaxLife = getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", config.ClickHouseConnMaxLife)
	config.ClickHouseUsername = getEnvString("CLICKHOUSE_USERNAME", config.ClickHouseUsername)
	config.ClickHousePassword = getEnvString("CLICKHOUSE_PASSWORD", config.ClickHousePassword)
	config.ClickHouseDatabase = getEnvString("CLICKHOUSE_DATABASE", config.ClickHouseDatabase)

	config.HTTPAddr = getEnvString("HTTP_ADDR", config.HTTPAddr)
	config.TracingEndpoint = getEnvString("TRACING_ENDPOINT", config.TracingEndpoint)

	config.SMTPHost = getEnvString("SMTP_HOST", config.SMTPHost)
	config.SMTPPort = getEnvInt("SMTP_PORT", config.SMTPPort)
	config.EmailSender = getEnvString("EMAIL_SENDER", config.EmailSender)
	config.EmailPassword = getEnvString("EMAIL_PASS", config.EmailPassword)
	if v := os.Getenv("EMAIL_RECIPIENTS"); v != "" {
		config.EmailRecipients = splitAndTrim(v)
	}

	config.TelegramToken = getEnvString("TELEGRAM_BOT_TOKEN", config.TelegramToken)
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.TelegramChatID = id
		}
	}

	return config, nil
}

func defaults() *Config {
	return &Config{
		DataDir:     "data",
		MergedFile:  "data/merged_jobs_common_schema.tsv",
		SummaryFile: "data/run_summary.json",

		RequestTimeout: 30 * time.Second,
		RequestDelay:   300 * time.Millisecond,
		NewJobTarget:   10000,
		DetailWorkers:  10,
		MaxRetries:     3,
		RetryDelay:     time.Second,

		BDJobsSearchURL:  "https://jobs.bdjobs.com/jobsearch.asp",
		BDJobsGatewayURL: "https://gateway.bdjobs.com/ActtivejobsTest/api/JobSubsystem/jobDetails",
		BDJobsPages:      55,
		BDJobsPerPage:    100,

		NaukriSearchURL: "https://www.naukri.com/jobapi/v3/search",
		NaukriDetailURL: "https://www.naukri.com/jobapi/v4/job",
		NaukriKeyword:   "indian portal",
		NaukriSEOKey:    "indian-portal-jobs",

		RozeeSearchURL: "https://www.rozee.pk/job/jsearch/q/all",

		JobStreetSearchURL: "https://jobsearch-api.cloud.seek.com.au/v5/search",

		NATSURL:         "nats://localhost:4222",
		NATSConnTimeout: 10 * time.Second,

		RedisAddr: "localhost:6379",
		CacheTTL:  24 * time.Hour,

		ClickHouseDSN:          "localhost:9000",
		ClickHouseMaxOpenConns: 10,
		ClickHouseMaxIdleConns: 5,
		ClickHouseConnMaxLife:  time.Hour,
		ClickHouseUsername:     "default",
		ClickHouseDatabase:     "jobsweep",

		HTTPAddr: ":8080",

		SMTPHost: "smtp.gmail.com",
		SMTPPort: 587,
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
