package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig
	Admin      AdminConfig

	// Storage
	Database DatabaseConfig
	Redis    RedisConfig

	// Chatbot core
	NLU      NLUConfig
	Dialogue DialogueConfig

	// LLM Provider Abstraction
	LLM LLMConfig

	// Channels
	Telegram TelegramConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	RequestsPerMin int
}

type AdminConfig struct {
	Token string
}

type DatabaseConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
	Seed         bool
}

type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type NLUConfig struct {
	IntentsPath   string
	ModelDir      string
	HighThreshold float64
	NoiseFloor    float64
	NgramMax      int
	MaxFeatures   int
	C             float64
	MaxIter       int
	LearningRate  float64
	Timezone      string
	TrainOnStart  bool
}

type DialogueConfig struct {
	DefaultUsername       string
	SessionTTL            time.Duration
	SessionCapacity       int
	QuickMatchConfidence  float64
	FlowConfidence        float64
	KeywordConfidence     float64
	LLMFallbackConfidence float64
	LLMSystemPrompt       string
	LLMTemperature        float64
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
	// TunnelAPIURL is a local ngrok API used to discover the public
	// webhook URL when WebhookURL is empty.
	TunnelAPIURL string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// A .env file in the working directory is applied first if present.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = viper.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.Admin.Token = expandEnvVar(viper.GetString("admin.token"))

	// Storage
	cfg.Database.Driver = viper.GetString("database.driver")
	cfg.Database.DSN = expandEnvVar(viper.GetString("database.dsn"))
	cfg.Database.MaxOpenConns = viper.GetInt("database.max_open_conns")
	cfg.Database.MaxIdleConns = viper.GetInt("database.max_idle_conns")
	cfg.Database.AutoMigrate = viper.GetBool("database.auto_migrate")
	cfg.Database.Seed = viper.GetBool("database.seed")

	cfg.Redis.Enabled = viper.GetBool("redis.enabled")
	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = expandEnvVar(viper.GetString("redis.password"))
	cfg.Redis.DB = viper.GetInt("redis.db")

	// NLU
	cfg.NLU.IntentsPath = viper.GetString("nlu.intents_path")
	cfg.NLU.ModelDir = viper.GetString("nlu.model_dir")
	cfg.NLU.HighThreshold = viper.GetFloat64("nlu.high_threshold")
	cfg.NLU.NoiseFloor = viper.GetFloat64("nlu.noise_floor")
	cfg.NLU.NgramMax = viper.GetInt("nlu.ngram_max")
	cfg.NLU.MaxFeatures = viper.GetInt("nlu.max_features")
	cfg.NLU.C = viper.GetFloat64("nlu.c")
	cfg.NLU.MaxIter = viper.GetInt("nlu.max_iter")
	cfg.NLU.LearningRate = viper.GetFloat64("nlu.learning_rate")
	cfg.NLU.Timezone = viper.GetString("nlu.timezone")
	cfg.NLU.TrainOnStart = viper.GetBool("nlu.train_on_start")

	// Dialogue
	cfg.Dialogue.DefaultUsername = viper.GetString("dialogue.default_username")
	cfg.Dialogue.SessionTTL = viper.GetDuration("dialogue.session_ttl")
	cfg.Dialogue.SessionCapacity = viper.GetInt("dialogue.session_capacity")
	cfg.Dialogue.QuickMatchConfidence = viper.GetFloat64("dialogue.quick_match_confidence")
	cfg.Dialogue.FlowConfidence = viper.GetFloat64("dialogue.flow_confidence")
	cfg.Dialogue.KeywordConfidence = viper.GetFloat64("dialogue.keyword_confidence")
	cfg.Dialogue.LLMFallbackConfidence = viper.GetFloat64("dialogue.llm_fallback_confidence")
	cfg.Dialogue.LLMSystemPrompt = viper.GetString("dialogue.llm_system_prompt")
	cfg.Dialogue.LLMTemperature = viper.GetFloat64("dialogue.llm_temperature")

	// Channels
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = expandEnvVar(viper.GetString("telegram.webhook_secret"))
	cfg.Telegram.TunnelAPIURL = viper.GetString("telegram.tunnel_api_url")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Providers = parseProviders(viper.Get("llm.providers"))

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.shutdown_timeout", "10s")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 60)

	// Storage defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "data/bank.db")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.auto_migrate", true)
	viper.SetDefault("database.seed", false)
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// NLU defaults
	viper.SetDefault("nlu.intents_path", "data/intents.json")
	viper.SetDefault("nlu.model_dir", "data/model")
	viper.SetDefault("nlu.high_threshold", 0.80)
	viper.SetDefault("nlu.noise_floor", 0.10)
	viper.SetDefault("nlu.ngram_max", 3)
	viper.SetDefault("nlu.max_features", 5000)
	viper.SetDefault("nlu.c", 10.0)
	viper.SetDefault("nlu.max_iter", 1000)
	viper.SetDefault("nlu.learning_rate", 1.0)
	viper.SetDefault("nlu.timezone", "Asia/Kolkata")
	viper.SetDefault("nlu.train_on_start", true)

	// Dialogue defaults
	viper.SetDefault("dialogue.default_username", "guest")
	viper.SetDefault("dialogue.session_ttl", "30m")
	viper.SetDefault("dialogue.session_capacity", 10000)
	viper.SetDefault("dialogue.quick_match_confidence", 1.0)
	viper.SetDefault("dialogue.flow_confidence", 0.95)
	viper.SetDefault("dialogue.keyword_confidence", 0.90)
	viper.SetDefault("dialogue.llm_fallback_confidence", 0.85)
	viper.SetDefault("dialogue.llm_system_prompt", "You are a helpful AI assistant for a banking application. Answer clearly and confidently. Do not mention knowledge cutoff dates or disclaimers.")
	viper.SetDefault("dialogue.llm_temperature", 0.3)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 1)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// parseProviders decodes the llm.providers list. YAML and env sources hand
// back loosely typed values, so every field goes through cast.
func parseProviders(raw any) []ProviderConfig {
	var providers []ProviderConfig
	for _, p := range cast.ToSlice(raw) {
		m := cast.ToStringMap(p)
		if len(m) == 0 {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:     cast.ToString(m["name"]),
			Enabled:  cast.ToBool(m["enabled"]),
			Priority: cast.ToInt(m["priority"]),
			APIKey:   expandEnvVar(cast.ToString(m["api_key"])),
			BaseURL:  cast.ToString(m["base_url"]),
			Model:    cast.ToString(m["model"]),
			Timeout:  cast.ToString(m["timeout"]),
		})
	}
	return providers
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		return ""
	}

	return value
}

func validate(cfg *Config) error {
	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", cfg.Database.Driver)
	}
	if cfg.NLU.NoiseFloor >= cfg.NLU.HighThreshold {
		return fmt.Errorf("nlu.noise_floor (%v) must be below nlu.high_threshold (%v)", cfg.NLU.NoiseFloor, cfg.NLU.HighThreshold)
	}
	return validateLLMConfig(&cfg.LLM)
}

// validateLLMConfig validates the LLM configuration. An empty provider list
// is allowed: the chatbot then answers unclassified queries with an apology.
func validateLLMConfig(cfg *LLMConfig) error {
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}
		if !provider.Enabled {
			continue
		}
		if provider.Priority <= 0 {
			return fmt.Errorf("provider %s: priority must be positive", provider.Name)
		}
		if priorityMap[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorityMap[provider.Priority] = true
	}
	return nil
}
