package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config is shared across all request handlers. Everything except Curriculum
// is fixed after LoadConfig; the curriculum section is hot-reloaded, so
// concurrent code must go through CurriculumView and SetCurriculum rather
// than the field.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	AI         AIConfig
	Curriculum CurriculumConfig `mapstructure:"curriculum"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`

	curriculumMu sync.RWMutex
}

// CurriculumView returns the current curriculum section. The returned value
// and its slices must be treated as read-only; reloads replace them wholesale.
func (c *Config) CurriculumView() CurriculumConfig {
	c.curriculumMu.RLock()
	defer c.curriculumMu.RUnlock()
	return c.Curriculum
}

// SetCurriculum replaces the curriculum section. Called from the config
// watcher goroutine while request handlers read concurrently.
func (c *Config) SetCurriculum(cur CurriculumConfig) {
	c.curriculumMu.Lock()
	c.Curriculum = cur
	c.curriculumMu.Unlock()
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type AIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKey         string        `mapstructure:"api_key"`
	Model          string        `mapstructure:"model"`
	RequestTimeout time.Duration `mapstructure:"request_timeout_seconds"`
}

// DifficultyTier maps a named difficulty to a Lexile range. The generation
// target for a tier is the midpoint of [MinLexile, MaxLexile].
type DifficultyTier struct {
	Name      string `mapstructure:"name"`
	MinLexile int    `mapstructure:"min_lexile"`
	MaxLexile int    `mapstructure:"max_lexile"`
}

// CurriculumConfig is the externally supplied content surface: the skill tags
// tracked per student, the story topics offered, and the difficulty tiers.
type CurriculumConfig struct {
	EvaluationFactors []string         `mapstructure:"evaluation_factors"`
	Topics            []string         `mapstructure:"topics"`
	DifficultyTiers   []DifficultyTier `mapstructure:"difficulty_tiers"`
}

// Tier returns the difficulty tier with the given name.
func (c CurriculumConfig) Tier(name string) (DifficultyTier, bool) {
	for _, t := range c.DifficultyTiers {
		if t.Name == name {
			return t, true
		}
	}
	return DifficultyTier{}, false
}

// HasTopic reports whether topic is one of the configured story topics.
func (c CurriculumConfig) HasTopic(topic string) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LEXILE_EVAL")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	setCurriculumDefaults()
	viper.SetDefault("ai.request_timeout_seconds", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.AI.RequestTimeout = cfg.AI.RequestTimeout * time.Second

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if len(cfg.Curriculum.EvaluationFactors) == 0 {
		return nil, fmt.Errorf("curriculum.evaluation_factors must not be empty")
	}
	if len(cfg.Curriculum.DifficultyTiers) == 0 {
		return nil, fmt.Errorf("curriculum.difficulty_tiers must not be empty")
	}

	return &cfg, nil
}

// setCurriculumDefaults keeps a bare checkout runnable without a curriculum
// section in config.yaml.
func setCurriculumDefaults() {
	viper.SetDefault("curriculum.evaluation_factors", []string{
		"Comprehension",
		"Vocabulary",
		"Inference",
		"Main Idea",
		"Detail Recall",
		"Sequencing",
		"Cause and Effect",
		"Context Clues",
		"Prediction",
		"Summarization",
	})
	viper.SetDefault("curriculum.topics", []string{
		"Animals",
		"Space",
		"History",
		"Science",
		"Sports",
		"Friendship",
	})
	viper.SetDefault("curriculum.difficulty_tiers", []map[string]interface{}{
		{"name": "Beginner", "min_lexile": 0, "max_lexile": 400},
		{"name": "Easy", "min_lexile": 400, "max_lexile": 800},
		{"name": "Medium", "min_lexile": 800, "max_lexile": 1200},
		{"name": "Hard", "min_lexile": 1200, "max_lexile": 1600},
		{"name": "Expert", "min_lexile": 1600, "max_lexile": 2000},
	})
}
