package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"terminal-trivia/internal/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag or TRIVIA_CONFIG is given.
const DefaultPath = "config/config.yaml"

type Config struct {
	Game struct {
		QuestionsPerGame int    `yaml:"questions_per_game"`
		TimePerQuestion  int    `yaml:"time_per_question"`
		UseTimer         *bool  `yaml:"use_timer"`
		PollInterval     string `yaml:"poll_interval"`
	} `yaml:"game"`
	Questions struct {
		Path string `yaml:"path"`
		Bank string `yaml:"bank"`
		TTL  string `yaml:"ttl"`
	} `yaml:"questions"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the built-in settings used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Game.QuestionsPerGame = 5
	cfg.Game.TimePerQuestion = 30
	cfg.Game.PollInterval = "100ms"
	cfg.Questions.Path = "data/questions.json"
	cfg.Questions.TTL = "10m"
	cfg.Redis.TTL = "10m"
	cfg.Log.Level = "warn"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is only
// an error when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets deployment secrets live in the environment (or .env).
func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIVIA_POSTGRES_URL"); v != "" {
		cfg.Postgres.URL = v
	}
	if v := os.Getenv("TRIVIA_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("TRIVIA_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("TRIVIA_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
	if v := os.Getenv("TRIVIA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// GameDefaults builds a single-player config from the game section. The menu
// fills in difficulty and player count.
func (c Config) GameDefaults() domain.GameConfig {
	useTimer := true
	if c.Game.UseTimer != nil {
		useTimer = *c.Game.UseTimer
	}
	return domain.GameConfig{
		QuestionsPerGame: c.Game.QuestionsPerGame,
		TimePerQuestion:  c.Game.TimePerQuestion,
		Difficulty:       domain.DifficultyAny,
		UseTimer:         useTimer,
		Players:          1,
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
