package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Provider kinds understood by the model fallback chain.
const (
	KindOpenAI   = "openai"
	KindGemini   = "gemini"
	KindGigaChat = "gigachat"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	LLM       LLMConfig
	GigaChat  GigaChatConfig
	NATS      NATSConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	Migrate  bool
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

// LLMConfig drives the candidate model chain. Candidates are tried in order.
type LLMConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	Temperature   float64
	MaxTokens     int
	ProvidersFile string
	Candidates    []CandidateConfig
}

// CandidateConfig is one entry of the fallback list.
type CandidateConfig struct {
	Kind      string `toml:"kind"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKeyEnv string `toml:"api_key_env"`
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	InsecureSkipVerify bool
}

type NATSConfig struct {
	URL           string
	Token         string
	SubjectPrefix string
}

type RateLimitConfig struct {
	LoginPerMinute   int
	SuggestPerMinute int
}

type providersFile struct {
	Candidates []CandidateConfig `toml:"candidate"`
}

var defaultModels = "llama3-70b-8192,llama-3.1-8b-instant,gemma2-9b-it"

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	llmTimeout, _ := strconv.Atoi(getEnv("LLM_TIMEOUT", "20"))
	maxTokens, _ := strconv.Atoi(getEnv("LLM_MAX_TOKENS", "300"))
	temperature, err := strconv.ParseFloat(getEnv("LLM_TEMPERATURE", "0.2"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}
	loginRate, _ := strconv.Atoi(getEnv("RATE_LIMIT_LOGIN_PER_MINUTE", "5"))
	suggestRate, _ := strconv.Atoi(getEnv("RATE_LIMIT_SUGGEST_PER_MINUTE", "10"))

	if maxTokens <= 0 || maxTokens > 300 {
		maxTokens = 300
	}
	if llmTimeout <= 0 {
		llmTimeout = 20
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "billetera"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Migrate:  getEnv("DB_MIGRATE", "true") == "true",
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		LLM: LLMConfig{
			APIKey:        getEnv("GROQ_API_KEY", ""),
			BaseURL:       getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			Timeout:       time.Duration(llmTimeout) * time.Second,
			Temperature:   temperature,
			MaxTokens:     maxTokens,
			ProvidersFile: getEnv("LLM_PROVIDERS_FILE", ""),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
		},
		NATS: NATSConfig{
			URL:           getEnv("NATS_URL", ""),
			Token:         getEnv("NATS_TOKEN", ""),
			SubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "billetera"),
		},
		RateLimit: RateLimitConfig{
			LoginPerMinute:   loginRate,
			SuggestPerMinute: suggestRate,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if cfg.LLM.ProvidersFile != "" {
		candidates, err := loadProvidersFile(cfg.LLM.ProvidersFile)
		if err != nil {
			return nil, err
		}
		cfg.LLM.Candidates = candidates
	} else {
		cfg.LLM.Candidates = modelsFromList(getEnv("LLM_MODELS", defaultModels), cfg.LLM.BaseURL)
	}

	if len(cfg.LLM.Candidates) == 0 {
		return nil, fmt.Errorf("no LLM candidates configured")
	}

	return cfg, nil
}

// loadProvidersFile reads the [[candidate]] list from a TOML file.
func loadProvidersFile(path string) ([]CandidateConfig, error) {
	var pf providersFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return nil, fmt.Errorf("failed to read providers file %s: %w", path, err)
	}

	for i, c := range pf.Candidates {
		if c.Kind == "" {
			pf.Candidates[i].Kind = KindOpenAI
		}
		switch pf.Candidates[i].Kind {
		case KindOpenAI, KindGemini, KindGigaChat:
		default:
			return nil, fmt.Errorf("candidate %d: unknown kind %q", i, c.Kind)
		}
		if c.Model == "" {
			return nil, fmt.Errorf("candidate %d: model is required", i)
		}
	}

	return pf.Candidates, nil
}

func modelsFromList(list, baseURL string) []CandidateConfig {
	var candidates []CandidateConfig
	for _, m := range strings.Split(list, ",") {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		candidates = append(candidates, CandidateConfig{
			Kind:      KindOpenAI,
			Model:     m,
			BaseURL:   baseURL,
			APIKeyEnv: "GROQ_API_KEY",
		})
	}
	return candidates
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
