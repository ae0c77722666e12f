package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string

	FinnhubAPIKey string
	NewsAPIKey    string

	HFAPIToken string
	HFModelID  string

	OpenAIAPIKey string
	OpenAIModel  string

	DefaultMaxArticles  int
	DefaultLookbackDays int
	RegionCompanies     []string

	Watchlist         []string
	WatchlistProvider string
	WatchlistPollSecs int

	APIKey string

	SSHPort        int
	SSHHostKeyPath string

	CacheTTLSecs int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		FinnhubAPIKey:    strings.TrimSpace(os.Getenv("FINNHUB_API_KEY")),
		NewsAPIKey:       strings.TrimSpace(os.Getenv("NEWSAPI_KEY")),
		HFAPIToken:       strings.TrimSpace(os.Getenv("HF_API_TOKEN")),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, defaulting to localhost:6379")
		cfg.RedisURL = "localhost:6379"
	}
	if cfg.FinnhubAPIKey == "" {
		log.Println("Warning: FINNHUB_API_KEY not set, finnhub provider will be disabled")
	}
	if cfg.NewsAPIKey == "" {
		log.Println("Warning: NEWSAPI_KEY not set, newsapi provider will be disabled")
	}
	if cfg.HFAPIToken == "" && cfg.OpenAIAPIKey == "" {
		log.Println("Warning: neither HF_API_TOKEN nor OPENAI_API_KEY set, no classifier available")
	}

	cfg.HFModelID = strings.TrimSpace(os.Getenv("HF_MODEL_ID"))
	if cfg.HFModelID == "" {
		cfg.HFModelID = "cardiffnlp/twitter-roberta-base-sentiment-latest"
	}

	cfg.OpenAIModel = strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}

	cfg.DefaultMaxArticles = 20
	if v := strings.TrimSpace(os.Getenv("DEFAULT_MAX_ARTICLES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultMaxArticles = n
		}
	}

	cfg.DefaultLookbackDays = 7
	if v := strings.TrimSpace(os.Getenv("DEFAULT_LOOKBACK_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultLookbackDays = n
		}
	}

	cfg.RegionCompanies = splitList(os.Getenv("NEWS_REGION_COMPANIES"))
	cfg.Watchlist = splitList(os.Getenv("WATCHLIST"))

	cfg.WatchlistProvider = strings.ToLower(strings.TrimSpace(os.Getenv("WATCHLIST_PROVIDER")))
	if cfg.WatchlistProvider == "" {
		cfg.WatchlistProvider = "finnhub"
	}

	cfg.WatchlistPollSecs = 3600
	if v := strings.TrimSpace(os.Getenv("WATCHLIST_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WatchlistPollSecs = n
		}
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("API_KEY"))

	cfg.SSHPort = 23234
	if v := strings.TrimSpace(os.Getenv("SSH_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SSHPort = n
		}
	}

	cfg.SSHHostKeyPath = strings.TrimSpace(os.Getenv("SSH_HOST_KEY_PATH"))
	if cfg.SSHHostKeyPath == "" {
		cfg.SSHHostKeyPath = ".ssh/stocksenti_host_key"
	}

	cfg.CacheTTLSecs = 600
	if v := strings.TrimSpace(os.Getenv("CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSecs = n
		}
	}

	return cfg
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
