package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads an optional .env file, then environment variables, on top of
// built-in defaults. Nested keys map to env names by replacing dots with
// underscores (llm.api_key -> LLM_API_KEY).
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, path := range envFiles {
		// missing files are fine; the process env still applies
		_ = godotenv.Load(path)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := bindAliases(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	normalize(&cfg)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.max_tokens", 800)
	v.SetDefault("llm.temperature", 0)
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.gemini_model", "")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 90*time.Second)
	v.SetDefault("http.shutdown_timeout", 15*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)
	v.SetDefault("redis.prefix", "elig_seq")

	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.request_topic", "eligibility.requests")
	v.SetDefault("kafka.result_topic", "eligibility.results")
	v.SetDefault("kafka.group", "eligibility-workers")
	v.SetDefault("kafka.workers", 4)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("network.name", "Mantle Sepolia Testnet")
	v.SetDefault("network.chain_id", 5003)
	v.SetDefault("network.rpc_url", "https://rpc.sepolia.mantle.xyz")
	v.SetDefault("network.explorer_url", "https://explorer.sepolia.mantle.xyz")
	v.SetDefault("network.currency", "MNT")
	v.SetDefault("network.contracts.testnet_usdc", "0x45639B93D48754ec21266c745e968930EB8b4BB6")
	v.SetDefault("network.contracts.yield_strategy", "0xd3549d47D09b485d3921E5169596deB47158b490")
	v.SetDefault("network.contracts.vault", "0x64C9197f7051b6908d3a9FEe5b4369ff24E1e21B")
	v.SetDefault("network.contracts.social_lending", "0x747F40796cD10E72718fC801d3466B03F1755398")
}

// bindAliases keeps the env names older deployments already set.
func bindAliases(v *viper.Viper) error {
	aliases := map[string][]string{
		"llm.api_key":        {"LLM_API_KEY", "NEBIUS_API_KEY"},
		"llm.base_url":       {"LLM_BASE_URL", "NEBIUS_BASE_URL"},
		"llm.model":          {"LLM_MODEL", "NEBIUS_MODEL"},
		"llm.gemini_api_key": {"LLM_GEMINI_API_KEY", "GEMINI_API_KEY"},
		"kafka.brokers":      {"KAFKA_BROKERS"},
		"kafka.workers":      {"KAFKA_WORKERS", "WORKER_COUNT"},
		"log.level":          {"LOG_LEVEL"},
		"log.format":         {"LOG_FORMAT"},
	}
	for key, envs := range aliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}
	return nil
}

func normalize(cfg *Config) {
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = ProviderOpenAI
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Kafka.Workers <= 0 {
		cfg.Kafka.Workers = 1
	}
}

// ValidateLLM checks that the selected provider can be reached. Binaries
// that never call the model skip it.
func (c *Config) ValidateLLM() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return fmt.Errorf("config: llm.api_key (LLM_API_KEY or NEBIUS_API_KEY) is required for provider %q", c.LLM.Provider)
		}
	case ProviderGemini:
		if strings.TrimSpace(c.LLM.GeminiAPIKey) == "" {
			return fmt.Errorf("config: llm.gemini_api_key (GEMINI_API_KEY) is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("config: unknown llm.provider %q", c.LLM.Provider)
	}
	return nil
}
