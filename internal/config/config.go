package config

import (
	"time"

	"github.com/hetulpatel/MantleCoop/internal/kafka"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Log     LogConfig     `mapstructure:"log"`
	Network NetworkConfig `mapstructure:"network"`
}

// LLMConfig selects the model provider. The openai provider speaks to any
// OpenAI-compatible endpoint (Nebius by default).
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	MaxTokens    int           `mapstructure:"max_tokens"`
	Temperature  float32       `mapstructure:"temperature"`
	Timeout      time.Duration `mapstructure:"timeout"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	GeminiModel  string        `mapstructure:"gemini_model"`
}

type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RedisConfig is optional; an empty Addr keeps sequence numbers in memory.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

type KafkaConfig struct {
	Brokers      string `mapstructure:"brokers"`
	RequestTopic string `mapstructure:"request_topic"`
	ResultTopic  string `mapstructure:"result_topic"`
	Group        string `mapstructure:"group"`
	Workers      int    `mapstructure:"workers"`
}

// BrokerList splits Brokers on commas.
func (k KafkaConfig) BrokerList() []string {
	return kafka.ParseBrokers(k.Brokers)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NetworkConfig describes the chain the cooperative's contracts live on.
// It is informational; nothing in this module dials the RPC endpoint.
type NetworkConfig struct {
	Name        string          `mapstructure:"name" json:"name"`
	ChainID     int64           `mapstructure:"chain_id" json:"chainId"`
	RPCURL      string          `mapstructure:"rpc_url" json:"rpcUrl"`
	ExplorerURL string          `mapstructure:"explorer_url" json:"explorerUrl"`
	Currency    string          `mapstructure:"currency" json:"currency"`
	Contracts   ContractsConfig `mapstructure:"contracts" json:"contracts"`
}

type ContractsConfig struct {
	TestnetUSDC     string `mapstructure:"testnet_usdc" json:"TestnetUSDC"`
	YieldStrategy   string `mapstructure:"yield_strategy" json:"YieldStrategy"`
	MantleCoopVault string `mapstructure:"vault" json:"MantleCoopVault"`
	SocialLending   string `mapstructure:"social_lending" json:"SocialLending"`
}
