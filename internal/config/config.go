package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"github.com/kelseyhightower/envconfig"
	"google.golang.org/genai"

	"github.com/zhouzirui/interview-bot/backend/internal/core"
	pkgredis "github.com/zhouzirui/interview-bot/backend/pkg/redis"
)

// 支持的模型提供方
const (
	ProviderGemini = "gemini"
	ProviderArk    = "ark"
)

// 会话记忆后端
const (
	MemoryLocal    = "local"
	MemoryRedis    = "redis"
	MemoryDisabled = "disabled"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Env      string           `envconfig:"APP_ENV" default:"development"`
	LogLevel string           `envconfig:"LOG_LEVEL"`
	Server   ServerConfig
	AI       AIConfig
	Memory   MemoryConfig
	Graph    GraphConfig
	Redis    pkgredis.Config
}

// Environment 返回规范化后的运行环境。
func (c *Config) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	addr, err := normalizeAddr(cfg.Server.Port)
	if err != nil {
		return nil, err
	}
	cfg.Server.Addr = addr

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验枚举类配置。
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini, ProviderArk:
	default:
		return fmt.Errorf("invalid AI_PROVIDER value %q: expected %s or %s", c.AI.Provider, ProviderGemini, ProviderArk)
	}

	switch c.Memory.Backend {
	case MemoryLocal, MemoryDisabled:
	case MemoryRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("MEMORY_BACKEND=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("invalid MEMORY_BACKEND value %q", c.Memory.Backend)
	}

	if c.Memory.ContextLimit < 1 {
		return fmt.Errorf("invalid MEMORY_CONTEXT_LIMIT value %d: must be positive", c.Memory.ContextLimit)
	}
	return nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Port          string `envconfig:"PORT" default:"8000"`
	StaticDir     string `envconfig:"STATIC_DIR"`
	AllowedOrigin string `envconfig:"CORS_ALLOWED_ORIGIN" default:"*"`
	Addr          string `ignored:"true"`
}

// normalizeAddr 解析服务器监听地址。
func normalizeAddr(port string) (string, error) {
	port = strings.TrimSpace(port)
	if port == "" {
		port = "8000"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8000" 或 "127.0.0.1:8000"。
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider string `envconfig:"AI_PROVIDER" default:"gemini"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash-lite"`

	ArkAPIKey    string `envconfig:"ARK_API_KEY"`
	ArkAccessKey string `envconfig:"ARK_ACCESS_KEY"`
	ArkSecretKey string `envconfig:"ARK_SECRET_KEY"`
	ArkModel     string `envconfig:"ARK_MODEL"`
	ArkBaseURL   string `envconfig:"ARK_BASE_URL" default:"https://ark.cn-beijing.volces.com/api/v3"`
	ArkRegion    string `envconfig:"ARK_REGION" default:"cn-beijing"`

	MaxTokens   int     `envconfig:"AI_MAX_TOKENS" default:"15000"`
	Temperature float32 `envconfig:"AI_TEMPERATURE" default:"0.7"`

	BreakerFailures uint32        `envconfig:"AI_BREAKER_FAILURES" default:"3"`
	BreakerCooldown time.Duration `envconfig:"AI_BREAKER_COOLDOWN" default:"30s"`
}

// Enabled 表示是否提供了所选提供方必需的密钥。
func (c AIConfig) Enabled() bool {
	switch c.Provider {
	case ProviderArk:
		return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
	case ProviderGemini:
		return c.GeminiAPIKey != "" && c.GeminiModel != ""
	default:
		return false
	}
}

// ModelName 返回当前提供方使用的模型名。
func (c AIConfig) ModelName() string {
	if c.Provider == ProviderArk {
		return c.ArkModel
	}
	return c.GeminiModel
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("%s credentials or model missing", c.Provider)
	}

	temperature := c.Temperature
	maxTokens := c.MaxTokens

	if c.Provider == ProviderArk {
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     c.ArkBaseURL,
			Region:      c.ArkRegion,
			APIKey:      c.ArkAPIKey,
			AccessKey:   c.ArkAccessKey,
			SecretKey:   c.ArkSecretKey,
			Model:       c.ArkModel,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
		})
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  c.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.GeminiBaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = c.GeminiBaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       c.GeminiModel,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
}

// MemoryConfig 描述会话记忆配置。
type MemoryConfig struct {
	Backend      string        `envconfig:"MEMORY_BACKEND" default:"local"`
	UserID       string        `envconfig:"MEMORY_USER_ID" default:"mayank_interview"`
	ContextLimit int           `envconfig:"MEMORY_CONTEXT_LIMIT" default:"3"`
	TTL          time.Duration `envconfig:"MEMORY_TTL" default:"24h"`
}

// GraphConfig 描述 Neo4j 知识图谱连接配置，URI 为空时禁用。
type GraphConfig struct {
	URI      string `envconfig:"NEO4J_URI"`
	Username string `envconfig:"NEO4J_USERNAME" default:"neo4j"`
	Password string `envconfig:"NEO4J_PASSWORD"`
}

// Enabled 表示是否配置了图数据库。
func (c GraphConfig) Enabled() bool {
	return c.URI != ""
}
