package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   HTTPServerConfig `mapstructure:"server"`
	LLM      LLMConfig        `mapstructure:"llm"`
	Mongo    MongoConfig      `mapstructure:"mongo"`
	AWS      AWSConfig        `mapstructure:"aws"`
	FileRepo FileRepoConfig   `mapstructure:"file_repo"`
	Build    BuildConfig      `mapstructure:"build"`
	Git      GitConfig        `mapstructure:"git"`
}

type HTTPServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

func (c HTTPServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LLMConfig struct {
	ModelID     string        `mapstructure:"model_id"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

type FileRepoConfig struct {
	ArtifactDir string `mapstructure:"artifact_dir"`
}

type GitConfig struct {
	WorkDir string `mapstructure:"work_dir"`
}

type BuildConfig struct {
	Binary  string        `mapstructure:"binary"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load resolves configuration from defaults overridden by environment
// variables. DEVASSIST_SERVER_PORT overrides server.port and so on.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("devassist")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("mongo.uri is required (set DEVASSIST_MONGO_URI)")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "120s")
	v.SetDefault("server.write_timeout", "600s")

	v.SetDefault("llm.model_id", "anthropic.claude-3-5-sonnet-20241022-v2:0")
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("llm.timeout", "5m")

	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "devassist")

	v.SetDefault("aws.region", "us-east-1")

	v.SetDefault("file_repo.artifact_dir", "./artifacts")
	v.SetDefault("git.work_dir", "./workspaces")

	v.SetDefault("build.binary", "docker")
	v.SetDefault("build.timeout", "15m")
}
