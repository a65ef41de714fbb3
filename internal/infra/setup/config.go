package setup

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config 保存从 YAML 文件和环境变量加载的配置
type Config struct {
	AppEnv string       `yaml:"appEnv"` // 应用环境 (development/production)
	Log    LogConfig    `yaml:"log"`
	Editor EditorConfig `yaml:"editor"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level      string `yaml:"level"`      // logrus 日志级别
	File       string `yaml:"file"`       // 日志文件路径，为空时输出到 stderr
	MaxSizeMB  int    `yaml:"maxSizeMb"`  // 单个日志文件最大尺寸
	MaxBackups int    `yaml:"maxBackups"` // 保留的旧日志文件数
	MaxAgeDays int    `yaml:"maxAgeDays"` // 旧日志文件保留天数
}

// EditorConfig 编辑器相关配置
type EditorConfig struct {
	OutputDir string `yaml:"outputDir"` // 保存命令中相对文件名的根目录
	Prompt    string `yaml:"prompt"`    // 交互终端下的输入提示符
	MaxWidth  int    `yaml:"maxWidth"`  // 允许的最大列数，0 表示不限制
	MaxHeight int    `yaml:"maxHeight"` // 允许的最大行数，0 表示不限制
}

var validEnvs = []string{"development", "production"}

// LoadConfig 先加载 .env，再依次应用默认值、EDITOR_CONFIG 指定的 YAML 文件和环境变量，最后校验。
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)，不会覆盖已经设置的环境变量
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path := os.Getenv("EDITOR_CONFIG"); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		AppEnv: "development",
		Log: LogConfig{
			Level:      "error",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Editor: EditorConfig{
			Prompt: "> ",
		},
	}
}

// loadFromFile 从 YAML 文件加载配置，文件中未出现的字段保持原值
func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides 使用环境变量覆盖配置
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.AppEnv = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("EDITOR_OUTPUT_DIR"); v != "" {
		cfg.Editor.OutputDir = v
	}
	if v, ok := os.LookupEnv("EDITOR_PROMPT"); ok {
		cfg.Editor.Prompt = v
	}
	for name, dst := range map[string]*int{
		"EDITOR_MAX_WIDTH":  &cfg.Editor.MaxWidth,
		"EDITOR_MAX_HEIGHT": &cfg.Editor.MaxHeight,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("environment variable %s must be an integer: %w", name, err)
		}
		*dst = n
	}
	return nil
}

// Validate 校验配置。无效的日志级别只记录警告并回退到默认值。
func (c *Config) Validate() error {
	if !contains(validEnvs, c.AppEnv) {
		return fmt.Errorf("invalid appEnv %q, must be one of: %v", c.AppEnv, validEnvs)
	}
	if c.Editor.MaxWidth < 0 || c.Editor.MaxHeight < 0 {
		return fmt.Errorf("invalid grid limits %dx%d: must not be negative", c.Editor.MaxWidth, c.Editor.MaxHeight)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("invalid log rotation settings: values must not be negative")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'error'", c.Log.Level)
		c.Log.Level = "error"
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
