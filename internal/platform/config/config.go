package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Image     ImageConfig     `mapstructure:"image"`
	Generator GeneratorConfig `mapstructure:"generator"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	Redis  RedisConfig  `mapstructure:"redis"`
	Sqlite SqliteConfig `mapstructure:"sqlite"`
}

// RedisConfig 定义了Redis的配置
// Address留空表示主存储未配置，应用会以纯本地镜像模式运行
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SqliteConfig 定义了本地持久化镜像的配置
type SqliteConfig struct {
	Path string `mapstructure:"path"`
}

// ImageConfig 定义了图片解析链的配置
type ImageConfig struct {
	TimeoutMs          int    `mapstructure:"timeoutMs"`
	Concurrency        int    `mapstructure:"concurrency"`
	PollinationsAPIKey string `mapstructure:"pollinationsApiKey"`
}

// GeneratorConfig 定义了候选者生成链的配置
// 所有密钥都允许为空，生成链会逐级降级到静态名单
type GeneratorConfig struct {
	OpenAIAPIKey   string `mapstructure:"openaiApiKey"`
	OpenAIModel    string `mapstructure:"openaiModel"`
	GoogleAPIKey   string `mapstructure:"googleApiKey"`
	GoogleEngineID string `mapstructure:"googleEngineId"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 配置文件缺失不是致命错误：所有外部依赖都是可降级的，用默认值即可启动
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 设置默认值
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("database.sqlite.path", "mirror.db")
	v.SetDefault("image.timeoutMs", 6500)
	v.SetDefault("image.concurrency", 4)
	v.SetDefault("generator.openaiModel", "gpt-4o-mini")

	// 4. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 SERVER_ADDRESS=:8888
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 密钥类配置通常只通过环境变量提供
	_ = v.BindEnv("generator.openaiApiKey", "OPENAI_API_KEY")
	_ = v.BindEnv("generator.openaiModel", "OPENAI_MODEL")
	_ = v.BindEnv("generator.googleApiKey", "GOOGLE_SEARCH_API_KEY")
	_ = v.BindEnv("generator.googleEngineId", "GOOGLE_SEARCH_ENGINE_ID")
	_ = v.BindEnv("image.pollinationsApiKey", "POLLINATIONS_API_KEY")
	_ = v.BindEnv("database.redis.address", "REDIS_ADDRESS")
	_ = v.BindEnv("database.redis.password", "REDIS_PASSWORD")

	// 5. 读取配置文件（允许缺失）
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}
