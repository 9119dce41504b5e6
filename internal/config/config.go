package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Business BusinessConfig `mapstructure:"business"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 选择存储驱动：mysql 或 sqlite
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver"`
	SQLitePath string `mapstructure:"sqlite_path"`
	LogLevel   string `mapstructure:"log_level"`
}

type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Enabled bool             `mapstructure:"enabled"`
	Brokers []string         `mapstructure:"brokers"`
	Topic   KafkaTopicConfig `mapstructure:"topic"`
}

type KafkaTopicConfig struct {
	RechargeEvents    string `mapstructure:"recharge_events"`
	TransactionEvents string `mapstructure:"transaction_events"`
}

type BusinessConfig struct {
	WorkerID            int64 `mapstructure:"worker_id"`
	MaxRetryCount       int   `mapstructure:"max_retry_count"`
	LockTTLSeconds      int   `mapstructure:"lock_ttl_seconds"`
	LockRetryIntervalMs int   `mapstructure:"lock_retry_interval_ms"`
	LockMaxRetries      int   `mapstructure:"lock_max_retries"`
	AuditIntervalSecond int   `mapstructure:"audit_interval_seconds"`
	AuditBatchSize      int   `mapstructure:"audit_batch_size"`
}

// LockTTL 分布式锁过期时间
func (b BusinessConfig) LockTTL() time.Duration {
	return time.Duration(b.LockTTLSeconds) * time.Second
}

// LockRetryInterval 获取锁失败后的重试间隔
func (b BusinessConfig) LockRetryInterval() time.Duration {
	return time.Duration(b.LockRetryIntervalMs) * time.Millisecond
}

// AuditInterval 日汇总核对任务的执行间隔
func (b BusinessConfig) AuditInterval() time.Duration {
	return time.Duration(b.AuditIntervalSecond) * time.Second
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.sqlite_path", "./data/gamecenter.db")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("mysql.max_open_conns", 50)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic.recharge_events", "gamecenter.recharge")
	v.SetDefault("kafka.topic.transaction_events", "gamecenter.transaction")
	v.SetDefault("business.worker_id", 1)
	v.SetDefault("business.max_retry_count", 5)
	v.SetDefault("business.lock_ttl_seconds", 10)
	v.SetDefault("business.lock_retry_interval_ms", 50)
	v.SetDefault("business.lock_max_retries", 100)
	v.SetDefault("business.audit_interval_seconds", 300)
	v.SetDefault("business.audit_batch_size", 30)
	v.SetDefault("log.mode", "production")
}

// LoadConfig 加载配置文件
//
// 环境变量优先于配置文件，例如 GAMECENTER_MYSQL_HOST 覆盖 mysql.host
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("GAMECENTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate 校验配置项
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port 非法: %d", c.Server.Port)
	}
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("database.driver 只支持 mysql/sqlite，当前: %s", c.Database.Driver)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka 已启用但未配置 brokers")
	}
	if c.Business.LockMaxRetries <= 0 {
		return fmt.Errorf("business.lock_max_retries 必须大于 0，当前: %d", c.Business.LockMaxRetries)
	}
	if c.Business.AuditBatchSize <= 0 {
		return fmt.Errorf("business.audit_batch_size 必须大于 0，当前: %d", c.Business.AuditBatchSize)
	}
	return nil
}
