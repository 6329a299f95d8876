package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// 岗位目录来源
const (
	CatalogSourceLocal = "local"
	CatalogSourceMinio = "minio"
	CatalogSourceOSS   = "oss"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Driver    string // mysql | sqlite
	Path      string // sqlite 文件路径
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

// CatalogConfig 岗位目录来源
type CatalogConfig struct {
	Source          string  `mapstructure:"source"` // local | minio | oss
	Path            string  `mapstructure:"path"`   // 本地路径或对象 key
	Watch           bool    `mapstructure:"watch"`
	WeightTolerance float64 `mapstructure:"weight_tolerance"`

	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`

	OSSEndpoint  string `mapstructure:"oss_endpoint"`
	OSSAccessKey string `mapstructure:"oss_access_key"`
	OSSSecretKey string `mapstructure:"oss_secret_key"`
	OSSBucket    string `mapstructure:"oss_bucket"`
}

// LedgerConfig 活动记录/积分配置
type LedgerConfig struct {
	Points       map[string]int `mapstructure:"points"` // 覆盖默认积分表
	StreakTypes  []string       `mapstructure:"streak_types"`
	MaxRetries   int            `mapstructure:"max_retries"`
	RetryBackoff time.Duration  `mapstructure:"retry_backoff"`
	HeatmapDays  int            `mapstructure:"heatmap_days"`
}

// ScoringConfig 岗位匹配策略
type ScoringConfig struct {
	ReadinessRatio float64            `mapstructure:"readiness_ratio"`
	PrepWindows    []PrepWindowConfig `mapstructure:"prep_windows"`
}

type PrepWindowConfig struct {
	MinGap int    `mapstructure:"min_gap"`
	Label  string `mapstructure:"label"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.path", "data/career_coach.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("jwt.expire_hours", 72)
	v.SetDefault("redis.port", 6379)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("catalog.source", CatalogSourceLocal)
	v.SetDefault("catalog.path", "configs/roles.yaml")
	v.SetDefault("catalog.weight_tolerance", 0.01)
	v.SetDefault("ledger.max_retries", 3)
	v.SetDefault("ledger.retry_backoff", 20*time.Millisecond)
	v.SetDefault("ledger.heatmap_days", 365)
	v.SetDefault("scoring.readiness_ratio", 0.6)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("CAREER_COACH")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")

	// Catalog
	v.BindEnv("catalog.source", "CATALOG_SOURCE")
	v.BindEnv("catalog.path", "CATALOG_PATH")
	v.BindEnv("catalog.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("catalog.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("catalog.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("catalog.minio_bucket", "MINIO_BUCKET")
	v.BindEnv("catalog.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("catalog.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("catalog.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("catalog.oss_bucket", "OSS_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验启动所需的关键配置
func (c *Config) Validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}

	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Catalog.Source {
	case CatalogSourceLocal, CatalogSourceMinio, CatalogSourceOSS:
	default:
		return fmt.Errorf("unsupported catalog source %q", c.Catalog.Source)
	}

	if c.Ledger.MaxRetries < 0 {
		return fmt.Errorf("ledger.max_retries must not be negative")
	}
	if c.Ledger.HeatmapDays < 0 || c.Ledger.HeatmapDays > 366 {
		return fmt.Errorf("ledger.heatmap_days must be in [0,366], got %d", c.Ledger.HeatmapDays)
	}
	if c.Scoring.ReadinessRatio <= 0 || c.Scoring.ReadinessRatio > 1 {
		return fmt.Errorf("scoring.readiness_ratio must be in (0,1], got %v", c.Scoring.ReadinessRatio)
	}
	return nil
}
