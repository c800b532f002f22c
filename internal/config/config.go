package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Detection DetectionConfig `mapstructure:"detection"`
	Presence  PresenceConfig  `mapstructure:"presence"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Type      string `mapstructure:"type"` // mysql 或 sqlite
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
	Path      string `mapstructure:"path"` // sqlite 数据库文件路径
}

type StorageConfig struct {
	Type          string `mapstructure:"type"` // none / local / minio
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
}

// DetectionConfig 人脸检测引擎参数。进程启动时加载一次，运行期间不可变，
// 保证同一帧在任何时刻得到相同的检测结果。
type DetectionConfig struct {
	CascadeFile     string  `mapstructure:"cascade_file"`
	MinFaceSize     int     `mapstructure:"min_face_size"`
	ScaleFactor     float64 `mapstructure:"scale_factor"`
	ShiftFactor     float64 `mapstructure:"shift_factor"`
	QualityThresh   float64 `mapstructure:"quality_threshold"`
	ClusterIoU      float64 `mapstructure:"cluster_iou"`
	MaxPayloadBytes int64   `mapstructure:"max_payload_bytes"`
}

type PresenceConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type RedisConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Host     string
	Port     int
	Password string
	DB       int
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PROCTOR_GUARD")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.type", "DATABASE_TYPE")
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")
	viper.BindEnv("database.path", "DATABASE_PATH")

	// Redis
	viper.BindEnv("redis.enabled", "REDIS_ENABLED")
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Storage
	viper.BindEnv("storage.type", "STORAGE_TYPE")
	viper.BindEnv("storage.local_path", "STORAGE_LOCAL_PATH")
	viper.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	viper.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	viper.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	viper.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Detection
	viper.BindEnv("detection.cascade_file", "DETECTION_CASCADE_FILE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Logging
	viper.BindEnv("logging.level", "LOG_LEVEL")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyDetectionDefaults(&cfg.Detection)

	if cfg.Presence.TTLSeconds <= 0 {
		cfg.Presence.TTLSeconds = 30
	}

	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "proctor_guard.db"
	}

	if cfg.Server.Mode == "release" && cfg.Detection.CascadeFile == "" {
		return nil, fmt.Errorf("detection.cascade_file must be set in release mode")
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

// applyDetectionDefaults 填充检测引擎的固定调参常量。
// 与训练口径一致：最小人脸 60px，尺度步长 1.1。
func applyDetectionDefaults(d *DetectionConfig) {
	if d.MinFaceSize <= 0 {
		d.MinFaceSize = 60
	}
	if d.ScaleFactor <= 0 {
		d.ScaleFactor = 1.1
	}
	if d.ShiftFactor <= 0 {
		d.ShiftFactor = 0.1
	}
	if d.QualityThresh <= 0 {
		d.QualityThresh = 5.0
	}
	if d.ClusterIoU <= 0 {
		d.ClusterIoU = 0.2
	}
	if d.MaxPayloadBytes <= 0 {
		d.MaxPayloadBytes = 10 << 20
	}
}
