package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	LockBackendSQL   = "sql"
	LockBackendRedis = "redis"
)

var ErrRedisDisabled = errors.New("redis lock backend needs redis enabled")

type Config struct {
	LogLevel          string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SQLiteStoragePath string        `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./data/wordgame.db"`
	JWTSecretKey      string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY" env-required:"true"`
	Redis             Redis         `yaml:"redis"`
	Lock              Lock          `yaml:"lock"`
	Notifications     Notifications `yaml:"notifications"`
	Dictionary        Dictionary    `yaml:"dictionary"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Lock configures the per-game turn lock.
type Lock struct {
	Backend       string `yaml:"backend" env:"LOCK_BACKEND" env-default:"sql"`
	ExpireSeconds int    `yaml:"expire-seconds" env:"LOCK_EXPIRE_SECONDS" env-default:"60"`
	BlockSeconds  int    `yaml:"block-seconds" env:"LOCK_BLOCK_SECONDS" env-default:"0"`
}

type Notifications struct {
	Channel        string `yaml:"channel" env:"NOTIFICATIONS_CHANNEL" env-default:"notifications"`
	TimeoutSeconds int    `yaml:"timeout-seconds" env:"NOTIFICATIONS_TIMEOUT_SECONDS" env-default:"5"`
}

// Dictionary names the word list new games use. ImportPath is read only when the dictionary does not exist yet.
type Dictionary struct {
	Name       string `yaml:"name" env:"DICTIONARY_NAME" env-default:"english"`
	ImportPath string `yaml:"import-path" env:"DICTIONARY_IMPORT_PATH"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Lock.Backend == LockBackendRedis && !config.Redis.Enabled {
		return nil, ErrRedisDisabled
	}

	if config.Lock.Backend != LockBackendSQL && config.Lock.Backend != LockBackendRedis {
		return nil, fmt.Errorf("unknown lock backend %q", config.Lock.Backend)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Lock) Expire() time.Duration {
	return time.Duration(that.ExpireSeconds) * time.Second
}

func (that *Lock) Block() time.Duration {
	return time.Duration(that.BlockSeconds) * time.Second
}

func (that *Notifications) Timeout() time.Duration {
	return time.Duration(that.TimeoutSeconds) * time.Second
}
