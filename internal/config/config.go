package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StatsBackendRedis  = "redis"
	StatsBackendSQLite = "sqlite"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env:"TICTACTOE_SOCKET_PORT" env-default:"8080"`
	Redis             Redis  `yaml:"redis"`
	StatsBackend      string `yaml:"stats-backend" env:"TICTACTOE_STATS_BACKEND" env-default:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"TICTACTOE_SQLITE_STORAGE_PATH" env-default:"./storage/stats.db"`
	Bot               Bot    `yaml:"bot"`
}

type Redis struct {
	Host    string        `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"TICTACTOE_REDIS_GAME_TTL" env-default:"24h"`
}

type Bot struct {
	Difficulty string        `yaml:"difficulty" env:"TICTACTOE_BOT_DIFFICULTY" env-default:"hard"`
	ThinkDelay time.Duration `yaml:"think-delay" env:"TICTACTOE_BOT_THINK_DELAY" env-default:"0s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
