package config

import (
	"flag"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"os"
	"time"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Database   Database   `yaml:"database"`
	Redis      Redis      `yaml:"redis"`
	Auth       Auth       `yaml:"auth"`
	RateLimit  RateLimit  `yaml:"rate_limit"`
	Client     Client     `yaml:"client"`
}

// ClientConfig is the subset the terminal client reads. It shares the
// server's config files but needs no secrets.
type ClientConfig struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Client Client `yaml:"client"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Database struct {
	InMemory bool   `yaml:"in_memory" env:"DB_IN_MEMORY" env-default:"false"`
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"auto_detailing"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

// Redis holds the session registry connection. An empty Address keeps
// sessions in process memory.
type Redis struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	PoolSize int    `yaml:"pool_size" env-default:"10"`
}

type Auth struct {
	JWTSecret         string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL          time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"24h"`
	AdminEmails       []string      `yaml:"admin_emails" env:"ADMIN_EMAILS" env-separator:","`
	MinPasswordLength int           `yaml:"min_password_length" env-default:"6"`
}

type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"2"`
	Burst int     `yaml:"burst" env-default:"5"`
}

type Client struct {
	ServerURL string        `yaml:"server_url" env:"SERVER_URL" env-default:"http://localhost:8080"`
	Timeout   time.Duration `yaml:"timeout" env-default:"10s"`
}

// MustLoad reads the config file named by the -config flag or CONFIG_PATH.
func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	var cfg Config

	if err := load(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoadClient() *ClientConfig {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	cfg, err := LoadClientPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func LoadClientPath(configPath string) (*ClientConfig, error) {
	var cfg ClientConfig

	if err := load(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func load(configPath string, cfg any) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}

	if err := cleanenv.ReadConfig(configPath, cfg); err != nil {
		return fmt.Errorf("cannot read config: %w", err)
	}

	return nil
}

// fetchConfigPath prefers the -config flag over the CONFIG_PATH env variable.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
