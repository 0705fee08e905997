package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const envPrefix = "ROADBOARD_"

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	HttpAddr          string            `yaml:"http_addr"`
	LogLevel          string            `yaml:"log_level"`
	LogJSON           bool              `yaml:"log_json"`
	JwtTTL            time.Duration     `yaml:"jwt_ttl"`
	AllowedOrigins    []string          `yaml:"allowed_origins"`
	RestaurantService RestaurantService `yaml:"restaurant_service"`
	EnrichConcurrency int               `yaml:"enrich_concurrency"` // max in-flight restaurant calls per list request
	WritesPerMinute   int               `yaml:"writes_per_minute"`  // per user, for board writes and likes
	ReadsPerMinute    int               `yaml:"reads_per_minute"`   // per client ip, for public board reads
}

type RestaurantService struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type Pg struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	Dbname   string `yaml:"dbname" env:"DBNAME"`
}

type Private struct {
	Pg     Pg     `yaml:"pg" envPrefix:"PG_"`
	JwtKey string `yaml:"jwt_key" env:"JWT_KEY"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func (p *Public) applyDefaults() {
	if p.HttpAddr == "" {
		p.HttpAddr = ":8080"
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.RestaurantService.Timeout == 0 {
		p.RestaurantService.Timeout = 5 * time.Second
	}
	if p.EnrichConcurrency <= 0 {
		p.EnrichConcurrency = 4
	}
	if p.WritesPerMinute <= 0 {
		p.WritesPerMinute = 30
	}
	if p.ReadsPerMinute <= 0 {
		p.ReadsPerMinute = 120
	}
}

func (c *Config) validate() error {
	if c.Public.RestaurantService.BaseURL == "" {
		return fmt.Errorf("restaurant_service.base_url is required")
	}
	if c.Public.JwtTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive")
	}
	if c.Private.Pg.Host == "" || c.Private.Pg.Dbname == "" {
		return fmt.Errorf("pg.host and pg.dbname are required")
	}
	if c.Private.JwtKey == "" {
		return fmt.Errorf("jwt_key is required")
	}
	return nil
}

// MustLoad reads public.yaml and private.yaml from configFolder. Secrets from
// private.yaml can be overridden by ROADBOARD_* environment variables
// (ROADBOARD_JWT_KEY, ROADBOARD_PG_PASSWORD, ...).
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	if err := env.ParseWithOptions(&private, env.Options{Prefix: envPrefix}); err != nil {
		panic(fmt.Sprintf("parse env: %v", err))
	}

	cfg := &Config{Public: public, Private: private}
	if err := cfg.validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
