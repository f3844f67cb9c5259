package config

import (
	"fmt"
	"net/http"
	"time"
)

type DBConfig struct {
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
	MaxConns int32
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Username, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type ServerConfig struct {
	Port           string
	Handler        http.Handler
	MaxHeaderBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend    string
	ListingTTL time.Duration
	RedisAddr  string
}

type MediaConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

func (c MediaConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

type KafkaConfig struct {
	Brokers    []string
	PostsTopic string
}

type AuthConfig struct {
	AccessSecret string
	LoginURL     string
}
