// Package config builds the gateway configuration from environment variables
// so main stays lean. Every external collaborator (directory service, Redis,
// Postgres, Kafka) is configured here and nowhere else.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string

	// SupportTokenPublicKey is the PEM-encoded RSA public key used to verify
	// support-token signatures.
	SupportTokenPublicKey string

	// OperatorTokenSigningKey validates operator bearer tokens. The operator
	// identity provider is external; this key is the trust anchor for its
	// already-authenticated claims.
	OperatorTokenSigningKey string

	// AdminGroup is the display name of the directory group whose membership
	// authorizes direct fiscal-code access.
	AdminGroup string

	// RoleCacheTTL bounds how long resolved group memberships are reused
	// before the directory service is consulted again.
	RoleCacheTTL time.Duration

	Directory DirectoryConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	Audit     AuditConfig
}

// DirectoryConfig holds service-principal credentials for the directory
// service that resolves operator group memberships.
type DirectoryConfig struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	// BaseURL points at the directory graph endpoint; overridable for tests.
	BaseURL string
	// Timeout applies per directory call; failures surface as infra errors.
	Timeout time.Duration
}

// RedisConfig holds connection settings for the shared key/value store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds the relational data source settings.
type PostgresConfig struct {
	DSN string
}

// AuditConfig holds the audit sink settings.
type AuditConfig struct {
	// TableName is the audit-log table written before every guarded operation.
	TableName string
	// KafkaBrokers enables the asynchronous ops mirror when non-empty.
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:                    getEnv("CITIZENGW_ADDR", ":8080"),
		SupportTokenPublicKey:   os.Getenv("SUPPORT_TOKEN_PUBLIC_KEY"),
		OperatorTokenSigningKey: os.Getenv("OPERATOR_TOKEN_SIGNING_KEY"),
		AdminGroup:              getEnv("DIRECTORY_ADMIN_GROUP", "Admin"),
		Directory: DirectoryConfig{
			ClientID:     os.Getenv("DIRECTORY_CLIENT_ID"),
			ClientSecret: os.Getenv("DIRECTORY_CLIENT_SECRET"),
			TenantID:     os.Getenv("DIRECTORY_TENANT_ID"),
			BaseURL:      getEnv("DIRECTORY_BASE_URL", "https://graph.windows.net"),
			Timeout:      getDuration("DIRECTORY_TIMEOUT_SECONDS", 5*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT_SECONDS", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT_SECONDS", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT_SECONDS", 3*time.Second),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("POSTGRES_DSN"),
		},
		Audit: AuditConfig{
			TableName:  getEnv("AUDIT_TABLE_NAME", "audit_log"),
			KafkaTopic: getEnv("KAFKA_AUDIT_TOPIC", "citizengw.audit"),
		},
		RoleCacheTTL: getDuration("ROLE_CACHE_TTL_SECONDS", 30*time.Minute),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Audit.KafkaBrokers = splitAndTrim(brokers)
	}

	if cfg.SupportTokenPublicKey == "" {
		return Server{}, fmt.Errorf("SUPPORT_TOKEN_PUBLIC_KEY is required")
	}
	if cfg.OperatorTokenSigningKey == "" {
		return Server{}, fmt.Errorf("OPERATOR_TOKEN_SIGNING_KEY is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
