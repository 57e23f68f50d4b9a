package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/guardianeye/guardianeye/internal/flagx"
	"github.com/guardianeye/guardianeye/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer and
// zero-valued fields that are absent from the file leave the current value
// untouched.
type JsonConfig struct {
	EndpointAddrHTTP           string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC           string          `json:"endpoint_addr_grpc"`
	Environment                string          `json:"environment"`
	LogLevel                   string          `json:"log_level"`
	StorageBackend             string          `json:"storage_backend"`
	DatabaseDSN                string          `json:"database_dsn"`
	SecretKey                  string          `json:"secret_key"`
	TokenValidityDuration      *timex.Duration `json:"token_validity_duration"`
	ResetTokenValidityDuration *timex.Duration `json:"reset_token_validity_duration"`
	ResetURLBase               string          `json:"reset_url_base"`
	AllowedOrigins             []string        `json:"allowed_origins"`
	AuthRateLimitRequests      int             `json:"auth_rate_limit_requests"`
	AuthRateLimitWindow        *timex.Duration `json:"auth_rate_limit_window"`
	TrustProxyHeaders          *bool           `json:"trust_proxy_headers"`
	WindyBaseURL               string          `json:"windy_base_url"`
	WindyAPIKey                string          `json:"windy_api_key"`
	FeedCategory               string          `json:"feed_category"`
	FeedPageSize               int             `json:"feed_page_size"`
	UpstreamTimeout            *timex.Duration `json:"upstream_timeout"`
	DenylistBackend            string          `json:"denylist_backend"`
	RedisAddr                  string          `json:"redis_addr"`
	RedisPassword              string          `json:"redis_password"`
	RedisDB                    *int            `json:"redis_db"`
	NotifierBackend            string          `json:"notifier_backend"`
	AMQPURL                    string          `json:"amqp_url"`
	AMQPExchange               string          `json:"amqp_exchange"`
	AMQPRoutingKey             string          `json:"amqp_routing_key"`
	S3RootUser                 string          `json:"s3_root_user"`
	S3RootPassword             string          `json:"s3_root_password"`
	S3Bucket                   string          `json:"s3_bucket"`
	S3Region                   string          `json:"s3_region"`
	S3BaseEndpoint             string          `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $GUARDIANEYE_CONFIG). Nothing happens when no file is configured.
func parseJson(config *Config) error {
	path := flagx.ConfigFile()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.ResetTokenValidityDuration != nil {
		config.ResetTokenValidityDuration = c.ResetTokenValidityDuration.Duration
	}
	setString(&config.ResetURLBase, c.ResetURLBase)
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.AuthRateLimitRequests > 0 {
		config.AuthRateLimitRequests = c.AuthRateLimitRequests
	}
	if c.AuthRateLimitWindow != nil {
		config.AuthRateLimitWindow = c.AuthRateLimitWindow.Duration
	}
	if c.TrustProxyHeaders != nil {
		config.TrustProxyHeaders = *c.TrustProxyHeaders
	}
	setString(&config.WindyBaseURL, c.WindyBaseURL)
	setString(&config.WindyAPIKey, c.WindyAPIKey)
	setString(&config.FeedCategory, c.FeedCategory)
	if c.FeedPageSize > 0 {
		config.FeedPageSize = c.FeedPageSize
	}
	if c.UpstreamTimeout != nil {
		config.UpstreamTimeout = c.UpstreamTimeout.Duration
	}
	setString(&config.DenylistBackend, c.DenylistBackend)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	setString(&config.NotifierBackend, c.NotifierBackend)
	setString(&config.AMQPURL, c.AMQPURL)
	setString(&config.AMQPExchange, c.AMQPExchange)
	setString(&config.AMQPRoutingKey, c.AMQPRoutingKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
