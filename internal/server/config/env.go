package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is prepended to every environment variable the server reads,
// e.g. GUARDIANEYE_SECRET_KEY or GUARDIANEYE_WINDY_API_KEY.
const EnvPrefix = "GUARDIANEYE_"

// parseEnv overlays values from GUARDIANEYE_* environment variables.
// Durations use time.ParseDuration syntax and lists are comma separated.
// Unparsable numbers, durations and booleans are errors.
func parseEnv(config *Config) error {
	k := koanf.New(".")

	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	strFields := map[string]*string{
		"endpoint_addr_http": &config.EndpointAddrHTTP,
		"endpoint_addr_grpc": &config.EndpointAddrGRPC,
		"environment":        &config.Environment,
		"log_level":          &config.LogLevel,
		"storage_backend":    &config.StorageBackend,
		"database_dsn":       &config.DatabaseDSN,
		"secret_key":         &config.SecretKey,
		"reset_url_base":     &config.ResetURLBase,
		"windy_base_url":     &config.WindyBaseURL,
		"windy_api_key":      &config.WindyAPIKey,
		"feed_category":      &config.FeedCategory,
		"denylist_backend":   &config.DenylistBackend,
		"redis_addr":         &config.RedisAddr,
		"redis_password":     &config.RedisPassword,
		"notifier_backend":   &config.NotifierBackend,
		"amqp_url":           &config.AMQPURL,
		"amqp_exchange":      &config.AMQPExchange,
		"amqp_routing_key":   &config.AMQPRoutingKey,
		"s3_root_user":       &config.S3RootUser,
		"s3_root_password":   &config.S3RootPassword,
		"s3_bucket":          &config.S3Bucket,
		"s3_region":          &config.S3Region,
		"s3_base_endpoint":   &config.S3BaseEndpoint,
	}
	for key, dst := range strFields {
		if k.Exists(key) {
			*dst = k.String(key)
		}
	}

	durFields := map[string]*time.Duration{
		"token_validity_duration":       &config.TokenValidityDuration,
		"reset_token_validity_duration": &config.ResetTokenValidityDuration,
		"auth_rate_limit_window":        &config.AuthRateLimitWindow,
		"upstream_timeout":              &config.UpstreamTimeout,
	}
	for key, dst := range durFields {
		if !k.Exists(key) {
			continue
		}
		d, err := time.ParseDuration(k.String(key))
		if err != nil {
			return fmt.Errorf("env %s%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
		*dst = d
	}

	intFields := map[string]*int{
		"auth_rate_limit_requests": &config.AuthRateLimitRequests,
		"feed_page_size":           &config.FeedPageSize,
		"redis_db":                 &config.RedisDB,
	}
	for key, dst := range intFields {
		if !k.Exists(key) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(k.String(key)))
		if err != nil {
			return fmt.Errorf("env %s%s: %w", EnvPrefix, strings.ToUpper(key), err)
		}
		*dst = n
	}

	if k.Exists("trust_proxy_headers") {
		b, err := strconv.ParseBool(strings.TrimSpace(k.String("trust_proxy_headers")))
		if err != nil {
			return fmt.Errorf("env %sTRUST_PROXY_HEADERS: %w", EnvPrefix, err)
		}
		config.TrustProxyHeaders = b
	}

	if k.Exists("allowed_origins") {
		config.AllowedOrigins = splitList(k.String("allowed_origins"))
	}

	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
