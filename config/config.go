package config

import (
	"fmt"

	"github.com/robfig/config"
)

// DefaultConfigFilePath is the path to the config file unless -config
// says otherwise
const DefaultConfigFilePath string = "/etc/hcp-hco/api.conf"

// APISection is the [api] section of the config file
const APISection string = "api"

// Config file keys
const (
	Environment = "environment"

	ListenPort = "listen_port"

	WarehouseHost     = "warehouse_host"
	WarehousePort     = "warehouse_port"
	WarehouseName     = "warehouse_database"
	WarehouseUsername = "warehouse_username"
	WarehousePassword = "warehouse_password"

	CacheTTLSeconds     = "cache_ttl_seconds"
	CacheRefreshSeconds = "cache_refresh_seconds"
	CacheRetrySeconds   = "cache_retry_seconds"
	CachePollSeconds    = "cache_poll_seconds"
	CacheWorkers        = "cache_workers"

	AWSAccessKeyID     = "aws_access_key_id"
	AWSSecretAccessKey = "aws_secret_access_key"
	AWSRegion          = "aws_region"
	AWSS3Endpoint      = "s3_endpoint"
	AWSS3BucketName    = "s3_bucket"

	SendGridAPIKey = "sendgrid_api_key"
	AlertEmail     = "alert_email"
)

var configRequiredStrings = []string{
	Environment,
	WarehouseHost,
	WarehouseName,
	WarehousePassword,
	WarehouseUsername,
}

var configRequiredInt64s = []string{
	ListenPort,
	WarehousePort,
}

// Optional keys are absent when the feature backed by them (S3 export,
// alert mail) is disabled.
var configOptionalStrings = []string{
	AWSAccessKeyID,
	AWSSecretAccessKey,
	AWSRegion,
	AWSS3Endpoint,
	AWSS3BucketName,
	SendGridAPIKey,
	AlertEmail,
}

// The cache tuning defaults. The refresh cadence is deliberately
// shorter than the TTL so a background refresh normally lands before an
// entry goes stale.
var configDefaultInt64s = map[string]int64{
	CacheTTLSeconds:     900,
	CacheRefreshSeconds: 600,
	CacheRetrySeconds:   60,
	CachePollSeconds:    2,
	CacheWorkers:        4,
}

// ConfigStrings contains the string values for the given config keys
var ConfigStrings = map[string]string{}

// ConfigInt64s contains the int64 values for the given config keys
var ConfigInt64s = map[string]int64{}

// Load reads the config file at the given path and populates the
// package maps. It is the responsibility of main.go to call this before
// anything else reads configuration.
func Load(path string) error {
	c, err := config.ReadDefault(path)
	if err != nil {
		return err
	}

	for _, key := range configRequiredStrings {
		s, err := c.String(APISection, key)
		if err != nil {
			return fmt.Errorf("config: required key %s: %v", key, err)
		}
		ConfigStrings[key] = s
	}

	for _, key := range configRequiredInt64s {
		ii, err := c.Int(APISection, key)
		if err != nil {
			return fmt.Errorf("config: required key %s: %v", key, err)
		}
		ConfigInt64s[key] = int64(ii)
	}

	for _, key := range configOptionalStrings {
		s, err := c.String(APISection, key)
		if err != nil {
			continue
		}
		ConfigStrings[key] = s
	}

	for key, def := range configDefaultInt64s {
		ii, err := c.Int(APISection, key)
		if err != nil {
			ConfigInt64s[key] = def
			continue
		}
		ConfigInt64s[key] = int64(ii)
	}

	return nil
}
