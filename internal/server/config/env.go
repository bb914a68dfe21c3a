package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr        = "AGRO_HTTP_ADDR"
	EnvGRPCAddr        = "AGRO_GRPC_ADDR"
	EnvDatabaseDSN     = "AGRO_DATABASE_DSN"
	EnvSecretKey       = "AGRO_SECRET_KEY"
	EnvAccessTokenTTL  = "AGRO_ACCESS_TOKEN_TTL"
	EnvStorageBackend  = "AGRO_STORAGE_BACKEND"
	EnvS3User          = "AGRO_S3_USER"
	EnvS3Password      = "AGRO_S3_PASSWORD"
	EnvS3CropBucket    = "AGRO_S3_CROP_BUCKET"
	EnvS3ProductBucket = "AGRO_S3_PRODUCT_BUCKET"
	EnvS3Region        = "AGRO_S3_REGION"
	EnvS3Endpoint      = "AGRO_S3_ENDPOINT"
	EnvS3PublicURL     = "AGRO_S3_PUBLIC_URL"
	EnvAPIBaseURL      = "AGRO_API_BASE_URL"
	EnvAPITimeout      = "AGRO_API_TIMEOUT"
	EnvSettingsPath    = "AGRO_SETTINGS_PATH"
	EnvLogBackend      = "AGRO_LOG_BACKEND"
	EnvMaxUploadSize   = "AGRO_MAX_UPLOAD_SIZE"
)

// parseEnv loads dotenv (if the file exists) into the process environment
// and overlays every AGRO_* variable that is set. Variables already present
// in the environment win over the dotenv file.
func parseEnv(cfg *Config, dotenv string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	strs := map[string]*string{
		EnvHTTPAddr:        &cfg.EndpointAddrHTTP,
		EnvGRPCAddr:        &cfg.EndpointAddrGRPC,
		EnvDatabaseDSN:     &cfg.DatabaseDSN,
		EnvSecretKey:       &cfg.SecretKey,
		EnvStorageBackend:  &cfg.StorageBackend,
		EnvS3User:          &cfg.S3RootUser,
		EnvS3Password:      &cfg.S3RootPassword,
		EnvS3CropBucket:    &cfg.S3CropBucket,
		EnvS3ProductBucket: &cfg.S3ProductBucket,
		EnvS3Region:        &cfg.S3Region,
		EnvS3Endpoint:      &cfg.S3BaseEndpoint,
		EnvS3PublicURL:     &cfg.S3PublicBaseURL,
		EnvAPIBaseURL:      &cfg.APIBaseURL,
		EnvSettingsPath:    &cfg.SettingsPath,
		EnvLogBackend:      &cfg.LogBackend,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		EnvAccessTokenTTL: &cfg.AccessTokenValidityDuration,
		EnvAPITimeout:     &cfg.APITimeout,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = d
	}

	if v, ok := os.LookupEnv(EnvMaxUploadSize); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxUploadSize, err)
		}
		cfg.MaxUploadSize = n
	}

	return nil
}
