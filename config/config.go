package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", defaultVersion)
	v.SetDefault("log_file", defaultLogFile)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file_max_size", defaultLogFileMaxSize)
	v.SetDefault("log_file_max_backups", defaultLogFileMaxBackups)
	v.SetDefault("log_file_max_age", defaultLogFileMaxAge)
	v.SetDefault("log_compress", defaultLogCompress)
	v.SetDefault("dsn_uri", defaultDSN)
	v.SetDefault("port", defaultPort)
	v.SetDefault("host", defaultHost)
	v.SetDefault("data", defaultData)
	v.SetDefault("worker_pool_size", defaultWorkerPoolSize)
	v.SetDefault("search_endpoint", defaultSearchEndpoint)
	v.SetDefault("search_api_key", "")
	v.SetDefault("lookup_endpoint", defaultLookupEndpoint)
	v.SetDefault("lookup_api_key", "")
}

// GetConfig loads defaults plus SHELFD_* environment overrides.
func GetConfig() (*Options, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("shelfd")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	Opts = opts
	return opts, nil
}

// ParseFile loads a TOML config file on top of the defaults.
func ParseFile(path string) (*Options, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %q", path)
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	Opts = opts
	return opts, nil
}
