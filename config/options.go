package config

const (
	defaultVersion           = "0.1.0"
	defaultLogFile           = "shelfd.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 8080
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/shelfd"
	defaultDSN               = defaultData + "/shelfd.db"
	defaultWorkerPoolSize    = 4
	defaultSearchEndpoint    = "https://dapi.kakao.com/v3/search/book"
	defaultLookupEndpoint    = "https://www.aladin.co.kr/ttb/api/ItemLookUp.aspx"
)

// Opts is the loaded configuration, set once at startup.
var Opts *Options

// Viper unmarshals through mapstructure, so the field tags here are
// mapstructure tags, not json.
type Options struct {
	// Version is the application version.
	Version string `mapstructure:"version"`
	// LogFile is the file to write logs to.
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show.
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size in MiB before the log file rotates.
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of rotated files to keep.
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file.
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether to compress rotated log files.
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database.
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on.
	Port int `mapstructure:"port"`
	// Host is the host to listen on.
	Host string `mapstructure:"host"`
	// Data is the directory holding the database and mirrored covers.
	Data string `mapstructure:"data"`
	// WorkerPoolSize is the number of cover mirror workers.
	WorkerPoolSize int `mapstructure:"worker_pool_size"`

	// SearchEndpoint is the primary book-search catalog URL.
	SearchEndpoint string `mapstructure:"search_endpoint"`
	// SearchAPIKey authenticates against the search catalog.
	SearchAPIKey string `mapstructure:"search_api_key"`
	// LookupEndpoint is the secondary page-count/cover lookup URL.
	LookupEndpoint string `mapstructure:"lookup_endpoint"`
	// LookupAPIKey authenticates against the lookup catalog.
	LookupAPIKey string `mapstructure:"lookup_api_key"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		Version:           defaultVersion,
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		DSN:               defaultDSN,
		Port:              defaultPort,
		Host:              defaultHost,
		Data:              defaultData,
		WorkerPoolSize:    defaultWorkerPoolSize,
		SearchEndpoint:    defaultSearchEndpoint,
		LookupEndpoint:    defaultLookupEndpoint,
	}
	return Opts
}
