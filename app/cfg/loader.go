package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath     string `long:"db-path" env:"DB_PATH" default:"./data/news-map.db" description:"SQLite database file holding regions"`
	RegionsDir string `long:"regions-dir" env:"REGIONS_DIR" default:"./regions" description:"Directory containing region configuration files"`
	RedisAddr  string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address for the shared result cache (optional, in-memory when empty)"`

	// Application configuration
	Port               string  `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	UserAgent          string  `long:"user-agent" env:"USER_AGENT" default:"News Map/1.0" description:"User agent string for feed requests"`
	FetchTimeout       int     `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"10" description:"Per-feed fetch timeout in seconds"`
	FetchRate          float64 `long:"fetch-rate" env:"FETCH_RATE" default:"0" description:"Maximum outgoing feed requests per second (0 disables limiting)"`
	FetchBurst         int     `long:"fetch-burst" env:"FETCH_BURST" default:"10" description:"Burst size for outgoing feed requests"`
	CacheTTL           int     `long:"cache-ttl" env:"CACHE_TTL" default:"180" description:"Result cache TTL in seconds"`
	CacheSize          int     `long:"cache-size" env:"CACHE_SIZE" default:"1000" description:"Maximum entries kept by the in-memory result cache"`
	DefaultLimit       int     `long:"default-limit" env:"DEFAULT_LIMIT" default:"60" description:"Items returned when the request has no limit"`
	MaxLimit           int     `long:"max-limit" env:"MAX_LIMIT" default:"200" description:"Upper bound for the requested item limit"`
	WarmInterval       int     `long:"warm-interval" env:"WARM_INTERVAL" default:"0" description:"Cache warm-up interval in seconds (0 disables warm-up)"`
	WorkerCount        int     `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of background workers"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Europe/Kyiv)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return LoadArgs(nil)
}

// LoadArgs parses args instead of os.Args; a nil slice means os.Args.
func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:             raw.DBPath,
		RegionsDir:         raw.RegionsDir,
		RedisAddr:          raw.RedisAddr,
		Port:               raw.Port,
		UserAgent:          raw.UserAgent,
		FetchTimeout:       time.Duration(raw.FetchTimeout) * time.Second,
		FetchRate:          raw.FetchRate,
		FetchBurst:         raw.FetchBurst,
		CacheTTL:           time.Duration(raw.CacheTTL) * time.Second,
		CacheSize:          raw.CacheSize,
		DefaultLimit:       raw.DefaultLimit,
		MaxLimit:           raw.MaxLimit,
		WarmInterval:       time.Duration(raw.WarmInterval) * time.Second,
		WorkerCount:        raw.WorkerCount,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func (c *Cfg) Validate() error {
	positiveDurations := []struct {
		name  string
		value time.Duration
	}{
		{"fetch timeout", c.FetchTimeout},
		{"cache TTL", c.CacheTTL},
	}

	for _, field := range positiveDurations {
		if field.value <= 0 {
			return fmt.Errorf("%s must be positive", field.name)
		}
	}

	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.WarmInterval < 0 {
		return fmt.Errorf("warm interval must be non-negative")
	}
	if c.FetchRate < 0 {
		return fmt.Errorf("fetch rate must be non-negative")
	}
	if c.FetchRate > 0 && c.FetchBurst <= 0 {
		return fmt.Errorf("fetch burst must be positive when fetch rate is set")
	}
	if c.MaxLimit <= 0 {
		return fmt.Errorf("max limit must be positive")
	}
	if c.DefaultLimit < 0 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default limit must be between 0 and %d", c.MaxLimit)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("worker count must be positive")
	}

	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
