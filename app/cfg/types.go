package cfg

import "time"

type Cfg struct {
	// Storage configuration
	DBPath     string
	RegionsDir string
	RedisAddr  string

	// Application configuration
	Port         string
	UserAgent    string
	FetchTimeout time.Duration
	FetchRate    float64
	FetchBurst   int
	CacheTTL     time.Duration
	CacheSize    int
	DefaultLimit int
	MaxLimit     int
	WarmInterval time.Duration
	WorkerCount  int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
