package region

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type ConfigCache struct {
	regionsDir string
	cache      map[string]*Config
	mu         sync.RWMutex
}

func NewConfigCache(regionsDir string) *ConfigCache {
	return &ConfigCache{
		regionsDir: regionsDir,
		cache:      make(map[string]*Config),
	}
}

func (cc *ConfigCache) Run() error {
	if _, err := os.Stat(cc.regionsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.regionsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		regionID := strings.TrimSuffix(filepath.Base(file), ".yml")

		config, err := cc.LoadConfig(regionID)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Configuration loaded", "region", regionID, "country", config.Country, "feeds", len(config.Feeds))
	}

	return nil
}

func (cc *ConfigCache) LoadConfig(regionID string) (*Config, error) {
	configFile := cc.getConfigFilePath(regionID)
	regionConfig, err := cc.parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	regionConfig.ID = regionID

	if err := cc.validateConfig(regionConfig); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[regionConfig.ID] = regionConfig

	return regionConfig, nil
}

func (cc *ConfigCache) GetConfig(regionID string) (*Config, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	regionConfig, ok := cc.cache[regionID]
	if !ok {
		return nil, fmt.Errorf("region config with id '%s' not found", regionID)
	}
	return regionConfig, nil
}

// GetConfigs returns the loaded configurations sorted by id.
func (cc *ConfigCache) GetConfigs() []*Config {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	configs := make([]*Config, 0, len(cc.cache))
	for _, v := range cc.cache {
		configs = append(configs, v)
	}
	sort.Slice(configs, func(i, j int) bool {
		return configs[i].ID < configs[j].ID
	})
	return configs
}

func (cc *ConfigCache) GetConfigCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *ConfigCache) parseConfig(configFile string) (*Config, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var regionConfig Config
	if err := yaml.Unmarshal(data, &regionConfig); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i := range regionConfig.Feeds {
		regionConfig.Feeds[i].URL = strings.TrimSpace(regionConfig.Feeds[i].URL)
	}

	return &regionConfig, nil
}

func (cc *ConfigCache) validateConfig(regionConfig *Config) error {
	if regionConfig == nil {
		return fmt.Errorf("regionConfig is nil")
	}

	requiredFields := map[string]string{
		"region id":   regionConfig.ID,
		"region name": regionConfig.Name,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if regionConfig.Lat < -90 || regionConfig.Lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if regionConfig.Lng < -180 || regionConfig.Lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}

	for i, feed := range regionConfig.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("feed at index %d must have a URL", i)
		}
		u, err := url.Parse(feed.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("feed at index %d has invalid URL: %s", i, feed.URL)
		}
	}

	return nil
}

func (cc *ConfigCache) getConfigFilePath(regionID string) string {
	return filepath.Join(cc.regionsDir, regionID+".yml")
}
