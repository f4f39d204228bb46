package pcsaves

import (
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds the defaults a .pcsaves.yaml file can override, so common
// geometry/hold/tinyurl choices don't need to be repeated on every CLI
// invocation.
type Config struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Hold     int    `yaml:"hold"`
	SavesPath string `yaml:"saves_path"`
	TinyURL  bool   `yaml:"tinyurl"`
	CacheDB  string `yaml:"cache_db"`
}

func defaultConfig() *Config {
	return &Config{
		Width:     10,
		Height:    4,
		Hold:      DefaultHold,
		SavesPath: "saves.json",
		TinyURL:   false,
		CacheDB:   "pcsaves_cache.db",
	}
}

var configFileCandidates = []string{".pcsaves.yaml", ".pcsaves.yml", "pcsaves.yaml", "pcsaves.yml"}

// ConfigProvider loads and caches the process-wide Config, adapted from the
// teacher's FindConfigPath/LoadConfig pair generalized into a lazily
// initialized singleton the way mage-x's DefaultConfigProvider guards
// config loading with sync.Once.
type ConfigProvider struct {
	once   sync.Once
	mu     sync.RWMutex
	config *Config
	err    error
}

var defaultProvider = &ConfigProvider{}

// GetConfig returns the process's Config, loading it from the first
// matching candidate filename on first call.
func GetConfig() (*Config, error) {
	return defaultProvider.GetConfig()
}

func (p *ConfigProvider) GetConfig() (*Config, error) {
	p.once.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.config, p.err = loadConfigFile()
	})
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config, p.err
}

// ResetConfig clears the cached config, for tests that need a fresh load.
func (p *ConfigProvider) ResetConfig() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.once = sync.Once{}
	p.config = nil
	p.err = nil
}

// SetConfig installs cfg directly, bypassing file discovery, for tests.
func (p *ConfigProvider) SetConfig(cfg *Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.once.Do(func() {})
	p.config = cfg
	p.err = nil
}

func loadConfigFile() (*Config, error) {
	cfg := defaultConfig()

	for _, name := range configFileCandidates {
		data, err := os.ReadFile(name)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, validationErrorf("parsing config file %s: %v", name, err)
		}
		return cfg, nil
	}

	return cfg, nil
}
