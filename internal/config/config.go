package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tengjizhang/linkconv/internal/markup"
)

const (
	defaultDebounceMS = 300
	defaultListenAddr = "127.0.0.1:8080"
	defaultLogLevel   = "info"
)

const (
	configFolderName  = "linkconv"
	configFileName    = "config.toml"
	configPathEnvName = "XDG_CONFIG_HOME"
)

type Config struct {
	DBPath     string
	Parser     string
	Debounce   time.Duration
	ListenAddr string
	ExportDir  string
	LogLevel   string
}

func LoadConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	defaultDB := filepath.Join(home, ".local", "share", "linkconv", "linkconv.db")

	cfg := Config{
		DBPath:     defaultDB,
		Parser:     markup.ParserRegex,
		Debounce:   defaultDebounceMS * time.Millisecond,
		ListenAddr: defaultListenAddr,
		ExportDir:  ".",
		LogLevel:   defaultLogLevel,
	}

	configPath, hasConfig, err := findConfigPath(home)
	if err != nil {
		return Config{}, err
	}
	if hasConfig {
		fileCfg, err := loadFileConfig(configPath)
		if err != nil {
			return Config{}, err
		}
		applyFileConfig(&cfg, fileCfg)
	}

	applyEnvOverrides(&cfg)

	if cfg.Debounce <= 0 {
		cfg.Debounce = defaultDebounceMS * time.Millisecond
	}
	return cfg, nil
}

type fileConfig struct {
	DBPath     *string `toml:"db_path"`
	Parser     *string `toml:"parser"`
	DebounceMS *int    `toml:"debounce_ms"`
	ListenAddr *string `toml:"listen_addr"`
	ExportDir  *string `toml:"export_dir"`
	LogLevel   *string `toml:"log_level"`
}

func findConfigPath(home string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	if xdgConfigHome := strings.TrimSpace(os.Getenv(configPathEnvName)); xdgConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdgConfigHome, configFolderName, configFileName))
	}
	candidates = append(candidates, filepath.Join(home, ".config", configFolderName, configFileName))

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil {
			if info.IsDir() {
				return "", false, fmt.Errorf("config path %q is a directory; expected a file", candidate)
			}
			return candidate, true, nil
		}
		if os.IsNotExist(err) {
			continue
		}
		return "", false, fmt.Errorf("failed to read config path %q: %w", candidate, err)
	}
	return "", false, nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			unknown = append(unknown, key.String())
		}
		sort.Strings(unknown)
		return fileConfig{}, fmt.Errorf("invalid config file %q: unknown key(s): %s", path, strings.Join(unknown, ", "))
	}
	if err := validateFileConfig(path, cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

func validateFileConfig(path string, cfg fileConfig) error {
	if cfg.DBPath != nil && strings.TrimSpace(*cfg.DBPath) == "" {
		return fmt.Errorf("invalid config file %q: db_path must be non-empty when provided", path)
	}
	if cfg.Parser != nil && !validParser(*cfg.Parser) {
		return fmt.Errorf("invalid config file %q: parser must be one of regex|tree", path)
	}
	if cfg.DebounceMS != nil && *cfg.DebounceMS <= 0 {
		return fmt.Errorf("invalid config file %q: debounce_ms must be > 0", path)
	}
	if cfg.ListenAddr != nil && strings.TrimSpace(*cfg.ListenAddr) == "" {
		return fmt.Errorf("invalid config file %q: listen_addr must be non-empty when provided", path)
	}
	if cfg.LogLevel != nil && !validLogLevel(*cfg.LogLevel) {
		return fmt.Errorf("invalid config file %q: log_level must be one of debug|info|warn|error", path)
	}
	return nil
}

func applyFileConfig(cfg *Config, fileCfg fileConfig) {
	if fileCfg.DBPath != nil {
		cfg.DBPath = *fileCfg.DBPath
	}
	if fileCfg.Parser != nil {
		cfg.Parser = normalizeName(*fileCfg.Parser)
	}
	if fileCfg.DebounceMS != nil {
		cfg.Debounce = time.Duration(*fileCfg.DebounceMS) * time.Millisecond
	}
	if fileCfg.ListenAddr != nil {
		cfg.ListenAddr = *fileCfg.ListenAddr
	}
	if fileCfg.ExportDir != nil && strings.TrimSpace(*fileCfg.ExportDir) != "" {
		cfg.ExportDir = *fileCfg.ExportDir
	}
	if fileCfg.LogLevel != nil {
		cfg.LogLevel = normalizeName(*fileCfg.LogLevel)
	}
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("LINKCONV_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	if v, ok := os.LookupEnv("LINKCONV_PARSER"); ok && validParser(v) {
		cfg.Parser = normalizeName(v)
	}
	if v, ok := os.LookupEnv("LINKCONV_DEBOUNCE_MS"); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Debounce = time.Duration(n) * time.Millisecond
		}
	}
	if v, ok := os.LookupEnv("LINKCONV_LISTEN_ADDR"); ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv("LINKCONV_EXPORT_DIR"); ok && v != "" {
		cfg.ExportDir = v
	}
	if v, ok := os.LookupEnv("LINKCONV_LOG_LEVEL"); ok && validLogLevel(v) {
		cfg.LogLevel = normalizeName(v)
	}
}

func validParser(v string) bool {
	switch normalizeName(v) {
	case markup.ParserRegex, markup.ParserTree:
		return true
	}
	return false
}

func validLogLevel(v string) bool {
	switch normalizeName(v) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func normalizeName(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
