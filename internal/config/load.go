package config

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/env"
	"github.com/SandeepBatta/OrigamiAI/internal/filepathext"
	"github.com/SandeepBatta/OrigamiAI/internal/fsext"
	"github.com/SandeepBatta/OrigamiAI/internal/home"
	"github.com/SandeepBatta/OrigamiAI/internal/log"
	"github.com/joho/godotenv"
	"github.com/qjebbs/go-jsons"
)

// Init 加载配置并把日志写入数据目录
func Init(workingDir, dataDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, dataDir, debug)
	if err != nil {
		return nil, err
	}
	log.Setup(
		filepath.Join(cfg.Options.DataDirectory, "logs", appName+".log"),
		cfg.Options.Debug,
	)
	if !cfg.IsConfigured() {
		slog.Warn("未配置提供方 API 密钥")
	}
	return cfg, nil
}

// Load 从全局配置和工作目录向上找到的项目配置中加载配置，近处的文件优先。
func Load(workingDir, dataDir string, debug bool) (*Config, error) {
	return load(workingDir, dataDir, debug, loadEnv(workingDir))
}

func load(workingDir, dataDir string, debug bool, e env.Env) (*Config, error) {
	configPaths := lookupConfigs(workingDir)

	cfg, err := loadFromConfigPaths(configPaths)
	if err != nil {
		return nil, fmt.Errorf("从路径 %v 加载配置失败: %w", configPaths, err)
	}
	cfg.dataConfigDir = GlobalConfigData()

	if err := cfg.setDefaults(workingDir, dataDir); err != nil {
		return nil, err
	}
	if debug {
		cfg.Options.Debug = true
	}

	cfg.resolver = NewEnvironmentVariableResolver(e)
	cfg.configureProvider(e)
	return cfg, nil
}

// loadEnv 把工作目录下 .env 中的变量叠加在进程环境之下，进程环境优先。
func loadEnv(workingDir string) env.Env {
	vars, err := godotenv.Read(filepath.Join(workingDir, ".env"))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("读取 .env 失败", "error", err)
		}
		return env.New()
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && v != "" {
			vars[k] = v
		}
	}
	return env.NewFromMap(vars)
}

func (c *Config) configureProvider(e env.Env) {
	p := c.Provider
	if p.APIKey == "" {
		p.APIKey = DefaultAPIKeyReference
	}
	if key, err := c.resolver.ResolveValue(p.APIKey); err != nil {
		slog.Debug("无法解析 API 密钥", "error", err)
		p.APIKey = ""
	} else {
		p.APIKey = key
	}

	if p.BaseURL == "" {
		p.BaseURL = e.Get("OPENAI_BASE_URL")
	}
	if url, err := c.resolver.ResolveValue(p.BaseURL); err != nil {
		slog.Warn("无法解析提供方地址，使用默认地址", "error", err)
		p.BaseURL = ""
	} else {
		p.BaseURL = url
	}

	if prompt, err := c.resolver.ResolveValue(p.SystemPrompt); err == nil {
		p.SystemPrompt = prompt
	}
}

func (c *Config) setDefaults(workingDir, dataDir string) error {
	c.workingDir = workingDir
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Provider == nil {
		c.Provider = &ProviderOptions{}
	}
	if c.Images == nil {
		c.Images = &ImageOptions{}
	}
	if c.Server == nil {
		c.Server = &ServerOptions{}
	}

	switch {
	case dataDir != "":
		c.Options.DataDirectory = dataDir
	case c.Options.DataDirectory == "":
		if path, ok := fsext.LookupClosest(workingDir, defaultDataDirectory); ok {
			c.Options.DataDirectory = path
		} else {
			c.Options.DataDirectory = filepath.Join(workingDir, defaultDataDirectory)
		}
	}
	c.Options.DataDirectory = filepathext.Resolve(workingDir, c.Options.DataDirectory)

	slices.Sort(c.Options.AdminUsers)
	c.Options.AdminUsers = slices.Compact(c.Options.AdminUsers)

	if c.Options.Timezone != "" {
		loc, err := time.LoadLocation(c.Options.Timezone)
		if err != nil {
			return fmt.Errorf("无效的时区 %q: %w", c.Options.Timezone, err)
		}
		c.location = loc
	}

	if c.Provider.Timeout <= 0 {
		c.Provider.Timeout = DefaultProviderTimeout
	}
	// 相对路径以数据目录为基准
	c.Images.Directory = filepathext.Resolve(c.Options.DataDirectory, cmp.Or(c.Images.Directory, "images"))
	c.Server.Address = cmp.Or(c.Server.Address, DefaultServerAddress)
	return nil
}

// lookupConfigs 返回按优先级从低到高排列的配置文件路径
func lookupConfigs(cwd string) []string {
	configPaths := []string{
		GlobalConfig(),
		GlobalConfigData(),
	}

	configNames := []string{appName + ".json", "." + appName + ".json"}
	foundConfigs, err := fsext.Lookup(cwd, configNames...)
	if err != nil {
		return configPaths
	}
	// 近处的配置优先级更高，放在最后
	slices.Reverse(foundConfigs)
	return append(configPaths, foundConfigs...)
}

func loadFromConfigPaths(configPaths []string) (*Config, error) {
	var configs [][]byte
	for _, path := range configPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("打开配置文件 %s 失败: %w", path, err)
		}
		if len(data) == 0 {
			continue
		}
		configs = append(configs, data)
	}
	return loadFromBytes(configs)
}

func loadFromBytes(configs [][]byte) (*Config, error) {
	if len(configs) == 0 {
		return &Config{}, nil
	}
	data, err := jsons.Merge(configs)
	if err != nil {
		return nil, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// GlobalConfig 返回用户手写的全局配置文件路径
func GlobalConfig() string {
	if dir := os.Getenv("ORIGAMI_GLOBAL_CONFIG"); dir != "" {
		return filepath.Join(dir, appName+".json")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, appName+".json")
	}
	return filepath.Join(home.Dir(), ".config", appName, appName+".json")
}

// GlobalConfigData 返回程序自己写入的配置文件路径，config set 写到这里。
func GlobalConfigData() string {
	if dir := os.Getenv("ORIGAMI_GLOBAL_DATA"); dir != "" {
		return filepath.Join(dir, appName+".json")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName, appName+".json")
	}
	if runtime.GOOS == "windows" {
		localAppData := cmp.Or(
			os.Getenv("LOCALAPPDATA"),
			filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local"),
		)
		return filepath.Join(localAppData, appName, appName+".json")
	}
	return filepath.Join(home.Dir(), ".local", "share", appName, appName+".json")
}
