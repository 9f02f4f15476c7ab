package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/env"
	"github.com/stretchr/testify/require"
)

// isolate 把全局配置目录指向临时目录，返回全局目录和工作目录
func isolate(t *testing.T) (string, string) {
	t.Helper()
	global := t.TempDir()
	t.Setenv("ORIGAMI_GLOBAL_CONFIG", global)
	t.Setenv("ORIGAMI_GLOBAL_DATA", filepath.Join(global, "data"))
	return global, t.TempDir()
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	_, cwd := isolate(t)

	cfg, err := load(cwd, "", false, env.NewFromMap(map[string]string{"OPENAI_API_KEY": "sk-env"}))
	require.NoError(t, err)

	require.Equal(t, filepath.Join(cwd, defaultDataDirectory), cfg.Options.DataDirectory)
	require.Equal(t, filepath.Join(cwd, defaultDataDirectory, "images"), cfg.Images.Directory)
	require.Equal(t, DefaultServerAddress, cfg.Server.Address)
	require.Equal(t, DefaultProviderTimeout*time.Second, cfg.ProviderTimeout())
	require.Equal(t, "sk-env", cfg.Provider.APIKey)
	require.True(t, cfg.IsConfigured())
	require.Equal(t, time.Local, cfg.Location())
	require.False(t, cfg.Options.Debug)
}

func TestLoadMergesProjectOverGlobal(t *testing.T) {
	global, cwd := isolate(t)
	writeJSON(t, filepath.Join(global, "origami.json"), `{
		"options": {"timezone": "UTC", "admin_users": ["root", "admin", "root"]},
		"provider": {"chat_model": "global-model", "image_size": "512x512"}
	}`)
	writeJSON(t, filepath.Join(cwd, ".origami.json"), `{
		"provider": {"chat_model": "project-model", "api_key": "${MY_KEY}"}
	}`)

	cfg, err := load(cwd, "", true, env.NewFromMap(map[string]string{"MY_KEY": "sk-mine"}))
	require.NoError(t, err)

	require.Equal(t, "project-model", cfg.Provider.ChatModel)
	require.Equal(t, "512x512", cfg.Provider.ImageSize)
	require.Equal(t, "sk-mine", cfg.Provider.APIKey)
	require.Equal(t, time.UTC, cfg.Location())
	require.Equal(t, []string{"admin", "root"}, cfg.Options.AdminUsers)
	require.True(t, cfg.Options.Debug)

	require.True(t, cfg.IsAdmin("admin"))
	require.False(t, cfg.IsAdmin("alice"))
	require.False(t, cfg.IsAdmin(""))
}

func TestLoadDataDirFlagWins(t *testing.T) {
	_, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "origami.json"), `{"options": {"data_directory": "from-file"}}`)

	cfg, err := load(cwd, "", false, env.NewFromMap(nil))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cwd, "from-file"), cfg.Options.DataDirectory)

	custom := filepath.Join(t.TempDir(), "custom")
	cfg, err = load(cwd, custom, false, env.NewFromMap(nil))
	require.NoError(t, err)
	require.Equal(t, custom, cfg.Options.DataDirectory)
}

func TestLoadInvalidTimezone(t *testing.T) {
	_, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "origami.json"), `{"options": {"timezone": "Mars/Olympus"}}`)

	_, err := load(cwd, "", false, env.NewFromMap(nil))
	require.ErrorContains(t, err, "Mars/Olympus")
}

func TestLoadInvalidJSON(t *testing.T) {
	_, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "origami.json"), `{"options": `)

	_, err := load(cwd, "", false, env.NewFromMap(nil))
	require.Error(t, err)
}

func TestLoadWithoutKeyIsNotConfigured(t *testing.T) {
	_, cwd := isolate(t)

	cfg, err := load(cwd, "", false, env.NewFromMap(nil))
	require.NoError(t, err)
	require.False(t, cfg.IsConfigured())
	require.Empty(t, cfg.Provider.APIKey)
}

func TestLoadEnvReadsDotEnv(t *testing.T) {
	cwd := t.TempDir()
	t.Setenv("ORIGAMI_DOTENV_ONLY", "")
	t.Setenv("ORIGAMI_DOTENV_BOTH", "from-process")
	writeJSON(t, filepath.Join(cwd, ".env"), "ORIGAMI_DOTENV_ONLY=from-file\nORIGAMI_DOTENV_BOTH=from-file\n")

	e := loadEnv(cwd)
	require.Equal(t, "from-file", e.Get("ORIGAMI_DOTENV_ONLY"))
	require.Equal(t, "from-process", e.Get("ORIGAMI_DOTENV_BOTH"))

	t.Setenv("ORIGAMI_DOTENV_PROBE", "x")
	require.Equal(t, "x", loadEnv(t.TempDir()).Get("ORIGAMI_DOTENV_PROBE"))
}

// .env 与进程环境合并后交给解析器：进程环境优先，.env 补齐缺失的变量。
func TestLoadEnvFeedsResolver(t *testing.T) {
	cwd := t.TempDir()
	t.Setenv("ORIGAMI_RESOLVE_HOST", "proxy.internal")
	t.Setenv("ORIGAMI_RESOLVE_KEY", "")
	writeJSON(t, filepath.Join(cwd, ".env"), "ORIGAMI_RESOLVE_HOST=from-file\nORIGAMI_RESOLVE_KEY=sk-file\n")

	r := NewEnvironmentVariableResolver(loadEnv(cwd))
	got, err := r.ResolveValue("https://${ORIGAMI_RESOLVE_HOST}/v1")
	require.NoError(t, err)
	require.Equal(t, "https://proxy.internal/v1", got)

	got, err = r.ResolveValue("$ORIGAMI_RESOLVE_KEY")
	require.NoError(t, err)
	require.Equal(t, "sk-file", got)

	_, err = r.ResolveValue("$ORIGAMI_RESOLVE_MISSING")
	require.Error(t, err)
}

func TestSetConfigField(t *testing.T) {
	_, cwd := isolate(t)

	cfg, err := load(cwd, "", false, env.NewFromMap(nil))
	require.NoError(t, err)
	require.False(t, cfg.HasConfigField("provider.chat_model"))

	require.NoError(t, cfg.SetConfigField("provider.chat_model", "gpt-x"))
	require.NoError(t, cfg.SetConfigField("options.admin_users", []string{"admin"}))
	require.True(t, cfg.HasConfigField("provider.chat_model"))

	reloaded, err := load(cwd, "", false, env.NewFromMap(nil))
	require.NoError(t, err)
	require.Equal(t, "gpt-x", reloaded.Provider.ChatModel)
	require.True(t, reloaded.IsAdmin("admin"))

	require.NoError(t, cfg.RemoveConfigField("provider.chat_model"))
	require.False(t, cfg.HasConfigField("provider.chat_model"))
}

func TestLoadRelativeDirectories(t *testing.T) {
	_, cwd := isolate(t)
	writeJSON(t, filepath.Join(cwd, "origami.json"), `{
		"options": {"data_directory": "state"},
		"images": {"directory": "pictures"}
	}`)

	cfg, err := load(cwd, "", false, env.NewFromMap(nil))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(cwd, "state"), cfg.Options.DataDirectory)
	require.Equal(t, filepath.Join(cwd, "state", "pictures"), cfg.Images.Directory)
}
