// Package config 加载并合并 origami 的 JSON 配置。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	appName              = "origami"
	defaultDataDirectory = ".origami"

	DefaultServerAddress   = "127.0.0.1:8080"
	DefaultProviderTimeout = 120
	DefaultAPIKeyReference = "$OPENAI_API_KEY"
)

type Options struct {
	DataDirectory string   `json:"data_directory,omitempty" jsonschema:"description=Directory for storing the turn ledger and logs (relative to working directory),default=.origami,example=.origami"` // 相对于当前工作目录
	Debug         bool     `json:"debug,omitempty" jsonschema:"description=Enable debug logging,default=false"`
	Timezone      string   `json:"timezone,omitempty" jsonschema:"description=IANA timezone used to group sessions by date when the caller does not send one,example=Asia/Shanghai,example=UTC"`
	DefaultUser   string   `json:"default_user,omitempty" jsonschema:"description=User id used by CLI commands when --user is not given,example=alice"`
	AdminUsers    []string `json:"admin_users,omitempty" jsonschema:"description=User ids allowed to read the admin user list,example=admin"`
}

type ProviderOptions struct {
	APIKey       string `json:"api_key,omitempty" jsonschema:"description=API key for the OpenAI compatible provider,example=$OPENAI_API_KEY"`
	BaseURL      string `json:"base_url,omitempty" jsonschema:"description=Base URL of the provider API,format=uri,example=https://api.openai.com/v1"`
	ChatModel    string `json:"chat_model,omitempty" jsonschema:"description=Model used for text responses,example=gpt-4.1-mini"`
	ImageModel   string `json:"image_model,omitempty" jsonschema:"description=Model used for image generation,example=dall-e-3"`
	ImageSize    string `json:"image_size,omitempty" jsonschema:"description=Size of generated images,enum=256x256,enum=512x512,enum=1024x1024,enum=1792x1024,enum=1024x1792,default=1024x1024"`
	SystemPrompt string `json:"system_prompt,omitempty" jsonschema:"description=Instructions sent with every text request"`
	Timeout      int    `json:"timeout,omitempty" jsonschema:"description=Timeout in seconds for one submission including image generation,default=120,example=60"`
}

type ImageOptions struct {
	Download  bool   `json:"download,omitempty" jsonschema:"description=Download generated images into the data directory instead of keeping provider links,default=false"`
	Directory string `json:"directory,omitempty" jsonschema:"description=Directory for stored images (relative to data_directory),default=images"`
}

type ServerOptions struct {
	Address string `json:"address,omitempty" jsonschema:"description=Listen address of the HTTP API,default=127.0.0.1:8080"`
}

// Config 是合并后的完整配置
type Config struct {
	Schema   string           `json:"$schema,omitempty"`
	Options  *Options         `json:"options,omitempty" jsonschema:"description=General application options"`
	Provider *ProviderOptions `json:"provider,omitempty" jsonschema:"description=AI provider connection"`
	Images   *ImageOptions    `json:"images,omitempty" jsonschema:"description=Generated image storage"`
	Server   *ServerOptions   `json:"server,omitempty" jsonschema:"description=HTTP API server"`

	workingDir    string
	dataConfigDir string
	resolver      VariableResolver
	location      *time.Location
}

func (Config) JSONSchemaExtend(schema *jsonschema.Schema) {
	schema.Title = "Origami configuration"
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// IsConfigured 报告是否有可用的 API 密钥
func (c *Config) IsConfigured() bool {
	return c.Provider != nil && c.Provider.APIKey != ""
}

// IsAdmin 报告 userID 是否在管理员列表中
func (c *Config) IsAdmin(userID string) bool {
	return userID != "" && slices.Contains(c.Options.AdminUsers, userID)
}

// Location 返回默认的显示时区
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// ProviderTimeout 返回一次提交的时限
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.Timeout) * time.Second
}

// ConfigPath 返回 SetConfigField 写入的文件
func (c *Config) ConfigPath() string {
	return c.dataConfigDir
}

func (c *Config) HasConfigField(key string) bool {
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		return false
	}
	return gjson.GetBytes(data, key).Exists()
}

// SetConfigField 把单个键写入全局数据配置文件，不影响项目配置。
func (c *Config) SetConfigField(key string, value any) error {
	return c.editConfig(key, func(data string) (string, error) {
		return sjson.Set(data, key, value)
	})
}

func (c *Config) RemoveConfigField(key string) error {
	return c.editConfig(key, func(data string) (string, error) {
		return sjson.Delete(data, key)
	})
}

func (c *Config) editConfig(key string, edit func(string) (string, error)) error {
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("读取配置文件失败: %w", err)
		}
		data = []byte("{}")
	}
	newValue, err := edit(string(data))
	if err != nil {
		return fmt.Errorf("修改配置字段 %s 失败: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o755); err != nil {
		return fmt.Errorf("创建配置目录 %q 失败: %w", c.dataConfigDir, err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}
	return nil
}
