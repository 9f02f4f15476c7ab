// Package update 通过 GitHub releases 检查是否有新版本。
package update

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/log"
	"github.com/go-resty/resty/v2"
)

const (
	githubAPI  = "https://api.github.com"
	repository = "SandeepBatta/OrigamiAI"
	userAgent  = "origami/1.0"
)

// Default 查询公开的 GitHub API
var Default Client = NewGitHub(githubAPI)

// Info 是当前版本和最新发布版本
type Info struct {
	Current string
	Latest  string
	URL     string
}

// 匹配 go install 生成的伪版本，例如 v0.0.0-0.20251231235959-06c807842604
var goInstallRegexp = regexp.MustCompile(`^v?\d+\.\d+\.\d+-\d+\.\d{14}-[0-9a-f]{12}$`)

// IsDevelopment 报告当前是否为本地构建。
func (i Info) IsDevelopment() bool {
	return i.Current == "devel" || i.Current == "unknown" || strings.Contains(i.Current, "dirty") || goInstallRegexp.MatchString(i.Current)
}

// Available 报告是否应提示升级。稳定版不会被提示升级到预发布版，
// 预发布版在同一版本正式发布后会被提示。
func (i Info) Available() bool {
	cpr := strings.Contains(i.Current, "-")
	lpr := strings.Contains(i.Latest, "-")
	switch {
	case cpr && !lpr:
		return true
	case lpr && !cpr:
		return false
	}
	return i.Current != i.Latest
}

// Check 获取最新发布版本并与 current 比较。
func Check(ctx context.Context, current string, client Client) (Info, error) {
	info := Info{Current: current, Latest: current}
	release, err := client.Latest(ctx)
	if err != nil {
		return info, fmt.Errorf("获取最新版本失败: %w", err)
	}
	info.Latest = strings.TrimPrefix(release.TagName, "v")
	info.Current = strings.TrimPrefix(info.Current, "v")
	info.URL = release.HTMLURL
	return info, nil
}

// Release 是 GitHub release 接口返回中用到的字段
type Release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type Client interface {
	Latest(ctx context.Context) (*Release, error)
}

type github struct {
	client *resty.Client
}

// NewGitHub 创建查询 baseURL 上 GitHub API 的客户端。
func NewGitHub(baseURL string) Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/vnd.github.v3+json").
		SetTransport(&log.HTTPRoundTripLogger{Transport: http.DefaultTransport})
	return &github{client: client}
}

func (c *github) Latest(ctx context.Context) (*Release, error) {
	var release Release
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&release).
		Get("/repos/" + repository + "/releases/latest")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("GitHub API 返回状态码 %d: %s", resp.StatusCode(), resp.String())
	}
	return &release, nil
}
