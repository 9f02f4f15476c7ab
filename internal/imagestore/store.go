// Package imagestore 把生成的图片保存到数据目录，使图片记录不依赖提供方的临时链接。
package imagestore

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/log"
	"github.com/go-resty/resty/v2"
	"github.com/zeebo/xxh3"
)

// DirName 是数据目录下存放图片的子目录
const DirName = "images"

var ErrUnsupportedLocator = errors.New("不支持的图片地址")

type Store struct {
	dir      string
	download bool
	client   *resty.Client
}

type Option func(*Store)

// WithDownload 控制是否把 http(s) 链接下载到本地。默认只解码 data URL。
func WithDownload(enabled bool) Option {
	return func(s *Store) {
		s.download = enabled
	}
}

// WithTimeout 设置下载超时
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.client.SetTimeout(d)
	}
}

func New(dir string, opts ...Option) *Store {
	client := resty.New().
		SetTransport(&log.HTTPRoundTripLogger{Transport: http.DefaultTransport}).
		SetTimeout(time.Minute)
	s := &Store{dir: dir, client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir 返回图片目录
func (s *Store) Dir() string {
	return s.dir
}

// Persist 保存 locator 指向的图片并返回本地路径。
// 本地路径原样返回；未启用下载时 http(s) 链接也原样返回。
func (s *Store) Persist(ctx context.Context, locator string) (string, error) {
	switch {
	case strings.HasPrefix(locator, "data:"):
		mime, data, err := decodeDataURL(locator)
		if err != nil {
			return "", err
		}
		return s.write(data, mime)
	case strings.HasPrefix(locator, "http://"), strings.HasPrefix(locator, "https://"):
		if !s.download {
			return locator, nil
		}
		return s.fetch(ctx, locator)
	case locator == "":
		return "", ErrUnsupportedLocator
	default:
		return locator, nil
	}
}

func (s *Store) fetch(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("下载图片: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("下载图片: HTTP %d", resp.StatusCode())
	}
	body := resp.Body()
	if len(body) == 0 {
		return "", errors.New("下载图片: 响应为空")
	}
	mime := resp.Header().Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(body)
	}
	slog.Debug("已下载图片", "url", url, "bytes", len(body))
	return s.write(body, mime)
}

// write 按内容哈希命名文件，相同的图片只保存一份。先写临时文件再改名，
// 中断的写入不会留下同名的残缺文件。
func (s *Store) write(data []byte, mime string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("创建图片目录: %w", err)
	}
	sum := xxh3.Hash128(data).Bytes()
	path := filepath.Join(s.dir, hex.EncodeToString(sum[:])+extension(mime))
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() && fi.Size() == int64(len(data)) {
		return path, nil
	}

	tmp, err := os.CreateTemp(s.dir, ".image-*.tmp")
	if err != nil {
		return "", fmt.Errorf("创建临时文件: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("写入图片: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("写入图片: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("写入图片: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("保存图片: %w", err)
	}
	return path, nil
}

// decodeDataURL 只接受 base64 编码的 data URL
func decodeDataURL(u string) (string, []byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("%w: 不是 base64 data URL", ErrUnsupportedLocator)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("解码图片数据: %w", err)
	}
	return strings.TrimSuffix(meta, ";base64"), data, nil
}

func extension(mime string) string {
	mime, _, _ = strings.Cut(mime, ";")
	switch strings.TrimSpace(mime) {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}
