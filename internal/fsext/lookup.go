// Package fsext 提供沿目录树向上查找配置和数据目录的工具。
package fsext

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/SandeepBatta/OrigamiAI/internal/home"
)

// Lookup 从 dir 开始逐级向上，收集存在的 targets，由近及远排列。
// 与 dir 所有者不同的条目会被跳过，不跨越所有权边界。
func Lookup(dir string, targets ...string) ([]string, error) {
	if len(targets) == 0 {
		return nil, nil
	}
	owner, err := dirOwner(dir)
	if err != nil {
		return nil, fmt.Errorf("无法获取所有权: %w", err)
	}
	start, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("无法转换为绝对路径: %w", err)
	}

	var found []string
	for cwd := range ancestors(start) {
		for _, target := range targets {
			fpath := filepath.Join(cwd, target)
			err := ownedBy(fpath, owner)
			if errors.Is(err, os.ErrNotExist) || errors.Is(err, os.ErrPermission) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("检查 %s 时出错: %w", fpath, err)
			}
			found = append(found, fpath)
		}
	}
	return found, nil
}

// LookupClosest 返回离 dir 最近的 target。在主目录处停止，
// 避免把 ~/.origami 当作项目数据目录。
func LookupClosest(dir, target string) (string, bool) {
	owner, err := dirOwner(dir)
	if err != nil {
		return "", false
	}
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for cwd := range ancestors(start) {
		if cwd == home.Dir() {
			return "", false
		}
		fpath := filepath.Join(cwd, target)
		if ownedBy(fpath, owner) == nil {
			return fpath, true
		}
	}
	return "", false
}

// ancestors 依次产生 dir 及其各级父目录，直到文件系统根目录
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

// dirOwner 返回 dir 所有者的 uid，无法比较时为 -1
func dirOwner(dir string) (int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return 0, err
	}
	return ownerOf(info), nil
}

// ownedBy 检查路径存在且属于 owner。任一方的所有者未知（-1）时只检查存在。
func ownedBy(fspath string, owner int) error {
	info, err := os.Stat(fspath)
	if err != nil {
		return err
	}
	if fowner := ownerOf(info); owner != -1 && fowner != -1 && fowner != owner {
		return os.ErrPermission
	}
	return nil
}
