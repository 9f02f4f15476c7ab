//go:build !windows

package fsext

import (
	"io/fs"
	"syscall"
)

// ownerOf 取文件信息里的 uid，平台不提供时返回 -1
func ownerOf(info fs.FileInfo) int {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return int(stat.Uid)
	}
	return -1
}
