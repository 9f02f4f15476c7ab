package db

import (
	"fmt"
	"net/url"
)

type pragma struct {
	name  string
	value string
}

// 账本连接的参数，两种驱动共用：WAL 让 HTTP 读请求不阻塞追加，
// busy_timeout 让并发写入者排队而不是立刻报 SQLITE_BUSY。
var pragmas = []pragma{
	{"journal_mode", "WAL"},
	{"page_size", "4096"},
	{"cache_size", "-8000"},
	{"synchronous", "NORMAL"},
	{"busy_timeout", "5000"},
}

// stmt 渲染为连接建立后执行的语句
func (p pragma) stmt() string {
	return fmt.Sprintf("PRAGMA %s = %s;", p.name, p.value)
}

// fileDSN 把参数编码进 file: URI，格式为 _pragma=name(value)
func fileDSN(path string) string {
	params := url.Values{}
	for _, p := range pragmas {
		params.Add("_pragma", p.name+"("+p.value+")")
	}
	return (&url.URL{Scheme: "file", Opaque: path, RawQuery: params.Encode()}).String()
}
