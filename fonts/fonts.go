// Package fonts 提供预览渲染使用的内置字体（Go 字体家族）。
package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	Regular = "regular"
	Bold    = "bold"
	Mono    = "mono"
)

var builtin = map[string][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
	Mono:    gomono.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "builtin:bold" 或直接 "bold"。
func Load(name string) ([]byte, error) {
	key := strings.ToLower(strings.TrimPrefix(name, "builtin:"))
	data, ok := builtin[key]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 可选 %s", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回全部内置字体名（已排序）。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
