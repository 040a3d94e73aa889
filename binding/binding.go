// Package binding 把布局文件中的 ${path} 占位符替换为数据文件中的值。
package binding

import (
	"fmt"
	"strconv"
	"strings"
)

// Interpolate 将 text 中的 ${path.to.value} 替换为 data 中对应的值。
// 支持 ${path|默认值} 形式：路径不存在时使用默认值。
// 既无值又无默认值时保留原占位符，便于在预览中发现拼写错误。
func Interpolate(text string, data any) string {
	if !strings.Contains(text, "${") {
		return text
	}
	var b strings.Builder
	rest := text
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += start
		b.WriteString(rest[:start])
		b.WriteString(expand(rest[start:end+1], rest[start+2:end], data))
		rest = rest[end+1:]
	}
	return b.String()
}

func expand(placeholder, expr string, data any) string {
	path, fallback, hasFallback := strings.Cut(expr, "|")
	path = strings.TrimSpace(path)
	if path != "" {
		if val, ok := Resolve(data, path); ok && val != nil {
			return format(val)
		}
	}
	if hasFallback {
		return strings.TrimSpace(fallback)
	}
	return placeholder
}

// Resolve 按 a.b[0].c 形式的路径在 data 中查找值。
// data 通常来自 YAML/JSON 解码，即 map[string]any 与 []any 的嵌套。
func Resolve(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			if current, ok = field(current, name); !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			if current, ok = element(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// splitSegment 把 items[1][2] 拆成 "items" 与 [1 2]。
func splitSegment(segment string) (string, []int, bool) {
	open := strings.IndexByte(segment, '[')
	if open < 0 {
		return segment, nil, segment != ""
	}
	name := segment[:open]
	var indexes []int
	rest := segment[open:]
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		stop := strings.IndexByte(rest, ']')
		if stop < 0 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(rest[1:stop]))
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[stop+1:]
	}
	return name, indexes, true
}

func field(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[any]any:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func element(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}

func format(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
