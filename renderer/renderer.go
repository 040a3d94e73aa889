package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/bento/layout"
)

// Renderer 将放置结果输出为最终文件，例如 PDF、SVG 或 PNG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Format 是预览输出格式。
type Format string

const (
	PDF Format = "pdf"
	SVG Format = "svg"
	PNG Format = "png"
)

// Formats lists the supported output formats.
var Formats = []Format{PDF, SVG, PNG}

// ParseFormat 解析 pdf/svg/png（大小写不敏感）。
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("不支持的输出格式：%s（可选 pdf、svg、png）", s)
}

// FormatFromPath 根据扩展名推断格式，无法识别时返回 PDF。
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return PDF
}
