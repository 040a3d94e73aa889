package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/ByLCY/bento/codegen"
)

// Markdown 把生成结果包装成两段带语言标记的代码块。
func Markdown(out codegen.Output) string {
	var b strings.Builder
	b.WriteString("```tsx\n")
	b.WriteString(out.Markup)
	b.WriteString("\n```\n\n```css\n")
	b.WriteString(out.Stylesheet)
	b.WriteString("\n```\n")
	return b.String()
}

// Highlight 用 glamour 为终端渲染带语法高亮的生成结果。
func Highlight(out codegen.Output, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("创建高亮渲染器失败: %w", err)
	}
	rendered, err := r.Render(Markdown(out))
	if err != nil {
		return "", fmt.Errorf("渲染代码失败: %w", err)
	}
	return rendered, nil
}
