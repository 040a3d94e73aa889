package ui

import (
	"strings"
	"testing"

	"github.com/ByLCY/bento/codegen"
)

func TestMarkdownFences(t *testing.T) {
	md := Markdown(codegen.Output{Markup: "<div />", Stylesheet: ".a {}"})
	want := "```tsx\n<div />\n```\n\n```css\n.a {}\n```\n"
	if md != want {
		t.Fatalf("Markdown 输出不符:\n%s", md)
	}
}

func TestHighlight(t *testing.T) {
	out := codegen.Output{Markup: "<div />", Stylesheet: ".a {}"}
	rendered, err := Highlight(out, 0)
	if err != nil {
		t.Fatalf("高亮失败: %v", err)
	}
	if strings.TrimSpace(rendered) == "" {
		t.Fatalf("高亮结果不应为空")
	}
}
