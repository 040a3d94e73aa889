package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// EstimateTypesetter 按字符显示宽度估算行宽，不依赖字体文件。
// 东亚宽字符按两个单元计算。
type EstimateTypesetter struct{}

// 平均字形宽度与字号之比。
const avgGlyphRatio = 0.55

// LayoutLines implements Typesetter.
func (EstimateTypesetter) LayoutLines(content string, width, fontSize float64, bold bool) ([]TextLine, error) {
	unit := fontSize * avgGlyphRatio
	if bold {
		unit *= 1.08
	}
	measure := func(s string) float64 { return float64(runewidth.StringWidth(s)) * unit }
	return WrapWords(content, width, measure), nil
}

// WrapWords 贪心折行：优先在空白处断开，单词本身超宽时按字符断开。
func WrapWords(content string, width float64, measure func(string) float64) []TextLine {
	var lines []TextLine
	for _, para := range strings.Split(content, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, TextLine{})
			continue
		}
		current := ""
		flush := func() {
			lines = append(lines, TextLine{Content: current, Width: measure(current)})
			current = ""
		}
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if measure(candidate) <= width || width <= 0 {
				current = candidate
				continue
			}
			if current != "" {
				flush()
			}
			for measure(word) > width {
				head := breakRunes(word, width, measure)
				lines = append(lines, TextLine{Content: head, Width: measure(head)})
				word = word[len(head):]
			}
			current = word
		}
		if current != "" {
			flush()
		}
	}
	return lines
}

// breakRunes 返回 word 中能放进 width 的最长前缀，至少一个字符。
func breakRunes(word string, width float64, measure func(string) float64) string {
	end := 0
	for i, r := range word {
		next := i + len(string(r))
		if end > 0 && measure(word[:next]) > width {
			break
		}
		end = next
	}
	return word[:end]
}

// clampLines 只保留能放进 height 的行，被截断时在末行追加省略号。
func clampLines(lines []TextLine, lineHeight, height float64) []TextLine {
	if lineHeight <= 0 {
		return lines
	}
	n := int(height / lineHeight)
	if n <= 0 {
		return nil
	}
	if len(lines) <= n {
		return lines
	}
	out := append([]TextLine(nil), lines[:n]...)
	last := &out[n-1]
	last.Content = strings.TrimRight(last.Content, " ") + "…"
	return out
}
