// Package codegen 把网格配置转换为 React/TSX 组件代码与配套样式表。
// 输出只取决于配置本身，同一配置总是得到逐字节相同的文本。
package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ByLCY/bento/grid"
)

// Output 是一次生成的两份产物。
type Output struct {
	Markup     string
	Stylesheet string
}

// Combined 返回复制到剪贴板的拼接文本：组件代码、空行、样式表。
func (o Output) Combined() string {
	return o.Markup + "\n\n" + o.Stylesheet
}

// Generate 生成组件代码与样式表。cfg 为 nil 时按空网格处理。
func Generate(cfg *grid.Config) Output {
	if cfg == nil {
		cfg = &grid.Config{Columns: grid.Uniform(1), Gap: grid.Uniform(0)}
	}
	g := &generator{cfg: cfg, icons: map[string]bool{}}

	body := &writer{indent: 3}
	body.openf(`<div className="%s">`, GridClass(cfg.Columns, cfg.Gap))
	for _, card := range cfg.Sorted() {
		g.card(body, card)
	}
	body.close("</div>")

	var out writer
	g.imports(&out)
	out.blank()
	out.line("export function BentoGrid() {")
	out.line("  return (")
	out.raw(body.String())
	out.line("  );")
	out.line("}")

	return Output{Markup: out.String(), Stylesheet: stylesheet}
}

// GridClass 返回网格容器的 class。md、lg 档只在取值与前一档不同时输出。
func GridClass(columns, gap grid.Responsive) string {
	classes := []string{"grid",
		"grid-cols-" + strconv.Itoa(columns.SM),
		"gap-" + strconv.Itoa(gap.SM),
	}
	prev := grid.SM
	for _, bp := range grid.Breakpoints[1:] {
		if v := columns.Get(bp); v != columns.Get(prev) {
			classes = append(classes, fmt.Sprintf("%s:grid-cols-%d", bp, v))
		}
		if v := gap.Get(bp); v != gap.Get(prev) {
			classes = append(classes, fmt.Sprintf("%s:gap-%d", bp, v))
		}
		prev = bp
	}
	return strings.Join(classes, " ")
}

// SpanClass 返回卡片的列跨度与行跨度 class，规则同 GridClass。
func SpanClass(col, row grid.Responsive) string {
	return strings.Join(append(responsiveClasses("col-span", col), responsiveClasses("row-span", row)...), " ")
}

func responsiveClasses(name string, r grid.Responsive) []string {
	out := []string{name + "-" + strconv.Itoa(r.SM)}
	prev := r.SM
	for _, bp := range grid.Breakpoints[1:] {
		v := r.Get(bp)
		if v != prev {
			out = append(out, fmt.Sprintf("%s:%s-%d", bp, name, v))
		}
		prev = v
	}
	return out
}

// generator 在渲染卡片的同时记录需要导入的组件。
type generator struct {
	cfg      *grid.Config
	charts   bool
	progress bool
	button   bool
	avatar   bool
	icons    map[string]bool
}

func (g *generator) library() bool { return g.cfg.ExportMode != grid.ExportPlain }

func (g *generator) imports(w *writer) {
	w.line(`import React from "react";`)
	w.line(`import { Card, CardContent } from "@/components/ui/card";`)
	if g.progress {
		w.line(`import { Progress } from "@/components/ui/progress";`)
	}
	if g.button {
		w.line(`import { Button } from "@/components/ui/button";`)
	}
	if g.avatar {
		w.line(`import { Avatar, AvatarFallback, AvatarImage } from "@/components/ui/avatar";`)
	}
	if len(g.icons) > 0 {
		names := make([]string, 0, len(g.icons))
		for name := range g.icons {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			names[i] = iconImport(name)
		}
		w.linef(`import { %s } from "lucide-react";`, strings.Join(names, ", "))
	}
	if g.charts && g.library() {
		w.line(`import { BarChart, Bar, PieChart, Pie, LineChart, Line, ResponsiveContainer, XAxis, YAxis, Tooltip, Legend, Cell } from "recharts";`)
	}
}

func (g *generator) useIcon(comp string) string {
	g.icons[comp] = true
	return iconLocal(comp)
}

func (g *generator) card(w *writer, card grid.Card) {
	w.openf(`<div className="%s">`, SpanClass(card.ColSpan, card.RowSpan))
	attrs := `className="` + cardClassName(card.Style) + `"`
	if style := cardInlineStyle(card.Style).JSX(); style != "" {
		attrs += " style=" + style
	}
	w.openf("<Card %s>", attrs)
	w.open(`<CardContent className="p-4">`)
	g.content(w, card.Content)
	w.close("</CardContent>")
	w.close("</Card>")
	w.close("</div>")
}

// cardClassName 是生成代码中 Card 元素的 class。
// 启用毛玻璃时背景色由内联样式提供，不再输出背景 class。
func cardClassName(style grid.CardStyle) string {
	var classes []string
	if style.EqualHeight {
		classes = append(classes, "h-full")
	}
	if style.Border {
		classes = append(classes, "border")
		if style.BorderWidth > 1 {
			classes = append(classes, "border-"+strconv.Itoa(style.BorderWidth))
		}
	}
	classes = appendNonEmpty(classes, RadiusClass(style.Radius), ShadowClass(style.Shadow))
	if style.Animation != grid.AnimationNone && AnimationName(style.Animation) != "" {
		classes = append(classes, "bento-"+string(style.Animation))
	}
	if style.Hover != grid.HoverNone && style.Hover != "" {
		classes = append(classes, "bento-hover-"+string(style.Hover))
	}
	if !style.Glass {
		classes = appendNonEmpty(classes, ColorClass("bg", style.Background))
	}
	classes = appendNonEmpty(classes, ColorClass("text", style.TextColor))
	return escapeAttr(strings.Join(classes, " "))
}

// cardInlineStyle 收集毛玻璃、动画时长与悬停过渡时长的内联样式。
func cardInlineStyle(style grid.CardStyle) Style {
	out := GlassStyle(style.Glass, style.GlassOpacity)
	if AnimationName(style.Animation) != "" {
		out = append(out,
			Decl{"animationDuration", seconds(style.AnimationDuration)},
			Decl{"animationDelay", seconds(style.AnimationDelay)},
		)
	}
	if style.Hover != grid.HoverNone && style.Hover != "" {
		out = append(out, Decl{"transitionDuration", strconv.Itoa(millis(style.HoverDuration)) + "ms"})
	}
	return out
}

// writer 是带缩进的行缓冲，每级缩进两个空格。
type writer struct {
	b      strings.Builder
	indent int
}

// line 原样写出一行；需要格式化时用 linef。
func (w *writer) line(s string) {
	w.b.WriteString(strings.Repeat("  ", w.indent))
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

func (w *writer) open(s string) {
	w.line(s)
	w.indent++
}

func (w *writer) openf(format string, args ...any) {
	w.open(fmt.Sprintf(format, args...))
}

func (w *writer) close(s string) {
	w.indent--
	w.line(s)
}

func (w *writer) closef(format string, args ...any) {
	w.close(fmt.Sprintf(format, args...))
}

func (w *writer) blank() { w.b.WriteByte('\n') }

func (w *writer) raw(s string) { w.b.WriteString(s) }

func (w *writer) String() string { return w.b.String() }
