package codegen

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ByLCY/bento/grid"
)

const (
	placeholderSquare = "/placeholder.svg?height=100&width=100"
	placeholderWide   = "/placeholder.svg?height=100&width=200"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "{", "{'{'}", "}", "{'}'}")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

// escapeText 转义 JSX 文本节点。
func escapeText(s string) string { return textEscaper.Replace(s) }

// escapeAttr 转义双引号属性值。
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// content 按模板输出卡片内容。每个模板有自己固定的骨架。
func (g *generator) content(w *writer, c grid.Content) {
	switch c.Template {
	case grid.TemplateTextOnly:
		w.linef("<p>%s</p>", escapeText(c.Text))
	case grid.TemplateHeadingText:
		w.linef(`<h3 className="text-lg font-semibold mb-2">%s</h3>`, escapeText(orDefault(c.Heading, "Heading")))
		w.linef("<p>%s</p>", escapeText(c.Text))
	case grid.TemplateImageTop:
		w.open(`<div className="space-y-4">`)
		image(w, "w-full aspect-video", orDefault(c.ImageURL, placeholderWide), "Card image")
		optionalHeading(w, c.Heading, "text-lg font-semibold")
		w.linef("<p>%s</p>", escapeText(c.Text))
		w.close("</div>")
	case grid.TemplateImageBottom:
		w.open(`<div className="space-y-4">`)
		optionalHeading(w, c.Heading, "text-lg font-semibold")
		w.linef("<p>%s</p>", escapeText(c.Text))
		image(w, "w-full aspect-video", orDefault(c.ImageURL, placeholderWide), "Card image")
		w.close("</div>")
	case grid.TemplateImageSide:
		direction := "flex-row"
		if c.ImagePosition == grid.ImageRight {
			direction = "flex-row-reverse"
		}
		w.openf(`<div className="flex %s gap-4">`, direction)
		image(w, "w-1/3 aspect-square", orDefault(c.ImageURL, placeholderSquare), "Card image")
		w.open(`<div className="flex-1">`)
		optionalHeading(w, c.Heading, "text-lg font-semibold mb-2")
		w.linef("<p>%s</p>", escapeText(c.Text))
		w.close("</div>")
		w.close("</div>")
	case grid.TemplateTwoImages:
		w.open(`<div className="space-y-4">`)
		optionalHeading(w, c.Heading, "text-lg font-semibold")
		w.open(`<div className="grid grid-cols-2 gap-2">`)
		image(w, "aspect-square", orDefault(c.ImageURL, placeholderSquare), "First image")
		image(w, "aspect-square", orDefault(c.ImageURL2, placeholderSquare), "Second image")
		w.close("</div>")
		w.linef("<p>%s</p>", escapeText(c.Text))
		w.close("</div>")
	case grid.TemplateStatCard:
		g.statCard(w, c)
	case grid.TemplatePieChart, grid.TemplateBarChart, grid.TemplateLineChart, grid.TemplateDonutChart:
		g.chart(w, c)
	case grid.TemplateProgressCard:
		g.progressCard(w, c)
	case grid.TemplateCTACard:
		g.button = true
		w.open(`<div className="flex flex-col justify-between h-full space-y-4">`)
		optionalHeading(w, c.Heading, "text-xl font-bold")
		w.linef(`<p className="text-muted-foreground">%s</p>`, escapeText(c.Text))
		w.open(`<Button className="w-full" asChild>`)
		w.linef(`<a href="%s">%s</a>`, escapeAttr(orDefault(c.CTAURL, "#")), escapeText(orDefault(c.CTAText, "Get Started")))
		w.close("</Button>")
		w.close("</div>")
	case grid.TemplateTestimonial:
		g.testimonial(w, c)
	case grid.TemplateFeatureCard:
		w.open(`<div className="flex items-start gap-4">`)
		if comp, ok := IconComponent(c.Icon); ok {
			w.open(`<div className="p-2 bg-primary/10 rounded-md">`)
			w.linef(`<%s className="h-6 w-6 text-primary" />`, g.useIcon(comp))
			w.close("</div>")
		}
		w.open(`<div className="flex-1">`)
		optionalHeading(w, c.Heading, "text-lg font-semibold mb-1")
		w.linef(`<p className="text-sm text-muted-foreground">%s</p>`, escapeText(c.Text))
		w.close("</div>")
		w.close("</div>")
	default:
		w.linef("<p>%s</p>", escapeText(c.Text))
	}
}

func optionalHeading(w *writer, heading, class string) {
	if strings.TrimSpace(heading) == "" {
		return
	}
	w.linef(`<h3 className="%s">%s</h3>`, class, escapeText(heading))
}

func image(w *writer, frame, src, alt string) {
	w.openf(`<div className="%s overflow-hidden rounded-md">`, frame)
	w.linef(`<img src="%s" alt="%s" className="w-full h-full object-cover" />`, escapeAttr(src), alt)
	w.close("</div>")
}

func (g *generator) statCard(w *writer, c grid.Content) {
	stat := c.Stat
	if stat == nil {
		stat = &grid.StatData{}
	}
	w.open(`<div className="space-y-2">`)
	optionalHeading(w, c.Heading, "text-sm font-medium text-muted-foreground")
	w.linef(`<div className="text-3xl font-bold">%s</div>`, escapeText(orDefault(stat.Value, "0")))
	if stat.Trend == "" {
		w.linef(`<p className="text-sm text-muted-foreground">%s</p>`, escapeText(c.Text))
		w.close("</div>")
		return
	}
	var icon, tone string
	switch stat.Trend {
	case grid.TrendUp:
		icon, tone = "ArrowUp", "text-green-500"
	case grid.TrendDown:
		icon, tone = "ArrowDown", "text-red-500"
	default:
		icon, tone = "ArrowRight", "text-muted-foreground"
	}
	w.open(`<div className="flex items-center gap-1">`)
	w.linef(`<%s className="h-4 w-4 %s" />`, g.useIcon(icon), tone)
	w.linef(`<span className="%s text-sm font-medium">%s</span>`, tone, escapeText(orDefault(stat.TrendValue, "0%")))
	w.linef(`<span className="text-muted-foreground text-sm">%s</span>`, escapeText(c.Text))
	w.close("</div>")
	w.close("</div>")
}

func (g *generator) progressCard(w *writer, c grid.Content) {
	g.progress = true
	var label, value string
	if c.Stat != nil {
		label, value = c.Stat.Label, c.Stat.Value
	}
	value = orDefault(value, "50")
	w.open(`<div className="space-y-4">`)
	optionalHeading(w, c.Heading, "text-lg font-semibold")
	w.open(`<div className="space-y-2">`)
	w.open(`<div className="flex justify-between text-sm font-medium">`)
	w.linef("<span>%s</span>", escapeText(orDefault(label, "Progress")))
	w.linef("<span>%s%%</span>", escapeText(value))
	w.close("</div>")
	w.linef("<Progress value={%d} />", leadingInt(value))
	w.close("</div>")
	w.linef(`<p className="text-sm text-muted-foreground">%s</p>`, escapeText(c.Text))
	w.close("</div>")
}

// leadingInt 解析字符串开头的整数部分，没有数字时为 0。
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (unicode.IsDigit(rune(s[end])) || (end == 0 && s[end] == '-')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func (g *generator) testimonial(w *writer, c grid.Content) {
	w.open(`<div className="space-y-4">`)
	w.open(`<div className="relative">`)
	w.linef(`<%s className="absolute -top-2 -left-2 h-6 w-6 text-muted-foreground opacity-30" />`, g.useIcon("Quote"))
	w.linef(`<p className="pl-6 italic">%s</p>`, escapeText(c.Text))
	w.close("</div>")
	w.open(`<div className="flex items-center gap-3">`)
	if strings.TrimSpace(c.ImageURL) != "" {
		g.avatar = true
		w.open("<Avatar>")
		w.linef(`<AvatarImage src="%s" />`, escapeAttr(c.ImageURL))
		w.linef("<AvatarFallback>%s</AvatarFallback>", escapeText(initials(c.Author)))
		w.close("</Avatar>")
	}
	w.open("<div>")
	w.linef(`<p className="font-semibold">%s</p>`, escapeText(orDefault(c.Author, "Anonymous")))
	if strings.TrimSpace(c.Role) != "" {
		w.linef(`<p className="text-sm text-muted-foreground">%s</p>`, escapeText(c.Role))
	}
	w.close("</div>")
	w.close("</div>")
	w.close("</div>")
}

// initials 取作者名的前两个字符，作者为空时为 AB。
func initials(author string) string {
	r := []rune(strings.TrimSpace(author))
	if len(r) == 0 {
		return "AB"
	}
	if len(r) > 2 {
		r = r[:2]
	}
	return string(r)
}
