package codegen

import (
	"strconv"
	"strings"

	"github.com/ByLCY/bento/grid"
)

// chartTitles 用于纯文本模式下的占位块标题。
var chartTitles = map[grid.Template]string{
	grid.TemplateBarChart:   "Bar chart",
	grid.TemplateLineChart:  "Line chart",
	grid.TemplatePieChart:   "Pie chart",
	grid.TemplateDonutChart: "Donut chart",
}

// chart 输出图表卡片。数据缺失时使用固定样例，颜色按调色板循环。
func (g *generator) chart(w *writer, c grid.Content) {
	g.charts = true
	data := c.ChartOrSample()

	w.open(`<div className="space-y-4 h-full flex flex-col">`)
	optionalHeading(w, c.Heading, "text-lg font-semibold text-center")
	if g.library() {
		libraryChart(w, c.Template, data)
	} else {
		plainChart(w, c.Template, data)
	}
	if strings.TrimSpace(c.Text) != "" {
		w.linef(`<p className="text-center text-sm text-muted-foreground mt-2">%s</p>`, escapeText(c.Text))
	}
	w.close("</div>")
}

func libraryChart(w *writer, t grid.Template, data *grid.ChartData) {
	w.open(`<div className="flex-1 min-h-[200px]">`)
	w.open(`<ResponsiveContainer width="100%" height="100%">`)
	switch t {
	case grid.TemplateBarChart:
		w.open("<BarChart data={[")
		dataPoints(w, data)
		w.close("]}>")
		w.indent++
		w.line(`<XAxis dataKey="name" />`)
		w.line("<YAxis />")
		w.line("<Tooltip />")
		w.open(`<Bar dataKey="value" radius={8}>`)
		cells(w, data)
		w.close("</Bar>")
		w.close("</BarChart>")
	case grid.TemplateLineChart:
		w.open("<LineChart data={[")
		dataPoints(w, data)
		w.close("]}>")
		w.indent++
		w.line(`<XAxis dataKey="name" />`)
		w.line("<YAxis />")
		w.line("<Tooltip />")
		w.linef(`<Line type="monotone" dataKey="value" stroke=%s strokeWidth={2} />`, jsString(data.ColorAt(0)))
		w.close("</LineChart>")
	default:
		w.open("<PieChart>")
		attrs := `dataKey="value" nameKey="name" label`
		if t == grid.TemplateDonutChart {
			attrs = `dataKey="value" nameKey="name" innerRadius="60%" outerRadius="80%" paddingAngle={2}`
		}
		w.open("<Pie data={[")
		dataPoints(w, data)
		w.closef("]} %s>", attrs)
		w.indent++
		cells(w, data)
		w.close("</Pie>")
		w.line("<Tooltip />")
		w.line("<Legend />")
		w.close("</PieChart>")
	}
	w.close("</ResponsiveContainer>")
	w.close("</div>")
}

func dataPoints(w *writer, data *grid.ChartData) {
	for i, label := range data.Labels {
		w.linef("{ name: %s, value: %s, fill: %s },", jsString(label), formatFloat(data.ValueAt(i)), jsString(data.ColorAt(i)))
	}
}

func cells(w *writer, data *grid.ChartData) {
	for i := range data.Labels {
		w.linef(`<Cell key="cell-%d" fill=%s />`, i, jsString(data.ColorAt(i)))
	}
}

// plainChart 输出不依赖图表库的占位块，只列出标签。
func plainChart(w *writer, t grid.Template, data *grid.ChartData) {
	w.open(`<div className="flex-1 min-h-[200px] rounded-md border border-dashed p-4 text-sm text-muted-foreground">`)
	w.linef(`<p className="font-medium">%s</p>`, chartTitles[t])
	w.open(`<ul className="mt-2 space-y-1">`)
	for _, label := range data.Labels {
		w.linef("<li>%s</li>", escapeText(label))
	}
	w.close("</ul>")
	w.close("</div>")
}

// jsString 生成双引号 JS 字符串字面量。
func jsString(s string) string {
	return strconv.Quote(s)
}
