package grid

// Template 选择卡片内容的变体，共 15 种。
type Template string

const (
	TemplateTextOnly     Template = "text-only"
	TemplateHeadingText  Template = "heading-text"
	TemplateImageTop     Template = "image-top"
	TemplateImageBottom  Template = "image-bottom"
	TemplateImageSide    Template = "image-side"
	TemplateTwoImages    Template = "two-images"
	TemplateStatCard     Template = "stat-card"
	TemplatePieChart     Template = "pie-chart"
	TemplateBarChart     Template = "bar-chart"
	TemplateLineChart    Template = "line-chart"
	TemplateDonutChart   Template = "donut-chart"
	TemplateProgressCard Template = "progress-card"
	TemplateCTACard      Template = "cta-card"
	TemplateTestimonial  Template = "testimonial"
	TemplateFeatureCard  Template = "feature-card"
)

// Templates lists all content templates in editor order.
var Templates = []Template{
	TemplateTextOnly,
	TemplateHeadingText,
	TemplateImageTop,
	TemplateImageBottom,
	TemplateImageSide,
	TemplateTwoImages,
	TemplateStatCard,
	TemplatePieChart,
	TemplateBarChart,
	TemplateLineChart,
	TemplateDonutChart,
	TemplateProgressCard,
	TemplateCTACard,
	TemplateTestimonial,
	TemplateFeatureCard,
}

func ParseTemplate(s string) (Template, error) { return parseEnum("template", s, Templates) }

// IsChart reports whether t renders chart data.
func (t Template) IsChart() bool {
	switch t {
	case TemplatePieChart, TemplateBarChart, TemplateLineChart, TemplateDonutChart:
		return true
	}
	return false
}

// ImagePosition 用于 image-side 模板，只有 right 会改变排列方向。
type ImagePosition string

const (
	ImageLeft   ImagePosition = "left"
	ImageRight  ImagePosition = "right"
	ImageTop    ImagePosition = "top"
	ImageBottom ImagePosition = "bottom"
)

var ImagePositions = []ImagePosition{ImageLeft, ImageRight, ImageTop, ImageBottom}

func ParseImagePosition(s string) (ImagePosition, error) {
	return parseEnum("image-position", s, ImagePositions)
}

// Trend 是统计卡片的趋势方向，空字符串表示未设置。
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

var Trends = []Trend{TrendUp, TrendDown, TrendNeutral}

func ParseTrend(s string) (Trend, error) { return parseEnum("trend", s, Trends) }

// StatData 用于 stat-card 与 progress-card。
type StatData struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Trend       Trend  `json:"trend,omitempty"`
	TrendValue  string `json:"trendValue,omitempty"`
}

// ChartData 以平行数组保存图表数据。Values 应与 Labels 等长；
// 缺失的数值按 0、缺失的颜色按调色板循环补齐，不视为错误。
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// Palette 是缺省配色，按下标取模循环使用。
var Palette = []string{"#0088FE", "#00C49F", "#FFBB28", "#FF8042", "#8884d8"}

// ValueAt returns Values[i], or 0 when the entry is missing.
func (d *ChartData) ValueAt(i int) float64 {
	if d == nil || i < 0 || i >= len(d.Values) {
		return 0
	}
	return d.Values[i]
}

// ColorAt returns Colors[i] when present and non-empty, otherwise the
// palette entry for i.
func (d *ChartData) ColorAt(i int) string {
	if d != nil && i >= 0 && i < len(d.Colors) && d.Colors[i] != "" {
		return d.Colors[i]
	}
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// SampleChart 返回模板 t 在未提供数据时使用的固定样例数据。
func SampleChart(t Template) *ChartData {
	switch t {
	case TemplatePieChart, TemplateDonutChart:
		return &ChartData{
			Labels: []string{"Product A", "Product B", "Product C"},
			Values: []float64{400, 300, 300},
		}
	default:
		return &ChartData{
			Labels: []string{"Jan", "Feb", "Mar", "Apr", "May"},
			Values: []float64{400, 300, 500, 200, 350},
		}
	}
}

// ChartOrSample returns the chart data, or the sample for the template when
// no labels were provided.
func (c Content) ChartOrSample() *ChartData {
	if c.Chart != nil && len(c.Chart.Labels) > 0 {
		return c.Chart
	}
	return SampleChart(c.Template)
}

// Content 是卡片内容。Text 总是存在；其余字段只在对应模板下被读取，
// 但切换模板时不会被清除。
type Content struct {
	Template      Template      `json:"template"`
	Text          string        `json:"text"`
	Heading       string        `json:"heading,omitempty"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	ImageURL2     string        `json:"imageUrl2,omitempty"`
	ImagePosition ImagePosition `json:"imagePosition,omitempty"`
	Stat          *StatData     `json:"statData,omitempty"`
	Chart         *ChartData    `json:"chartData,omitempty"`
	CTAText       string        `json:"ctaText,omitempty"`
	CTAURL        string        `json:"ctaUrl,omitempty"`
	Author        string        `json:"author,omitempty"`
	Role          string        `json:"role,omitempty"`
	Icon          string        `json:"icon,omitempty"`
}

func (c Content) clone() Content {
	out := c
	if c.Stat != nil {
		stat := *c.Stat
		out.Stat = &stat
	}
	if c.Chart != nil {
		out.Chart = &ChartData{
			Labels: append([]string(nil), c.Chart.Labels...),
			Values: append([]float64(nil), c.Chart.Values...),
			Colors: append([]string(nil), c.Chart.Colors...),
		}
	}
	return out
}
