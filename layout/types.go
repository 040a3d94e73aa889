package layout

import "github.com/ByLCY/bento/grid"

// 该文件定义网格放置结果，供预览渲染与调试 JSON 共用。
// 所有坐标与尺寸以 CSS 像素为单位，原点在容器左上角。

// Result 是某一断点下整个网格的放置结果。
type Result struct {
	Breakpoint  grid.Breakpoint `json:"breakpoint"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Padding     float64         `json:"padding"`
	Columns     int             `json:"columns"`
	Rows        int             `json:"rows"` // 实际占用的行数（隐式行会增长）
	Gap         float64         `json:"gap"`
	ColumnWidth float64         `json:"columnWidth"`
	RowHeight   float64         `json:"rowHeight"`
	Background  Color           `json:"background"`
	Cards       []CardBox       `json:"cards"`
	Debug       *PlacementDebug `json:"debug,omitempty"`
}

// CardBox 是一张卡片放置后的几何与外观。
type CardBox struct {
	ID       grid.CardID   `json:"id"`
	Name     string        `json:"name"`
	Template grid.Template `json:"template"`
	Order    int           `json:"order"`

	// 网格轨道坐标（从 0 开始）与夹取后的跨度。
	Column  int `json:"column"`
	Row     int `json:"row"`
	ColSpan int `json:"colSpan"`
	RowSpan int `json:"rowSpan"`

	Rect         Rect    `json:"rect"`
	Radius       float64 `json:"radius"`
	ShadowOffset float64 `json:"shadowOffset"`
	BorderWidth  float64 `json:"borderWidth"`
	BorderColor  Color   `json:"borderColor"`
	Fill         Color   `json:"fill"`
	FillOpacity  float64 `json:"fillOpacity"` // 1 为不透明，玻璃效果时小于 1
	TextColor    Color   `json:"textColor"`

	Title TextBox   `json:"title"`
	Label TextBox   `json:"label"`
	Body  *TextBox  `json:"body,omitempty"`
	Chart *ChartBox `json:"chart,omitempty"`
}

// Rect 是轴对齐矩形。
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right 返回矩形右边界。
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom 返回矩形下边界。
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// 浮点比较容差。
const epsilon = 1e-6

// Overlaps reports whether r and o share any interior area. Touching edges
// do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right()-epsilon && o.X < r.Right()-epsilon &&
		r.Y < o.Bottom()-epsilon && o.Y < r.Bottom()-epsilon
}

// Inset 返回四边各收缩 d 后的矩形，宽高不小于 0。
func (r Rect) Inset(d float64) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	Content    string     `json:"content"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	FontSize   float64    `json:"fontSize"`
	LineHeight float64    `json:"lineHeight"`
	Bold       bool       `json:"bold,omitempty"`
	Color      Color      `json:"color"`
	Lines      []TextLine `json:"lines"`
}

// TextLine 表示排版后的一行文本内容及其宽度。
type TextLine struct {
	Content string  `json:"content"`
	Width   float64 `json:"width"`
}

// ChartBox 描述卡片内迷你图表的绘制区域与数据。
type ChartBox struct {
	Kind   grid.Template `json:"kind"`
	Rect   Rect          `json:"rect"`
	Labels []string      `json:"labels"`
	Values []float64     `json:"values"`
	Colors []Color       `json:"colors"`
}

// PlacementDebug 记录网格占用情况，每行一个字符串，'#' 为已占用。
type PlacementDebug struct {
	Occupancy []string `json:"occupancy"`
}
