package layout

import (
	"fmt"
	"strings"

	"github.com/ByLCY/bento/grid"
)

// 字号（px）。
const (
	titleFontSize = 15.0
	labelFontSize = 10.0
	bodyFontSize  = 12.0
	lineFactor    = 1.4
)

var shadowOffsets = map[grid.Shadow]float64{
	grid.ShadowNone: 0,
	grid.ShadowSM:   1,
	grid.ShadowMD:   2,
	grid.ShadowLG:   4,
	grid.ShadowXL:   6,
}

var radii = map[grid.Radius]float64{
	grid.RadiusNone: 0,
	grid.RadiusSM:   2,
	grid.RadiusMD:   6,
	grid.RadiusLG:   8,
	grid.RadiusXL:   12,
	grid.RadiusFull: 9999,
}

// Place 计算 cfg 在某一断点下的网格放置，规则与 CSS grid 的稀疏自动放置一致：
// 卡片按 order 依次放置，游标只前进不回退；跨度被夹取到列数以内；
// 行数不足时隐式增长。
func Place(cfg *grid.Config, opts Options) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置为空")
	}
	opts = opts.withDefaults()
	if !opts.Breakpoint.Valid() {
		return nil, fmt.Errorf("未知断点：%s", opts.Breakpoint)
	}

	cols := cfg.Columns.Get(opts.Breakpoint)
	if cols < 1 {
		cols = 1
	}
	gap := float64(cfg.Gap.Get(opts.Breakpoint)) * GapUnit
	inner := opts.Width - 2*ContainerPadding
	colWidth := (inner - gap*float64(cols-1)) / float64(cols)
	if colWidth <= 0 {
		return nil, fmt.Errorf("容器宽度 %.0fpx 放不下 %d 列（间距 %.0fpx）", opts.Width, cols, gap)
	}

	res := &Result{
		Breakpoint:  opts.Breakpoint,
		Width:       opts.Width,
		Padding:     ContainerPadding,
		Columns:     cols,
		Gap:         gap,
		ColumnWidth: colWidth,
		RowHeight:   opts.RowHeight,
		Background:  canvasColor,
	}

	occ := &occupancy{cols: cols}
	cursorRow, cursorCol := 0, 0
	for _, card := range cfg.Sorted() {
		cs := clampInt(card.ColSpan.Get(opts.Breakpoint), 1, cols)
		rs := card.RowSpan.Get(opts.Breakpoint)
		if rs < 1 {
			rs = 1
		}
		row, col := occ.find(cursorRow, cursorCol, cs, rs)
		occ.mark(row, col, cs, rs)
		cursorRow, cursorCol = row, col+cs

		rect := Rect{
			X:      ContainerPadding + float64(col)*(colWidth+gap),
			Y:      ContainerPadding + float64(row)*(opts.RowHeight+gap),
			Width:  float64(cs)*colWidth + float64(cs-1)*gap,
			Height: float64(rs)*opts.RowHeight + float64(rs-1)*gap,
		}
		box, err := cardBox(card, rect, opts.Typesetter)
		if err != nil {
			return nil, fmt.Errorf("卡片 %d 排版失败: %w", card.ID, err)
		}
		box.Column, box.Row, box.ColSpan, box.RowSpan = col, row, cs, rs
		res.Cards = append(res.Cards, box)
	}

	res.Rows = len(occ.rows)
	res.Height = 2 * ContainerPadding
	if res.Rows > 0 {
		res.Height += float64(res.Rows)*opts.RowHeight + float64(res.Rows-1)*gap
	}
	if opts.Debug.Occupancy {
		res.Debug = &PlacementDebug{Occupancy: occ.dump()}
	}
	return res, nil
}

// occupancy 记录已被占用的网格单元，按需追加行。
type occupancy struct {
	cols int
	rows [][]bool
}

func (o *occupancy) free(row, col, cs, rs int) bool {
	if col+cs > o.cols {
		return false
	}
	for r := row; r < row+rs && r < len(o.rows); r++ {
		for c := col; c < col+cs; c++ {
			if o.rows[r][c] {
				return false
			}
		}
	}
	return true
}

// find 从游标开始按行优先寻找第一个能容纳 cs×rs 的位置。
func (o *occupancy) find(row, col, cs, rs int) (int, int) {
	for {
		for ; col+cs <= o.cols; col++ {
			if o.free(row, col, cs, rs) {
				return row, col
			}
		}
		row, col = row+1, 0
	}
}

func (o *occupancy) mark(row, col, cs, rs int) {
	for len(o.rows) < row+rs {
		o.rows = append(o.rows, make([]bool, o.cols))
	}
	for r := row; r < row+rs; r++ {
		for c := col; c < col+cs; c++ {
			o.rows[r][c] = true
		}
	}
}

func (o *occupancy) dump() []string {
	out := make([]string, len(o.rows))
	for i, row := range o.rows {
		var b strings.Builder
		for _, used := range row {
			if used {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		out[i] = b.String()
	}
	return out
}

func cardBox(card grid.Card, rect Rect, ts Typesetter) (CardBox, error) {
	style := card.Style
	box := CardBox{
		ID:           card.ID,
		Name:         card.Name,
		Template:     card.Content.Template,
		Order:        card.Order,
		Rect:         rect,
		Radius:       radii[style.Radius],
		ShadowOffset: shadowOffsets[style.Shadow],
		BorderColor:  borderColor,
		Fill:         ResolveColor(style.Background, cardColor),
		FillOpacity:  1,
		TextColor:    ResolveColor(style.TextColor, foregroundColor),
	}
	if limit := min(rect.Width, rect.Height) / 2; box.Radius > limit {
		box.Radius = limit
	}
	if style.Border {
		box.BorderWidth = float64(style.BorderWidth)
	}
	if style.Glass {
		box.Fill = White
		box.FillOpacity = grid.Clamp(style.GlassOpacity, 0, 1)
	}

	content := rect.Inset(CardPadding)
	y := content.Y

	title := card.Content.Heading
	if title == "" {
		title = card.Name
	}
	var err error
	box.Title, err = textBox(ts, title, content.X, y, content.Width, titleFontSize, true, box.TextColor, content.Height)
	if err != nil {
		return box, err
	}
	y += box.Title.Height

	label := fmt.Sprintf("%s · #%d", templateLabel(card.Content.Template), card.ID)
	box.Label, err = textBox(ts, label, content.X, y, content.Width, labelFontSize, false, mutedForeground, content.Bottom()-y)
	if err != nil {
		return box, err
	}
	y += box.Label.Height + 6

	remaining := content.Bottom() - y
	if remaining <= 0 {
		return box, nil
	}
	if card.Content.Template.IsChart() {
		box.Chart = chartBox(card.Content, Rect{X: content.X, Y: y, Width: content.Width, Height: remaining})
		return box, nil
	}
	if text := bodyText(card.Content); text != "" {
		body, err := textBox(ts, text, content.X, y, content.Width, bodyFontSize, false, box.TextColor, remaining)
		if err != nil {
			return box, err
		}
		if len(body.Lines) > 0 {
			box.Body = &body
		}
	}
	return box, nil
}

func textBox(ts Typesetter, content string, x, y, width, size float64, bold bool, color Color, maxHeight float64) (TextBox, error) {
	lines, err := ts.LayoutLines(content, width, size, bold)
	if err != nil {
		return TextBox{}, err
	}
	lh := size * lineFactor
	lines = clampLines(lines, lh, maxHeight)
	return TextBox{
		Content:    content,
		X:          x,
		Y:          y,
		Width:      width,
		Height:     float64(len(lines)) * lh,
		FontSize:   size,
		LineHeight: lh,
		Bold:       bold,
		Color:      color,
		Lines:      lines,
	}, nil
}

func chartBox(content grid.Content, rect Rect) *ChartBox {
	data := content.ChartOrSample()
	box := &ChartBox{Kind: content.Template, Rect: rect}
	for i, label := range data.Labels {
		box.Labels = append(box.Labels, label)
		box.Values = append(box.Values, data.ValueAt(i))
		box.Colors = append(box.Colors, ResolveColor(data.ColorAt(i), primaryColor))
	}
	return box
}

// bodyText 返回预览中卡片正文的摘要文字。
func bodyText(c grid.Content) string {
	switch c.Template {
	case grid.TemplateStatCard, grid.TemplateProgressCard:
		if c.Stat != nil {
			return strings.TrimSpace(c.Stat.Value + " " + c.Stat.Label)
		}
	case grid.TemplateCTACard:
		if c.CTAText != "" {
			return c.Text + "\n[" + c.CTAText + "]"
		}
	case grid.TemplateTestimonial:
		if c.Author != "" {
			return "“" + c.Text + "”\n" + c.Author
		}
	}
	return c.Text
}

// templateLabel 把 "bar-chart" 变为 "Bar Chart"。
func templateLabel(t grid.Template) string {
	words := strings.Split(string(t), "-")
	for i, w := range words {
		switch w {
		case "cta":
			words[i] = "CTA"
		case "":
		default:
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
