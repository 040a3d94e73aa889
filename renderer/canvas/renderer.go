package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"

	"github.com/ByLCY/bento/fonts"
	"github.com/ByLCY/bento/grid"
	"github.com/ByLCY/bento/layout"
	"github.com/ByLCY/bento/renderer"
)

// DefaultDPI 是 PNG 输出的默认分辨率（2 倍屏）。
const DefaultDPI = 192.0

const (
	shadowAlpha    = 0.08
	chartLineWidth = 2.0 // px
	pieSegments    = 96
)

// Renderer draws placement results via github.com/tdewolff/canvas.
// 布局坐标为 px，画布单位为 mm，字号为 pt，在边界处换算。
type Renderer struct {
	format renderer.Format
	dpi    float64

	regular []byte
	bold    []byte

	fontMu   sync.Mutex
	families map[bool]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	Format renderer.Format // 默认 PDF
	DPI    float64         // 仅 PNG 使用，默认 DefaultDPI
	// 自定义字体数据；为空时使用内置 Go 字体。
	Regular []byte
	Bold    []byte
}

// NewRenderer creates a renderer for the given format with built-in fonts.
func NewRenderer(format renderer.Format) *Renderer {
	return NewRendererWithOptions(Options{Format: format})
}

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		format:   opts.Format,
		dpi:      opts.DPI,
		regular:  opts.Regular,
		bold:     opts.Bold,
		families: map[bool]*canvas.FontFamily{},
	}
	if r.format == "" {
		r.format = renderer.PDF
	}
	if r.dpi <= 0 {
		r.dpi = DefaultDPI
	}
	return r
}

// Format returns the output format.
func (r *Renderer) Format() renderer.Format { return r.format }

// Render draws the result and encodes it in the renderer's format.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if result.Width <= 0 || result.Height <= 0 {
		return nil, fmt.Errorf("画布尺寸无效: %gx%g", result.Width, result.Height)
	}

	w, h := mm(result.Width), mm(result.Height)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点

	ctx.SetFillColor(colorFromLayout(result.Background, 1))
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	for _, card := range result.Cards {
		if err := r.drawCard(ctx, card); err != nil {
			return nil, fmt.Errorf("绘制卡片 %d 失败: %w", card.ID, err)
		}
	}

	var buf bytes.Buffer
	switch r.format {
	case renderer.PDF:
		writer := pdf.New(&buf, w, h, nil)
		writer.SetInfo(fmt.Sprintf("Bento grid (%s)", result.Breakpoint), "grid preview", "bento", "", "bento")
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.SVG:
		writer := svg.New(&buf, w, h, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.PNG:
		img := rasterizer.Draw(c, canvas.DPI(r.dpi), canvas.DefaultColorSpace)
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式：%s", r.format)
	}
	return buf.Bytes(), nil
}

// LayoutLines 实现 layout.Typesetter，宽度与字号均为 px，用真实字形宽度折行。
func (r *Renderer) LayoutLines(content string, width, fontSize float64, bold bool) ([]layout.TextLine, error) {
	face, err := r.face(bold, fontSize, layout.Black)
	if err != nil {
		return nil, err
	}
	measure := func(s string) float64 { return face.TextWidth(s) * layout.MmToPx }
	return layout.WrapWords(content, width, measure), nil
}

func (r *Renderer) drawCard(ctx *canvas.Context, card layout.CardBox) error {
	rect := card.Rect
	radius := mm(card.Radius)
	shape := canvas.RoundedRectangle(mm(rect.Width), mm(rect.Height), radius)

	if card.ShadowOffset > 0 {
		ctx.SetFillColor(canvas.RGBA(0, 0, 0, shadowAlpha))
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(mm(rect.X+card.ShadowOffset), mm(rect.Y+card.ShadowOffset), shape)
	}

	ctx.SetFillColor(colorFromLayout(card.Fill, card.FillOpacity))
	if card.BorderWidth > 0 {
		ctx.SetStrokeColor(colorFromLayout(card.BorderColor, 1))
		ctx.SetStrokeWidth(mm(card.BorderWidth))
	} else {
		ctx.SetStrokeColor(canvas.Transparent)
	}
	ctx.DrawPath(mm(rect.X), mm(rect.Y), shape)

	for _, tb := range []*layout.TextBox{&card.Title, &card.Label, card.Body} {
		if tb == nil {
			continue
		}
		if err := r.drawTextBox(ctx, *tb); err != nil {
			return err
		}
	}
	if card.Chart != nil {
		r.drawChart(ctx, card.Chart, card.Fill)
	}
	return nil
}

func (r *Renderer) drawTextBox(ctx *canvas.Context, tb layout.TextBox) error {
	if len(tb.Lines) == 0 {
		return nil
	}
	face, err := r.face(tb.Bold, tb.FontSize, tb.Color)
	if err != nil {
		return err
	}
	ascent := face.Metrics().Ascent
	for i, line := range tb.Lines {
		if line.Content == "" {
			continue
		}
		top := mm(tb.Y + float64(i)*tb.LineHeight)
		ctx.DrawText(mm(tb.X), top+ascent, canvas.NewTextLine(face, line.Content, canvas.Left))
	}
	return nil
}

func (r *Renderer) drawChart(ctx *canvas.Context, chart *layout.ChartBox, background layout.Color) {
	colorAt := func(i int) color.Color {
		if i < len(chart.Colors) {
			return colorFromLayout(chart.Colors[i], 1)
		}
		return colorFromLayout(layout.Black, 1)
	}
	switch chart.Kind {
	case grid.TemplateBarChart:
		ctx.SetStrokeColor(canvas.Transparent)
		for i, bar := range barRects(chart.Rect, chart.Values) {
			if bar.Height <= 0 {
				continue
			}
			ctx.SetFillColor(colorAt(i))
			ctx.DrawPath(mm(bar.X), mm(bar.Y), canvas.Rectangle(mm(bar.Width), mm(bar.Height)))
		}
	case grid.TemplateLineChart:
		points := linePoints(chart.Rect, chart.Values)
		if len(points) == 0 {
			return
		}
		p := &canvas.Path{}
		p.MoveTo(mm(points[0][0]), mm(points[0][1]))
		for _, point := range points[1:] {
			p.LineTo(mm(point[0]), mm(point[1]))
		}
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(colorAt(0))
		ctx.SetStrokeWidth(mm(chartLineWidth))
		ctx.DrawPath(0, 0, p)
		ctx.SetFillColor(colorAt(0))
		ctx.SetStrokeColor(canvas.Transparent)
		dot := mm(chartLineWidth * 1.5)
		for _, point := range points {
			ctx.DrawPath(mm(point[0]), mm(point[1]), canvas.Circle(dot))
		}
	case grid.TemplatePieChart, grid.TemplateDonutChart:
		bounds := pieBounds(chart.Values)
		if bounds == nil {
			return
		}
		cx := chart.Rect.X + chart.Rect.Width/2
		cy := chart.Rect.Y + chart.Rect.Height/2
		radius := min(chart.Rect.Width, chart.Rect.Height) / 2
		ctx.SetStrokeColor(canvas.Transparent)
		for i, b := range bounds {
			ctx.SetFillColor(colorAt(i))
			ctx.DrawPath(0, 0, sector(cx, cy, radius, b[0], b[1]))
		}
		if chart.Kind == grid.TemplateDonutChart {
			// innerRadius 60% / outerRadius 80%，预览按内外半径之比挖空。
			ctx.SetFillColor(colorFromLayout(background, 1))
			ctx.DrawPath(mm(cx), mm(cy), canvas.Circle(mm(radius*0.75)))
		}
	}
}

// sector 用折线近似一个扇区，坐标为 mm。
func sector(cx, cy, radius, start, end float64) *canvas.Path {
	p := &canvas.Path{}
	p.MoveTo(mm(cx), mm(cy))
	steps := int(float64(pieSegments)*(end-start)/(2*math.Pi)) + 1
	for i := 0; i <= steps; i++ {
		a := start + (end-start)*float64(i)/float64(steps)
		x, y := arcPoint(cx, cy, radius, a)
		p.LineTo(mm(x), mm(y))
	}
	p.Close()
	return p
}

// face 返回字号为 sizePx 的字体面；字体族按粗细缓存。
func (r *Renderer) face(bold bool, sizePx float64, col layout.Color) (*canvas.FontFace, error) {
	family, err := r.family(bold)
	if err != nil {
		return nil, err
	}
	style := canvas.FontRegular
	if bold {
		style = canvas.FontBold
	}
	return family.Face(pt(sizePx), colorFromLayout(col, 1), style, canvas.FontNormal), nil
}

func (r *Renderer) family(bold bool) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if family, ok := r.families[bold]; ok {
		return family, nil
	}

	data, name, style := r.regular, fonts.Regular, canvas.FontRegular
	if bold {
		data, name, style = r.bold, fonts.Bold, canvas.FontBold
	}
	if len(data) == 0 {
		builtin, err := fonts.Load(name)
		if err != nil {
			return nil, err
		}
		data = builtin
	}
	family := canvas.NewFontFamily("bento-" + name)
	if err := family.LoadFont(data, 0, style); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.families[bold] = family
	return family, nil
}

func colorFromLayout(c layout.Color, alpha float64) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, alpha)
}

// mm 将像素(px)转换为毫米(mm)。
func mm(px float64) float64 { return px * layout.PxToMm }

// pt 将像素(px)转换为点(pt)。
func pt(px float64) float64 { return px * layout.PtPerInch / layout.PxPerInch }
