package layout

import (
	"encoding/json"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/bento/grid"
)

func cardsWithSpans(cols int, spans ...[2]int) *grid.Config {
	cfg := &grid.Config{Columns: grid.Uniform(cols), Gap: grid.Uniform(0)}
	for i, s := range spans {
		c := grid.NewCard(grid.CardID(i+1), i)
		c.ColSpan = grid.Uniform(s[0])
		c.RowSpan = grid.Uniform(s[1])
		cfg.Cards = append(cfg.Cards, c)
	}
	return cfg
}

func positions(res *Result) [][2]int {
	out := make([][2]int, len(res.Cards))
	for i, c := range res.Cards {
		out[i] = [2]int{c.Row, c.Column}
	}
	return out
}

func TestPlaceDefaultConfigLG(t *testing.T) {
	res, err := Place(grid.Default(), Options{Breakpoint: grid.LG})
	if err != nil {
		t.Fatal(err)
	}
	if res.Columns != 3 || res.Gap != 16 || res.Width != 1024 {
		t.Fatalf("网格参数不符: cols=%d gap=%g width=%g", res.Columns, res.Gap, res.Width)
	}
	if math.Abs(res.ColumnWidth-320) > 1e-9 {
		t.Fatalf("列宽期望 320，实际 %g", res.ColumnWidth)
	}
	want := [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {1, 2}}
	got := positions(res)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("放置位置不符: got=%v want=%v", got, want)
		}
	}
	if res.Rows != 2 || math.Abs(res.Height-(32+2*160+16)) > 1e-9 {
		t.Fatalf("总高度不符: rows=%d height=%g", res.Rows, res.Height)
	}
	wide := res.Cards[1]
	if wide.ColSpan != 2 || math.Abs(wide.Rect.Width-(2*320+16)) > 1e-9 {
		t.Fatalf("跨两列的卡片宽度不符: %+v", wide.Rect)
	}
}

func TestPlaceSmallBreakpointStacks(t *testing.T) {
	res, err := Place(grid.Default(), Options{Breakpoint: grid.SM})
	if err != nil {
		t.Fatal(err)
	}
	if res.Columns != 1 || res.Rows != 5 {
		t.Fatalf("sm 下应单列堆叠: cols=%d rows=%d", res.Columns, res.Rows)
	}
	for i, c := range res.Cards {
		if c.Row != i || c.Column != 0 {
			t.Fatalf("第 %d 张卡片位置不符: (%d,%d)", i, c.Row, c.Column)
		}
	}
}

func TestPlaceSparseLeavesHoles(t *testing.T) {
	res, err := Place(cardsWithSpans(3, [2]int{1, 1}, [2]int{3, 1}, [2]int{1, 1}), Options{Breakpoint: grid.LG})
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{0, 0}, {1, 0}, {2, 0}}
	got := positions(res)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("稀疏放置不应回填空洞: got=%v want=%v", got, want)
		}
	}
}

func TestPlaceRowSpanBlocksCells(t *testing.T) {
	res, err := Place(cardsWithSpans(3, [2]int{1, 2}, [2]int{2, 1}, [2]int{1, 1}, [2]int{2, 1}), Options{
		Breakpoint: grid.LG,
		Debug:      DebugOptions{Occupancy: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{0, 0}, {0, 1}, {1, 1}, {2, 0}}
	got := positions(res)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("跨行放置不符: got=%v want=%v", got, want)
		}
	}
	if res.Debug == nil || strings.Join(res.Debug.Occupancy, "|") != "###|##.|##." {
		t.Fatalf("占用图不符: %+v", res.Debug)
	}
}

func TestPlaceClampsSpans(t *testing.T) {
	res, err := Place(cardsWithSpans(2, [2]int{5, 1}, [2]int{0, 0}), Options{Breakpoint: grid.MD})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cards[0].ColSpan != 2 {
		t.Fatalf("列跨度应被夹取到列数，实际 %d", res.Cards[0].ColSpan)
	}
	if res.Cards[1].ColSpan != 1 || res.Cards[1].RowSpan != 1 {
		t.Fatalf("非法跨度应按 1 处理: %+v", res.Cards[1])
	}
}

func TestPlaceNeverOverlaps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		cols := 1 + rng.Intn(6)
		var spans [][2]int
		for i := 0; i < 1+rng.Intn(12); i++ {
			spans = append(spans, [2]int{1 + rng.Intn(4), 1 + rng.Intn(3)})
		}
		cfg := cardsWithSpans(cols, spans...)
		cfg.Gap = grid.Uniform(rng.Intn(5))
		res, err := Place(cfg, Options{Breakpoint: grid.LG})
		if err != nil {
			t.Fatal(err)
		}
		for i := range res.Cards {
			a := res.Cards[i]
			if a.Rect.Right() > res.Width-res.Padding+1e-6 {
				t.Fatalf("第 %d 轮: 卡片 %d 超出容器右边界", round, a.ID)
			}
			if a.Rect.Bottom() > res.Height-res.Padding+1e-6 {
				t.Fatalf("第 %d 轮: 卡片 %d 超出容器下边界", round, a.ID)
			}
			for j := i + 1; j < len(res.Cards); j++ {
				if a.Rect.Overlaps(res.Cards[j].Rect) {
					t.Fatalf("第 %d 轮: 卡片 %d 与 %d 重叠", round, a.ID, res.Cards[j].ID)
				}
			}
		}
	}
}

func TestPlaceErrors(t *testing.T) {
	if _, err := Place(nil, Options{}); err == nil {
		t.Fatalf("nil 配置应报错")
	}
	if _, err := Place(grid.Default(), Options{Breakpoint: "xl"}); err == nil {
		t.Fatalf("未知断点应报错")
	}
	if _, err := Place(grid.Default(), Options{Breakpoint: grid.LG, Width: 40}); err == nil {
		t.Fatalf("过窄的容器应报错")
	}
}

func TestPlaceCardContent(t *testing.T) {
	cfg := grid.Default()
	cfg.Cards[0].Content.Text = strings.Repeat("lorem ipsum dolor sit amet ", 40)
	cfg.Cards[0].Style.Glass = true
	cfg.Cards[0].Style.GlassOpacity = 0.2
	res, err := Place(cfg, Options{Breakpoint: grid.LG, RowHeight: 120})
	if err != nil {
		t.Fatal(err)
	}
	first := res.Cards[0]
	if first.Title.Content != "Welcome Card" || first.Title.Lines[0].Content != "Welcome Card" {
		t.Fatalf("无标题时应使用卡片名: %+v", first.Title)
	}
	if first.Label.Content != "Text Only · #1" {
		t.Fatalf("模板标签不符: %q", first.Label.Content)
	}
	if first.Body == nil || !strings.HasSuffix(first.Body.Lines[len(first.Body.Lines)-1].Content, "…") {
		t.Fatalf("超长正文应被截断并追加省略号")
	}
	if first.Body.Y+first.Body.Height > first.Rect.Bottom()-CardPadding+1e-6 {
		t.Fatalf("正文不应超出卡片内容区")
	}
	if first.FillOpacity != 0.2 || first.Fill != White {
		t.Fatalf("玻璃效果的填充不符: %+v %g", first.Fill, first.FillOpacity)
	}

	bar := res.Cards[2]
	if bar.Chart == nil || bar.Chart.Kind != grid.TemplateBarChart || len(bar.Chart.Values) != 5 {
		t.Fatalf("柱状图卡片应带图表数据: %+v", bar.Chart)
	}
	if bar.Chart.Colors[0] != (Color{R: 0, G: 0x88, B: 0xFE}) {
		t.Fatalf("图表颜色解析不符: %+v", bar.Chart.Colors[0])
	}
	if bar.Body != nil {
		t.Fatalf("图表卡片不应再排正文")
	}
}

func TestPlaceUsesSampleChart(t *testing.T) {
	cfg := cardsWithSpans(1, [2]int{1, 2})
	cfg.Cards[0].Content.Template = grid.TemplateDonutChart
	res, err := Place(cfg, Options{Breakpoint: grid.SM})
	if err != nil {
		t.Fatal(err)
	}
	chart := res.Cards[0].Chart
	if chart == nil || len(chart.Labels) != 3 || chart.Labels[0] != "Product A" {
		t.Fatalf("缺少数据时应使用样例: %+v", chart)
	}
}

func TestRadiusClampedToBox(t *testing.T) {
	cfg := cardsWithSpans(1, [2]int{1, 1})
	cfg.Cards[0].Style.Radius = grid.RadiusFull
	res, err := Place(cfg, Options{Breakpoint: grid.SM, RowHeight: 80})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cards[0].Radius != 40 {
		t.Fatalf("圆角应被夹取到短边的一半，实际 %g", res.Cards[0].Radius)
	}
}

func TestWriteDebugJSON(t *testing.T) {
	cfg := grid.Default()
	res, err := Place(cfg, Options{Breakpoint: grid.MD})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "debug.json")
	if err := WriteDebugJSON(path, cfg, res); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc DebugDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("调试 JSON 无法解析: %v", err)
	}
	if len(doc.Config.Cards) != 5 || len(doc.Layouts) != 1 || doc.Layouts[0].Breakpoint != grid.MD {
		t.Fatalf("调试 JSON 内容不符")
	}
}
