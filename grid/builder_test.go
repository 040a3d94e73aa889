package grid

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/ByLCY/bento/dsl"
)

func buildFromText(t *testing.T, text string, data any) (*Config, string) {
	t.Helper()
	doc, err := dsl.Parse("test.bento", strings.NewReader(text))
	if err != nil {
		t.Fatalf("解析 DSL 失败: %v", err)
	}
	var logs bytes.Buffer
	cfg, err := Build(doc, BuildOptions{Data: data, Logger: log.New(&logs, "", 0)})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	return cfg, logs.String()
}

func TestBuildFullCard(t *testing.T) {
	src := `bento Demo v1 {
  grid {
    columns: { sm: 1, lg: 4 }
    gap: 3
    rows: 3
    export: plain
  }
  card 7 "Sales" {
    order: 0
    col-span: { sm: 1, md: 2, lg: 2 }
    row-span: 2
    style {
      shadow: xl
      border: false
      radius: full
      glass: true
      glass-opacity: 0.3
      background: #0F172A
      animation: slide-up
      animation-duration: 0.8
      hover: border-glow
      hover-duration: 0.2
    }
    content stat-card {
      heading: "Revenue for ${org}"
      icon: Zap
      stat { value: "42" label: "Users" trend: up trend-value: "+5%" }
    }
  }
}`
	cfg, _ := buildFromText(t, src, map[string]any{"org": "ACME"})

	if cfg.Columns != (Responsive{SM: 1, MD: 1, LG: 4}) {
		t.Fatalf("md 应沿用 sm 的列数，得到 %s", cfg.Columns)
	}
	if cfg.Gap != Uniform(3) || cfg.Rows != 3 || cfg.ExportMode != ExportPlain {
		t.Fatalf("网格参数不符: %+v", cfg)
	}
	if len(cfg.Cards) != 1 {
		t.Fatalf("期望 1 张卡片，得到 %d", len(cfg.Cards))
	}
	card := cfg.Cards[0]
	if card.ID != 7 || card.Name != "Sales" || card.Order != 0 {
		t.Fatalf("卡片头部不符: %+v", card)
	}
	if card.ColSpan != (Responsive{SM: 1, MD: 2, LG: 2}) || card.RowSpan != Uniform(2) {
		t.Fatalf("跨度不符: col=%s row=%s", card.ColSpan, card.RowSpan)
	}
	style := card.Style
	if style.Shadow != ShadowXL || style.Border || style.Radius != RadiusFull || !style.Glass {
		t.Fatalf("样式不符: %+v", style)
	}
	if style.Background != "#0F172A" || style.Animation != AnimationSlideUp || style.Hover != HoverBorderGlow {
		t.Fatalf("样式不符: %+v", style)
	}
	// 未声明的字段保持默认值。
	if style.TextColor != "text-card-foreground" || style.AnimationDelay != 0 || !style.EqualHeight {
		t.Fatalf("未声明字段应保持默认: %+v", style)
	}
	if card.Content.Template != TemplateStatCard || card.Content.Heading != "Revenue for ACME" {
		t.Fatalf("内容不符: %+v", card.Content)
	}
	if card.Content.Stat == nil || card.Content.Stat.Value != "42" || card.Content.Stat.Trend != TrendUp {
		t.Fatalf("统计数据不符: %+v", card.Content.Stat)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("构建结果应满足不变式: %v", err)
	}
}

func TestBuildAssignsIDsAndOrders(t *testing.T) {
	src := `bento Demo v1 {
  card "tail" { }
  card 5 "b" { order: 4 }
  card 2 "a" { order: 1 }
  card "next" { }
}`
	cfg, logs := buildFromText(t, src, nil)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("构建结果应满足不变式: %v", err)
	}
	got := cfg.IDs()
	want := []CardID{2, 5, 6, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("显示顺序期望 %v，得到 %v", want, got)
		}
	}
	if !strings.Contains(logs, "重新编号") {
		t.Fatalf("order 有空洞时应记录告警，日志: %q", logs)
	}
	tail, _ := cfg.Find(6)
	if tail.Name != "tail" || tail.Content.Text != "Card 6" {
		t.Fatalf("自动编号卡片不符: %+v", tail)
	}
}

func TestBuildClampsGridValues(t *testing.T) {
	cfg, logs := buildFromText(t, `bento Demo v1 { grid { columns: 20 gap: -1 } }`, nil)
	if cfg.Columns != Uniform(MaxColumns) || cfg.Gap != Uniform(MinGap) {
		t.Fatalf("应夹取到名义范围: columns=%s gap=%s", cfg.Columns, cfg.Gap)
	}
	if strings.Count(logs, "超出") != 2 {
		t.Fatalf("期望两条夹取告警，日志: %q", logs)
	}
}

func TestBuildChartTolerantValues(t *testing.T) {
	src := `bento Demo v1 {
  card {
    content pie-chart {
      chart {
        labels: ["A", "B", "C"]
        values: [1, 2.5]
      }
    }
  }
}`
	cfg, _ := buildFromText(t, src, nil)
	chart := cfg.Cards[0].Content.Chart
	if chart == nil || len(chart.Labels) != 3 || len(chart.Values) != 2 {
		t.Fatalf("图表数据不符: %+v", chart)
	}
	if chart.ValueAt(2) != 0 || chart.ColorAt(2) != Palette[2] {
		t.Fatalf("缺失的值与颜色应按 0 与调色板补齐")
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		contain string
	}{
		{"duplicate id", `bento D v1 { card 1 { } card 1 { } }`, "重复"},
		{"unknown hover", `bento D v1 { card { style { hover: lft } } }`, "lift"},
		{"unknown key", `bento D v1 { card { style { hovr: lift } } }`, "hover-duration"},
		{"bad template", `bento D v1 { card { content bar-chrt { } } }`, "bar-chart"},
		{"bad breakpoint", `bento D v1 { grid { columns: { xl: 4 } } }`, "xl"},
		{"bad bool", `bento D v1 { card { style { glass: maybe } } }`, "布尔"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := dsl.ParseString(tc.src)
			if err != nil {
				t.Fatalf("解析 DSL 失败: %v", err)
			}
			_, err = Build(doc, BuildOptions{Logger: log.New(&bytes.Buffer{}, "", 0)})
			if err == nil {
				t.Fatalf("期望构建失败")
			}
			if !strings.Contains(err.Error(), tc.contain) {
				t.Fatalf("错误信息应包含 %q，得到 %v", tc.contain, err)
			}
			var be *BuildError
			if !errors.As(err, &be) {
				t.Fatalf("错误应携带位置: %T", err)
			}
		})
	}
}

func TestBuildNilDocument(t *testing.T) {
	if _, err := Build(nil, BuildOptions{}); err == nil {
		t.Fatalf("空文档应返回错误")
	}
}
