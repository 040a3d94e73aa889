package grid

import (
	"errors"
	"strings"
	"testing"
)

func TestDefaultSatisfiesInvariants(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("演示配置应满足不变式: %v", err)
	}
	if len(cfg.Cards) != 5 {
		t.Fatalf("期望 5 张演示卡片，得到 %d", len(cfg.Cards))
	}
	if cfg.Columns != (Responsive{SM: 1, MD: 2, LG: 3}) || cfg.Gap != (Responsive{SM: 2, MD: 3, LG: 4}) {
		t.Fatalf("演示网格参数不符: %s %s", cfg.Columns, cfg.Gap)
	}
	if cfg.MaxID() != 5 {
		t.Fatalf("期望最大 id 为 5，得到 %d", cfg.MaxID())
	}
}

func TestValidateReportsProblems(t *testing.T) {
	cfg := Default()
	cfg.Cards[1].ID = cfg.Cards[0].ID
	cfg.Cards[2].Order = 9
	cfg.Cards[3].Order = cfg.Cards[4].Order

	err := cfg.Validate()
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("期望 *InvariantError，得到 %T", err)
	}
	if len(inv.Problems) != 3 {
		t.Fatalf("期望 3 个问题，得到 %v", inv.Problems)
	}
	if !strings.Contains(err.Error(), "重复") {
		t.Fatalf("错误信息应提到重复 id: %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Cards[2].Content.Chart.Values[0] = -1
	clone.Cards[0].Name = "changed"
	if cfg.Cards[2].Content.Chart.Values[0] != 400 {
		t.Fatalf("修改副本不应影响原配置的图表数据")
	}
	if cfg.Cards[0].Name == "changed" {
		t.Fatalf("修改副本不应影响原配置的卡片")
	}
}

func TestSortedIsStableByOrder(t *testing.T) {
	cfg := &Config{Cards: []Card{
		NewCard(1, 2),
		NewCard(2, 0),
		NewCard(3, 1),
	}}
	ids := cfg.IDs()
	if ids[0] != 2 || ids[1] != 3 || ids[2] != 1 {
		t.Fatalf("按 order 排序结果不符: %v", ids)
	}
	// Sorted 返回副本，不改变切片顺序。
	if cfg.Cards[0].ID != 1 {
		t.Fatalf("Sorted 不应修改原切片")
	}
}

func TestNewCardSeed(t *testing.T) {
	card := NewCard(6, 5)
	if card.Name != "Card 6" || card.Content.Text != "Card 6" || card.Content.Template != TemplateTextOnly {
		t.Fatalf("新卡片默认值不符: %+v", card)
	}
	if card.ColSpan != Uniform(1) || card.RowSpan != Uniform(1) || card.Style != DefaultStyle() {
		t.Fatalf("新卡片跨度或样式不符: %+v", card)
	}
}

func TestResponsive(t *testing.T) {
	r := Responsive{SM: 1, MD: 2, LG: 3}
	next := r.With(MD, 5)
	if r.MD != 2 || next.MD != 5 {
		t.Fatalf("With 不应修改接收者: %s %s", r, next)
	}
	if got := (Responsive{SM: 0, MD: -2, LG: 4}).Normalized(1); got != (Responsive{SM: 1, MD: 1, LG: 4}) {
		t.Fatalf("Normalized 结果不符: %s", got)
	}
	if got := r.Get(Breakpoint("xl")); got != 1 {
		t.Fatalf("未知断点应按 sm 处理，得到 %d", got)
	}
	if !Uniform(2).IsUniform() || r.IsUniform() {
		t.Fatalf("IsUniform 判断错误")
	}
}

func TestParseEnumSuggestions(t *testing.T) {
	if a, err := ParseAnimation(" Fade-In "); err != nil || a != AnimationFadeIn {
		t.Fatalf("应忽略大小写与空白: %v %v", a, err)
	}
	_, err := ParseAnimation("slidup")
	var enumErr *EnumError
	if !errors.As(err, &enumErr) {
		t.Fatalf("期望 *EnumError，得到 %T", err)
	}
	if len(enumErr.Suggestions) == 0 || enumErr.Suggestions[0] != string(AnimationSlideUp) {
		t.Fatalf("期望首选建议 slide-up，得到 %v", enumErr.Suggestions)
	}
}

func TestExportModeToggle(t *testing.T) {
	if ExportLibrary.Toggle() != ExportPlain || ExportPlain.Toggle() != ExportLibrary {
		t.Fatalf("Toggle 应在两种模式间切换")
	}
}
