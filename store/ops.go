package store

import (
	"strconv"
	"strings"

	"github.com/ByLCY/bento/grid"
)

// 本文件是配置的纯变换：输入一个快照，返回新快照，不修改输入。
// 找不到卡片 id 时原样返回同一个指针，调用方可据此判断“未变化”。

// Ptr returns a pointer to v, handy for building patches.
func Ptr[T any](v T) *T { return &v }

// StylePatch 是样式的浅合并补丁，只有非 nil 字段会被写入。
type StylePatch struct {
	Shadow            *grid.Shadow
	Border            *bool
	BorderWidth       *int
	Radius            *grid.Radius
	Glass             *bool
	GlassOpacity      *float64
	Background        *string
	TextColor         *string
	EqualHeight       *bool
	Animation         *grid.Animation
	AnimationDuration *float64
	AnimationDelay    *float64
	Hover             *grid.HoverEffect
	HoverDuration     *float64
}

func (p StylePatch) apply(s grid.CardStyle) grid.CardStyle {
	set(&s.Shadow, p.Shadow)
	set(&s.Border, p.Border)
	set(&s.BorderWidth, p.BorderWidth)
	set(&s.Radius, p.Radius)
	set(&s.Glass, p.Glass)
	set(&s.GlassOpacity, p.GlassOpacity)
	set(&s.Background, p.Background)
	set(&s.TextColor, p.TextColor)
	set(&s.EqualHeight, p.EqualHeight)
	set(&s.Animation, p.Animation)
	set(&s.AnimationDuration, p.AnimationDuration)
	set(&s.AnimationDelay, p.AnimationDelay)
	set(&s.Hover, p.Hover)
	set(&s.HoverDuration, p.HoverDuration)
	return s
}

// ContentPatch 是内容的浅合并补丁。Stat 与 Chart 整体替换（深拷贝），
// nil 表示不变；与模板无关的字段照常保留。
type ContentPatch struct {
	Template      *grid.Template
	Text          *string
	Heading       *string
	ImageURL      *string
	ImageURL2     *string
	ImagePosition *grid.ImagePosition
	Stat          *grid.StatData
	Chart         *grid.ChartData
	CTAText       *string
	CTAURL        *string
	Author        *string
	Role          *string
	Icon          *string
}

func (p ContentPatch) apply(c grid.Content) grid.Content {
	set(&c.Template, p.Template)
	set(&c.Text, p.Text)
	set(&c.Heading, p.Heading)
	set(&c.ImageURL, p.ImageURL)
	set(&c.ImageURL2, p.ImageURL2)
	set(&c.ImagePosition, p.ImagePosition)
	set(&c.CTAText, p.CTAText)
	set(&c.CTAURL, p.CTAURL)
	set(&c.Author, p.Author)
	set(&c.Role, p.Role)
	set(&c.Icon, p.Icon)
	if p.Stat != nil {
		stat := *p.Stat
		c.Stat = &stat
	}
	if p.Chart != nil {
		c.Chart = &grid.ChartData{
			Labels: append([]string(nil), p.Chart.Labels...),
			Values: append([]float64(nil), p.Chart.Values...),
			Colors: append([]string(nil), p.Chart.Colors...),
		}
	}
	return c
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// SpanInput 是未经校验的跨度输入，每档为原始文本（通常来自输入框）。
// 空串、非数字或小于 1 的条目在写入前被规整为 1。
type SpanInput struct {
	SM, MD, LG string
}

// Spans 由整数构造 SpanInput。
func Spans(r grid.Responsive) SpanInput {
	return SpanInput{SM: strconv.Itoa(r.SM), MD: strconv.Itoa(r.MD), LG: strconv.Itoa(r.LG)}
}

// Normalize 返回规整后的跨度。
func (in SpanInput) Normalize() grid.Responsive {
	return grid.Responsive{SM: spanValue(in.SM), MD: spanValue(in.MD), LG: spanValue(in.LG)}
}

func spanValue(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// withCard 对 id 对应的卡片应用 fn；找不到 id 时返回 cfg 本身。
func withCard(cfg *grid.Config, id grid.CardID, fn func(*grid.Card)) *grid.Config {
	idx := cfg.Index(id)
	if idx < 0 {
		return cfg
	}
	next := cfg.Clone()
	fn(&next.Cards[idx])
	return next
}

// SetColumns 替换某一断点的列数。
func SetColumns(cfg *grid.Config, bp grid.Breakpoint, v int) *grid.Config {
	next := cfg.Clone()
	next.Columns = next.Columns.With(bp, v)
	return next
}

// SetGap 替换某一断点的间距。
func SetGap(cfg *grid.Config, bp grid.Breakpoint, v int) *grid.Config {
	next := cfg.Clone()
	next.Gap = next.Gap.With(bp, v)
	return next
}

// SetRows 设置名义行数（仅作提示，不约束卡片放置）。
func SetRows(cfg *grid.Config, rows int) *grid.Config {
	next := cfg.Clone()
	next.Rows = rows
	return next
}

// SetCardStyle 把补丁浅合并到卡片样式。
func SetCardStyle(cfg *grid.Config, id grid.CardID, patch StylePatch) *grid.Config {
	return withCard(cfg, id, func(c *grid.Card) { c.Style = patch.apply(c.Style) })
}

// SetCardSize 写入规整后的列、行跨度。
func SetCardSize(cfg *grid.Config, id grid.CardID, col, row SpanInput) *grid.Config {
	return withCard(cfg, id, func(c *grid.Card) {
		c.ColSpan = col.Normalize()
		c.RowSpan = row.Normalize()
	})
}

// SetCardContent 把补丁浅合并到卡片内容。
func SetCardContent(cfg *grid.Config, id grid.CardID, patch ContentPatch) *grid.Config {
	return withCard(cfg, id, func(c *grid.Card) { c.Content = patch.apply(c.Content) })
}

// SetCardName 修改卡片名称。
func SetCardName(cfg *grid.Config, id grid.CardID, name string) *grid.Config {
	return withCard(cfg, id, func(c *grid.Card) { c.Name = name })
}

// setCardOrder 直接覆盖一张卡片的 order，不重排其余卡片，
// 单独调用会破坏 order 稠密性。
func setCardOrder(cfg *grid.Config, id grid.CardID, order int) *grid.Config {
	return withCard(cfg, id, func(c *grid.Card) { c.Order = order })
}

// ReorderCards 把 source 移到 destination 所在的位置，中间的卡片整体平移一格。
// 两者相同或任一 id 不存在时不变。
func ReorderCards(cfg *grid.Config, source, destination grid.CardID) *grid.Config {
	src, ok := cfg.Find(source)
	if !ok {
		return cfg
	}
	dst, ok := cfg.Find(destination)
	if !ok || src.ID == dst.ID {
		return cfg
	}
	s, d := src.Order, dst.Order
	if s == d {
		return cfg
	}
	next := cfg.Clone()
	for i := range next.Cards {
		card := &next.Cards[i]
		switch {
		case card.ID == source:
			card.Order = d
		case s < d && card.Order > s && card.Order <= d:
			card.Order--
		case s > d && card.Order >= d && card.Order < s:
			card.Order++
		}
	}
	return next
}

// ApplyAnimationToAll 把动画设置广播到所有卡片。
func ApplyAnimationToAll(cfg *grid.Config, a grid.Animation, duration, delay float64) *grid.Config {
	next := cfg.Clone()
	for i := range next.Cards {
		s := &next.Cards[i].Style
		s.Animation, s.AnimationDuration, s.AnimationDelay = a, duration, delay
	}
	return next
}

// ApplyHoverEffectToAll 把悬停效果广播到所有卡片。
func ApplyHoverEffectToAll(cfg *grid.Config, e grid.HoverEffect, duration float64) *grid.Config {
	next := cfg.Clone()
	for i := range next.Cards {
		s := &next.Cards[i].Style
		s.Hover, s.HoverDuration = e, duration
	}
	return next
}

// ToggleExportMode 在图表库模式与纯文本模式之间切换。
func ToggleExportMode(cfg *grid.Config) *grid.Config {
	next := cfg.Clone()
	next.ExportMode = next.ExportMode.Toggle()
	return next
}

// AddCard 追加一张新卡片：id 为现有最大 id 加一，order 为卡片数。
func AddCard(cfg *grid.Config) (*grid.Config, grid.CardID) {
	next := cfg.Clone()
	id := cfg.MaxID() + 1
	next.Cards = append(next.Cards, grid.NewCard(id, len(cfg.Cards)))
	return next, id
}

// RemoveCard 删除卡片，并把排在它后面的卡片 order 各减一。
func RemoveCard(cfg *grid.Config, id grid.CardID) *grid.Config {
	removed, ok := cfg.Find(id)
	if !ok {
		return cfg
	}
	next := cfg.Clone()
	cards := next.Cards[:0]
	for _, card := range next.Cards {
		if card.ID == id {
			continue
		}
		if card.Order > removed.Order {
			card.Order--
		}
		cards = append(cards, card)
	}
	next.Cards = cards
	return next
}
