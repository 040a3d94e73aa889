package grid

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ByLCY/bento/binding"
	"github.com/ByLCY/bento/dsl"
	"github.com/alecthomas/participle/v2/lexer"
)

// BuildError 带有出错语句在布局文件中的位置。
type BuildError struct {
	Pos lexer.Position
	Err error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func errorAt(pos lexer.Position, format string, args ...any) error {
	return &BuildError{Pos: pos, Err: fmt.Errorf(format, args...)}
}

func wrapAt(pos lexer.Position, err error) error {
	var be *BuildError
	if errors.As(err, &be) {
		return err
	}
	return &BuildError{Pos: pos, Err: err}
}

// Build 根据 .bento 文件的 AST 生成网格配置。
// 缺少 grid 段时沿用演示配置的网格参数；列数与间距被夹取到名义范围内。
func Build(doc *dsl.Document, opts BuildOptions) (*Config, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	seed := Default()
	cfg := &Config{
		Columns:    seed.Columns,
		Gap:        seed.Gap,
		Rows:       seed.Rows,
		ExportMode: seed.ExportMode,
	}

	var cardSections []*dsl.CardSection
	for _, section := range doc.Sections {
		switch {
		case section.Grid != nil:
			if err := applyGrid(cfg, section.Grid, opts); err != nil {
				return nil, err
			}
		case section.Card != nil:
			cardSections = append(cardSections, section.Card)
		}
	}

	cards, err := buildCards(cardSections, opts)
	if err != nil {
		return nil, err
	}
	cfg.Cards = cards
	return cfg, nil
}

func applyGrid(cfg *Config, section *dsl.GridSection, opts BuildOptions) error {
	if section.Block == nil {
		return nil
	}
	for _, stmt := range section.Block.Statements {
		assign := stmt.Assignment
		if assign == nil {
			return errorAt(stmt.Command.Pos, "grid 段不支持子块 %q", stmt.Command.Name)
		}
		switch strings.ToLower(assign.Key) {
		case "columns", "cols":
			r, err := responsiveValue(assign.Value, cfg.Columns)
			if err != nil {
				return wrapAt(assign.Pos, err)
			}
			cfg.Columns = clampWarn(opts, assign.Pos, "columns", r, MinColumns, MaxColumns)
		case "gap":
			r, err := responsiveValue(assign.Value, cfg.Gap)
			if err != nil {
				return wrapAt(assign.Pos, err)
			}
			cfg.Gap = clampWarn(opts, assign.Pos, "gap", r, MinGap, MaxGap)
		case "rows":
			n, err := intValue(assign.Value)
			if err != nil {
				return wrapAt(assign.Pos, err)
			}
			cfg.Rows = n
		case "export", "export-mode":
			mode, err := ParseExportMode(valueToString(assign.Value))
			if err != nil {
				return wrapAt(assign.Pos, err)
			}
			cfg.ExportMode = mode
		default:
			return wrapAt(assign.Pos, unknownKey("grid", assign.Key, gridKeys))
		}
	}
	return nil
}

func clampWarn(opts BuildOptions, pos lexer.Position, name string, r Responsive, lo, hi int) Responsive {
	clamped := r.Clamped(lo, hi)
	if clamped != r {
		opts.logger().Printf("%s: %s %s 超出 [%d, %d]，已调整为 %s", pos, name, r, lo, hi, clamped)
	}
	return clamped
}

// pendingCard 记录卡片在文件中的出现顺序以及是否显式给出了 order。
type pendingCard struct {
	card     Card
	explicit bool
	index    int
	pos      lexer.Position
}

func buildCards(sections []*dsl.CardSection, opts BuildOptions) ([]Card, error) {
	// 先收集显式 id，未编号的卡片从最大 id 之后依次分配。
	seen := make(map[CardID]lexer.Position)
	var maxID CardID
	for _, section := range sections {
		if section.ID == nil {
			continue
		}
		id, err := parseCardID(*section.ID)
		if err != nil {
			return nil, wrapAt(section.Pos, err)
		}
		if prev, dup := seen[id]; dup {
			return nil, errorAt(section.Pos, "卡片 id %d 重复（首次出现于 %s）", id, prev)
		}
		seen[id] = section.Pos
		if id > maxID {
			maxID = id
		}
	}

	pending := make([]pendingCard, 0, len(sections))
	for i, section := range sections {
		var id CardID
		if section.ID != nil {
			id, _ = parseCardID(*section.ID)
		} else {
			maxID++
			id = maxID
		}
		card := NewCard(id, i)
		if section.Name != nil {
			card.Name = binding.Interpolate(string(*section.Name), opts.Data)
		}
		explicit, err := applyCard(&card, section.Block, opts)
		if err != nil {
			return nil, err
		}
		pending = append(pending, pendingCard{card: card, explicit: explicit, index: i, pos: section.Pos})
	}

	sort.SliceStable(pending, func(i, j int) bool {
		a, b := pending[i], pending[j]
		if a.explicit != b.explicit {
			return a.explicit
		}
		if a.explicit && a.card.Order != b.card.Order {
			return a.card.Order < b.card.Order
		}
		return a.index < b.index
	})

	cards := make([]Card, len(pending))
	for order, p := range pending {
		if p.explicit && p.card.Order != order {
			opts.logger().Printf("%s: 卡片 %d 的 order %d 已重新编号为 %d", p.pos, p.card.ID, p.card.Order, order)
		}
		p.card.Order = order
		cards[order] = p.card
	}
	return cards, nil
}

func parseCardID(raw string) (CardID, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("卡片 id 必须是正整数，得到 %q", raw)
	}
	return CardID(n), nil
}

// applyCard 填充卡片字段，返回是否显式声明了 order。
func applyCard(card *Card, block *dsl.Block, opts BuildOptions) (bool, error) {
	if block == nil {
		return false, nil
	}
	explicit := false
	for _, stmt := range block.Statements {
		if cmd := stmt.Command; cmd != nil {
			var err error
			switch strings.ToLower(cmd.Name) {
			case "style":
				err = applyStyle(&card.Style, cmd.Block)
			case "content":
				err = applyContent(&card.Content, cmd, opts)
			default:
				err = errorAt(cmd.Pos, "卡片不支持子块 %q", cmd.Name)
			}
			if err != nil {
				return false, err
			}
			continue
		}

		assign := stmt.Assignment
		switch strings.ToLower(assign.Key) {
		case "name":
			card.Name = binding.Interpolate(valueToString(assign.Value), opts.Data)
		case "order":
			n, err := intValue(assign.Value)
			if err != nil {
				return false, wrapAt(assign.Pos, err)
			}
			card.Order = n
			explicit = true
		case "col-span", "colspan":
			r, err := responsiveValue(assign.Value, Uniform(1))
			if err != nil {
				return false, wrapAt(assign.Pos, err)
			}
			card.ColSpan = r.Normalized(1)
		case "row-span", "rowspan":
			r, err := responsiveValue(assign.Value, Uniform(1))
			if err != nil {
				return false, wrapAt(assign.Pos, err)
			}
			card.RowSpan = r.Normalized(1)
		default:
			return false, wrapAt(assign.Pos, unknownKey("card", assign.Key, cardKeys))
		}
	}
	return explicit, nil
}

func applyStyle(style *CardStyle, block *dsl.Block) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		assign := stmt.Assignment
		if assign == nil {
			return errorAt(stmt.Command.Pos, "style 块不支持子块 %q", stmt.Command.Name)
		}
		if err := applyStyleKey(style, assign); err != nil {
			return wrapAt(assign.Pos, err)
		}
	}
	return nil
}

func applyStyleKey(style *CardStyle, assign *dsl.Assignment) error {
	val := assign.Value
	var err error
	switch strings.ToLower(assign.Key) {
	case "shadow":
		style.Shadow, err = ParseShadow(valueToString(val))
	case "border":
		style.Border, err = boolValue(val)
	case "border-width":
		style.BorderWidth, err = intValue(val)
		if err == nil && style.BorderWidth < 1 {
			style.BorderWidth = 1
		}
	case "radius", "border-radius":
		style.Radius, err = ParseRadius(valueToString(val))
	case "glass", "glassmorphism":
		style.Glass, err = boolValue(val)
	case "glass-opacity":
		style.GlassOpacity, err = floatValue(val)
	case "background", "bg":
		style.Background = valueToString(val)
	case "text-color", "color":
		style.TextColor = valueToString(val)
	case "equal-height":
		style.EqualHeight, err = boolValue(val)
	case "animation":
		style.Animation, err = ParseAnimation(valueToString(val))
	case "animation-duration":
		style.AnimationDuration, err = floatValue(val)
	case "animation-delay":
		style.AnimationDelay, err = floatValue(val)
	case "hover", "hover-effect":
		style.Hover, err = ParseHoverEffect(valueToString(val))
	case "hover-duration":
		style.HoverDuration, err = floatValue(val)
	default:
		err = unknownKey("style", assign.Key, styleKeys)
	}
	return err
}

func applyContent(content *Content, cmd *dsl.Command, opts BuildOptions) error {
	if len(cmd.Args) > 0 {
		t, err := ParseTemplate(cmd.Args[0].Value)
		if err != nil {
			return wrapAt(cmd.Pos, err)
		}
		content.Template = t
	}
	if cmd.Block == nil {
		return nil
	}
	text := func(v *dsl.Value) string { return binding.Interpolate(valueToString(v), opts.Data) }
	for _, stmt := range cmd.Block.Statements {
		if sub := stmt.Command; sub != nil {
			var err error
			switch strings.ToLower(sub.Name) {
			case "stat":
				content.Stat, err = buildStat(sub.Block, text)
			case "chart":
				content.Chart, err = buildChart(sub.Block, text)
			default:
				err = errorAt(sub.Pos, "content 块不支持子块 %q", sub.Name)
			}
			if err != nil {
				return err
			}
			continue
		}

		assign := stmt.Assignment
		switch strings.ToLower(assign.Key) {
		case "text":
			content.Text = text(assign.Value)
		case "heading":
			content.Heading = text(assign.Value)
		case "image", "image-url":
			content.ImageURL = text(assign.Value)
		case "image2", "image-url2":
			content.ImageURL2 = text(assign.Value)
		case "image-position":
			pos, err := ParseImagePosition(valueToString(assign.Value))
			if err != nil {
				return wrapAt(assign.Pos, err)
			}
			content.ImagePosition = pos
		case "cta", "cta-text":
			content.CTAText = text(assign.Value)
		case "cta-url":
			content.CTAURL = text(assign.Value)
		case "author":
			content.Author = text(assign.Value)
		case "role":
			content.Role = text(assign.Value)
		case "icon":
			content.Icon = valueToString(assign.Value)
		default:
			return wrapAt(assign.Pos, unknownKey("content", assign.Key, contentKeys))
		}
	}
	return nil
}

func buildStat(block *dsl.Block, text func(*dsl.Value) string) (*StatData, error) {
	stat := &StatData{}
	if block == nil {
		return stat, nil
	}
	for _, stmt := range block.Statements {
		assign := stmt.Assignment
		if assign == nil {
			return nil, errorAt(stmt.Command.Pos, "stat 块不支持子块 %q", stmt.Command.Name)
		}
		switch strings.ToLower(assign.Key) {
		case "value":
			stat.Value = text(assign.Value)
		case "label":
			stat.Label = text(assign.Value)
		case "description":
			stat.Description = text(assign.Value)
		case "trend":
			trend, err := ParseTrend(valueToString(assign.Value))
			if err != nil {
				return nil, wrapAt(assign.Pos, err)
			}
			stat.Trend = trend
		case "trend-value":
			stat.TrendValue = text(assign.Value)
		default:
			return nil, wrapAt(assign.Pos, unknownKey("stat", assign.Key, statKeys))
		}
	}
	return stat, nil
}

func buildChart(block *dsl.Block, text func(*dsl.Value) string) (*ChartData, error) {
	chart := &ChartData{}
	if block == nil {
		return chart, nil
	}
	for _, stmt := range block.Statements {
		assign := stmt.Assignment
		if assign == nil {
			return nil, errorAt(stmt.Command.Pos, "chart 块不支持子块 %q", stmt.Command.Name)
		}
		switch strings.ToLower(assign.Key) {
		case "labels":
			for _, item := range valueItems(assign.Value) {
				chart.Labels = append(chart.Labels, text(item))
			}
		case "values":
			for _, item := range valueItems(assign.Value) {
				f, err := floatValue(item)
				if err != nil {
					return nil, wrapAt(assign.Pos, err)
				}
				chart.Values = append(chart.Values, f)
			}
		case "colors":
			chart.Colors = valueToStringSlice(assign.Value)
		default:
			return nil, wrapAt(assign.Pos, unknownKey("chart", assign.Key, chartKeys))
		}
	}
	return chart, nil
}

var (
	gridKeys    = []string{"columns", "gap", "rows", "export"}
	cardKeys    = []string{"name", "order", "col-span", "row-span"}
	styleKeys   = []string{"shadow", "border", "border-width", "radius", "glass", "glass-opacity", "background", "text-color", "equal-height", "animation", "animation-duration", "animation-delay", "hover", "hover-duration"}
	contentKeys = []string{"text", "heading", "image", "image2", "image-position", "cta", "cta-url", "author", "role", "icon"}
	statKeys    = []string{"value", "label", "description", "trend", "trend-value"}
	chartKeys   = []string{"labels", "values", "colors"}
)

func unknownKey(section, key string, known []string) error {
	return &EnumError{Kind: section + " 属性", Value: key, Suggestions: suggest(strings.ToLower(key), known)}
}

// responsiveValue 接受标量（三档同值）或 { sm, md, lg } 对象；
// 对象中缺少的档位沿用前一档，缺少 sm 时沿用 base。
func responsiveValue(val *dsl.Value, base Responsive) (Responsive, error) {
	if val == nil {
		return base, fmt.Errorf("缺少取值")
	}
	if val.Object == nil {
		n, err := intValue(val)
		if err != nil {
			return base, err
		}
		return Uniform(n), nil
	}
	for _, entry := range val.Object.Entries {
		if _, err := ParseBreakpoint(entry.Key); err != nil {
			return base, err
		}
	}
	out := base
	prev := base.SM
	for _, bp := range Breakpoints {
		v, ok := val.Object.Lookup(string(bp))
		if !ok {
			out = out.With(bp, prev)
			continue
		}
		n, err := intValue(v)
		if err != nil {
			return base, fmt.Errorf("%s: %w", bp, err)
		}
		out = out.With(bp, n)
		prev = n
	}
	return out, nil
}

func intValue(val *dsl.Value) (int, error) {
	s := valueToString(val)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("需要整数，得到 %q", s)
	}
	return n, nil
}

func floatValue(val *dsl.Value) (float64, error) {
	s := valueToString(val)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("需要数值，得到 %q", s)
	}
	return f, nil
}

func boolValue(val *dsl.Value) (bool, error) {
	switch strings.ToLower(valueToString(val)) {
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("需要布尔值 true/false，得到 %q", valueToString(val))
	}
}

func valueToString(val *dsl.Value) string {
	if val == nil {
		return ""
	}
	switch {
	case val.String != nil:
		return string(*val.String)
	case val.Number != nil:
		return *val.Number
	case val.Color != nil:
		return *val.Color
	case val.Ident != nil:
		return *val.Ident
	default:
		return ""
	}
}

func valueItems(val *dsl.Value) []*dsl.Value {
	if val == nil {
		return nil
	}
	if val.Array != nil {
		return val.Array.Values
	}
	return []*dsl.Value{val}
}

func valueToStringSlice(val *dsl.Value) []string {
	items := valueItems(val)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, valueToString(item))
	}
	return out
}
