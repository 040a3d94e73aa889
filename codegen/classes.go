package codegen

import (
	"math"
	"strconv"
	"strings"

	"github.com/ByLCY/bento/grid"
)

// 本文件提供由卡片样式推导 class 与内联样式的纯函数，
// 编辑器预览与生成代码共用，保证两者外观一致。

// Decl 是一条内联样式声明，Prop 使用 React 的驼峰写法。
type Decl struct {
	Prop  string
	Value string
}

// Style 是有序的声明列表，迭代顺序固定，便于生成确定的文本。
type Style []Decl

// Map returns the declarations keyed by property.
func (s Style) Map() map[string]string {
	out := make(map[string]string, len(s))
	for _, d := range s {
		out[d.Prop] = d.Value
	}
	return out
}

// JSX 渲染为 style={{ ... }} 属性值（不含 style=）。空样式返回空串。
func (s Style) JSX() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = d.Prop + ": '" + strings.ReplaceAll(d.Value, "'", `\'`) + "'"
	}
	return "{{ " + strings.Join(parts, ", ") + " }}"
}

// ShadowClass maps a shadow level to its utility class; none yields "".
func ShadowClass(s grid.Shadow) string {
	switch s {
	case grid.ShadowNone:
		return ""
	case grid.ShadowSM:
		return "shadow-sm"
	case grid.ShadowLG:
		return "shadow-lg"
	case grid.ShadowXL:
		return "shadow-xl"
	default:
		return "shadow"
	}
}

// RadiusClass maps a radius level to its utility class.
func RadiusClass(r grid.Radius) string {
	switch r {
	case grid.RadiusNone:
		return "rounded-none"
	case grid.RadiusSM:
		return "rounded-sm"
	case grid.RadiusLG:
		return "rounded-lg"
	case grid.RadiusXL:
		return "rounded-xl"
	case grid.RadiusFull:
		return "rounded-full"
	default:
		return "rounded-md"
	}
}

// GlassStyle 返回毛玻璃效果的内联样式，未启用时为空。
func GlassStyle(enabled bool, opacity float64) Style {
	if !enabled {
		return nil
	}
	return Style{
		{"backdropFilter", "blur(10px)"},
		{"backgroundColor", "rgba(255, 255, 255, " + formatFloat(opacity) + ")"},
	}
}

// AnimationName 返回关键帧名称，none 或未知取值返回空串。
func AnimationName(a grid.Animation) string {
	switch a {
	case grid.AnimationFadeIn:
		return "fadeIn"
	case grid.AnimationSlideUp:
		return "slideUp"
	case grid.AnimationSlideDown:
		return "slideDown"
	case grid.AnimationSlideLeft:
		return "slideLeft"
	case grid.AnimationSlideRight:
		return "slideRight"
	case grid.AnimationScaleUp:
		return "scaleUp"
	case grid.AnimationScaleDown:
		return "scaleDown"
	case grid.AnimationBounce:
		return "bounce"
	case grid.AnimationPulse:
		return "pulse"
	case grid.AnimationSpin:
		return "spin"
	default:
		return ""
	}
}

// AnimationStyle 返回入场动画的内联样式。
func AnimationStyle(style grid.CardStyle) Style {
	name := AnimationName(style.Animation)
	if name == "" {
		return nil
	}
	return Style{
		{"animationName", name},
		{"animationDuration", seconds(style.AnimationDuration)},
		{"animationDelay", seconds(style.AnimationDelay)},
		{"animationFillMode", "both"},
	}
}

// HoverClass 返回悬停效果的 class 串，过渡时长以毫秒取整。
func HoverClass(style grid.CardStyle) string {
	var effect string
	switch style.Hover {
	case grid.HoverScale:
		effect = "hover:scale-105"
	case grid.HoverLift:
		effect = "hover:-translate-y-2"
	case grid.HoverGlow:
		effect = "hover:shadow-lg hover:shadow-primary/25"
	case grid.HoverBorderGlow:
		effect = "hover:border-primary hover:border-opacity-100"
	case grid.HoverBackgroundShift:
		effect = "hover:bg-primary/10"
	case grid.HoverTextShift:
		effect = "hover:text-primary"
	default:
		return ""
	}
	return "transition-all duration-" + strconv.Itoa(millis(style.HoverDuration)) + " " + effect
}

// CardClass 汇总卡片外观的 class，用于预览。
func CardClass(card grid.Card) string {
	style := card.Style
	var classes []string
	if !style.Glass {
		classes = appendNonEmpty(classes, ColorClass("bg", style.Background))
	}
	classes = appendNonEmpty(classes,
		ColorClass("text", style.TextColor),
		ShadowClass(style.Shadow),
		RadiusClass(style.Radius),
	)
	if style.Border {
		classes = append(classes, "border border-border")
		if style.BorderWidth > 1 {
			classes = append(classes, "border-"+strconv.Itoa(style.BorderWidth))
		}
	}
	if style.EqualHeight {
		classes = append(classes, "h-full")
	}
	classes = appendNonEmpty(classes, HoverClass(style))
	return strings.Join(classes, " ")
}

// ColorClass 把颜色标记转为 class：原始颜色值（#…、rgb(…)、hsl(…)）
// 写成任意值形式 prefix-[…]，其余标记视为现成的 class 原样返回。
func ColorClass(prefix, token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if IsRawColor(token) {
		return prefix + "-[" + strings.ReplaceAll(token, " ", "_") + "]"
	}
	return token
}

// IsRawColor reports whether token is a literal colour rather than a class.
func IsRawColor(token string) bool {
	t := strings.ToLower(strings.TrimSpace(token))
	return strings.HasPrefix(t, "#") ||
		strings.HasPrefix(t, "rgb(") || strings.HasPrefix(t, "rgba(") ||
		strings.HasPrefix(t, "hsl(") || strings.HasPrefix(t, "hsla(")
}

func appendNonEmpty(dst []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func seconds(v float64) string { return formatFloat(v) + "s" }

func millis(v float64) int { return int(math.Round(v * 1000)) }
