package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Hex 返回 #rrggbb 形式。
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Mix 按比例 t（0..1）把 c 混向 o。
func (c Color) Mix(o Color, t float64) Color {
	lerp := func(a, b int) int { return int(float64(a) + (float64(b)-float64(a))*t + 0.5) }
	return Color{R: lerp(c.R, o.R), G: lerp(c.G, o.G), B: lerp(c.B, o.B)}
}

var (
	White = Color{R: 255, G: 255, B: 255}
	Black = Color{R: 0, G: 0, B: 0}

	// 与 shadcn 默认主题接近的几个语义色。
	cardColor       = White
	foregroundColor = Color{R: 9, G: 9, B: 11}
	mutedColor      = Color{R: 244, G: 244, B: 245}
	mutedForeground = Color{R: 113, G: 113, B: 122}
	primaryColor    = Color{R: 24, G: 24, B: 27}
	borderColor     = Color{R: 228, G: 228, B: 231}
	canvasColor     = Color{R: 250, G: 250, B: 250}
)

// tailwind 调色板的 500 档，其余档位由混白或混黑近似。
var paletteBase = map[string]Color{
	"slate":   {R: 100, G: 116, B: 139},
	"gray":    {R: 107, G: 114, B: 128},
	"zinc":    {R: 113, G: 113, B: 122},
	"red":     {R: 239, G: 68, B: 68},
	"orange":  {R: 249, G: 115, B: 22},
	"amber":   {R: 245, G: 158, B: 11},
	"yellow":  {R: 234, G: 179, B: 8},
	"green":   {R: 34, G: 197, B: 94},
	"emerald": {R: 16, G: 185, B: 129},
	"teal":    {R: 20, G: 184, B: 166},
	"sky":     {R: 14, G: 165, B: 233},
	"blue":    {R: 59, G: 130, B: 246},
	"indigo":  {R: 99, G: 102, B: 241},
	"violet":  {R: 139, G: 92, B: 246},
	"purple":  {R: 168, G: 85, B: 247},
	"pink":    {R: 236, G: 72, B: 153},
	"rose":    {R: 244, G: 63, B: 94},
}

var semanticColors = map[string]Color{
	"card":               cardColor,
	"background":         cardColor,
	"card-foreground":    foregroundColor,
	"foreground":         foregroundColor,
	"muted":              mutedColor,
	"secondary":          mutedColor,
	"accent":             mutedColor,
	"muted-foreground":   mutedForeground,
	"primary":            primaryColor,
	"primary-foreground": canvasColor,
	"border":             borderColor,
	"white":              White,
	"black":              Black,
}

// ParseColor 解析 #rgb、#rrggbb、#rrggbbaa 以及 rgb()/rgba()，忽略透明度。
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	if strings.HasPrefix(v, "rgb") {
		return parseRGBFunc(v)
	}
	hex := strings.TrimPrefix(v, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
		hex = hex[:6]
	default:
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析: %w", value, err)
	}
	return Color{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff)}, nil
}

func parseRGBFunc(v string) (Color, error) {
	open, stop := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || stop < open {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", v)
	}
	parts := strings.FieldsFunc(v[open+1:stop], func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
	if len(parts) < 3 {
		return Color{}, fmt.Errorf("颜色值 %s 无法解析", v)
	}
	var rgb [3]int
	for i := range rgb {
		n, err := strconv.Atoi(parts[i])
		if err != nil || n < 0 || n > 255 {
			return Color{}, fmt.Errorf("颜色值 %s 无法解析", v)
		}
		rgb[i] = n
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// ResolveColor 把卡片样式里的颜色记号（原始颜色、bg-[..]、text-[..]、
// bg-card、bg-blue-500 等）近似为 RGB。无法识别时返回 fallback。
func ResolveColor(token string, fallback Color) Color {
	token = strings.TrimSpace(token)
	if token == "" {
		return fallback
	}
	if c, err := ParseColor(token); err == nil {
		return c
	}
	name := token
	for _, prefix := range []string{"bg-", "text-", "border-"} {
		if strings.HasPrefix(name, prefix) {
			name = strings.TrimPrefix(name, prefix)
			break
		}
	}
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		raw := strings.ReplaceAll(name[1:len(name)-1], "_", " ")
		if c, err := ParseColor(raw); err == nil {
			return c
		}
		return fallback
	}
	// 透明度后缀（bg-card/80）只影响填充透明度，颜色本身忽略它。
	if i := strings.IndexByte(name, '/'); i >= 0 {
		name = name[:i]
	}
	if c, ok := semanticColors[name]; ok {
		return c
	}
	hue, shade := name, 500
	if i := strings.LastIndexByte(name, '-'); i > 0 {
		if n, err := strconv.Atoi(name[i+1:]); err == nil {
			hue, shade = name[:i], n
		}
	}
	base, ok := paletteBase[hue]
	if !ok {
		return fallback
	}
	switch {
	case shade < 500:
		return base.Mix(White, float64(500-shade)/500)
	case shade > 500:
		return base.Mix(Black, float64(shade-500)/600)
	default:
		return base
	}
}
