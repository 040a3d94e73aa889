package grid

// Shadow 是卡片阴影级别。
type Shadow string

const (
	ShadowNone Shadow = "none"
	ShadowSM   Shadow = "sm"
	ShadowMD   Shadow = "md"
	ShadowLG   Shadow = "lg"
	ShadowXL   Shadow = "xl"
)

var Shadows = []Shadow{ShadowNone, ShadowSM, ShadowMD, ShadowLG, ShadowXL}

func ParseShadow(s string) (Shadow, error) { return parseEnum("shadow", s, Shadows) }

// Radius 是卡片圆角级别。
type Radius string

const (
	RadiusNone Radius = "none"
	RadiusSM   Radius = "sm"
	RadiusMD   Radius = "md"
	RadiusLG   Radius = "lg"
	RadiusXL   Radius = "xl"
	RadiusFull Radius = "full"
)

var Radii = []Radius{RadiusNone, RadiusSM, RadiusMD, RadiusLG, RadiusXL, RadiusFull}

func ParseRadius(s string) (Radius, error) { return parseEnum("radius", s, Radii) }

// Animation 是卡片入场动画种类。
type Animation string

const (
	AnimationNone       Animation = "none"
	AnimationFadeIn     Animation = "fade-in"
	AnimationSlideUp    Animation = "slide-up"
	AnimationSlideDown  Animation = "slide-down"
	AnimationSlideLeft  Animation = "slide-left"
	AnimationSlideRight Animation = "slide-right"
	AnimationScaleUp    Animation = "scale-up"
	AnimationScaleDown  Animation = "scale-down"
	AnimationBounce     Animation = "bounce"
	AnimationPulse      Animation = "pulse"
	AnimationSpin       Animation = "spin"
)

// Animations lists every animation kind, "none" first.
var Animations = []Animation{
	AnimationNone,
	AnimationFadeIn,
	AnimationSlideUp,
	AnimationSlideDown,
	AnimationSlideLeft,
	AnimationSlideRight,
	AnimationScaleUp,
	AnimationScaleDown,
	AnimationBounce,
	AnimationPulse,
	AnimationSpin,
}

func ParseAnimation(s string) (Animation, error) { return parseEnum("animation", s, Animations) }

// HoverEffect 是鼠标悬停效果种类。
type HoverEffect string

const (
	HoverNone            HoverEffect = "none"
	HoverScale           HoverEffect = "scale"
	HoverLift            HoverEffect = "lift"
	HoverGlow            HoverEffect = "glow"
	HoverBorderGlow      HoverEffect = "border-glow"
	HoverBackgroundShift HoverEffect = "background-shift"
	HoverTextShift       HoverEffect = "text-shift"
)

// HoverEffects lists every hover effect, "none" first.
var HoverEffects = []HoverEffect{
	HoverNone,
	HoverScale,
	HoverLift,
	HoverGlow,
	HoverBorderGlow,
	HoverBackgroundShift,
	HoverTextShift,
}

func ParseHoverEffect(s string) (HoverEffect, error) { return parseEnum("hover", s, HoverEffects) }

// CardStyle 描述卡片外观。时长与延迟单位为秒。
// 模型不校验范围；下面的 UI 范围常量只供编辑器夹取输入。
type CardStyle struct {
	Shadow            Shadow      `json:"shadow"`
	Border            bool        `json:"border"`
	BorderWidth       int         `json:"borderWidth"`
	Radius            Radius      `json:"borderRadius"`
	Glass             bool        `json:"glassmorphism"`
	GlassOpacity      float64     `json:"glassmorphismOpacity"`
	Background        string      `json:"backgroundColor"`
	TextColor         string      `json:"textColor"`
	EqualHeight       bool        `json:"equalHeight"`
	Animation         Animation   `json:"animation"`
	AnimationDuration float64     `json:"animationDuration"`
	AnimationDelay    float64     `json:"animationDelay"`
	Hover             HoverEffect `json:"hoverEffect"`
	HoverDuration     float64     `json:"hoverTransitionDuration"`
}

// UI 输入范围。
const (
	MinAnimationDuration = 0.1
	MaxAnimationDuration = 2.0
	MinAnimationDelay    = 0.0
	MaxAnimationDelay    = 2.0
	MinGlassOpacity      = 0.1
	MaxGlassOpacity      = 0.9
	MinHoverDuration     = 0.1
	MaxHoverDuration     = 1.0
)

// DefaultStyle 返回新卡片使用的默认外观。
func DefaultStyle() CardStyle {
	return CardStyle{
		Shadow:            ShadowMD,
		Border:            true,
		BorderWidth:       1,
		Radius:            RadiusMD,
		Glass:             false,
		GlassOpacity:      0.1,
		Background:        "bg-card",
		TextColor:         "text-card-foreground",
		EqualHeight:       true,
		Animation:         AnimationNone,
		AnimationDuration: 0.5,
		AnimationDelay:    0,
		Hover:             HoverNone,
		HoverDuration:     0.3,
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
