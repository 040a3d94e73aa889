package grid

import "fmt"

// 本文件定义断点与按断点取值的 Responsive 值类型。

// Breakpoint 表示三个屏幕尺寸档位之一。
type Breakpoint string

const (
	SM Breakpoint = "sm"
	MD Breakpoint = "md"
	LG Breakpoint = "lg"
)

// Breakpoints 是固定的递增顺序：生成代码时逐档与上一档比较。
var Breakpoints = [3]Breakpoint{SM, MD, LG}

func (b Breakpoint) String() string { return string(b) }

// Valid reports whether b is one of SM, MD, LG.
func (b Breakpoint) Valid() bool {
	return b == SM || b == MD || b == LG
}

// ParseBreakpoint 解析 sm/md/lg（大小写不敏感）。
func ParseBreakpoint(s string) (Breakpoint, error) {
	return parseEnum("breakpoint", s, Breakpoints[:])
}

// Responsive 为每个断点各保存一个整数值。三个字段在编译期固定，
// 因而不存在“缺少某个断点”的中间状态。
type Responsive struct {
	SM int `json:"sm"`
	MD int `json:"md"`
	LG int `json:"lg"`
}

// Uniform 返回三个断点取同一值的 Responsive。
func Uniform(v int) Responsive { return Responsive{SM: v, MD: v, LG: v} }

// Get 返回断点 bp 上的值；未知断点按 SM 处理。
func (r Responsive) Get(bp Breakpoint) int {
	switch bp {
	case MD:
		return r.MD
	case LG:
		return r.LG
	default:
		return r.SM
	}
}

// With 返回替换了 bp 档取值的新值，接收者本身不变。
func (r Responsive) With(bp Breakpoint, v int) Responsive {
	switch bp {
	case SM:
		r.SM = v
	case MD:
		r.MD = v
	case LG:
		r.LG = v
	}
	return r
}

// Normalized 把小于 min 的条目替换为 min。
func (r Responsive) Normalized(min int) Responsive {
	for _, bp := range Breakpoints {
		if r.Get(bp) < min {
			r = r.With(bp, min)
		}
	}
	return r
}

// Clamped 把每个条目限制在 [lo, hi]。
func (r Responsive) Clamped(lo, hi int) Responsive {
	for _, bp := range Breakpoints {
		v := r.Get(bp)
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		r = r.With(bp, v)
	}
	return r
}

// IsUniform reports whether all three breakpoints share one value.
func (r Responsive) IsUniform() bool { return r.SM == r.MD && r.MD == r.LG }

func (r Responsive) String() string {
	return fmt.Sprintf("{sm:%d md:%d lg:%d}", r.SM, r.MD, r.LG)
}

// 列数与间距的名义范围，模型本身不拒绝越界值，仅在解析文件时夹取。
const (
	MinColumns = 1
	MaxColumns = 12
	MinGap     = 0
	MaxGap     = 8
)
