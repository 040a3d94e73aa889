package layout

import "github.com/ByLCY/bento/grid"

// 预览容器宽度（px），与 Tailwind 的 max-w-sm / max-w-2xl / max-w-5xl 对应。
var containerWidths = map[grid.Breakpoint]float64{
	grid.SM: 384,
	grid.MD: 672,
	grid.LG: 1024,
}

const (
	// GapUnit 是一个 Tailwind 间距单位的像素数。
	GapUnit = 4.0
	// ContainerPadding 是容器内边距（p-4）。
	ContainerPadding = 16.0
	// CardPadding 是卡片内容区内边距（CardContent 的 p-4）。
	CardPadding = 16.0
	// DefaultRowHeight 是一个网格行的默认高度。
	DefaultRowHeight = 160.0
)

// ContainerWidth 返回断点对应的预览宽度，未知断点返回 0。
func ContainerWidth(bp grid.Breakpoint) float64 {
	return containerWidths[bp]
}

// Options 配置一次放置计算。
type Options struct {
	Breakpoint grid.Breakpoint
	Width      float64 // 容器宽度（px），0 表示按断点取默认
	RowHeight  float64 // 行高（px），0 表示 DefaultRowHeight
	Typesetter Typesetter
	Debug      DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Occupancy bool // 在结果中附带网格占用图
}

// Typesetter 负责根据宽度约束将文本拆成可绘制的行。
type Typesetter interface {
	LayoutLines(content string, width, fontSize float64, bold bool) ([]TextLine, error)
}

func (o Options) withDefaults() Options {
	if o.Breakpoint == "" {
		o.Breakpoint = grid.LG
	}
	if o.Width <= 0 {
		o.Width = ContainerWidth(o.Breakpoint)
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.Typesetter == nil {
		o.Typesetter = EstimateTypesetter{}
	}
	return o
}
