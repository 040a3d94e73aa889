package canvasrenderer

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ByLCY/bento/layout"
)

// 迷你图表的几何计算。输入为 px 坐标，负值按 0 处理。

func nonNegative(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v) {
			out[i] = v
		}
	}
	return out
}

// barRects 把柱子均匀排在 rect 内，柱高按最大值归一。
func barRects(rect layout.Rect, values []float64) []layout.Rect {
	if len(values) == 0 || rect.Width <= 0 || rect.Height <= 0 {
		return nil
	}
	heights := nonNegative(values)
	if peak := floats.Max(heights); peak > 0 {
		floats.Scale(rect.Height/peak, heights)
	}
	slot := rect.Width / float64(len(values))
	barWidth := slot * 0.6
	out := make([]layout.Rect, len(values))
	for i, h := range heights {
		out[i] = layout.Rect{
			X:      rect.X + float64(i)*slot + (slot-barWidth)/2,
			Y:      rect.Bottom() - h,
			Width:  barWidth,
			Height: h,
		}
	}
	return out
}

// linePoints 返回折线各点，横向均分，纵向按 [0, max] 映射。
func linePoints(rect layout.Rect, values []float64) [][2]float64 {
	if len(values) == 0 {
		return nil
	}
	ys := nonNegative(values)
	peak := floats.Max(ys)
	step := 0.0
	if len(values) > 1 {
		step = rect.Width / float64(len(values)-1)
	}
	out := make([][2]float64, len(values))
	for i, v := range ys {
		y := rect.Bottom()
		if peak > 0 {
			y -= v / peak * rect.Height
		}
		x := rect.X + float64(i)*step
		if len(values) == 1 {
			x = rect.X + rect.Width/2
		}
		out[i] = [2]float64{x, y}
	}
	return out
}

// pieBounds 返回每个扇区的起止角（弧度，从 12 点方向顺时针）。
// 总和为 0 时返回 nil。
func pieBounds(values []float64) [][2]float64 {
	shares := nonNegative(values)
	total := floats.Sum(shares)
	if total <= 0 {
		return nil
	}
	floats.Scale(2*math.Pi/total, shares)
	ends := make([]float64, len(shares))
	floats.CumSum(ends, shares)
	out := make([][2]float64, len(shares))
	start := 0.0
	for i, end := range ends {
		out[i] = [2]float64{start, end}
		start = end
	}
	return out
}

// arcPoint 返回圆心 (cx, cy)、半径 r、角度 a 处的点（y 轴向下）。
func arcPoint(cx, cy, r, a float64) (float64, float64) {
	return cx + r*math.Sin(a), cy - r*math.Cos(a)
}
