// 轴对齐矩形，用于车辆包围盒与冲突区的几何判定
package geometry

import "fmt"

// Rect 轴对齐矩形
// 功能：以左上角坐标和宽高描述一个矩形区域（屏幕坐标系，y轴向下）
type Rect struct {
	X, Y float64 // 左上角坐标
	W, H float64 // 宽（x方向）与高（y方向）
}

// NewCenteredRect 创建以(cx, cy)为中心、边长为w和h的矩形
func NewCenteredRect(cx, cy, w, h float64) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Overlaps 判断两个矩形是否重叠
// 功能：严格重叠判定，仅边界相接不算重叠；面积为0的矩形与任何矩形都不重叠
// 参数：o-另一个矩形
// 返回：true表示两矩形内部有公共区域
func (r Rect) Overlaps(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Move 返回平移(dx, dy)后的矩形，原矩形不变
func (r Rect) Move(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect{(%.2f,%.2f) %.2fx%.2f}", r.X, r.Y, r.W, r.H)
}
