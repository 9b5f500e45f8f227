package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/config"
	"github.com/tsinghua-fib-lab/crossroad-sim/utils/randengine"
)

// building 纯装饰性的街区建筑
type building struct {
	x, z float64 // 左上角（世界坐标）
	w, d float64 // 宽与深
	day   color.RGBA
	night color.RGBA
}

var buildingPalette = []struct {
	day    color.RGBA
	night  color.RGBA
	weight float64
}{
	{color.RGBA{0x9b, 0x8a, 0x7a, 0xff}, color.RGBA{0x3a, 0x34, 0x30, 0xff}, 4}, // 砖楼
	{color.RGBA{0xb8, 0xb0, 0xa6, 0xff}, color.RGBA{0x44, 0x42, 0x40, 0xff}, 3}, // 混凝土
	{color.RGBA{0x7f, 0x96, 0xa8, 0xff}, color.RGBA{0x2e, 0x3a, 0x46, 0xff}, 2}, // 玻璃幕墙
	{color.RGBA{0x74, 0x64, 0x58, 0xff}, color.RGBA{0x2c, 0x26, 0x22, 0xff}, 1}, // 老宅
}

// generateScenery 生成四个街角的装饰建筑
// 功能：在道路以外的四个象限里按随机分布摆放建筑
// 参数：seed-随机种子，geo-路口几何配置
// 返回：建筑列表
// 说明：同一种子的布局完全一致，仿真状态不受影响
func generateScenery(seed uint64, geo config.Geometry) []building {
	e := randengine.New(seed)
	margin := geo.HalfWidth + 2 // 建筑退离路缘
	extent := geo.ExitThreshold + 8

	weights := make([]float64, len(buildingPalette))
	for i, p := range buildingPalette {
		weights[i] = p.weight
	}

	buildings := make([]building, 0)
	for _, sx := range []float64{-1, 1} {
		for _, sz := range []float64{-1, 1} {
			n := 3 + int(e.DiscreteDistribution([]float64{1, 1, 1}))
			for i := 0; i < n; i++ {
				w := e.RangeFloat64(3, 7)
				d := e.RangeFloat64(3, 7)
				x := e.RangeFloat64(margin, extent-w)
				z := e.RangeFloat64(margin, extent-d)
				p := buildingPalette[e.DiscreteDistribution(weights)]
				buildings = append(buildings, building{
					x: sx * x, z: sz * z,
					w: sx * w, d: sz * d,
					day: p.day, night: p.night,
				})
			}
		}
	}
	return buildings
}

// drawScenery 绘制装饰建筑
func (g *Game) drawScenery(screen *ebiten.Image) {
	for _, b := range g.scenery {
		x0, y0 := g.worldToScreen(b.x, b.z)
		x1, y1 := g.worldToScreen(b.x+b.w, b.z+b.d)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		c := b.day
		if g.night {
			c = b.night
		}
		vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, c, false)
	}
}
