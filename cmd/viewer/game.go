package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tsinghua-fib-lab/crossroad-sim/entity"
	"github.com/tsinghua-fib-lab/crossroad-sim/task"
)

const (
	screenWidth  = 960
	screenHeight = 720

	baseScale = 18.0 // 全景镜头下每世界单位对应的像素数
)

// 镜头模式
const (
	cameraOverview = iota // 全景
	cameraFollow          // 跟随1号车
	cameraCloseUp         // 路口特写
)

var statusColors = map[entity.CarStatus]color.RGBA{
	entity.CarStatusWaiting: {0xd9, 0x53, 0x4f, 0xff},
	entity.CarStatusMoving:  {0x5c, 0xb8, 0x5c, 0xff},
	entity.CarStatusTurning: {0x5b, 0xc0, 0xde, 0xff},
	entity.CarStatusStopped: {0xf0, 0xad, 0x4e, 0xff},
}

var lightColors = map[entity.LightState]color.RGBA{
	entity.LightStateRed:    {0xff, 0x30, 0x30, 0xff},
	entity.LightStateYellow: {0xff, 0xd7, 0x00, 0xff},
	entity.LightStateGreen:  {0x30, 0xee, 0x30, 0xff},
}

// Game 可视化界面状态
// 说明：每帧推进一步仿真，因此实际仿真速度与显示刷新率一致，
// 配置中的步长间隔取1/60时即为实时
type Game struct {
	ctx *task.Context

	scenery []building

	cameraMode int
	night      bool
	paused     bool

	zoom       float64
	panX, panZ float64 // 全景镜头的平移量（世界单位）

	dragging             bool
	lastMouseX, lastMouseY int
}

func NewGame(ctx *task.Context, seed uint64) *Game {
	geo := ctx.RuntimeConfig().Geometry
	return &Game{
		ctx:        ctx,
		scenery:    generateScenery(seed, geo),
		cameraMode: cameraOverview,
		zoom:       1,
	}
}

// Update 每帧状态更新
// 功能：处理输入并推进一步仿真
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.cameraMode = cameraOverview
		g.zoom = 1
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.cameraMode = cameraFollow
		g.zoom = 2
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.cameraMode = cameraCloseUp
		g.zoom = 2.5
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.night = !g.night
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		tl := g.ctx.JunctionManager().Main().TrafficLight()
		tl.SetOk(!tl.Ok()) // 下一个准备阶段生效
	}

	// 鼠标拖拽平移（仅全景镜头）
	if g.cameraMode == cameraOverview {
		x, y := ebiten.CursorPosition()
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.dragging = true
			g.lastMouseX, g.lastMouseY = x, y
		}
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			g.dragging = false
		}
		if g.dragging {
			scale := baseScale * g.zoom
			g.panX -= float64(x-g.lastMouseX) / scale
			g.panZ -= float64(y-g.lastMouseY) / scale
			g.lastMouseX, g.lastMouseY = x, y
		}
	}
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.zoom *= math.Pow(1.1, wheelY)
		g.zoom = math.Min(math.Max(g.zoom, 0.4), 8)
	}

	if !g.paused {
		g.ctx.Step()
	}
	return nil
}

// cameraCenter 当前镜头对准的世界坐标
func (g *Game) cameraCenter() (float64, float64) {
	switch g.cameraMode {
	case cameraFollow:
		pos := g.ctx.CarManager().Get(1).XYZ()
		return pos.X, pos.Z
	case cameraCloseUp:
		return 0, 0
	default:
		return g.panX, g.panZ
	}
}

// worldToScreen 世界坐标（XZ平面）到屏幕坐标的映射
func (g *Game) worldToScreen(x, z float64) (float32, float32) {
	cx, cz := g.cameraCenter()
	scale := baseScale * g.zoom
	return float32(screenWidth/2 + (x-cx)*scale),
		float32(screenHeight/2 + (z-cz)*scale)
}

func (g *Game) Draw(screen *ebiten.Image) {
	geo := g.ctx.RuntimeConfig().Geometry
	scale := float32(baseScale * g.zoom)

	// 地面
	ground := color.RGBA{0x6a, 0x9a, 0x52, 0xff}
	if g.night {
		ground = color.RGBA{0x16, 0x22, 0x14, 0xff}
	}
	screen.Fill(ground)

	g.drawScenery(screen)
	g.drawRoads(screen, geo.HalfWidth, geo.ExitThreshold)
	g.drawLights(screen, geo.HalfWidth, scale)
	g.drawCars(screen, scale)
	g.drawHUD(screen)
}

// drawRoads 绘制两条正交道路、车道分隔线与停止线
func (g *Game) drawRoads(screen *ebiten.Image, halfWidth, exit float64) {
	road := color.RGBA{0x44, 0x44, 0x48, 0xff}
	if g.night {
		road = color.RGBA{0x22, 0x22, 0x26, 0xff}
	}
	extent := exit + 8
	// 水平道路
	x0, y0 := g.worldToScreen(-extent, -halfWidth)
	x1, y1 := g.worldToScreen(extent, halfWidth)
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, road, false)
	// 垂直道路
	x0, y0 = g.worldToScreen(-halfWidth, -extent)
	x1, y1 = g.worldToScreen(halfWidth, extent)
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, road, false)

	// 道路轴线（黄色分隔线，路口内不画）
	divider := color.RGBA{0xd4, 0xb1, 0x06, 0xff}
	for _, seg := range [][4]float64{
		{-extent, 0, -halfWidth, 0},
		{halfWidth, 0, extent, 0},
		{0, -extent, 0, -halfWidth},
		{0, halfWidth, 0, extent},
	} {
		sx0, sy0 := g.worldToScreen(seg[0], seg[1])
		sx1, sy1 := g.worldToScreen(seg[2], seg[3])
		vector.StrokeLine(screen, sx0, sy0, sx1, sy1, 2, divider, false)
	}

	// 停止线：画在每个进口道的来车半幅上
	stop := color.RGBA{0xee, 0xee, 0xee, 0xff}
	for _, a := range g.ctx.ApproachManager().Approaches() {
		travel := a.Travel()
		// 停止线中点位于来车半幅中央、路口边缘处
		perpX, perpZ := travel.Z, -travel.X
		mx := -travel.X*halfWidth - perpX*halfWidth/2
		mz := -travel.Z*halfWidth - perpZ*halfWidth/2
		sx0, sy0 := g.worldToScreen(mx-perpX*halfWidth/2, mz-perpZ*halfWidth/2)
		sx1, sy1 := g.worldToScreen(mx+perpX*halfWidth/2, mz+perpZ*halfWidth/2)
		vector.StrokeLine(screen, sx0, sy0, sx1, sy1, 3, stop, false)
	}
}

// drawLights 绘制四个进口道的信号灯
// 说明：灯放在进口道停止线右前方的路缘上
func (g *Game) drawLights(screen *ebiten.Image, halfWidth float64, scale float32) {
	for _, a := range g.ctx.ApproachManager().Approaches() {
		state, _ := a.Light()
		travel := a.Travel()
		perpX, perpZ := travel.Z, -travel.X
		lx := -travel.X*halfWidth + perpX*(halfWidth+1.5)
		lz := -travel.Z*halfWidth + perpZ*(halfWidth+1.5)
		sx, sy := g.worldToScreen(lx, lz)
		vector.DrawFilledCircle(screen, sx, sy, 0.45*scale, color.RGBA{0x20, 0x20, 0x20, 0xff}, true)
		vector.DrawFilledCircle(screen, sx, sy, 0.3*scale, lightColors[state], true)
	}
}

// drawCars 绘制全部车辆
// 说明：圆点按显示状态着色，短线指示朝向；夜景下在车头加一点灯光
func (g *Game) drawCars(screen *ebiten.Image, scale float32) {
	for _, c := range g.ctx.CarManager().Cars() {
		pos := c.XYZ()
		sx, sy := g.worldToScreen(pos.X, pos.Z)
		vector.DrawFilledCircle(screen, sx, sy, 0.7*scale, statusColors[c.Status()], true)

		h := c.Heading()
		tx := pos.X + math.Cos(h)*1.2
		tz := pos.Z + math.Sin(h)*1.2
		ex, ey := g.worldToScreen(tx, tz)
		vector.StrokeLine(screen, sx, sy, ex, ey, 2, color.RGBA{0x10, 0x10, 0x10, 0xff}, true)
		if g.night {
			vector.DrawFilledCircle(screen, ex, ey, 0.25*scale, color.RGBA{0xff, 0xf5, 0xc0, 0xc0}, true)
		}
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	c := g.ctx.Clock()
	tl := g.ctx.JunctionManager().Main().TrafficLight()
	hour, minute, second := c.GetHourMinuteSecond()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"step %d  t=%d:%02d:%05.2f  fps %.1f",
		c.InternalStep, hour, minute, second, ebiten.ActualFPS()), 8, 8)
	if tl.Ok() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"signal: %v %v, %.1fs left", tl.ActiveAxis(), tl.ColorPhase(), tl.RemainingTime()), 8, 24)
	} else {
		ebitenutil.DebugPrintAt(screen, "signal: off (all green)", 8, 24)
	}
	counts := g.ctx.CarManager().StatusCounts()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"cars: %d waiting, %d moving, %d turning, %d stopped",
		counts[entity.CarStatusWaiting], counts[entity.CarStatusMoving],
		counts[entity.CarStatusTurning], counts[entity.CarStatusStopped]), 8, 40)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", 8, 56)
	}
	ebitenutil.DebugPrintAt(screen,
		"[1] overview [2] follow [3] close-up [N] night [L] lights [Space] pause",
		8, screenHeight-20)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
