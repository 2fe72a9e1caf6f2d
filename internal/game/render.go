package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/core"
)

// Visual characters for rendering
const (
	BearChar     = '█'
	LogChar      = '▓'
	GroundChar   = '▀'
	SoilChar     = '░'
	MountainChar = '▲'
	StarChar     = '*'
	MoonChar     = '◐'
	FireflyChar  = '•'
)

// shade is a day color and the night color it blends into.
type shade struct {
	day, night core.Color
}

func (s shade) at(blend float64) core.Color {
	return core.LerpColor(s.day, s.night, blend)
}

var (
	skyShade          = shade{core.RGB(135, 206, 235), core.RGB(15, 15, 45)}
	farMountainShade  = shade{core.RGB(107, 163, 104), core.RGB(25, 40, 30)}
	nearMountainShade = shade{core.RGB(123, 184, 120), core.RGB(35, 55, 40)}
	groundShade       = shade{core.RGB(93, 138, 78), core.RGB(20, 45, 25)}
	soilShade         = shade{core.RGB(74, 115, 64), core.RGB(15, 35, 20)}
	tuftShade         = shade{core.RGB(61, 98, 52), core.RGB(12, 30, 15)}
	grassShade        = shade{core.RGB(107, 163, 104), core.RGB(25, 55, 30)}

	starColor    = core.RGB(255, 255, 220)
	moonColor    = core.RGB(255, 248, 200)
	cloudColor   = core.RGB(255, 255, 255)
	fireflyColor = core.RGB(200, 255, 100)
	hudDay       = core.RGB(51, 51, 51)
	hudNight     = core.RGB(221, 221, 221)
	alertColor   = core.RGB(230, 57, 70)
)

// Colors that switch rather than blend once it is dark.
type palette struct {
	log, logDark, body, dark, snout core.Color
}

var (
	dayPalette = palette{
		log:     core.RGB(0x5C, 0x3A, 0x1E),
		logDark: core.RGB(0x6B, 0x42, 0x26),
		body:    core.RGB(0x8B, 0x5E, 0x3C),
		dark:    core.RGB(0x6B, 0x42, 0x26),
		snout:   core.RGB(0xD4, 0x95, 0x6A),
	}
	nightPalette = palette{
		log:     core.RGB(0x4A, 0x2E, 0x14),
		logDark: core.RGB(0x5A, 0x36, 0x20),
		body:    core.RGB(0x7A, 0x52, 0x32),
		dark:    core.RGB(0x5A, 0x38, 0x20),
		snout:   core.RGB(0xC4, 0x85, 0x5A),
	}
)

// numStars is the size of the night sky star field.
const numStars = 50

// viewport maps world units onto screen cells.
type viewport struct {
	dst    *core.Screen
	sx, sy float64
}

func newViewport(dst *core.Screen, field config.Field) viewport {
	return viewport{
		dst: dst,
		sx:  float64(dst.Width()) / field.Width,
		sy:  float64(dst.Height()) / field.Height,
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// fill paints the cells covering a world rectangle, at least one cell.
func (v viewport) fill(x, y, w, h float64, r rune, c core.Color) {
	x0, y0 := v.col(x), v.row(y)
	x1 := core.Max(v.col(x+w), x0+1)
	y1 := core.Max(v.row(y+h), y0+1)
	v.dst.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), r, c)
}

// point paints the cell containing a world point.
func (v viewport) point(x, y float64, r rune, c core.Color) {
	v.dst.SetColored(v.col(x), v.row(y), r, c)
}

// Render draws a snapshot into the screen buffer. It reads the snapshot
// only; every time-based effect is derived from the tick counter.
func Render(dst *core.Screen, snap Snapshot, cfg config.BearConfig) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := newViewport(dst, cfg.Field)
	n := snap.NightBlend
	tick := float64(snap.Tick)

	drawSky(v, cfg, tick, n)
	drawMountains(v, cfg, tick, n)
	drawGround(v, cfg, tick, snap.Speed, n)
	if n > 0.5 {
		drawFireflies(v, cfg, tick, n)
	}

	pal := dayPalette
	if n > 0.5 {
		pal = nightPalette
	}
	for _, o := range snap.Obstacles {
		drawLog(v, cfg, o, pal)
	}
	drawBear(v, cfg, snap.Runner, pal)

	drawHUD(dst, snap, n)
	switch snap.Phase {
	case PhaseIdle:
		drawCenteredMessage(dst, "BEAR RUN", "Press SPACE to start",
			fmt.Sprintf("Reach %d for a surprise...", cfg.Night.Threshold))
	case PhaseDead:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d", snap.Score, snap.Best),
			"SPACE to retry")
	}
}

func drawSky(v viewport, cfg config.BearConfig, tick, n float64) {
	if n > 0.1 {
		for i := 0; i < numStars; i++ {
			x, y, phase, speed := star(i, cfg.Field)
			alpha := n * (0.5 + 0.5*math.Sin(phase+tick*speed))
			switch {
			case alpha > 0.6:
				v.point(x, y, StarChar, starColor)
			case alpha > 0.3:
				v.point(x, y, '·', starColor)
			}
		}
	}

	if n > 0.3 {
		v.point(cfg.Field.Width*0.85, 50, MoonChar, moonColor)
	}

	cloudAlpha := math.Max(1-n*1.5, 0)
	if cloudAlpha > 0 {
		c := core.LerpColor(skyShade.at(n), cloudColor, cloudAlpha)
		span := cfg.Field.Width + 100
		cx1 := math.Mod(tick*0.3, span) - 50
		cx2 := math.Mod(tick*0.2+300, span) - 50
		v.fill(cx1, 40, 40, 12, '▄', c)
		v.fill(cx2, 75, 40, 12, '▄', c)
	}
}

// star returns a fixed pseudo-random star so the renderer needs no state.
func star(i int, field config.Field) (x, y, phase, speed float64) {
	h := uint32(i)*2654435761 + 0x9E3779B9
	next := func() float64 {
		h ^= h << 13
		h ^= h >> 17
		h ^= h << 5
		return float64(h) / float64(math.MaxUint32)
	}
	x = next() * field.Width
	y = next() * (field.GroundY - 20)
	phase = next() * 2 * math.Pi
	speed = next()*0.03 + 0.01
	return x, y, phase, speed
}

// drawPeaks draws a row of triangular mountains scrolling at rate.
func drawPeaks(v viewport, ground, tick, rate, spacing, base, height float64, count int, c core.Color) {
	shift := math.Mod(tick*rate, spacing)
	for i := 0; i < count; i++ {
		mx := float64(i)*spacing - shift
		for x := v.col(mx); x < v.col(mx+base); x++ {
			wx := (float64(x) + 0.5) / v.sx
			dist := math.Abs(wx - (mx + base/2))
			top := ground - height*(1-dist/(base/2))
			if top >= ground {
				continue
			}
			for y := v.row(top); y < v.row(ground); y++ {
				v.dst.SetColored(x, y, MountainChar, c)
			}
		}
	}
}

func drawMountains(v viewport, cfg config.BearConfig, tick, n float64) {
	ground := cfg.Field.GroundY
	drawPeaks(v, ground, tick, 0.5, 250, 160, 80, 4, farMountainShade.at(n))
	drawPeaks(v, ground, tick, 0.8, 200, 100, 50, 5, nearMountainShade.at(n))
}

func drawGround(v viewport, cfg config.BearConfig, tick, speed, n float64) {
	// Ground and soil are laid out in whole rows: one grass line, soil below.
	gr := v.row(cfg.Field.GroundY)
	w := v.dst.Width()

	v.dst.DrawHLine(0, gr, w, GroundChar, groundShade.at(n))
	for y := gr + 1; y < v.dst.Height(); y++ {
		v.dst.DrawHLine(0, y, w, SoilChar, soilShade.at(n))
	}

	for i := 0; i < 20; i++ {
		gx := math.Mod(float64(i)*45-math.Mod(tick*speed, 45)+900, 900) - 50
		v.dst.SetColored(v.col(gx), gr+1, '-', tuftShade.at(n))
	}
	for i := 0; i < 12; i++ {
		gx := math.Mod(float64(i)*70-math.Mod(tick*speed*0.8, 70)+900, 900) - 60
		v.dst.SetColored(v.col(gx), gr-1, '"', grassShade.at(n))
	}
}

func drawFireflies(v viewport, cfg config.BearConfig, tick, n float64) {
	for i := 0; i < 6; i++ {
		fi := float64(i)
		fx := (math.Sin(tick*0.02+fi*2.5)*0.5 + 0.5) * cfg.Field.Width
		fy := (math.Cos(tick*0.015+fi*3.1)*0.3 + 0.5) * (cfg.Field.GroundY - 30)
		fa := (math.Sin(tick*0.05+fi*1.7)*0.5 + 0.5) * n
		if fa > 0.3 {
			v.point(fx, fy, FireflyChar, fireflyColor)
		}
	}
}

func drawLog(v viewport, cfg config.BearConfig, o Obstacle, pal palette) {
	ground := cfg.Field.GroundY
	oc := cfg.Obstacles
	v.fill(o.X, ground-oc.ShortHeight, oc.Width, oc.ShortHeight, LogChar, pal.log)
	if o.Tall {
		stack := oc.TallHeight - oc.ShortHeight
		v.fill(o.X+2, ground-oc.TallHeight, oc.Width-4, stack, LogChar, pal.logDark)
	}
}

func drawBear(v viewport, cfg config.BearConfig, r Runner, pal palette) {
	bx, by := r.X, r.Y

	v.fill(bx, by-32, 28, 24, BearChar, pal.body)    // body
	v.fill(bx+20, by-42, 18, 18, BearChar, pal.body) // head
	v.fill(bx+20, by-48, 6, 6, '▄', pal.dark)        // ears
	v.fill(bx+32, by-48, 6, 6, '▄', pal.dark)
	v.fill(bx+30, by-36, 10, 8, '▀', pal.snout)

	legs := '▀'
	if !r.Airborne {
		if int(math.Floor(r.Frame))%4 < 2 {
			legs = '▚'
		} else {
			legs = '▞'
		}
	}
	v.fill(bx+2, by-8, 28, 8, legs, pal.dark)
}

func drawHUD(dst *core.Screen, snap Snapshot, n float64) {
	c := hudDay
	if n > 0.5 {
		c = hudNight
	}
	score := fmt.Sprintf("Score: %d", snap.Score)
	best := fmt.Sprintf("Best: %d", snap.Best)
	w := core.Max(len(score), len(best))
	dst.DrawText(dst.Width()-w-2, 0, score, c)
	if dst.Height() > 1 {
		dst.DrawText(dst.Width()-w-2, 1, best, c)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len(title)
	for _, l := range lines {
		boxW = core.Max(boxW, len(l))
	}
	boxW += 4
	boxH := len(lines) + 4
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.Color{})
	dst.DrawBox(box, core.Color{})
	dst.DrawTextCentered(box.Y+1, title, alertColor)
	for i, l := range lines {
		dst.DrawTextCentered(box.Y+3+i, l, core.Color{})
	}
}
