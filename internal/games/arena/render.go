package arena

import (
	"fmt"
	"math"
	"unicode"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/wave-arena/internal/behavior"
	"github.com/vovakirdan/wave-arena/internal/collision"
	"github.com/vovakirdan/wave-arena/internal/core"
	"github.com/vovakirdan/wave-arena/internal/entity"
	"github.com/vovakirdan/wave-arena/internal/powerup"
)

// Glyphs.
const (
	PlayerChar     = '@'
	ProjectileChar = '•'
	ReticleChar    = '+'
	TreeChar       = '♣'
	TrunkChar      = '┃'
	RockChar       = '▲'
	BuildingChar   = '█'
)

// reticleDistance is how far from the player the aim marker is drawn.
const reticleDistance = 60

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.tooSmall {
		dst.DrawTextCenteredColor(dst.Height()/2, fmt.Sprintf("Screen too small (need %dx%d)", minScreenW, minScreenH), core.ColorRed)
		return
	}
	g.camera.Anchor = g.world.Player().Pos
	RenderWorld(dst, g.world, g.camera, hudRows)
	g.renderHUD(dst)

	switch {
	case g.world.Victory():
		g.renderBanner(dst, "VICTORY", fmt.Sprintf("Score %d  Kills %d", g.world.Score(), g.world.Kills()), core.ColorBrightGreen)
	case g.world.Over():
		g.renderBanner(dst, "GAME OVER", fmt.Sprintf("Wave %d  Score %d", g.world.Director().Wave(), g.world.Score()), core.ColorBrightRed)
	case g.paused:
		g.renderBanner(dst, "PAUSED", "P to resume", core.ColorYellow)
	}
	if g.debug {
		g.renderDebug(dst)
	}
}

// RenderWorld draws the world as seen by cam into dst, starting at row top.
func RenderWorld(dst *core.Screen, w *World, cam Camera, top int) {
	for _, ob := range w.Obstacles().All() {
		drawObstacle(dst, cam, top, ob)
	}

	tick := w.Tick()
	w.Registry().Each(func(e *entity.Entity) {
		x, y := cam.ToScreen(e.Pos)
		y += top
		if y < top {
			return
		}
		switch e.Tag {
		case entity.TagPowerUp:
			kind := powerup.Kind(e.PowerUp.Kind)
			c := core.ColorBrightYellow
			if !kind.IsWeapon() {
				c = core.ColorBrightGreen
			}
			dst.SetColor(x, y, kind.Glyph(), c)
		case entity.TagProjectile:
			dst.SetColor(x, y, ProjectileChar, core.ColorYellow)
		case entity.TagEnemy:
			r, c := enemyGlyph(e)
			dst.SetColor(x, y, r, c)
		}
	})

	p := w.Player()
	px, py := cam.ToScreen(p.Pos)
	color := core.ColorBrightCyan
	switch {
	case !p.Alive():
		color = core.ColorGray
	case p.Player.Invincible > 0 && tick/4%2 == 0:
		color = core.ColorBrightWhite
	}
	dst.SetColor(px, py+top, PlayerChar, color)

	if p.Alive() {
		rx, ry := cam.ToScreen(r2.Add(p.Pos, r2.Scale(reticleDistance, p.Player.Aim)))
		if rx != px || ry != py {
			dst.SetColor(rx, ry+top, ReticleChar, core.ColorGray)
		}
	}
}

func drawObstacle(dst *core.Screen, cam Camera, top int, ob collision.Obstacle) {
	x0, y0 := cam.ToScreen(r2.Vec{X: ob.Bounds.X, Y: ob.Bounds.Y})
	x1, y1 := cam.ToScreen(r2.Vec{X: ob.Bounds.Right(), Y: ob.Bounds.Bottom()})
	if x1 < 0 || y1 < 0 || x0 >= dst.Width() || y0 >= cam.ScreenH {
		return
	}
	y0 = max(y0, 0)
	y1 = min(y1, cam.ScreenH-1)

	switch ob.Kind {
	case collision.KindTree:
		dst.DrawRect(core.NewRect(x0, y0+top, x1-x0+1, y1-y0+1), TreeChar, core.ColorDarkGreen)
		tx, ty := cam.ToScreen(r2.Vec{X: ob.Collider.X + ob.Collider.W/2, Y: ob.Collider.Y})
		if ty >= 0 && ty < cam.ScreenH {
			dst.SetColor(tx, ty+top, TrunkChar, core.ColorBrown)
		}
	case collision.KindRock:
		dst.DrawRect(core.NewRect(x0, y0+top, x1-x0+1, y1-y0+1), RockChar, core.ColorGray)
	default:
		dst.DrawRect(core.NewRect(x0, y0+top, x1-x0+1, y1-y0+1), BuildingChar, core.ColorBrown)
	}
}

// enemyGlyph picks the rune and color of an enemy. Attacking enemies are
// drawn in upper case.
func enemyGlyph(e *entity.Entity) (rune, core.Color) {
	var r rune
	var c core.Color
	switch e.Archetype {
	case entity.ArchetypeFast:
		r, c = 'f', core.ColorMagenta
	case entity.ArchetypeBoss:
		r, c = 'b', core.ColorBrightRed
	default:
		r, c = 'g', core.ColorRed
	}
	if verb, _, ok := behavior.SplitIntent(e.Intent); ok && verb == behavior.VerbAttack {
		r = unicode.ToUpper(r)
		c = core.ColorOrange
	}
	return r, c
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	p := w.Player()
	d := w.Director()

	waveText := fmt.Sprintf("Wave %d", d.Wave())
	if !w.Over() && d.Pending() {
		waveText = fmt.Sprintf("Wave %d in %.1fs", d.Wave(), d.NextWaveIn().Seconds())
	}
	hpColor := core.ColorBrightGreen
	if p.Health < p.MaxHealth/3 {
		hpColor = core.ColorBrightRed
	}

	x := 0
	put := func(text string, c core.Color) {
		dst.DrawTextColor(x, 0, text, c)
		x += len([]rune(text)) + 2
	}
	put(waveText, core.ColorBrightCyan)
	put(fmt.Sprintf("HP %d/%d", int(math.Ceil(p.Health)), int(p.MaxHealth)), hpColor)
	put(fmt.Sprintf("Score %d", w.Score()), core.ColorBrightYellow)
	put(fmt.Sprintf("Weapon %s", p.Player.Weapon.Stats().Name), core.ColorWhite)
	put(fmt.Sprintf("Enemies %d", w.Registry().Count(entity.TagEnemy)), core.ColorRed)
}

func (g *Game) renderBanner(dst *core.Screen, title, detail string, c core.Color) {
	width := max(len([]rune(detail)), len([]rune(title)), 20) + 4
	height := 5
	box := core.NewRect((dst.Width()-width)/2, (dst.Height()-height)/2, width, height)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCenteredColor(box.Y+1, title, c)
	dst.DrawTextCenteredColor(box.Y+2, detail, core.ColorWhite)
	if g.world.Over() {
		dst.DrawTextCenteredColor(box.Y+3, "R restart  Q quit", core.ColorGray)
	}
}

func (g *Game) renderDebug(dst *core.Screen) {
	w := g.world
	p := w.Player()
	lines := []string{
		fmt.Sprintf("tick %d  t=%.1fs", w.Tick(), w.Clock().Seconds()),
		fmt.Sprintf("pos %.0f,%.0f  vel %.1f,%.1f", p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y),
		fmt.Sprintf("entities %d  obstacles %d", w.Registry().Len(), w.Obstacles().Len()),
		fmt.Sprintf("player %s", p.Player.Brain.CurrentName()),
	}
	for i, line := range lines {
		dst.DrawTextColor(0, dst.Height()-len(lines)+i, line, core.ColorGray)
	}
}
