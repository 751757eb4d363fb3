package app

import (
	"fmt"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/artoolbox/pkg/measure"
)

const statusDuration = 3 * time.Second

// The default raylib font only covers ASCII
var labelReplacer = strings.NewReplacer("●", "*", "«", "<", "»", ">", "…", "...")

var helpLines = []string{
	"Left drag: draw",
	"Right click: measure (Shift: new chain)",
	"Middle drag: rotate, Shift+drag: pan, wheel: zoom",
	"1/2/3: place sphere/cube/cylinder",
	"Backspace: undo measure  Delete: remove chain",
	"C: clear  S: save",
	"Home: reset view  T: top view",
}

// drawUI draws the user interface
func (app *App) drawUI() {
	y := int32(10)
	lineHeight := int32(20)

	chain := app.session.Measure()
	info := fmt.Sprintf("Strokes: %d  Measure points: %d  FPS: %d",
		len(app.session.Drawings()), chain.Len(), rl.GetFPS())
	rl.DrawText(info, 10, y, 18, rl.White)
	y += lineHeight + 6

	for _, line := range helpLines {
		rl.DrawText(line, 10, y, 14, rl.LightGray)
		y += lineHeight - 2
	}

	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	// Selected measurement (bottom-left corner)
	if chain.Alive(app.Measure.selected) {
		text := labelReplacer.Replace(chain.Format(app.Measure.selected))
		rl.DrawRectangle(10, screenHeight-44, rl.MeasureText(text, 18)+20, 34, rl.NewColor(0, 0, 0, 200))
		rl.DrawText(text, 20, screenHeight-36, 18, rl.Yellow)
	}

	if app.UI.status != "" && time.Since(app.UI.statusTime) < statusDuration {
		width := rl.MeasureText(app.UI.status, 16)
		rl.DrawText(app.UI.status, screenWidth-width-20, screenHeight-30, 16, rl.Green)
	}

	// Loading indicator
	if app.Reference.isLoading {
		elapsed := time.Since(app.Reference.loadingStartTime).Seconds()
		spinnerChars := []string{"|", "/", "-", "\\"}
		spinnerIdx := int(elapsed*10) % len(spinnerChars)
		loadingText := fmt.Sprintf("%s Loading... (%.1fs)", spinnerChars[spinnerIdx], elapsed)

		boxWidth := int32(250)
		boxHeight := int32(40)
		boxX := screenWidth - boxWidth - 10
		rl.DrawRectangle(boxX, 10, boxWidth, boxHeight, rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(boxX, 10, boxWidth, boxHeight, rl.Yellow)
		rl.DrawText(loadingText, boxX+10, 22, 16, rl.Yellow)
	}
}

// drawSelection highlights the selected measurement point
func (app *App) drawSelection() {
	p, ok := app.session.Measure().Point(app.Measure.selected)
	if !ok {
		return
	}
	rl.DrawSphere(toRaylib(p), measure.MarkerRadius*1.4, rl.NewColor(255, 255, 255, 120))
}

// drawMeasureLabels draws each chain's total next to its last point
func (app *App) drawMeasureLabels() {
	chain := app.session.Measure()
	for _, j := range chain.Joins() {
		mid := rl.GetWorldToScreen(toRaylib(j.Midpoint), app.Camera.camera)
		rl.DrawText(measure.FormatDistance(j.Length), int32(mid.X)+6, int32(mid.Y)-6, 14, rl.LightGray)
	}
	for _, ids := range chain.Chains() {
		if len(ids) < 2 {
			continue
		}
		last := ids[len(ids)-1]
		p, _ := chain.Point(last)
		pos := rl.GetWorldToScreen(toRaylib(p), app.Camera.camera)
		text := "= " + measure.FormatDistance(chain.Total(last))
		rl.DrawText(text, int32(pos.X)+10, int32(pos.Y)-10, 18, rl.Yellow)
	}
}
