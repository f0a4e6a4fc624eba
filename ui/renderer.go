package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-engine/game/types"
)

const (
	borderPadding = 10 // Padding around game area
	maxScores     = 200
)

// Renderer draws snapshots into the current raylib window.
type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	// Stats panel takes a seventh of the window
	r.statsPanel = r.screenWidth / 7
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

// Panel carries the optional text and score history shown next to the map.
type Panel struct {
	Lines  []string
	Scores []int
}

// Draw renders one frame. Room row 0 is drawn at the bottom of the grid.
func (r *Renderer) Draw(snap Snapshot, panel Panel) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/45, r.statsPanel/15)
	lineHeight := min(r.screenHeight/35, r.statsPanel/12)

	m := snap.Map
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.gameHeight - borderPadding*2
	r.cellSize = max(min(availableWidth/int32(m.Width()), availableHeight/int32(m.Height())), 1)

	r.totalGridWidth = r.cellSize * int32(m.Width())
	r.totalGridHeight = r.cellSize * int32(m.Height())
	r.offsetX = borderPadding
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)

	for row, cells := range m.Rows() {
		for x, cell := range cells {
			px := r.offsetX + int32(x)*r.cellSize
			py := r.offsetY + int32(row)*r.cellSize
			if color, ok := cellColor(cell); ok {
				rl.DrawRectangle(px, py, r.cellSize, r.cellSize, color)
			} else {
				rl.DrawRectangleLines(px, py, r.cellSize, r.cellSize, rl.Gray)
			}
			if cell == SnakeHead {
				r.drawHeading(px, py, snap.Heading)
			}
		}
	}

	if snap.Message != "" {
		size := fontSize * 2
		width := rl.MeasureText(snap.Message, size)
		rl.DrawText(snap.Message,
			r.offsetX+(r.totalGridWidth-width)/2,
			r.offsetY+r.totalGridHeight/2-size/2,
			size, rl.Yellow)
	}

	r.drawStatsPanel(snap, panel, fontSize, lineHeight)
	rl.EndDrawing()
}

func cellColor(c CellType) (rl.Color, bool) {
	switch c {
	case SnakeHead:
		return rl.Lime, true
	case SnakeChain:
		return rl.Green, true
	case SnakeTail:
		return rl.White, true
	case Wall:
		return rl.DarkGray, true
	case Apple:
		return rl.Red, true
	default:
		return rl.Color{}, false
	}
}

// drawHeading puts a triangle on the head pointing where the snake goes.
// Screen y grows down while room y grows up.
func (r *Renderer) drawHeading(headX, headY int32, d types.Direction) {
	c := float32(r.cellSize)
	half := c / 2
	x, y := float32(headX), float32(headY)

	var a, b, tip rl.Vector2
	switch d {
	case types.Right:
		tip = rl.Vector2{X: x + c, Y: y + half}
		a = rl.Vector2{X: x + half, Y: y}
		b = rl.Vector2{X: x + half, Y: y + c}
	case types.Left:
		tip = rl.Vector2{X: x, Y: y + half}
		a = rl.Vector2{X: x + half, Y: y + c}
		b = rl.Vector2{X: x + half, Y: y}
	case types.Down:
		tip = rl.Vector2{X: x + half, Y: y + c}
		a = rl.Vector2{X: x + c, Y: y + half}
		b = rl.Vector2{X: x, Y: y + half}
	default:
		tip = rl.Vector2{X: x + half, Y: y}
		a = rl.Vector2{X: x, Y: y + half}
		b = rl.Vector2{X: x + c, Y: y + half}
	}
	rl.DrawTriangle(tip, a, b, rl.Yellow)
}

func (r *Renderer) drawStatsPanel(snap Snapshot, panel Panel, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	for _, line := range []string{
		fmt.Sprintf("Time: %s", snap.Time),
		fmt.Sprintf("Points: %d", snap.Points),
		fmt.Sprintf("Level: %d", snap.Level),
	} {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	statsY += lineHeight / 2
	for _, line := range panel.Lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.LightGray)
		statsY += lineHeight
	}

	if len(panel.Scores) > 1 {
		r.drawScoreGraph(statsX, fontSize, panel.Scores)
	}
}

func (r *Renderer) drawScoreGraph(graphX, fontSize int32, scores []int) {
	if len(scores) > maxScores {
		scores = scores[len(scores)-maxScores:]
	}
	graphY := r.screenHeight - r.graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)

	maxScore := 1
	sum := 0
	for _, s := range scores {
		maxScore = max(maxScore, s)
		sum += s
	}

	point := func(i, s int) (int32, int32) {
		x := graphX + int32(float32(r.graphWidth)*float32(i)/float32(maxScores))
		y := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(s)/float32(maxScore))
		return x, y
	}
	for j := 1; j < len(scores); j++ {
		x1, y1 := point(j-1, scores[j-1])
		x2, y2 := point(j, scores[j])
		rl.DrawLine(x1, y1, x2, y2, rl.Green)
	}

	// Dashed average line
	_, avgY := point(0, sum/len(scores))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}

// RaylibCommand reads the key pressed in this frame.
func RaylibCommand() Command {
	switch {
	case rl.IsKeyPressed(rl.KeyUp):
		return CmdUp
	case rl.IsKeyPressed(rl.KeyDown):
		return CmdDown
	case rl.IsKeyPressed(rl.KeyLeft):
		return CmdLeft
	case rl.IsKeyPressed(rl.KeyRight):
		return CmdRight
	case rl.IsKeyPressed(rl.KeyEnter):
		return CmdRestart
	case rl.IsKeyPressed(rl.KeyEscape):
		return CmdQuit
	}
	if ch := rl.GetCharPressed(); ch != 0 {
		return CommandForRune(rune(ch))
	}
	return CmdNone
}
