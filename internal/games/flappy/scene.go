package flappy

import (
	"fmt"

	"github.com/nepaliayush/flappy-bird/internal/config"
	"github.com/nepaliayush/flappy-bird/internal/core"
)

// Static assets referenced by the scene. Hosts that draw images resolve
// them; the terminal rasterizer maps each to glyphs.
const (
	AssetBackground = "/background-day.png"
	AssetBird       = "/yellowbird-upflap.png"
	AssetPipe       = "/pipe-green.png"
)

// Snapshot is the round state a scene is built from.
type Snapshot struct {
	Bird      Bird
	Obstacles []Obstacle
	Score     int
	Phase     Phase
	Paused    bool
}

// Sprite is an image placed in world coordinates.
type Sprite struct {
	Asset   string
	Box     core.Box
	Flipped bool // Rotated 180 degrees
}

// PipePair is the two sprites of one obstacle.
type PipePair struct {
	Top    Sprite
	Bottom Sprite
}

// Overlay is a centered panel drawn above the playfield.
type Overlay struct {
	Title   string
	Message string
	Button  string // Empty when the panel has no control
}

// Scene is a layered description of one frame, back to front.
type Scene struct {
	World      core.Box
	Background Sprite
	Pipes      []PipePair
	Bird       Sprite
	ScoreText  string
	Overlay    *Overlay
}

// BuildScene projects a snapshot into a scene. It does not modify s.
func BuildScene(cfg config.FlappyConfig, s Snapshot) Scene {
	world := core.Box{W: cfg.World.Width, H: cfg.World.Height}

	scene := Scene{
		World:      world,
		Background: Sprite{Asset: AssetBackground, Box: world},
		Bird: Sprite{
			Asset: AssetBird,
			Box:   birdBox(cfg, s.Bird),
		},
		Pipes:     make([]PipePair, 0, len(s.Obstacles)),
		ScoreText: fmt.Sprintf("Score: %d", s.Score),
	}

	for _, o := range s.Obstacles {
		bottomY := o.GapBottom(cfg)
		scene.Pipes = append(scene.Pipes, PipePair{
			Top: Sprite{
				Asset:   AssetPipe,
				Box:     core.Box{X: o.X, Y: 0, W: cfg.Pipes.Width, H: o.GapTop},
				Flipped: true,
			},
			Bottom: Sprite{
				Asset: AssetPipe,
				Box:   core.Box{X: o.X, Y: bottomY, W: cfg.Pipes.Width, H: cfg.World.Height - bottomY},
			},
		})
	}

	switch {
	case s.Phase == GameOver:
		scene.Overlay = &Overlay{
			Title:   "Game Over",
			Message: fmt.Sprintf("Your score: %d", s.Score),
			Button:  "Play Again",
		}
	case s.Paused:
		scene.Overlay = &Overlay{
			Title:   "Paused",
			Message: "Press P to resume",
		}
	}

	return scene
}
