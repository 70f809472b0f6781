package projects

import (
	"errors"
	"testing"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/collisions"
)

func TestRenderAndClicks(t *testing.T) {
	var clicked, stageClicked int
	backdrop := collisions.Drawable{Handle: "sky", Width: 480, Height: 360, CenterX: 240, CenterY: 180}
	p, _ := build(t, Config{}, func(p *Project) error {
		declare(p, &actors.Class{
			Name:     "Ball",
			Costumes: []collisions.Drawable{ball},
			Transform: collisions.Transform{
				X: 100, Y: 50, Scale: 1,
			},
		}, Handler{
			Trigger: actors.OnThisClicked(),
			Body: func(c *Context) error {
				clicked++
				return nil
			},
		})
		declare(p, &actors.Class{
			Name:      "Ghost",
			Costumes:  []collisions.Drawable{ball},
			Hidden:    true,
			Transform: collisions.Transform{Scale: 1},
		})
		declare(p, &actors.Class{
			Name:      "Stage",
			Kind:      actors.Stage,
			Costumes:  []collisions.Drawable{backdrop},
			Transform: collisions.Transform{Scale: 1},
		}, Handler{
			Trigger: actors.OnStageClicked(),
			Body: func(c *Context) error {
				stageClicked++
				return nil
			},
		})
		return nil
	})

	res := p.Tick()
	if len(res.Render) != 2 {
		t.Fatalf("got %+v", res.Render)
	}
	if res.Render[0].Drawable != "sky" || res.Render[0].Class != "Stage" {
		t.Fatalf("got %+v", res.Render[0])
	}
	if r := res.Render[1]; r.Kind != RenderImage || r.Drawable != "ball" || r.X != 100 || r.Y != 50 || r.Scale != 1 {
		t.Fatalf("got %+v", r)
	}

	// inside the ball, edges inclusive
	if n := p.ClickAt(80, 70); n != 1 {
		t.Fatalf("got %d", n)
	}
	// hidden ghost at the origin is not hit
	if n := p.ClickAt(0, 0); n != 1 {
		t.Fatalf("got %d", n)
	}
	p.Tick()
	if clicked != 1 || stageClicked != 1 {
		t.Fatalf("got %d %d", clicked, stageClicked)
	}

	if _, err := p.Clicked(99); !errors.Is(err, actors.ErrUnknownInstance) {
		t.Fatalf("got %v", err)
	}
}

func TestTouchingThroughProject(t *testing.T) {
	var touching []bool
	p, collector := build(t, Config{}, func(p *Project) error {
		declare(p, &actors.Class{
			Name:      "Stage",
			Kind:      actors.Stage,
			Costumes:  []collisions.Drawable{ball},
			Transform: collisions.Transform{Scale: 1},
		})
		target := declare(p, &actors.Class{
			Name:      "Target",
			Costumes:  []collisions.Drawable{ball},
			Transform: collisions.Transform{X: 50, Scale: 1},
		})
		declare(p, &actors.Class{
			Name:      "Mover",
			Costumes:  []collisions.Drawable{ball},
			Transform: collisions.Transform{Scale: 1},
		}, Handler{
			Trigger: actors.OnGreenFlag(),
			Body: func(c *Context) error {
				return c.Range(3, func(int) error {
					ok, err := c.Touching(target.ID)
					if err != nil {
						return err
					}
					touching = append(touching, ok)
					c.Self().Transform.X += 5
					return nil
				})
			},
		}, Handler{
			Trigger: actors.OnMessage("stage"),
			Body: func(c *Context) error {
				ok, err := c.Touching(1)
				if err != nil {
					return err
				}
				if ok {
					t.Error("touching the stage")
				}
				_, err = c.Touching(42)
				return err
			},
		})
		return nil
	})
	p.Start()
	p.Broadcast("stage")
	p.Tick()
	p.Tick()
	p.Tick()
	// gap shrinks from 10 to 0
	if len(touching) != 3 || touching[0] || touching[1] || !touching[2] {
		t.Fatalf("got %v", touching)
	}
	reports := collector.Drain()
	if len(reports) != 1 || reports[0].Kind != UnknownInstance {
		t.Fatalf("got %v", reports)
	}
}

func TestCostumelessNeverTouches(t *testing.T) {
	var got [][2]bool
	p, collector := build(t, Config{}, func(p *Project) error {
		bare := declare(p, &actors.Class{
			Name:      "Bare",
			Transform: collisions.Transform{Scale: 1},
		})
		dressed := declare(p, &actors.Class{
			Name:      "Dressed",
			Costumes:  []collisions.Drawable{ball},
			Transform: collisions.Transform{Scale: 1},
		})
		declare(p, &actors.Class{
			Name:      "Other",
			Transform: collisions.Transform{Scale: 1},
		}, Handler{
			Trigger: actors.OnGreenFlag(),
			Body: func(c *Context) error {
				withBare, err := c.Touching(bare.ID)
				if err != nil {
					return err
				}
				bareDressed, err := c.project.Touching(bare.ID, dressed.ID)
				if err != nil {
					return err
				}
				got = append(got, [2]bool{withBare, bareDressed})
				return nil
			},
		})
		return nil
	})
	p.Start()
	p.Tick()
	// all three sit at the origin
	if len(got) != 1 || got[0][0] || got[0][1] {
		t.Fatalf("got %v", got)
	}
	if reports := collector.Drain(); len(reports) != 0 {
		t.Fatalf("got %v", reports)
	}
}

func TestKeyState(t *testing.T) {
	var pressed []bool
	p, _ := build(t, Config{}, func(p *Project) error {
		declare(p, &actors.Class{Name: "Sprite"}, Handler{
			Trigger: actors.OnKey("space"),
			Body: func(c *Context) error {
				pressed = append(pressed, c.KeyIsPressed("space"), c.KeyIsPressed("a"))
				return nil
			},
		})
		return nil
	})
	p.SetKey("space", true)
	if n := p.KeyPressed("space"); n != 1 {
		t.Fatalf("got %d", n)
	}
	if n := p.KeyPressed("b"); n != 0 {
		t.Fatalf("got %d", n)
	}
	p.Tick()
	p.SetKey("space", false)
	if len(pressed) != 2 || !pressed[0] || pressed[1] {
		t.Fatalf("got %v", pressed)
	}
	if p.KeyIsPressed("space") {
		t.Fatal()
	}
}
