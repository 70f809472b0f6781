package hosts

import (
	"context"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/reusee/stagecoach/projects"
	"github.com/reusee/stagecoach/stageconfigs"
)

// Terminal draws frames as one glyph per instance and feeds keys and mouse
// clicks into an Input. The bottom row is a status line.
type Terminal struct {
	Screen tcell.Screen
	Stage  stageconfigs.StageSize
	Input  *Input
	// Glyphs overrides the glyph of a class. A space hides it.
	Glyphs map[string]rune

	buttons tcell.ButtonMask
}

var _ Sink = new(Terminal)

var keyNames = map[tcell.Key]string{
	tcell.KeyUp:    "ArrowUp",
	tcell.KeyDown:  "ArrowDown",
	tcell.KeyLeft:  "ArrowLeft",
	tcell.KeyRight: "ArrowRight",
	tcell.KeyEnter: "Enter",
	tcell.KeyTab:   "Tab",
}

func (t *Terminal) glyph(class string) rune {
	if r, ok := t.Glyphs[class]; ok {
		return r
	}
	r, _ := utf8.DecodeRuneInString(class)
	if r == utf8.RuneError {
		return '?'
	}
	return unicode.ToUpper(r)
}

// cell maps a stage position to a screen cell. y grows upward on the stage.
func (t *Terminal) cell(x, y float64) (col, row int, ok bool) {
	cols, rows := t.Screen.Size()
	rows--
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	col = int((x + t.Stage.Width/2) / t.Stage.Width * float64(cols))
	row = int((t.Stage.Height/2 - y) / t.Stage.Height * float64(rows))
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return 0, 0, false
	}
	return col, row, true
}

// position maps a screen cell back to the stage position of its centre.
func (t *Terminal) position(col, row int) (x, y float64) {
	cols, rows := t.Screen.Size()
	rows--
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	x = (float64(col)+0.5)/float64(cols)*t.Stage.Width - t.Stage.Width/2
	y = t.Stage.Height/2 - (float64(row)+0.5)/float64(rows)*t.Stage.Height
	return
}

func (t *Terminal) Present(ctx context.Context, frame projects.FrameResult) error {
	t.Screen.Clear()
	style := tcell.StyleDefault
	for _, inst := range frame.Render {
		col, row, ok := t.cell(inst.X, inst.Y)
		if !ok {
			continue
		}
		t.Screen.SetContent(col, row, t.glyph(inst.Class), nil, style)
	}
	_, rows := t.Screen.Size()
	status := fmt.Sprintf("frame %d  instances %d  errors %d", frame.Frame, len(frame.Render), len(frame.Errors))
	for i, r := range []rune(status) {
		t.Screen.SetContent(i, rows-1, r, nil, style.Reverse(true))
	}
	t.Screen.Show()
	return nil
}

// Pump reads terminal events until escape or ctrl-c is pressed, the screen
// is finalized, or ctx is done. Ctrl-g raises the green flag and ctrl-x
// stops the project.
func (t *Terminal) Pump(ctx context.Context) error {
	t.Screen.EnableMouse()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev := t.Screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			t.Screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyCtrlG:
				t.Input.GreenFlag()
			case tcell.KeyCtrlX:
				t.Input.Stop()
			case tcell.KeyRune:
				t.Input.Press(string(ev.Rune()))
			default:
				if name, ok := keyNames[ev.Key()]; ok {
					t.Input.Press(name)
				}
			}
		case *tcell.EventMouse:
			buttons := ev.Buttons()
			if buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0 {
				x, y := t.position(ev.Position())
				t.Input.Click(x, y)
			}
			t.buttons = buttons
		}
	}
}
