package game

import (
	"image"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// input is one frame of user input, read once so the rest of the frame is
// independent of the ebiten globals.
type input struct {
	cursor image.Point
	// inside is false when the pointer is outside the window.
	inside bool

	pressed  bool
	released bool

	touches int
	keys    []ebiten.Key
}

// interacted reports a click or key press, the gestures that unlock audio.
func (in input) interacted() bool { return in.pressed || len(in.keys) > 0 }

// coarsePointer is true on platforms whose primary pointer is a finger.
var coarsePointer = runtime.GOOS == "android" || runtime.GOOS == "ios"

type inputReader struct {
	keys    []ebiten.Key
	touches []ebiten.TouchID
}

func (r *inputReader) read(width, height int) input {
	x, y := ebiten.CursorPosition()
	in := input{
		cursor:   image.Pt(x, y),
		pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
	in.inside = in.cursor.In(image.Rect(0, 0, width, height))

	r.touches = ebiten.AppendTouchIDs(r.touches[:0])
	in.touches = len(r.touches)

	r.keys = inpututil.AppendJustPressedKeys(r.keys[:0])
	in.keys = r.keys
	return in
}
