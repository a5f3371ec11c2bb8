package presenter

import "strconv"

// KeyCommand is an editor command bound to a key.
type KeyCommand int

const (
	KeyNone KeyCommand = iota
	KeyTogglePlay
	KeyJumpPrev
	KeyJumpNext
	KeyJumpFirst
	KeyJumpFinal
	KeyStepBack
	KeyStepForward
	KeyDelete
	KeyNextObject
	KeyPrevObject
	KeyAddObject
	KeySelectObject
	KeyZoomIn
	KeyZoomOut
	KeyResetView
	KeyCancel
)

// LookupKey maps a Tk keysym to its command. For KeySelectObject the
// object id is returned as arg.
func LookupKey(keysym string) (cmd KeyCommand, arg int) {
	switch keysym {
	case "space":
		return KeyTogglePlay, 0
	case "Left":
		return KeyJumpPrev, 0
	case "Right":
		return KeyJumpNext, 0
	case "Home":
		return KeyJumpFirst, 0
	case "End":
		return KeyJumpFinal, 0
	case "comma":
		return KeyStepBack, 0
	case "period":
		return KeyStepForward, 0
	case "Delete", "BackSpace":
		return KeyDelete, 0
	case "Tab":
		return KeyNextObject, 0
	case "ISO_Left_Tab":
		return KeyPrevObject, 0
	case "n", "N":
		return KeyAddObject, 0
	case "plus", "equal", "KP_Add":
		return KeyZoomIn, 0
	case "minus", "KP_Subtract":
		return KeyZoomOut, 0
	case "0", "KP_0":
		return KeyResetView, 0
	case "Escape":
		return KeyCancel, 0
	}
	if len(keysym) == 1 && keysym[0] >= '1' && keysym[0] <= '9' {
		id, _ := strconv.Atoi(keysym)
		return KeySelectObject, id
	}
	return KeyNone, 0
}

// ZoomDelta returns the viewport zoom delta for a zoom command. The viewport
// zooms in on a negative delta, as it does for wheel-up.
func ZoomDelta(cmd KeyCommand) float64 {
	switch cmd {
	case KeyZoomIn:
		return -1
	case KeyZoomOut:
		return 1
	}
	return 0
}
