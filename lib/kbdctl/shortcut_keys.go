package kbdctl

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// QuitKey closes the window while it is held down.
const QuitKey = glfw.KeyEscape

// ProcessInput sets the close flag of w when QuitKey is pressed.
func ProcessInput(w *glfw.Window) {
	if quitRequested(w.GetKey(QuitKey)) {
		w.SetShouldClose(true)
	}
}

func quitRequested(state glfw.Action) bool {
	return state == glfw.Press
}

func Poll() {
	glfw.PollEvents()
}
