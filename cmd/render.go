// Copyright © 2025 The Lantern authors

package cmd

import (
	"github.com/lanternhq/lantern/render"
)

func colorMode() render.ColorMode {
	switch colorFlag {
	case "always":
		return render.ColorAlways
	case "never":
		return render.ColorNever
	default:
		return render.ColorAuto
	}
}

func newRenderer() *render.Renderer {
	return &render.Renderer{Color: colorMode()}
}
