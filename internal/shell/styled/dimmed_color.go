package styled

import "github.com/fatih/color"

// DimmedColor returns the gray used for secondary shell output, like
// row counts and timings.
func DimmedColor() *color.Color {
	return color.RGB(110, 110, 110)
}
