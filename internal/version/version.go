package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// asciiArtTpl returns the ASCII art banner shared by the typelite tools.
func asciiArtTpl() string {
	asciiArt := `
 ______                    __    _ __
/_  __/_  ______  ___     / /   (_) /____
 / / / / / / __ \/ _ \   / /   / / __/ _ \
/ / / /_/ / /_/ /  __/  / /___/ / /_/  __/
/_/  \__, / .___/\___/  /_____/_/\__/\___/
    /____/_/
%s ` + Version

	asciiArt = asciiArt[1:]                          // This just removes the first newline character
	asciiArt = colorCyanBold + asciiArt + colorReset // Add color to the ASCII art

	return asciiArt
}

// ShellVersion returns the banner of the typelite shell.
func ShellVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Shell")
}

// BenchVersion returns the banner of the typelite benchmark tool.
func BenchVersion() string {
	return fmt.Sprintf(asciiArtTpl(), "Bench")
}
