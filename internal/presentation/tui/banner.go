package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for interactive sessions.
func PrintBanner() {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`   ___                                  `, "#818cf8"},
		{`  / __|___ _ ___ _____ _ _ ___ ___      `, "#a78bfa"},
		{` | (__/ _ \ ' \ V / -_) '_(_-</ -_)     `, "#c084fc"},
		{`  \___\___/_||_\_/\___|_| /__/\___|     `, "#e879f9"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
