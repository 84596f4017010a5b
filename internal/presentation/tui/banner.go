package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when the chat starts.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Amber-to-rose gradient.
	s1 := termenv.String(` _           _         _        `).Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(`| |__   __ _| |_ _   _| |_ __ _ `).Foreground(p.Color("#fb923c"))
	s3 := termenv.String("| '_ \\ / _` | __| | | | __/ _` |").Foreground(p.Color("#f97316"))
	s4 := termenv.String(`| |_) | (_| | |_| |_| | || (_| |`).Foreground(p.Color("#f43f5e"))
	s5 := termenv.String(`|_.__/ \__,_|\__|\__,_|\__\__,_|`).Foreground(p.Color("#e11d48"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
