package main

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/fatih/color"
)

var bannerLines = []string{
	`                          _         `,
	`  __ _  ___ _ __  ___ _  _| |__ ___ `,
	` / _` + "`" + ` |/ _ \ '_ \(_-<| || | '_ (_-< `,
	` \__, |\___|_| |_/__/ \_,_|_.__/__/ `,
	` |___/                              `,
}

var bannerPalette = []color.Attribute{
	color.FgCyan,
	color.FgMagenta,
	color.FgYellow,
	color.FgGreen,
	color.FgBlue,
	color.FgRed,
}

// printBanner writes the startup banner, rotating through the palette from a
// random starting hue so each run looks a little different.
func printBanner(w io.Writer, colorize bool) {
	offset := rand.Intn(len(bannerPalette))
	for i, line := range bannerLines {
		if colorize {
			c := color.New(bannerPalette[(offset+i)%len(bannerPalette)])
			fmt.Fprintln(w, c.Sprint(line))
			continue
		}
		fmt.Fprintln(w, line)
	}
}
