package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberPrinter = message.NewPrinter(language.English)

func formatCount(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}

func formatBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}

func formatResolution(width, height int) string {
	if width == 0 && height == 0 {
		return "-"
	}
	return fmt.Sprintf("%dx%d", width, height)
}

func formatAge(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return humanize.Time(ts)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
