package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output targets. Tests swap these for buffers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Puts prints a line to stdout.
func Puts(s string) {
	fmt.Fprintln(Stdout, s)
}

// Warn prints a warning message.
func Warn(msg string) {
	fmt.Fprintln(Stderr, Warning.Render(IconWarn+msg))
}

// Err prints an error message.
func Err(msg string) {
	fmt.Fprintln(Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok prints a success message.
func Ok(msg string) {
	fmt.Fprintln(Stdout, Success.Render(IconOk+msg))
}

// Inf prints an info message.
func Inf(msg string) {
	fmt.Fprintln(Stdout, Info.Render("  "+msg))
}

// Header prints a section header.
func Header(s string) {
	fmt.Fprintln(Stdout)
	fmt.Fprintln(Stdout, Title.Render(s))
	fmt.Fprintln(Stdout, Muted.Render(strings.Repeat("─", len(s)+2)))
}

// Tip prints a helpful tip.
func Tip(msg string) {
	fmt.Fprintln(Stdout)
	fmt.Fprintln(Stdout, Muted.Render("  tip: "+msg))
}

// Kv prints a key-value pair, padded.
func Kv(key string, value string) {
	k := KeyStyle.Render(fmt.Sprintf("  %-18s", key))
	v := ValueStyle.Render(value)
	fmt.Fprintf(Stdout, "%s %s\n", k, v)
}
