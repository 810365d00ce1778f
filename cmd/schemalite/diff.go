// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemalite

package main

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffLine is one rendered line of line diff.
type diffLine struct {
	text string
	op   diffmatchpatch.Operation
}

// diffLines computes line-level diff between left and right text.
func diffLines(left, right string) []diffLine {
	dmp := diffmatchpatch.New()
	leftChars, rightChars, lines := dmp.DiffLinesToChars(left, right)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(leftChars, rightChars, false), lines)

	out := make([]diffLine, 0, len(diffs))
	for _, diff := range diffs {
		text := strings.TrimSuffix(diff.Text, "\n")
		for _, line := range strings.Split(text, "\n") {
			out = append(out, diffLine{op: diff.Type, text: line})
		}
	}

	return out
}

// diffPalette colors diff lines by operation.
type diffPalette struct {
	insert *color.Color
	remove *color.Color
}

// newDiffPalette builds palette with color output forced on or off.
func newDiffPalette(enabled bool) diffPalette {
	palette := diffPalette{
		insert: color.New(color.FgGreen),
		remove: color.New(color.FgRed),
	}

	for _, c := range []*color.Color{palette.insert, palette.remove} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return palette
}

// render formats diff lines with "+ ", "- " and "  " prefixes.
func (palette diffPalette) render(lines []diffLine) string {
	var out strings.Builder
	for _, line := range lines {
		switch line.op {
		case diffmatchpatch.DiffInsert:
			out.WriteString(palette.insert.Sprint("+ " + line.text))
		case diffmatchpatch.DiffDelete:
			out.WriteString(palette.remove.Sprint("- " + line.text))
		default:
			out.WriteString("  " + line.text)
		}

		out.WriteByte('\n')
	}

	return out.String()
}

// colorEnabled resolves auto, always and never color modes for output stream.
func colorEnabled(mode string, output io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "always":
		return true
	case "never":
		return false
	}

	file, ok := output.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
