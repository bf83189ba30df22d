package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// AskConfirmation asks a yes/no question on out and reads the answer from in.
// Anything but y or yes is a no.
func AskConfirmation(in io.Reader, out io.Writer, message string, force bool) bool {
	if force {
		return true
	}
	fmt.Fprintf(out, "%s (y/N): ", message)

	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// ConfirmOverwrite returns true when path does not exist yet or the user
// agrees to replace it.
func ConfirmOverwrite(path string, force bool) bool {
	if _, err := os.Stat(path); err != nil {
		return true
	}
	return AskConfirmation(os.Stdin, os.Stdout, fmt.Sprintf("%s exists. Overwrite?", path), force)
}

// RenderTable draws rows under header in a box. Widths count runes so
// non-ASCII cells line up.
func RenderTable(w io.Writer, header []string, rows [][]string) {
	if len(header) == 0 {
		return
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i := range header {
			if i < len(row) {
				if n := utf8.RuneCountInString(row[i]); n > widths[i] {
					widths[i] = n
				}
			}
		}
	}

	rule := func(left, mid, right string) {
		fmt.Fprint(w, left)
		for i, width := range widths {
			fmt.Fprint(w, strings.Repeat("─", width+2))
			if i < len(widths)-1 {
				fmt.Fprint(w, mid)
			}
		}
		fmt.Fprintln(w, right)
	}
	line := func(cells []string) {
		fmt.Fprint(w, "│")
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			fmt.Fprintf(w, " %s%s │", cell, strings.Repeat(" ", width-utf8.RuneCountInString(cell)))
		}
		fmt.Fprintln(w)
	}

	rule("┌", "┬", "┐")
	line(header)
	rule("├", "┼", "┤")
	for _, row := range rows {
		line(row)
	}
	rule("└", "┴", "┘")
}
