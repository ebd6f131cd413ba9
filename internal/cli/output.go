package cli

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	successMark = color.New(color.FgGreen).SprintFunc()
	warningMark = color.New(color.FgYellow).SprintFunc()
	errorMark   = color.New(color.FgRed).SprintFunc()
	progressArr = color.New(color.FgBlue).SprintFunc()
	headerText  = color.New(color.FgMagenta, color.Bold).SprintFunc()
	dimText     = color.New(color.FgHiBlack).SprintFunc()
)

// Output formatting helpers

// printInfo prints an informational message
func printInfo(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, msg)
}

// printSuccess prints a success message
func printSuccess(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", successMark("✓"), msg)
}

// printWarning prints a warning message to stderr
func printWarning(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stderr, "%s %s\n", warningMark("⚠"), msg)
}

// printNotice prints a warning to stderr even under --quiet
func printNotice(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", warningMark("⚠"), msg)
}

// printErrorMsg prints an error message (different from printError which takes error type)
func printErrorMsg(msg string) {
	fmt.Fprintf(stderr, "%s %s\n", errorMark("✗"), msg)
}

// printProgress prints a progress indicator
func printProgress(msg string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "%s %s\n", progressArr("→"), msg)
}

// printHeader prints a section header
func printHeader(title string) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(stdout, "\n%s\n", headerText(fmt.Sprintf("=== %s ===", title)))
}

// printSeparator prints a separator line
func printSeparator() {
	if globalQuiet {
		return
	}
	fmt.Fprintln(stdout, dimText("────────────────────────────────────────"))
}
