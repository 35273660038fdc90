package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/bomstock/pkg/distributor"
	"github.com/matzehuels/bomstock/pkg/enrich"
	"github.com/matzehuels/bomstock/pkg/history"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleSentinel = lipgloss.NewStyle().Foreground(colorRed)
	styleMissing  = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// out is where console output goes; tests replace it.
var out io.Writer = os.Stdout

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconError.Render(iconError)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(out, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(20)
	fmt.Fprintln(out, keyStyle.Render(key)+" "+renderField(value))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Fprintln(out)
}

// =============================================================================
// Run Output
// =============================================================================

// printSummary prints the row and issue counts of a run on a single line.
func printSummary(rows, issues int) {
	line := "  " + StyleNumber.Render(strconv.Itoa(rows)) + StyleDim.Render(" rows")
	line += StyleDim.Render(" · ")
	if issues == 0 {
		line += styleIconSuccess.Render("nothing to review")
	} else {
		line += StyleWarning.Render(strconv.Itoa(issues)) + StyleDim.Render(" to review")
	}
	fmt.Fprintln(out, line)
}

// printReviewList prints the rows that need manual checking, one per line:
//
//	Row 3, Reference: U1, Part Number: LM358DR, Source: Mouser
func printReviewList(issues []enrich.Issue) {
	if len(issues) == 0 {
		return
	}
	printNewline()
	fmt.Fprintln(out, StyleTitle.Render("Items with errors that need to be checked manually:"))
	for _, is := range issues {
		fmt.Fprintf(out, "  %s %s, %s %s, %s %s, %s %s\n",
			StyleDim.Render("Row"), StyleNumber.Render(strconv.Itoa(is.Row)),
			StyleDim.Render("Reference:"), StyleValue.Render(is.Reference),
			StyleDim.Render("Part Number:"), StyleValue.Render(is.PartNumber),
			StyleDim.Render("Source:"), StyleWarning.Render(is.Source),
		)
	}
}

// printOutcomes prints the normalized tuple of every source for one part.
func printOutcomes(res enrich.RowResult) {
	for _, o := range res.Outcomes {
		printNewline()
		title := StyleTitle.Render(o.Source)
		if o.Flagged() {
			title += " " + styleIconError.Render(iconError)
		} else {
			title += " " + styleIconSuccess.Render(iconSuccess)
		}
		fmt.Fprintln(out, title)
		printKeyValue("Unit Price", o.Result.UnitPrice)
		printKeyValue("Package Type", o.Result.PackageType)
		printKeyValue("Quantity Available", o.Result.Quantity)
		printKeyValue("Last Updated", o.Result.LastUpdated)
		if o.Err != nil {
			printDetail("%v", o.Err)
		}
	}
}

// printHistory prints stored lookups, newest first, one per line:
//
//	2024-06-12 09:30:00  Mouser   0.41  Reel  60622  (run 1b4e28ba)
func printHistory(lookups []history.Lookup) {
	for _, l := range lookups {
		mark := styleIconSuccess.Render(iconSuccess)
		if l.Flagged {
			mark = styleIconError.Render(iconError)
		}
		run := l.RunID
		if len(run) > 8 {
			run = run[:8]
		}
		fmt.Fprintf(out, "  %s %s  %-8s %s  %s  %s  %s\n",
			mark,
			StyleDim.Render(l.RecordedAt.Format(distributor.TimeLayout)),
			l.Source,
			renderField(l.Result.UnitPrice),
			renderField(l.Result.PackageType),
			renderField(l.Result.Quantity),
			StyleDim.Render("(run "+run+")"),
		)
	}
}

// renderField colors the failure sentinel and the not-available marker.
func renderField(v string) string {
	switch v {
	case distributor.Sentinel:
		return styleSentinel.Render(v)
	case distributor.NotAvailable:
		return styleMissing.Render(v)
	default:
		return StyleValue.Render(v)
	}
}
