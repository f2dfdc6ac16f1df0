package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/smartview/pkg/pipeline"
)

// Terminal palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleName    = lipgloss.NewStyle().Foreground(colorCyan) // tree names
	styleMuted   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// Status markers. The draw summary ends with iconCached or iconFresh.
const (
	iconCached = "cached"
	iconFresh  = "fresh"
)

var (
	markSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	markWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	markInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
)

func printStatus(mark, msg string) { fmt.Println(mark + " " + msg) }

func printSuccess(format string, args ...any) {
	printStatus(markSuccess, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(markWarning, lipgloss.NewStyle().Foreground(colorYellow).Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleMuted.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written file. Output to stdout has no path and prints nothing.
func printFile(path string) {
	if path == "" {
		return
	}
	fmt.Println("  " + styleMuted.Render("→") + " " + styleValue.Render(path))
}

// printValue prints a bare value, for output meant to be captured by scripts.
func printValue(v string) { fmt.Println(v) }

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

func printStats(stats pipeline.Stats, cached bool) {
	fmt.Println(statsLine(stats, cached))
}

// statsLine summarizes a draw as "  N nodes · N leaves · N primitives · cached".
func statsLine(stats pipeline.Stats, cached bool) string {
	var parts []string
	for _, c := range []struct {
		n    int
		unit string
	}{
		{stats.NodeCount, "nodes"},
		{stats.LeafCount, "leaves"},
		{stats.Primitives, "primitives"},
	} {
		if c.n > 0 {
			parts = append(parts, styleMuted.Render(fmt.Sprintf("%d %s", c.n, c.unit)))
		}
	}
	status := lipgloss.NewStyle().Foreground(colorGray).Render(iconFresh)
	if cached {
		status = lipgloss.NewStyle().Foreground(colorGreen).Render(iconCached)
	}
	parts = append(parts, status)
	return "  " + strings.Join(parts, styleMuted.Render(" · "))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(styleMuted.Render(description+":") + " " + styleCommand.Render(cmd))
}
