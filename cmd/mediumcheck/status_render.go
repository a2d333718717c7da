package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"mediumcheck/internal/resolver"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	statusLabelWidth = 12
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		return statusKindColors(kind).Sprint(base)
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColors(kind statusKind) text.Colors {
	switch kind {
	case statusOK:
		return text.Colors{text.FgGreen}
	case statusWarn:
		return text.Colors{text.FgYellow}
	case statusError:
		return text.Colors{text.FgRed}
	default:
		return text.Colors{text.FgBlue}
	}
}

// renderMediumStatus formats a lookup result for the terminal.
func renderMediumStatus(status resolver.MediumStatus, colorize bool) string {
	var b strings.Builder
	if !status.OK {
		b.WriteString(renderStatusLine("Lookup", statusError, status.Error, colorize))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(renderStatusLine("Query", statusInfo, status.Query, colorize))
	b.WriteString("\n")
	if status.Found {
		b.WriteString(renderStatusLine("Status", statusOK, fmt.Sprintf("FOUND (%d)", status.Total), colorize))
	} else {
		b.WriteString(renderStatusLine("Status", statusWarn, "missing", colorize))
	}
	b.WriteString("\n")

	rows := [][]string{
		{"audio", status.Used.Audio, strconv.Itoa(status.Details.AudioTotal)},
		{"video", status.Used.Video, strconv.Itoa(status.Details.VideoTotal)},
	}
	b.WriteString(renderTable([]string{"Library", "Candidate", "Total"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
	b.WriteString("\n")

	if len(status.Items) > 0 {
		items := make([][]string, 0, len(status.Items))
		for i, item := range status.Items {
			items = append(items, []string{strconv.Itoa(i + 1), item})
		}
		b.WriteString(renderTable([]string{"#", "Hit"}, items, []columnAlignment{alignRight, alignLeft}))
		b.WriteString("\n")
	}
	return b.String()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
