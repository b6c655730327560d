package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"synport/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид, по одной на строку:
//
//	<severity>: <CODE> <path>: <message>
//
// The path is left out when the message already names it. Items are printed
// in bag order, so callers sort the bag first.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	for _, d := range bag.Items() {
		if d.Severity < opts.MinSeverity {
			continue
		}
		fmt.Fprintln(w, Line(d, opts))
	}
}

// Line renders a single diagnostic the way Pretty does.
func Line(d diag.Diagnostic, opts PrettyOpts) string {
	label := strings.ToLower(d.Severity.String()) + ":"
	var labelStyle *color.Color
	switch d.Severity {
	case diag.SevError:
		labelStyle = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		labelStyle = color.New(color.FgYellow, color.Bold)
	default:
		labelStyle = color.New(color.FgCyan)
	}
	codeStyle := color.New(color.Faint)
	if opts.Color {
		labelStyle.EnableColor()
		codeStyle.EnableColor()
	} else {
		labelStyle.DisableColor()
		codeStyle.DisableColor()
	}

	label = labelStyle.Sprint(label)
	code := codeStyle.Sprint(d.Code.ID())
	if d.Path != "" && !strings.Contains(d.Message, d.Path) {
		return fmt.Sprintf("%s %s %s: %s", label, code, formatPath(d.Path, opts.PathMode, opts.BaseDir), d.Message)
	}
	return fmt.Sprintf("%s %s %s", label, code, d.Message)
}
