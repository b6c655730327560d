package diagfmt

import (
	"encoding/json"
	"io"

	"synport/internal/diag"
)

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity diag.Severity `json:"severity"`
	Code     string        `json:"code"`
	Title    string        `json:"title"`
	Path     string        `json:"path,omitempty"`
	Message  string        `json:"message"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Truncated   bool             `json:"truncated,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, opts JSONOpts) DiagnosticsOutput {
	var items []diag.Diagnostic
	if bag != nil {
		items = bag.Items()
	}
	limit := len(items)
	if opts.Max > 0 && opts.Max < limit {
		limit = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, limit)
	for _, d := range items[:limit] {
		diagnostics = append(diagnostics, DiagnosticJSON{
			Severity: d.Severity,
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Path:     formatPath(d.Path, opts.PathMode, opts.BaseDir),
			Message:  d.Message,
		})
	}
	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Truncated:   limit < len(items),
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, opts))
}
