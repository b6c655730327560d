package diag

import "fmt"

// Diagnostic reports one problem (or notable event) for a single item of a
// batch run. Path names the directory or file the item refers to.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Path     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s: %s", d.Severity, d.Code.ID(), d.Path, d.Message)
}

// Warning is a shortcut for SevWarning diagnostics.
func Warning(code Code, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevWarning, Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Error is a shortcut for SevError diagnostics.
func Error(code Code, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}

// Info is a shortcut for SevInfo diagnostics.
func Info(code Code, path, format string, args ...any) Diagnostic {
	return Diagnostic{Severity: SevInfo, Code: code, Path: path, Message: fmt.Sprintf(format, args...)}
}
