package errors

import (
	"fmt"
	"sync"

	"github.com/conneroisu/sfcc/internal/ast"
)

// Severity represents the severity of a diagnostic
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText lets diagnostics serialize with readable severities.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity name written by MarshalText.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = SeverityInfo
	case "warning":
		*s = SeverityWarning
	case "error":
		*s = SeverityError
	default:
		return fmt.Errorf("unknown severity %q", text)
	}
	return nil
}

// Diagnostic is a problem found in a user template. Diagnostics never stop
// compilation.
type Diagnostic struct {
	Code     string             `json:"code" yaml:"code"`
	Message  string             `json:"message" yaml:"message"`
	Severity Severity           `json:"severity" yaml:"severity"`
	Loc      ast.SourceLocation `json:"-" yaml:"-"`
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	if d.Loc.IsStub() {
		return fmt.Sprintf("%s: %s [%s]", d.Severity, d.Message, d.Code)
	}
	return fmt.Sprintf("%d:%d: %s: %s [%s]", d.Loc.Start.Line, d.Loc.Start.Column, d.Severity, d.Message, d.Code)
}

// DiagnosticCollector collects diagnostics in report order.
type DiagnosticCollector struct {
	diagnostics []Diagnostic
	mutex       sync.RWMutex
}

// NewDiagnosticCollector creates an empty collector
func NewDiagnosticCollector() *DiagnosticCollector {
	return &DiagnosticCollector{
		diagnostics: make([]Diagnostic, 0),
	}
}

// Add appends a diagnostic
func (dc *DiagnosticCollector) Add(d Diagnostic) {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()
	dc.diagnostics = append(dc.diagnostics, d)
}

// Warn appends a warning diagnostic
func (dc *DiagnosticCollector) Warn(code, message string, loc ast.SourceLocation) {
	dc.Add(Diagnostic{Code: code, Message: message, Severity: SeverityWarning, Loc: loc})
}

// Diagnostics returns a copy of the collected diagnostics
func (dc *DiagnosticCollector) Diagnostics() []Diagnostic {
	dc.mutex.RLock()
	defer dc.mutex.RUnlock()
	result := make([]Diagnostic, len(dc.diagnostics))
	copy(result, dc.diagnostics)
	return result
}

// HasErrors reports whether any diagnostic has error severity
func (dc *DiagnosticCollector) HasErrors() bool {
	dc.mutex.RLock()
	defer dc.mutex.RUnlock()
	for _, d := range dc.diagnostics {
		if d.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// Len returns the number of diagnostics
func (dc *DiagnosticCollector) Len() int {
	dc.mutex.RLock()
	defer dc.mutex.RUnlock()
	return len(dc.diagnostics)
}

// Clear removes all diagnostics
func (dc *DiagnosticCollector) Clear() {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()
	dc.diagnostics = dc.diagnostics[:0]
}

// Assert panics with an internal CompilerError when cond is false. It guards
// invariants of trees built upstream; a failure is a programming defect, not
// a user diagnostic.
func Assert(cond bool, format string, args ...interface{}) {
	if cond {
		return
	}
	panic(NewInternalError(ErrCodeInvariant, fmt.Sprintf(format, args...), nil))
}

// Recover converts a panic raised by Assert into an error. Other panics are
// re-raised. Use it only at a command boundary:
//
//	defer errors.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ce, ok := r.(*CompilerError); ok && ce.Type == ErrorTypeInternal {
		*errp = ce
		return
	}
	panic(r)
}
