package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"rulegen/internal/common"
)

// Well-known diagnostic codes.
const (
	CodeSkippedDirective     = "skipped_directive"
	CodeTargetOnlyDirective  = "target_only_directive"
	CodeLowInformation       = "low_information_directive"
	CodeNameIntersection     = "name_intersection_fallback"
	CodeNestingTruncated     = "nesting_truncated"
	CodeUnmappedField        = "unmapped_field"
	CodeFuzzyMatch           = "fuzzy_match"
	CodeDuplicateOperation   = "duplicate_operation"
	CodeInvalidReturns       = "invalid_returns"
	CodeInvalidPath          = "invalid_path"
	CodeTypeNotFound         = "type_not_found"
	CodeEmptyOperationName   = "empty_operation_name"
	CodeOperationHasNoFields = "operation_has_no_fields"
)

// Diagnostics holds all diagnostic information from one invocation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Operation identifies which mapping operation or document pair this relates to (if any).
	Operation string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func newDiagnostic(severity DiagnosticSeverity, code, message, operation, fieldPath string) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Operation: operation, FieldPath: fieldPath}
}

// AddError records a finding that fails the invocation.
func (d *Diagnostics) AddError(code, message, operation, fieldPath string) {
	d.Errors = append(d.Errors, newDiagnostic(DiagnosticError, code, message, operation, fieldPath))
}

// AddWarning records a finding that changed or dropped input.
func (d *Diagnostics) AddWarning(code, message, operation, fieldPath string) {
	d.Warnings = append(d.Warnings, newDiagnostic(DiagnosticWarning, code, message, operation, fieldPath))
}

// AddInfo records a finding that needs no action.
func (d *Diagnostics) AddInfo(code, message, operation, fieldPath string) {
	d.Infos = append(d.Infos, newDiagnostic(DiagnosticInfo, code, message, operation, fieldPath))
}

func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge appends other, which may be nil.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// ByCode returns every diagnostic, of any severity, with the given code.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// All returns errors, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Operation != "" {
		prefix = append(prefix, "["+d.Operation+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
