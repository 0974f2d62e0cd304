// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// DiagnosticKind classifies a non-fatal condition reported during a run.
type DiagnosticKind string

const (
	// ExtractionWarning: no usable solid geometry; the element exports with
	// no edges.
	ExtractionWarning DiagnosticKind = "extraction-warning"

	// DeletionWarning: the host rejected deleting an opening or hosted element.
	DeletionWarning DiagnosticKind = "deletion-warning"

	// JoinWarning: the host rejected disallowing joins on an element.
	JoinWarning DiagnosticKind = "join-warning"

	// MetadataSkipped: creation metadata lacked a required reference and
	// was not exported.
	MetadataSkipped DiagnosticKind = "metadata-skipped"

	// SandboxFailure: the mutate/extract phase failed and was rolled back.
	SandboxFailure DiagnosticKind = "sandbox-failure"

	// RowExportError: one insert failed and the row was skipped.
	RowExportError DiagnosticKind = "row-export-error"

	// SchemaStateError: a table was already in, or not in, the requested state.
	SchemaStateError DiagnosticKind = "schema-state-error"
)

// IsError reports whether the kind counts as an error rather than a warning
// in run summaries.
func (k DiagnosticKind) IsError() bool {
	switch k {
	case SandboxFailure, RowExportError, SchemaStateError:
		return true
	}
	return false
}

// Diagnostic is one human-readable message from a run.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind" yaml:"kind"`

	// ElementID is InvalidElementID for diagnostics not tied to an element.
	ElementID ElementID `json:"element_id" yaml:"element_id"`

	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	if d.ElementID.Valid() {
		return fmt.Sprintf("%s: element %d: %s", d.Kind, d.ElementID, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

// Diagnostics accumulates diagnostics in the order they were reported. The
// zero value is ready to use.
type Diagnostics struct {
	entries []Diagnostic
}

// Add appends a diagnostic and returns it.
func (d *Diagnostics) Add(kind DiagnosticKind, id ElementID, format string, args ...any) Diagnostic {
	entry := Diagnostic{Kind: kind, ElementID: id, Message: fmt.Sprintf(format, args...)}
	d.entries = append(d.entries, entry)
	return entry
}

// Append adds already-built diagnostics.
func (d *Diagnostics) Append(entries ...Diagnostic) {
	d.entries = append(d.entries, entries...)
}

// All returns every diagnostic in report order.
func (d *Diagnostics) All() []Diagnostic {
	return append([]Diagnostic(nil), d.entries...)
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.entries)
}

// OfKind returns the diagnostics of one kind.
func (d *Diagnostics) OfKind(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, e := range d.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Warnings returns the diagnostics that are not errors.
func (d *Diagnostics) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, e := range d.entries {
		if !e.Kind.IsError() {
			out = append(out, e)
		}
	}
	return out
}

// Errors returns the error diagnostics.
func (d *Diagnostics) Errors() []Diagnostic {
	var out []Diagnostic
	for _, e := range d.entries {
		if e.Kind.IsError() {
			out = append(out, e)
		}
	}
	return out
}
