package jserrors

import (
	"fmt"
	"io"
)

// ErrReporter is the user-facing error sink of the CLI. ReportPanic is used for
// failures that stop a script before it runs (I/O, scan and parse errors),
// ReportError for failures raised while it runs.
type ErrReporter interface {
	ReportPanic(err error)
	ReportError(err error)
}

type errReporter struct {
	w io.Writer
}

func NewErrReporter(w io.Writer) *errReporter {
	return &errReporter{w: w}
}

// ReportPanic implements ErrReporter.
func (e *errReporter) ReportPanic(err error) {
	DefaultReportPanic(e.w, err)
}

// ReportError implements ErrReporter.
func (e *errReporter) ReportError(err error) {
	DefaultReportError(e.w, err)
}

// DefaultReportPanic writes one FATAL line per error joined into err.
func DefaultReportPanic(w io.Writer, err error) {
	report(w, "FATAL", err)
}

// DefaultReportError writes one ERROR line per error joined into err.
func DefaultReportError(w io.Writer, err error) {
	report(w, "ERROR", err)
}

func report(w io.Writer, level string, err error) {
	for _, e := range flatten(err) {
		fmt.Fprintf(w, "%s %v\n", level, e)
	}
}

// flatten expands errors.Join trees. Other wrappers are reported as a whole.
func flatten(err error) []error {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	var errs []error
	for _, e := range joined.Unwrap() {
		if e != nil {
			errs = append(errs, flatten(e)...)
		}
	}
	return errs
}

var _ ErrReporter = (*errReporter)(nil)
