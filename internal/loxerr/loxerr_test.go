package loxerr_test

import (
	"testing"

	"github.com/halprin/glox/internal/loxerr"
)

func TestErrorsReport(t *testing.T) {
	var errs loxerr.Errors
	if errs.HasErrors() {
		t.Fatal("new Errors should not have errors")
	}

	errs.Report(3, "at 'x'", "Undefined variable 'x'.")
	if !errs.HasErrors() {
		t.Fatal("expected HasErrors to be true after Report")
	}

	got := errs.Err().Error()
	want := "[line 3] Error at 'x': Undefined variable 'x'."
	if got != want {
		t.Errorf("Err().Error() = %q, want %q", got, want)
	}
}

func TestErrorsReportNoWhere(t *testing.T) {
	var errs loxerr.Errors
	errs.Report(1, "", "Unexpected character.")
	got := errs.Err().Error()
	want := "[line 1] Error: Unexpected character."
	if got != want {
		t.Errorf("Err().Error() = %q, want %q", got, want)
	}
}

func TestRuntimeError(t *testing.T) {
	err := &loxerr.RuntimeError{Line: 5, Message: "Undefined variable 'a'."}
	want := "Undefined variable 'a'.\n[line 5]"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
