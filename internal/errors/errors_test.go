package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	base := IngestFailed("cannot open file", fmt.Errorf("permission denied"))
	wrapped := Wrap(base, "ingestion stage")

	if GetCode(wrapped) != CodeIngestFailed {
		t.Errorf("code = %q, want %q", GetCode(wrapped), CodeIngestFailed)
	}
	if !IsAppError(wrapped) {
		t.Error("wrapped AppError should still be an AppError")
	}
}

func TestWrapPlainError(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("boom"), "stage failed")

	if GetCode(wrapped) != CodeInternalError {
		t.Errorf("code = %q, want %q", GetCode(wrapped), CodeInternalError)
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(fmt.Errorf("plain")); got != "UNKNOWN" {
		t.Errorf("code = %q, want UNKNOWN", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := ExportFailed("failed to save workbook", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause through AppError")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		err  *AppError
		code string
	}{
		{ConfigInvalid("bad port"), CodeConfigInvalid},
		{InvalidInput("ragged table"), CodeInvalidInput},
		{IngestFailed("no header", nil), CodeIngestFailed},
		{ExportFailed("readonly dir", nil), CodeExportFailed},
		{InternalError("bug"), CodeInternalError},
	}
	for _, tt := range tests {
		if tt.err.Code != tt.code {
			t.Errorf("code = %q, want %q", tt.err.Code, tt.code)
		}
	}
}
