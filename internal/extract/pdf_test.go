package extract

import (
	"strings"
	"testing"

	"skillproof/internal/errors"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Senior Backend Engineer",
			expected: "Senior Backend Engineer",
		},
		{
			name:     "control characters become spaces",
			input:    "Node\x00js\x07 developer\x7f",
			expected: "Node js developer",
		},
		{
			name:     "whitespace runs collapse",
			input:    "  React \t\t and \n\n  SQL  ",
			expected: "React and SQL",
		},
		{
			name:     "only control characters",
			input:    "\x00\x01\x02",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.expected {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTextFromPDFFallback(t *testing.T) {
	// Not a parseable PDF, but the byte stream carries readable text.
	data := []byte("%PDF-1.4 corrupted\nJohn Doe\nSkills: JavaScript, Node, SQL\n")

	text, err := TextFromPDF(data)
	if err != nil {
		t.Fatalf("TextFromPDF returned error: %v", err)
	}
	if !strings.Contains(text, "John Doe") {
		t.Errorf("fallback text missing candidate name: %q", text)
	}
	if !strings.Contains(text, "JavaScript, Node, SQL") {
		t.Errorf("fallback text missing skills line: %q", text)
	}
	if strings.Contains(text, "\n") {
		t.Errorf("expected collapsed whitespace, got %q", text)
	}
}

func TestTextFromPDFInvalidUTF8(t *testing.T) {
	data := []byte{0xff, 0xfe, 'G', 'o', ' ', 'e', 'n', 'g', 'i', 'n', 'e', 'e', 'r', 0xff}

	text, err := TextFromPDF(data)
	if err != nil {
		t.Fatalf("TextFromPDF returned error: %v", err)
	}
	if !strings.Contains(text, "Go engineer") {
		t.Errorf("expected readable text to survive scrubbing, got %q", text)
	}
}

func TestTextFromPDFEmptyInput(t *testing.T) {
	_, err := TextFromPDF(nil)
	if err == nil {
		t.Fatal("expected error for empty input")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidRequest {
		t.Errorf("code = %q, want %q", appErr.Code, errors.ErrCodeInvalidRequest)
	}
}

func TestTextFromPDFNoRecoverableText(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0x03}

	_, err := TextFromPDF(data)
	if err == nil {
		t.Fatal("expected error when no text can be recovered")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %q, want %q", appErr.Code, errors.ErrCodeInvalidFormat)
	}
}
