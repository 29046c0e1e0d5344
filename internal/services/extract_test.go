package services

import (
	"strings"
	"testing"
)

func TestExtractPDFText(t *testing.T) {
	data := samplePDF(t, "The perceptron is the simplest artificial neuron")

	text, err := ExtractPDFText(data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "perceptron") {
		t.Errorf("extracted text missing expected content: %q", text)
	}
}

func TestExtractPDFTextEmptyInput(t *testing.T) {
	if _, err := ExtractPDFText(nil); err == nil {
		t.Fatalf("expected error for empty content")
	}
}

func TestExtractPDFTextGarbageInput(t *testing.T) {
	if _, err := ExtractPDFText([]byte("not a pdf at all")); err == nil {
		t.Fatalf("expected error for non-pdf bytes")
	}
}
