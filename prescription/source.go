package prescription

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/openrx/pharmacy-api/interfaces"
)

// Source kinds accepted by the upload pipeline.
const (
	SourceText  = "text"
	SourcePDF   = "pdf"
	SourceImage = "image"
)

var _ interfaces.TextExtractor = (*PlainTextExtractor)(nil)
var _ interfaces.TextExtractor = (*SimulatedOCRExtractor)(nil)

// PlainTextExtractor passes a plain-text payload through unchanged.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(_ context.Context, _ string, payload []byte) (string, error) {
	return string(payload), nil
}

// SimulatedOCRExtractor stands in for a real OCR service. It waits a fixed
// delay and returns canned prescription text; once started it always
// completes, regardless of the context.
type SimulatedOCRExtractor struct {
	Delay time.Duration
	Text  string
}

// NewSimulatedPDFExtractor returns the stand-in extractor for PDF uploads.
func NewSimulatedPDFExtractor() *SimulatedOCRExtractor {
	return &SimulatedOCRExtractor{
		Delay: 2 * time.Second,
		Text: `
PRESCRIPTION

Patient: John Doe

Rx:
1. Amoxicillin 500mg - Take 2 tablets daily for 7 days
2. Ibuprofen 200mg - Take 1 tablet every 6 hours as needed
3. Omeprazole 20mg - Take 1 capsule daily before breakfast
4. Vitamin D3 1000IU - Take 1 tablet daily

Dr. Smith
License: MD12345
`,
	}
}

// NewSimulatedImageExtractor returns the stand-in extractor for image uploads.
func NewSimulatedImageExtractor() *SimulatedOCRExtractor {
	return &SimulatedOCRExtractor{
		Delay: 3 * time.Second,
		Text: `
MEDICAL PRESCRIPTION

Patient Name: Jane Smith

Prescribed Medications:
- Metformin 850mg tablets - 2 times daily
- Lisinopril 10mg - once daily
- Aspirin 81mg - once daily
- Atorvastatin 20mg - once daily at bedtime

Dr. Johnson, MD
`,
	}
}

func (e *SimulatedOCRExtractor) Extract(_ context.Context, _ string, _ []byte) (string, error) {
	time.Sleep(e.Delay)
	return e.Text, nil
}

// ExtractorForSource returns the extractor for a declared source kind.
func ExtractorForSource(kind string) (interfaces.TextExtractor, error) {
	switch strings.ToLower(kind) {
	case SourceText, "":
		return PlainTextExtractor{}, nil
	case SourcePDF:
		return NewSimulatedPDFExtractor(), nil
	case SourceImage:
		return NewSimulatedImageExtractor(), nil
	}
	return nil, fmt.Errorf("unsupported prescription source kind: %s", kind)
}

// SourceForFilename infers the source kind from a file extension, matching
// the upload types the storefront accepts.
func SourceForFilename(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", "":
		return SourceText, nil
	case ".pdf":
		return SourcePDF, nil
	case ".png", ".jpg", ".jpeg":
		return SourceImage, nil
	}
	return "", fmt.Errorf("unsupported prescription file type: %s", filepath.Ext(filename))
}
