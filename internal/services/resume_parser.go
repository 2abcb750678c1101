package services

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ResumeTextExtractor pulls plain text out of an uploaded resume file so it
// can be folded into the candidate's profile.
type ResumeTextExtractor interface {
	ExtractText(filePath string) (string, error)
}

type pdfResumeExtractor struct{}

func NewPDFResumeExtractor() ResumeTextExtractor {
	return &pdfResumeExtractor{}
}

// ExtractText implements ResumeTextExtractor. Pages that fail to decode are
// skipped; only a resume with no extractable text at all is an error.
func (p *pdfResumeExtractor) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := CleanResumeText(textBuilder.String())
	if text == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return text, nil
}

// CleanResumeText drops blank lines and trims the rest, producing the compact
// form stored on the profile.
func CleanResumeText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
