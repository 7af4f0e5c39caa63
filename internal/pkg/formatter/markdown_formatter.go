package formatter

import (
	"bytes"
	"fmt"

	"github.com/artin-ai/onboarding-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(profile *entity.ProfileDTO) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)
	for _, e := range profile.Entries {
		label := e.Label
		if label == "" {
			label = e.ID
		}
		fmt.Fprintf(&buf, "## %s\n\n%s\n\n", label, e.Answer)
	}
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
