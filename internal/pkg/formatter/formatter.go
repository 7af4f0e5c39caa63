package formatter

import (
	"fmt"

	"github.com/artin-ai/onboarding-backend/internal/entity"
)

const baseTitle = "Business Profile"

// Formatter renders a completed business profile for download.
type Formatter interface {
	Format(profile *entity.ProfileDTO) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
