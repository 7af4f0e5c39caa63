package formatter

import (
	"testing"

	"github.com/artin-ai/onboarding-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *entity.ProfileDTO {
	return &entity.ProfileDTO{
		ConversationID: "conv-1",
		Entries: []entity.ProfileEntry{
			{ID: "clientName", Label: "Client name", Answer: "Ana"},
			{ID: "companyName", Label: "Company name", Answer: "Acme"},
			{ID: "noLabel", Answer: "fallback"},
		},
	}
}

func TestFactory_Create(t *testing.T) {
	factory := NewFactory()

	md, err := factory.Create(entity.FormatMarkdown)
	require.NoError(t, err)
	assert.IsType(t, &MarkdownFormatter{}, md)

	pdf, err := factory.Create(entity.FormatPDF)
	require.NoError(t, err)
	assert.IsType(t, &PDFFormatter{}, pdf)

	_, err = factory.Create(entity.ResultFormat("docx"))
	assert.Error(t, err)
}

func TestMarkdownFormatter_Format(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(testProfile())
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, "# Business Profile")
	assert.Contains(t, got, "## Client name\n\nAna")
	assert.Contains(t, got, "## Company name\n\nAcme")

	// Entries without a label fall back to the question id.
	assert.Contains(t, got, "## noLabel\n\nfallback")
}

func TestMarkdownFormatter_Metadata(t *testing.T) {
	mf := NewMarkdownFormatter()
	assert.Equal(t, "text/markdown; charset=utf-8", mf.ContentType())
	assert.Equal(t, ".md", mf.FileExtension())
}

func TestPDFFormatter_Format(t *testing.T) {
	out, err := NewPDFFormatter().Format(testProfile())
	require.NoError(t, err)

	// A valid PDF always opens with the %PDF header.
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestPDFFormatter_Metadata(t *testing.T) {
	pf := NewPDFFormatter()
	assert.Equal(t, "application/pdf", pf.ContentType())
	assert.Equal(t, ".pdf", pf.FileExtension())
}
