package templates

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHome(t *testing.T) {
	p := MustNewPages()

	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf, PageHome, HomeData{Worksheet: "ChatWebhooks"}))
	assert.Contains(t, buf.String(), `href="/api/auth/login"`)
	assert.Contains(t, buf.String(), "ChatWebhooks")

	buf.Reset()
	require.NoError(t, p.Render(&buf, PageHome, HomeData{Worksheet: "ChatWebhooks", Email: "ana@example.com"}))
	assert.Contains(t, buf.String(), "ana@example.com")
	assert.Contains(t, buf.String(), `href="/export"`)
}

func TestRenderExport(t *testing.T) {
	p := MustNewPages()

	var buf bytes.Buffer
	err := p.Render(&buf, PageExport, ExportData{
		Count:          2,
		Worksheet:      "ChatWebhooks",
		Legacy:         true,
		Rows:           []ExportRow{{DisplayName: "Alpha", SpaceID: "spaces/A", MemberCount: 4}},
		SpreadsheetURL: "https://docs.google.com/spreadsheets/d/sheet-id",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<strong>2 spaces</strong>")
	assert.Contains(t, out, "spaces/A")
	assert.Contains(t, out, "legacy layout")
	assert.Contains(t, out, "https://docs.google.com/spreadsheets/d/sheet-id")
}

func TestRenderErrorEscapes(t *testing.T) {
	p := MustNewPages()

	var buf bytes.Buffer
	err := p.Render(&buf, PageError, ErrorData{
		Title:   "Export failed",
		Message: "<script>alert(1)</script>",
		Trace:   []string{"list spaces: boom", "boom"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "list spaces: boom")
}

func TestRenderUnknownPage(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, MustNewPages().Render(&buf, "missing", nil))
}
