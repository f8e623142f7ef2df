package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudlens/internal/domain"
)

func TestEncodeJSON(t *testing.T) {
	rec := bankRecord()
	rec.Raw = json.RawMessage(`{"bank_name": "Chase Bank", "balances": {"opening": 1000}}`)
	sections := domain.Sections{
		{Name: "Account Information", Fields: []domain.Field{{Label: "Bank Name", Value: "Chase Bank"}}},
		{Name: "Recent Transactions", Fields: []domain.Field{}},
	}

	out, err := EncodeJSON(rec, sections)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Equal(t, "Chase Bank", doc["bank_name"])
	assert.Contains(t, doc, "balances")

	secs, ok := doc["extracted_sections"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, secs, "Account Information")
	assert.Contains(t, secs, "Recent Transactions")

	// Pretty-printed with two-space indent.
	lines := strings.Split(string(out), "\n")
	require.Greater(t, len(lines), 2)
	assert.Equal(t, "{", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  \""), "expected two-space indent, got %q", lines[1])
	assert.False(t, strings.HasPrefix(lines[1], "   "), "expected exactly two spaces, got %q", lines[1])
}

func TestEncodeJSON_SectionOrderSurvivesIndent(t *testing.T) {
	rec := bankRecord()
	rec.Raw = json.RawMessage(`{}`)
	sections := domain.Sections{
		{Name: "Zeta"},
		{Name: "Alpha"},
	}

	out, err := EncodeJSON(rec, sections)
	require.NoError(t, err)

	zeta := strings.Index(string(out), `"Zeta"`)
	alpha := strings.Index(string(out), `"Alpha"`)
	require.NotEqual(t, -1, zeta)
	require.NotEqual(t, -1, alpha)
	assert.Less(t, zeta, alpha)
}

func TestEncodeJSON_NoRawResult(t *testing.T) {
	rec := &Record{Kind: domain.KindCheck, CreatedAt: exportedAt}

	out, err := EncodeJSON(rec, domain.Sections{{Name: "Check Information"}})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Len(t, doc, 1)
	assert.Contains(t, doc, "extracted_sections")
}

func TestEncodeJSON_NonObjectRaw(t *testing.T) {
	rec := bankRecord()
	rec.Raw = json.RawMessage(`"not an object"`)

	out, err := EncodeJSON(rec, nil)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Contains(t, doc, "extracted_sections")
}
