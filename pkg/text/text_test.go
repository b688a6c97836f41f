package text

import (
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Überweisung.docx": "uberweisung.docx",
		"Café Menu":        "cafe menu",
		"plain":            "plain",
		"":                 "",
	}
	for in, want := range tests {
		got, err := Normalize(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestExtensionIcon(t *testing.T) {
	assert.Equal(t, EmojiDocument, ExtensionIcon("pdf"))
	assert.Equal(t, EmojiSpreadsheet, ExtensionIcon("XLSX"))
	assert.Equal(t, EmojiUnknown, ExtensionIcon(""))
	assert.Equal(t, EmojiUnknown, ExtensionIcon("weird"))
}

func TestRelativeTimeFrom(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		then time.Time
		want string
	}{
		{time.Time{}, "unknown"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-2 * 24 * time.Hour), "2 days ago"},
		{now.Add(-30 * 24 * time.Hour), "14 Feb 2024 12:00 UTC"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, RelativeTimeFrom(tc.then, now), tc.then.String())
	}
}

func TestBadgeColorIsStable(t *testing.T) {
	assert.Equal(t, BadgeColor("pdf"), BadgeColor("pdf"))
	assert.Equal(t, BadgeColor("pdf"), BadgeColor("PDF"))
	assert.NotEmpty(t, string(BadgeColor("docx")))
	assert.Equal(t, "", Badge(""))
}

func TestStyleFilteredText(t *testing.T) {
	plain := termenv.Style{}
	assert.Equal(t, "Budget.xlsx", StyleFilteredText("Budget.xlsx", "", plain))
	assert.Equal(t, "Budget.xlsx", StyleFilteredText("Budget.xlsx", "zzz", plain))
	assert.NotEmpty(t, StyleFilteredText("Budget.xlsx", "bud", plain))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Quarter…", Truncate("Quarterly Report", 8))
	assert.Equal(t, "short", Truncate("short", 8))
	assert.Equal(t, "", Truncate("anything", 0))
}
