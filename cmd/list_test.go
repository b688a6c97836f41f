package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/byxorna/doclib/pkg/config"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentsDump = `{"value":[
 {"Id":1,"Title":"Budget","FileLeafRef":"Budget.xlsx","Modified":"2024-03-01T10:00:00Z","FileRef":"/sites/Team/Documents/Budget.xlsx","Editor":{"Title":"Bob Stone"}},
 {"Id":2,"Title":null,"FileLeafRef":"Report.docx","Modified":"2024-03-05T10:00:00Z","FileRef":"/sites/Team/Documents/Report.docx","Editor":{"Title":"Ann Lee"}}
]}`

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Documents.json"), []byte(documentsDump), 0600))
	c := config.Default
	c.Site = "file://" + dir
	c.Timezone = "UTC"
	require.NoError(t, c.Validate())
	return &c
}

func runLocalList(t *testing.T, cfg *config.Config, filter string, asJSON bool) (string, error) {
	t.Helper()
	s, err := newSession(t.Context(), cfg)
	require.NoError(t, err)
	d, err := s.dispatcher(cfg)
	require.NoError(t, err)
	var out bytes.Buffer
	err = runList(&out, cfg, d, filter, asJSON)
	return out.String(), err
}

func TestListTable(t *testing.T) {
	out, err := runLocalList(t, localConfig(t), "", false)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Name"))
	assert.Contains(t, lines[1], "Report.docx")
	assert.Contains(t, lines[1], "No Title")
	assert.Contains(t, lines[1], "3/5/2024")
	assert.Contains(t, lines[2], "Budget.xlsx")
	assert.NotContains(t, out, "Actions")
}

func TestListJSONFiltered(t *testing.T) {
	out, err := runLocalList(t, localConfig(t), "budget", true)
	require.NoError(t, err)
	var docs []v1.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Budget.xlsx", docs[0].Name)
	assert.Equal(t, "xlsx", docs[0].Extension)
}

func TestListMissingLibrary(t *testing.T) {
	cfg := localConfig(t)
	cfg.Library = "Contracts"
	_, err := runLocalList(t, cfg, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", mask(""))
	assert.Equal(t, "****", mask("abc"))
	assert.Equal(t, "*****6789", mask("123456789"))
}
