package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFor(t *testing.T) {
	testcases := map[string]Type{
		"https://contoso.sharepoint.com/sites/Team": TypeSharePoint,
		"http://localhost:8080/":                    TypeSharePoint,
		"file:///var/lib/doclib":                    TypeLocal,
	}
	for site, want := range testcases {
		got, err := TypeFor(site)
		require.NoError(t, err, site)
		assert.Equal(t, want, got, site)
	}

	_, err := TypeFor("ftp://example.com/")
	assert.Error(t, err)
}
