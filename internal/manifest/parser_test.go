package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(testPath(name))
	require.NoError(t, err)
	return data
}

func TestParse_ValidRegistry(t *testing.T) {
	m, err := Parse(readTestdata(t, "valid-registry.json"))
	require.NoError(t, err)

	assert.Equal(t, "1.4.0", m.Version)
	assert.Len(t, m.Components, 3)

	card, ok := m.Component("card")
	require.True(t, ok)
	assert.Equal(t, "Card", card.Name)
	assert.Equal(t, []string{"button"}, card.Dependencies)
	assert.Equal(t, []string{"Card.php"}, card.Files.Code)
	assert.Equal(t, []string{"card/index.blade.php", "card/header.blade.php"}, card.Files.Template)
	assert.Equal(t, 3, card.FileCount())

	primitives, ok := m.Component("primitives")
	require.True(t, ok)
	assert.Equal(t, 0, primitives.FileCount())

	_, ok = m.Component("missing")
	assert.False(t, ok)
}

func TestParse_InvalidDocuments(t *testing.T) {
	tests := []struct {
		file string
		desc string
	}{
		{"invalid-missing-components.json", "components object is required"},
		{"invalid-bad-files.json", "files.php must be an array"},
		{"invalid-bad-version.json", "version must be semver"},
		{"invalid-not-json.json", "document is not JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			m, err := Parse(readTestdata(t, tt.file))
			assert.Error(t, err, tt.desc)
			assert.Nil(t, m)
		})
	}
}

func TestParse_SparseComponents(t *testing.T) {
	m, err := Parse(readTestdata(t, "valid-sparse-components.json"))
	require.NoError(t, err)

	badge, ok := m.Component("badge")
	require.True(t, ok)
	assert.Empty(t, badge.Name)
	assert.Equal(t, "badge", badge.DisplayName("badge"))
	assert.Nil(t, badge.Dependencies)
	assert.Equal(t, []string{"Badge.php"}, badge.Files.Code)
	assert.Equal(t, 1, badge.FileCount())

	divider, ok := m.Component("divider")
	require.True(t, ok)
	assert.Equal(t, 0, divider.FileCount())
}

func TestParse_DefaultsEmptyMaps(t *testing.T) {
	m, err := Parse([]byte(`{"components": {}}`))
	require.NoError(t, err)
	assert.NotNil(t, m.Components)
	assert.NotNil(t, m.Categories)
	assert.Empty(t, m.Names())
}

func TestValidate_IssueFields(t *testing.T) {
	result, err := Validate(readTestdata(t, "invalid-bad-files.json"))
	require.NoError(t, err)
	require.False(t, result.Valid)
	require.NotEmpty(t, result.Issues)

	issue := result.Issues[0]
	assert.Equal(t, "/components/button/files/php", issue.Path)
	assert.Equal(t, "type", issue.Keyword)
	assert.NotEmpty(t, issue.Message)
}

func TestSemVer_TolerateVPrefix(t *testing.T) {
	m := &Manifest{Version: "v2.1.0"}
	v, err := m.SemVer()
	require.NoError(t, err)
	assert.Equal(t, "2.1.0", v.String())
}

func TestNames_Sorted(t *testing.T) {
	m, err := Parse(readTestdata(t, "valid-registry.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{"button", "card", "primitives"}, m.Names())
}

func TestCategoryName(t *testing.T) {
	m, err := Parse(readTestdata(t, "valid-registry.json"))
	require.NoError(t, err)

	tests := []struct {
		id   string
		want string
	}{
		{"forms", "Forms"},
		{"layout", "Layout"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, m.CategoryName(tt.id))
		})
	}
	assert.Equal(t, "Form controls", m.CategoryDescription("forms"))
	assert.Empty(t, m.CategoryDescription("layout"))
}
