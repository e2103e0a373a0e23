package template

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDescriptor_Valid(t *testing.T) {
	issues, err := ValidateDescriptor([]byte("name: default\ndescription: d\nversion: 1.2.0\nlove_version: \"11.5\"\n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidateDescriptor_SchemaIssues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		keyword string
	}{
		{"missing name", "description: x\n", "required"},
		{"unknown field", "name: a\ncolor: red\n", "additionalProperties"},
		{"name with separator", "name: a/b\n", "pattern"},
		{"numeric version", "name: a\nversion: 2\n", "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, err := ValidateDescriptor([]byte(tt.yaml))
			require.NoError(t, err)
			require.NotEmpty(t, issues)

			var keywords []string
			for _, i := range issues {
				keywords = append(keywords, i.Keyword)
			}
			assert.Contains(t, keywords, tt.keyword)
		})
	}
}

func TestValidateDescriptor_Semver(t *testing.T) {
	issues, err := ValidateDescriptor([]byte("name: a\nversion: banana\n"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "/version", issues[0].Path)
	assert.Equal(t, "semver", issues[0].Keyword)
}

func TestValidateDescriptor_BadYAML(t *testing.T) {
	_, err := ValidateDescriptor([]byte("name: [unclosed\n"))
	assert.Error(t, err)
}

func TestBundledDescriptorIsValid(t *testing.T) {
	data, err := fs.ReadFile(Bundled(), "default/"+DescriptorFile)
	require.NoError(t, err)

	issues, err := ValidateDescriptor(data)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, filepath.Join(dir, "platformer"), map[string]string{
		"main.lua":     "",
		DescriptorFile: "name: platformer\nversion: 0.2.0\ndescription: Side scroller\n",
	})
	writeTree(t, filepath.Join(dir, "broken"), map[string]string{
		DescriptorFile: "name: broken\nversion: nope\n",
	})
	writeTree(t, filepath.Join(dir, "plain"), map[string]string{"main.lua": ""})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0644))

	infos, err := List(dir)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	assert.Equal(t, "broken", infos[0].Name)
	assert.NotEmpty(t, infos[0].Issues)

	assert.Equal(t, "plain", infos[1].Name)
	assert.Nil(t, infos[1].Descriptor)
	assert.Empty(t, infos[1].Issues)

	assert.Equal(t, "platformer", infos[2].Name)
	require.NotNil(t, infos[2].Descriptor)
	assert.Equal(t, "Side scroller", infos[2].Descriptor.Description)
	assert.Equal(t, "0.2.0", infos[2].Descriptor.Version)
}

func TestList_MissingDir(t *testing.T) {
	infos, err := List(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestCompareVersions(t *testing.T) {
	assert.Equal(t, -1, CompareVersions("1.0.0", "1.1.0"))
	assert.Equal(t, 0, CompareVersions("v1.0.0", "1.0.0"))
	assert.Equal(t, 1, CompareVersions("2.0.0", "garbage"))
	assert.Equal(t, -1, CompareVersions("garbage", "0.0.1"))
}
