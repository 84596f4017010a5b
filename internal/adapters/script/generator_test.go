package script

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	g := NewGenerator()

	tests := []struct {
		name       string
		scriptType string
		language   string
		wantLang   string
		wantDeps   []string
	}{
		{"ci_cd python", "ci_cd", "python", "python", []string{"pytest", "coverage"}},
		{"ci_cd bash", "ci_cd", "bash", "bash", nil},
		{"deployment bash", "deployment", "bash", "bash", []string{"docker", "kubectl"}},
		{"testing python", "testing", "python", "python", []string{"pytest", "pytest-cov"}},
		{"unknown type falls back", "data_processing", "python", "python", nil},
		{"unknown language falls back", "ci_cd", "ruby", "python", nil},
		{"empty defaults", "", "", "python", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := g.Generate("automate the nightly build", tt.scriptType, tt.language)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLang, s.Language)
			assert.Equal(t, tt.wantDeps, s.Dependencies)
			assert.Contains(t, s.Content, "automate the nightly build", "requirements are embedded in the script")
			assert.NotEmpty(t, s.Usage)
			assert.True(t, strings.HasPrefix(s.Content, "#!"), "scripts start with a shebang")
		})
	}
}

func TestGenerator_GenerateEmptyRequirements(t *testing.T) {
	g := NewGenerator()
	_, err := g.Generate("", "ci_cd", "python")
	assert.Error(t, err)
}

func TestGenerator_GeneratedScriptsValidate(t *testing.T) {
	g := NewGenerator()

	for _, tc := range []struct{ scriptType, language string }{
		{"ci_cd", "python"},
		{"ci_cd", "bash"},
		{"deployment", "bash"},
		{"testing", "python"},
		{"general", "python"},
	} {
		s, err := g.Generate("do the thing end to end", tc.scriptType, tc.language)
		require.NoError(t, err)

		v, err := g.Validate(s.Content, s.Language)
		require.NoError(t, err)
		assert.Truef(t, v.Valid, "%s/%s: %v", tc.scriptType, tc.language, v.Issues)
	}
}

func TestGenerator_ValidateBash(t *testing.T) {
	g := NewGenerator()

	v, err := g.Validate("echo hello\n", "bash")
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Issues, "missing shebang line")
	assert.NotEmpty(t, v.Suggestions, "missing set -e is worth a suggestion")

	v, err = g.Validate("#!/bin/bash\nset -e\necho ok\n", "bash")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Empty(t, v.Issues)
	assert.Empty(t, v.Suggestions)
}

func TestGenerator_ValidatePython(t *testing.T) {
	g := NewGenerator()

	v, err := g.Validate("subprocess.run(['ls'])\n", "python")
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Issues, "subprocess used but not imported")

	v, err = g.Validate("import subprocess\nsubprocess.run('ls', shell=True)\n", "python")
	require.NoError(t, err)
	assert.True(t, v.Valid, "security findings are suggestions, not hard failures")
	assert.NotEmpty(t, v.Suggestions)

	v, err = g.Validate("import os\nos.system('ls')\n", "python")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.NotEmpty(t, v.Suggestions)
}

func TestGenerator_ValidateErrors(t *testing.T) {
	g := NewGenerator()

	_, err := g.Validate("", "python")
	assert.Error(t, err)

	_, err = g.Validate("puts 'hi'", "ruby")
	assert.Error(t, err)
}
