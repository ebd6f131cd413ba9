package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTemplate(t *testing.T) {
	root := writeTemplate(t, t.TempDir(), "tpl",
		"NAME=x\nUNUSED - never referenced\n",
		map[string]string{
			"a.txt.template":    "%%(NAME)%%\n%%(TYPO)%%",
			"nested/b.template": "%%(NAME)%% %%(OTHER)%%",
			"plain.txt":         "%%(IGNORED)%%",
			"raw/.template":     "%%(ALSO_IGNORED)%%",
		})

	result, err := CheckTemplate(context.Background(), CheckTemplateOptions{Path: root})
	require.NoError(t, err)

	assert.Equal(t, 2, result.FilesChecked)
	assert.False(t, result.OK())
	assert.Equal(t, []string{"UNUSED"}, result.Unused)
	assert.Equal(t, []TokenUse{
		{Key: "TYPO", File: "a.txt.template", Line: 2},
		{Key: "OTHER", File: "nested/b.template", Line: 1},
	}, result.Undefined)
}

func TestCheckTemplate_Clean(t *testing.T) {
	root := writeTemplate(t, t.TempDir(), "tpl", "A=1\n", map[string]string{"a.template": "%%(A)%%"})

	result, err := CheckTemplate(context.Background(), CheckTemplateOptions{Path: root})
	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestCheckTemplate_NoContent(t *testing.T) {
	_, err := CheckTemplate(context.Background(), CheckTemplateOptions{Path: t.TempDir()})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ValidationFailed, appErr.Type)
}
