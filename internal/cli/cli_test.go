package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrowdev/borrow/internal/config"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// runCmd executes a fresh root command with an isolated config file and
// data directory.
func runCmd(t *testing.T, dataDir string, args ...string) cmdResult {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[output]\ncolor = false\n"), 0644))

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath, "--data-dir", dataDir}, args...))

	err := cmd.Execute()
	return cmdResult{stdout: out.String(), stderr: errOut.String(), err: err}
}

// writeTemplate creates a local template named name under a temp dir.
func writeTemplate(t *testing.T, name, placeholders string, files map[string]string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "content"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "placeholders.borrow"), []byte(placeholders), 0644))
	for rel, content := range files {
		path := filepath.Join(root, "content", rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestStartNew_LocalTemplate(t *testing.T) {
	tmpl := writeTemplate(t, "greeting", "NAME=World - Who to greet\nLOUD=false\n", map[string]string{
		"hello.txt.template": "Hello, %%(NAME)%%! loud=%%(LOUD)%%\n",
		"static/README.md":   "%%(NAME)%% stays\n",
	})
	dataDir := t.TempDir()
	target := t.TempDir()

	res := runCmd(t, dataDir, "start", "new",
		"--template", "local:"+tmpl,
		"--target-dir", target,
		"--var", "NAME=Alice",
		"--yes")
	require.NoError(t, res.err, "stderr: %s", res.stderr)

	got, err := os.ReadFile(filepath.Join(target, "greeting", "hello.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Hello, Alice! loud=false\n", string(got))

	got, err = os.ReadFile(filepath.Join(target, "greeting", "static", "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "%%(NAME)%% stays\n", string(got))

	assert.DirExists(t, filepath.Join(dataDir, "start", "templates", "greeting", "content"))
	assert.Contains(t, res.stdout, "Project created successfully")
	assert.Contains(t, res.stdout, "Rendered: 1 files")
}

func TestStartNew_SkipsExistingUnlessForced(t *testing.T) {
	tmpl := writeTemplate(t, "app", "NAME=x\n", map[string]string{
		"a.txt.template": "%%(NAME)%%\n",
	})
	dataDir := t.TempDir()
	target := t.TempDir()
	existing := filepath.Join(target, "app", "a.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0755))
	require.NoError(t, os.WriteFile(existing, []byte("keep\n"), 0644))

	res := runCmd(t, dataDir, "start", "new", "--template", "local:"+tmpl, "--target-dir", target, "--yes")
	require.NoError(t, res.err)
	got, _ := os.ReadFile(existing)
	assert.Equal(t, "keep\n", string(got))
	assert.Contains(t, res.stdout, "Skipped:  1 files")

	res = runCmd(t, dataDir, "start", "new", "--template", "local:"+tmpl, "--target-dir", target, "--yes", "--force")
	require.NoError(t, res.err)
	got, _ = os.ReadFile(existing)
	assert.Equal(t, "x\n", string(got))
}

func TestStartNew_DryRun(t *testing.T) {
	tmpl := writeTemplate(t, "dry", "", map[string]string{"f.txt": "data\n"})
	target := t.TempDir()

	res := runCmd(t, t.TempDir(), "start", "new", "--template", "local:"+tmpl, "--target-dir", target, "--yes", "--dry-run")
	require.NoError(t, res.err)

	assert.NoFileExists(t, filepath.Join(target, "dry", "f.txt"))
	assert.Contains(t, res.stdout, "No files written (dry run).")
	assert.Contains(t, res.stdout, "f.txt")
}

func TestStartNew_MissingValueNonInteractive(t *testing.T) {
	tmpl := writeTemplate(t, "req", "REQUIRED - must be given\n", map[string]string{
		"f.txt.template": "%%(REQUIRED)%%\n",
	})

	res := runCmd(t, t.TempDir(), "start", "new", "--template", "local:"+tmpl, "--target-dir", t.TempDir(), "--yes")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "REQUIRED")
}

func TestStartNew_InvalidReference(t *testing.T) {
	res := runCmd(t, t.TempDir(), "start", "new", "--template", "gh:owner/repo", "--target-dir", t.TempDir(), "--yes")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "Failed to create project")
}

func TestStartNew_RequiresFlags(t *testing.T) {
	res := runCmd(t, t.TempDir(), "start", "new", "--target-dir", t.TempDir())
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "template")
}

func TestStartDel(t *testing.T) {
	tmpl := writeTemplate(t, "gone", "", map[string]string{"f.txt": "x\n"})
	dataDir := t.TempDir()

	res := runCmd(t, dataDir, "start", "new", "--template", "local:"+tmpl, "--target-dir", t.TempDir(), "--yes")
	require.NoError(t, res.err)
	cached := filepath.Join(dataDir, "start", "templates", "gone")
	require.DirExists(t, cached)

	res = runCmd(t, dataDir, "start", "del", "--template", "local:"+tmpl)
	require.NoError(t, res.err)
	assert.NoDirExists(t, cached)
	assert.Contains(t, res.stdout, "Deleted template gone")

	// Deleting again is not an error
	res = runCmd(t, dataDir, "start", "del", "--template", "local:"+tmpl)
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `Template "gone" is not cached`)
}

func TestStartDel_NotCachedReportedWhenQuiet(t *testing.T) {
	res := runCmd(t, t.TempDir(), "--quiet", "start", "del", "--template", "local:/nowhere/ghost")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, `Template "ghost" is not cached`)
}

func TestStartDel_Suggestions(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "start", "templates", "borrowdev-registry-v1-react", "content"), 0755))

	res := runCmd(t, dataDir, "start", "del", "--template", "reakt")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "is not cached")
}

func TestStartList(t *testing.T) {
	dataDir := t.TempDir()

	res := runCmd(t, dataDir, "start", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No templates cached")

	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "start", "templates", "one", "content"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "start", "templates", "borrowdev-registry-v1-two", "content"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "start", "git", "borrowdev-registry-v1-two"), 0755))

	res = runCmd(t, dataDir, "start", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "NAME")
	assert.Contains(t, res.stdout, "one")
	assert.Contains(t, res.stdout, "borrowdev-registry-v1-two")
	assert.Contains(t, res.stdout, "registry")
}

func TestStartCheck(t *testing.T) {
	ok := writeTemplate(t, "ok", "NAME=x\n", map[string]string{"a.template": "%%(NAME)%%\n"})
	res := runCmd(t, t.TempDir(), "start", "check", ok)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Template is consistent")

	bad := writeTemplate(t, "bad", "UNUSED=x\n", map[string]string{"a.template": "%%(MISSING)%%\n"})
	res = runCmd(t, t.TempDir(), "start", "check", bad)
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "undefined placeholder MISSING")
	assert.Contains(t, res.stderr, "placeholder UNUSED is never used")
}

func TestQuietSuppressesOutput(t *testing.T) {
	res := runCmd(t, t.TempDir(), "--quiet", "start", "list")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--json"})
	require.NoError(t, cmd.Execute())

	var info VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)

	out.Reset()
	cmd = NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, info.Version, strings.TrimSpace(out.String()))
}

func TestInvalidConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("data_dir = [broken"), 0644))

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgPath, "start", "list"})

	err := cmd.Execute()
	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, config.ConfigInvalid, cfgErr.Type)
}

func TestShouldPrompt(t *testing.T) {
	orig := stdinIsTerminal
	t.Cleanup(func() { stdinIsTerminal = orig })

	tests := []struct {
		name     string
		yes      bool
		cfg      *config.Config
		terminal bool
		want     bool
	}{
		{"terminal prompts", false, config.DefaultConfig(), true, true},
		{"yes disables", true, config.DefaultConfig(), true, false},
		{"no terminal", false, config.DefaultConfig(), false, false},
		{"config non-interactive", false, &config.Config{Prompt: config.PromptConfig{NonInteractive: true}}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terminal := tt.terminal
			stdinIsTerminal = func() bool { return terminal }
			assert.Equal(t, tt.want, shouldPrompt(tt.yes, tt.cfg))
		})
	}
}

func TestGetGitHubToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	assert.Equal(t, "from-config", getGitHubToken(&config.Config{GitHub: config.GitHubConfig{Token: "from-config"}}))
	assert.Equal(t, "from-env", getGitHubToken(&config.Config{}))
}
