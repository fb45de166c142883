package shell

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireUnixTools skips tests that spawn real child processes when
// the usual tools are missing.
func requireUnixTools(t *testing.T, names ...string) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("requires unix userland")
	}
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			t.Skipf("%s not installed", name)
		}
	}
}

func TestLaunchRedirectOut(t *testing.T) {
	requireUnixTools(t, "echo")

	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	s, stdout, stderr := newTestShell(afero.NewOsFs())
	require.NoError(t, s.Execute("echo hi > "+out))

	contents, err := afero.ReadFile(s.fs, out)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(contents))

	// The operators and filename never reach the command, and nothing
	// lands on the shell's own stdout.
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestLaunchRedirectTruncates(t *testing.T) {
	requireUnixTools(t, "echo")

	out := filepath.Join(t.TempDir(), "out.txt")
	s, _, _ := newTestShell(afero.NewOsFs())

	require.NoError(t, s.Execute("echo first first first > "+out))
	require.NoError(t, s.Execute("echo second > "+out))

	contents, err := afero.ReadFile(s.fs, out)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(contents))
}

func TestLaunchRedirectAppends(t *testing.T) {
	requireUnixTools(t, "echo")

	out := filepath.Join(t.TempDir(), "out.txt")
	s, _, _ := newTestShell(afero.NewOsFs())

	require.NoError(t, s.Execute("echo a >> "+out))
	require.NoError(t, s.Execute("echo b >> "+out))

	contents, err := afero.ReadFile(s.fs, out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(contents))
}

func TestLaunchPipeline(t *testing.T) {
	requireUnixTools(t, "cat", "wc")

	in := filepath.Join(t.TempDir(), "in.txt")
	s, stdout, stderr := newTestShell(afero.NewOsFs())
	require.NoError(t, afero.WriteFile(s.fs, in, []byte("one\ntwo\nthree\n"), 0644))

	require.NoError(t, s.Execute("cat < "+in+" | wc -l"))

	assert.Equal(t, "3", strings.TrimSpace(stdout.String()))
	assert.Empty(t, stderr.String())
}

func TestLaunchPipelineRepeated(t *testing.T) {
	requireUnixTools(t, "echo", "cat")

	s, stdout, _ := newTestShell(afero.NewOsFs())

	// Leaked pipe ends would deadlock one of these long before the
	// test timeout.
	const rounds = 40
	for i := 0; i < rounds; i++ {
		require.NoError(t, s.Execute("echo x | cat"))
	}

	assert.Equal(t, strings.Repeat("x\n", rounds), stdout.String())
}

func TestLaunchPipeUsage(t *testing.T) {
	cases := map[string]string{
		"pipe at start": "| cat",
		"pipe at end":   "echo x |",
		"lonely pipe":   "|",
	}

	for tn, line := range cases {
		t.Run(tn, func(t *testing.T) {
			s, _, stderr := newTestShell(afero.NewOsFs())

			require.NoError(t, s.Execute(line))
			assert.Contains(t, stderr.String(), "usage: cmd | cmd")
		})
	}
}

func TestLaunchNotFound(t *testing.T) {
	s, _, stderr := newTestShell(afero.NewOsFs())

	require.NoError(t, s.Execute("doesnotexist123"))
	assert.Contains(t, stderr.String(), "doesnotexist123: command not found")
}

func TestLaunchNotFoundInPipeline(t *testing.T) {
	requireUnixTools(t, "cat")

	s, _, stderr := newTestShell(afero.NewOsFs())

	// The surviving side must not hang on the broken pipe.
	require.NoError(t, s.Execute("cat | doesnotexist123"))
	assert.Contains(t, stderr.String(), "doesnotexist123: command not found")
}

func TestLaunchMissingRedirectTarget(t *testing.T) {
	s, stdout, stderr := newTestShell(afero.NewOsFs())

	require.NoError(t, s.Execute("cat < /definitely/not/here.txt"))

	assert.Contains(t, stderr.String(), "cannot open /definitely/not/here.txt")
	assert.Empty(t, stdout.String())
}

func TestLaunchChildFailureIsQuiet(t *testing.T) {
	requireUnixTools(t, "false")

	s, _, stderr := newTestShell(afero.NewOsFs())

	// The child ran and exited nonzero; that is its business, not the
	// shell's, and the loop keeps going.
	require.NoError(t, s.Execute("false"))
	assert.Empty(t, stderr.String())
}

func TestFindPipe(t *testing.T) {
	assert.Equal(t, -1, findPipe(tokenize("echo hi")))
	assert.Equal(t, 1, findPipe(tokenize("a | b")))
	// Only the first pipe splits; the second is segment B's problem.
	assert.Equal(t, 1, findPipe(tokenize("a | b | c")))
}
