package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/agentsmd/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches the working directory for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestResolveProject_RelativeRootIsAbsolute(t *testing.T) {
	root := testutil.TempProject(t)
	chdir(t, filepath.Dir(root))

	proj, err := ResolveProject(ProjectOptions{Root: filepath.Base(root)})
	require.NoError(t, err)

	assert.Equal(t, root, proj.Root)
	assert.Equal(t, filepath.Join(root, ".agents.md"), proj.Local)
}

func TestResolveProject_DetectsRoot(t *testing.T) {
	root := testutil.TempProject(t)
	nested := testutil.CreateDir(t, root, "src/app")

	proj, err := ResolveProject(ProjectOptions{Path: nested})
	require.NoError(t, err)
	assert.Equal(t, root, proj.Root)
}

func TestProject_Templates(t *testing.T) {
	root := testutil.TempProject(t)
	shared := filepath.Join(t.TempDir(), "shared.md")

	proj := &Project{Root: root, Local: filepath.Join(root, ".agents.md"), Shared: shared}
	assert.Equal(t, []string{shared}, proj.Templates())

	testutil.CreateFile(t, root, ".agents.md", "x")
	assert.Equal(t, []string{proj.Local, shared}, proj.Templates())

	proj.Shared = proj.Local
	assert.Equal(t, []string{proj.Local}, proj.Templates())
}
