package workdir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewManagerPrefersEnvOverConfig(t *testing.T) {
	env := t.TempDir()
	t.Setenv("TOPOGEN_WORKDIR", env)
	m := NewManager(nil)
	abs, err := filepath.Abs(env)
	require.NoError(t, err)
	require.Equal(t, abs, m.Path())
}

func TestSetPathPersistsAcrossManagers(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TOPOGEN_WORKDIR", "")

	chosen := filepath.Join(t.TempDir(), "mychoice")
	m1 := NewManager(nil)
	require.NoError(t, m1.SetPath(chosen))

	m2 := NewManager(nil)
	abs, err := filepath.Abs(chosen)
	require.NoError(t, err)
	require.Equal(t, abs, m2.Path())
}

func TestEnsureStructureCreatesRunsDir(t *testing.T) {
	t.Setenv("TOPOGEN_WORKDIR", filepath.Join(t.TempDir(), "wd"))
	m := NewManager(nil)
	require.NoError(t, m.EnsureStructure())
	info, err := os.Stat(filepath.Join(m.Path(), "runs"))
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestSaveRunWritesMetadataAndArtifacts(t *testing.T) {
	t.Setenv("TOPOGEN_WORKDIR", filepath.Join(t.TempDir(), "wd"))
	m := NewManager(nil)
	require.NoError(t, m.EnsureStructure())

	rec := m.NewRun(2, 1)
	require.NotEmpty(t, rec.ID)

	err := m.SaveRun(rec, map[string]string{"report.txt": "hello"})
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(rec.OutputDir, "report.txt"))
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))

	_, err = os.Stat(filepath.Join(rec.OutputDir, "run.yaml"))
	require.NoError(t, err)
}

func TestListRunsReturnsSavedRunIDs(t *testing.T) {
	t.Setenv("TOPOGEN_WORKDIR", filepath.Join(t.TempDir(), "wd"))
	m := NewManager(nil)
	require.NoError(t, m.EnsureStructure())

	rec := m.NewRun(1, 0)
	require.NoError(t, m.SaveRun(rec, nil))

	ids, err := m.ListRuns()
	require.NoError(t, err)
	require.Contains(t, ids, rec.ID)
}

func TestListRunsOnMissingDirReturnsEmpty(t *testing.T) {
	t.Setenv("TOPOGEN_WORKDIR", filepath.Join(t.TempDir(), "wd-unused"))
	m := NewManager(nil)
	ids, err := m.ListRuns()
	require.NoError(t, err)
	require.Empty(t, ids)
}
