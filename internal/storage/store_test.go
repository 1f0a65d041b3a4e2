package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/decaysim/internal/catalogue"
	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/particle"
)

func seeded(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat := catalogue.New()
	d := particle.NewDecayer(particle.WithSeed(3), particle.WithMaxIterations(20000))
	res := cat.Seed(d, []config.ParticleSpec{
		{Type: "ZBoson", Decay: true},
		{Type: "Photon", Px: 1, Py: 2, Pz: 2},
		{Type: "Muon", Px: 1e13},
	})
	require.Len(t, res.Rejected, 1)
	return cat
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())
	cat := seeded(t)

	runID, err := st.Save(RunMetadata{Preset: "test", Seed: 3, Rejected: 1}, cat)
	require.NoError(t, err)
	assert.Contains(t, runID, "test_")

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, int64(3), meta.Seed)
	assert.Equal(t, 2, meta.Roots)
	assert.Equal(t, cat.Summary().Descendants, meta.Descendants)

	rows, err := st.LoadParticles(runID)
	require.NoError(t, err)
	assert.Len(t, rows, 2+meta.Descendants)
	assert.Equal(t, "ZBoson", rows[0].Type)
	assert.Equal(t, -1, rows[0].Parent)
	assert.NotEmpty(t, rows[0].Channel)
	assert.Equal(t, 0, rows[1].Parent)
	assert.Equal(t, 1, rows[1].Depth)

	last := rows[len(rows)-1]
	assert.Equal(t, "Photon", last.Type)
	assert.Equal(t, 1, last.Root)
	assert.InDelta(t, 3, last.E, 1e-6)
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	cat := seeded(t)

	_, err := st.Save(RunMetadata{Preset: "a"}, cat)
	require.NoError(t, err)
	_, err = st.Save(RunMetadata{Preset: "b"}, cat)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(st.baseDir, "stray.txt"), []byte("x"), 0644))

	runs, err := st.List()
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestStoreList_MissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLeaves(t *testing.T) {
	rows := []Row{
		{Index: 0, Parent: -1},
		{Index: 1, Parent: 0},
		{Index: 2, Parent: 0},
		{Index: 3, Parent: 2},
		{Index: 4, Parent: -1},
	}
	got := Leaves(rows)
	var idx []int
	for _, r := range got {
		idx = append(idx, r.Index)
	}
	assert.Equal(t, []int{1, 3, 4}, idx)
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	meta := &RunMetadata{ID: "run_1", Preset: "demo"}
	rows := []Row{{Index: 0, Parent: -1, Type: "Photon", E: 5}}
	path := filepath.Join(dir, "out.json")

	require.NoError(t, ExportJSON(path, meta, rows))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got ExportData
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run_1", got.Run.ID)
	assert.Equal(t, rows, got.Particles)
}

func TestExportSQLite(t *testing.T) {
	st := New(t.TempDir())
	cat := seeded(t)
	runID, err := st.Save(RunMetadata{Preset: "sql", Channels: map[string]int{"ZBoson: Hadronic b": 1}}, cat)
	require.NoError(t, err)
	meta, err := st.Load(runID)
	require.NoError(t, err)
	rows, err := st.LoadParticles(runID)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()
	require.NoError(t, ExportSQLite(ctx, path, meta, rows))
	require.NoError(t, ExportSQLite(ctx, path, meta, rows))

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM particles WHERE run_id = ?", runID).Scan(&n))
	assert.Equal(t, len(rows), n)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, db.QueryRow("SELECT count FROM channels WHERE channel = ?", "ZBoson: Hadronic b").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}
