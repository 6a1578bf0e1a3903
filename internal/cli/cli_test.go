package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/booknotes/internal/config"
	"github.com/mrlokans/booknotes/internal/entities"
)

func TestSeedCommand_ParseFlags(t *testing.T) {
	cmd := NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{}))
	assert.Equal(t, config.DefaultDatabasePath, cmd.DatabasePath)
	assert.Equal(t, "warn", cmd.LogLevel)
	assert.False(t, cmd.Reset)

	cmd = NewSeedCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-db", "other.db", "-reset", "-log-level", "silent"}))
	assert.Equal(t, "other.db", cmd.DatabasePath)
	assert.Equal(t, "silent", cmd.LogLevel)
	assert.True(t, cmd.Reset)

	assert.Error(t, NewSeedCommand().ParseFlags([]string{"-unknown"}))
}

func TestExportCommand_ParseFlags(t *testing.T) {
	cmd := NewExportCommand()
	require.NoError(t, cmd.ParseFlags([]string{}))
	assert.Equal(t, config.DefaultExportDir, cmd.OutputDir)

	assert.Error(t, NewExportCommand().ParseFlags([]string{"-out", ""}))
}

func TestCommands_Run(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalog.db")
	outDir := filepath.Join(dir, "markdown")

	seed := NewSeedCommand()
	require.NoError(t, seed.ParseFlags([]string{"-db", dbPath, "-log-level", "silent"}))
	require.NoError(t, seed.Run(ctx))

	// Seeding again without -reset leaves the catalog as is
	require.NoError(t, seed.Run(ctx))

	export := NewExportCommand()
	require.NoError(t, export.ParseFlags([]string{"-db", dbPath, "-log-level", "silent", "-out", outDir}))
	require.NoError(t, export.Run(ctx))

	files, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, files, 12)

	raw, err := os.ReadFile(filepath.Join(outDir, "Sapiens.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "# Sapiens")

	// Leave an orphan behind and let the cleanup command remove it
	db, repo, err := (&catalogFlags{DatabasePath: dbPath, LogLevel: "silent"}).open()
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&entities.Content{ID: "orphan", BookID: "TEMP"}).Error)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), count)
	closeDatabase(db)

	cleanup := NewCleanupContentCommand()
	require.NoError(t, cleanup.ParseFlags([]string{"-db", dbPath, "-log-level", "silent"}))
	require.NoError(t, cleanup.Run(ctx))

	db, repo, err = (&catalogFlags{DatabasePath: dbPath, LogLevel: "silent"}).open()
	require.NoError(t, err)
	defer closeDatabase(db)
	removed, err := repo.DeleteOrphanContent(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCatalogFlags_OpenRejectsUnknownLogLevel(t *testing.T) {
	flags := &catalogFlags{DatabasePath: filepath.Join(t.TempDir(), "catalog.db"), LogLevel: "loud"}

	_, _, err := flags.open()
	assert.Error(t, err)
}
