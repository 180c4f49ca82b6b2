package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/dossier"
)

func writeDataset(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "synthetic_credit_reports.json"), `{"a":"1"}`)
	writeDataset(t, filepath.Join(dir, "synthetic_lien_records.json"), `{"a":"2"}`)
	writeDataset(t, filepath.Join(dir, "notes.json"), `{"a":"3"}`)
	writeDataset(t, filepath.Join(dir, "synthetic_raw.csv"), "a,b")

	found, err := Discover(dir)
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, filepath.Join(dir, "synthetic_credit_reports.json"), found["credit_reports"])
	assert.Equal(t, filepath.Join(dir, "synthetic_lien_records.json"), found["lien_records"])

	names, err := DiscoverNames(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"credit_reports", "lien_records"}, names)
}

func TestDiscoverEmptyDir(t *testing.T) {
	found, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDataPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "synthetic_credit_reports.json"), DataPath("data", "credit_reports"))
}

func TestRecordsSource(t *testing.T) {
	dir := t.TempDir()
	source := Records(dir)
	ctx := context.Background()

	t.Run("conventional path", func(t *testing.T) {
		writeDataset(t, DataPath(dir, "credit_reports"), `{"full_legal_name":"Ann Lee"}`)
		records, err := source(ctx, "credit_reports", dossier.DatasetConfig{})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Ann Lee", records[0].Text("full_legal_name"))
	})

	t.Run("explicit path wins", func(t *testing.T) {
		other := filepath.Join(dir, "elsewhere.json")
		writeDataset(t, other, `{"full_legal_name":"Maria Chen"}`)
		records, err := source(ctx, "credit_reports", dossier.DatasetConfig{Path: other})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Maria Chen", records[0].Text("full_legal_name"))
	})

	t.Run("msgpack extension picks the msgpack reader", func(t *testing.T) {
		path := filepath.Join(dir, "packed.msgpack")
		require.NoError(t, WriteMsgpackFile(path, mustRecords(t, `{"full_legal_name":"William Smith"}`)))
		got, err := source(ctx, "credit_reports", dossier.DatasetConfig{Path: path})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "William Smith", got[0].Text("full_legal_name"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := source(ctx, "income_verification", dossier.DatasetConfig{})
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := source(cancelled, "credit_reports", dossier.DatasetConfig{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func mustRecords(t *testing.T, body string) []dossier.Record {
	t.Helper()
	records, err := ReadRecordBytes([]byte(body))
	require.NoError(t, err)
	return []dossier.Record{records}
}

func TestStaticSource(t *testing.T) {
	records := mustRecords(t, `{"full_legal_name":"Ann Lee"}`)
	source := Static(map[string][]dossier.Record{"credit_reports": records})

	got, err := source(context.Background(), "credit_reports", dossier.DatasetConfig{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = source(context.Background(), "unknown", dossier.DatasetConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestDBSourceUnconfigured(t *testing.T) {
	source := DB(map[string]dossier.Database{})
	_, err := source(context.Background(), "credit_reports", dossier.DatasetConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database configured")
}
