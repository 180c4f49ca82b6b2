package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/dossier"
)

func marshal(t *testing.T, rec dossier.Record) string {
	t.Helper()
	b, err := rec.MarshalJSON()
	require.NoError(t, err)
	return string(b)
}

func TestReadRecords(t *testing.T) {
	t.Run("one object per line", func(t *testing.T) {
		input := `{"government_id":"111-22-3333","full_legal_name":"Ann Lee"}
{"government_id":"444-55-6666","full_legal_name":"Maria Chen"}
`
		records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Ann Lee", records[0].Text("full_legal_name"))
		assert.Equal(t, "444-55-6666", records[1].Text("government_id"))
	})

	t.Run("single top-level array", func(t *testing.T) {
		input := `[{"a":"1"},{"a":"2"},{"a":"3"}]`
		records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "2", records[1].Text("a"))
	})

	t.Run("objects and arrays mixed", func(t *testing.T) {
		input := `{"a":"1"}
[{"a":"2"},{"a":"3"}]
{"a":"4"}`
		records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "4", records[3].Text("a"))
	})

	t.Run("field order survives", func(t *testing.T) {
		input := `{"zeta":"z","alpha":"a","mid":{"y":"1","x":"2"}}`
		records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, input, marshal(t, records[0]))
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, records[0].Names())
	})

	t.Run("number literals are kept verbatim", func(t *testing.T) {
		input := `{"salary":98750.40,"score":745}`
		records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, input, marshal(t, records[0]))
		assert.Equal(t, "98750.40", records[0].Text("salary"))
	})

	t.Run("nested values keep their kinds", func(t *testing.T) {
		input := `{"tradelines":[{"account_type":"Mortgage","credit_limit":null}],"active":true}`
		records, err := ReadRecords(strings.NewReader(input))
		require.NoError(t, err)
		rec := records[0]
		assert.Equal(t, input, marshal(t, rec))
		assert.Equal(t, "true", rec.Text("active"))

		v, ok := rec.Get("tradelines")
		require.True(t, ok)
		items := v.Items()
		require.Len(t, items, 1)
		nested, ok := items[0].Record()
		require.True(t, ok)
		assert.Equal(t, "", nested.Text("credit_limit"))
	})

	t.Run("empty input", func(t *testing.T) {
		records, err := ReadRecords(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("scalar at the top level", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader("42"))
		assert.Error(t, err)
	})

	t.Run("array of scalars", func(t *testing.T) {
		_, err := ReadRecords(strings.NewReader(`[1,2]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not an object")
	})
}

func TestReadRecordBytes(t *testing.T) {
	rec, err := ReadRecordBytes([]byte(`{"a":"1"}`))
	require.NoError(t, err)
	assert.Equal(t, "1", rec.Text("a"))

	_, err = ReadRecordBytes([]byte(`{"a":"1"}{"a":"2"}`))
	assert.Error(t, err)

	_, err = ReadRecordBytes([]byte(``))
	assert.Error(t, err)
}

func TestWriteReadFile(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(
		`{"government_id":"111-22-3333","full_legal_name":"Ann Lee","credit_score":745}
{"government_id":"444-55-6666","full_legal_name":"José García","verified_annual_salary":98750.40}
`))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "synthetic_credit_reports.json")
	require.NoError(t, WriteFile(path, records))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range records {
		assert.Equal(t, marshal(t, records[i]), marshal(t, got[i]))
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"verified_annual_salary":98750.40`)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
