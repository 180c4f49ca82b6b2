package loader

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oarkflow/dossier"
)

func TestMsgpackRoundTrip(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(
		`{"government_id":"111-22-3333","full_legal_name":"Ann Lee","credit_score":745,"active":true,"suffix":null}
{"government_id":"444-55-6666","full_legal_name":"Maria Chen","verified_annual_salary":98750.40}
`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMsgpack(&buf, records))

	got, err := ReadMsgpack(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	t.Run("stream order is kept", func(t *testing.T) {
		assert.Equal(t, "Ann Lee", got[0].Text("full_legal_name"))
		assert.Equal(t, "Maria Chen", got[1].Text("full_legal_name"))
	})

	t.Run("field names come back sorted", func(t *testing.T) {
		assert.Equal(t, []string{"active", "credit_score", "full_legal_name", "government_id", "suffix"}, got[0].Names())
	})

	t.Run("values keep their kinds", func(t *testing.T) {
		assert.Equal(t, "745", got[0].Text("credit_score"))
		score, ok := got[0].Get("credit_score")
		require.True(t, ok)
		assert.Equal(t, dossier.KindNumber, score.Kind())
		assert.Equal(t, "true", got[0].Text("active"))
		assert.Equal(t, "", got[0].Text("suffix"))
	})

	t.Run("floats lose the literal but not the value", func(t *testing.T) {
		assert.Equal(t, "98750.4", got[1].Text("verified_annual_salary"))
	})
}

func TestMsgpackNested(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(
		`{"id":"L1","tradelines":[{"account_type":"Mortgage","balance":421387.22},{"account_type":"Auto Loan","balance":18250.5}]}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMsgpack(&buf, records))
	got, err := ReadMsgpack(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	v, ok := got[0].Get("tradelines")
	require.True(t, ok)
	items := v.Items()
	require.Len(t, items, 2)
	first, ok := items[0].Record()
	require.True(t, ok)
	assert.Equal(t, "Mortgage", first.Text("account_type"))
	assert.Equal(t, "421387.22", first.Text("balance"))
}

func TestMsgpackFile(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(`{"a":"1"}` + "\n" + `{"a":"2"}`))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "synthetic_credit_reports.msgpack")
	require.NoError(t, WriteMsgpackFile(path, records))

	got, err := ReadMsgpackFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[1].Text("a"))

	_, err = ReadMsgpackFile(filepath.Join(t.TempDir(), "nope.msgpack"))
	assert.Error(t, err)
}
