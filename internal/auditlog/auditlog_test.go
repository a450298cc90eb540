package auditlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

	err := Append(dir, []Entry{
		{Timestamp: ts, Statement: "balance-sheet", Scope: "project=p1", Discrepancy: "0.00"},
	})
	require.NoError(t, err)

	// Second append must not repeat the header.
	err = Append(dir, []Entry{
		{Timestamp: ts.Add(time.Hour), Statement: "categories", Scope: "type=expense", Details: "12 rows"},
	})
	require.NoError(t, err)

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "balance-sheet", entries[0].Statement)
	assert.Equal(t, "0.00", entries[0].Discrepancy)
	assert.True(t, entries[0].Timestamp.Equal(ts))
	assert.Equal(t, "12 rows", entries[1].Details)
	assert.Empty(t, entries[1].Discrepancy)
}

func TestReadMissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntryBadShape(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	assert.Error(t, err)

	_, err = UnmarshalEntry([]string{"not-a-time", "s", "sc", "d", ""})
	assert.Error(t, err)
}
