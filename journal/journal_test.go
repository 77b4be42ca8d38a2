package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJournal(t *testing.T) *Journal {
	t.Helper()
	dir := t.TempDir()
	j, err := Open(dir + "/test.db")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_InMemory(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	n, err := j.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestJournal_AppendAssignsIncreasingSeq(t *testing.T) {
	j := setupTestJournal(t)
	ctx := context.Background()

	seq1, err := j.Append(ctx, "tok-1", "demo.action", []byte(`{"n":1}`))
	require.NoError(t, err)
	seq2, err := j.Append(ctx, "tok-2", "demo.action", []byte(`{"n":2}`))
	require.NoError(t, err)

	assert.Equal(t, int64(1), seq1)
	assert.Equal(t, int64(2), seq2)
}

func TestJournal_EntriesInSeqOrder(t *testing.T) {
	j := setupTestJournal(t)
	ctx := context.Background()

	for _, payload := range []string{`"a"`, `"b"`, `"c"`} {
		_, err := j.Append(ctx, "", "string", []byte(payload))
		require.NoError(t, err)
	}

	entries, err := j.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, []byte(`"a"`), entries[0].Payload)
	assert.Equal(t, int64(3), entries[2].Seq)
	assert.Equal(t, []byte(`"c"`), entries[2].Payload)
}

func TestOpen_ResumesClockFromExistingJournal(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/journal.db"
	ctx := context.Background()

	j, err := Open(path)
	require.NoError(t, err)
	_, err = j.Append(ctx, "", "demo", []byte(`1`))
	require.NoError(t, err)
	_, err = j.Append(ctx, "", "demo", []byte(`2`))
	require.NoError(t, err)
	require.NoError(t, j.Close())

	// Reopening continues the numbering, it does not restart at 1.
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	seq, err := reopened.Append(ctx, "", "demo", []byte(`3`))
	require.NoError(t, err)
	assert.Equal(t, int64(3), seq)
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/journal.db"

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	n, err := j2.Len(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
