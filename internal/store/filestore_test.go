package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreCreatesNamespaceDirectories(t *testing.T) {
	root := t.TempDir()
	_, err := NewFileStore(root)
	require.NoError(t, err)

	for _, ns := range []string{NamespaceSessions, NamespaceIdeas, NamespaceComments} {
		info, err := os.Stat(filepath.Join(root, ns))
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	doc := []byte(`{"session_id":"abc"}`)
	require.NoError(t, st.Write(NamespaceSessions, "abc", doc))

	got, err := st.Read(NamespaceSessions, "abc")
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestFileStoreReadMissing(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = st.Read(NamespaceSessions, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreCorruptDocumentIsAbsent(t *testing.T) {
	root := t.TempDir()
	st, err := NewFileStore(root)
	require.NoError(t, err)

	path := filepath.Join(root, NamespaceIdeas, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err = st.Read(NamespaceIdeas, "bad")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreListSkipsCorruptAndForeignFiles(t *testing.T) {
	root := t.TempDir()
	st, err := NewFileStore(root)
	require.NoError(t, err)

	require.NoError(t, st.Write(NamespaceIdeas, "good", []byte(`{"id":"good"}`)))
	require.NoError(t, os.WriteFile(filepath.Join(root, NamespaceIdeas, "bad.json"), []byte("{nope"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, NamespaceIdeas, ".gitkeep"), nil, 0o644))

	docs, err := st.List(NamespaceIdeas)
	require.NoError(t, err)
	require.Len(t, docs, 1)
}

func TestFileStoreOverwriteLastWriteWins(t *testing.T) {
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Write(NamespaceSessions, "abc", []byte(`{"v":1}`)))
	require.NoError(t, st.Write(NamespaceSessions, "abc", []byte(`{"v":2}`)))

	got, err := st.Read(NamespaceSessions, "abc")
	require.NoError(t, err)
	require.JSONEq(t, `{"v":2}`, string(got))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "forge.db"))
	require.NoError(t, err)
	defer st.Close()

	doc := []byte(`{"id":"idea-1"}`)
	require.NoError(t, st.Write(NamespaceIdeas, "idea-1", doc))

	got, err := st.Read(NamespaceIdeas, "idea-1")
	require.NoError(t, err)
	require.JSONEq(t, string(doc), string(got))

	_, err = st.Read(NamespaceIdeas, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Write(NamespaceIdeas, "idea-1", []byte(`{"id":"idea-1","views":3}`)))
	docs, err := st.List(NamespaceIdeas)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.JSONEq(t, `{"id":"idea-1","views":3}`, string(docs[0]))
}
