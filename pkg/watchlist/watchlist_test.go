package watchlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raykavin/toppairs/pkg/core"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestFile_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_pairs.txt")
	w := New(path)

	pairs, err := w.Pairs()
	require.NoError(t, err)
	require.Empty(t, pairs)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, w.Append([]core.TradingPair{"BTC/USDT", "ETH/USDT"}))
	require.Equal(t, "BTC/USDT\nETH/USDT\n", readFile(t, path))
}

func TestFile_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("BTC/USDT\n\n  ETH/USDT  \r\nBTC/USDT\n"), 0o644))

	pairs, err := New(path).Pairs()
	require.NoError(t, err)
	require.Equal(t, []core.TradingPair{"BTC/USDT", "ETH/USDT"}, pairs)
}

func TestFile_AppendKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("BTC/USDT\n"), 0o644))

	w := New(path)
	require.NoError(t, w.Append([]core.TradingPair{"SOL/USDT"}))
	require.Equal(t, "BTC/USDT\nSOL/USDT\n", readFile(t, path))
}

func TestFile_AppendWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")
	require.NoError(t, os.WriteFile(path, []byte("BTC/USDT"), 0o644))

	w := New(path)
	require.NoError(t, w.Append([]core.TradingPair{"ETH/USDT"}))
	require.Equal(t, "BTC/USDT\nETH/USDT\n", readFile(t, path))

	pairs, err := w.Pairs()
	require.NoError(t, err)
	require.Equal(t, []core.TradingPair{"BTC/USDT", "ETH/USDT"}, pairs)
}

func TestFile_AppendEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pairs.txt")

	require.NoError(t, New(path).Append(nil))

	_, err := os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFile_LoadError(t *testing.T) {
	// a directory cannot be read as a watchlist
	_, err := New(t.TempDir()).Load()
	require.Error(t, err)
}

func TestNew_DefaultPath(t *testing.T) {
	require.Equal(t, DefaultPath, New("").Path())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePairs_Error(t *testing.T) {
	err := writePairs(failingWriter{}, []core.TradingPair{"BTC/USDT"}, true)
	require.EqualError(t, err, "disk full")
}

func TestWritePairs(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, writePairs(&buf, []core.TradingPair{"BTC/USDT", "ETH/USDT"}, true))
	require.Equal(t, "\nBTC/USDT\nETH/USDT\n", buf.String())
}
