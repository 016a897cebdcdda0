package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

const export = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3>中文收藏夹</H3>
    <DL><p>
        <DT><A HREF="https://example.com">示例网站</A>
    </DL><p>
</DL><p>
`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadFileEncodings(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(export))
	require.NoError(t, err)

	tests := map[string]struct {
		data      []byte
		encodings []string
		wantText  string
		wantEnc   string
	}{
		"utf-8": {
			data:      []byte(export),
			encodings: []string{"utf-8", "gbk"},
			wantText:  export,
			wantEnc:   "utf-8",
		},
		"utf-8 with bom": {
			data:      append([]byte("\xef\xbb\xbf"), export...),
			encodings: []string{"gbk"},
			wantText:  export,
			wantEnc:   "utf-8",
		},
		"gbk after utf-8 fails": {
			data:      gbk,
			encodings: []string{"utf-8", "gbk", "latin-1"},
			wantText:  export,
			wantEnc:   "gbk",
		},
		"latin-1 fallback": {
			data:      []byte("<DL><DT><A HREF=\"https://example.com\">Caf\xe9</A></DL>"),
			encodings: []string{"utf-8", "latin-1"},
			wantText:  "<DL><DT><A HREF=\"https://example.com\">Café</A></DL>",
			wantEnc:   "latin-1",
		},
		"empty file": {
			data:      []byte{},
			encodings: []string{"utf-8"},
			wantText:  "",
			wantEnc:   "utf-8",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "bookmarks.html", tc.data)
			text, enc, err := NewReader(tc.encodings...).ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantText, text)
			assert.Equal(t, tc.wantEnc, enc)
		})
	}
}

// mostlyASCII is an export with many plain links and one Chinese folder name,
// which charset sniffers tend to report as a single-byte Latin encoding.
func mostlyASCII() string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n<H1>Bookmarks</H1>\n<DL><p>\n")
	for i := 0; i < 40; i++ {
		sb.WriteString("    <DT><A HREF=\"https://example.com/page\">Example page</A>\n")
	}
	sb.WriteString("    <DT><H3>工作</H3>\n    <DL><p>\n        <DT><A HREF=\"https://go.dev\">Go</A>\n    </DL><p>\n</DL><p>\n")
	return sb.String()
}

func TestReadFileDefaultOrder(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(mostlyASCII()))
	require.NoError(t, err)

	tests := map[string]struct {
		data     []byte
		wantText string
		wantEnc  string
	}{
		"utf-8": {
			data:     []byte(mostlyASCII()),
			wantText: mostlyASCII(),
			wantEnc:  "utf-8",
		},
		"mostly ascii gbk": {
			data:     gbk,
			wantText: mostlyASCII(),
			wantEnc:  "gbk",
		},
		"latin-1": {
			data:     []byte("<DL><DT><A HREF=\"https://example.com\">Caf\xe9</A></DL>"),
			wantText: "<DL><DT><A HREF=\"https://example.com\">Café</A></DL>",
			wantEnc:  "latin-1",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "bookmarks.html", tc.data)
			text, enc, err := NewReader().ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantText, text)
			assert.Equal(t, tc.wantEnc, enc)
		})
	}
}

func TestReadFileSniffSkipsSingleByteGuess(t *testing.T) {
	gbk, err := simplifiedchinese.GBK.NewEncoder().Bytes([]byte(mostlyASCII()))
	require.NoError(t, err)

	path := writeFile(t, "bookmarks.html", gbk)
	text, enc, err := NewReader(Auto, "gbk", "latin-1").ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, text, "<H3>工作</H3>")
	assert.Contains(t, []string{"gbk", "gb18030"}, enc)
}

func TestReadFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := NewReader().ReadFile(filepath.Join(t.TempDir(), "nope.html"))
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("no encoding fits", func(t *testing.T) {
		path := writeFile(t, "bad.html", []byte("<DL>\xff\xfe\xfd</DL>"))
		_, _, err := NewReader("utf-8").ReadFile(path)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})

	t.Run("binary content", func(t *testing.T) {
		path := writeFile(t, "archive.html", []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00"))
		_, _, err := NewReader().ReadFile(path)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})

	t.Run("unknown encodings only", func(t *testing.T) {
		path := writeFile(t, "plain.html", []byte("<DL></DL>"))
		_, _, err := NewReader("ebcdic").ReadFile(path)
		assert.True(t, errors.Is(err, ErrUnreadable))
	})
}

func TestSupported(t *testing.T) {
	for _, name := range []string{"auto", "utf-8", "UTF8", "gbk", "gb18030", "latin-1", "iso-8859-1", "cp1252"} {
		assert.True(t, Supported(name), name)
	}
	assert.False(t, Supported("ebcdic"))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.html", "a.HTM", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<DL></DL>"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.html"), 0755))

	files, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.HTM"), filepath.Join(dir, "b.html")}, files)

	single := filepath.Join(dir, "notes.txt")
	files, err = Discover(single)
	require.NoError(t, err)
	assert.Equal(t, []string{single}, files)

	_, err = Discover(filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, ErrNotFound))
}
