package decoder

import (
	"bytes"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
	"github.com/ryan-gang/bookmark-convert/internal/logger"
)

const header = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

const nestedExport = header + `<DL><p>
    <DT><H3 ADD_DATE="1700000000">A</H3>
    <DL><p>
        <DT><H3>B</H3>
        <DL><p>
            <DT><A HREF="http://www.example.com/x" ADD_DATE="0" LAST_MODIFIED="1700000000" ICON="data:image/png;base64,iVBORw0KGgo=">Deep link</A>
        </DL><p>
        <DT><A HREF="mailto:me@example.com">Mail</A>
    </DL><p>
    <DT><A HREF="file:///tmp/notes.html"></A>
    <DT><A HREF="">Empty</A>
</DL><p>
`

func newTestDecoder(buf *bytes.Buffer) *Decoder {
	return New(WithLogger(logger.New(buf, false)), WithLocation(time.UTC))
}

func TestDecodeFolderPaths(t *testing.T) {
	var buf bytes.Buffer
	records, err := newTestDecoder(&buf).Decode(nestedExport, nil)
	require.NoError(t, err)
	require.Len(t, records, 4)

	deep := records[0]
	assert.Equal(t, "Deep link", deep.Title)
	assert.Equal(t, "A > B", deep.Folder)
	assert.Equal(t, "http://www.example.com/x", deep.URL)
	assert.Equal(t, "example.com", deep.Domain)
	assert.Equal(t, "1970-01-01 00:00:00", deep.AddDate)
	assert.Equal(t, "2023-11-14 22:13:20", deep.LastModified)
	assert.Equal(t, bookmark.TypeWebsite, deep.Type)
	assert.True(t, deep.HasIcon)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", deep.Icon)

	mail := records[1]
	assert.Equal(t, "A", mail.Folder)
	assert.Equal(t, bookmark.TypeEmail, mail.Type)
	assert.Equal(t, bookmark.UnknownDate, mail.AddDate)
	assert.False(t, mail.HasIcon)

	untitled := records[2]
	assert.Equal(t, bookmark.UntitledTitle, untitled.Title)
	assert.Equal(t, bookmark.RootFolder, untitled.Folder)
	assert.Equal(t, bookmark.TypeLocal, untitled.Type)

	empty := records[3]
	assert.Equal(t, "", empty.URL)
	assert.Equal(t, "", empty.Domain)
	assert.Equal(t, bookmark.TypeUnknown, empty.Type)
}

func TestDecodeEdgeCases(t *testing.T) {
	tests := map[string]struct {
		markup      string
		wantCount   int
		wantFolders []string
		wantWarning string
	}{
		"no headings uses root folder": {
			markup:      header + `<DL><p><DT><A HREF="https://example.com">One</A><DT><A HREF="https://example.org">Two</A></DL>`,
			wantCount:   2,
			wantFolders: []string{bookmark.RootFolder, bookmark.RootFolder},
		},
		"missing root": {
			markup:      header + `<p><A HREF="https://example.com">Loose</A></p>`,
			wantCount:   0,
			wantWarning: "No <DL> root found",
		},
		"zero anchors": {
			markup:    header + `<DL><p><DT><H3>Empty folder</H3><DL><p></DL><p></DL>`,
			wantCount: 0,
		},
		"empty input": {
			markup:      "",
			wantCount:   0,
			wantWarning: "No <DL> root found",
		},
		"heading whitespace trimmed": {
			markup:      header + `<DL><p><DT><H3>  Tools  </H3><DL><p><DT><A HREF="https://go.dev">Go</A></DL></DL>`,
			wantCount:   1,
			wantFolders: []string{"Tools"},
		},
		"sibling folders do not leak": {
			markup: header + `<DL><p>
				<DT><H3>First</H3><DL><p><DT><A HREF="https://a.example">a</A></DL><p>
				<DT><H3>Second</H3><DL><p><DT><A HREF="https://b.example">b</A></DL><p>
				<DT><A HREF="https://c.example">c</A>
			</DL>`,
			wantCount:   3,
			wantFolders: []string{"First", "Second", bookmark.RootFolder},
		},
		"leading separator stripped": {
			markup:      header + `<DL><p><DT><H3>&gt; Misc</H3><DL><p><DT><A HREF="https://a.example">a</A></DL></DL>`,
			wantCount:   1,
			wantFolders: []string{"Misc"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			records, err := newTestDecoder(&buf).Decode(tc.markup, nil)
			require.NoError(t, err)
			require.NotNil(t, records)
			assert.Len(t, records, tc.wantCount)

			if tc.wantFolders != nil {
				folders := make([]string, 0, len(records))
				for _, r := range records {
					folders = append(folders, r.Folder)
				}
				assert.Equal(t, tc.wantFolders, folders)
			}
			if tc.wantWarning != "" {
				assert.Contains(t, buf.String(), tc.wantWarning)
			}
		})
	}
}

func TestDecodeSkipsMalformedLink(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDecoder(&buf)
	d.build = func(link *goquery.Selection, folder string, loc *time.Location) bookmark.Record {
		if link.AttrOr("href", "") == "https://broken.example" {
			panic("unexpected attribute layout")
		}
		return buildRecord(link, folder, loc)
	}

	markup := header + `<DL><p>
		<DT><A HREF="https://ok.example/1">one</A>
		<DT><A HREF="https://broken.example">bad</A>
		<DT><A HREF="https://ok.example/2">two</A>
	</DL>`

	records, err := d.Decode(markup, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "one", records[0].Title)
	assert.Equal(t, "two", records[1].Title)
	assert.Contains(t, buf.String(), "Skipping bookmark")
	assert.Contains(t, buf.String(), "unexpected attribute layout")
}

func TestDecodeTallyIsCumulative(t *testing.T) {
	var buf bytes.Buffer
	d := newTestDecoder(&buf)

	var session bookmark.Tally
	_, err := d.Decode(nestedExport, &session)
	require.NoError(t, err)
	assert.Equal(t, bookmark.Tally{Files: 1, Bookmarks: 4, Folders: 2}, session)

	_, err = d.Decode(nestedExport, &session)
	require.NoError(t, err)
	assert.Equal(t, bookmark.Tally{Files: 2, Bookmarks: 8, Folders: 4}, session)
}
