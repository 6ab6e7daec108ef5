package dropfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

// ftyp header, enough for content sniffing to call it video/mp4.
var mp4Magic = []byte("\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isomiso2avc1mp41")

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, os.ModePerm); err != nil {
		t.Fatal("failed to write file:", err)
	}
	return path
}

func TestParseURIList(t *testing.T) {
	payload := "# dropped from a file manager\r\n" +
		"file:///videos/clip%20one.mp4\r\n" +
		"http://example.com/remote.mp4\r\n" +
		"\r\n" +
		"file:///videos/two.mkv\r\n"

	got := ParseURIList([]byte(payload))
	expect := []string{"/videos/clip one.mp4", "/videos/two.mkv"}

	if ineqs := deep.Equal(got, expect); ineqs != nil {
		t.Errorf("unexpected paths: %v", ineqs)
	}
}

func TestParseURIListEmpty(t *testing.T) {
	if got := ParseURIList(nil); len(got) != 0 {
		t.Errorf("empty payload produced %d paths", len(got))
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()

	playlist := writeFile(t, dir, "wall.m3u",
		[]byte("#EXTM3U\n#EXTINF:10,First\nfirst.mp4\n/abs/second.mkv\n"))

	got := Expand([]string{"/videos/before.mp4", playlist, "/videos/after.webm"})
	expect := []string{
		"/videos/before.mp4",
		filepath.Join(dir, "first.mp4"),
		"/abs/second.mkv",
		"/videos/after.webm",
	}

	if ineqs := deep.Equal(got, expect); ineqs != nil {
		t.Errorf("unexpected expansion: %v", ineqs)
	}
}

func TestExpandMissingPlaylist(t *testing.T) {
	got := Expand([]string{"/videos/a.mp4", "/nope/gone.m3u"})
	expect := []string{"/videos/a.mp4"}

	if ineqs := deep.Equal(got, expect); ineqs != nil {
		t.Errorf("unexpected expansion: %v", ineqs)
	}
}

func TestFilterVideos(t *testing.T) {
	dir := t.TempDir()

	one := writeFile(t, dir, "one.mp4", mp4Magic)
	note := writeFile(t, dir, "note.txt", []byte("not a video at all\n"))
	two := writeFile(t, dir, "two.mp4", mp4Magic)
	// Text content with a video extension is still not a video.
	fake := writeFile(t, dir, "fake.mp4", []byte("plain text in disguise\n"))

	got := FilterVideos([]string{one, note, two, fake})
	expect := []string{one, two}

	if ineqs := deep.Equal(got, expect); ineqs != nil {
		t.Errorf("unexpected filtering: %v", ineqs)
	}
}

func TestFilterVideosUnreadable(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.mkv")
	bogus := filepath.Join(dir, "missing.doc")

	got := FilterVideos([]string{missing, bogus})
	expect := []string{missing}

	if ineqs := deep.Equal(got, expect); ineqs != nil {
		t.Errorf("unexpected filtering: %v", ineqs)
	}
}
