package dataset

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func writeCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

const sampleCSV = `ts,track_name,artist_name,album_name,ms_played
2023-01-01,Song X,Artist Y,Album Z,215000
2023-01-02,Another Tune,Artist Y,Album Z,180000
2023-01-03,Quiet Nights,Someone Else,Late Hours,90000
2023-01-04,Song X (Live),Artist Y,Live Sessions,230000
`

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  []string
		empty bool
	}{
		{
			name: "drops stop words and short tokens",
			text: "What is the best song by Artist Y",
			want: []string{"what", "best", "song", "artist"},
		},
		{
			name: "keeps apostrophes",
			text: "don't stop believing",
			want: []string{"don't", "stop", "believing"},
		},
		{
			name:  "only stop words",
			text:  "is it the a an",
			empty: true,
		},
		{
			name: "lowercases input",
			text: "SONG X",
			want: []string{"song"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractKeywords(tt.text)
			if tt.empty {
				if len(got) != 0 {
					t.Errorf("ExtractKeywords(%q) = %v, want empty", tt.text, got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsDomainQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"what music do I like?", true},
		{"show my listening history", true},
		{"what songs are in there", true},
		{"what is the capital of France", false},
		{"tell me a joke", false},
	}

	for _, tt := range tests {
		if got := IsDomainQuery(tt.query); got != tt.want {
			t.Errorf("IsDomainQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestIndexUnavailable(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing file", "/nonexistent/history.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := NewIndex(tt.path)
			if ix.Available() {
				t.Fatal("Available() = true, want false")
			}
			if got := ix.FindRelevant("my favorite songs", 5); got != nil {
				t.Errorf("FindRelevant on unavailable index = %v, want nil", got)
			}
		})
	}
}

func TestFindRelevantScoring(t *testing.T) {
	ix := NewIndex(writeCSV(t, []byte(sampleCSV)))
	if !ix.Available() {
		t.Fatal("index should load")
	}
	if got := ix.RowCount(); got != 4 {
		t.Fatalf("RowCount() = %d, want 4", got)
	}

	rows := ix.FindRelevant("Song X by Artist Y", 10)
	if len(rows) == 0 {
		t.Fatal("expected matches")
	}
	if rows[0].Track != "Song X" {
		t.Errorf("top match track = %q, want %q", rows[0].Track, "Song X")
	}
	keywords := ExtractKeywords("Song X by Artist Y")
	for i := 1; i < len(rows); i++ {
		if rowScore(rows[i], keywords) > rowScore(rows[i-1], keywords) {
			t.Errorf("results not in descending score order at %d", i)
		}
	}
	for i, r := range rows {
		if rowScore(r, keywords) == 0 {
			t.Errorf("row %d has zero score", i)
		}
	}

	// Non-domain query with no matching keywords stays empty.
	if got := ix.FindRelevant("capital of France", 10); got != nil {
		t.Errorf("non-domain miss = %v, want nil", got)
	}
}

func rowScore(row Row, keywords []string) int {
	hay := strings.ToLower(row.Track + " " + row.Artist + " " + row.Album)
	score := 0
	for _, k := range keywords {
		if strings.Contains(hay, k) {
			score++
		}
	}
	return score
}

func TestFindRelevantMaxResults(t *testing.T) {
	ix := NewIndex(writeCSV(t, []byte(sampleCSV)))

	rows := ix.FindRelevant("Artist Y", 2)
	if len(rows) > 2 {
		t.Errorf("len = %d, want at most 2", len(rows))
	}

	// Non-positive cap falls back to the default.
	rows = ix.FindRelevant("Artist Y", 0)
	if len(rows) == 0 || len(rows) > DefaultMaxResults {
		t.Errorf("len with default cap = %d", len(rows))
	}
}

func TestSampleDeterminism(t *testing.T) {
	ix := NewIndex(writeCSV(t, []byte(sampleCSV)))
	if !ix.Available() {
		t.Fatal("index should load")
	}

	first := ix.sample(3)
	second := ix.sample(3)
	if len(first) != 3 {
		t.Fatalf("sample size = %d, want 3", len(first))
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("sample is not deterministic across calls")
	}

	// Asking for more than available returns everything once.
	if got := ix.sample(50); len(got) != 4 {
		t.Errorf("oversized sample = %d rows, want 4", len(got))
	}
}

func TestColumnSynonyms(t *testing.T) {
	csvAlt := `endTime,trackName,artistName,msPlayed
2023-02-01,Dawn Chorus,Morning Band,120000
`
	ix := NewIndex(writeCSV(t, []byte(csvAlt)))
	if !ix.Available() {
		t.Fatal("index should load with synonym headers")
	}

	rows := ix.FindRelevant("dawn chorus", 5)
	if len(rows) != 1 {
		t.Fatalf("len = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.Timestamp != "2023-02-01" || row.Track != "Dawn Chorus" ||
		row.Artist != "Morning Band" || row.MsPlayed != "120000" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.Album != "" {
		t.Errorf("album should be empty, got %q", row.Album)
	}
}

func TestEncodingFallbacks(t *testing.T) {
	utf8BOM := append([]byte("\uFEFF"), []byte(sampleCSV)...)

	latinCSV := "ts,track_name,artist_name\n2023-03-01,Caf\xe9 Del Mar,Se\xf1or Tune\n"

	tests := []struct {
		name    string
		content []byte
		query   string
		track   string
		ts      string
	}{
		// The BOM must be stripped or it corrupts the first header column.
		{"utf8 bom", utf8BOM, "song x", "Song X", "2023-01-01"},
		{"windows-1252", []byte(latinCSV), "mar", "Café Del Mar", "2023-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := NewIndex(writeCSV(t, tt.content))
			if !ix.Available() {
				t.Fatal("index should load")
			}
			rows := ix.FindRelevant(tt.query, 5)
			if len(rows) == 0 {
				t.Fatal("expected a match")
			}
			if rows[0].Track != tt.track {
				t.Errorf("track = %q, want %q", rows[0].Track, tt.track)
			}
			if rows[0].Timestamp != tt.ts {
				t.Errorf("timestamp = %q, want %q", rows[0].Timestamp, tt.ts)
			}
		})
	}
}

func TestWindows1252RoundTrip(t *testing.T) {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes([]byte{0xe9})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(decoded) != "é" {
		t.Errorf("decoded = %q, want %q", decoded, "é")
	}
}
