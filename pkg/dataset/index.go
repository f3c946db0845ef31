// Package dataset loads a listening-history CSV snapshot and answers
// relevance queries over it. The index degrades to "no results" on any load
// failure; no error ever crosses the package boundary at query time.
package dataset

import (
	"encoding/csv"
	"math/rand"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	DefaultMaxResults = 12

	// Seed for the deterministic sample returned on broad domain queries.
	sampleSeed = 42
)

// Row is one normalized dataset entry. Every field is optional; an empty
// string means "unknown", never an error.
type Row struct {
	Timestamp string
	Track     string
	Artist    string
	Album     string
	MsPlayed  string
}

// Column synonym lists, resolved once at load time into fixed indices.
// Order matters: the first matching source column wins.
var (
	timestampColumns = []string{"ts", "endtime", "end_time", "timestamp", "time", "date"}
	trackColumns     = []string{"track_name", "trackname", "track", "song", "title"}
	artistColumns    = []string{"artist_name", "artistname", "artist", "singer"}
	albumColumns     = []string{"album_name", "albumname", "album"}
	msPlayedColumns  = []string{"ms_played", "msplayed", "duration_ms"}
)

var tokenPattern = regexp.MustCompile(`[a-z0-9']+`)

// Stop words that don't help with music search.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "this": true, "that": true, "these": true,
	"those": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true,
	"my": true, "your": true, "his": true, "its": true, "our": true,
	"their": true, "mine": true, "yours": true, "hers": true, "ours": true,
	"theirs": true,
}

// Broad vocabulary marking a query as being about the listening history at
// all, used for the sample fallback when no concrete keyword survives.
var domainKeywords = []string{
	"song", "songs", "music", "track", "tracks", "artist", "artists",
	"album", "albums", "spotify", "listen", "listening", "played", "play",
	"plays", "favorite", "best", "top", "history", "data", "dataset",
	"records", "entries", "taste", "preference",
}

// Index owns an immutable normalized snapshot of the dataset. Load happens
// at most once; afterwards queries are lock-free and safe under unbounded
// concurrent readers.
type Index struct {
	path string

	once      sync.Once
	rows      []Row
	haystacks []string
	available bool
}

func NewIndex(path string) *Index {
	return &Index{path: path}
}

// Available reports whether the snapshot loaded, triggering the lazy load on
// first use.
func (ix *Index) Available() bool {
	ix.once.Do(ix.load)
	return ix.available
}

// RowCount returns the number of loaded rows (0 when unavailable).
func (ix *Index) RowCount() int {
	ix.once.Do(ix.load)
	return len(ix.rows)
}

func (ix *Index) load() {
	if ix.path == "" {
		return
	}
	data, err := os.ReadFile(ix.path)
	if err != nil {
		return
	}

	// Encoding fallbacks: UTF-8 with BOM first (a BOM is valid UTF-8 and
	// would otherwise poison the first header column), then plain UTF-8,
	// then the legacy Windows codepage exports sometimes come in.
	for _, decode := range []func([]byte) (string, bool){
		decodeUTF8BOM,
		decodeUTF8,
		decodeWindows1252,
	} {
		text, ok := decode(data)
		if !ok {
			continue
		}
		if ix.parse(text) {
			ix.available = true
			return
		}
	}
}

func decodeUTF8(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}

func decodeUTF8BOM(data []byte) (string, bool) {
	trimmed, found := strings.CutPrefix(string(data), "\uFEFF")
	if !found || !utf8.ValidString(trimmed) {
		return "", false
	}
	return trimmed, true
}

func decodeWindows1252(data []byte) (string, bool) {
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

// parse reads the CSV text and builds the normalized rows. Returns false on
// any parse error so the caller can try the next encoding.
func (ix *Index) parse(text string) bool {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil || len(records) == 0 {
		return false
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	tsIdx := resolveColumn(header, timestampColumns)
	trackIdx := resolveColumn(header, trackColumns)
	artistIdx := resolveColumn(header, artistColumns)
	albumIdx := resolveColumn(header, albumColumns)
	msIdx := resolveColumn(header, msPlayedColumns)

	rows := make([]Row, 0, len(records)-1)
	haystacks := make([]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := Row{
			Timestamp: fieldAt(record, tsIdx),
			Track:     fieldAt(record, trackIdx),
			Artist:    fieldAt(record, artistIdx),
			Album:     fieldAt(record, albumIdx),
			MsPlayed:  fieldAt(record, msIdx),
		}
		rows = append(rows, row)

		hay := strings.TrimSpace(row.Track + " " + row.Artist + " " + row.Album)
		haystacks = append(haystacks, strings.ToLower(hay))
	}

	ix.rows = rows
	ix.haystacks = haystacks
	return true
}

// resolveColumn returns the index of the first source column whose name
// appears in the synonym list, or -1 when the logical field is absent.
func resolveColumn(header []string, synonyms []string) int {
	accepted := make(map[string]bool, len(synonyms))
	for _, s := range synonyms {
		accepted[s] = true
	}
	for i, col := range header {
		if accepted[col] {
			return i
		}
	}
	return -1
}

func fieldAt(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// ExtractKeywords lowercases the text, pulls alphanumeric runs (apostrophes
// included), and drops one-character tokens and stop words.
func ExtractKeywords(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 1 && !stopWords[w] {
			keywords = append(keywords, w)
		}
	}
	return keywords
}

// IsDomainQuery reports whether the query mentions the listening history at
// all (substring match, matching how generic questions are phrased).
func IsDomainQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, keyword := range domainKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// FindRelevant returns at most maxResults rows ranked by how many query
// keywords appear in each row's haystack. Broad domain queries that yield no
// keywords get a deterministic sample instead of an empty result, so generic
// questions ("what songs do I like?") still surface content.
func (ix *Index) FindRelevant(query string, maxResults int) []Row {
	ix.once.Do(ix.load)
	if !ix.available {
		return nil
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	keywords := ExtractKeywords(query)

	if IsDomainQuery(query) && len(keywords) == 0 {
		return ix.sample(maxResults)
	}
	if len(keywords) == 0 {
		return nil
	}

	type scored struct {
		idx   int
		score int
	}
	var matches []scored
	for i, hay := range ix.haystacks {
		if hay == "" {
			continue
		}
		score := 0
		for _, k := range keywords {
			if strings.Contains(hay, k) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{idx: i, score: score})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	// Stable keeps original row order for equal scores
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	results := make([]Row, len(matches))
	for i, m := range matches {
		results[i] = ix.rows[m.idx]
	}
	return results
}

// sample returns min(n, rowCount) rows chosen with a fixed seed so repeated
// calls yield the identical selection.
func (ix *Index) sample(n int) []Row {
	if n > len(ix.rows) {
		n = len(ix.rows)
	}
	rng := rand.New(rand.NewSource(sampleSeed))
	perm := rng.Perm(len(ix.rows))

	results := make([]Row, n)
	for i := 0; i < n; i++ {
		results[i] = ix.rows[perm[i]]
	}
	return results
}
