package analysis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	_ "embed"
)

//go:embed data/words.txt
var embeddedWords string

//go:embed data/stopwords.txt
var embeddedStopWords string

// Dictionary is the reference word list and stop-word list used by the typo
// signal. It is read-only after construction.
type Dictionary struct {
	words map[string]struct{}
	stop  map[string]struct{}
}

// DictionaryOptions configures LoadDictionary.
type DictionaryOptions struct {
	// WordsFile is an optional extra word list merged with the bundled one.
	WordsFile string
	// StopWordsFile is an optional extra stop-word list.
	StopWordsFile string
	// SkipBundled leaves out the embedded lists.
	SkipBundled bool
}

// NewDictionary builds a dictionary from in-memory lists.
func NewDictionary(words, stopWords []string) *Dictionary {
	d := &Dictionary{
		words: make(map[string]struct{}, len(words)),
		stop:  make(map[string]struct{}, len(stopWords)),
	}
	addWords(d.words, words)
	addWords(d.stop, stopWords)
	return d
}

func addWords(dst map[string]struct{}, words []string) {
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		dst[w] = struct{}{}
	}
}

// ParseWordList reads one word per line. Blank lines and lines starting with
// '#' are skipped.
func ParseWordList(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseWordList(f)
}

// ErrDictionaryUnavailable is returned when no usable word list could be loaded.
var ErrDictionaryUnavailable = errors.New("dictionary unavailable")

// LoadDictionary merges the bundled lists with the optional files.
func LoadDictionary(opts DictionaryOptions) (*Dictionary, error) {
	var words, stop []string

	if !opts.SkipBundled {
		bundled, err := ParseWordList(strings.NewReader(embeddedWords))
		if err != nil {
			return nil, fmt.Errorf("reading bundled words: %w", err)
		}
		words = append(words, bundled...)

		bundledStop, err := ParseWordList(strings.NewReader(embeddedStopWords))
		if err != nil {
			return nil, fmt.Errorf("reading bundled stop words: %w", err)
		}
		stop = append(stop, bundledStop...)
	}

	if path := strings.TrimSpace(opts.WordsFile); path != "" {
		extra, err := readWordFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: words file %q: %v", ErrDictionaryUnavailable, path, err)
		}
		words = append(words, extra...)
	}

	if path := strings.TrimSpace(opts.StopWordsFile); path != "" {
		extra, err := readWordFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: stop words file %q: %v", ErrDictionaryUnavailable, path, err)
		}
		stop = append(stop, extra...)
	}

	dict := NewDictionary(words, stop)
	if !dict.Available() {
		return nil, fmt.Errorf("%w: word list is empty", ErrDictionaryUnavailable)
	}

	return dict, nil
}

var (
	defaultDictOnce sync.Once
	defaultDict     *Dictionary
)

// DefaultDictionary returns the bundled dictionary, loaded once and shared by
// all runs. It returns nil if the bundled data cannot be parsed.
func DefaultDictionary() *Dictionary {
	defaultDictOnce.Do(func() {
		dict, err := LoadDictionary(DictionaryOptions{})
		if err == nil {
			defaultDict = dict
		}
	})
	return defaultDict
}

// Available reports whether the typo signal can run.
func (d *Dictionary) Available() bool {
	return d != nil && len(d.words) > 0
}

// Known reports whether word is in the reference list, directly or as a
// regular inflection of a listed word ("queries", "scalable", "shipped").
func (d *Dictionary) Known(word string) bool {
	if d == nil {
		return false
	}
	return d.known(word, maxInflectionDepth)
}

// Inflections are undone at most twice, so "migrations" reaches "migrate".
const (
	maxInflectionDepth = 2
	minStemLength      = 3
)

var inflections = []struct{ suffix, replace string }{
	{"ies", "y"}, {"es", ""}, {"s", ""},
	{"ied", "y"}, {"ed", ""}, {"ed", "e"},
	{"ing", ""}, {"ing", "e"},
	{"ers", ""}, {"er", ""}, {"er", "e"},
	{"ily", "y"}, {"ly", ""},
	{"able", ""}, {"able", "e"}, {"ible", "e"},
	{"ation", "e"}, {"ation", ""},
	{"ments", ""}, {"ment", ""}, {"ness", ""},
	{"ity", ""}, {"ity", "e"}, {"al", ""},
}

func (d *Dictionary) known(word string, depth int) bool {
	if _, ok := d.words[word]; ok {
		return true
	}
	if depth == 0 {
		return false
	}

	for _, in := range inflections {
		stem, ok := strings.CutSuffix(word, in.suffix)
		if !ok || len(stem) < minStemLength {
			continue
		}
		if d.known(stem+in.replace, depth-1) {
			return true
		}
		// shipped -> shipp -> ship
		if in.replace == "" && doubledEnding(stem) && d.known(stem[:len(stem)-1], depth-1) {
			return true
		}
	}
	return false
}

func doubledEnding(s string) bool {
	n := len(s)
	return n >= 2 && s[n-1] == s[n-2] && !strings.ContainsRune("aeiou", rune(s[n-1]))
}

// StopWord reports whether word is a stop word.
func (d *Dictionary) StopWord(word string) bool {
	if d == nil {
		return false
	}
	_, ok := d.stop[word]
	return ok
}

// Len returns the number of reference words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}
