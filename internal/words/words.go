// Package words assembles letters read from puzzle slots into a word and
// checks it against a dictionary that can be reloaded while the game runs.
package words

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Empty marks a slot without a letter.
const Empty rune = 0

var ErrEmptyDictionary = errors.New("words: dictionary has no entries")

// Assemble concatenates the letters of occupied slots in order and
// uppercases the result. ok is false when every slot is empty.
func Assemble(slots []rune) (word string, ok bool) {
	var b strings.Builder
	for _, r := range slots {
		if r == Empty {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}

// Evaluate assembles slots and reports the word only if dict contains it.
func Evaluate(slots []rune, dict *Dictionary) (string, bool) {
	word, ok := Assemble(slots)
	if !ok || !dict.Contains(word) {
		return "", false
	}
	return word, true
}

// Dictionary is a set of uppercase words. It is safe to read while another
// goroutine replaces its contents.
type Dictionary struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{}
	d.Replace(words)
	return d
}

// Replace swaps the whole word list in one step. Entries are trimmed and
// uppercased.
func (d *Dictionary) Replace(words []string) {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w = strings.ToUpper(strings.TrimSpace(w)); w != "" {
			set[w] = struct{}{}
		}
	}
	d.mu.Lock()
	d.words = set
	d.mu.Unlock()
}

// Contains matches word case-insensitively. Surrounding whitespace is part
// of the word. A nil dictionary contains nothing.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.words[strings.ToUpper(word)]
	return ok
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.words)
}

// Words returns the entries sorted.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	out := make([]string, 0, len(d.words))
	for w := range d.words {
		out = append(out, w)
	}
	d.mu.RUnlock()
	slices.Sort(out)
	return out
}

// File is the on-disk word list. JSON is accepted too since it parses as YAML.
type File struct {
	Words []string `yaml:"words"`
}

// ParseWords decodes a word list document: either a File or a bare list.
func ParseWords(data []byte) ([]string, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		if err := yaml.Unmarshal(data, &f.Words); err != nil {
			return nil, fmt.Errorf("words: parse: %w", err)
		}
	}
	if len(f.Words) == 0 {
		return nil, ErrEmptyDictionary
	}
	return f.Words, nil
}

// LoadDictionary reads a word list file.
func LoadDictionary(path string) (*Dictionary, error) {
	list, err := readWords(path)
	if err != nil {
		return nil, err
	}
	return NewDictionary(list...), nil
}

// Reload replaces d's contents from path. On error d is left untouched.
func (d *Dictionary) Reload(path string) error {
	list, err := readWords(path)
	if err != nil {
		return err
	}
	d.Replace(list)
	return nil
}

func readWords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	list, err := ParseWords(data)
	if err != nil {
		return nil, fmt.Errorf("words: load %s: %w", path, err)
	}
	return list, nil
}
