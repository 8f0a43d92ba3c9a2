package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed start.txt dictionary.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// RootWords returns the embedded start.txt entries.
func RootWords() ([]string, error) {
	return readLines("start.txt")
}

// DictionaryWords returns the embedded lexicon entries.
func DictionaryWords() ([]string, error) {
	return readLines("dictionary.txt")
}
