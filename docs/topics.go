// Package docs embeds the findash help pages, one markdown file per topic.
package docs

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var pages embed.FS

// Index is the page listing every topic.
const Index = "readme"

// All stands for every topic in Pages.
const All = "*"

var ErrUnknownTopic = errors.New("unknown topic")

// Names returns the topics, the index excluded, sorted.
func Names() []string {
	entries, _ := fs.ReadDir(pages, ".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || name == Index {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Page returns the markdown of one topic.
func Page(name string) (string, error) {
	data, err := pages.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("%w %q, run 'findash topic' for the list", ErrUnknownTopic, name)
	}
	return string(data), nil
}

// Pages joins the pages of the topics, in order. No topic means the index.
func Pages(names ...string) (string, error) {
	if len(names) == 0 {
		names = []string{Index}
	}
	var b strings.Builder
	for _, name := range names {
		expanded := []string{name}
		if name == All {
			expanded = Names()
		}
		for _, n := range expanded {
			page, err := Page(n)
			if err != nil {
				return "", err
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(page)
		}
	}
	return b.String(), nil
}
