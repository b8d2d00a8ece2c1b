// Package docs embeds the user manual topics shown by `lss topic`.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed *.md
var manual embed.FS

// Topic returns the content of one manual topic. The name "*" expands to
// every topic.
func Topic(name string) (string, error) {
	if name == "*" {
		all, err := All()
		if err != nil {
			return "", err
		}
		return Topics(all...)
	}
	content, err := manual.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("no manual topic %q: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the named topics concatenated, expanding "*".
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for _, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// All returns every topic name, sorted. The readme is the topic index, not
// a topic itself.
func All() ([]string, error) {
	files, err := fs.Glob(manual, "*.md")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, f := range files {
		name := strings.TrimSuffix(f, ".md")
		if name != "readme" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
