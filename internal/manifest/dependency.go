package manifest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Dependency is a detailed Cargo dependency specification.
type Dependency struct {
	Version         string   `toml:"version"`
	Features        []string `toml:"features"`
	DefaultFeatures bool     `toml:"default-features"`
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// DependencySection encodes dep as a [dependencies.<name>] table.
func DependencySection(name string, dep Dependency) (Section, error) {
	var body bytes.Buffer
	enc := toml.NewEncoder(&body)
	enc.Indent = ""
	if err := enc.Encode(dep); err != nil {
		return Section{}, fmt.Errorf("encoding dependency %s: %w", name, err)
	}

	key := "dependencies." + quoteKey(name)
	return Section{
		Key: "dependencies." + name,
		Raw: "[" + key + "]\n" + body.String(),
	}, nil
}

func quoteKey(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	return strconv.Quote(k)
}
