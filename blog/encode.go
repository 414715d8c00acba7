package blog

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Marshal renders p as a document with YAML front matter followed by its
// content. The slug is not part of the document; parsing the result with
// the same slug yields a post equal to p.
//
// The front matter is written in JSON style so every string is quoted:
// plain scalars such as .inf or a value holding a tab would read back as a
// different value.
func Marshal(p BlogPost) ([]byte, error) {
	meta, err := yaml.MarshalWithOptions(p.Metadata(), yaml.JSON())
	if err != nil {
		return nil, fmt.Errorf("blog: encode yaml front matter: %w", err)
	}
	return assemble(yamlDelimiter, meta, p.Content), nil
}

// MarshalTOML is Marshal with TOML front matter.
func MarshalTOML(p BlogPost) ([]byte, error) {
	meta, err := toml.Marshal(p.Metadata())
	if err != nil {
		return nil, fmt.Errorf("blog: encode toml front matter: %w", err)
	}
	return assemble(tomlDelimiter, meta, p.Content), nil
}

func assemble(delim string, meta []byte, content string) []byte {
	var buf bytes.Buffer
	buf.WriteString(delim)
	buf.WriteByte('\n')
	buf.Write(bytes.TrimSpace(meta))
	buf.WriteByte('\n')
	buf.WriteString(delim)
	buf.WriteByte('\n')
	if content != "" {
		buf.WriteByte('\n')
		buf.WriteString(content)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
