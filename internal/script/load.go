package script

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
	"gopkg.in/yaml.v3"
)

// sniffLen is how many leading bytes are inspected to reject binary files.
const sniffLen = 262

var ErrBinary = errors.New("script looks like a binary file")

// Load decodes and validates a script. The document is either a list of
// lines or a mapping with "title" and "lines". JSON documents are accepted.
func Load(r io.Reader, opts Options) (*Script, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(sniffLen)
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		return nil, fmt.Errorf("%w (%s)", ErrBinary, kind.MIME.Value)
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(s, opts); err != nil {
		return nil, err
	}
	return s, nil
}

func LoadFile(path string, opts Options) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Load(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func decode(data []byte) (*Script, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty script", ErrInvalid)
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	s := &Script{}
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&s.Lines); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	case yaml.MappingNode:
		if err := root.Decode(s); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: expected a list of lines or a mapping with lines", ErrInvalid)
	}
	return s, nil
}
