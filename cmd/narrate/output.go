package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gosimple/slug"

	narrate "github.com/alnah/go-narrate"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrWriteOutput indicates an output file could not be written.
var ErrWriteOutput = errors.New("failed to write output")

// outputNames assigns unique file base names, derived from titles.
type outputNames struct {
	taken map[string]int
}

func newOutputNames() *outputNames {
	return &outputNames{taken: make(map[string]int)}
}

// next returns a unique slug for doc: its title, else its source name,
// else "document". Repeated names get a numeric suffix.
func (n *outputNames) next(doc narrate.Document, source string) string {
	name := slug.Make(doc.Title)
	if name == "" {
		base := filepath.Base(source)
		name = slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if name == "" {
		name = "document"
	}

	n.taken[name]++
	if count := n.taken[name]; count > 1 {
		name += "-" + strconv.Itoa(count)
	}
	return name
}

// encodePayload renders p as indented JSON without HTML escaping.
func encodePayload(p narrate.Payload) ([]byte, error) {
	data, err := p.MarshalIndent()
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return data, nil
}

// writeStdout prints each successful result followed by a newline.
func writeStdout(w io.Writer, results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		out := []byte(r.Body)
		if r.Payload != nil {
			var err error
			if out, err = encodePayload(*r.Payload); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	return nil
}

// writeFiles writes each successful result into dir and returns the paths
// written, in result order.
func writeFiles(dir string, results []Result) ([]string, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}

	names := newOutputNames()
	paths := make([]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}

		ext, data := ".html", []byte(r.Body+"\n")
		if r.Payload != nil {
			encoded, err := encodePayload(*r.Payload)
			if err != nil {
				return paths, err
			}
			ext, data = ".json", append(encoded, '\n')
		}

		path := filepath.Join(dir, names.next(r.Doc, r.Source)+ext)
		// #nosec G306 -- output files are meant to be readable
		if err := os.WriteFile(path, data, filePermissions); err != nil {
			return paths, fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// payloadLine encodes p on a single line, for log fields.
func payloadLine(p narrate.Payload) string {
	data, err := json.MarshalWithOption(p, json.DisableHTMLEscape())
	if err != nil {
		return ""
	}
	return string(data)
}
