// iojson are utilities for reading and writing JSON IO from a
// command line interface perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// WriteWith marshals obj as indented JSON to w, reporting marshal
// failures as a JSON error object on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		msgBytes, _ := json.Marshal(err.Error())
		_, err = fmt.Fprintf(ew, `{"message":"error marshaling in iojson.Write","data":{"json_error":%s}}%s`, msgBytes, "\n")
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout] and [os.Stderr]
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// Read decodes JSON input into T from a file path, or from stdin when
// path is empty. Refuses to read stdin when it is a terminal so an
// interactive invocation fails fast instead of hanging.
func Read[T any](path string) (T, error) {
	var input T

	var reader io.Reader
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = os.Stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
