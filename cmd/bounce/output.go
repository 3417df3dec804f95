package main

import (
	"encoding/json"
	"io"
	"os"

	"golang.org/x/term"
)

// wantJSON reports whether output to w should be JSON: either --json was
// given or w is not an interactive terminal.
func (o *rootOptions) wantJSON(w io.Writer) bool {
	if o.jsonOut {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return !term.IsTerminal(int(f.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
