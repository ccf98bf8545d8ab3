package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// writeArgs prints an argument vector either space-joined for copy-paste or
// as a JSON array for machine consumers.
func writeArgs(w io.Writer, args []string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		return enc.Encode(args)
	}
	_, err := fmt.Fprintln(w, strings.Join(args, " "))
	return err
}
