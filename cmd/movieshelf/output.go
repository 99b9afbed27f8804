package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	outputAuto  = "auto"
	outputPlain = "plain"
	outputTable = "table"
	outputJSON  = "json"
)

func validateOutputMode(mode string) error {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case outputAuto, outputPlain, outputTable, outputJSON, "":
		return nil
	default:
		return fmt.Errorf("output format: unsupported value %q (use auto, plain, table, or json)", mode)
	}
}

// resolveOutputMode maps "auto" to table on a terminal and plain otherwise, so
// piped output stays one value per line.
func resolveOutputMode(mode string, writer io.Writer) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" || mode == outputAuto {
		if isTerminal(writer) {
			return outputTable
		}
		return outputPlain
	}
	return mode
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
