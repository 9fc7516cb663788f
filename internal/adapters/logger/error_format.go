package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// ErrorEntry is a single link of an error chain with its attached metadata.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks an error chain outermost-first. zerr errors
// contribute their own message and metadata and the walk continues into the
// wrapped cause. A standard error terminates the walk with its full Error()
// text and nil metadata.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	current := err
	for current != nil {
		zErr, ok := current.(*zerr.Error)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entries = append(entries, ErrorEntry{
			Message:  zErr.Message(),
			Metadata: zErr.Metadata(),
		})
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders collected entries as a hierarchical report:
// the outermost error on an "Error:" line, causes indented under a
// "Caused by:" header, metadata key/value pairs sorted below each message.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			lines = append(lines, metadataLines(entry.Metadata, "       ")...)
			continue
		}

		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
		lines = append(lines, metadataLines(entry.Metadata, "      ")...)
	}

	return strings.Join(lines, "\n")
}

func metadataLines(metadata map[string]any, indent string) []string {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, metadata[key]))
	}
	return lines
}
