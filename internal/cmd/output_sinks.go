package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchslap/pitchslap/internal/output"
)

type outputSink struct {
	writer io.Writer
	close  func() error
	path   string
}

// addOutputFlags registers --output-format and --out.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-format", "o", "table", "Output format: table, json, markdown, yaml")
	cmd.Flags().String("out", "", "Write output to a file instead of stdout")
}

func outputExtension(format output.Format) string {
	switch format {
	case output.FormatJSON:
		return "json"
	case output.FormatMarkdown:
		return "md"
	case output.FormatYAML:
		return "yaml"
	default:
		return "txt"
	}
}

var nonFilename = regexp.MustCompile(`[^a-z0-9._-]+`)

func sanitizeFilename(value string) string {
	clean := strings.ToLower(strings.TrimSpace(value))
	clean = nonFilename.ReplaceAllString(clean, "-")
	clean = strings.Trim(clean, "-.")
	if clean == "" {
		return "output"
	}
	return clean
}

func resolveOutputFormat(cmd *cobra.Command) (output.Format, error) {
	value, err := cmd.Flags().GetString("output-format")
	if err != nil {
		return "", err
	}
	return output.ParseFormat(value)
}

// openSink opens path for writing; empty or "-" is the command's stdout.
func openSink(cmd *cobra.Command, path string) (*outputSink, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "-" {
		return &outputSink{writer: cmd.OutOrStdout(), close: func() error { return nil }, path: "-"}, nil
	}

	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(trimmed)
	if err != nil {
		return nil, err
	}
	return &outputSink{writer: file, close: file.Close, path: trimmed}, nil
}

// emit writes rendered output to the --out target.
func emit(cmd *cobra.Command, rendered string) (err error) {
	outPath, _ := cmd.Flags().GetString("out")
	sink, err := openSink(cmd, outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.close(); err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(rendered, "\n") {
		rendered += "\n"
	}
	_, err = io.WriteString(sink.writer, rendered)
	return err
}
