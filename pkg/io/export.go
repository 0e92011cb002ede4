package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/xformgraph/pkg/graph"
)

// WriteJSON encodes g as an indented JSON document and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Encode(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes g as a YAML document and writes it to w.
func WriteYAML(g *graph.Graph, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Encode(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	return exportWith(g, path, WriteJSON)
}

// ExportFile writes g to path, choosing JSON or YAML from the extension.
func ExportFile(g *graph.Graph, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatYAML {
		return exportWith(g, path, WriteYAML)
	}
	return exportWith(g, path, WriteJSON)
}

func exportWith(g *graph.Graph, path string, write func(*graph.Graph, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
