package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/xformgraph/pkg/errors"
	"github.com/matzehuels/xformgraph/pkg/graph"
	"github.com/matzehuels/xformgraph/pkg/xform"
)

// DecodeJSON parses a JSON document without building a graph.
// Numeric property values keep their original text.
func DecodeJSON(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode json")
	}
	return &doc, nil
}

// DecodeYAML parses a YAML document without building a graph.
func DecodeYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode yaml")
	}
	return &doc, nil
}

// ReadJSON decodes a JSON document from r and builds the graph it
// describes with reg.
//
// The input must be a JSON object with "xforms" and "connections" arrays:
//
//	{
//	  "xforms": [
//	    {"name": "load", "type": "LoadFile",
//	     "config": [{"name": "file_name", "type": "STRING", "value": "in.png"}]},
//	    {"name": "blur", "type": "GaussianBlur"}
//	  ],
//	  "connections": [
//	    {"from_xform": "load", "from_port": "image", "to_xform": "blur", "to_port": "image"}
//	  ]
//	}
//
// ReadJSON returns an error if the JSON is malformed, the document is
// inconsistent (see [Document.Validate]), a type is not registered, or a
// connection is rejected by the graph. ReadJSON does not close r.
func ReadJSON(r io.Reader, reg *xform.Registry, opts ...graph.Option) (*graph.Graph, error) {
	doc, err := DecodeJSON(r)
	if err != nil {
		return nil, err
	}
	return Build(doc, reg, opts...)
}

// ReadYAML is the YAML counterpart of [ReadJSON].
func ReadYAML(r io.Reader, reg *xform.Registry, opts ...graph.Option) (*graph.Graph, error) {
	doc, err := DecodeYAML(r)
	if err != nil {
		return nil, err
	}
	return Build(doc, reg, opts...)
}

// ImportJSON reads a JSON file at path and builds its graph.
func ImportJSON(path string, reg *xform.Registry, opts ...graph.Option) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, reg, opts...)
}

// LoadDocument reads and decodes the document at path, choosing JSON or
// YAML from the extension.
func LoadDocument(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return DecodeBytes(data, format)
}

// DecodeBytes parses a document held in memory.
func DecodeBytes(data []byte, format Format) (*Document, error) {
	if format == FormatYAML {
		return DecodeYAML(bytes.NewReader(data))
	}
	return DecodeJSON(bytes.NewReader(data))
}

// ImportFile reads the document at path, choosing JSON or YAML from the
// extension, and builds its graph.
func ImportFile(path string, reg *xform.Registry, opts ...graph.Option) (*graph.Graph, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Build(doc, reg, opts...)
}
