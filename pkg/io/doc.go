// Package io reads and writes xform graphs as JSON or YAML documents.
//
// # Format
//
// A document has two top-level lists. Each xform carries its name, its
// registry type and the configuration values that are set; each connection
// names both ends by xform and port:
//
//	{
//	  "xforms": [
//	    {
//	      "name": "LoadFile_1",
//	      "type": "LoadFile",
//	      "config": [{"name": "file_name", "type": "STRING", "value": "in.png"}]
//	    },
//	    {
//	      "name": "GaussianBlur_1",
//	      "type": "GaussianBlur",
//	      "config": [{"name": "sigma", "type": "FLOAT", "value": 1.5}]
//	    }
//	  ],
//	  "connections": [
//	    {"from_xform": "LoadFile_1", "from_port": "image",
//	     "to_xform": "GaussianBlur_1", "to_port": "image"}
//	  ]
//	}
//
// Property types are STRING, FLOAT and INT, matched case-insensitively.
// Connections may reference xforms declared anywhere in the document.
// The YAML form uses the same keys.
//
// # Import
//
// [ImportFile], [ReadJSON] and [ReadYAML] decode a document and build the
// graph through an [xform.Registry]. [Document.Validate] reports every
// structural problem in one error before anything is built.
//
//	g, err := io.ImportFile("pipeline.json", xforms.NewRegistry(store))
//
// # Export
//
// [ExportFile], [WriteJSON] and [WriteYAML] write a graph back out. Encoding
// is deterministic: xforms are sorted by name and connections by source
// port, so an unchanged graph always produces the same bytes.
package io
