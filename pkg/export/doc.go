// Package export projects a DBC document into the nested mapping consumed by
// external tooling and computes aggregate statistics in the same pass.
//
// # Output Shape
//
//	{
//	  "filename": "...",
//	  "version": "...",
//	  "attribute_definitions": { "<name>": { "0": "<label>", "1": ... } },
//	  "messages": {
//	    "<decimal id>": {
//	      "name": ..., "sender": ..., "length": ..., "attributes": {...},
//	      "signals": { "<name>": {...} },
//	      "has_multiplexor": true
//	    }
//	  }
//	}
//
// Message keys are decimal ids, never hexadecimal. Attribute definition keys
// are ordinal positions of the enum labels. Attribute values are always
// rendered as text; HEX values render as unsigned decimal.
//
// # Encodings
//
// A View encodes to JSON, YAML or CBOR through [Encode] and decodes back
// through [Decode]. [ToDocument] rebuilds a document from a View.
package export
