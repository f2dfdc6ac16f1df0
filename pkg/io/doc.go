// Package io provides JSON import and export for trees.
//
// Newick is compact but loses nothing only for simple trees; the JSON
// format here is meant for tools that would rather not parse Newick. It
// nests nodes directly:
//
//	{
//	  "name": "F",
//	  "children": [
//	    {"name": "A", "length": 1, "children": [
//	      {"name": "B", "length": 2},
//	      {"name": "C", "length": 2.5, "properties": [{"key": "support", "value": "0.9"}]}
//	    ]}
//	  ]
//	}
//
// All fields are optional. A missing length means the node has no length
// (which is different from a length of 0). Properties are a list so that
// their order survives a round trip.
//
// Use [ImportJSON] and [ExportJSON] for files, [ReadJSON] and [WriteJSON]
// for streams.
package io
