// Package parser walks a Nipper report document tree.
//
// It holds the primitives every section parser is built on:
//
//   - Load turns document bytes into an etree document
//   - Locate finds a part or section by its ref attribute
//   - ReadIdentity reads the index, title and ref attributes of a node
//   - ExtractTable converts a headings/tablebody block into rows
//   - Layout binds the children of a node to named offsets and fails once,
//     with a single structure mismatch, when the node is too short
//   - Slice splits a part into its fixed prefix, repeated body and fixed suffix
//
// None of these functions modify the tree.
package parser
