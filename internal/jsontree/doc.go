// Package jsontree holds the in-memory representation of a parsed JSON document
// used by the lottiefix tooling.
//
// Values are one of:
//   - nil for null
//   - bool
//   - json.Number for numbers, keeping the source text verbatim
//   - string
//   - []any for arrays
//   - *Object for objects, which keeps the insertion order of its keys
//
// Unlike decoding into map[string]any, a tree produced by Parse and written back
// with Marshal keeps every object in its original key order, so a document that
// is not modified round-trips to the same (compacted) bytes.
//
// Usage:
//
//	tree, err := jsontree.Parse(data)
//	if err != nil {
//	    return err
//	}
//	out, err := jsontree.Marshal(tree, "")
//
// Canonicalize produces RFC 8785 output instead, which sorts object keys and
// normalises number formatting. It is meant for comparing documents, not for
// writing animation files that other tools expect in authoring order.
package jsontree
