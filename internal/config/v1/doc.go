// Package v1 describes the lottiefix configuration file.
//
// The file format is YAML (JSON is accepted as well). All fields are optional,
// a missing field keeps the built-in default or the value of a configuration
// file loaded earlier. For example:
//
//	targetKeys:
//	  - to
//	  - ti
//	policy: replace
//	replacement: [0, 0, 0]
//	indent: "  "
//	canonical: false
//	suffix: -fixed
package v1
