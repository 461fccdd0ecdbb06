// Package preprocess normalizes raw lines before they reach the pattern engine.
//
// Three optional stages run in a fixed order:
//
//  1. Binary images - macOS "0x... - 0x... image" lines are split out of the
//     engine input and summarized in a trailing section
//  2. Indent stripping - leading whitespace and call-tree markers (+ ! | :)
//     are removed so tree depth does not change a line's token count
//  3. Secret redaction - PII and credentials become correlation-preserving
//     placeholders such as [IPV4:a3f2]
//
// Basic usage:
//
//	p := preprocess.New(
//	    preprocess.WithStripIndent(true),
//	    preprocess.WithRedaction(true, nil),
//	)
//	res := p.Process(lines)
//	report := res.Append(pattern.Compact(res.Lines))
//
// Configuration via ~/.squash.yaml:
//
//	preprocess:
//	  strip_indent: true
//	  binary_images: true
//	redaction:
//	  enabled: true
//	  patterns:
//	    - ipv4
//	    - email
package preprocess
