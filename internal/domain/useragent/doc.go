// Package useragent validates, parses, and catalogues User-Agent strings.
//
// Codec is stateless and safe for concurrent use. Registry holds the built-in
// presets shipped in presets.yaml plus custom presets added at runtime.
package useragent
