// Package snippet discovers typestate snippet files and derives the artifact
// name used for their generated diagrams.
//
// Name resolution is two pure stages: NameFromText scans the snippet source
// for a `typestate Name:` declaration line, and NameFromFilename strips the
// suffix marker from the file stem. Neither touches the filesystem.
package snippet
