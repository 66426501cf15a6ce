// Package render drives the two-stage rendering of one typestate snippet:
// the compiler tool turns the snippet into a Graphviz description, and a
// Layout turns that description into an image.
//
// Stage one failing writes nothing. Stage two failing leaves the description
// file on disk; it is overwritten by the next successful run.
package render
