package snippet

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const declKeyword = "typestate "

// NameFromText returns the name declared by the first `typestate Name:` line.
// A generic parameter list (`Container[T]`) is dropped.
func NameFromText(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, declKeyword) {
			continue
		}
		name := strings.TrimPrefix(line, declKeyword)
		name = strings.TrimRight(name, ":")
		if i := strings.Index(name, "["); i >= 0 {
			name = name[:i]
		}
		return strings.TrimSpace(name), true
	}
	return "", false
}

// NameFromFilename derives a name from a file stem by removing the suffix marker.
func NameFromFilename(stem, suffix string) string {
	return strings.ReplaceAll(stem, suffix, "")
}

// ResolveName returns the declared name, falling back to the filename stem.
func ResolveName(text, stem, suffix string) string {
	if name, ok := NameFromText(text); ok {
		return name
	}
	return NameFromFilename(stem, suffix)
}

// ArtifactStem lowercases a resolved name for use in output file names.
func ArtifactStem(name string) string {
	return cases.Lower(language.Und).String(name)
}

// ArtifactName resolves the case-preserved name of s under pattern p.
func (p Pattern) ArtifactName(s Snippet) string {
	return ResolveName(s.Content, s.FileStem(), p.Suffix)
}

// ArtifactStem resolves and lowercases the output file stem of s under pattern p.
func (p Pattern) ArtifactStem(s Snippet) string {
	return ArtifactStem(p.ArtifactName(s))
}
