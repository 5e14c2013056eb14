// Package ignore parses .gitignore-style pattern files and classifies
// working-tree paths as ignored or not. Patterns are shell globs, one per
// line; a path is ignored when ANY pattern matches (union semantics, no
// negation).
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// Matcher holds an ordered set of ignore patterns loaded from a file.
// A Matcher is read-only after Load; Match is a pure function of the
// pattern set and the path.
type Matcher struct {
	patterns []pattern
}

type pattern struct {
	glob     string
	dirOnly  bool
	hasSlash bool // pattern contains a slash, so match against the full path
	regex    *regexp.Regexp
}

// Load reads an ignore file from the given filesystem. A missing file yields
// an empty matcher, not an error.
func Load(fsys billy.Filesystem, name string) (*Matcher, error) {
	f, err := fsys.Open(name)
	if err != nil {
		if os.IsNotExist(err) {
			return &Matcher{}, nil
		}
		return nil, err
	}
	defer f.Close()

	m := &Matcher{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if p := parseLine(scanner.Text()); p != nil {
			m.patterns = append(m.patterns, *p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Parse builds a matcher from pattern lines already in memory.
func Parse(lines []string) *Matcher {
	m := &Matcher{}
	for _, line := range lines {
		if p := parseLine(line); p != nil {
			m.patterns = append(m.patterns, *p)
		}
	}
	return m
}

// parseLine parses a single ignore file line. Returns nil for blank lines
// and comments.
func parseLine(line string) *pattern {
	line = strings.TrimRight(line, " \t")

	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	p := &pattern{}

	// Directory-only: lines ending with / match directories only.
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}

	p.hasSlash = strings.Contains(line, "/")
	p.glob = line

	if strings.Contains(line, "**") {
		if re, err := regexp.Compile(globToRegex(line)); err == nil {
			p.regex = re
		}
	}
	return p
}

// Match reports whether the given path is ignored. The path should use
// forward slashes and be relative to the repository root. isDir tells the
// matcher whether the path names a directory: directory-only patterns
// (trailing /) match directories and their contents, never a plain file
// that happens to share the pattern's name.
func (m *Matcher) Match(path string, isDir bool) bool {
	path = filepath.ToSlash(strings.TrimPrefix(path, "./"))

	for i := range m.patterns {
		if m.patterns[i].matches(path, isDir) {
			return true
		}
	}
	return false
}

// Filter returns the subset of file paths not ignored by the matcher.
func (m *Matcher) Filter(paths []string) []string {
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if !m.Match(p, false) {
			kept = append(kept, p)
		}
	}
	return kept
}

// Len returns the number of loaded patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// matches checks one pattern against a relative path.
func (p *pattern) matches(path string, isDir bool) bool {
	if p.dirOnly {
		// Directory patterns match the directory itself and anything under
		// it. A file named exactly like the pattern is not a directory and
		// stays unmatched.
		if path == p.glob {
			return isDir
		}
		return strings.HasPrefix(path, p.glob+"/")
	}

	if p.hasSlash {
		// Pattern contains a slash: match against the full relative path.
		return p.match(path)
	}

	// Pattern without a slash: match against the filename component only.
	return p.match(filepath.Base(path))
}

func (p *pattern) match(target string) bool {
	if p.regex != nil {
		return p.regex.MatchString(target)
	}
	matched, _ := filepath.Match(p.glob, target)
	return matched
}

// globToRegex translates a glob containing ** into an anchored regexp.
func globToRegex(glob string) string {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(glob); i++ {
		ch := glob[i]
		if ch == '*' {
			if i+1 < len(glob) && glob[i+1] == '*' {
				if i+2 < len(glob) && glob[i+2] == '/' {
					// Globstar directory segment: zero or more path segments.
					b.WriteString("(?:.*/)?")
					i += 2
				} else {
					b.WriteString(".*")
					i++
				}
				continue
			}
			b.WriteString("[^/]*")
			continue
		}
		if ch == '?' {
			b.WriteString("[^/]")
			continue
		}
		if strings.ContainsRune(`.+()|[]{}^$\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	b.WriteString("$")
	return b.String()
}
