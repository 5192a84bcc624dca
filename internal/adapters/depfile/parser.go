// Package depfile reads the Makefile-style dependency files written by shader compilers.
package depfile

import (
	"os"
	"strings"
)

// Load reads the depfile at path and returns the dependencies of target.
// Any failure yields nil, which callers treat as "unknown dependencies" and rebuild.
func Load(path, target string) []string {
	data, err := os.ReadFile(path) //nolint:gosec // depfile path is derived from the output directory
	if err != nil {
		return nil
	}
	return Parse(strings.Split(string(data), "\n"), target)
}

// Parse returns the dependencies of the first rule with a target whose base name
// matches the base name of target. It returns nil when no rule matches.
//
// A line ending in a backslash continues on the next line. Within a line, "\ "
// is an escaped space and "$$" an escaped dollar sign. The first ':' followed by
// whitespace or the end of the line separates the targets from the dependencies.
func Parse(lines []string, target string) []string {
	want := baseName(target)
	p := &parser{}

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if p.scan(line) {
			continue
		}
		if deps, ok := p.endRule(want); ok {
			return deps
		}
	}

	// The last rule may end at EOF without a newline or with a dangling continuation.
	if deps, ok := p.endRule(want); ok {
		return deps
	}
	return nil
}

type parser struct {
	targets []string
	deps    []string
	token   strings.Builder
	inDeps  bool
}

// scan consumes one physical line and reports whether it ends in a continuation.
func (p *parser) scan(line string) bool {
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch c {
		case '\\':
			if i == len(line)-1 {
				return true
			}
			if next := line[i+1]; next == ' ' || next == '#' {
				p.token.WriteByte(next)
				i++
				continue
			}
			p.token.WriteByte(c)
		case '$':
			if i+1 < len(line) && line[i+1] == '$' {
				i++
			}
			p.token.WriteByte('$')
		case ' ', '\t':
			p.flush()
		case ':':
			if !p.inDeps && endsTargets(line, i) {
				p.flush()
				p.inDeps = true
				continue
			}
			p.token.WriteByte(c)
		default:
			p.token.WriteByte(c)
		}
	}
	return false
}

func (p *parser) flush() {
	if p.token.Len() == 0 {
		return
	}
	if p.inDeps {
		p.deps = append(p.deps, p.token.String())
	} else {
		p.targets = append(p.targets, p.token.String())
	}
	p.token.Reset()
}

// endRule closes the current rule and returns its dependencies if it names want.
func (p *parser) endRule(want string) ([]string, bool) {
	p.flush()
	defer p.reset()

	if !p.inDeps {
		return nil, false
	}
	for _, t := range p.targets {
		if baseName(t) == want {
			deps := p.deps
			if deps == nil {
				deps = []string{}
			}
			return deps, true
		}
	}
	return nil, false
}

func (p *parser) reset() {
	p.targets = nil
	p.deps = nil
	p.token.Reset()
	p.inDeps = false
}

// endsTargets reports whether the ':' at i separates targets from dependencies.
// Only a colon followed by a path separator, as in the drive letter of
// "C:\shaders" or "C:/shaders", belongs to the target.
func endsTargets(line string, i int) bool {
	rest := line[i+1:]
	if rest == "" || rest == `\` {
		return true
	}
	return rest[0] != '\\' && rest[0] != '/'
}

// baseName strips both slash and backslash separated directories, since depfiles
// written on Windows are read on every platform.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
