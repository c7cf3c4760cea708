package curation

import (
	"fmt"
	"regexp"
	"strings"
)

// resourceParamKeys is the priority order of parameter names that identify
// the external resource a call touches. The first present value wins.
var resourceParamKeys = []string{
	"filePath",
	"file_path",
	"path",
	"filename",
	"file",
	"url",
	"uri",
	"resource",
}

// ResourcePath returns the resource identifier of a call's parameters, used
// to correlate writes and reads to the same external resource. Returns false
// when the parameters name no resource.
func ResourcePath(params map[string]any) (string, bool) {
	for _, key := range resourceParamKeys {
		if v, ok := params[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// PatternSet is a compiled list of protected-path glob patterns. "**"
// matches any sequence including path separators, "*" any sequence excluding
// them. Matching stops at the first hit.
type PatternSet struct {
	patterns []*regexp.Regexp
}

// CompilePatterns compiles glob patterns into a PatternSet.
func CompilePatterns(patterns []string) (*PatternSet, error) {
	set := &PatternSet{}
	for _, pattern := range patterns {
		re, err := compileGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("protected pattern %q: %w", pattern, err)
		}
		set.patterns = append(set.patterns, re)
	}
	return set, nil
}

// Match reports whether the path matches any pattern in the set.
func (s *PatternSet) Match(path string) bool {
	if s == nil || path == "" {
		return false
	}
	for _, re := range s.patterns {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled patterns.
func (s *PatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

func compileGlob(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	var sb strings.Builder
	sb.WriteString("^")
	for i := 0; i < len(pattern); {
		switch {
		case strings.HasPrefix(pattern[i:], "**"):
			sb.WriteString(".*")
			i += 2
		case pattern[i] == '*':
			sb.WriteString("[^/]*")
			i++
		default:
			sb.WriteString(regexp.QuoteMeta(string(pattern[i])))
			i++
		}
	}
	sb.WriteString("$")

	return regexp.Compile(sb.String())
}
