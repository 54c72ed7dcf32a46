// Package extract parses structured fields out of free-form language
// model output. Models are prompted to emit labeled sections, but the
// formatting drifts, so every function here degrades to a safe default
// instead of returning an error.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"intervista/internal/types"
)

var (
	recommendationRe = regexp.MustCompile(`(?i)recommendation\s*:\s*(hire|consider|reject)`)

	patternMu    sync.RWMutex
	patternCache = make(map[string]*regexp.Regexp)
)

// compileLabeled returns a cached regexp built from format with the
// quoted label substituted in. Labels come from a small fixed prompt
// vocabulary, so the cache stays bounded.
func compileLabeled(format, label string) *regexp.Regexp {
	key := format + "\x00" + label
	patternMu.RLock()
	re, ok := patternCache[key]
	patternMu.RUnlock()
	if ok {
		return re
	}
	re = regexp.MustCompile(strings.Replace(format, "%LABEL%", regexp.QuoteMeta(label), 1))
	patternMu.Lock()
	patternCache[key] = re
	patternMu.Unlock()
	return re
}

// Score returns the X of the first "<label> ... X/10" occurrence in
// text, matching case-insensitively. Missing label, missing score, or
// empty input all yield 0.
func Score(text, label string) int {
	if text == "" || label == "" {
		return 0
	}
	re := compileLabeled(`(?is)%LABEL%.*?(\d+)\s*/\s*10`, label)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// section captures the text between "<label>:" and the next section
// boundary: a numbered heading line, a blank line, or end of input.
func section(text, label string) (string, bool) {
	if text == "" || label == "" {
		return "", false
	}
	re := compileLabeled(`(?is)%LABEL%\s*:[ \t]*\n?(.*?)(?:\n\d+\.|\n[ \t]*\n|$)`, label)
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// List returns the non-empty trimmed lines of the labeled section.
// The lines keep whatever bullet markers the model emitted. A missing
// label yields an empty slice.
func List(text, label string) []string {
	body, ok := section(text, label)
	if !ok {
		return []string{}
	}
	items := []string{}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}

// Section returns the trimmed raw text of the labeled section, or ""
// when the label is absent.
func Section(text, label string) string {
	body, ok := section(text, label)
	if !ok {
		return ""
	}
	return strings.TrimSpace(body)
}

// Recommendation finds a "Recommendation: <verdict>" line and maps it
// to a hiring recommendation. Anything else means Consider: the
// conservative middle ground when the model did not commit.
func Recommendation(text string) types.Recommendation {
	m := recommendationRe.FindStringSubmatch(text)
	if m == nil {
		return types.RecommendConsider
	}
	return types.ParseRecommendation(m[1])
}
