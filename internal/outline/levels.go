package outline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Level is a heading rank. H1 is the most prominent.
type Level int

const (
	LevelNone Level = iota
	H1
	H2
	H3
	H4
	H5
)

func (l Level) String() string {
	if l < H1 || l > H5 {
		return ""
	}
	return "H" + strconv.Itoa(int(l))
}

// Rank orders levels for sorting; untagged levels sort last.
func (l Level) Rank() int {
	if l < H1 || l > H5 {
		return MaxDepth + 1
	}
	return int(l)
}

// ParseLevel accepts "H1".."H5" (case-insensitive).
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if len(s) == 2 && (s[0] == 'H' || s[0] == 'h') && s[1] >= '1' && s[1] <= '5' {
		return Level(s[1] - '0'), nil
	}
	return LevelNone, fmt.Errorf("invalid heading level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if l.String() == "" {
		return nil, fmt.Errorf("invalid heading level %d", int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// LevelMap assigns heading levels to candidate scores.
type LevelMap map[float64]Level

// Of returns the level for a score, or LevelNone if the score missed the cut.
func (m LevelMap) Of(score float64) Level {
	return m[score]
}

// Depth returns the number of distinct levels in use.
func (m LevelMap) Depth() int {
	seen := make(map[Level]bool, len(m))
	for _, l := range m {
		seen[l] = true
	}
	return len(seen)
}

// AssignLevels ranks the distinct candidate scores in descending order and
// maps the top ones onto H1, H2, ... up to maxLevels. Equal scores always
// share a level. With minGap > 0, a score within minGap of the current
// level's top score joins that level instead of opening a new one.
func AssignLevels(cands []Candidate, maxLevels int, minGap float64) LevelMap {
	if maxLevels <= 0 {
		maxLevels = 3
	}
	if maxLevels > MaxDepth {
		maxLevels = MaxDepth
	}

	seen := make(map[float64]bool, len(cands))
	var scores []float64
	for _, c := range cands {
		if !seen[c.Score] {
			seen[c.Score] = true
			scores = append(scores, c.Score)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	m := make(LevelMap, len(scores))
	level := LevelNone
	var anchor float64
	for _, s := range scores {
		if level != LevelNone && minGap > 0 && anchor-s < minGap {
			m[s] = level
			continue
		}
		if int(level) == maxLevels {
			break
		}
		level++
		anchor = s
		m[s] = level
	}
	return m
}
