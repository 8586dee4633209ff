package outline

import (
	"fmt"
	"strings"
)

// TitlePolicy selects how the document title is chosen.
type TitlePolicy string

const (
	// TitleByScore takes the highest-scoring page-1 candidate and removes it from the outline.
	TitleByScore TitlePolicy = "score"
	// TitleByRank pops a leading H1, or borrows the first entry's text if it is on page 1 or 2.
	TitleByRank TitlePolicy = "rank"
)

// MaxDepth is the deepest level the clusterer can assign.
const MaxDepth = 5

// DefaultBodyFontSize is used when a document has no countable spans.
const DefaultBodyFontSize = 12

// DefaultDenylist holds structural labels that are never content headings.
var DefaultDenylist = []string{
	"appendix",
	"references",
	"bibliography",
	"contents",
	"table of contents",
	"figure",
	"index",
}

// Options tunes every policy that differs between outline variants.
type Options struct {
	// MinTextLength rejects fragments shorter than this many runes after trimming.
	MinTextLength int

	// Denylist is matched case-folded against the whole trimmed fragment.
	Denylist []string

	SizeWeight    float64
	BoldBonus     float64
	NumberedBonus float64

	// MaxLevels caps the number of heading levels (1..MaxDepth).
	MaxLevels int

	TitlePolicy TitlePolicy

	// MinScoreGap merges a score into the level above when it is within this
	// distance of that level's top score. Zero gives every distinct score its own level.
	MinScoreGap float64

	// MinBodyFontSize excludes smaller sizes from the body-size tally. Zero counts all.
	MinBodyFontSize int

	DefaultBodyFontSize int
}

// Preset names accepted by Preset.
const (
	PresetBasic    = "basic"
	PresetScored   = "scored"
	PresetExtended = "extended"
)

// DefaultOptions returns the "scored" preset.
func DefaultOptions() Options {
	return Options{
		MinTextLength:       3,
		Denylist:            append([]string(nil), DefaultDenylist...),
		SizeWeight:          1,
		BoldBonus:           5,
		NumberedBonus:       5,
		MaxLevels:           3,
		TitlePolicy:         TitleByScore,
		DefaultBodyFontSize: DefaultBodyFontSize,
	}
}

// Preset returns the named option set.
func Preset(name string) (Options, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetScored:
		return DefaultOptions(), nil
	case PresetBasic:
		o := DefaultOptions()
		o.BoldBonus = 0
		o.NumberedBonus = 0
		o.TitlePolicy = TitleByRank
		o.MinBodyFontSize = 9
		return o, nil
	case PresetExtended:
		o := DefaultOptions()
		o.SizeWeight = 2
		o.MaxLevels = MaxDepth
		return o, nil
	default:
		return Options{}, fmt.Errorf("unknown outline preset %q", name)
	}
}

// Normalized fills zero values with defaults and clamps MaxLevels.
func (o Options) Normalized() Options {
	if o.MinTextLength <= 0 {
		o.MinTextLength = 3
	}
	if o.SizeWeight <= 0 {
		o.SizeWeight = 1
	}
	if o.MaxLevels <= 0 {
		o.MaxLevels = 3
	}
	if o.MaxLevels > MaxDepth {
		o.MaxLevels = MaxDepth
	}
	if o.TitlePolicy == "" {
		o.TitlePolicy = TitleByScore
	}
	if o.MinScoreGap < 0 {
		o.MinScoreGap = 0
	}
	if o.DefaultBodyFontSize <= 0 {
		o.DefaultBodyFontSize = DefaultBodyFontSize
	}
	return o
}

// Validate reports option values that cannot be normalized away.
func (o Options) Validate() error {
	switch o.TitlePolicy {
	case "", TitleByScore, TitleByRank:
	default:
		return fmt.Errorf("unknown title policy %q", o.TitlePolicy)
	}
	if o.BoldBonus < 0 || o.NumberedBonus < 0 {
		return fmt.Errorf("bonuses must be non-negative")
	}
	return nil
}
