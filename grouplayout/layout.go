// Package grouplayout places population labels, block dividers and the axis
// reference line along a row of equal-width bars, one bar per sample.
//
// Bar i occupies [i-0.5, i+0.5] on the axis, so positions are expressed in
// bar units with the first bar centered on 0.
package grouplayout

import (
	"fmt"
	"sort"
	"strings"
)

// Mode selects how samples are grouped and where each group's label goes.
type Mode int

const (
	// ModeBoundaries groups maximal runs of consecutive bars sharing a label.
	// Each label is centered on its run, a divider follows every run but the
	// last, and an axis reference line sits at -0.5.
	ModeBoundaries Mode = iota

	// ModeCentered groups every sample of a label regardless of contiguity
	// and centers the label between the first and last such bar. No dividers.
	ModeCentered

	// ModeFirstBar anchors each label on the first bar carrying it, offset by
	// half a bar. Label text scales with bar width. No dividers.
	ModeFirstBar
)

// AxisReference is where ModeBoundaries draws its fixed vertical axis line.
const AxisReference = -0.5

var modeNames = map[Mode]string{
	ModeBoundaries: "boundaries",
	ModeCentered:   "centered",
	ModeFirstBar:   "first-bar",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a configured mode name to its Mode.
func ParseMode(name string) (Mode, error) {
	for m, v := range modeNames {
		if strings.EqualFold(v, name) {
			return m, nil
		}
	}

	return 0, fmt.Errorf("unknown layout mode %q (expected one of %s)", name, ModeNames())
}

// ModeNames lists the accepted mode names.
func ModeNames() string {
	return strings.Join([]string{ModeBoundaries.String(), ModeCentered.String(), ModeFirstBar.String()}, ", ")
}

// EmptyGroupError is returned when there are no bars to lay out.
type EmptyGroupError struct{}

func (EmptyGroupError) Error() string {
	return "cannot lay out population groups for zero samples"
}

// Bar is one rendered sample.
type Bar struct {
	SampleID string
	Label    string
}

// Input describes the bars to lay out.
type Input struct {
	// Bars in rendering order.
	Bars []Bar

	// Reference holds the samples in their original file order. ModeCentered
	// and ModeFirstBar derive group membership from it. If nil, Bars is used.
	Reference []Bar

	// Index maps sample IDs to their position in Bars. It is built from Bars
	// when nil.
	Index map[string]int

	// BarWidth is the width of one bar in axis units. Zero means 1.
	BarWidth float64
}

// Group is one labeled block of bars.
type Group struct {
	Label string

	// First and Last are the positions of the outermost bars of the group.
	First, Last int

	// Position is where the label is anchored on the axis.
	Position float64
}

// Layout is the placement computed for one render.
type Layout struct {
	Mode   Mode
	N      int
	Groups []Group

	// Boundaries are divider positions between adjacent groups.
	Boundaries []float64

	// AxisLine reports whether a reference line should be drawn at
	// AxisReference.
	AxisLine bool

	// LabelScale is the relative label size. It tracks BarWidth in
	// ModeFirstBar and is 1 otherwise.
	LabelScale float64
}

// Compute lays out the bars under the given mode.
func Compute(mode Mode, in Input) (Layout, error) {
	if len(in.Bars) == 0 {
		return Layout{}, EmptyGroupError{}
	}

	barWidth := in.BarWidth
	if barWidth <= 0 {
		barWidth = 1
	}

	out := Layout{
		Mode:       mode,
		N:          len(in.Bars),
		LabelScale: 1,
	}

	switch mode {
	case ModeBoundaries:
		out.Groups = contiguousRuns(in.Bars)
		for i, g := range out.Groups {
			g.Position = float64(g.First+g.Last) / 2
			out.Groups[i] = g

			if i < len(out.Groups)-1 {
				out.Boundaries = append(out.Boundaries, float64(g.Last)+0.5)
			}
		}
		out.AxisLine = true

	case ModeCentered, ModeFirstBar:
		groups, err := globalSpans(in)
		if err != nil {
			return Layout{}, err
		}

		for i, g := range groups {
			if mode == ModeCentered {
				g.Position = float64(g.First) + float64(g.Last-g.First)/2
			} else {
				g.Position = float64(g.First) + barWidth/2
			}
			groups[i] = g
		}
		out.Groups = groups

		if mode == ModeFirstBar {
			out.LabelScale = barWidth
		}

	default:
		return Layout{}, fmt.Errorf("unknown layout mode %v", mode)
	}

	return out, nil
}

// contiguousRuns splits the bars into maximal runs of equal labels. A label
// that reappears after a different one starts a new run.
func contiguousRuns(bars []Bar) []Group {
	var out []Group

	for i, bar := range bars {
		if n := len(out); n > 0 && out[n-1].Label == bar.Label {
			out[n-1].Last = i
			continue
		}

		out = append(out, Group{Label: bar.Label, First: i, Last: i})
	}

	return out
}

// globalSpans finds, for every label of the reference order, the smallest and
// largest rendered position of any of its samples. Groups come back ordered by
// their first bar.
func globalSpans(in Input) ([]Group, error) {
	reference := in.Reference
	if reference == nil {
		reference = in.Bars
	}

	index := in.Index
	if index == nil {
		index = make(map[string]int, len(in.Bars))
		for i, bar := range in.Bars {
			index[bar.SampleID] = i
		}
	}

	spans := make(map[string]int)
	var out []Group

	for _, ref := range reference {
		pos, ok := index[ref.SampleID]
		if !ok {
			return nil, fmt.Errorf("sample %s is not among the rendered bars", ref.SampleID)
		}

		k, exists := spans[ref.Label]
		if !exists {
			spans[ref.Label] = len(out)
			out = append(out, Group{Label: ref.Label, First: pos, Last: pos})
			continue
		}

		if pos < out[k].First {
			out[k].First = pos
		}
		if pos > out[k].Last {
			out[k].Last = pos
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].First < out[j].First
	})

	return out, nil
}
