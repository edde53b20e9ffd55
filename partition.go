package latex

// Range is a half-open range of child indexes [Start, Stop)
type Range struct {
	Start int
	Stop  int
}

func (r Range) Len() int {
	return r.Stop - r.Start
}

// partition splits children of a math region into maximal runs which do not include text commands.
// A run still open at the end of children is closed there.
func (r *rules) partition(children []*Node) (ranges []Range) {
	start := -1
	for i, child := range children {
		visible := r.isTextCommand(child)

		if start == -1 && !visible {
			start = i
			continue
		}

		if start != -1 && visible {
			ranges = append(ranges, Range{Start: start, Stop: i})
			start = -1
		}
	}

	if start != -1 {
		ranges = append(ranges, Range{Start: start, Stop: len(children)})
	}

	return
}
