package source

// bestMatch returns the index of the candidate closest to want, narrowing by
// stretch, then style, then weight as in CSS Fonts Level 3 section 5.2.
// It returns -1 for an empty slice.
func bestMatch(cands []Properties, want Properties) int {
	if len(cands) == 0 {
		return -1
	}
	want = want.Normalized()

	idx := make([]int, len(cands))
	for i := range idx {
		idx[i] = i
	}
	idx = narrowStretch(cands, idx, want.Stretch)
	idx = narrowStyle(cands, idx, want.Style)
	idx = narrowWeight(cands, idx, want.Weight)
	return idx[0]
}

func narrowStretch(cands []Properties, idx []int, want Stretch) []int {
	vals := make([]float32, len(idx))
	for i, c := range idx {
		vals[i] = float32(cands[c].Normalized().Stretch)
	}

	w := float32(want)
	pick, ok := exact(vals, w)
	if !ok {
		if want <= StretchNormal {
			if pick, ok = below(vals, w); !ok {
				pick, _ = above(vals, w)
			}
		} else {
			if pick, ok = above(vals, w); !ok {
				pick, _ = below(vals, w)
			}
		}
	}
	return filter(idx, func(c int) bool { return float32(cands[c].Normalized().Stretch) == pick })
}

func narrowStyle(cands []Properties, idx []int, want Style) []int {
	var order []Style
	switch want {
	case StyleItalic:
		order = []Style{StyleItalic, StyleOblique, StyleNormal}
	case StyleOblique:
		order = []Style{StyleOblique, StyleItalic, StyleNormal}
	default:
		order = []Style{StyleNormal, StyleOblique, StyleItalic}
	}
	for _, s := range order {
		if out := filter(idx, func(c int) bool { return cands[c].Style == s }); len(out) > 0 {
			return out
		}
	}
	return idx
}

func narrowWeight(cands []Properties, idx []int, want Weight) []int {
	vals := make([]float32, len(idx))
	for i, c := range idx {
		vals[i] = float32(cands[c].Normalized().Weight)
	}

	w := float32(want)
	pick, ok := exact(vals, w)
	switch {
	case ok:
	case want >= WeightNormal && want <= WeightMedium:
		// Heavier up to 500 first, then lighter, then heavier than 500.
		if pick, ok = aboveUpTo(vals, w, float32(WeightMedium)); !ok {
			if pick, ok = below(vals, w); !ok {
				pick, _ = above(vals, w)
			}
		}
	case want < WeightNormal:
		if pick, ok = below(vals, w); !ok {
			pick, _ = above(vals, w)
		}
	default:
		if pick, ok = above(vals, w); !ok {
			pick, _ = below(vals, w)
		}
	}
	return filter(idx, func(c int) bool { return float32(cands[c].Normalized().Weight) == pick })
}

func exact(vals []float32, x float32) (float32, bool) {
	for _, v := range vals {
		if v == x {
			return v, true
		}
	}
	return 0, false
}

// below returns the largest value less than x.
func below(vals []float32, x float32) (float32, bool) {
	var best float32
	found := false
	for _, v := range vals {
		if v < x && (!found || v > best) {
			best, found = v, true
		}
	}
	return best, found
}

// above returns the smallest value greater than x.
func above(vals []float32, x float32) (float32, bool) {
	var best float32
	found := false
	for _, v := range vals {
		if v > x && (!found || v < best) {
			best, found = v, true
		}
	}
	return best, found
}

// aboveUpTo returns the smallest value in (x, limit].
func aboveUpTo(vals []float32, x, limit float32) (float32, bool) {
	v, ok := above(vals, x)
	if !ok || v > limit {
		return 0, false
	}
	return v, true
}

func filter(idx []int, keep func(int) bool) []int {
	out := make([]int, 0, len(idx))
	for _, c := range idx {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
