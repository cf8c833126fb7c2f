package finding

import "sort"

// Index maps section numbers to findings. It holds references into the
// finding slice it was built from and never copies a finding.
type Index struct {
	byNumber map[Number][]*Finding
}

// NewIndex builds the lookup table for findings. Duplicate numbers are kept
// so Lookup can report them.
func NewIndex(findings []*Finding) *Index {
	idx := &Index{byNumber: make(map[Number][]*Finding, len(findings))}
	for _, f := range findings {
		if f == nil {
			continue
		}
		idx.byNumber[f.Number] = append(idx.byNumber[f.Number], f)
	}
	return idx
}

// Lookup returns every finding with the given number.
func (idx *Index) Lookup(n Number) []*Finding {
	if idx == nil {
		return nil
	}
	return idx.byNumber[n]
}

// Get returns the finding with the given number when exactly one exists.
func (idx *Index) Get(n Number) (*Finding, bool) {
	matches := idx.Lookup(n)
	if len(matches) != 1 {
		return nil, false
	}
	return matches[0], true
}

// Resolve maps numbers to findings, skipping numbers without a unique match.
func (idx *Index) Resolve(numbers []Number) []*Finding {
	out := make([]*Finding, 0, len(numbers))
	for _, n := range numbers {
		if f, ok := idx.Get(n); ok {
			out = append(out, f)
		}
	}
	return out
}

// Duplicates returns the numbers shared by more than one finding.
func (idx *Index) Duplicates() []Number {
	if idx == nil {
		return nil
	}
	var dups []Number
	for n, fs := range idx.byNumber {
		if len(fs) > 1 {
			dups = append(dups, n)
		}
	}
	sortNumbers(dups)
	return dups
}

// Len returns the number of distinct section numbers.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byNumber)
}

func sortNumbers(ns []Number) {
	sort.Slice(ns, func(i, j int) bool { return ns[i].Less(ns[j]) })
}
