package intent

import (
	"fmt"
	"sort"
)

// LabelEncoder maps intent names to class indices. Classes are sorted.
type LabelEncoder struct {
	Classes []string
}

func fitLabelEncoder(names []string) *LabelEncoder {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	classes := make([]string, 0, len(set))
	for n := range set {
		classes = append(classes, n)
	}
	sort.Strings(classes)
	return &LabelEncoder{Classes: classes}
}

func (e *LabelEncoder) encode(name string) (int, error) {
	i := sort.SearchStrings(e.Classes, name)
	if i < len(e.Classes) && e.Classes[i] == name {
		return i, nil
	}
	return 0, fmt.Errorf("unseen label %q", name)
}

func (e *LabelEncoder) decode(i int) string {
	return e.Classes[i]
}
