package scoring

import "strings"

// actionVerbs is the fixed vocabulary of resume action verbs. It feeds the
// ContentQuality sub-score and is the only out-of-source vocabulary a bullet
// rewrite is allowed to draw from.
var actionVerbs = []string{
	"accelerated", "achieved", "analyzed", "architected", "automated",
	"built", "collaborated", "created", "decreased", "delivered",
	"designed", "developed", "directed", "drove", "eliminated",
	"enabled", "engineered", "established", "expanded", "implemented",
	"improved", "increased", "initiated", "integrated", "launched",
	"led", "maintained", "managed", "mentored", "migrated",
	"modernized", "optimized", "orchestrated", "owned", "partnered",
	"pioneered", "reduced", "refactored", "resolved", "scaled",
	"shipped", "spearheaded", "standardized", "streamlined", "transformed",
}

var actionVerbSet = func() map[string]bool {
	set := make(map[string]bool, len(actionVerbs))
	for _, v := range actionVerbs {
		set[v] = true
	}
	return set
}()

// ActionVerbs returns the fixed action-verb vocabulary.
func ActionVerbs() []string {
	out := make([]string, len(actionVerbs))
	copy(out, actionVerbs)
	return out
}

// IsActionVerb reports whether word is in the action-verb vocabulary,
// case-insensitively.
func IsActionVerb(word string) bool {
	return actionVerbSet[strings.ToLower(word)]
}
