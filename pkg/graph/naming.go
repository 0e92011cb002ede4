package graph

import (
	"fmt"
	"regexp"
	"strconv"
)

// NextFreeNameLike returns base if no xform uses it, otherwise
// "base_N" where N is one more than the highest N among existing names of
// that form.
func (g *Graph) NextFreeNameLike(base string) string {
	if _, ok := g.xforms[base]; !ok {
		return base
	}
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(base) + `_([0-9]+)$`)
	highest := 0
	for name := range g.xforms {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s_%d", base, highest+1)
}
