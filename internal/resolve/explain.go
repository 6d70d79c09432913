package resolve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stolas-lang/stolas/internal/types"
)

// Explain renders a resolution as a human-readable proof tree rooted at the
// original query. Negative resolutions render as a single "no" line.
func Explain(receiver types.Type, ref types.TraitRef, res Resolution) string {
	var b strings.Builder
	explainNode(&b, 0, receiver, ref, res)
	return b.String()
}

func explainNode(b *strings.Builder, indent int, receiver types.Type, ref types.TraitRef, res Resolution) {
	pad := strings.Repeat("  ", indent)

	if !res.Implemented {
		fmt.Fprintf(b, "%s%s: %s => no\n", pad, receiver, ref)
		return
	}

	fmt.Fprintf(b, "%s%s: %s => yes\n", pad, receiver, ref)

	switch res.Via {
	case ViaTraitObject:
		fmt.Fprintf(b, "%s  the receiver is an instance of the trait\n", pad)
	case ViaBound:
		fmt.Fprintf(b, "%s  satisfied by a declared parameter bound\n", pad)
	case ViaImpl:
		w := res.Witness
		fmt.Fprintf(b, "%s  via %s%s\n", pad, w.Impl, formatSubst(w.Subst))
		for _, ob := range w.Obligations {
			explainNode(b, indent+1, ob.Receiver, ob.Trait, ob.Result)
		}
	}
}

func formatSubst(s types.Subst) string {
	if len(s) == 0 {
		return ""
	}

	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s = %s", name, s[name]))
	}
	return " with " + strings.Join(parts, ", ")
}
