// Package resolver computes what the generated class must define: the
// minimal set of method obligations that makes it concrete and loadable,
// and the constructor it delegates through.
package resolver

import (
	"sort"

	"github.com/bware/jimpl/internal/models"
)

// Obligation is one method the generated class must stub. Method is the
// representative declaration: any occurrence of the signature in the
// hierarchy, used only to source modifiers, parameter names and the throws
// list at render time.
type Obligation struct {
	Signature models.Signature
	Method    *models.Method
}

// Resolve computes the retained obligation set for a subject.
//
// Candidates are the abstract members of the externally visible method set,
// united with the abstract members declared directly on every level of the
// ancestor chain, which catches non-public abstract methods that the
// flattened view misses. The union is keyed by the three-field signature,
// so overlapping hierarchy branches contribute one obligation each.
//
// A final declaration anywhere in the chain already satisfies (and seals)
// its signature: the generated class must not re-declare it, or the output
// would not compile. Those signatures are subtracted as a second pass,
// because the final declaration may live on a different branch than the
// abstract one it suppresses.
//
// The result is ordered by signature for reproducible output.
func Resolve(subject *models.TypeDescriptor) []*Obligation {
	candidates := make(map[models.Signature]*models.Method)
	collect := func(m *models.Method) {
		if !m.Mods.Has(models.ModAbstract) {
			return
		}
		sig := m.Signature()
		if _, ok := candidates[sig]; !ok {
			candidates[sig] = m
		}
	}
	for _, m := range subject.VisibleMethods {
		collect(m)
	}
	for _, level := range subject.AncestorChain {
		for _, m := range level.Methods {
			collect(m)
		}
	}

	suppressed := make(map[models.Signature]bool)
	seal := func(m *models.Method) {
		if m.Mods.Has(models.ModFinal) {
			suppressed[m.Signature()] = true
		}
	}
	for _, m := range subject.VisibleMethods {
		seal(m)
	}
	for _, level := range subject.AncestorChain {
		for _, m := range level.Methods {
			seal(m)
		}
	}

	var retained []*Obligation
	for sig, m := range candidates {
		if suppressed[sig] {
			continue
		}
		retained = append(retained, &Obligation{Signature: sig, Method: m})
	}
	sort.Slice(retained, func(i, j int) bool {
		return retained[i].Signature.Less(retained[j].Signature)
	})
	return retained
}
