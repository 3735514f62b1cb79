package resolver

import (
	"github.com/bware/jimpl/internal/errors"
	"github.com/bware/jimpl/internal/models"
)

// SelectConstructor picks the constructor the generated class delegates
// through: the first non-private constructor declared directly on the
// subject, in declaration order. Inherited constructors are never
// considered; subclassing has to go through the subject's own accessible
// constructors.
//
// Interface subjects have no constructor to generate; the result is nil
// without error. A class subject whose declared constructors are all
// private fails with NoUsableConstructor.
func SelectConstructor(subject *models.TypeDescriptor) (*models.Constructor, error) {
	if subject.Kind == models.KindInterface {
		return nil, nil
	}
	for _, c := range subject.DeclaredConstructors() {
		if c.Mods.IsVisible() {
			return c, nil
		}
	}
	return nil, errors.NewNoUsableConstructor(subject.QualifiedName)
}
