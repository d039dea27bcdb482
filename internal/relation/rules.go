package relation

import "github.com/seitarof/gen-uml/internal/model"

// Modifier keywords that mark a field as owned by its class.
const (
	ModifierPrivate = "private"
	ModifierFinal   = "final"
)

// FieldRule classifies a field whose type is a known class.
type FieldRule interface {
	Name() string
	Try(owner *model.ClassModel, field model.FieldModel) (Kind, bool)
}

// DefaultRules returns built-in rules in priority order.
func DefaultRules() []FieldRule {
	return []FieldRule{
		&CompositionRule{},
		&AssociationRule{},
	}
}

// CompositionRule: private final field -> composition.
type CompositionRule struct{}

func (r *CompositionRule) Name() string { return "composition" }

func (r *CompositionRule) Try(_ *model.ClassModel, field model.FieldModel) (Kind, bool) {
	if field.Modifiers.Has(ModifierPrivate, ModifierFinal) {
		return KindComposition, true
	}
	return 0, false
}

// AssociationRule: any other field -> association.
type AssociationRule struct{}

func (r *AssociationRule) Name() string { return "association" }

func (r *AssociationRule) Try(_ *model.ClassModel, _ model.FieldModel) (Kind, bool) {
	return KindAssociation, true
}
