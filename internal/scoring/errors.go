package scoring

import "fmt"

// EmptySelectionError reports that a content category had zero eligible
// candidates. It is non-fatal to the run but must be surfaced to the caller;
// the engine never synthesizes fallback content.
type EmptySelectionError struct {
	Category string
}

func (e *EmptySelectionError) Error() string {
	return fmt.Sprintf("no eligible content items for category %q", e.Category)
}

// SelectionErrors returns one EmptySelectionError per category that had zero
// eligible candidates in this plan.
func (p *Plan) SelectionErrors() []error {
	errs := make([]error, 0, len(p.EmptyCategories))
	for _, category := range p.EmptyCategories {
		errs = append(errs, &EmptySelectionError{Category: category})
	}
	return errs
}
