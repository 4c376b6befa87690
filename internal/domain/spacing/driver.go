package spacing

import (
	"errors"
	"fmt"

	"github.com/abdidvp/keyalign/internal/domain"
)

var (
	ErrNoSource        = errors.New("declaration body has no source")
	ErrBodyOutOfBounds = errors.New("declaration body lies outside the source buffer")
	ErrWrongBodyKind   = errors.New("declaration body has the wrong kind for this entry point")
)

// Driver checks declaration bodies against one policy. It holds no state
// between bodies.
type Driver struct {
	policy domain.Policy
}

func NewDriver(policy domain.Policy) *Driver {
	return &Driver{policy: policy}
}

func (d *Driver) Policy() domain.Policy { return d.policy }

// CheckDeclarationBody checks the members of an interface body as one group.
func (d *Driver) CheckDeclarationBody(src domain.Source, body domain.DeclarationBody) ([]domain.Diagnostic, error) {
	if body.Kind != domain.BodyInterface {
		return nil, fmt.Errorf("%s %q: %w", body.Kind, body.Name, ErrWrongBodyKind)
	}
	return d.checkGroup(src, body)
}

// CheckEnumBlock checks the members of an enum as one group.
func (d *Driver) CheckEnumBlock(src domain.Source, body domain.DeclarationBody) ([]domain.Diagnostic, error) {
	if body.Kind != domain.BodyEnum {
		return nil, fmt.Errorf("%s %q: %w", body.Kind, body.Name, ErrWrongBodyKind)
	}
	return d.checkGroup(src, body)
}

// CheckFile checks every body of a parsed file. A body that cannot be
// checked is recorded in BodyErrors; its siblings are still checked.
func (d *Driver) CheckFile(file *domain.ParsedFile) domain.FileReport {
	report := domain.FileReport{Path: file.Path, Diagnostics: []domain.Diagnostic{}}
	for _, body := range file.Bodies {
		var (
			diags []domain.Diagnostic
			err   error
		)
		switch body.Kind {
		case domain.BodyEnum:
			diags, err = d.CheckEnumBlock(file.Source, body)
		default:
			diags, err = d.CheckDeclarationBody(file.Source, body)
		}
		if err != nil {
			report.BodyErrors = append(report.BodyErrors, domain.BodyError{
				Body:    body.Name,
				Kind:    body.Kind,
				Message: err.Error(),
			})
			continue
		}
		report.Diagnostics = append(report.Diagnostics, diags...)
	}
	return report
}

func (d *Driver) checkGroup(src domain.Source, body domain.DeclarationBody) ([]domain.Diagnostic, error) {
	if src == nil {
		return nil, fmt.Errorf("%s %q: %w", body.Kind, body.Name, ErrNoSource)
	}
	if body.Start < 0 || body.End > src.Len() || body.Start > body.End {
		return nil, fmt.Errorf("%s %q [%d,%d) in buffer of %d bytes: %w",
			body.Kind, body.Name, body.Start, body.End, src.Len(), ErrBodyOutOfBounds)
	}

	group := make([]domain.Construct, 0, len(body.Constructs))
	for _, c := range body.Constructs {
		if wellFormed(c, src.Len()) {
			group = append(group, c)
		}
	}

	reporter := NewReporter(src)
	var diags []domain.Diagnostic
	for _, req := range PlanGroup(src, group, d.policy) {
		if diag := reporter.Evaluate(req); diag != nil {
			diags = append(diags, *diag)
		}
	}
	return diags, nil
}

// wellFormed rejects constructs whose offsets are inconsistent with the
// buffer; they are skipped without a diagnostic.
func wellFormed(c domain.Construct, size int) bool {
	if c.KeyStart < 0 || c.KeyStart > c.KeyEnd || c.KeyEnd > size {
		return false
	}
	if !c.HasSeparator() {
		return true
	}
	return c.Separator >= c.KeyEnd && c.ValueStart > c.Separator && c.ValueStart <= size
}
