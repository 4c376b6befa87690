package spacing

import "github.com/abdidvp/keyalign/internal/domain"

// ReportRequest is one side of one construct, paired with the width the
// policy expects there.
type ReportRequest struct {
	Construct domain.Construct
	Side      domain.Side
	Observed  string
	Expected  int
	Mode      domain.Mode
}

type measured struct {
	construct  domain.Construct
	width      int
	whitespace domain.WhitespaceSpan
}

// PlanGroup computes the expected spacing of every measurable construct in
// an alignment group. Constructs without a separator are left out, both from
// the result and from the group's width, and group alignment applies only
// when more than one measurable construct remains after that filter.
func PlanGroup(src domain.Source, group []domain.Construct, policy domain.Policy) []ReportRequest {
	members := measureGroup(src, group)
	if len(members) == 0 {
		return nil
	}
	if policy.Align != nil && len(members) > 1 {
		return planAligned(members, *policy.Align)
	}
	return planIndependent(src, members, policy)
}

func measureGroup(src domain.Source, group []domain.Construct) []measured {
	members := make([]measured, 0, len(group))
	for _, c := range group {
		ws := ExtractWhitespace(src, c)
		if ws == nil {
			continue
		}
		members = append(members, measured{
			construct:  c,
			width:      MeasureKeyWidth(src, c),
			whitespace: *ws,
		})
	}
	return members
}

// planAligned pads the side opposite the alignment anchor with the
// group-derived width and holds the anchor side at the flat configured count.
func planAligned(members []measured, align domain.AlignRule) []ReportRequest {
	target := 0
	for _, m := range members {
		target = max(target, m.width)
	}
	if align.On == domain.AlignColon {
		target += align.BeforeColon
	} else {
		target += align.AfterColon
	}

	reqs := make([]ReportRequest, 0, 2*len(members))
	for _, m := range members {
		keyExpected, valueExpected := target-m.width, align.AfterColon
		if align.On == domain.AlignValue {
			keyExpected, valueExpected = align.BeforeColon, target-m.width
		}
		reqs = append(reqs,
			request(m, domain.SideKey, keyExpected, align.Mode),
			request(m, domain.SideValue, valueExpected, align.Mode),
		)
	}
	return reqs
}

func planIndependent(src domain.Source, members []measured, policy domain.Policy) []ReportRequest {
	reqs := make([]ReportRequest, 0, 2*len(members))
	for _, m := range members {
		rule := policy.RuleFor(IsSingleLine(src, m.construct))
		reqs = append(reqs,
			request(m, domain.SideKey, rule.BeforeColon, rule.Mode),
			request(m, domain.SideValue, rule.AfterColon, rule.Mode),
		)
	}
	return reqs
}

func request(m measured, side domain.Side, expected int, mode domain.Mode) ReportRequest {
	observed := m.whitespace.BeforeColon
	if side == domain.SideValue {
		observed = m.whitespace.AfterColon
	}
	return ReportRequest{
		Construct: m.construct,
		Side:      side,
		Observed:  observed,
		Expected:  expected,
		Mode:      mode,
	}
}
