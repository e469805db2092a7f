package authz

import (
	sq "github.com/Masterminds/squirrel"
)

// Scope is the row filter every tenant query applies.
type Scope struct {
	CompanyID string
	// TechnicianID is set for TECHNICIAN callers and limits maintenance requests.
	TechnicianID string
}

// Empty is true for callers without a company: every list is empty.
func (s Scope) Empty() bool {
	return s.CompanyID == ""
}

func (c *Context) Scope() Scope {
	scope := Scope{CompanyID: c.CompanyID()}
	if c.IsTechnician() {
		scope.TechnicianID = c.Actor.ID
	}
	return scope
}

// CompanyCondition filters a table by company. An empty scope matches nothing.
func (s Scope) CompanyCondition(column string) sq.Sqlizer {
	if s.Empty() {
		return sq.Expr("1 = 0")
	}
	return sq.Eq{column: s.CompanyID}
}

// RequestCondition adds the technician restriction to the company filter.
func (s Scope) RequestCondition(alias string) sq.Sqlizer {
	if s.Empty() {
		return sq.Expr("1 = 0")
	}
	cond := sq.And{sq.Eq{alias + ".company_id": s.CompanyID}}
	if s.TechnicianID != "" {
		cond = append(cond, sq.Eq{alias + ".assigned_technician_id": s.TechnicianID})
	}
	return cond
}
