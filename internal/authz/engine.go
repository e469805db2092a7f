package authz

import (
	"context"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	"gearguard/pkg/contextkeys"
	apperrors "gearguard/pkg/errors"
)

// Context is the resolved caller of one request.
type Context struct {
	Actor       *entities.User
	Permissions map[string]bool
}

func (c *Context) HasPermission(permission string) bool {
	if c == nil || c.Permissions == nil {
		return false
	}
	return c.Permissions[permission]
}

func (c *Context) IsTechnician() bool {
	return c.Actor.Role == constants.RoleTechnician
}

// CompanyID is empty for callers without a company.
func (c *Context) CompanyID() string {
	if c.Actor.CompanyID.Valid {
		return c.Actor.CompanyID.String
	}
	return ""
}

// Require fails with 403 and the given message when the permission is missing.
func (c *Context) Require(permission string, message string) error {
	if !c.HasPermission(permission) {
		return apperrors.NewForbiddenError(message)
	}
	return nil
}

// CanUpdateRequest applies the assigned-technician rule for request updates.
func (c *Context) CanUpdateRequest(req *entities.MaintenanceRequest) bool {
	if c.HasPermission(RequestsUpdate) {
		return true
	}
	if c.HasPermission(RequestsUpdateAssigned) {
		return req.AssignedTechnicianID.Valid && req.AssignedTechnicianID.String == c.Actor.ID
	}
	return false
}

// CheckCompanyParam rejects a client-supplied company id that differs from
// the caller's. An empty value is accepted.
func (c *Context) CheckCompanyParam(companyID string) error {
	if companyID == "" {
		return nil
	}
	if companyID != c.CompanyID() {
		return apperrors.NewForbiddenError("Access to another company is not allowed")
	}
	return nil
}

func WithActor(ctx context.Context, actor *entities.User, permissions map[string]bool) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, actor.ID)
	ctx = context.WithValue(ctx, contextkeys.UserKey, actor)
	return context.WithValue(ctx, contextkeys.UserPermissionsMapKey, permissions)
}

// FromContext returns the caller stored by the auth middleware.
func FromContext(ctx context.Context) (*Context, error) {
	actor, ok := ctx.Value(contextkeys.UserKey).(*entities.User)
	if !ok || actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	perms, _ := ctx.Value(contextkeys.UserPermissionsMapKey).(map[string]bool)
	return &Context{Actor: actor, Permissions: perms}, nil
}
