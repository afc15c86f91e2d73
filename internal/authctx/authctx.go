// Package authctx carries the per-request session identity as an explicit
// value. Nothing in this repo reads auth state from globals: the context is
// built once from the JWT claims and threaded into every service call, so a
// given operation's tenant/role dependency is visible in its signature.
package authctx

import "gorm.io/gorm"

// Roles
const (
	RolCobrador   = "cobrador"
	RolAdmin      = "admin"
	RolSuperadmin = "superadmin"
)

// Ctx is the read-only session snapshot: who is acting, under which admin
// ledger, tenant and route.
type Ctx struct {
	UserID   string
	Admin    string
	Rol      string
	TenantID *string
	RutaID   *string
}

// Scope appends tenant and route filters to a query. Filters are additive:
// tenant-equality whenever a tenant is present, route-equality only when the
// actor is a cobrador with an assigned route. Existing filters on q are
// never replaced.
func Scope(q *gorm.DB, actx Ctx) *gorm.DB {
	if actx.TenantID != nil && *actx.TenantID != "" {
		q = q.Where("tenant_id = ?", *actx.TenantID)
	}
	if actx.Rol == RolCobrador && actx.RutaID != nil && *actx.RutaID != "" {
		q = q.Where("ruta_id = ?", *actx.RutaID)
	}
	return q
}
