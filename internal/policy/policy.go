// Package policy centralizes the ownership checks every mutating operation
// consults, instead of each handler re-implementing the admin/owner rule.
package policy

import "github.com/stockpilot/inventory-api/internal/models"

type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CanProduct reports whether user may perform action on product.
// View, update and delete are granted to the owner or an admin. List and
// create scoping happens at the caller.
func CanProduct(user *models.User, product *models.Product, action Action) bool {
	switch action {
	case ActionView, ActionUpdate, ActionDelete:
		return user.IsAdmin() || user.ID == product.UserID
	}
	return false
}

// CanManageCategory reports whether user may update or delete category.
// Global categories have no owner, so only admins may touch them.
func CanManageCategory(user *models.User, category *models.Category) bool {
	if category.IsGlobal() {
		return user.IsAdmin()
	}
	return user.IsAdmin() || *category.UserID == user.ID
}
