package view

import "starpro_store/internal/model"

const (
	RoleClassOwner    = "role-owner"
	RoleClassCustomer = "role-customer"
)

// Snapshot is the store state a page is built from.
type Snapshot struct {
	Customers []model.Customer
	Orders    []model.Order
}

// Page is everything a route renders for the current session.
type Page struct {
	Route     Route          `json:"route"`
	UserName  string         `json:"user_name,omitempty"`
	RoleClass string         `json:"role_class,omitempty"`
	Customers []CustomerCard `json:"customers"`
	Orders    *OrderTable    `json:"orders,omitempty"`
}

// BuildPage runs the projections registered for r. The order table needs a
// session and the customer cards are only shown to the owner.
func (f Formatter) BuildPage(r Route, sess *model.Session, snap Snapshot) Page {
	page := Page{Route: r}
	if sess != nil {
		page.UserName = sess.Name
		page.RoleClass = RoleClassOwner
		if sess.Role == model.RoleCustomer {
			page.RoleClass = RoleClassCustomer
		}
	}

	if r.renders(ProjectionCustomerCards) && sess != nil && sess.IsOwner() {
		page.Customers = f.CustomerCards(snap.Customers)
	}
	if r.renders(ProjectionOrderTable) && sess != nil {
		table := f.OrderTable(snap.Orders, *sess)
		page.Orders = &table
	}
	return page
}
