// Package view holds the route table, the auth guard and the pure projections
// that turn store state into the rows and cards each page shows.
package view

import (
	"errors"
	"fmt"
)

var ErrUnknownRoute = errors.New("unknown route")

// Route identifies a page of the storefront.
type Route string

const (
	RouteEntry     Route = "entry"   // login / signup
	RouteLanding   Route = "landing" // public home page
	RouteMain      Route = "main"    // dashboard
	RouteCustomers Route = "customers"
	RouteOrders    Route = "orders"
)

// Projection names a renderable block of a page.
type Projection string

const (
	ProjectionCustomerCards Projection = "customer_cards"
	ProjectionOrderTable    Projection = "order_table"
)

type routeInfo struct {
	public      bool
	entry       bool
	projections []Projection
}

var routeTable = map[Route]routeInfo{
	RouteEntry:     {public: true, entry: true},
	RouteLanding:   {public: true},
	RouteMain:      {projections: []Projection{ProjectionOrderTable}},
	RouteCustomers: {projections: []Projection{ProjectionCustomerCards}},
	RouteOrders:    {projections: []Projection{ProjectionOrderTable}},
}

// ParseRoute validates a route name.
func ParseRoute(s string) (Route, error) {
	r := Route(s)
	if _, ok := routeTable[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, s)
	}
	return r, nil
}

// Projections lists the projections the route renders.
func (r Route) Projections() []Projection {
	return routeTable[r].projections
}

func (r Route) renders(p Projection) bool {
	for _, q := range routeTable[r].projections {
		if q == p {
			return true
		}
	}
	return false
}

// Decision is the outcome of the auth guard. An empty Redirect means stay.
type Decision struct {
	Redirect Route `json:"redirect,omitempty"`
}

func (d Decision) Redirects() bool { return d.Redirect != "" }

// Guard decides, once per page load, whether the visitor must be sent elsewhere:
// protected pages without a session go to the entry page, and the entry page
// with a session goes to the main view.
func Guard(sessionPresent bool, r Route) Decision {
	info, ok := routeTable[r]
	switch {
	case !ok:
		if sessionPresent {
			return Decision{Redirect: RouteMain}
		}
		return Decision{Redirect: RouteEntry}
	case !sessionPresent && !info.public:
		return Decision{Redirect: RouteEntry}
	case sessionPresent && info.entry:
		return Decision{Redirect: RouteMain}
	}
	return Decision{}
}
