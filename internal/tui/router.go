// Package tui implements the interactive terminal shell: a two-route
// bubbletea program rendering session state and turning key presses into
// session operations.
package tui

import (
	"errors"
	"fmt"
)

// Route is a navigable view path.
type Route string

const (
	RouteHome     Route = "/"
	RouteMissions Route = "/missions"
)

// ErrUnknownRoute is returned when navigating to a path with no view.
var ErrUnknownRoute = errors.New("unknown route")

// Routes lists the views in tab order.
var Routes = []Route{RouteHome, RouteMissions}

// Router tracks the current view.
type Router struct {
	current Route
}

// NewRouter starts at the home view.
func NewRouter() Router {
	return Router{current: RouteHome}
}

// Current returns the active route.
func (r Router) Current() Route {
	return r.current
}

// Navigate switches to path and reports whether the route changed.
func (r *Router) Navigate(path string) (bool, error) {
	for _, route := range Routes {
		if string(route) == path {
			changed := r.current != route
			r.current = route
			return changed, nil
		}
	}
	return false, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Title returns the tab label for a route.
func (r Route) Title() string {
	switch r {
	case RouteHome:
		return "Home"
	case RouteMissions:
		return "Missions"
	default:
		return string(r)
	}
}
