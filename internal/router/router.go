// Package router maps client-side paths to screens and keeps a back stack.
package router

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Screen names a routable screen
type Screen int

const (
	ScreenExamList Screen = iota
	ScreenExamDetail
)

const (
	// ListPath is the root route
	ListPath = "/exams"
	// detailPrefix is followed by the exam id
	detailPrefix = "/exam/"
)

// Route is a parsed path
type Route struct {
	Path   string
	Screen Screen
	ExamID int64 // only for ScreenExamDetail
}

// DetailPath returns the detail route for an exam id
func DetailPath(id int64) string {
	return detailPrefix + strconv.FormatInt(id, 10)
}

// Parse resolves a path to a Route
func Parse(path string) (Route, error) {
	switch {
	case path == ListPath || path == "/" || path == "":
		return Route{Path: ListPath, Screen: ScreenExamList}, nil
	case strings.HasPrefix(path, detailPrefix):
		raw := strings.TrimPrefix(path, detailPrefix)
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return Route{}, fmt.Errorf("invalid exam id in path %q", path)
		}
		return Route{Path: DetailPath(id), Screen: ScreenExamDetail, ExamID: id}, nil
	default:
		return Route{}, fmt.Errorf("unknown route %q", path)
	}
}

// Navigator holds the current route and the back stack
type Navigator struct {
	mu      sync.Mutex
	stack   []Route
	visited []string
}

// NewNavigator starts at the list route
func NewNavigator() *Navigator {
	return &Navigator{
		stack: []Route{{Path: ListPath, Screen: ScreenExamList}},
	}
}

// Navigate pushes path onto the stack
func (n *Navigator) Navigate(path string) (Route, error) {
	route, err := Parse(path)
	if err != nil {
		return Route{}, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.stack = append(n.stack, route)
	n.visited = append(n.visited, route.Path)
	return route, nil
}

// Back pops the current route. It reports false at the root.
func (n *Navigator) Back() (Route, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.stack) <= 1 {
		return n.stack[0], false
	}
	n.stack = n.stack[:len(n.stack)-1]
	return n.stack[len(n.stack)-1], true
}

// Current returns the active route
func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.stack[len(n.stack)-1]
}

// Depth returns the stack size
func (n *Navigator) Depth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.stack)
}

// Visited returns every path passed to a successful Navigate, in order
func (n *Navigator) Visited() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]string, len(n.visited))
	copy(out, n.visited)
	return out
}
