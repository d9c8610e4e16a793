package nav

import (
	"net/url"
	"sync"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/notice"
)

const (
	Home       = "/"
	Login      = "/login"
	Profile    = "/profile"
	Search     = "/allproducts/search"
	Categories = "/categories"
	Cart       = "/cart"
	Checkout   = "/checkout"
	Orders     = "/orders"
)

const loginRequired = "Please log in to your account"

func CategoryProducts(category, subcategory string) string {
	route := "/" + url.PathEscape(category) + "/products"
	if subcategory != "" {
		route += "/" + url.PathEscape(subcategory)
	}
	return route
}

func ProductPage(id string) string {
	return "/product/" + url.PathEscape(id)
}

type Navigator interface {
	Navigate(route string)
	// Reload re-renders the current route from scratch.
	Reload()
}

// History is a Navigator that records every transition.
type History struct {
	mu      sync.Mutex
	visits  []string
	reloads int
}

func NewHistory(start string) *History {
	return &History{visits: []string{start}}
}

func (h *History) Navigate(route string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.visits = append(h.visits, route)
}

func (h *History) Reload() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.reloads++
}

func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.visits) == 0 {
		return ""
	}
	return h.visits[len(h.visits)-1]
}

func (h *History) Visits() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.visits))
	copy(out, h.visits)
	return out
}

func (h *History) Reloads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reloads
}

// RequireSession guards a protected view. Without an authenticated session
// it notifies the user, redirects to the login route and returns false.
func RequireSession(s domain.Session, n notice.Notifier, nav Navigator) bool {
	if s.Authenticated() {
		return true
	}
	notice.Errorf(n, loginRequired)
	nav.Navigate(Login)
	return false
}
