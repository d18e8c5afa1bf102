package app

import "sync"

type Page string

const (
	PageHome      Page = "home"
	PageLogin     Page = "login"
	PageRegister  Page = "register"
	PageDashboard Page = "dashboard"
)

var Pages = []Page{PageHome, PageLogin, PageRegister, PageDashboard}

func ParsePage(s string) (Page, bool) {
	for _, p := range Pages {
		if string(p) == s {
			return p, true
		}
	}

	return "", false
}

// Router holds the current page. Navigate replaces it with no history and
// no guards: the dashboard renders even when nobody is signed in.
type Router struct {
	mu      sync.RWMutex
	current Page
}

func NewRouter() *Router {
	return &Router{current: PageHome}
}

func (r *Router) Navigate(p Page) {
	r.mu.Lock()
	r.current = p
	r.mu.Unlock()
}

func (r *Router) Current() Page {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.current
}
