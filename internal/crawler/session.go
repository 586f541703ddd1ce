package crawler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Session is the frontier state of one crawl: a FIFO queue of
// discovered URLs plus the visited set, bounded by a page budget and
// scoped to the seed's domain. Each crawl owns its own Session, so
// concurrent crawls never interfere.
type Session struct {
	baseDomain string
	budget     int
	queue      []string
	queued     map[string]struct{}
	visited    map[string]struct{}
}

// NewSession creates a Session seeded with the start URL.
func NewSession(seedURL string, budget int) (*Session, error) {
	u, err := url.Parse(seedURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", types.ErrInvalidURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", types.ErrInvalidURL)
	}

	u.Fragment = ""
	seed := u.String()

	return &Session{
		baseDomain: u.Hostname(),
		budget:     budget,
		queue:      []string{seed},
		queued:     map[string]struct{}{seed: {}},
		visited:    make(map[string]struct{}),
	}, nil
}

// Active reports whether the crawl should continue: the queue has
// URLs and the page budget is not exhausted.
func (s *Session) Active() bool {
	return len(s.queue) > 0 && len(s.visited) < s.budget
}

// Next pops the head of the queue and marks it visited. FIFO order
// makes the traversal breadth-first, so shallow pages are reached
// before the budget runs out. Returns false when the session is done.
func (s *Session) Next() (string, bool) {
	for len(s.queue) > 0 && len(s.visited) < s.budget {
		head := s.queue[0]
		s.queue = s.queue[1:]
		delete(s.queued, head)

		if _, seen := s.visited[head]; seen {
			continue
		}
		s.visited[head] = struct{}{}
		return head, true
	}
	return "", false
}

// Enqueue adds an absolute URL to the frontier if it belongs to the
// crawl's domain and has not been visited or queued already.
func (s *Session) Enqueue(absURL string) {
	u, err := url.Parse(absURL)
	if err != nil {
		return
	}
	if u.Hostname() != s.baseDomain {
		return
	}
	if _, seen := s.visited[absURL]; seen {
		return
	}
	if _, pending := s.queued[absURL]; pending {
		return
	}
	s.queue = append(s.queue, absURL)
	s.queued[absURL] = struct{}{}
}

// VisitedCount returns how many pages have been popped for fetching.
func (s *Session) VisitedCount() int {
	return len(s.visited)
}

// QueueLen returns the number of URLs waiting in the frontier.
func (s *Session) QueueLen() int {
	return len(s.queue)
}

// NormalizeHref resolves a raw href against the current page and
// strips the fragment. Reports false for non-navigational links
// (mailto, tel, javascript, data) and non-HTTP schemes.
func NormalizeHref(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, prefix) {
			return "", false
		}
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}
