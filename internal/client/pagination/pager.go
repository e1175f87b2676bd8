package pagination

import "github.com/dmitrijs2005/scanboard/internal/client/models"

// Sequence hands out request numbers; only the newest one is current.
type Sequence struct {
	n uint64
}

// Next starts a new request and supersedes all earlier ones.
func (s *Sequence) Next() uint64 {
	s.n++
	return s.n
}

func (s *Sequence) IsCurrent(seq uint64) bool {
	return seq != 0 && seq == s.n
}

// State is the pagination state of a list view. CurrentPage is 1-based.
type State struct {
	CurrentPage  int
	ItemsPerPage int
	TotalItems   int
	More         bool
}

// TotalPages is ceil(TotalItems/ItemsPerPage), extended by one page when the
// total is only a lower bound and the current page came back full.
func (s State) TotalPages() int {
	if s.ItemsPerPage <= 0 {
		return 0
	}
	n := (s.TotalItems + s.ItemsPerPage - 1) / s.ItemsPerPage
	if s.More && n <= s.CurrentPage {
		n = s.CurrentPage + 1
	}
	return n
}

// Clamp keeps page inside [1, max(TotalPages, 1)].
func (s State) Clamp(page int) int {
	last := s.TotalPages()
	if last < 1 {
		last = 1
	}
	if page > last {
		page = last
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Pager is the view state of one paged list. It is meant to be driven from a
// single goroutine (a bubbletea Update loop).
type Pager[T any] struct {
	seq     Sequence
	state   State
	items   []T
	message string
	loading bool
}

func NewPager[T any](pageSize int) *Pager[T] {
	return &Pager[T]{state: State{CurrentPage: 1, ItemsPerPage: pageSize}}
}

// Begin starts loading page and returns the request's sequence number.
func (p *Pager[T]) Begin() uint64 {
	p.loading = true
	return p.seq.Next()
}

// Complete applies the result of request seq for page. It reports false and
// changes nothing when seq has been superseded. On error the list is cleared.
func (p *Pager[T]) Complete(seq uint64, page int, res models.Page[T], err error) bool {
	if !p.seq.IsCurrent(seq) {
		return false
	}
	p.loading = false

	if err != nil {
		p.items = nil
		p.message = ""
		p.state.TotalItems = 0
		p.state.More = false
		return true
	}

	p.items = res.Items
	p.message = res.Message
	p.state.CurrentPage = page
	p.state.TotalItems = res.Total
	p.state.More = res.More
	return true
}

func (p *Pager[T]) Items() []T      { return p.items }
func (p *Pager[T]) State() State    { return p.state }
func (p *Pager[T]) Loading() bool   { return p.loading }
func (p *Pager[T]) Message() string { return p.message }
func (p *Pager[T]) Page() int       { return p.state.CurrentPage }
func (p *Pager[T]) PageSize() int   { return p.state.ItemsPerPage }

// NextPage and PrevPage return the neighbouring page, clamped.
func (p *Pager[T]) NextPage() int { return p.state.Clamp(p.state.CurrentPage + 1) }
func (p *Pager[T]) PrevPage() int { return p.state.Clamp(p.state.CurrentPage - 1) }
