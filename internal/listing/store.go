package listing

import (
	"fmt"
	"slices"

	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// Store holds the items a list page is showing. It is owned by one mounted
// page and is not safe for concurrent use: mutations happen on the page's
// event loop, remote calls run elsewhere and report back through Settle*.
type Store struct {
	items    []domain.ListItem
	loading  map[int64]int
	notifier ports.Notifier
}

// NewStore seeds a store with a copy of initial
func NewStore(initial []domain.ListItem, notifier ports.Notifier) *Store {
	return &Store{
		items:    slices.Clone(initial),
		loading:  make(map[int64]int),
		notifier: notifier,
	}
}

// Items returns a copy of the current sequence
func (s *Store) Items() []domain.ListItem {
	return slices.Clone(s.items)
}

// Len returns the number of items
func (s *Store) Len() int {
	return len(s.items)
}

// At returns the item at index i
func (s *Store) At(i int) (domain.ListItem, bool) {
	if i < 0 || i >= len(s.items) {
		return domain.ListItem{}, false
	}
	return s.items[i], true
}

// Get returns the first item with id
func (s *Store) Get(id int64) (domain.ListItem, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.ListItem{}, false
}

// Append adds a fetched page after the current items. Pages are assumed
// disjoint; duplicate IDs are kept.
func (s *Store) Append(page []domain.ListItem) {
	s.items = append(s.items, page...)
}

// Replace swaps in the result of a new filtered fetch. Calls still in
// flight keep their loading marks.
func (s *Store) Replace(items []domain.ListItem) {
	s.items = slices.Clone(items)
}

// RemoveByID removes every item with id and returns how many were removed
func (s *Store) RemoveByID(id int64) int {
	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(it domain.ListItem) bool {
		return it.ID == id
	})
	return before - len(s.items)
}

// IsLoading reports whether a remote call for id has not settled yet
func (s *Store) IsLoading(id int64) bool {
	return s.loading[id] > 0
}

// Toggle records an optimistic favorite flip
type Toggle struct {
	ID       int64
	Title    string
	Previous bool
	Target   bool
}

// BeginToggle flips is_favorited on every item with id and marks it loading.
// A toggle that arrives while another is in flight is not rejected; each
// one settles to its own target when it resolves.
func (s *Store) BeginToggle(id int64) (Toggle, bool) {
	current, ok := s.Get(id)
	if !ok {
		return Toggle{}, false
	}
	t := Toggle{
		ID:       id,
		Title:    current.Title,
		Previous: current.IsFavorited,
		Target:   !current.IsFavorited,
	}
	s.setFavorite(id, t.Target)
	s.loading[id]++
	return t, true
}

// SettleToggle applies the outcome of the remote call. On success the flag
// is set to the toggle's target; on failure it goes back to the value it had
// before the click. Exactly one notification is sent either way.
func (s *Store) SettleToggle(t Toggle, err error) {
	s.doneLoading(t.ID)
	if err != nil {
		s.setFavorite(t.ID, t.Previous)
		s.notify(ports.NotifyFailure, fmt.Sprintf("Could not update favorite %q: %v", t.Title, err))
		return
	}
	s.setFavorite(t.ID, t.Target)
	if t.Target {
		s.notify(ports.NotifySuccess, fmt.Sprintf("Added %q to favorites", t.Title))
	} else {
		s.notify(ports.NotifySuccess, fmt.Sprintf("Removed %q from favorites", t.Title))
	}
}

type removed struct {
	index int
	item  domain.ListItem
}

// RemoveAction is why an item is being taken off the list
type RemoveAction int

const (
	RemoveDelete RemoveAction = iota
	RemoveUnfavorite
)

func (a RemoveAction) String() string {
	if a == RemoveUnfavorite {
		return "unfavorite"
	}
	return "delete"
}

func (a RemoveAction) done(title string) string {
	if a == RemoveUnfavorite {
		return fmt.Sprintf("Removed %q from favorites", title)
	}
	return fmt.Sprintf("Deleted %q", title)
}

// Removal records an optimistic removal so it can be undone
type Removal struct {
	ID      int64
	Action  RemoveAction
	Title   string
	entries []removed
}

// BeginRemove removes every item with id before the backend confirms
func (s *Store) BeginRemove(id int64, action RemoveAction) (Removal, bool) {
	r := Removal{ID: id, Action: action}
	for i, it := range s.items {
		if it.ID == id {
			r.entries = append(r.entries, removed{index: i, item: it})
		}
	}
	if len(r.entries) == 0 {
		return Removal{}, false
	}
	r.Title = r.entries[0].item.Title
	s.RemoveByID(id)
	s.loading[id]++
	return r, true
}

// SettleRemove confirms or undoes a removal. Undone items go back to their
// former positions, clamped to the current length, unless a newer fetch
// already brought the id back.
func (s *Store) SettleRemove(r Removal, err error) {
	s.doneLoading(r.ID)
	if err == nil {
		s.notify(ports.NotifySuccess, r.Action.done(r.Title))
		return
	}
	s.notify(ports.NotifyFailure, fmt.Sprintf("Could not %s %q: %v", r.Action, r.Title, err))
	if _, ok := s.Get(r.ID); ok {
		return
	}
	for _, e := range r.entries {
		at := min(e.index, len(s.items))
		s.items = slices.Insert(s.items, at, e.item)
	}
}

func (s *Store) setFavorite(id int64, v bool) {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].IsFavorited = v
		}
	}
}

func (s *Store) doneLoading(id int64) {
	if s.loading[id] <= 1 {
		delete(s.loading, id)
		return
	}
	s.loading[id]--
}

func (s *Store) notify(level ports.NotificationLevel, msg string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ports.Notification{Level: level, Message: msg})
}
