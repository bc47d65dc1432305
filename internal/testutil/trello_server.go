package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/trello"
)

// FakeTrello serves the subset of the Trello REST API chewy reads.
type FakeTrello struct {
	Server *httptest.Server

	mu         sync.Mutex
	me         domain.Me
	boards     map[string]domain.Board
	lists      map[string][]domain.List
	members    map[string][]domain.Member
	cards      map[string][]domain.Card
	checklists map[string][]domain.Checklist
	profiles   map[string]domain.Member
	failures   map[string]int
	hits       map[string]int
	token      string
}

// NewFakeTrello starts a fake Trello API that accepts only token. It is
// closed when the test completes.
func NewFakeTrello(t *testing.T, token string) *FakeTrello {
	t.Helper()
	f := &FakeTrello{
		me:         domain.Me{ID: "me", Username: "me", FullName: "Test User"},
		boards:     map[string]domain.Board{},
		lists:      map[string][]domain.List{},
		members:    map[string][]domain.Member{},
		cards:      map[string][]domain.Card{},
		checklists: map[string][]domain.Checklist{},
		profiles:   map[string]domain.Member{},
		failures:   map[string]int{},
		hits:       map[string]int{},
		token:      token,
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

// Config returns a client config pointed at the fake server.
func (f *FakeTrello) Config() trello.Config {
	cfg := trello.DefaultConfig()
	cfg.Endpoint = f.Server.URL
	cfg.Key = "test-key"
	cfg.Token = f.token
	cfg.Timeout = 0
	return cfg
}

// AddBoard registers a board with its lists (and their cards and
// checklists) and members, and lists it on the current user.
func (f *FakeTrello) AddBoard(b domain.Board, lists []domain.List, members []domain.Member) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.boards[b.ID] = b
	f.me.IDBoards = append(f.me.IDBoards, b.ID)
	f.lists[b.ID] = lists
	f.members[b.ID] = members
	for _, l := range lists {
		f.cards[l.ID] = l.Cards
		for _, c := range l.Cards {
			f.checklists[c.ID] = c.Checklists
		}
	}
	for _, m := range members {
		f.profiles[m.ID] = m
	}
}

// SetCards replaces the cards of a list, as if someone moved cards on the board.
func (f *FakeTrello) SetCards(listID string, cards []domain.Card) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards[listID] = cards
	for _, c := range cards {
		f.checklists[c.ID] = c.Checklists
	}
}

// FailPath makes every request for path answer with status.
func (f *FakeTrello) FailPath(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = status
}

// Hits returns how often path was requested.
func (f *FakeTrello) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *FakeTrello) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	f.hits[path]++

	if r.URL.Query().Get("token") != f.token {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}
	if status, ok := f.failures[path]; ok {
		http.Error(w, "injected failure", status)
		return
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	var body any
	switch {
	case path == "/members/me":
		body = f.me
	case len(parts) == 2 && parts[0] == "boards":
		b, ok := f.boards[parts[1]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = b
	case len(parts) == 3 && parts[0] == "boards" && parts[2] == "lists":
		body = nonNil(f.lists[parts[1]])
	case len(parts) == 3 && parts[0] == "boards" && parts[2] == "members":
		// Board membership only carries identities; profiles come from /members/{id}.
		var ids []map[string]string
		for _, m := range f.members[parts[1]] {
			ids = append(ids, map[string]string{"id": m.ID})
		}
		body = nonNil(ids)
	case len(parts) == 3 && parts[0] == "lists" && parts[2] == "cards":
		body = nonNil(f.cards[parts[1]])
	case len(parts) == 3 && parts[0] == "cards" && parts[2] == "checklists":
		body = nonNil(f.checklists[parts[1]])
	case len(parts) == 2 && parts[0] == "members":
		m, ok := f.profiles[parts[1]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		body = m
	default:
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
