package testutil

import (
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/google/uuid"
)

// Card options
type CardOption func(*domain.Card)

func WithMembers(ids ...string) CardOption {
	return func(c *domain.Card) {
		c.IDMembers = append(c.IDMembers, ids...)
	}
}

func WithChecklist(name string, items ...domain.CheckItem) CardOption {
	return func(c *domain.Card) {
		c.Checklists = append(c.Checklists, domain.Checklist{
			ID:         uuid.New().String(),
			Name:       name,
			CheckItems: items,
		})
	}
}

func NewTestCard(name string, opts ...CardOption) domain.Card {
	c := domain.Card{
		ID:        uuid.New().String(),
		Name:      name,
		IDMembers: []string{},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Done and Todo build check items in either state.
func Done(name string) domain.CheckItem {
	return domain.CheckItem{ID: uuid.New().String(), Name: name, State: domain.CheckItemComplete}
}

func Todo(name string) domain.CheckItem {
	return domain.CheckItem{ID: uuid.New().String(), Name: name, State: domain.CheckItemIncomplete}
}

// NewTestList builds a list holding cards, pointing each card back at it.
func NewTestList(name string, cards ...domain.Card) domain.List {
	l := domain.List{ID: uuid.New().String(), Name: name}
	for _, c := range cards {
		c.IDList = l.ID
		l.Cards = append(l.Cards, c)
	}
	return l
}

func NewTestMember(fullName string) domain.Member {
	return domain.Member{
		ID:       uuid.New().String(),
		FullName: fullName,
		Username: fullName,
	}
}

func NewTestBoard(name string) domain.Board {
	id := uuid.New().String()
	return domain.Board{ID: id, Name: name, URL: "https://trello.com/b/" + id}
}

// NewSprintLists builds the four conventional stage lists, To Do first.
func NewSprintLists(todo, doing, testing, done []domain.Card) []domain.List {
	return []domain.List{
		NewTestList("To Do", todo...),
		NewTestList("Doing", doing...),
		NewTestList("Testing", testing...),
		NewTestList("Done", done...),
	}
}

// Cards is shorthand for a card slice.
func Cards(cards ...domain.Card) []domain.Card {
	return cards
}
