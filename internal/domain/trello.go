package domain

import "fmt"

type Me struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	IDBoards []string `json:"idBoards"`
}

type Board struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Closed bool   `json:"closed"`
}

type List struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Closed bool    `json:"closed"`
	Pos    float64 `json:"pos"`

	// Cards is filled in by the fetch layer.
	Cards []Card `json:"-"`
}

type Card struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	IDList    string   `json:"idList"`
	IDMembers []string `json:"idMembers"`

	// Checklists is filled in by the fetch layer.
	Checklists []Checklist `json:"-"`
}

// AssignedTo reports whether memberID is one of the card's members.
func (c Card) AssignedTo(memberID string) bool {
	for _, id := range c.IDMembers {
		if id == memberID {
			return true
		}
	}
	return false
}

type Checklist struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	CheckItems []CheckItem `json:"checkItems"`
}

type CheckItem struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	State CheckItemState `json:"state"`
}

// Complete reports whether the item is checked off.
func (i CheckItem) Complete() bool {
	return i.State == CheckItemComplete
}

type Member struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Initials   string `json:"initials"`
	AvatarHash string `json:"avatarHash"`
}

// DisplayName prefers the full name, then the username, then the ID.
func (m Member) DisplayName() string {
	return CoalesceStr(m.FullName, m.Username, m.ID)
}

// Validate checks the identity fields every Trello record must carry.
func (b Board) Validate() error { return requireID("board", b.ID) }
func (l List) Validate() error { return requireID("list", l.ID) }
func (c Card) Validate() error { return requireID("card", c.ID) }
func (m Member) Validate() error { return requireID("member", m.ID) }
func (me Me) Validate() error { return requireID("member", me.ID) }
func (c Checklist) Validate() error { return requireID("checklist", c.ID) }

func requireID(kind, id string) error {
	if id == "" {
		return fmt.Errorf("%s is missing an id", kind)
	}
	return nil
}
