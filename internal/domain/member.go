package domain

// MemberProgress is one member's share of the board.
type MemberProgress struct {
	Member   Member
	Cards    map[Stage][]Card
	Progress ProgressPair
}

// DoingNames lists the names of the cards the member is currently working on.
func (m MemberProgress) DoingNames() []string {
	cards := m.Cards[StageDoing]
	names := make([]string, 0, len(cards))
	for _, c := range cards {
		names = append(names, c.Name)
	}
	return names
}
