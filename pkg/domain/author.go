package domain

// BlockedAuthor is an author whose cards are hidden.
// ID is the numeric account id when it could be extracted, otherwise whatever
// identifier the caller supplied (name or synthetic timestamp).
type BlockedAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Display returns "name (id)" when the name is known, id otherwise
func (a BlockedAuthor) Display() string {
	if a.Name == "" {
		return a.ID
	}
	return a.Name + " (" + a.ID + ")"
}

// Identity is the best-effort author and title information derived from a card region.
// Any field may be empty.
type Identity struct {
	AuthorID   string
	AuthorName string
	Title      string
}

// Actionable reports whether the identity carries anything an author rule can key on
func (i Identity) Actionable() bool {
	return i.AuthorID != "" || i.AuthorName != ""
}
