package core

// Review is a user's opinion on a book. Counters only ever grow: votes
// increment by one and there is no deduplication per user.
type Review struct {
	ID       string `json:"id"`
	BookID   string `json:"bookId"`
	UserID   string `json:"userId"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
	Date     string `json:"date"` // ISO-8601 creation timestamp
}

// VoteKind selects which counter a vote touches.
type VoteKind string

const (
	VoteLike    VoteKind = "like"
	VoteDislike VoteKind = "dislike"
)

// Valid reports whether k is one of the two accepted vote kinds.
func (k VoteKind) Valid() bool {
	return k == VoteLike || k == VoteDislike
}
