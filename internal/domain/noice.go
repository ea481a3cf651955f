package domain

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNoiceCommentLength bounds the optional comment on a reaction.
const MaxNoiceCommentLength = 200

// Noice is a weighted like reaction. A noice can itself receive noices,
// forming a reaction tree of unbounded depth. Cycles cannot occur: a
// noice only ever nests reactions created after it.
type Noice struct {
	id         NoiceID
	fromUserID UserID
	postID     PostID
	amount     NoiceAmount
	comment    string
	noices     []Noice
	createdAt  time.Time
}

// NewNoice returns a comment-less noice with no nested reactions.
func NewNoice(fromUserID UserID, postID PostID, amount NoiceAmount) Noice {
	return Noice{
		id:         GenerateNoiceID(),
		fromUserID: fromUserID,
		postID:     postID,
		amount:     amount,
		createdAt:  time.Now().UTC(),
	}
}

// NewNoiceWithComment returns a noice carrying a comment. The comment is
// trimmed before storing; an empty comment is rejected (use NewNoice
// instead) as is one longer than MaxNoiceCommentLength.
func NewNoiceWithComment(fromUserID UserID, postID PostID, amount NoiceAmount, comment string) (Noice, error) {
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return Noice{}, invalid("noiceComment", "must not be empty; use a comment-less noice instead")
	}
	if utf8.RuneCountInString(trimmed) > MaxNoiceCommentLength {
		return Noice{}, invalidf("noiceComment", "must be at most %d characters", MaxNoiceCommentLength)
	}
	n := NewNoice(fromUserID, postID, amount)
	n.comment = trimmed
	return n, nil
}

// RestoreNoice rebuilds a noice from stored parts. Adapters use it to
// rehydrate reactions read from external backends.
func RestoreNoice(id NoiceID, fromUserID UserID, postID PostID, amount NoiceAmount, comment string, noices []Noice, createdAt time.Time) Noice {
	return Noice{
		id:         id,
		fromUserID: fromUserID,
		postID:     postID,
		amount:     amount,
		comment:    comment,
		noices:     slices.Clone(noices),
		createdAt:  createdAt,
	}
}

func (n Noice) ID() NoiceID          { return n.id }
func (n Noice) FromUserID() UserID   { return n.fromUserID }
func (n Noice) PostID() PostID       { return n.postID }
func (n Noice) Amount() NoiceAmount  { return n.amount }
func (n Noice) CreatedAt() time.Time { return n.createdAt }

// Comment returns the optional comment, empty when absent.
func (n Noice) Comment() string { return n.comment }

// HasComment reports whether the noice carries a comment.
func (n Noice) HasComment() bool { return n.comment != "" }

// Noices returns a copy of the directly nested reactions.
func (n Noice) Noices() []Noice { return slices.Clone(n.noices) }

// NoiceCount returns how many reactions are directly nested.
func (n Noice) NoiceCount() int { return len(n.noices) }

// AddNoice returns a copy of n with child appended to its nested
// reactions. The receiver is unchanged.
func (n Noice) AddNoice(child Noice) Noice {
	nested := make([]Noice, 0, len(n.noices)+1)
	nested = append(nested, n.noices...)
	nested = append(nested, child)
	n.noices = nested
	return n
}

// TotalAmount recursively sums the noice's own amount and the totals of
// every nested reaction. An explicit work stack is used so that
// pathologically deep reaction trees cannot overflow the goroutine stack.
func (n Noice) TotalAmount() int {
	total := 0
	stack := []Noice{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total += cur.amount.Value()
		stack = append(stack, cur.noices...)
	}
	return total
}

// NoicesByUser returns the directly nested reactions sent by userID.
func (n Noice) NoicesByUser(userID UserID) []Noice {
	var out []Noice
	for _, child := range n.noices {
		if child.fromUserID == userID {
			out = append(out, child)
		}
	}
	return out
}

// IsFromUser reports whether the noice was sent by userID.
func (n Noice) IsFromUser(userID UserID) bool { return n.fromUserID == userID }

// Equal reports identity equality: two noices are the same when their ids
// match.
func (n Noice) Equal(other Noice) bool { return n.id == other.id }
