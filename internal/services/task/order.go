package task

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrDuplicateAssignee   = errors.New("duplicate assignee in sequence")
	ErrSequenceNotContiguous = errors.New("sequence positions must be contiguous from 1")
)

// AssigneeList maintains the set of users picked for a task. In unordered
// mode it behaves as a set; in sequential mode position matters and defines
// the 1..N execution order. Sequence numbers are never stored per element:
// they are always recomputed from position, so gaps cannot appear.
type AssigneeList struct {
	sequential bool
	members    []uuid.UUID
}

// NewAssigneeList seeds a list from the current selection. When switching an
// unordered selection into sequential mode the seed order is whatever the
// set provided; stability across repeated mode switches is explicitly not
// guaranteed.
func NewAssigneeList(sequential bool, seed []uuid.UUID) *AssigneeList {
	l := &AssigneeList{sequential: sequential}
	for _, id := range seed {
		if !l.Contains(id) {
			l.members = append(l.members, id)
		}
	}
	return l
}

func (l *AssigneeList) Sequential() bool { return l.sequential }

// SetSequential switches modes keeping the same member set. Going
// sequential→unordered discards the ordering semantics; the slice order is
// retained only as an implementation detail.
func (l *AssigneeList) SetSequential(sequential bool) {
	l.sequential = sequential
}

func (l *AssigneeList) Contains(id uuid.UUID) bool {
	for _, m := range l.members {
		if m == id {
			return true
		}
	}
	return false
}

// Toggle adds the user at the end when absent, removes them (closing the
// gap) when present.
func (l *AssigneeList) Toggle(id uuid.UUID) {
	if l.Contains(id) {
		l.Remove(id)
		return
	}
	l.members = append(l.members, id)
}

// Remove deletes the user, closing the gap. Positions after the removed
// entry shift down so the sequence stays 1..N contiguous.
func (l *AssigneeList) Remove(id uuid.UUID) {
	for i, m := range l.members {
		if m == id {
			l.members = append(l.members[:i], l.members[i+1:]...)
			return
		}
	}
}

// MoveUp swaps the entry at index with its predecessor. No-op at the top.
func (l *AssigneeList) MoveUp(index int) {
	if index <= 0 || index >= len(l.members) {
		return
	}
	l.members[index-1], l.members[index] = l.members[index], l.members[index-1]
}

// MoveDown swaps the entry at index with its successor. No-op at the bottom.
func (l *AssigneeList) MoveDown(index int) {
	if index < 0 || index >= len(l.members)-1 {
		return
	}
	l.members[index], l.members[index+1] = l.members[index+1], l.members[index]
}

// Members returns the current selection in list order.
func (l *AssigneeList) Members() []uuid.UUID {
	out := make([]uuid.UUID, len(l.members))
	copy(out, l.members)
	return out
}

func (l *AssigneeList) Len() int { return len(l.members) }

// Sequence produces the submission payload: 1-based positions derived from
// the current list order.
func (l *AssigneeList) Sequence() []SequencedUser {
	out := make([]SequencedUser, 0, len(l.members))
	for i, id := range l.members {
		out = append(out, SequencedUser{UserID: id, Sequence: i + 1})
	}
	return out
}

// Prune drops members outside the eligible pool, closing gaps. Used when
// the selected projects change and the user pool is recomputed.
func (l *AssigneeList) Prune(eligible map[uuid.UUID]bool) {
	kept := l.members[:0]
	for _, id := range l.members {
		if eligible[id] {
			kept = append(kept, id)
		}
	}
	l.members = kept
}

// ValidateSequence checks a submitted sequential payload: distinct users
// and positions forming exactly 1..N. Client-side construction guarantees
// this, but the client is not a security boundary.
func ValidateSequence(pairs []SequencedUser) error {
	seenUser := make(map[uuid.UUID]bool, len(pairs))
	seenPos := make(map[int]bool, len(pairs))

	for _, p := range pairs {
		if seenUser[p.UserID] {
			return fmt.Errorf("%w: %s", ErrDuplicateAssignee, p.UserID)
		}
		seenUser[p.UserID] = true

		if p.Sequence < 1 || p.Sequence > len(pairs) || seenPos[p.Sequence] {
			return fmt.Errorf("%w: position %d", ErrSequenceNotContiguous, p.Sequence)
		}
		seenPos[p.Sequence] = true
	}
	return nil
}
