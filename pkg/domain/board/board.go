// Package board models the kanban-style board that issue cards live on.
package board

import "github.com/google/uuid"

// Card references at most one issue by number. Card and column identities
// are opaque; only the issue-number reference is meaningful.
type Card struct {
	ID          string `json:"id"`
	IssueNumber int    `json:"issue_number"`
}

// Column owns an ordered set of cards. Column names are unique per board.
type Column struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Board owns an ordered list of columns. Invariant: an issue number appears
// in at most one column's card set at any time.
type Board struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// NewBoard creates a board with the given columns, in order.
func NewBoard(name string, columnNames ...string) *Board {
	b := &Board{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, cn := range columnNames {
		b.Columns = append(b.Columns, Column{
			ID:   uuid.New().String(),
			Name: cn,
		})
	}
	return b
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{ID: b.ID, Name: b.Name}
	for _, col := range b.Columns {
		copied := Column{ID: col.ID, Name: col.Name}
		if col.Cards != nil {
			copied.Cards = append([]Card(nil), col.Cards...)
		}
		out.Columns = append(out.Columns, copied)
	}
	return out
}

// MoveCard removes any card referencing the issue number from every column,
// then appends a fresh card to the column with the target name. A target
// name that matches no column leaves the card removed everywhere: the issue
// simply falls off the board.
func (b *Board) MoveCard(issueNumber int, targetColumn string) *Board {
	out := b.Clone()

	for i := range out.Columns {
		kept := out.Columns[i].Cards[:0:0]
		for _, card := range out.Columns[i].Cards {
			if card.IssueNumber != issueNumber {
				kept = append(kept, card)
			}
		}
		out.Columns[i].Cards = kept
	}

	for i := range out.Columns {
		if out.Columns[i].Name == targetColumn {
			out.Columns[i].Cards = append(out.Columns[i].Cards, Card{
				ID:          uuid.New().String(),
				IssueNumber: issueNumber,
			})
			break
		}
	}

	return out
}

// ColumnOf returns the name of the column holding the issue's card, if any.
func (b *Board) ColumnOf(issueNumber int) (string, bool) {
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			if card.IssueNumber == issueNumber {
				return col.Name, true
			}
		}
	}
	return "", false
}
