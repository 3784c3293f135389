package voting

import (
	"sort"
	"strings"

	"github.com/frencon/backend/internal/models"
)

// TableState is the client-controlled sort and filter state. Filters are
// keyed by column name and AND-combined; an empty value means no
// constraint. Applying state never mutates the underlying rows.
type TableState struct {
	SortColumn string
	SortDesc   bool
	Filters    map[string]string
}

// DefaultState sorts by total, highest first.
func DefaultState() TableState {
	return TableState{SortColumn: ColumnTotal, SortDesc: true}
}

// ColumnTotal is the computed score column, pinned last in display order.
const ColumnTotal = "total"

// VoterColumnPrefix prefixes per-voter column names, e.g. "vote_<userID>".
const VoterColumnPrefix = "vote_"

// VoterColumn describes one voter's column. Editable is true only for the
// viewer's own column; every other cell renders read-only regardless of
// what the client asks for.
type VoterColumn struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Editable    bool   `json:"editable"`
}

// Table is the full aggregated view for one nominee type: variant columns
// first, one column per voter, total last.
type Table struct {
	GameType models.GameType `json:"gameType"`
	Columns  []string        `json:"columns"`
	Voters   []VoterColumn   `json:"voters"`
	Rows     []Row           `json:"rows"`
}

// Apply filters then sorts rows according to state, returning a new slice.
func (v Variant) Apply(rows []Row, state TableState) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if v.matches(r, state.Filters) {
			out = append(out, r)
		}
	}

	col := state.SortColumn
	if _, ok := v.column(col); !ok && col != ColumnTotal && !strings.HasPrefix(col, VoterColumnPrefix) {
		col = ColumnTotal
	}

	sort.SliceStable(out, func(i, j int) bool {
		if state.SortDesc {
			return v.less(out[j], out[i], col)
		}
		return v.less(out[i], out[j], col)
	})
	return out
}

func (v Variant) matches(r Row, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" {
			continue
		}
		col, ok := v.column(name)
		if !ok || col.Filter == FilterNone {
			continue
		}
		got := col.Value(r.Nominee)
		switch col.Filter {
		case FilterSubstring:
			if !strings.Contains(strings.ToLower(got), strings.ToLower(want)) {
				return false
			}
		case FilterExact:
			if got != want {
				return false
			}
		}
	}
	return true
}

func (v Variant) less(a, b Row, col string) bool {
	if col == ColumnTotal {
		return a.Total < b.Total
	}
	if uid, ok := strings.CutPrefix(col, VoterColumnPrefix); ok {
		return a.VotesByUser[uid] < b.VotesByUser[uid]
	}
	c, _ := v.column(col)
	return strings.ToLower(c.Value(a.Nominee)) < strings.ToLower(c.Value(b.Nominee))
}

// BuildTable aggregates, annotates and orders the complete table for one
// variant. names maps user ids to display names for the voter column
// headers; voters without a profile fall back to a truncated id.
func (v Variant) BuildTable(
	nominees []models.Nominee,
	votes []models.Vote,
	viewer *models.AuthUser,
	names map[string]string,
	state TableState,
) Table {
	viewerID := ""
	if viewer != nil {
		viewerID = viewer.ID
	}

	rows := v.Apply(Rows(nominees, votes, viewerID), state)

	voterIDs := VoterIDs(votes, viewerID)
	voters := make([]VoterColumn, 0, len(voterIDs))
	for _, id := range voterIDs {
		name, ok := names[id]
		if !ok || name == "" {
			name = shortID(id)
		}
		voters = append(voters, VoterColumn{
			ID:          id,
			DisplayName: name,
			Editable:    id == viewerID && viewerID != "",
		})
	}

	cols := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		cols = append(cols, c.Name)
	}

	return Table{
		GameType: v.GameType,
		Columns:  cols,
		Voters:   voters,
		Rows:     rows,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
