package voting

import (
	"strings"

	"github.com/frencon/backend/internal/models"
)

type FilterMode int

const (
	FilterNone FilterMode = iota
	FilterSubstring
	FilterExact
)

// Column is one variant-specific attribute column. Value reads the display
// string off the concrete nominee; an unexpected concrete type yields "".
type Column struct {
	Name   string
	Filter FilterMode
	Value  func(models.Nominee) string
}

// Variant parameterizes the shared aggregation and table logic for one
// nominee type. The first column is always the nominee's primary attribute
// (title or topic).
type Variant struct {
	GameType models.GameType
	Columns  []Column
}

func (v Variant) column(name string) (Column, bool) {
	for _, c := range v.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

var variants = map[models.GameType]Variant{
	models.GameTypeBoardGame: {
		GameType: models.GameTypeBoardGame,
		Columns: []Column{
			{Name: "title", Filter: FilterSubstring, Value: func(n models.Nominee) string {
				return n.NomineeTitle()
			}},
			{Name: "weight", Filter: FilterExact, Value: func(n models.Nominee) string {
				if g, ok := n.(models.BoardGame); ok {
					return string(g.Weight)
				}
				return ""
			}},
			{Name: "playerCount", Filter: FilterNone, Value: func(n models.Nominee) string {
				if g, ok := n.(models.BoardGame); ok {
					return g.PlayerCount
				}
				return ""
			}},
			{Name: "teacher", Filter: FilterSubstring, Value: func(n models.Nominee) string {
				if g, ok := n.(models.BoardGame); ok {
					return g.Teacher
				}
				return ""
			}},
		},
	},
	models.GameTypeTTRPG: {
		GameType: models.GameTypeTTRPG,
		Columns: []Column{
			{Name: "title", Filter: FilterSubstring, Value: func(n models.Nominee) string {
				return n.NomineeTitle()
			}},
			{Name: "vibe", Filter: FilterSubstring, Value: func(n models.Nominee) string {
				if t, ok := n.(models.TTRPG); ok {
					return t.Vibe
				}
				return ""
			}},
			{Name: "style", Filter: FilterExact, Value: func(n models.Nominee) string {
				if t, ok := n.(models.TTRPG); ok {
					return string(t.Style)
				}
				return ""
			}},
			{Name: "category", Filter: FilterExact, Value: func(n models.Nominee) string {
				if t, ok := n.(models.TTRPG); ok {
					return string(t.Category)
				}
				return ""
			}},
			{Name: "gms", Filter: FilterSubstring, Value: func(n models.Nominee) string {
				if t, ok := n.(models.TTRPG); ok {
					return strings.Join(t.GMs, ", ")
				}
				return ""
			}},
		},
	},
	models.GameTypeRoundtableIdea: {
		GameType: models.GameTypeRoundtableIdea,
		Columns: []Column{
			{Name: "topic", Filter: FilterSubstring, Value: func(n models.Nominee) string {
				return n.NomineeTitle()
			}},
			{Name: "notes", Filter: FilterSubstring, Value: func(n models.Nominee) string {
				if r, ok := n.(models.RoundtableIdea); ok {
					return r.Notes
				}
				return ""
			}},
		},
	},
}

// VariantFor returns the table descriptor for a game type.
func VariantFor(t models.GameType) (Variant, bool) {
	v, ok := variants[t]
	return v, ok
}
