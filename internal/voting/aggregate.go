// Package voting joins nominees with per-voter scores and prepares the
// sortable, filterable tables the con site renders. One implementation
// covers board games, TTRPGs and roundtable ideas; a Variant supplies the
// per-type column accessors.
package voting

import (
	"sort"

	"github.com/frencon/backend/internal/models"
)

// Row is a nominee joined with every known voter's score. Total is always
// the sum of VotesByUser and is recomputed on each aggregation, never
// stored.
type Row struct {
	Nominee     models.Nominee `json:"nominee"`
	VotesByUser map[string]int `json:"votesByUser"`
	Total       int            `json:"total"`
	CanDelete   bool           `json:"canDelete"`
}

// VoterIDs returns the distinct set of voter identifiers across votes, plus
// the viewer when present, sorted for a deterministic column order. A voter
// whose only recorded score is 0 still appears; an unvoted viewer appears
// so their editable cell can render.
func VoterIDs(votes []models.Vote, viewerID string) []string {
	seen := make(map[string]struct{})
	for _, v := range votes {
		seen[v.UserID] = struct{}{}
	}
	if viewerID != "" {
		seen[viewerID] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Rows aggregates one Row per nominee. Missing votes default to 0; votes
// whose nominee is absent are never joined outward, so a stale vote set
// simply contributes nothing until both snapshots agree.
func Rows(nominees []models.Nominee, votes []models.Vote, viewerID string) []Row {
	voters := VoterIDs(votes, viewerID)

	byGame := make(map[string]map[string]int)
	for _, v := range votes {
		if byGame[v.GameID] == nil {
			byGame[v.GameID] = make(map[string]int)
		}
		byGame[v.GameID][v.UserID] = v.Score
	}

	rows := make([]Row, 0, len(nominees))
	for _, n := range nominees {
		votesByUser := make(map[string]int, len(voters))
		total := 0
		for _, uid := range voters {
			score := byGame[n.NomineeID()][uid]
			votesByUser[uid] = score
			total += score
		}
		rows = append(rows, Row{
			Nominee:     n,
			VotesByUser: votesByUser,
			Total:       total,
			CanDelete:   viewerID != "" && n.NomineeOwner() == viewerID,
		})
	}
	return rows
}
