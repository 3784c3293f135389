package models

// Nominee is anything attendees can vote on: a board game, a TTRPG or a
// roundtable idea. The aggregator and table logic only need these three
// accessors; everything else is variant-specific display data.
type Nominee interface {
	NomineeID() string
	NomineeTitle() string
	NomineeOwner() string
}
