package request

// CreateTournamentRequest is the request body for creating a tournament
type CreateTournamentRequest struct {
	Name   string `json:"name"`
	Rounds uint32 `json:"rounds"`
}

// UpdateTournamentRequest is the request body for changing a tournament.
// Omitted fields are left unchanged.
type UpdateTournamentRequest struct {
	Name   *string `json:"name,omitempty"`
	Rounds *uint32 `json:"rounds,omitempty"`
}

// SignUpRequest is the request body for signing a player up
type SignUpRequest struct {
	Name   string `json:"name"`
	Rating uint32 `json:"rating"`
}

// ExpelRequest is the request body for expelling a player. Tournament is
// the organizer's reference, "<uuid>/<proof>".
type ExpelRequest struct {
	Tournament string `json:"tournament"`
}

// ResultRequest is the request body for recording a result
type ResultRequest struct {
	Result string `json:"result"`
}
