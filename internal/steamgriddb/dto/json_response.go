package dto

// JSONResponse is the envelope SteamGridDB wraps every list response in.
type JSONResponse[T any] struct {
	Success bool     `json:"success"`
	Data    []T      `json:"data"`
	Errors  []string `json:"errors,omitempty"`
}

// JSONSingleResponse is the envelope for endpoints returning one object,
// such as /games/steam/{id}.
type JSONSingleResponse[T any] struct {
	Success bool     `json:"success"`
	Data    *T       `json:"data"`
	Errors  []string `json:"errors,omitempty"`
}
