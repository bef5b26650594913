package api

// ErrorResponse is the JSON error envelope returned by every failing route.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
