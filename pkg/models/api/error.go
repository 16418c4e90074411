package api

type ErrorResponse struct {
	Error      string `json:"error"`
	Computable *bool  `json:"computable,omitempty"`
}
