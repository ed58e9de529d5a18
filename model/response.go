// file: model/response.go

package model

// APIResponse is the uniform success envelope: a human-readable message plus
// the relevant payload.
type APIResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
