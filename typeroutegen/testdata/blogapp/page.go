package blogapp

// Page wraps a result set with pagination metadata.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
