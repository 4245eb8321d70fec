package util

// Pointer returns a pointer to v, for filling optional override fields
// inline
func Pointer[T any](v T) *T {
	return &v
}
