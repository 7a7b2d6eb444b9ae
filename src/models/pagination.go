package models

// Pagination selects a window of a listing. A nil Limit returns every row
// after Offset.
type Pagination struct {
	Limit  *int
	Offset int
}
