package indexer

// AddDocumentsReport tallies the outcome of a single AddDocuments
// batch. Added + SkippedDuplicates always equals Total.
type AddDocumentsReport struct {
	Total             int `json:"total"`
	Added             int `json:"added"`
	SkippedDuplicates int `json:"skipped_duplicates"`
}

// IsAllAdded reports whether every document in the batch was indexed
// (no duplicates were skipped).
func (r AddDocumentsReport) IsAllAdded() bool {
	return r.SkippedDuplicates == 0
}

func (r *AddDocumentsReport) recordAdded()   { r.Added++ }
func (r *AddDocumentsReport) recordSkipped() { r.SkippedDuplicates++ }
func (r *AddDocumentsReport) recordTotal()   { r.Total++ }
