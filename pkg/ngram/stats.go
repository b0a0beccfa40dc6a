package ngram

// Stats holds aggregate size statistics for a single Model.
type Stats struct {
	// VocabSize is the number of distinct tokens observed in training.
	VocabSize int `json:"vocab_size"`
	// Contexts is the number of distinct context windows in the count table.
	Contexts int `json:"contexts"`
	// Transitions is the number of distinct context -> next links.
	Transitions int `json:"transitions"`
	// TotalCount is the sum of all counts; the number of trained n-grams.
	TotalCount int `json:"total_count"`
}

// Stats returns a snapshot of the model's current size.
func (m *Model) Stats() Stats {
	s := Stats{
		VocabSize: len(m.tokens),
		Contexts:  len(m.table),
	}
	for _, fs := range m.table {
		s.Transitions += len(fs.ids)
		s.TotalCount += fs.total
	}
	return s
}
