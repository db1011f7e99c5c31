package pagination

// Metadata describes the page returned with a collection.
type Metadata struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

// NewMetadata computes the page count for total items.
func NewMetadata(p Params, total int64) Metadata {
	return Metadata{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}

// TotalPages is ceil(total/limit), and at least 1.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
