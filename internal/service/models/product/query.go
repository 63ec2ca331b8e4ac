package product

// QueryProductsModel represents filter parameters for querying the catalog.
type QueryProductsModel struct {
	Ids      []int64 `json:"ids,omitempty"`
	Category string  `json:"category,omitempty"`
	Search   string  `json:"search,omitempty"`
}
