package client

import "strings"

// FilterProducts narrows an already fetched list by a case-insensitive name
// substring and an exact category id. Empty criteria match everything.
func FilterProducts(products []Product, search, categoryID string) []Product {
	search = strings.ToLower(strings.TrimSpace(search))

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}
