package listing

import (
	"strings"

	domainListing "hamrah-bazaar/internal/domain/listing"
	"hamrah-bazaar/internal/reference"
)

// validateDraft checks the field constraints a listing must satisfy before
// it is stored: non-empty title and description, non-negative price, and
// category/city/currency membership in the fixed reference sets. An
// unrecognized enum value is a validation error, never silently accepted.
func validateDraft(catalog *reference.Catalog, l *domainListing.Listing) error {
	if strings.TrimSpace(l.Title) == "" {
		return domainListing.ErrEmptyTitle
	}
	if strings.TrimSpace(l.Description) == "" {
		return domainListing.ErrEmptyDescription
	}
	if l.Price < 0 {
		return domainListing.ErrNegativePrice
	}
	if !catalog.IsCurrency(l.Currency) {
		return domainListing.ErrInvalidCurrency
	}
	if !catalog.IsCategory(l.Category) {
		return domainListing.ErrInvalidCategory
	}
	if !catalog.IsCity(l.City) {
		return domainListing.ErrInvalidCity
	}
	return nil
}
