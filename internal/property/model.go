// Package property provides the listing domain model and data access.
package property

import "time"

// Status represents where a listing is in its lifecycle. Transitions to
// sold/rented happen only through a completed transaction.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
	StatusOffMarket Status = "off_market"
)

// ValidStatus returns true if s is a known listing status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusAvailable, StatusPending, StatusSold, StatusRented, StatusOffMarket:
		return true
	}
	return false
}

// ListingType says whether a property is offered for sale or for rent.
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

// ValidListingType returns true if s is a known listing type.
func ValidListingType(s string) bool {
	switch ListingType(s) {
	case ListingSale, ListingRent:
		return true
	}
	return false
}

// Location is the address of a property. Each location belongs to exactly
// one property; they are created and updated together.
type Location struct {
	ID            int64  `json:"location_id"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	ZipCode       string `json:"zip_code"`
	Country       string `json:"country"`
}

// Property holds the columns of a Properties row. Price is in cents.
type Property struct {
	ID             int64       `json:"property_id"`
	LocationID     int64       `json:"location_id"`
	PropertyTypeID int64       `json:"property_type_id"`
	AgentID        int64       `json:"agent_id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Price          int64       `json:"price"`
	ListingType    ListingType `json:"listing_type"`
	Bedrooms       int         `json:"bedrooms"`
	Bathrooms      float64     `json:"bathrooms"`
	SquareFeet     *int64      `json:"square_feet,omitempty"`
	LotSize        *float64    `json:"lot_size,omitempty"`
	YearBuilt      *int64      `json:"year_built,omitempty"`
	Status         Status      `json:"status"`
	ListedDate     time.Time   `json:"listed_date"`
	SoldDate       *time.Time  `json:"sold_date,omitempty"`
	ParkingSpaces  int         `json:"parking_spaces"`
	HasGarage      bool        `json:"has_garage"`
	HasPool        bool        `json:"has_pool"`
	HasGarden      bool        `json:"has_garden"`
}

// View is one row of the browse listing: the property joined with its
// location, type name, and the listing agent's display fields.
type View struct {
	Property
	Location       Location `json:"location"`
	TypeName       string   `json:"type_name"`
	AgencyName     string   `json:"agency_name"`
	AgentRating    float64  `json:"agent_rating"`
	AgentFirstName string   `json:"agent_first_name"`
	AgentLastName  string   `json:"agent_last_name"`
	AgentEmail     string   `json:"agent_email"`
	AgentPhone     string   `json:"agent_phone"`
}

// Detail is the single-property view with the extra agent and type fields
// the detail page shows.
type Detail struct {
	View
	TypeDescription string `json:"type_description"`
	AgentUserID     int64  `json:"agent_user_id"`
	LicenseNumber   string `json:"license_number"`
	YearsExperience int    `json:"years_experience"`
	TotalSales      int    `json:"total_sales"`
}

// Type is a row of the PropertyTypes catalog.
type Type struct {
	ID          int64  `json:"property_type_id"`
	Name        string `json:"type_name"`
	Description string `json:"description"`
}

// Image is a row of the PropertyImages table.
type Image struct {
	ID           int64  `json:"image_id"`
	PropertyID   int64  `json:"property_id"`
	URL          string `json:"image_url"`
	Caption      string `json:"caption"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// PrimaryImage picks the image to lead with: the first one flagged primary,
// else the first by display order. Returns nil for an empty slice.
func PrimaryImage(images []Image) *Image {
	for i := range images {
		if images[i].IsPrimary {
			return &images[i]
		}
	}
	if len(images) > 0 {
		return &images[0]
	}
	return nil
}

// Filters is the sparse set of optional listing predicates. All supplied
// predicates are ANDed.
type Filters struct {
	Status         Status      // equality
	ListingType    ListingType // equality
	MinPrice       *int64      // inclusive, cents
	MaxPrice       *int64      // inclusive, cents
	City           string      // case-insensitive contains
	MinBedrooms    *int
	PropertyTypeID *int64
	AgentID        *int64
	Search         string // contains, over title OR description OR city
}
