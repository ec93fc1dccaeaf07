package schema

// PortalCatalogItemTable represents the 'portal.catalogitem' table
type PortalCatalogItemTable struct {
	Table       string
	ID          string
	SKU         string
	Name        string
	Description string
	PriceCents  string
	IsActive    string
	CreatedAt   string
	UpdatedAt   string
}

var PortalCatalogItem = PortalCatalogItemTable{
	Table:       "portal.catalogitem",
	ID:          "id",
	SKU:         "sku",
	Name:        "name",
	Description: "description",
	PriceCents:  "pricecents",
	IsActive:    "isactive",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
