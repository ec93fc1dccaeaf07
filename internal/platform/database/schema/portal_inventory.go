package schema

// PortalInventoryItemTable represents the 'portal.inventoryitem' table
type PortalInventoryItemTable struct {
	Table         string
	ID            string
	CatalogItemID string
	OwnerID       string
	EcosystemID   string
	Location      string
	Quantity      string
	UpdatedAt     string
}

var PortalInventoryItem = PortalInventoryItemTable{
	Table:         "portal.inventoryitem",
	ID:            "id",
	CatalogItemID: "catalogitemid",
	OwnerID:       "ownerid",
	EcosystemID:   "ecosystemid",
	Location:      "location",
	Quantity:      "quantity",
	UpdatedAt:     "updatedat",
}

// PortalInventoryAdjustmentTable represents the 'portal.inventoryadjustment' table
type PortalInventoryAdjustmentTable struct {
	Table       string
	ID          string
	InventoryID string
	Delta       string
	Reason      string
	ActorID     string
	CreatedAt   string
}

var PortalInventoryAdjustment = PortalInventoryAdjustmentTable{
	Table:       "portal.inventoryadjustment",
	ID:          "id",
	InventoryID: "inventoryid",
	Delta:       "delta",
	Reason:      "reason",
	ActorID:     "actorid",
	CreatedAt:   "createdat",
}
