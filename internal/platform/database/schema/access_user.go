package schema

// AccessUserTable represents the 'access.account' table
type AccessUserTable struct {
	Table       string
	ID          string
	DisplayName string
	Email       string
	Role        string
	Status      string
	EcosystemID string
	Metadata    string
	CreatedAt   string
	UpdatedAt   string
}

// AccessUser is the schema definition for access.account
var AccessUser = AccessUserTable{
	Table:       "access.account",
	ID:          "id",
	DisplayName: "displayname",
	Email:       "email",
	Role:        "role",
	Status:      "status",
	EcosystemID: "ecosystemid",
	Metadata:    "metadata",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t AccessUserTable) Columns() []string {
	return []string{
		t.ID, t.DisplayName, t.Email, t.Role, t.Status,
		t.EcosystemID, t.Metadata, t.CreatedAt, t.UpdatedAt,
	}
}
