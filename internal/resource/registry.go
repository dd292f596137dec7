package resource

// Markets describes the markets table.
var Markets = Descriptor{
	Name:  "Market",
	Path:  "markets",
	Table: "markets",
	Columns: []Column{
		{"id", Int},
		{"market_name", Text},
		{"hero_image", Text},
		{"schedule", Text},
		{"market_location", Text},
		{"summary", Text},
		{"market_description", Text},
	},
	Required:    []string{"market_name", "hero_image", "schedule", "market_location", "summary", "market_description"},
	Updatable:   []string{"market_name", "hero_image", "schedule", "market_location", "summary", "market_description"},
	RequireAuth: true,
}

// Vendors describes the vendors table. market_id references markets.
var Vendors = Descriptor{
	Name:  "Vendor",
	Path:  "vendors",
	Table: "vendors",
	Columns: []Column{
		{"id", Int},
		{"vendor_name", Text},
		{"vendor_description", Text},
		{"market_stall", Text},
		{"market_id", Int},
	},
	Required:    []string{"vendor_name", "vendor_description", "market_stall", "market_id"},
	Updatable:   []string{"vendor_name", "vendor_description", "market_stall", "market_id"},
	RequireAuth: true,
}

// Products describes the products table. product_description is optional.
var Products = Descriptor{
	Name:  "Product",
	Path:  "products",
	Table: "products",
	Columns: []Column{
		{"id", Int},
		{"product_name", Text},
		{"product_description", Text},
		{"product_category", Text},
	},
	Required:    []string{"product_name", "product_category"},
	Optional:    []string{"product_description"},
	Updatable:   []string{"product_description", "product_name", "product_category"},
	RequireAuth: true,
}

// PriceList describes the price_list table. price and units are stored as
// text and sanitized like any other text column.
var PriceList = Descriptor{
	Name:  "Price",
	Path:  "price_list",
	Table: "price_list",
	Columns: []Column{
		{"id", Int},
		{"product_id", Int},
		{"vendor_id", Int},
		{"price", Text},
		{"units", Text},
	},
	Required:    []string{"product_id", "vendor_id", "price", "units"},
	Updatable:   []string{"price", "units", "product_id", "vendor_id"},
	RequireAuth: true,
}

// Folders describes the folders table.
var Folders = Descriptor{
	Name:  "Folder",
	Path:  "folders",
	Table: "folders",
	Columns: []Column{
		{"id", Int},
		{"folder_name", Text},
	},
	Required:  []string{"folder_name"},
	Updatable: []string{"folder_name"},
}

// Notes describes the notes table. folder_id references folders and
// date_modified is assigned by the store on insert.
var Notes = Descriptor{
	Name:  "Note",
	Path:  "notes",
	Table: "notes",
	Columns: []Column{
		{"id", Int},
		{"folder_id", Int},
		{"note_title", Text},
		{"content", Text},
		{"date_modified", Time},
	},
	Required:  []string{"content", "folder_id", "note_title"},
	Updatable: []string{"content", "note_title", "folder_id"},
	Timestamp: "date_modified",
}

// Registry returns every resource served by the API, in registration order.
func Registry() []Descriptor {
	return []Descriptor{Markets, Vendors, Products, PriceList, Folders, Notes}
}
