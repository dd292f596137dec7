package commands

import (
	"fmt"

	"graze/internal/resource"
	"graze/internal/store/sqlstore"

	"github.com/spf13/cobra"
)

var sampleMarkets = []map[string]any{
	{
		"market_name":        "Downtown Farmers Market",
		"hero_image":         "http://images.com/downtown.png",
		"schedule":           "Saturday 8am - 1pm",
		"market_location":    "123 4th Street in City Town",
		"summary":            "The original weekend market on the square.",
		"market_description": "Local growers, bakers and makers every Saturday, rain or shine.",
	},
	{
		"market_name":        "Riverside Market",
		"hero_image":         "http://images.com/riverside.png",
		"schedule":           "Wednesday 3pm - 7pm",
		"market_location":    "456 7th Street in City Town",
		"summary":            "Midweek produce along the river walk.",
		"market_description": "A smaller midweek market focused on produce and cut flowers.",
	},
}

var sampleVendors = []map[string]any{
	{"vendor_name": "Green Acres Farm", "vendor_description": "Certified organic vegetables", "market_stall": "A1", "market_id": int64(1)},
	{"vendor_name": "Hilltop Dairy", "vendor_description": "Raw milk cheeses and butter", "market_stall": "B3", "market_id": int64(1)},
	{"vendor_name": "River Bend Orchard", "vendor_description": "Apples, stone fruit and cider", "market_stall": "C2", "market_id": int64(2)},
}

var sampleProducts = []map[string]any{
	{"product_name": "Heirloom Tomatoes", "product_description": "Mixed varieties, picked ripe", "product_category": "Produce"},
	{"product_name": "Sharp Cheddar", "product_category": "Dairy"},
	{"product_name": "Honeycrisp Apples", "product_description": "First of the season", "product_category": "Fruit"},
}

var samplePrices = []map[string]any{
	{"product_id": int64(1), "vendor_id": int64(1), "price": "4.50", "units": "lb"},
	{"product_id": int64(2), "vendor_id": int64(2), "price": "8.00", "units": "half pound"},
	{"product_id": int64(3), "vendor_id": int64(3), "price": "3.25", "units": "lb"},
}

var sampleFolders = []map[string]any{
	{"folder_name": "Shopping Lists"},
	{"folder_name": "Recipes"},
}

var sampleNotes = []map[string]any{
	{"folder_id": int64(1), "note_title": "Saturday run", "content": "Tomatoes, cheddar, a dozen eggs if Hilltop has them."},
	{"folder_id": int64(2), "note_title": "Apple butter", "content": "Ask River Bend which variety holds up best for a long simmer."},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		s, err := sqlstore.New(cfg.DBDriver, cfg.DBConn)
		if err != nil {
			return err
		}
		defer s.Close()

		batches := []struct {
			d    resource.Descriptor
			rows []map[string]any
		}{
			{resource.Markets, sampleMarkets},
			{resource.Vendors, sampleVendors},
			{resource.Products, sampleProducts},
			{resource.PriceList, samplePrices},
			{resource.Folders, sampleFolders},
			{resource.Notes, sampleNotes},
		}

		for _, batch := range batches {
			for _, row := range batch.rows {
				if _, err := s.Insert(batch.d, row); err != nil {
					return fmt.Errorf("seeding %s: %w", batch.d.Table, err)
				}
			}
			fmt.Printf("Seeded %d rows into %s\n", len(batch.rows), batch.d.Table)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
