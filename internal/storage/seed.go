package storage

import "github.com/shopspring/decimal"

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// sampleStock is the demo data set used when the stock table is empty.
func sampleStock() []StockItem {
	return []StockItem{
		// TVs
		{ItemID: "TV-1234", Name: "Smart TV 42 inch", Quantity: 15, Category: "Electronics", Price: price("499.99"), Supplier: "Samsung Corp"},
		{ItemID: "TV-5678", Name: "4K Ultra HD TV 55 inch", Quantity: 8, Category: "Electronics", Price: price("799.99"), Supplier: "LG Electronics"},
		{ItemID: "TV-9999", Name: "OLED TV 65 inch", Quantity: 3, Category: "Electronics", Price: price("1299.99"), Supplier: "Sony Corp"},

		// Phones
		{ItemID: "PH-5678", Name: "Smartphone Galaxy S24", Quantity: 42, Category: "Electronics", Price: price("899.99"), Supplier: "Samsung Corp"},
		{ItemID: "PH-1111", Name: "iPhone 15 Pro", Quantity: 25, Category: "Electronics", Price: price("999.99"), Supplier: "Apple Inc"},
		{ItemID: "PH-2222", Name: "Budget Android Phone", Quantity: 60, Category: "Electronics", Price: price("199.99"), Supplier: "Xiaomi Corp"},

		// Laptops
		{ItemID: "LP-2468", Name: "Laptop Pro 15 inch", Quantity: 8, Category: "Computers", Price: price("1299.99"), Supplier: "Dell Technologies"},
		{ItemID: "LP-3333", Name: "Gaming Laptop RTX 4070", Quantity: 5, Category: "Computers", Price: price("1599.99"), Supplier: "MSI Gaming"},
		{ItemID: "LP-4444", Name: "Ultrabook 13 inch", Quantity: 12, Category: "Computers", Price: price("899.99"), Supplier: "HP Inc"},

		// Tablets
		{ItemID: "TB-1111", Name: "iPad Air 10.9 inch", Quantity: 18, Category: "Tablets", Price: price("599.99"), Supplier: "Apple Inc"},
		{ItemID: "TB-2222", Name: "Android Tablet 11 inch", Quantity: 22, Category: "Tablets", Price: price("349.99"), Supplier: "Samsung Corp"},

		// Storage
		{ItemID: "HD-9999", Name: "Hard Drive 1TB", Quantity: 120, Category: "Storage", Price: price("59.99"), Supplier: "Western Digital"},
		{ItemID: "HD-5555", Name: "SSD 500GB", Quantity: 35, Category: "Storage", Price: price("79.99"), Supplier: "Samsung Corp"},
		{ItemID: "HD-6666", Name: "External HDD 2TB", Quantity: 0, Category: "Storage", Price: price("99.99"), Supplier: "Seagate Tech"},
		{ItemID: "HD-7777", Name: "USB Flash Drive 64GB", Quantity: 150, Category: "Storage", Price: price("19.99"), Supplier: "SanDisk Corp"},

		// Accessories
		{ItemID: "KB-1111", Name: "Wireless Keyboard", Quantity: 2, Category: "Accessories", Price: price("49.99"), Supplier: "Logitech"},
		{ItemID: "MS-2222", Name: "Gaming Mouse", Quantity: 1, Category: "Accessories", Price: price("69.99"), Supplier: "Razer Inc"},
	}
}
