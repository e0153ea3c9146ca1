package catalog

import "dashmart/models"

// Categories shown on the storefront, in display order.
var Categories = []models.Category{
	{ID: "fruits", Name: "Fresh Fruits", Icon: "🍎"},
	{ID: "vegetables", Name: "Vegetables", Icon: "🥦"},
	{ID: "dairy", Name: "Dairy & Eggs", Icon: "🥛"},
	{ID: "snacks", Name: "Snacks", Icon: "🍪"},
	{ID: "beverages", Name: "Beverages", Icon: "🥤"},
	{ID: "meat", Name: "Meat & Fish", Icon: "🥩"},
	{ID: "cleaning", Name: "Cleaning", Icon: "🧼"},
}

// SeedProducts is the fixed catalog loaded at process start.
var SeedProducts = []models.Product{
	{ID: "1", Name: "Alphonso Mangoes", Price: 12.99, Category: "fruits", Image: "https://picsum.photos/seed/mango/400/400", Unit: "1kg", Stock: 45, Description: "Sweetest seasonal mangoes."},
	{ID: "2", Name: "Organic Broccoli", Price: 2.49, Category: "vegetables", Image: "https://picsum.photos/seed/broccoli/400/400", Unit: "500g", Stock: 120, Description: "Freshly harvested organic broccoli."},
	{ID: "3", Name: "Whole Milk", Price: 4.99, Category: "dairy", Image: "https://picsum.photos/seed/milk/400/400", Unit: "1L", Stock: 80, Description: "Farm fresh whole milk."},
	{ID: "4", Name: "Potato Chips", Price: 1.99, Category: "snacks", Image: "https://picsum.photos/seed/chips/400/400", Unit: "150g", Stock: 200, Description: "Classic salted potato chips."},
	{ID: "5", Name: "Greek Yogurt", Price: 3.50, Category: "dairy", Image: "https://picsum.photos/seed/yogurt/400/400", Unit: "500g", Stock: 35, Description: "Thick and creamy authentic Greek yogurt."},
	{ID: "6", Name: "Avocado Toast Box", Price: 8.99, Category: "vegetables", Image: "https://picsum.photos/seed/avocado/400/400", Unit: "Box", Stock: 15, Description: "Everything you need for perfect avocado toast."},
	{ID: "7", Name: "Sparkling Water", Price: 5.99, Category: "beverages", Image: "https://picsum.photos/seed/water/400/400", Unit: "Pack of 6", Stock: 60, Description: "Zero calorie crisp sparkling water."},
	{ID: "8", Name: "Chicken Breast", Price: 9.99, Category: "meat", Image: "https://picsum.photos/seed/chicken/400/400", Unit: "500g", Stock: 25, Description: "Antibiotic-free lean chicken breast."},
}
