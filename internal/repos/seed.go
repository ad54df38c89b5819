package repos

import (
	"strconv"

	"gearrent/internal/domain"
)

const seedTime = "2024-01-01T00:00:00Z"

// SeedCategories is the bundled category list, also served when the
// category table cannot be read or is empty.
func SeedCategories() []domain.Category {
	names := []string{
		"Paketan Sewa", "Tenda", "Carrier", "Tas", "Pakaian", "Alat Jalan",
		"Alat Pribadi", "Alat Masak", "Penerangan", "Survival", "Alat Event", "Koper",
	}
	out := make([]domain.Category, 0, len(names))
	for i, n := range names {
		out = append(out, domain.Category{ID: strconv.Itoa(i + 1), Name: n})
	}
	return out
}

// SeedProducts is the bundled demonstration catalog, also served when the
// product store is unreachable.
func SeedProducts() []domain.Product {
	tiers := func(p2, p3, p4, p5, p6, p7 int64) domain.PriceTiers {
		return domain.PriceTiers{Days2: p2, Days3: p3, Days4: p4, Days5: p5, Days6: p6, Days7: p7}
	}
	return []domain.Product{
		{
			ID: "1", Name: "Tenda Great Outdoor Java 4 Pro", Category: "Tenda",
			Prices:      tiers(60000, 85000, 110000, 135000, 160000, 180000),
			Image:       "https://picsum.photos/400/300?random=1",
			Description: "Kapasitas 4-5 orang, double layer, waterproof, frame fiber.",
			Stock:       domain.FlatStock(10),
		},
		{
			ID: "2", Name: "Tenda Eiger Shira 2P", Category: "Tenda",
			Prices:      tiers(50000, 70000, 90000, 110000, 130000, 150000),
			Image:       "https://picsum.photos/400/300?random=2",
			Description: "Kapasitas 2 orang, ringan, cocok untuk ultralight hiking.",
			Stock:       domain.FlatStock(5),
		},
		{
			ID: "3", Name: "Carrier Osprey Kestrel 48L", Category: "Carrier",
			Prices:      tiers(50000, 70000, 90000, 110000, 130000, 150000),
			Image:       "https://picsum.photos/400/300?random=3",
			Description: "Backsystem nyaman, include raincover, cocok untuk 2-3 hari.",
			Stock:       domain.FlatStock(8),
		},
		{
			ID: "4", Name: "Carrier Consina Tarebbi 60L", Category: "Carrier",
			Prices:      tiers(40000, 55000, 70000, 85000, 100000, 115000),
			Image:       "https://picsum.photos/400/300?random=4",
			Description: "Kapasitas besar, kuat, favorit mahasiswa.",
			Stock:       domain.FlatStock(15),
		},
		{
			ID: "5", Name: "Sleeping Bag Polar Bulu", Category: "Alat Pribadi",
			Prices:      tiers(15000, 20000, 25000, 30000, 35000, 40000),
			Image:       "https://picsum.photos/400/300?random=5",
			Description: "Hangat, inner polar tebal, model mummy.",
			Stock:       domain.FlatStock(30),
		},
		{
			ID: "6", Name: "Matras Spon Karet", Category: "Alat Jalan",
			Prices:      tiers(5000, 8000, 10000, 13000, 15000, 17000),
			Image:       "https://picsum.photos/400/300?random=6",
			Description: "Standar pendakian, anti air, wajib punya.",
			Stock:       domain.FlatStock(50),
		},
		{
			ID: "7", Name: "Kompor Portable Kotak", Category: "Alat Masak",
			Prices:      tiers(15000, 20000, 25000, 30000, 35000, 40000),
			Image:       "https://picsum.photos/400/300?random=7",
			Description: "Praktis, menggunakan gas hicook, api stabil.",
			Stock:       domain.FlatStock(12),
		},
		{
			ID: "8", Name: "Cooking Set / Nesting DS-308", Category: "Alat Masak",
			Prices:      tiers(15000, 20000, 25000, 30000, 35000, 40000),
			Image:       "https://picsum.photos/400/300?random=8",
			Description: "Lengkap panci besar, kecil, wajan, untuk 3-4 orang.",
			Stock:       domain.FlatStock(12),
		},
		{
			ID: "9", Name: "Headlamp Led Lenser", Category: "Penerangan",
			Prices:      tiers(20000, 25000, 30000, 35000, 40000, 45000),
			Image:       "https://picsum.photos/400/300?random=9",
			Description: "Sangat terang, baterai awet, tahan air hujan ringan.",
			Stock:       domain.FlatStock(10),
		},
		{
			ID: "10", Name: "Trekking Pole", Category: "Alat Jalan",
			Prices:      tiers(10000, 15000, 20000, 25000, 30000, 35000),
			Image:       "https://picsum.photos/400/300?random=10",
			Description: "Membantu keseimbangan, antishock system.",
			Stock:       domain.FlatStock(20),
		},
		{
			ID: "11", Name: "Sepatu Gunung Eiger Pollock", Category: "Pakaian",
			Prices:      tiers(35000, 50000, 65000, 80000, 95000, 110000),
			Image:       "https://picsum.photos/400/300?random=11",
			Description: "Sepatu hiking mid-cut, sol vibram, tahan air.",
			Stock:       domain.SizeStock{"40": 2, "41": 3, "42": 3, "43": 2},
		},
		{
			ID: "12", Name: "Jaket Gunung Consina Alpine", Category: "Pakaian",
			Prices:      tiers(25000, 35000, 45000, 55000, 65000, 75000),
			Image:       "https://picsum.photos/400/300?random=12",
			Description: "Jaket windproof dengan inner fleece.",
			Stock: domain.VariantStock{
				{Color: "Merah", Size: "M", Stock: 2},
				{Color: "Merah", Size: "L", Stock: 3},
				{Color: "Hitam", Size: "L", Stock: 2},
				{Color: "Hitam", Size: "XL", Stock: 1},
			},
			ColorImages: map[string]string{
				"Merah": "https://picsum.photos/400/300?random=121",
				"Hitam": "https://picsum.photos/400/300?random=122",
			},
		},
		{
			ID: "13", Name: "Paket Camping Berdua", Category: "Paketan Sewa",
			Prices:      tiers(75000, 105000, 135000, 165000, 195000, 220000),
			Image:       "https://picsum.photos/400/300?random=13",
			Description: "Tenda 2P, kompor, nesting dan 2 matras.",
			Stock:       domain.FlatStock(5),
			PackageItems: []domain.PackageItem{
				{ProductID: "2", Quantity: 1},
				{ProductID: "7", Quantity: 1},
				{ProductID: "8", Quantity: 1},
				{ProductID: "6", Quantity: 2},
			},
		},
	}
}
