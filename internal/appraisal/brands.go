// internal/appraisal/brands.go
package appraisal

import "math"

// Static catalog data. Loaded once at package init and read-only afterwards.

var LuxuryBrands = []string{
	"Alexander McQueen",
	"Balenciaga",
	"Bottega Veneta",
	"Burberry",
	"Celine",
	"Chanel",
	"Dior",
	"Dolce & Gabbana",
	"Fendi",
	"Givenchy",
	"Gucci",
	"Hermès",
	"Loewe",
	"Louis Vuitton",
	"Off-White",
	"Other",
	"Prada",
	"Saint Laurent",
	"Tom Ford",
	"Valentino",
	"Versace",
}

var ItemCategories = []string{
	"Accessories",
	"Belts",
	"Clothing",
	"Handbags",
	"Jewelry",
	"Scarves",
	"Shoes",
	"Sunglasses",
	"Wallets",
	"Watches",
}

type BrandPriceRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Typical resale price bands per brand, used when no market data is available.
var brandPriceRanges = map[string]BrandPriceRange{
	"Louis Vuitton": {Min: 800, Max: 3500},
	"Chanel":        {Min: 2000, Max: 6000},
	"Hermès":        {Min: 5000, Max: 15000},
	"Gucci":         {Min: 600, Max: 2500},
	"Prada":         {Min: 500, Max: 2000},
	"Dior":          {Min: 1500, Max: 4000},
	"Fendi":         {Min: 800, Max: 3000},
	"Burberry":      {Min: 400, Max: 1800},
	"Saint Laurent": {Min: 900, Max: 3500},
	"Balenciaga":    {Min: 700, Max: 2500},
}

var fallbackPriceRange = BrandPriceRange{Min: 300, Max: 1500}

// BrandInfo describes resale characteristics of a tracked brand.
type BrandInfo struct {
	Name              string   `json:"name"`
	AverageResaleRate float64  `json:"average_resale_rate"`
	PopularItems      []string `json:"popular_items"`
}

var BrandData = map[string]BrandInfo{
	"Hermès": {
		Name:              "Hermès",
		AverageResaleRate: 0.85,
		PopularItems:      []string{"Birkin", "Kelly", "Constance"},
	},
	"Chanel": {
		Name:              "Chanel",
		AverageResaleRate: 0.75,
		PopularItems:      []string{"Classic Flap", "2.55", "Boy Bag"},
	},
	"Louis Vuitton": {
		Name:              "Louis Vuitton",
		AverageResaleRate: 0.65,
		PopularItems:      []string{"Neverfull", "Speedy", "Alma"},
	},
	"Gucci": {
		Name:              "Gucci",
		AverageResaleRate: 0.60,
		PopularItems:      []string{"Marmont", "Dionysus", "Jackie"},
	},
}

// PriceRangeForBrand returns the brand's resale band, or the generic band for
// unrecognized brands.
func PriceRangeForBrand(brand string) BrandPriceRange {
	if r, ok := brandPriceRanges[brand]; ok {
		return r
	}
	return fallbackPriceRange
}

// BaseBrandPrice is the midpoint of the brand's resale band. Category is
// accepted for future refinement but does not influence the band today.
func BaseBrandPrice(brand, category string) int {
	r := PriceRangeForBrand(brand)
	return int(math.Round(float64(r.Min+r.Max) / 2))
}
