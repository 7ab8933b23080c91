package domain

// Season values accepted for a tire product.
const (
	SeasonWinterStudded    = "winter studded"
	SeasonWinterNonStudded = "winter non-studded"
	SeasonSummer           = "summer"
)

type Product struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	ManufacturersCode int      `json:"manufacturers_code"`
	Season            string   `json:"season"`
	Width             int      `json:"width"`
	LoadIndex         int      `json:"load_index"`
	Profile           int      `json:"profile"`
	SpeedIndex        string   `json:"speed_index"`
	Diameter          int      `json:"diameter"`
	Homologation      string   `json:"homologation"`
	TireModel         string   `json:"tire_model"`
	ProductCode       int      `json:"product_code"`
	Manufacturer      string   `json:"manufacturer"`
	Description       string   `json:"description"`
	Price             int64    `json:"price"`
	Visible           bool     `json:"visible"`
	Images            []string `json:"images,omitempty"`
}

// FilterValue is one distinct value of a catalog filter field. ID is a
// stable content hash of the label so clients can key on it.
type FilterValue struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
