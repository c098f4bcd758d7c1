package models

// VehicleRecord is the structured result of scraping one manufacturer page.
// Every field is always present in the JSON output; "not found" is an empty
// string or empty slice, never a missing key or null. Only Brand and Model
// use sentinels ("Unknown" / "Unknown Model").
type VehicleRecord struct {
	Brand        string     `json:"brand"`
	Model        string     `json:"model"`
	URL          string     `json:"url"`
	Engine       EngineSpec `json:"engine"`
	Dimensions   Dimensions `json:"dimensions"`
	Variants     []Variant  `json:"variants"`
	Images       []string   `json:"images"`
	FuelType     string     `json:"fuelType"`
	Transmission string     `json:"transmission"`
	BodyType     string     `json:"bodyType"`
}

// Variant is a named trim level with its price and nearby feature sentences.
// Names are unique within a record. Price is "$<digits-with-commas>" or empty.
type Variant struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"` // at most 5
}

// EngineSpec holds engine attributes as display strings, empty when unmatched.
// Type and Capacity are populated from the same text match.
type EngineSpec struct {
	Type       string `json:"type"`
	Capacity   string `json:"capacity"`
	Horsepower string `json:"horsepower"`
	Torque     string `json:"torque"`
	Mileage    string `json:"mileage"`
}

// Dimensions holds exterior measurements, each "<number> inches" or empty.
type Dimensions struct {
	Length          string `json:"length"`
	Width           string `json:"width"`
	Height          string `json:"height"`
	Wheelbase       string `json:"wheelbase"`
	GroundClearance string `json:"groundClearance"`
}
