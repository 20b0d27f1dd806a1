package models

// Coordinates is a lat/lon pair for placing a dream on the map view
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// countryCoordinates maps ISO-ish country names (as typed in dream forms)
// to approximate coordinates. Lookups are best-effort; a miss is silent.
var countryCoordinates = map[string]Coordinates{
	"Brasil":         {-14.235, -51.925},
	"Argentina":      {-38.416, -63.617},
	"Chile":          {-35.675, -71.543},
	"Uruguai":        {-32.523, -55.766},
	"Portugal":       {39.400, -8.224},
	"Espanha":        {40.464, -3.749},
	"França":         {46.228, 2.214},
	"Itália":         {41.872, 12.567},
	"Alemanha":       {51.166, 10.452},
	"Reino Unido":    {55.378, -3.436},
	"Estados Unidos": {37.090, -95.713},
	"Canadá":         {56.130, -106.347},
	"México":         {23.635, -102.553},
	"Japão":          {36.205, 138.253},
	"Austrália":      {-25.274, 133.775},
}

// LookupCountry returns coordinates for a country name.
// ok is false when the country is not in the table.
func LookupCountry(name string) (Coordinates, bool) {
	c, ok := countryCoordinates[name]
	return c, ok
}
