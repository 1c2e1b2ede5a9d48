package catalog

import "strings"

// Şehir filtresi uygulanmayan sorgular
var noFilterCities = map[string]struct{}{
	"resto":                   {},
	"otros":                   {},
	"otra ciudad":             {},
	"otra ciudad de colombia": {},
	"resto de colombia":       {},
	"colombia":                {},
}

var internationalCities = map[string]struct{}{
	"intl":          {},
	"internacional": {},
	"otros paises":  {},
	"otro pais":     {},
	"otros países":  {},
}

const (
	CityBogota  = "bogota"
	CityGuajira = "guajira"
)

var guajiraAliases = []string{"guajira", "la guajira", "riohacha", "rio hacha"}

// CityMatches reports whether a row's city satisfies the city query.
// Both arguments must already be normalized.
func CityMatches(rowCity, queryCity string) bool {
	if queryCity == "" {
		return true
	}
	if _, ok := noFilterCities[queryCity]; ok {
		return true
	}
	if _, ok := internationalCities[queryCity]; ok {
		return true
	}

	switch queryCity {
	case CityBogota:
		return strings.Contains(rowCity, CityBogota)
	case CityGuajira:
		for _, alias := range guajiraAliases {
			if strings.Contains(rowCity, alias) {
				return true
			}
		}
		return false
	}

	return strings.Contains(rowCity, queryCity)
}

// isLocalCity: boş sonuç yerine tüm kataloğun döndüğü şehirler
func isLocalCity(queryCity string) bool {
	return queryCity == CityBogota || queryCity == CityGuajira
}
