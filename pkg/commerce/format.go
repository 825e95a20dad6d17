package commerce

import (
	"fmt"
	"strings"
)

// PartnerDisplay is a partner rendered for the chat surface.
type PartnerDisplay struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Website       string   `json:"website"`
	Location      string   `json:"location"`
	PriceRange    string   `json:"priceRange"`
	ProductTypes  []string `json:"productTypes"`
	GoogleMapsURL string   `json:"googleMapsUrl"`
	DisplayText   string   `json:"displayText"`
}

// FormatPartnersForDisplay renders partners as markdown cards with a
// Google Maps link built from their coordinates.
func FormatPartnersForDisplay(partners []Partner) []PartnerDisplay {
	displays := make([]PartnerDisplay, len(partners))
	for i, p := range partners {
		mapsURL := fmt.Sprintf("https://www.google.com/maps?q=%g,%g", p.Latitude, p.Longitude)
		displays[i] = PartnerDisplay{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Website:       p.Website,
			Location:      fmt.Sprintf("%s, %s", p.City, p.Country),
			PriceRange:    fmt.Sprintf("%d€ - %d€", p.PriceRangeMin, p.PriceRangeMax),
			ProductTypes:  p.ProductTypes,
			GoogleMapsURL: mapsURL,
			DisplayText: fmt.Sprintf("🏪 **%s**\n📍 %s, %s\n💰 %d€ - %d€\n📝 %s\n🌐 [Visiter le site](%s)\n🗺️ [Voir sur Google Maps](%s)",
				p.Name, p.City, p.Country, p.PriceRangeMin, p.PriceRangeMax, p.Description, p.Website, mapsURL),
		}
	}
	return displays
}

// BuildResultsReply assembles the bot message for a successful search.
func BuildResultsReply(c Criteria, displays []PartnerDisplay) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎉 J'ai trouvé %d partenaire(s) pour votre recherche de %s :\n", len(displays), c.ProductType))
	for _, d := range displays {
		sb.WriteString("\n" + d.DisplayText + "\n")
	}
	return sb.String()
}

// BuildNoResultsReply assembles the bot message for an empty search,
// listing the broadening suggestions.
func BuildNoResultsReply(c Criteria, suggestions []Suggestion) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("😔 Aucun partenaire trouvé pour votre recherche de %s.\n", c.ProductType))
	if len(suggestions) > 0 {
		sb.WriteString("\nVoici quelques pistes pour élargir votre recherche :\n")
		for _, s := range suggestions {
			sb.WriteString("\n" + s.Text)
		}
	}
	return sb.String()
}
