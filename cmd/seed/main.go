package main

import (
	"encoding/json"
	"log"

	"soukbot-be/internal/config"
	"soukbot-be/internal/model"
	"soukbot-be/pkg/database"
	"soukbot-be/pkg/embedding"
	"soukbot-be/pkg/embedding/jina"
	"soukbot-be/pkg/semantic"

	"github.com/fatih/color"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding partners...")
	seedPartners(db)

	color.Cyan("Seeding knowledge base...")
	seedKnowledge(db)

	color.Cyan("Seeding classifier corpus...")
	seedCorpus(db, cfg)

	color.Green("✅ Seeding completed!")
}

type partnerSeed struct {
	Name          string
	Website       string
	City          string
	Country       string
	Latitude      float64
	Longitude     float64
	ProductTypes  []string
	PriceRangeMin int
	PriceRangeMax int
	Description   string
}

func seedPartners(db *gorm.DB) {
	partners := []partnerSeed{
		{
			Name: "Electroplanet", Website: "https://www.electroplanet.ma",
			City: "Meknès", Country: "Maroc",
			Latitude: 33.855043, Longitude: -5.580378,
			ProductTypes:  []string{"gros électroménager", "image et son", "petit électroménager", "multimédia", "confort de la maison", "accessoires", "électroménager", "électronique"},
			PriceRangeMin: 99, PriceRangeMax: 14499,
			Description: "Boutique d'électroménager et électronique grand public, filiale de Marjane à Meknès",
		},
		{
			Name: "Intervalle Déco", Website: "https://intervalledeco.ma",
			City: "Casablanca", Country: "Maroc",
			Latitude: 33.589886, Longitude: -7.603869,
			ProductTypes:  []string{"artisanat", "vaisselle traditionnelle", "verrerie Beldi", "luminaires", "ustensiles en bois", "cuivre martelé", "maison"},
			PriceRangeMin: 85, PriceRangeMax: 169,
			Description: "Artisanat marocain fait main pour la maison et la cuisine",
		},
		{
			Name: "RAZANA", Website: "https://razana.com",
			City: "Casablanca", Country: "Maroc",
			Latitude: 33.5852893, Longitude: -7.6334633,
			ProductTypes:  []string{"robes", "chemises", "pantalons", "ensembles", "manteaux", "vêtements"},
			PriceRangeMin: 199, PriceRangeMax: 728,
			Description: "Marque marocaine de prêt-à-porter féminin avant-gardiste",
		},
		{
			Name: "MYKONOS", Website: "https://mykonos.ma",
			City: "Casablanca", Country: "Maroc",
			Latitude: 33.587000, Longitude: -7.617000,
			ProductTypes:  []string{"Greek Kebabs", "salades", "mezze", "wraps"},
			PriceRangeMin: 24, PriceRangeMax: 249,
			Description: "Restaurant grec à Casablanca avec commande en ligne et livraison",
		},
		{
			Name: "Arwa Shop", Website: "https://arwa-shop.com",
			City: "Casablanca", Country: "Maroc",
			Latitude: 33.582514, Longitude: -7.637822,
			ProductTypes:  []string{"robes", "chemises", "blouses", "accessoires", "vêtements"},
			PriceRangeMin: 169, PriceRangeMax: 319,
			Description: "Boutique de mode féminine en ligne à Casablanca",
		},
		{
			Name: "Mojaa", Website: "https://ma.mojaa.com",
			City: "Casablanca", Country: "Maroc",
			Latitude: 33.583460, Longitude: -7.633600,
			ProductTypes:  []string{"T-shirts", "polos", "chemises", "sweats", "vestes", "pantalons", "chaussures", "accessoires", "vêtements", "sport"},
			PriceRangeMin: 500, PriceRangeMax: 2600,
			Description: "Plateforme multimarque mode & sport (hommes et femmes), livraison gratuite dès 499 MAD",
		},
		{
			Name: "STREETAN®", Website: "https://streetan.co",
			City: "Casablanca", Country: "Maroc",
			Latitude: 33.606990, Longitude: -7.620640,
			ProductTypes:  []string{"hoodies", "t-shirts oversize", "chemises", "vestes", "denim", "accessoires", "vêtements"},
			PriceRangeMin: 299, PriceRangeMax: 1499,
			Description: "Marque marocaine de streetwear minimaliste et durable en éditions limitées",
		},
	}

	for _, p := range partners {
		var existing model.Partner
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			log.Printf("Partner '%s' already exists, skipping...", p.Name)
			continue
		}

		types, _ := json.Marshal(p.ProductTypes)
		row := model.Partner{
			Name:          p.Name,
			Description:   p.Description,
			Website:       p.Website,
			City:          p.City,
			Country:       p.Country,
			PriceRangeMin: p.PriceRangeMin,
			PriceRangeMax: p.PriceRangeMax,
			ProductTypes:  datatypes.JSON(types),
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
		}
		if err := db.Create(&row).Error; err != nil {
			color.Red("Error creating partner '%s': %v", p.Name, err)
		} else {
			log.Printf("Created partner: %s (%s)", p.Name, p.City)
		}
	}
}

type knowledgeSeed struct {
	Title    string
	Content  string
	Category string
	Keywords []string
}

func seedKnowledge(db *gorm.DB) {
	entries := []knowledgeSeed{
		{
			Title: "Contact", Content: "mailto:contact@soukbot.ma", Category: "Contact",
			Keywords: []string{"contact", "coordonnées", "email", "nous contacter"},
		},
		{
			Title: "Téléphone", Content: "+212 5 22 00 00 00", Category: "Contact",
			Keywords: []string{"téléphone", "appeler", "joindre", "numéro"},
		},
		{
			Title: "Horaires d'ouverture", Content: "Notre service client est disponible du lundi au vendredi de 9h à 18h, et le samedi de 9h à 13h.", Category: "Horaires",
			Keywords: []string{"horaires", "ouverture", "fermeture", "disponibilité"},
		},
		{
			Title: "Nos services", Content: "SoukBot vous aide à trouver les meilleurs partenaires commerciaux pour vos achats : recherche par type de produit, budget et ville, recommandations personnalisées et détection de produits par photo.", Category: "Services",
			Keywords: []string{"services", "offres", "solutions", "prestations"},
		},
		{
			Title: "Tarifs", Content: "L'utilisation de l'assistant SoukBot est entièrement gratuite pour les acheteurs. Les partenaires commerciaux disposent d'offres d'abonnement dédiées.", Category: "Tarifs",
			Keywords: []string{"tarifs", "prix", "coût", "abonnement", "gratuit"},
		},
		{
			Title: "Adresse", Content: "Nos bureaux sont situés au 12 Boulevard Mohammed V, Casablanca, Maroc.", Category: "Adresse",
			Keywords: []string{"adresse", "localisation", "bureaux", "siège"},
		},
	}

	for _, e := range entries {
		var existing model.Knowledge
		if err := db.Where("title = ?", e.Title).First(&existing).Error; err == nil {
			log.Printf("Knowledge entry '%s' already exists, skipping...", e.Title)
			continue
		}

		keywords, _ := json.Marshal(e.Keywords)
		row := model.Knowledge{
			Title:    e.Title,
			Content:  e.Content,
			Category: e.Category,
			Keywords: datatypes.JSON(keywords),
		}
		if err := db.Create(&row).Error; err != nil {
			color.Red("Error creating knowledge entry '%s': %v", e.Title, err)
		} else {
			log.Printf("Created knowledge entry: %s", e.Title)
		}
	}
}

// seedCorpus inserts the reference questions and embeds them inline so
// the classifier works right after seeding, without waiting for the
// async consumer.
func seedCorpus(db *gorm.DB, cfg *config.Config) {
	var provider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	case "jina":
		provider = jina.NewJinaProvider(cfg.Ai.JinaAPIKey)
	default:
		provider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
	}

	seed := func(questions []string, kind string) {
		for _, q := range questions {
			var existing model.CorpusEntry
			if err := db.Where("question = ? AND kind = ?", q, kind).First(&existing).Error; err == nil {
				log.Printf("Corpus entry '%s' already exists, skipping...", q)
				continue
			}

			row := model.CorpusEntry{Question: q, Kind: kind}
			res, err := provider.Generate(q, "RETRIEVAL_DOCUMENT")
			if err != nil {
				color.Yellow("Warn: could not embed '%s': %v (inserting without embedding)", q, err)
			} else {
				row.Embedding = pgvector.NewVector(res.Embedding.Values)
			}

			if err := db.Create(&row).Error; err != nil {
				color.Red("Error creating corpus entry '%s': %v", q, err)
			} else {
				log.Printf("Created corpus entry [%s]: %s", kind, q)
			}
		}
	}

	seed(semantic.DefaultInScopeCorpus, semantic.KindInScope)
	seed(semantic.DefaultIrrelevantCorpus, semantic.KindIrrelevant)
}
