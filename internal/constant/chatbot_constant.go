package constant

// Conversation lifecycle
const (
	ConversationStatusActive = "active"
	ConversationStatusClosed = "closed"

	MessageSenderUser = "user"
	MessageSenderBot  = "bot"
)

// Brand name; queries mentioning it are never treated as general-knowledge noise.
const BrandName = "SoukBot"

// DefaultCountry applied to every new shopping session.
const DefaultCountry = "Maroc"

// Bot messages (French, shopping assistant persona)
const (
	WelcomeMessage = "🛍️ Bonjour ! Je suis votre assistant shopping intelligent. Je vais vous aider à trouver les meilleurs partenaires pour vos achats.\n\nPour commencer, j'ai besoin de quelques informations :"

	ProductTypeQuestion = "🏷️ Quel type de produit recherchez-vous ?\n(ex: vêtements, électronique, électroménager, accessoires, etc.)"

	BudgetQuestion = "💰 Quelle est votre fourchette de budget ?\n(Indiquez un montant minimum et maximum en euros)"

	LocationQuestion = "📍 Dans quelle ville ou région souhaitez-vous trouver ce produit ?"

	ProductTypeSuggestions = "🔘 Vêtements\n🔘 Électronique\n🔘 Électroménager\n🔘 Accessoires\n🔘 Sport & Loisirs\n🔘 Maison & Jardin"

	BudgetExamples = "💡 Exemples:\n• \"Entre 50 et 200 euros\"\n• \"Maximum 100 euros\"\n• \"Pas de limite de budget\""

	CityExamples = "🏙️ Exemples: Casablanca, Rabat, Meknès, Oujda, Fès..."

	SearchErrorReply = "❌ Erreur lors de la recherche. Veuillez réessayer."

	InternalErrorReply = "❌ Désolé, une erreur s'est produite. Recommençons votre recherche."

	NoKnowledgeReply = "Je n'ai pas trouvé d'informations spécifiques sur ce sujet dans notre base de connaissances sur SoukBot. Pourriez-vous reformuler votre question ou me demander autre chose concernant notre entreprise ?"
)

// Quick-reply button labels
var (
	BudgetQuickReplies   = []string{"50-200€", "100-500€", "500-1000€", "Pas de limite"}
	CityQuickReplies     = []string{"Casablanca", "Rabat", "Marrakech", "Fès", "Toute la France"}
	NewSearchQuickReply  = "Nouvelle recherche"
	ResultsQuickReplies  = []string{"Voir plus d'options", "Nouvelle recherche", "Modifier ma recherche"}
	OutOfContextSentinel = "hors contexte"
)
