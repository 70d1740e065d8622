// Package catalog holds the static reference data the practice flows
// draw from: regional accents per language, text-to-speech voices, and
// prompt material such as tongue twisters and quick scenario contexts.
package catalog

import "github.com/drewham94/AMai-Code/internal/models"

// Accent is a regional pronunciation variant of a practice language
type Accent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Voice is a text-to-speech voice option
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuickContexts are ready-made scenarios for respond-mode practice
var QuickContexts = []string{
	"Ordering at a cafe with a friend",
	"Checking into a hotel at night",
	"Asking for directions in a busy city",
	"Shopping for groceries at a local market",
	"Discussing weekend plans with a colleague",
}

// EnglishAccents are the accents the live assistant can speak English in
var EnglishAccents = []string{"American", "British", "Canadian", "Australian", "Irish"}

// Voices lists the available text-to-speech voices
var Voices = []Voice{
	{ID: "Puck", Name: "Voice 1"},
	{ID: "Charon", Name: "Voice 2"},
	{ID: "Kore", Name: "Voice 3"},
	{ID: "Fenrir", Name: "Voice 4"},
	{ID: "Zephyr", Name: "Voice 5"},
}

var accentsByLanguage = map[models.Language][]Accent{
	models.LanguageFrench: {
		{ID: "fr-paris", Name: "Parisian Style French", Region: "France"},
		{ID: "fr-quebec", Name: "Québécois", Region: "Canada"},
		{ID: "fr-marseille", Name: "Southern French (Marseille)", Region: "France"},
		{ID: "fr-senegal", Name: "West African French", Region: "Senegal"},
		{ID: "fr-belgium", Name: "Belgian French", Region: "Belgium"},
		{ID: "fr-switzerland", Name: "Swiss French", Region: "Switzerland"},
		{ID: "fr-ivory-coast", Name: "Ivorian French", Region: "Ivory Coast"},
		{ID: "fr-cameroon", Name: "Cameroonian French", Region: "Cameroon"},
		{ID: "fr-haiti", Name: "Haitian French", Region: "Haiti"},
		{ID: "fr-lyon", Name: "Lyonnais French", Region: "France"},
		{ID: "fr-normandy", Name: "Norman French", Region: "France"},
		{ID: "fr-brittany", Name: "Breton French", Region: "France"},
		{ID: "fr-congo", Name: "Congolese French", Region: "DRC"},
		{ID: "fr-morocco", Name: "Maghreb French", Region: "Morocco"},
		{ID: "fr-vietnam", Name: "Vietnamese French", Region: "Vietnam"},
	},
	models.LanguageSpanish: {
		{ID: "es-mexico", Name: "Mexican Spanish", Region: "Mexico"},
		{ID: "es-spain", Name: "Castilian Spanish", Region: "Spain"},
		{ID: "es-argentina", Name: "Rioplatense Spanish", Region: "Argentina"},
		{ID: "es-colombia", Name: "Colombian Spanish", Region: "Colombia"},
		{ID: "es-caribbean", Name: "Caribbean Spanish", Region: "Caribbean"},
		{ID: "es-chile", Name: "Chilean Spanish", Region: "Chile"},
		{ID: "es-peru", Name: "Peruvian Spanish", Region: "Peru"},
		{ID: "es-venezuela", Name: "Venezuelan Spanish", Region: "Venezuela"},
		{ID: "es-cuba", Name: "Cuban Spanish", Region: "Cuba"},
		{ID: "es-puerto-rico", Name: "Puerto Rican Spanish", Region: "Puerto Rico"},
		{ID: "es-dominican", Name: "Dominican Spanish", Region: "Dominican Republic"},
		{ID: "es-bolivia", Name: "Bolivian Spanish", Region: "Bolivia"},
		{ID: "es-ecuador", Name: "Ecuadorian Spanish", Region: "Ecuador"},
		{ID: "es-paraguay", Name: "Paraguayan Spanish", Region: "Paraguay"},
		{ID: "es-uruguay", Name: "Uruguayan Spanish", Region: "Uruguay"},
	},
}

var tongueTwisters = map[models.Language][]string{
	models.LanguageFrench: {
		"Un chasseur sachant chasser doit savoir chasser sans son chien.",
		"Les chaussettes de l'archiduchesse sont-elles sèches, archi-sèches ?",
		"Cinq chiens chassent six chats.",
		"Didon dîna, dit-on, du dos d'un dodu dindon.",
		"Si six scies scient six cyprès, six cent six scies scient six cent six cyprès.",
	},
	models.LanguageSpanish: {
		"Tres tristes tigres tragaban trigo en un trigal.",
		"Pablito clavó un clavito en la calva de un calvito.",
		"Como poco coco como, poco coco compro.",
		"El perro de San Roque no tiene rabo porque Ramón Rodríguez se lo ha robado.",
		"Erre con erre guitarra, erre con erre carril.",
	},
}

var regionalNames = map[string][]string{
	"fr-paris":       {"Gabriel", "Thomas", "Emma", "Lucas", "Léa"},
	"fr-quebec":      {"Félix", "Antoine", "Rosalie", "Émile", "Florence"},
	"fr-marseille":   {"Marius", "Sacha", "Louna", "Enzo", "Manon"},
	"fr-senegal":     {"Moussa", "Abdou", "Fatou", "Ousmane", "Awa"},
	"fr-belgium":     {"Arthur", "Louis", "Alice", "Victor", "Juliette"},
	"fr-switzerland": {"Noah", "Léon", "Mia", "Liam", "Chloé"},
	"fr-ivory-coast": {"Koffi", "Yao", "Aya", "Bakary", "Bintou"},
	"fr-cameroon":    {"Samuel", "Jean", "Marie", "Paul", "Anne"},
	"fr-haiti":       {"Jean-Claude", "Pierre", "Marie-Thérèse", "Dieudonné", "Fabienne"},
	"fr-lyon":        {"Paul", "Jules", "Louise", "Hugo", "Camille"},
	"fr-normandy":    {"Guillaume", "Robert", "Mathilde", "Richard", "Adèle"},
	"fr-brittany":    {"Yann", "Loïc", "Nolwenn", "Gwen", "Maël"},
	"fr-congo":       {"Dieumerci", "Gloire", "Espérance", "Trésor", "Béni"},
	"fr-morocco":     {"Yassine", "Mehdi", "Yasmine", "Anas", "Inès"},
	"fr-vietnam":     {"Minh", "Anh", "Lan", "Hùng", "Trang"},
	"es-mexico":      {"Mateo", "Santiago", "Sofía", "Sebastián", "Ximena"},
	"es-spain":       {"Hugo", "Lucas", "Lucía", "Martín", "Paula"},
	"es-argentina":   {"Bautista", "Benjamín", "Martina", "Felipe", "Catalina"},
	"es-colombia":    {"Juan", "José", "María", "Luis", "Carlos"},
	"es-caribbean":   {"Yadiel", "Javier", "Alondra", "Luis", "Kamila"},
	"es-chile":       {"Agustín", "Benjamín", "Isabella", "Vicente", "Emilia"},
	"es-peru":        {"Liam", "Thiago", "Valentina", "Gael", "Emma"},
	"es-venezuela":   {"Diego", "Samuel", "Victoria", "Matías", "Antonella"},
	"es-cuba":        {"Yoel", "Yusniel", "Yaima", "Yosvani", "Yuleisy"},
	"es-puerto-rico": {"Sebastián", "Dylan", "Valentina", "Ian", "Victoria"},
	"es-dominican":   {"Emmanuel", "Ángel", "Abigail", "Christopher", "Isabella"},
	"es-bolivia":     {"Alejandro", "Gabriel", "Luciana", "Daniel", "Mariana"},
	"es-ecuador":     {"Mateo", "Joaquín", "Danna", "Isaac", "Rafaela"},
	"es-paraguay":    {"Santino", "Thiago", "Mía", "Bastian", "Aitana"},
	"es-uruguay":     {"Juan", "Felipe", "Julieta", "Joaquín", "Delfina"},
}

// Accents returns the accent list for a language, or nil if unknown
func Accents(lang models.Language) []Accent {
	return accentsByLanguage[lang]
}

// DefaultAccent returns the first accent for a language
func DefaultAccent(lang models.Language) (Accent, bool) {
	accents := accentsByLanguage[lang]
	if len(accents) == 0 {
		return Accent{}, false
	}
	return accents[0], true
}

// FindAccent looks up an accent by display name across a language's accents
func FindAccent(lang models.Language, name string) (Accent, bool) {
	for _, a := range accentsByLanguage[lang] {
		if a.Name == name {
			return a, true
		}
	}
	return Accent{}, false
}

// TongueTwisters returns the tongue twisters for a language
func TongueTwisters(lang models.Language) []string {
	return tongueTwisters[lang]
}

// RegionalNames returns first names common to an accent's region,
// used to give generated dialogue speakers local flavor
func RegionalNames(accentID string) []string {
	return regionalNames[accentID]
}

// DefaultVoice is the voice used when a profile has not chosen one
func DefaultVoice() Voice {
	return Voices[0]
}

// FindVoice looks up a voice by ID
func FindVoice(id string) (Voice, bool) {
	for _, v := range Voices {
		if v.ID == id {
			return v, true
		}
	}
	return Voice{}, false
}
