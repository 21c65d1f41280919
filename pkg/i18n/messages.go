package i18n

import "golang.org/x/text/language"

var translations = map[language.Tag]map[string]string{
	language.German: {
		"Books":                       "Bücher",
		"Show recent books":           "Zeige neueste Bücher",
		"Hot Books":                   "Beliebte Bücher",
		"Show Hot Books":              "Zeige beliebte Bücher",
		"Downloaded Books":            "Heruntergeladene Bücher",
		"Show Downloaded Books":       "Zeige heruntergeladene Bücher",
		"Top Rated Books":             "Best bewertete Bücher",
		"Show Top Rated Books":        "Zeige best bewertete Bücher",
		"Read Books":                  "Gelesene Bücher",
		"Show read and unread":        "Zeige gelesene und ungelesene Bücher",
		"Unread Books":                "Ungelesene Bücher",
		"Show unread":                 "Zeige ungelesene Bücher",
		"Discover":                    "Entdecken",
		"Show Random Books":           "Zeige zufällige Bücher",
		"Categories":                  "Kategorien",
		"Show category selection":     "Zeige Kategorienauswahl",
		"Series":                      "Serien",
		"Show series selection":       "Zeige Serienauswahl",
		"Authors":                     "Autoren",
		"Show author selection":       "Zeige Autorenauswahl",
		"Publishers":                  "Verleger",
		"Show publisher selection":    "Zeige Verlegerauswahl",
		"Languages":                   "Sprachen",
		"Show language selection":     "Zeige Sprachauswahl",
		"Ratings":                     "Bewertungen",
		"Show ratings selection":      "Zeige Bewertungsauswahl",
		"File formats":                "Dateiformate",
		"Show file formats selection": "Zeige Dateiformatauswahl",
		"Archived Books":              "Archivierte Bücher",
		"Show archived books":         "Zeige archivierte Bücher",
		"Books List":                  "Bücherliste",
		"Show Books List":             "Zeige Bücherliste",
		"Configuration":               "Konfiguration",
		"Profile":                     "Profil",
		"Guest":                       "Gast",
	},
	language.French: {
		"Books":                       "Livres",
		"Show recent books":           "Afficher les livres récents",
		"Hot Books":                   "Livres populaires",
		"Show Hot Books":              "Afficher les livres populaires",
		"Downloaded Books":            "Livres téléchargés",
		"Show Downloaded Books":       "Afficher les livres téléchargés",
		"Top Rated Books":             "Livres les mieux notés",
		"Show Top Rated Books":        "Afficher les livres les mieux notés",
		"Read Books":                  "Livres lus",
		"Show read and unread":        "Afficher les livres lus et non lus",
		"Unread Books":                "Livres non lus",
		"Show unread":                 "Afficher les livres non lus",
		"Discover":                    "Découvrir",
		"Show Random Books":           "Afficher des livres au hasard",
		"Categories":                  "Catégories",
		"Show category selection":     "Afficher la sélection des catégories",
		"Series":                      "Séries",
		"Show series selection":       "Afficher la sélection des séries",
		"Authors":                     "Auteurs",
		"Show author selection":       "Afficher la sélection des auteurs",
		"Publishers":                  "Éditeurs",
		"Show publisher selection":    "Afficher la sélection des éditeurs",
		"Languages":                   "Langues",
		"Show language selection":     "Afficher la sélection des langues",
		"Ratings":                     "Évaluations",
		"Show ratings selection":      "Afficher la sélection des évaluations",
		"File formats":                "Formats de fichier",
		"Show file formats selection": "Afficher la sélection des formats de fichier",
		"Archived Books":              "Livres archivés",
		"Show archived books":         "Afficher les livres archivés",
		"Books List":                  "Liste des livres",
		"Show Books List":             "Afficher la liste des livres",
		"Configuration":               "Configuration",
		"Profile":                     "Profil",
		"Guest":                       "Invité",
	},
}
