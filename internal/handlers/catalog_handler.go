package handlers

import (
	"net/http"

	"github.com/drewham94/AMai-Code/internal/catalog"
	"github.com/drewham94/AMai-Code/internal/models"
)

// catalogAccent is an accent plus the first names the generated
// dialogue can speak under in that region
type catalogAccent struct {
	catalog.Accent
	SpeakerNames []string `json:"speakerNames,omitempty"`
}

type catalogLanguage struct {
	Accents        []catalogAccent `json:"accents"`
	TongueTwisters []string        `json:"tongueTwisters"`
}

type catalogResponse struct {
	Languages      map[models.Language]catalogLanguage `json:"languages"`
	Voices         []catalog.Voice                     `json:"voices"`
	EnglishAccents []string                            `json:"englishAccents"`
	QuickContexts  []string                            `json:"quickContexts"`
}

// Catalog returns the static reference data the settings and practice
// views are built from: accents and tongue twisters per language, the
// voice roster, assistant English accents, and quick scenario contexts.
func Catalog(w http.ResponseWriter, r *http.Request) {
	languages := make(map[models.Language]catalogLanguage, len(models.Languages))
	for _, lang := range models.Languages {
		accents := catalog.Accents(lang)
		entries := make([]catalogAccent, 0, len(accents))
		for _, a := range accents {
			entries = append(entries, catalogAccent{
				Accent:       a,
				SpeakerNames: catalog.RegionalNames(a.ID),
			})
		}
		languages[lang] = catalogLanguage{
			Accents:        entries,
			TongueTwisters: catalog.TongueTwisters(lang),
		}
	}

	respondJSON(w, http.StatusOK, catalogResponse{
		Languages:      languages,
		Voices:         catalog.Voices,
		EnglishAccents: catalog.EnglishAccents,
		QuickContexts:  catalog.QuickContexts,
	})
}
