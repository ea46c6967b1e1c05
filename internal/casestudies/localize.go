package casestudies

import (
	"strings"

	"golang.org/x/text/language"
)

var russianBase, _ = language.Russian.Base()

func isRussian(tag language.Tag) bool {
	base, _ := tag.Base()
	return base == russianBase
}

// LocalizedText returns ru when Russian is requested and ru is not blank,
// en otherwise.
func LocalizedText(en, ru string, tag language.Tag) string {
	if isRussian(tag) && strings.TrimSpace(ru) != "" {
		return ru
	}
	return en
}

// LocalizedList applies the LocalizedText rule to list pairs; a Russian list
// made only of blank entries counts as absent.
func LocalizedList(en, ru []string, tag language.Tag) []string {
	if isRussian(tag) && hasText(ru) {
		return cloneStrings(ru)
	}
	return cloneStrings(en)
}

func hasText(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}

// View is a case study rendered for one language.
type View struct {
	ID               string   `json:"id"`
	Lang             string   `json:"lang"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	FullDescription  string   `json:"fullDescription"`
	IconName         string   `json:"iconName"`
	Icon             string   `json:"icon"`
	Image            string   `json:"image"`
	AdditionalImages []string `json:"additionalImages"`
	Technologies     []string `json:"technologies"`
	UniqueFeatures   []string `json:"uniqueFeatures"`
	KeyBenefits      []string `json:"keyBenefits"`
	Category         string   `json:"category"`
	Industry         string   `json:"industry"`
	Timeframe        string   `json:"timeframe"`
	Result           string   `json:"result"`
	ShowOnHomepage   bool     `json:"showOnHomepage"`
}

func (c CaseStudy) Localize(tag language.Tag) View {
	icon := c.Icon
	if icon.Name == "" {
		icon = DefaultIcon()
	}
	return View{
		ID:               c.ID,
		Lang:             tag.String(),
		Title:            c.Title,
		Description:      LocalizedText(c.Description, c.DescriptionRu, tag),
		FullDescription:  LocalizedText(c.FullDescription, c.FullDescriptionRu, tag),
		IconName:         icon.Name,
		Icon:             icon.Glyph,
		Image:            c.Image,
		AdditionalImages: nonNil(c.AdditionalImages),
		Technologies:     nonNil(c.Technologies),
		UniqueFeatures:   nonNil(LocalizedList(c.UniqueFeatures, c.UniqueFeaturesRu, tag)),
		KeyBenefits:      nonNil(LocalizedList(c.KeyBenefits, c.KeyBenefitsRu, tag)),
		Category:         c.Category,
		Industry:         c.Industry,
		Timeframe:        c.Timeframe,
		Result:           c.Result,
		ShowOnHomepage:   c.ShowOnHomepage,
	}
}

func LocalizeAll(items []CaseStudy, tag language.Tag) []View {
	out := make([]View, len(items))
	for i, item := range items {
		out[i] = item.Localize(tag)
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return cloneStrings(in)
}
