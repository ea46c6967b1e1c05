package casestudies

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Form is the flat editor shape of a case study: lists travel as delimited
// text and the icon as its name.
type Form struct {
	Title             string `json:"title" validate:"notblank"`
	Description       string `json:"description" validate:"notblank"`
	DescriptionRu     string `json:"descriptionRu"`
	FullDescription   string `json:"fullDescription"`
	FullDescriptionRu string `json:"fullDescriptionRu"`
	Category          string `json:"category"`
	Industry          string `json:"industry"`
	Timeframe         string `json:"timeframe"`
	Result            string `json:"result"`
	Image             string `json:"image" validate:"omitempty,url"`
	Technologies      string `json:"technologies"`
	UniqueFeatures    string `json:"uniqueFeatures"`
	UniqueFeaturesRu  string `json:"uniqueFeaturesRu"`
	KeyBenefits       string `json:"keyBenefits"`
	KeyBenefitsRu     string `json:"keyBenefitsRu"`
	IconName          string `json:"iconName"`
	ShowOnHomepage    bool   `json:"showOnHomepage"`
}

// NewForm returns the blank form used for adding a case study.
func NewForm() Form {
	return Form{
		Category: Categories[0],
		Industry: Industries[0],
		IconName: defaultIconName,
	}
}

// FormFromRecord pre-fills the form for editing c.
func FormFromRecord(c CaseStudy) Form {
	icon := c.Icon.Name
	if _, ok := LookupIcon(icon); !ok {
		icon = defaultIconName
	}
	return Form{
		Title:             c.Title,
		Description:       c.Description,
		DescriptionRu:     c.DescriptionRu,
		FullDescription:   c.FullDescription,
		FullDescriptionRu: c.FullDescriptionRu,
		Category:          c.Category,
		Industry:          c.Industry,
		Timeframe:         c.Timeframe,
		Result:            c.Result,
		Image:             c.Image,
		Technologies:      strings.Join(c.Technologies, ", "),
		UniqueFeatures:    strings.Join(c.UniqueFeatures, "\n"),
		UniqueFeaturesRu:  strings.Join(c.UniqueFeaturesRu, "\n"),
		KeyBenefits:       strings.Join(c.KeyBenefits, "\n"),
		KeyBenefitsRu:     strings.Join(c.KeyBenefitsRu, "\n"),
		IconName:          icon,
		ShowOnHomepage:    c.ShowOnHomepage,
	}
}

// Partial converts the form into the fields submitted to the store. Markup
// is stripped from every text value.
func (f Form) Partial() Partial {
	policy := bluemonday.StrictPolicy()
	clean := func(s string) string {
		// StrictPolicy escapes entities; the frontend escapes on render.
		return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
	}
	cleanAll := func(items []string) []string {
		out := make([]string, 0, len(items))
		for _, item := range items {
			if v := clean(item); v != "" {
				out = append(out, v)
			}
		}
		return out
	}

	p := Partial{
		Title:             Ptr(clean(f.Title)),
		Description:       Ptr(clean(f.Description)),
		DescriptionRu:     Ptr(clean(f.DescriptionRu)),
		FullDescription:   Ptr(clean(f.FullDescription)),
		FullDescriptionRu: Ptr(clean(f.FullDescriptionRu)),
		Category:          Ptr(clean(f.Category)),
		Industry:          Ptr(clean(f.Industry)),
		Timeframe:         Ptr(clean(f.Timeframe)),
		Result:            Ptr(clean(f.Result)),
		Image:             Ptr(strings.TrimSpace(f.Image)),
		Technologies:      Ptr(cleanAll(SplitComma(f.Technologies))),
		UniqueFeatures:    Ptr(cleanAll(SplitLines(f.UniqueFeatures))),
		KeyBenefits:       Ptr(cleanAll(SplitLines(f.KeyBenefits))),
		IconName:          Ptr(ResolveIcon(strings.TrimSpace(f.IconName)).Name),
		ShowOnHomepage:    Ptr(f.ShowOnHomepage),
	}

	// blank Russian lists are cleared so reads fall back to English
	if ru := cleanAll(SplitLines(f.UniqueFeaturesRu)); len(ru) > 0 {
		p.UniqueFeaturesRu = Ptr(ru)
	} else {
		p.UniqueFeaturesRu = Ptr([]string(nil))
	}
	if ru := cleanAll(SplitLines(f.KeyBenefitsRu)); len(ru) > 0 {
		p.KeyBenefitsRu = Ptr(ru)
	} else {
		p.KeyBenefitsRu = Ptr([]string(nil))
	}

	if img := strings.TrimSpace(f.Image); img != "" {
		p.AdditionalImages = Ptr([]string{img})
	} else {
		p.AdditionalImages = Ptr([]string{})
	}
	return p
}

// Precheck mirrors the store's homepage limit so the editor can refuse a
// submission up front. editingID is empty when adding.
func (f Form) Precheck(items []CaseStudy, editingID string) error {
	if !f.ShowOnHomepage {
		return nil
	}
	count := 0
	for _, item := range items {
		if item.ShowOnHomepage && (editingID == "" || item.ID != editingID) {
			count++
		}
	}
	if count >= HomepageLimit {
		return ErrHomepageCapExceeded
	}
	return nil
}

// SplitComma splits comma separated text, trimming entries and dropping
// empty ones. Order is preserved.
func SplitComma(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SplitLines splits newline separated text, dropping blank lines.
func SplitLines(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		if v := strings.TrimSpace(line); v != "" {
			out = append(out, v)
		}
	}
	return out
}
