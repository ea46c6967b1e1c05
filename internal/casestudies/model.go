package casestudies

import "strings"

// HomepageLimit is the maximum number of case studies flagged for the
// homepage at any time.
const HomepageLimit = 6

// Categories and Industries are the classification labels offered by the
// admin form and the public filters.
var (
	Categories = []string{"Automation", "AI Solutions", "Analytics", "Web Development"}
	Industries = []string{"FinTech", "Gaming & Esports", "Sales & Marketing", "Enterprise", "HR & Recruitment", "Education"}
)

// CaseStudy is one catalog entry. The JSON shape is the persisted layout:
// the icon is stored by name under "iconName".
type CaseStudy struct {
	ID                string   `json:"id" yaml:"id"`
	Title             string   `json:"title" yaml:"title"`
	Description       string   `json:"description" yaml:"description"`
	DescriptionRu     string   `json:"descriptionRu,omitempty" yaml:"descriptionRu,omitempty"`
	FullDescription   string   `json:"fullDescription" yaml:"fullDescription"`
	FullDescriptionRu string   `json:"fullDescriptionRu,omitempty" yaml:"fullDescriptionRu,omitempty"`
	Icon              Icon     `json:"iconName" yaml:"iconName"`
	Image             string   `json:"image" yaml:"image"`
	AdditionalImages  []string `json:"additionalImages" yaml:"additionalImages"`
	Technologies      []string `json:"technologies" yaml:"technologies"`
	UniqueFeatures    []string `json:"uniqueFeatures" yaml:"uniqueFeatures"`
	UniqueFeaturesRu  []string `json:"uniqueFeaturesRu,omitempty" yaml:"uniqueFeaturesRu,omitempty"`
	KeyBenefits       []string `json:"keyBenefits" yaml:"keyBenefits"`
	KeyBenefitsRu     []string `json:"keyBenefitsRu,omitempty" yaml:"keyBenefitsRu,omitempty"`
	Category          string   `json:"category" yaml:"category"`
	Industry          string   `json:"industry" yaml:"industry"`
	Timeframe         string   `json:"timeframe" yaml:"timeframe"`
	Result            string   `json:"result" yaml:"result"`
	ShowOnHomepage    bool     `json:"showOnHomepage" yaml:"showOnHomepage"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (c CaseStudy) Clone() CaseStudy {
	out := c
	out.AdditionalImages = cloneStrings(c.AdditionalImages)
	out.Technologies = cloneStrings(c.Technologies)
	out.UniqueFeatures = cloneStrings(c.UniqueFeatures)
	out.UniqueFeaturesRu = cloneStrings(c.UniqueFeaturesRu)
	out.KeyBenefits = cloneStrings(c.KeyBenefits)
	out.KeyBenefitsRu = cloneStrings(c.KeyBenefitsRu)
	return out
}

func (c *CaseStudy) normalize() {
	if c.Icon.Name == "" {
		c.Icon = DefaultIcon()
	}
	if c.AdditionalImages == nil {
		c.AdditionalImages = []string{}
	}
	if c.Technologies == nil {
		c.Technologies = []string{}
	}
	if c.UniqueFeatures == nil {
		c.UniqueFeatures = []string{}
	}
	if c.KeyBenefits == nil {
		c.KeyBenefits = []string{}
	}
}

// displayable reports whether the record carries the minimum a public card
// needs.
func (c CaseStudy) displayable() bool {
	return strings.TrimSpace(c.ID) != "" &&
		strings.TrimSpace(c.Title) != "" &&
		strings.TrimSpace(c.Description) != ""
}

// Partial carries the fields of an add or update. Nil fields are left
// untouched; list pointers distinguish "absent" from "set to empty".
type Partial struct {
	Title             *string   `json:"title,omitempty" validate:"omitempty,notblank"`
	Description       *string   `json:"description,omitempty"`
	DescriptionRu     *string   `json:"descriptionRu,omitempty"`
	FullDescription   *string   `json:"fullDescription,omitempty"`
	FullDescriptionRu *string   `json:"fullDescriptionRu,omitempty"`
	IconName          *string   `json:"iconName,omitempty"`
	Image             *string   `json:"image,omitempty" validate:"omitempty,url"`
	AdditionalImages  *[]string `json:"additionalImages,omitempty" validate:"omitempty,dive,url"`
	Technologies      *[]string `json:"technologies,omitempty"`
	UniqueFeatures    *[]string `json:"uniqueFeatures,omitempty"`
	UniqueFeaturesRu  *[]string `json:"uniqueFeaturesRu,omitempty"`
	KeyBenefits       *[]string `json:"keyBenefits,omitempty"`
	KeyBenefitsRu     *[]string `json:"keyBenefitsRu,omitempty"`
	Category          *string   `json:"category,omitempty"`
	Industry          *string   `json:"industry,omitempty"`
	Timeframe         *string   `json:"timeframe,omitempty"`
	Result            *string   `json:"result,omitempty"`
	ShowOnHomepage    *bool     `json:"showOnHomepage,omitempty"`
}

func (p Partial) requestsHomepage() bool {
	return p.ShowOnHomepage != nil && *p.ShowOnHomepage
}

func (p Partial) apply(c *CaseStudy) {
	setString(&c.Title, p.Title)
	setString(&c.Description, p.Description)
	setString(&c.DescriptionRu, p.DescriptionRu)
	setString(&c.FullDescription, p.FullDescription)
	setString(&c.FullDescriptionRu, p.FullDescriptionRu)
	setString(&c.Image, p.Image)
	setString(&c.Category, p.Category)
	setString(&c.Industry, p.Industry)
	setString(&c.Timeframe, p.Timeframe)
	setString(&c.Result, p.Result)
	setStrings(&c.AdditionalImages, p.AdditionalImages)
	setStrings(&c.Technologies, p.Technologies)
	setStrings(&c.UniqueFeatures, p.UniqueFeatures)
	setStrings(&c.UniqueFeaturesRu, p.UniqueFeaturesRu)
	setStrings(&c.KeyBenefits, p.KeyBenefits)
	setStrings(&c.KeyBenefitsRu, p.KeyBenefitsRu)
	if p.IconName != nil {
		c.Icon = ResolveIcon(*p.IconName)
	}
	if p.ShowOnHomepage != nil {
		c.ShowOnHomepage = *p.ShowOnHomepage
	}
}

// ListFilter narrows the public catalog. Empty values and "All" match
// everything.
type ListFilter struct {
	Category string
	Industry string
	Search   string
}

func (f ListFilter) matches(c CaseStudy) bool {
	if !matchesLabel(f.Category, c.Category) || !matchesLabel(f.Industry, c.Industry) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), q) ||
		strings.Contains(strings.ToLower(c.Description), q) ||
		strings.Contains(strings.ToLower(c.DescriptionRu), q) {
		return true
	}
	for _, tech := range c.Technologies {
		if strings.Contains(strings.ToLower(tech), q) {
			return true
		}
	}
	return false
}

func matchesLabel(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, "All") || want == got
}

// Ptr returns a pointer to v, handy when building a Partial.
func Ptr[T any](v T) *T {
	return &v
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setStrings(dst *[]string, src *[]string) {
	if src != nil {
		*dst = cloneStrings(*src)
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
