package extraction

import (
	"github.com/jonathan/resume-entities/internal/types"
)

// Family names.
const (
	FamilyContact    = "contact"
	FamilyExperience = "experience"
	FamilyEducation  = "education"
	FamilySkills     = "skills"
	FamilyGeneric    = "generic"
)

// Options tunes the structural heuristics of the rule families.
type Options struct {
	SkillItemMinLength int
	SkillItemMaxLength int
}

// DefaultOptions returns the options matching the documented defaults.
func DefaultOptions() Options {
	return Options{
		SkillItemMinLength: DefaultSkillItemMinLength,
		SkillItemMaxLength: DefaultSkillItemMaxLength,
	}
}

func (o Options) withDefaults() Options {
	if o.SkillItemMinLength <= 0 {
		o.SkillItemMinLength = DefaultSkillItemMinLength
	}
	if o.SkillItemMaxLength <= 0 {
		o.SkillItemMaxLength = DefaultSkillItemMaxLength
	}
	return o
}

// NewContactFamily extracts contact details from a document header.
func NewContactFamily() RuleFamily {
	return &patternFamily{
		name:  FamilyContact,
		rules: []Rule{emailRule, phoneRule, websiteRule, personNameRule, locationRule},
	}
}

// NewExperienceFamily extracts roles, employers, tenures and impact from work history.
func NewExperienceFamily() RuleFamily {
	rules := []Rule{
		jobTitleRule, companySuffixRule, companyAtRule, companySeparatorRule,
		dateRangeRule, monthYearRule, numericDateRule, locationRule, achievementRule,
	}
	return &patternFamily{
		name:  FamilyExperience,
		rules: append(rules, metricRules...),
	}
}

// NewEducationFamily extracts degrees, institutions and graduation dates.
func NewEducationFamily() RuleFamily {
	return &patternFamily{
		name: FamilyEducation,
		rules: []Rule{
			degreeRule, institutionRule, abbreviatedInstitutionRule,
			dateRangeRule, monthYearRule, yearRule,
		},
	}
}

// NewSkillsFamily extracts skills from dictionary terms, delimited lists and bullet lists.
func NewSkillsFamily(opts Options) RuleFamily {
	opts = opts.withDefaults()
	h := skillHeuristics{minLen: opts.SkillItemMinLength, maxLen: opts.SkillItemMaxLength}
	return &patternFamily{
		name:     FamilySkills,
		matchers: []Matcher{matchKnownSkills, h.listItems, h.bulletItems},
	}
}

// NewGenericFamily runs the section-independent rules.
func NewGenericFamily() RuleFamily {
	rules := []Rule{
		emailRule, phoneRule, websiteRule, dateRangeRule, monthYearRule,
		achievementRule, certificationRule,
	}
	return &patternFamily{
		name:  FamilyGeneric,
		rules: append(rules, metricRules...),
	}
}

// Registry maps section types to the rule family that handles them. Types without an entry
// use the fallback family.
type Registry struct {
	families map[types.SectionType]RuleFamily
	fallback RuleFamily
}

// NewRegistry returns a registry populated with the standard families.
func NewRegistry(opts Options) *Registry {
	contact := NewContactFamily()
	experience := NewExperienceFamily()

	r := &Registry{
		families: make(map[types.SectionType]RuleFamily),
		fallback: NewGenericFamily(),
	}
	r.Register(types.SectionHeader, contact)
	r.Register(types.SectionContact, contact)
	r.Register(types.SectionExperience, experience)
	r.Register(types.SectionProjects, experience)
	r.Register(types.SectionEducation, NewEducationFamily())
	r.Register(types.SectionSkills, NewSkillsFamily(opts))
	return r
}

// Register binds a family to a section type, replacing any previous binding.
func (r *Registry) Register(sectionType types.SectionType, family RuleFamily) {
	r.families[sectionType] = family
}

// SetFallback replaces the family used for unregistered section types.
func (r *Registry) SetFallback(family RuleFamily) {
	r.fallback = family
}

// Lookup returns the family for sectionType, or the fallback.
func (r *Registry) Lookup(sectionType types.SectionType) RuleFamily {
	if family, ok := r.families[sectionType]; ok {
		return family
	}
	return r.fallback
}
