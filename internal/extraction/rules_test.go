package extraction

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-entities/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valuesOf returns the values of entities with type t, in order.
func valuesOf(entities []types.Entity, t types.EntityType) []string {
	var values []string
	for _, e := range entities {
		if e.Type == t {
			values = append(values, e.Value)
		}
	}
	return values
}

func findEntity(t *testing.T, entities []types.Entity, et types.EntityType, value string) types.Entity {
	t.Helper()
	for _, e := range entities {
		if e.Type == et && e.Value == value {
			return e
		}
	}
	require.Failf(t, "entity not found", "%s %q not in %v", et, value, entities)
	return types.Entity{}
}

func assertRelativePositions(t *testing.T, text string, entities []types.Entity) {
	t.Helper()
	for _, e := range entities {
		require.GreaterOrEqual(t, e.Position.Start, 0)
		require.LessOrEqual(t, e.Position.End, len(text))
		assert.Equal(t, e.Value, text[e.Position.Start:e.Position.End])
	}
}

func TestExtractEntities_ContactHeader(t *testing.T) {
	text := "Jane Doe, jane@x.com, (415) 555-0100"
	e := NewExtractor(DefaultOptions())

	entities, err := e.ExtractEntities(text, types.SectionHeader)
	require.NoError(t, err)
	assertRelativePositions(t, text, entities)

	email := findEntity(t, entities, types.EntityEmail, "jane@x.com")
	assert.GreaterOrEqual(t, email.Confidence, 0.9)
	assert.Equal(t, types.Position{Start: 10, End: 20}, email.Position)

	phone := findEntity(t, entities, types.EntityPhone, "(415) 555-0100")
	assert.GreaterOrEqual(t, phone.Confidence, 0.85)

	findEntity(t, entities, types.EntityPersonName, "Jane Doe")
	assert.Empty(t, valuesOf(entities, types.EntityWebsite))
}

func TestExtractEntities_ContactLinksAndLocation(t *testing.T) {
	text := "John Q. Public\nSan Francisco, CA\nhttps://github.com/jqp, linkedin.com/in/jqp.\n"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionContact)
	require.NoError(t, err)
	assertRelativePositions(t, text, entities)

	assert.Equal(t, []string{"John Q. Public"}, valuesOf(entities, types.EntityPersonName))
	assert.Equal(t, []string{"San Francisco, CA"}, valuesOf(entities, types.EntityLocation))
	assert.Equal(t, []string{"https://github.com/jqp", "linkedin.com/in/jqp"}, valuesOf(entities, types.EntityWebsite))
}

func TestExtractEntities_Experience(t *testing.T) {
	text := "Lead Engineer at Acme Corp, Jan 2019 - Present\n• Increased revenue by 30% in 6 months\nSenior Dev | Globex\n"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionExperience)
	require.NoError(t, err)
	assertRelativePositions(t, text, entities)

	assert.Equal(t, []string{"Lead Engineer", "Senior Dev"}, valuesOf(entities, types.EntityJobTitle))
	assert.Equal(t, []string{"Acme Corp", "Globex"}, valuesOf(entities, types.EntityCompanyName), "duplicate company spans collapse")
	assert.Equal(t, []string{"Jan 2019 - Present"}, valuesOf(entities, types.EntityDateRange))
	assert.Contains(t, valuesOf(entities, types.EntityDate), "Jan 2019")
	assert.Equal(t, []string{"30%"}, valuesOf(entities, types.EntityMetric))
	assert.Equal(t, []string{"Increased revenue by 30%"}, valuesOf(entities, types.EntityAchievement))

	rangeEntity := findEntity(t, entities, types.EntityDateRange, "Jan 2019 - Present")
	assert.GreaterOrEqual(t, rangeEntity.Confidence, 0.85)
}

func TestExtractEntities_ProjectsUseExperienceRules(t *testing.T) {
	text := "Billing rewrite, 03/2021 to 11/2022, served 10,000 users"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionProjects)
	require.NoError(t, err)

	assert.Equal(t, []string{"03/2021 to 11/2022"}, valuesOf(entities, types.EntityDateRange))
	assert.Equal(t, []string{"03/2021", "11/2022"}, valuesOf(entities, types.EntityDate))
	assert.Equal(t, []string{"10,000 users"}, valuesOf(entities, types.EntityMetric))
}

func TestExtractEntities_Education(t *testing.T) {
	text := "BS CS, State U, 2019\nBachelor of Science in Computer Science, Massachusetts Institute of Technology, May 2020\n"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionEducation)
	require.NoError(t, err)
	assertRelativePositions(t, text, entities)

	assert.Equal(t, []string{"BS", "Bachelor of Science"}, valuesOf(entities, types.EntityDegree))
	assert.Equal(t, []string{"State U", "Massachusetts Institute of Technology"}, valuesOf(entities, types.EntityEducation))
	assert.Equal(t, []string{"2019", "May 2020", "2020"}, valuesOf(entities, types.EntityDate))
}

func TestExtractEntities_Skills(t *testing.T) {
	text := "Languages: Go, Python, JavaScript\n• Docker\n• Distributed systems design and architecture at scale\n"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionSkills)
	require.NoError(t, err)
	assertRelativePositions(t, text, entities)

	assert.Equal(t, []string{"Go", "Python", "JavaScript", "Docker"}, valuesOf(entities, types.EntitySkill))
	assert.Equal(t, 0.85, findEntity(t, entities, types.EntitySkill, "Go").Confidence)
}

func TestExtractEntities_SkillHeuristics(t *testing.T) {
	text := "Soft skills: Mentoring, Public speaking, A, Cross-team communication and stakeholder alignment\n" +
		"1. Incident response\n- Observability\n* UX\n"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionSkills)
	require.NoError(t, err)
	assertRelativePositions(t, text, entities)

	skills := valuesOf(entities, types.EntitySkill)
	assert.Equal(t, []string{"Mentoring", "Public speaking", "Incident response", "Observability"}, skills)
	for _, e := range entities {
		assert.Equal(t, 0.7, e.Confidence, "heuristic skill %q", e.Value)
	}
}

func TestExtractEntities_SkillBoundsAreConfigurable(t *testing.T) {
	text := "- Kubernetes operators\n- Rust\n"
	e := NewExtractor(Options{SkillItemMinLength: 2, SkillItemMaxLength: 10})

	entities, err := e.ExtractEntities(text, types.SectionSkills)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kubernetes", "Rust"}, valuesOf(entities, types.EntitySkill))
}

func TestExtractEntities_UnknownSectionUsesGeneric(t *testing.T) {
	text := "Certified Kubernetes Administrator, 2021. Contact: a@b.io"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionType("HOBBIES"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Certified Kubernetes Administrator"}, valuesOf(entities, types.EntityCertification))
	assert.Equal(t, []string{"a@b.io"}, valuesOf(entities, types.EntityEmail))
}

func TestExtractEntities_ScansWholeText(t *testing.T) {
	text := "a@x.com b@y.com c@z.com"
	entities, err := NewExtractor(DefaultOptions()).ExtractEntities(text, types.SectionSummary)
	require.NoError(t, err)

	emails := valuesOf(entities, types.EntityEmail)
	assert.Equal(t, []string{"a@x.com", "b@y.com", "c@z.com"}, emails)
}

func TestExtractEntities_EmptyText(t *testing.T) {
	for _, st := range []types.SectionType{types.SectionHeader, types.SectionExperience, types.SectionEducation, types.SectionSkills, types.SectionSummary} {
		entities, err := NewExtractor(DefaultOptions()).ExtractEntities("", st)
		require.NoError(t, err)
		assert.Empty(t, entities, "section type %s", st)
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(DefaultOptions())

	tests := []struct {
		sectionType types.SectionType
		want        string
	}{
		{types.SectionHeader, FamilyContact},
		{types.SectionContact, FamilyContact},
		{types.SectionExperience, FamilyExperience},
		{types.SectionProjects, FamilyExperience},
		{types.SectionEducation, FamilyEducation},
		{types.SectionSkills, FamilySkills},
		{types.SectionSummary, FamilyGeneric},
		{types.SectionCertifications, FamilyGeneric},
		{types.SectionType("SOMETHING_ELSE"), FamilyGeneric},
	}

	for _, tt := range tests {
		t.Run(string(tt.sectionType), func(t *testing.T) {
			assert.Equal(t, tt.want, r.Lookup(tt.sectionType).Name())
		})
	}
}

func TestRegistry_RegisterAndSetFallback(t *testing.T) {
	firstWord := func(name string, et types.EntityType) RuleFamily {
		return FamilyFunc{FamilyName: name, Fn: func(text string) ([]types.Entity, error) {
			end := strings.IndexByte(text, ' ')
			if end <= 0 {
				return nil, nil
			}
			return []types.Entity{newEntity(et, text, 0, end, 0.5, name)}, nil
		}}
	}

	r := NewRegistry(DefaultOptions())
	r.Register(types.SectionSummary, firstWord("summary-words", types.EntityAchievement))
	r.SetFallback(firstWord("first-word", types.EntityLocation))

	assert.Equal(t, "summary-words", r.Lookup(types.SectionSummary).Name())
	assert.Equal(t, "first-word", r.Lookup(types.SectionReferences).Name())
	assert.Equal(t, "first-word", r.Lookup(types.SectionType("SOMETHING_ELSE")).Name())
	assert.Equal(t, FamilySkills, r.Lookup(types.SectionSkills).Name(), "registered families are untouched")

	extractor := NewExtractorWithRegistry(r)
	entities, err := extractor.ExtractEntities("Berlin and beyond", types.SectionReferences)
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, types.EntityLocation, entities[0].Type)
	assert.Equal(t, "Berlin", entities[0].Value)
}

func TestNormalize_DropsInvalidEntities(t *testing.T) {
	text := "hello world"
	in := []types.Entity{
		{Type: types.EntitySkill, Value: "world", Position: types.Position{Start: 6, End: 11}},
		{Type: types.EntitySkill, Value: "world", Position: types.Position{Start: 6, End: 11}},
		{Type: types.EntitySkill, Value: "hello", Position: types.Position{Start: 0, End: 5}},
		{Type: types.EntitySkill, Value: "nope", Position: types.Position{Start: 0, End: 4}},
		{Type: types.EntitySkill, Value: "x", Position: types.Position{Start: 10, End: 20}},
		{Type: types.EntityType("BOGUS"), Value: "hello", Position: types.Position{Start: 0, End: 5}},
	}

	out := normalize(in, text)
	require.Len(t, out, 2)
	assert.Equal(t, "hello", out[0].Value)
	assert.Equal(t, "world", out[1].Value)
}
