package segmentation

import (
	"regexp"

	"github.com/jonathan/resume-entities/internal/types"
)

// headerPattern maps a keyword pattern to the section type it announces.
type headerPattern struct {
	sectionType types.SectionType
	regex       *regexp.Regexp
}

// headerPatterns is ordered: the first match wins. Volunteer precedes experience so
// "Volunteer Work" is not read as employment.
var headerPatterns = []headerPattern{
	{types.SectionVolunteer, regexp.MustCompile(`(?i)\bvolunteer(?:ing)?\b`)},
	{types.SectionSummary, regexp.MustCompile(`(?i)\b(?:summary|profile|objective|overview)\b`)},
	{types.SectionExperience, regexp.MustCompile(`(?i)\b(?:experiences?|employment|career)\b`)},
	{types.SectionEducation, regexp.MustCompile(`(?i)\b(?:education|educational|academics?|qualifications)\b`)},
	{types.SectionSkills, regexp.MustCompile(`(?i)\b(?:skills|technologies|competencies|expertise|proficiencies)\b`)},
	{types.SectionCertifications, regexp.MustCompile(`(?i)\b(?:certifications?|certificates?|licen[sc]es?)\b`)},
	{types.SectionProjects, regexp.MustCompile(`(?i)\bprojects\b`)},
	{types.SectionLanguages, regexp.MustCompile(`(?i)\blanguages\b`)},
	{types.SectionAchievements, regexp.MustCompile(`(?i)\b(?:achievements|awards|honou?rs|accomplishments)\b`)},
	{types.SectionPublications, regexp.MustCompile(`(?i)\b(?:publications|papers)\b`)},
	{types.SectionReferences, regexp.MustCompile(`(?i)\breferences\b`)},
	{types.SectionContact, regexp.MustCompile(`(?i)\bcontact\b`)},
}

// weakHeaderPatterns name a section only when no headerPattern matches, so "Work History"
// is experience but "Publication History" is not.
var weakHeaderPatterns = []headerPattern{
	{types.SectionExperience, regexp.MustCompile(`(?i)\b(?:work|history|background)\b`)},
	{types.SectionSummary, regexp.MustCompile(`(?i)\babout\b`)},
	{types.SectionContact, regexp.MustCompile(`(?i)\bpersonal\b`)},
	{types.SectionPublications, regexp.MustCompile(`(?i)\bresearch\b`)},
}

// headerVocabulary holds every word a header line may consist of. A line with any other
// word is body text, which keeps "Project Manager" or "Technical Lead, Globex" out of the
// section boundaries.
var headerVocabulary = vocabulary(
	// section keywords
	"volunteer", "volunteering", "summary", "profile", "objective", "overview",
	"experience", "experiences", "employment", "career",
	"education", "educational", "academic", "academics", "qualifications",
	"skills", "technologies", "competencies", "expertise", "proficiencies",
	"certification", "certifications", "certificate", "certificates",
	"license", "licenses", "licence", "licences",
	"projects", "languages", "achievements", "awards", "honors", "honours", "accomplishments",
	"publications", "papers", "references", "contact",
	"work", "history", "background", "about", "personal", "research",
	// qualifiers
	"and", "of", "the", "my", "me", "professional", "technical", "relevant", "core", "key",
	"selected", "additional", "other", "recent", "information", "info", "details", "areas",
	"tools", "interests", "training",
)

func vocabulary(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// listMarker matches bullet and numbered-list prefixes. List items are body text even when
// they are short and contain a section keyword.
var listMarker = regexp.MustCompile(`^\s*(?:[-*•·▪‣◦]|\d{1,2}[.)])\s+`)

// HasListMarker reports whether line starts with a bullet or numbered-list marker.
func HasListMarker(line string) bool {
	return listMarker.MatchString(line)
}

// ListMarkerLen returns the length of the list marker prefix of line, or 0.
func ListMarkerLen(line string) int {
	loc := listMarker.FindStringIndex(line)
	if loc == nil {
		return 0
	}
	return loc[1]
}
