package extraction

import (
	"regexp"

	"github.com/jonathan/resume-entities/internal/types"
)

const (
	monthName = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|June?|July?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?)`
	dateToken = `(?:` + monthName + `\.?[ \t]+\d{4}|\d{1,2}/\d{4}|(?:19|20)\d{2})`

	titleNoun    = `(?:Engineer|Developer|Dev|Programmer|Manager|Director|Analyst|Designer|Consultant|Architect|Scientist|Specialist|Administrator|Coordinator|Intern|Officer|Lead|President|Founder|Co-Founder|Assistant|Technician|Researcher|Accountant|Recruiter|Representative|Strategist|Writer|Editor|Teacher|Nurse)`
	properWord   = `[A-Z][A-Za-z0-9&'.-]*`
	// Software, Systems and Solutions are left out: they are more often title words
	// ("Senior Software Engineer") than company suffixes.
	companyTail  = `(?:Inc|Corp|Corporation|LLC|Ltd|Co|Company|Group|Technologies|Labs|Partners|Holdings)`
	institution  = `(?:University|College|Institute|School|Academy|Polytechnic)`
	metricNumber = `(?:\d+(?:\.\d+)?[ \t]?%|\$[ \t]?\d[\d,]*(?:\.\d+)?[KMB]?|\d+(?:\.\d+)?x\b)`
)

// Contact rules.
var (
	emailRule = Rule{
		Name:       "email",
		Type:       types.EntityEmail,
		Pattern:    regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		Confidence: 0.95,
	}
	phoneRule = Rule{
		Name:       "phone",
		Type:       types.EntityPhone,
		Pattern:    regexp.MustCompile(`(?:\+\d{1,3}[ .-]?)?(?:\(\d{3}\)|\b\d{3})[ .-]?\d{3}[ .-]?\d{4}\b`),
		Confidence: 0.9,
	}
	websiteRule = Rule{
		Name:       "website",
		Type:       types.EntityWebsite,
		Pattern:    regexp.MustCompile(`(?i)\b(?:https?://|www\.|(?:linkedin|github|gitlab)\.com/)[^\s,;]*[^\s,;.)]`),
		Confidence: 0.85,
	}
	personNameRule = Rule{
		Name:       "leading_name",
		Type:       types.EntityPersonName,
		Pattern:    regexp.MustCompile(`\A\s*([A-Z][a-zA-Z'’-]+(?:[ \t]+(?:[A-Z]\.|[A-Z][a-zA-Z'’-]+)){1,3})\b`),
		Group:      1,
		Confidence: 0.8,
	}
	locationRule = Rule{
		Name:       "city_state",
		Type:       types.EntityLocation,
		Pattern:    regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:[ \t][A-Z][a-zA-Z]+)*,[ \t]?[A-Z]{2}\b`),
		Confidence: 0.75,
	}
)

// Date rules.
var (
	dateRangeRule = Rule{
		Name:       "date_range",
		Type:       types.EntityDateRange,
		Pattern:    regexp.MustCompile(`\b` + dateToken + `[ \t]*(?:-|–|—|to)[ \t]*(?:` + dateToken + `|(?i:present|current|now|today))\b`),
		Confidence: 0.9,
	}
	monthYearRule = Rule{
		Name:       "month_year",
		Type:       types.EntityDate,
		Pattern:    regexp.MustCompile(`\b` + monthName + `\.?[ \t]+\d{4}\b`),
		Confidence: 0.85,
	}
	numericDateRule = Rule{
		Name:       "numeric_date",
		Type:       types.EntityDate,
		Pattern:    regexp.MustCompile(`\b\d{1,2}/\d{4}\b`),
		Confidence: 0.8,
	}
	yearRule = Rule{
		Name:       "year",
		Type:       types.EntityDate,
		Pattern:    regexp.MustCompile(`\b(?:19|20)\d{2}\b`),
		Confidence: 0.75,
	}
)

// Experience rules.
var (
	jobTitleRule = Rule{
		Name:       "job_title",
		Type:       types.EntityJobTitle,
		Pattern:    regexp.MustCompile(`\b(?:[A-Z][A-Za-z+#/.-]*[ \t]+){0,3}` + titleNoun + `\b`),
		Confidence: 0.8,
	}
	companySuffixRule = Rule{
		Name:       "company_suffix",
		Type:       types.EntityCompanyName,
		Pattern:    regexp.MustCompile(`\b` + properWord + `(?:[ \t]+` + properWord + `){0,3}[ \t]+` + companyTail + `\b\.?`),
		Confidence: 0.85,
	}
	companyAtRule = Rule{
		Name:       "company_at",
		Type:       types.EntityCompanyName,
		Pattern:    regexp.MustCompile(`\bat[ \t]+(` + properWord + `(?:[ \t]+` + properWord + `){0,3})`),
		Group:      1,
		Confidence: 0.75,
	}
	companySeparatorRule = Rule{
		Name:       "company_separator",
		Type:       types.EntityCompanyName,
		Pattern:    regexp.MustCompile(`[|@][ \t]*(` + properWord + `(?:[ \t]+` + properWord + `){0,3})`),
		Group:      1,
		Confidence: 0.7,
	}
)

// Impact rules.
var (
	percentMetricRule = Rule{
		Name:       "percent",
		Type:       types.EntityMetric,
		Pattern:    regexp.MustCompile(`\b\d+(?:\.\d+)?[ \t]?%`),
		Confidence: 0.85,
	}
	currencyMetricRule = Rule{
		Name:       "currency",
		Type:       types.EntityMetric,
		Pattern:    regexp.MustCompile(`\$[ \t]?\d[\d,]*(?:\.\d+)?(?:[ \t]?(?:million|billion)\b|[KMBk]\b)?`),
		Confidence: 0.85,
	}
	countMetricRule = Rule{
		Name:       "count",
		Type:       types.EntityMetric,
		Pattern:    regexp.MustCompile(`\b\d[\d,]*\+?[ \t]+(?:users|customers|clients|people|engineers|employees|members|requests|transactions|downloads|projects|countries|teams|students)\b`),
		Confidence: 0.85,
	}
	multiplierMetricRule = Rule{
		Name:       "multiplier",
		Type:       types.EntityMetric,
		Pattern:    regexp.MustCompile(`\b\d+(?:\.\d+)?x\b`),
		Confidence: 0.85,
	}
	achievementRule = Rule{
		Name:       "quantified_verb",
		Type:       types.EntityAchievement,
		Pattern:    regexp.MustCompile(`(?i)\b(?:increased|reduced|improved|grew|saved|cut|boosted|decreased|raised|generated|accelerated|lowered)\b[^.\n;]{0,60}?` + metricNumber),
		Confidence: 0.75,
	}
)

// Education rules.
var (
	degreeRule = Rule{
		Name: "degree",
		Type: types.EntityDegree,
		Pattern: regexp.MustCompile(`\b(?:Ph\.D\.|M\.B\.A\.|B\.S\.|B\.A\.|M\.S\.|M\.A\.|(?:PhD|MBA|BSc|BS|BA|MSc|MS|MA|BEng|MEng)\b|` +
			`(?:Bachelor|Master|Associate)(?:'s)?(?:[ \t]+(?:of|in)[ \t]+[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*)?|` +
			`Doctor(?:ate)?[ \t]+of[ \t]+[A-Z][a-z]+)`),
		Confidence: 0.9,
	}
	institutionRule = Rule{
		Name:       "institution",
		Type:       types.EntityEducation,
		Pattern:    regexp.MustCompile(`\b(?:` + properWord + `[ \t]+){0,4}` + institution + `(?:[ \t]+(?:of|for|at)(?:[ \t]+` + properWord + `)+)?`),
		Confidence: 0.85,
	}
	abbreviatedInstitutionRule = Rule{
		Name:       "institution_abbrev",
		Type:       types.EntityEducation,
		Pattern:    regexp.MustCompile(`\b(?:[A-Z][A-Za-z&'-]*[ \t]+){1,3}(?:U|Univ\.?)\b`),
		Confidence: 0.8,
	}
)

// Credential rules.
var certificationRule = Rule{
	Name: "certification",
	Type: types.EntityCertification,
	Pattern: regexp.MustCompile(`\b(?:AWS[ \t]+Certified(?:[ \t]+[A-Z][A-Za-z-]*)+|Certified(?:[ \t]+[A-Z][A-Za-z-]*){1,5}|` +
		`(?:PMP|CISSP|CISA|CISM|CPA|CFA|CCNA|CCNP|CKA|CKAD|OSCP)\b|(?:Security|Network|Cloud)\+)`),
	Confidence: 0.85,
}

var metricRules = []Rule{percentMetricRule, currencyMetricRule, countMetricRule, multiplierMetricRule}
