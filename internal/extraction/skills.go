package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-entities/internal/segmentation"
	"github.com/jonathan/resume-entities/internal/types"
)

const (
	// DefaultSkillItemMinLength and DefaultSkillItemMaxLength bound, exclusively, the trimmed
	// length of a list item accepted as a skill.
	DefaultSkillItemMinLength = 2
	DefaultSkillItemMaxLength = 30

	skillDictionaryConfidence = 0.85
	skillHeuristicConfidence  = 0.7
)

// knownSkills are matched verbatim as whole terms. Terms shorter than four characters are
// matched case-sensitively so "Go" does not match the verb "go".
var knownSkills = []string{
	"Go", "Golang", "Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "Rust",
	"Kotlin", "Swift", "PHP", "Scala", "SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka",
	"RabbitMQ", "Docker", "Kubernetes", "AWS", "GCP", "Azure", "Terraform", "Ansible", "React",
	"Angular", "Vue", "Node.js", "Django", "Flask", "Spring", "GraphQL", "REST", "gRPC", "Linux",
	"Git", "CI/CD", "Jenkins", "Spark", "Hadoop", "Airflow", "TensorFlow", "PyTorch", "Pandas",
	"Excel", "Tableau", "Figma", "HTML", "CSS", "Elasticsearch", "Prometheus", "Grafana",
}

type skillTerm struct {
	name  string
	regex *regexp.Regexp
}

var skillTerms = compileSkillTerms(knownSkills)

func compileSkillTerms(names []string) []skillTerm {
	terms := make([]skillTerm, 0, len(names))
	for _, name := range names {
		pattern := regexp.QuoteMeta(name)
		if len(name) >= 4 {
			pattern = `(?i)` + pattern
		}
		terms = append(terms, skillTerm{name: name, regex: regexp.MustCompile(pattern)})
	}
	return terms
}

// matchKnownSkills finds dictionary terms that stand alone as words.
func matchKnownSkills(text string) []types.Entity {
	var entities []types.Entity
	for _, term := range skillTerms {
		for _, loc := range term.regex.FindAllStringIndex(text, -1) {
			if !boundedAt(text, loc[0], loc[1]) {
				continue
			}
			entities = append(entities, newEntity(types.EntitySkill, text, loc[0], loc[1], skillDictionaryConfidence, "skill_dictionary"))
		}
	}
	return entities
}

// line is a line of text with its offset.
type line struct {
	text   string
	offset int
}

func splitLines(text string) []line {
	var lines []line
	offset := 0
	for _, raw := range strings.SplitAfter(text, "\n") {
		if raw == "" {
			continue
		}
		lines = append(lines, line{text: strings.TrimRight(raw, "\r\n"), offset: offset})
		offset += len(raw)
	}
	return lines
}

// trimSpan trims surrounding whitespace from text[start:end] and returns the narrowed span.
func trimSpan(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

var itemSeparator = regexp.MustCompile(`[,;|•·]`)

// skillHeuristics holds the item length bounds for the structural skill matchers.
type skillHeuristics struct {
	minLen int
	maxLen int
}

func (h skillHeuristics) accept(item string) bool {
	n := utf8.RuneCountInString(item)
	return n > h.minLen && n < h.maxLen
}

// listItems treats every delimited item on a non-bullet line as a candidate skill.
// A short "Label:" prefix is skipped so "Languages: Go, Rust" yields only the items.
func (h skillHeuristics) listItems(text string) []types.Entity {
	var entities []types.Entity
	for _, ln := range splitLines(text) {
		if segmentation.HasListMarker(ln.text) {
			continue
		}
		body, bodyOffset := ln.text, ln.offset
		if idx := strings.Index(body, ":"); idx >= 0 && idx < h.maxLen {
			body, bodyOffset = body[idx+1:], ln.offset+idx+1
		}
		if !itemSeparator.MatchString(body) {
			continue
		}

		cursor := 0
		bounds := append(itemSeparator.FindAllStringIndex(body, -1), []int{len(body), len(body)})
		for _, sep := range bounds {
			start, end := trimSpan(body, cursor, sep[0])
			cursor = sep[1]
			if start >= end || !h.accept(body[start:end]) {
				continue
			}
			entities = append(entities, newEntity(types.EntitySkill, text, bodyOffset+start, bodyOffset+end, skillHeuristicConfidence, "skill_list_item"))
		}
	}
	return entities
}

// bulletItems treats each bullet or numbered line as a candidate skill when it is short
// enough not to be a sentence.
func (h skillHeuristics) bulletItems(text string) []types.Entity {
	var entities []types.Entity
	for _, ln := range splitLines(text) {
		markerLen := segmentation.ListMarkerLen(ln.text)
		if markerLen == 0 {
			continue
		}
		start, end := trimSpan(ln.text, markerLen, len(ln.text))
		if start >= end || !h.accept(ln.text[start:end]) {
			continue
		}
		entities = append(entities, newEntity(types.EntitySkill, text, ln.offset+start, ln.offset+end, skillHeuristicConfidence, "skill_bullet"))
	}
	return entities
}
