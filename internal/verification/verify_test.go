package verification

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-entities/internal/extraction"
	"github.com/jonathan/resume-entities/internal/metrics"
	"github.com/jonathan/resume-entities/internal/types"
)

func entity(t types.EntityType, value string) types.Entity {
	return types.Entity{Type: t, Value: value, Confidence: 0.9, Position: types.Position{Start: 0, End: len(value)}}
}

func TestVerify_ExactPreservation(t *testing.T) {
	original := []types.Entity{entity(types.EntityCompanyName, "Acme Corp")}

	result := Verify(original, "I worked at Acme Corp as a platform lead.")

	assert.True(t, result.Preserved)
	assert.Empty(t, result.MissingEntities)
	assert.Empty(t, result.ModifiedEntities)
	assert.Equal(t, "All critical details were preserved", result.Summary())
}

func TestVerify_FuzzyModification(t *testing.T) {
	original := []types.Entity{entity(types.EntityJobTitle, "Senior Software Engineer")}

	tests := []struct {
		name      string
		candidate string
	}{
		{
			name:      "short candidate",
			candidate: "Promoted to Senior Engineer (Software) in 2021.",
		},
		{
			name: "phrase deep inside a long candidate",
			candidate: "Led the migration of the billing platform to a new provider. " +
				"Later served as Senior Engineer (Software) for the payments team.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Verify(original, tt.candidate)

			assert.True(t, result.Preserved)
			assert.Empty(t, result.MissingEntities)
			require.Len(t, result.ModifiedEntities, 1)
			assert.Equal(t, original[0], result.ModifiedEntities[0].Original)
			assert.Equal(t, "Senior Engineer (Software", result.ModifiedEntities[0].Modified)
			assert.Equal(t, "1 details may have been modified", result.Summary())
		})
	}
}

func TestVerify_MissingEntity(t *testing.T) {
	original := []types.Entity{entity(types.EntityMetric, "increased revenue 30%")}

	tests := []struct {
		name      string
		candidate string
	}{
		{name: "no overlap", candidate: "Led a team of five engineers."},
		{name: "one of three tokens", candidate: "Revenue grew by 10 percent."},
		{name: "two of three tokens is below threshold", candidate: "Increased revenue by 12%."},
		{name: "empty candidate", candidate: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Verify(original, tt.candidate)

			assert.False(t, result.Preserved)
			require.Len(t, result.MissingEntities, 1)
			assert.Equal(t, original[0], result.MissingEntities[0])
			assert.Empty(t, result.ModifiedEntities)
			assert.Equal(t, "1 critical details may have been lost", result.Summary())
		})
	}
}

func TestVerify_TokensSplitAcrossWindowsAreMissing(t *testing.T) {
	original := []types.Entity{entity(types.EntityJobTitle, "Staff Platform Engineer")}
	candidate := "Staff" + strings.Repeat(" filler", 20) + " Platform" + strings.Repeat(" filler", 20) + " Engineer"

	result := Verify(original, candidate)
	assert.False(t, result.Preserved)
	assert.Len(t, result.MissingEntities, 1)
}

func TestVerify_SingleTokenEntities(t *testing.T) {
	original := []types.Entity{entity(types.EntityDegree, "MBA")}

	t.Run("verbatim is preserved", func(t *testing.T) {
		result := Verify(original, "MBA, 2015")
		assert.True(t, result.Preserved)
		assert.Empty(t, result.ModifiedEntities)
	})

	t.Run("exact match only by default", func(t *testing.T) {
		result := Verify(original, "Holds an mba from a state school.")
		assert.False(t, result.Preserved)
		assert.Len(t, result.MissingEntities, 1)
	})

	t.Run("fuzzy when enabled", func(t *testing.T) {
		opts := DefaultOptions()
		opts.SingleTokenFuzzy = true
		result := New(opts).Verify(original, "Holds an mba from a state school.")

		assert.True(t, result.Preserved)
		require.Len(t, result.ModifiedEntities, 1)
		assert.Equal(t, "mba", result.ModifiedEntities[0].Modified)
	})

	t.Run("trailing punctuation is not a second token", func(t *testing.T) {
		result := Verify([]types.Entity{entity(types.EntityCompanyName, "Globex,")}, "Globex Inc")
		assert.False(t, result.Preserved)
	})
}

func TestVerify_FirstQualifyingWindowWins(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		candidate string
		want      string
	}{
		{
			name:      "equal windows",
			value:     "Senior Engineer",
			candidate: "senior engineer" + strings.Repeat(".", 80) + "SENIOR ENGINEER",
			want:      "senior engineer",
		},
		{
			name:      "later window scores higher",
			value:     "Senior Staff Software Engineer",
			candidate: "Senior Staff Engineer role" + strings.Repeat(".", 80) + "Senior Staff Software-Engineer",
			want:      "Senior Staff Engineer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Verify([]types.Entity{entity(types.EntityJobTitle, tt.value)}, tt.candidate)
			require.Len(t, result.ModifiedEntities, 1)
			assert.Equal(t, tt.want, result.ModifiedEntities[0].Modified)
			assert.True(t, result.Preserved)
		})
	}
}

func TestVerify_NonCriticalIgnored(t *testing.T) {
	original := []types.Entity{
		entity(types.EntitySkill, "Kubernetes"),
		entity(types.EntityWebsite, "https://example.com/jane"),
		entity(types.EntityEmail, "jane@example.com"),
		entity(types.EntityPhone, "(415) 555-0100"),
		entity(types.EntityLocation, "San Francisco, CA"),
		entity(types.EntityAchievement, "Cut costs by 20%"),
	}

	result := Verify(original, "A completely different document.")
	assert.True(t, result.Preserved)
	assert.Empty(t, result.MissingEntities)
	assert.Empty(t, result.ModifiedEntities)
}

func TestVerify_MixedSummary(t *testing.T) {
	original := []types.Entity{
		entity(types.EntityCompanyName, "Acme Corp"),
		entity(types.EntityJobTitle, "Senior Software Engineer"),
		entity(types.EntityDateRange, "Jan 2019 - Present"),
		entity(types.EntityMetric, "40% faster builds"),
	}

	result := Verify(original, "Senior Engineer (Software) at Acme Corp since 2019.")

	assert.False(t, result.Preserved)
	assert.Len(t, result.ModifiedEntities, 1)
	assert.Len(t, result.MissingEntities, 2)
	assert.Equal(t, "1 details may have been modified / 2 critical details may have been lost", result.Summary())
}

func TestVerify_Totality(t *testing.T) {
	original := []types.Entity{
		entity(types.EntityPersonName, "Jane Doe"),
		entity(types.EntityCompanyName, "Acme Corp"),
		entity(types.EntityJobTitle, "Senior Software Engineer"),
		entity(types.EntityDate, "2019"),
		entity(types.EntityDateRange, "Jan 2019 - Present"),
		entity(types.EntityEducation, "State University"),
		entity(types.EntityDegree, "BS"),
		entity(types.EntityCertification, "Certified Kubernetes Administrator"),
		entity(types.EntityMetric, "30%"),
		entity(types.EntitySkill, "Go"),
	}
	candidates := []string{
		"",
		"Jane Doe",
		"Jane Doe, Senior Engineer (Software) at ACME CORP, 2019 to now. BS from State U.",
		"Certified Administrator (Kubernetes). Grew revenue 30%. Jan 2019 - Present.",
		strings.Repeat("x", 500),
	}

	for _, candidate := range candidates {
		result := Verify(original, candidate)

		assert.Equal(t, len(result.MissingEntities) == 0, result.Preserved)
		for _, m := range result.ModifiedEntities {
			for _, missing := range result.MissingEntities {
				assert.False(t, m.Original.SameAs(missing) && m.Original.Value == missing.Value,
					"%q both missing and modified", missing.Value)
			}
		}
		assert.LessOrEqual(t, len(result.MissingEntities)+len(result.ModifiedEntities), len(original)-1)
	}
}

func TestVerify_ExtractedDocumentVerifiesAgainstItself(t *testing.T) {
	doc := `Jane Doe
jane.doe@example.com | (415) 555-0100

EXPERIENCE
Senior Software Engineer at Acme Corp, Jan 2019 - Present
• Increased revenue by 30% through pricing experiments

EDUCATION
BS Computer Science, State University, 2018
`
	data := extraction.NewPipeline().ExtractEntities(doc)
	require.NotEmpty(t, data.CriticalEntities())

	result := Verify(data.Entities, doc)
	assert.True(t, result.Preserved)
	assert.Empty(t, result.MissingEntities)
	assert.Empty(t, result.ModifiedEntities)
}

func TestVerifier_LogsAndMetrics(t *testing.T) {
	var logs bytes.Buffer
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	v := New(DefaultOptions(), WithLogger(zerolog.New(&logs)), WithMetrics(collector))
	v.Verify([]types.Entity{entity(types.EntityMetric, "increased revenue 30%")}, "nothing here")

	assert.Contains(t, logs.String(), "verification complete")
	assert.Contains(t, logs.String(), `"missing":1`)

	count, err := testutil.GatherAndCount(reg, "resume_entities_verifications_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_FallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want Options
	}{
		{name: "zero", opts: Options{}, want: DefaultOptions()},
		{
			name: "step larger than window",
			opts: Options{WindowSize: 20, WindowStep: 40, MatchThreshold: 0.5},
			want: Options{WindowSize: 20, WindowStep: 20, MatchThreshold: 0.5},
		},
		{
			name: "threshold above one",
			opts: Options{WindowSize: 80, WindowStep: 10, MatchThreshold: 1.5, SingleTokenFuzzy: true},
			want: Options{WindowSize: 80, WindowStep: 10, MatchThreshold: 0.7, SingleTokenFuzzy: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.opts).opts)
		})
	}
}
