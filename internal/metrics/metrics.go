// Package metrics exposes Prometheus counters for segmentation, extraction and verification.
// Collectors are registered on a caller-supplied registerer; nothing is registered globally.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resume_entities"

// Collector groups the engine's counters. A nil *Collector is valid and records nothing.
type Collector struct {
	sections        *prometheus.CounterVec
	entities        *prometheus.CounterVec
	sectionFailures *prometheus.CounterVec
	verifications   *prometheus.CounterVec
	missing         prometheus.Counter
	modified        prometheus.Counter
}

// NewCollector creates the counters and registers them on reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		sections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sections_total",
			Help:      "Sections produced by segmentation, by section type.",
		}, []string{"section_type"}),
		entities: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_total",
			Help:      "Entities extracted, by entity type.",
		}, []string{"entity_type"}),
		sectionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "section_failures_total",
			Help:      "Sections whose rule family failed, by section type.",
		}, []string{"section_type"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Preservation verifications, by outcome.",
		}, []string{"outcome"}),
		missing: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_missing_total",
			Help:      "Critical entities reported missing by verification.",
		}),
		modified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_modified_total",
			Help:      "Critical entities reported modified by verification.",
		}),
	}

	for _, col := range []prometheus.Collector{c.sections, c.entities, c.sectionFailures, c.verifications, c.missing, c.modified} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metrics collector: %w", err)
		}
	}
	return c, nil
}

// Outcome labels for verifications_total.
const (
	OutcomePreserved = "preserved"
	OutcomeModified  = "modified"
	OutcomeLost      = "lost"
)

// ObserveSection counts one segmented section.
func (c *Collector) ObserveSection(sectionType string) {
	if c == nil {
		return
	}
	c.sections.WithLabelValues(sectionType).Inc()
}

// ObserveEntity counts one extracted entity.
func (c *Collector) ObserveEntity(entityType string) {
	if c == nil {
		return
	}
	c.entities.WithLabelValues(entityType).Inc()
}

// ObserveSectionFailure counts one failed section extraction.
func (c *Collector) ObserveSectionFailure(sectionType string) {
	if c == nil {
		return
	}
	c.sectionFailures.WithLabelValues(sectionType).Inc()
}

// ObserveVerification counts one verification and its missing and modified entities.
func (c *Collector) ObserveVerification(missing, modified int) {
	if c == nil {
		return
	}
	outcome := OutcomePreserved
	switch {
	case missing > 0:
		outcome = OutcomeLost
	case modified > 0:
		outcome = OutcomeModified
	}
	c.verifications.WithLabelValues(outcome).Inc()
	c.missing.Add(float64(missing))
	c.modified.Add(float64(modified))
}
