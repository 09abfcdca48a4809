package extraction

import (
	"maps"

	"github.com/rs/zerolog"

	"github.com/jonathan/resume-entities/internal/metrics"
	"github.com/jonathan/resume-entities/internal/segmentation"
	"github.com/jonathan/resume-entities/internal/types"
)

// Pipeline segments a document and extracts entities section by section.
// A Pipeline holds no per-document state and is safe for concurrent use.
type Pipeline struct {
	segmenter *segmentation.Segmenter
	extractor *Extractor
	logger    zerolog.Logger
	metrics   *metrics.Collector
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSegmenter replaces the default segmenter.
func WithSegmenter(s *segmentation.Segmenter) Option {
	return func(p *Pipeline) { p.segmenter = s }
}

// WithExtractor replaces the default extractor.
func WithExtractor(e *Extractor) Option {
	return func(p *Pipeline) { p.extractor = e }
}

// WithLogger sets the logger used to report failed sections.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics records section and entity counts on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(p *Pipeline) { p.metrics = c }
}

// NewPipeline creates a Pipeline with default segmentation and extraction.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		segmenter: segmentation.New(segmentation.DefaultOptions()),
		extractor: NewExtractor(DefaultOptions()),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of running the pipeline over one document.
type Result struct {
	Data     *types.ExtractedResumeData
	Failures []*SectionError
}

// Partial reports whether any section failed extraction.
func (r *Result) Partial() bool {
	return len(r.Failures) > 0
}

// ExtractEntities segments documentText and extracts entities from every section.
// Section failures are logged and skipped; the returned data is never nil.
func (p *Pipeline) ExtractEntities(documentText string) *types.ExtractedResumeData {
	return p.Run(documentText).Data
}

// Run is ExtractEntities that also reports which sections failed.
func (p *Pipeline) Run(documentText string) *Result {
	sections := p.segmenter.Segment(documentText)
	data := &types.ExtractedResumeData{
		Entities: []types.Entity{},
		Sections: make([]types.Section, 0, len(sections)),
		RawText:  documentText,
	}
	result := &Result{Data: data}

	for _, section := range sections {
		p.metrics.ObserveSection(string(section.Type))

		local, err := p.extractSection(section)
		if err != nil {
			result.Failures = append(result.Failures, err)
			p.metrics.ObserveSectionFailure(string(section.Type))
			p.logger.Warn().
				Err(err.Cause).
				Str("section_id", section.ID).
				Str("section_type", string(section.Type)).
				Str("family", err.Family).
				Msg("section extraction failed, continuing with remaining sections")
			data.Sections = append(data.Sections, section)
			continue
		}

		section.Entities = make([]types.Entity, 0, len(local))
		for _, e := range local {
			global := toDocument(e, section)
			section.Entities = append(section.Entities, global)
			data.Entities = append(data.Entities, global)
			p.metrics.ObserveEntity(string(global.Type))
		}
		data.Sections = append(data.Sections, section)
	}

	p.logger.Debug().
		Int("sections", len(data.Sections)).
		Int("entities", len(data.Entities)).
		Int("failed_sections", len(result.Failures)).
		Msg("document extraction complete")

	return result
}

// extractSection runs the section's rule family, converting errors and panics into a
// SectionError so one bad section cannot abort the document.
func (p *Pipeline) extractSection(section types.Section) (entities []types.Entity, sectionErr *SectionError) {
	family := p.extractor.Registry().Lookup(section.Type).Name()
	defer func() {
		if r := recover(); r != nil {
			entities = nil
			sectionErr = &SectionError{
				SectionID:   section.ID,
				SectionType: section.Type,
				Family:      family,
				Cause:       &PanicError{Value: r},
			}
		}
	}()

	found, err := p.extractor.ExtractEntities(section.Content, section.Type)
	if err != nil {
		return nil, &SectionError{
			SectionID:   section.ID,
			SectionType: section.Type,
			Family:      family,
			Cause:       err,
		}
	}
	return found, nil
}

// toDocument converts a content-relative entity into a document-relative one tagged with
// its owning section.
func toDocument(local types.Entity, section types.Section) types.Entity {
	global := local
	global.Position = local.Position.Shift(section.ContentOffset)
	global.Metadata = make(map[string]string, len(local.Metadata)+2)
	maps.Copy(global.Metadata, local.Metadata)
	global.Metadata[types.MetaSectionID] = section.ID
	global.Metadata[types.MetaSectionType] = string(section.Type)
	return global
}
