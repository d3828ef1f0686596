package digest

import "time"

// Candidate is one raw feed entry normalized by the collector.
// Published is already converted to the local zone; nil means the feed
// carried no usable timestamp.
type Candidate struct {
	Topic     string
	Title     string
	URL       string
	Published *time.Time
}

// Item is a candidate that survived filtering and was enriched with a
// summary. Items are never mutated after the pipeline emits them.
type Item struct {
	Topic         string
	Title         string
	URL           string
	Summary       string
	Published     *time.Time
	PublishedHHMM string // zero-padded local "HH:MM", empty if unknown
	IsBreaking    bool
}

// TopicCandidates groups one topic's candidates in feed order.
type TopicCandidates struct {
	Topic      string
	Candidates []Candidate
}

// Section is one topic's emitted items, in feed order. Topics with no
// surviving items still get a Section so the renderer can decide what
// to do with them.
type Section struct {
	Topic string
	Items []Item
}

// Result is the pipeline output: sections in configured topic order plus
// the flattened list (topic-major, then feed order) used for highlights.
type Result struct {
	Sections []Section
	Flat     []Item
}
