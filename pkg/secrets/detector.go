package secrets

import "sort"

// Detection is one matched occurrence of a pattern in scanned text.
// Offsets are a half-open byte interval into the original text.
type Detection struct {
	// Pattern is the name of the pattern that matched.
	Pattern string `json:"pattern"`

	// Match is the matched text. It is never serialized: audit and
	// reporting paths must only see pattern names and offsets.
	Match string `json:"-"`

	// Start is the inclusive start offset.
	Start int `json:"start"`

	// End is the exclusive end offset.
	End int `json:"end"`
}

// Detector scans text against a Registry's active pattern set. Detect
// and HasSecrets are pure functions over immutable compiled patterns,
// so a single Detector is safe for concurrent use from multiple hooks.
type Detector struct {
	registry *Registry
}

// NewDetector returns a Detector over the given registry.
func NewDetector(registry *Registry) *Detector {
	return &Detector{registry: registry}
}

// Registry returns the pattern registry backing this detector.
func (d *Detector) Registry() *Registry {
	return d.registry
}

// Detect returns every match of every active pattern in text, sorted
// ascending by start offset with ties broken by pattern registration
// order. Matches of one pattern are non-overlapping; matches of
// different patterns are not deduplicated, so two patterns covering
// overlapping spans yield two detections.
func (d *Detector) Detect(text string) []Detection {
	if text == "" {
		return nil
	}

	var out []Detection
	for _, p := range d.registry.active {
		for _, m := range p.re.FindAllStringIndex(text, -1) {
			out = append(out, Detection{
				Pattern: p.Name,
				Match:   text[m[0]:m[1]],
				Start:   m[0],
				End:     m[1],
			})
		}
	}

	// Stable sort keeps registration order for equal start offsets.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// HasSecrets reports whether any active pattern matches text. It
// short-circuits on the first match without building a detection list.
func (d *Detector) HasSecrets(text string) bool {
	if text == "" {
		return false
	}
	for _, p := range d.registry.active {
		if p.re.MatchString(text) {
			return true
		}
	}
	return false
}

// PatternNames returns the deduplicated pattern names from detections,
// in first-seen order.
func PatternNames(detections []Detection) []string {
	seen := make(map[string]struct{}, len(detections))
	var names []string
	for _, det := range detections {
		if _, ok := seen[det.Pattern]; ok {
			continue
		}
		seen[det.Pattern] = struct{}{}
		names = append(names, det.Pattern)
	}
	return names
}
