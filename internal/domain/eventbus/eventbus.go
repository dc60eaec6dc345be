package eventbus

import (
	evbus "github.com/asaskevich/EventBus"
)

// Topics published by the image pipeline. Subscribers receive the payload
// types documented next to each topic.
const (
	// TopicSourceDone fires after each source finishes, payload SourceProgress.
	TopicSourceDone = "pipeline.source.done"
	// TopicRunDone fires once per run, payload RunSummary.
	TopicRunDone = "pipeline.run.done"
)

// SourceProgress reports one completed source within a run.
type SourceProgress struct {
	URL       string
	Index     int
	Total     int
	FellBack  bool
	Variants  int
	Fallbacks int
}

// RunSummary totals a completed pipeline run.
type RunSummary struct {
	Total     int
	Processed int
	Failed    int
	Variants  int
}

// New creates a synchronous event bus. The bus is passed to components
// explicitly rather than held in a package singleton.
func New() evbus.Bus {
	return evbus.New()
}
