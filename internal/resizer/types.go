package resizer

import "path/filepath"

// ConflictPolicy decides what happens when the derived output name already
// exists in the output directory.
type ConflictPolicy int

const (
	// ConflictOverwrite replaces the existing file.
	ConflictOverwrite ConflictPolicy = iota
	// ConflictRename keeps the existing file and writes "<name> - dupN<ext>".
	ConflictRename
)

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictRename:
		return "rename"
	default:
		return "overwrite"
	}
}

// Request is one run's input, built when the run is triggered.
type Request struct {
	SourceDir string
	OutputDir string
	Scale     Scale
	Conflict  ConflictPolicy
}

// ResolvedOutputDir falls back to the source directory when no output
// directory was given.
func (r Request) ResolvedOutputDir() string {
	if r.OutputDir != "" {
		return r.OutputDir
	}
	return r.SourceDir
}

// Candidate is one immediate entry of the source directory.
type Candidate struct {
	Name string
	Path string
	Ext  string
}

func newCandidate(dir, name string) Candidate {
	return Candidate{
		Name: name,
		Path: filepath.Join(dir, name),
		Ext:  filepath.Ext(name),
	}
}

// Outcome classifies a candidate. Every candidate gets exactly one.
type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeSkippedUnsupported
	OutcomeSkippedUnrecognized
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomeSkippedUnsupported:
		return "skipped-unsupported"
	case OutcomeSkippedUnrecognized:
		return "skipped-unrecognized"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Skipped reports whether the outcome counts towards the skipped total.
func (o Outcome) Skipped() bool {
	return o == OutcomeSkippedUnsupported || o == OutcomeSkippedUnrecognized
}

type Result struct {
	Candidate
	Outcome    Outcome
	OutputName string
	Width      int
	Height     int
	NewWidth   int
	NewHeight  int
	Err        error
}

type Summary struct {
	Processed int
	Skipped   int
	Errors    int
}

// Total is the number of candidates examined.
func (s Summary) Total() int {
	return s.Processed + s.Skipped + s.Errors
}

func (s *Summary) add(o Outcome) {
	switch {
	case o == OutcomeProcessed:
		s.Processed++
	case o.Skipped():
		s.Skipped++
	default:
		s.Errors++
	}
}

type EventKind int

const (
	// EventStart is emitted once before the first candidate; Entries is set.
	EventStart EventKind = iota
	// EventInfo is a free-form status line.
	EventInfo
	// EventFile carries a per-file Result.
	EventFile
	// EventDone is emitted once, after the summary lines.
	EventDone
)

// Event is one entry of the status stream.
type Event struct {
	Kind    EventKind
	Message string
	Result  *Result
	Summary *Summary
	Entries int
}

// Sink receives status events in emission order, always from the goroutine
// running the pipeline.
type Sink func(Event)

// ChannelSink forwards events to ch. The caller owns and closes ch.
func ChannelSink(ch chan<- Event) Sink {
	return func(ev Event) {
		ch <- ev
	}
}

// LineSink forwards only the message text.
func LineSink(fn func(string)) Sink {
	return func(ev Event) {
		if ev.Message != "" {
			fn(ev.Message)
		}
	}
}
