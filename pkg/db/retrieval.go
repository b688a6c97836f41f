package db

import (
	v1 "github.com/byxorna/doclib/pkg/types/v1"
)

// Phase is the high level state of a retrieval cycle.
type Phase int

const (
	Idle Phase = iota
	Loading
	Loaded
	Failed
)

func (p Phase) String() string {
	return map[Phase]string{
		Idle:    "idle",
		Loading: "loading",
		Loaded:  "loaded",
		Failed:  "failed",
	}[p]
}

// Ticket identifies one in-flight retrieval cycle.
type Ticket struct {
	Seq    uint64
	Target v1.CollectionTarget
}

// State is a snapshot of a Retrieval. Documents is only set when Loaded,
// Message only when Failed.
type State struct {
	Phase     Phase
	Target    v1.CollectionTarget
	Seq       uint64
	Documents []v1.Document
	Message   string
}

// Retrieval owns the retrieval state of one viewer. It is the only writer of
// that state; callers read snapshots through State. Only the most recently
// issued Ticket may commit a result.
type Retrieval struct {
	target    v1.CollectionTarget
	seq       uint64
	phase     Phase
	documents []v1.Document
	message   string
}

// NewRetrieval starts Idle for the given (defaulted) target.
func NewRetrieval(target v1.CollectionTarget) *Retrieval {
	return &Retrieval{target: target.OrDefault(), phase: Idle}
}

// Refresh moves to Loading from any phase and returns the ticket the result
// must be committed with. Earlier tickets become stale.
func (r *Retrieval) Refresh() Ticket {
	r.seq++
	r.phase = Loading
	r.documents = nil
	r.message = ""
	return Ticket{Seq: r.seq, Target: r.target}
}

// Reconfigure switches the collection. When it differs from the current one
// the state is invalidated and a new cycle begins.
func (r *Retrieval) Reconfigure(target v1.CollectionTarget) (Ticket, bool) {
	target = target.OrDefault()
	if target == r.target {
		return Ticket{}, false
	}
	r.target = target
	return r.Refresh(), true
}

// Current reports whether t is the latest ticket and still awaiting a result.
func (r *Retrieval) Current(t Ticket) bool {
	return t.Seq == r.seq && r.phase == Loading
}

// Resolve commits docs as Loaded. Stale tickets are ignored and report false.
func (r *Retrieval) Resolve(t Ticket, docs []v1.Document) bool {
	if !r.Current(t) {
		return false
	}
	if docs == nil {
		docs = []v1.Document{}
	}
	r.phase = Loaded
	r.documents = docs
	r.message = ""
	return true
}

// Reject commits err as Failed. Stale tickets are ignored and report false.
func (r *Retrieval) Reject(t Ticket, err error) bool {
	if !r.Current(t) {
		return false
	}
	r.phase = Failed
	r.documents = nil
	r.message = "unknown error"
	if err != nil {
		r.message = err.Error()
	}
	return true
}

// State returns a snapshot that does not alias the owned document slice.
func (r *Retrieval) State() State {
	s := State{
		Phase:   r.phase,
		Target:  r.target,
		Seq:     r.seq,
		Message: r.message,
	}
	if r.phase == Loaded {
		s.Documents = make([]v1.Document, len(r.documents))
		copy(s.Documents, r.documents)
	}
	return s
}
