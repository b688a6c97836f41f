package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/byxorna/doclib/pkg/db"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	tea "github.com/charmbracelet/bubbletea"
)

// RetrievedMsg carries the normalized documents of one retrieval cycle.
type RetrievedMsg struct {
	Ticket    db.Ticket
	Documents []v1.Document
}

// RetrievalFailedMsg carries the failure of one retrieval cycle.
type RetrievalFailedMsg struct {
	Ticket db.Ticket
	Err    error
}

// OpenedMsg reports that a document was handed to the opener.
type OpenedMsg struct {
	Document v1.Document
	Err      error
}

// ActionDoneMsg reports the outcome of the custom action. Document is nil
// when the action was triggered from the toolbar.
type ActionDoneMsg struct {
	Document *v1.Document
	Notice   string
	Err      error
}

// Dispatcher turns commands into effects. Only Refresh touches retrieval
// state, and only through the Retrieval it is handed.
type Dispatcher struct {
	Backend    db.Backend
	Normalizer db.Normalizer
	Opener     Opener
	Action     Action
	// Timeout bounds one retrieval cycle. Zero disables it.
	Timeout time.Duration
}

func (d *Dispatcher) Dispatch(cmd v1.Command, r *db.Retrieval) tea.Cmd {
	switch cmd.Kind {
	case v1.RefreshCommand:
		return d.Retrieve(r.Refresh())
	case v1.OpenCommand:
		if cmd.Document == nil {
			log.Printf("ignoring open without a document")
			return nil
		}
		return d.Open(*cmd.Document)
	case v1.CustomActionCommand:
		return d.CustomAction(cmd.Document)
	}
	log.Printf("ignoring unknown command %s", cmd.Kind)
	return nil
}

// Reconfigure points r at target and starts a cycle if that changed anything.
func (d *Dispatcher) Reconfigure(target v1.CollectionTarget, r *db.Retrieval) tea.Cmd {
	ticket, changed := r.Reconfigure(target)
	if !changed {
		return nil
	}
	return d.Retrieve(ticket)
}

// Retrieve runs one query for ticket. The result is applied by whoever owns
// the Retrieval, which drops it if the ticket has gone stale meanwhile.
func (d *Dispatcher) Retrieve(ticket db.Ticket) tea.Cmd {
	backend, normalizer, timeout := d.Backend, d.Normalizer, d.Timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		raws, err := backend.FetchDocuments(ctx, ticket.Target)
		if err != nil {
			if timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
				err = &db.NetworkError{Err: fmt.Errorf("Error fetching documents: timed out after %s: %w", timeout, err)}
			}
			log.Printf("retrieval %d of %s failed after %s: %v", ticket.Seq, ticket.Target, time.Since(start), err)
			return RetrievalFailedMsg{Ticket: ticket, Err: db.AsNetworkError(err)}
		}
		log.Printf("retrieval %d of %s got %d records in %s", ticket.Seq, ticket.Target, len(raws), time.Since(start))
		return RetrievedMsg{Ticket: ticket, Documents: normalizer.NormalizeAll(raws)}
	}
}

func (d *Dispatcher) Open(doc v1.Document) tea.Cmd {
	opener := d.Opener
	return func() tea.Msg {
		if opener == nil {
			return OpenedMsg{Document: doc, Err: ErrNoOpener}
		}
		err := opener.Open(context.Background(), doc.Path)
		if err != nil {
			log.Printf("open %s: %v", doc.Path, err)
		}
		return OpenedMsg{Document: doc, Err: err}
	}
}

func (d *Dispatcher) CustomAction(doc *v1.Document) tea.Cmd {
	action := d.Action
	if doc != nil {
		c := *doc
		doc = &c
	}
	return func() tea.Msg {
		if action == nil {
			return ActionDoneMsg{Document: doc, Err: ErrNoAction}
		}
		notice, err := action.Invoke(context.Background(), doc)
		if err != nil {
			log.Printf("custom action: %v", err)
		}
		return ActionDoneMsg{Document: doc, Notice: notice, Err: err}
	}
}
