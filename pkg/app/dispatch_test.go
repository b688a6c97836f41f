package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/byxorna/doclib/pkg/db"
	v1 "github.com/byxorna/doclib/pkg/types/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu      sync.Mutex
	targets []v1.CollectionTarget
	records map[v1.CollectionTarget][]v1.RawRecord
	err     error
}

func (f *fakeBackend) FetchDocuments(ctx context.Context, target v1.CollectionTarget) ([]v1.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targets = append(f.targets, target)
	if f.err != nil {
		return nil, f.err
	}
	return f.records[target], nil
}

type recordingOpener struct {
	paths []string
	err   error
}

func (o *recordingOpener) Open(ctx context.Context, path string) error {
	o.paths = append(o.paths, path)
	return o.err
}

func record(id, name string) v1.RawRecord {
	return v1.RawRecord{
		ID:          v1.ID(id),
		Title:       "T" + id,
		FileLeafRef: name,
		Modified:    "2024-03-01T10:00:00Z",
		FileRef:     "/sites/Team/Documents/" + name,
		Editor:      &v1.Editor{Title: "Ann Lee"},
	}
}

// apply folds a dispatcher message back into r the way the model does
func apply(t *testing.T, r *db.Retrieval, msg interface{}) bool {
	t.Helper()
	switch m := msg.(type) {
	case RetrievedMsg:
		return r.Resolve(m.Ticket, m.Documents)
	case RetrievalFailedMsg:
		return r.Reject(m.Ticket, m.Err)
	}
	t.Fatalf("unexpected message %T", msg)
	return false
}

func TestDispatchRefresh(t *testing.T) {
	backend := &fakeBackend{records: map[v1.CollectionTarget][]v1.RawRecord{
		"Documents": {record("2", "b.docx"), record("1", "a.pdf")},
	}}
	d := &Dispatcher{Backend: backend, Normalizer: db.Normalizer{Location: time.UTC}}
	r := db.NewRetrieval("")

	cmd := d.Dispatch(v1.Refresh(), r)
	require.NotNil(t, cmd)
	assert.Equal(t, db.Loading, r.State().Phase)

	assert.True(t, apply(t, r, cmd()))
	s := r.State()
	assert.Equal(t, db.Loaded, s.Phase)
	require.Len(t, s.Documents, 2)
	assert.Equal(t, "b.docx", s.Documents[0].Name)
	assert.Equal(t, "3/1/2024", s.Documents[0].ModifiedAt)
	assert.Equal(t, []v1.CollectionTarget{"Documents"}, backend.targets)
}

func TestDispatchRefreshFailure(t *testing.T) {
	backend := &fakeBackend{err: db.NewStatusError(403, "")}
	d := &Dispatcher{Backend: backend}
	r := db.NewRetrieval("Documents")

	msg := d.Dispatch(v1.Refresh(), r)()
	failed, ok := msg.(RetrievalFailedMsg)
	require.True(t, ok)
	assert.NotNil(t, db.AsNetworkError(failed.Err))
	assert.True(t, apply(t, r, msg))
	assert.Equal(t, db.Failed, r.State().Phase)
	assert.Equal(t, "Error fetching documents: Forbidden", r.State().Message)
}

func TestDispatchStaleResponseIsDiscarded(t *testing.T) {
	backend := &fakeBackend{records: map[v1.CollectionTarget][]v1.RawRecord{
		"Documents": {record("1", "a.pdf")},
	}}
	d := &Dispatcher{Backend: backend}
	r := db.NewRetrieval("Documents")

	first := d.Dispatch(v1.Refresh(), r)
	second := d.Dispatch(v1.Refresh(), r)

	secondMsg := second()
	backend.records["Documents"] = []v1.RawRecord{record("9", "old.pdf")}
	firstMsg := first()

	assert.True(t, apply(t, r, secondMsg))
	assert.False(t, apply(t, r, firstMsg))
	s := r.State()
	require.Len(t, s.Documents, 1)
	assert.Equal(t, "a.pdf", s.Documents[0].Name)
}

func TestDispatchTimeout(t *testing.T) {
	backend := db.BackendFunc(func(ctx context.Context, target v1.CollectionTarget) ([]v1.RawRecord, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	d := &Dispatcher{Backend: backend, Timeout: 10 * time.Millisecond}
	r := db.NewRetrieval("Documents")

	msg := d.Dispatch(v1.Refresh(), r)()
	failed, ok := msg.(RetrievalFailedMsg)
	require.True(t, ok)
	assert.True(t, errors.Is(failed.Err, context.DeadlineExceeded))
	assert.Contains(t, failed.Err.Error(), "timed out")
}

func TestDispatchReconfigure(t *testing.T) {
	backend := &fakeBackend{records: map[v1.CollectionTarget][]v1.RawRecord{}}
	d := &Dispatcher{Backend: backend}
	r := db.NewRetrieval("Documents")
	apply(t, r, d.Dispatch(v1.Refresh(), r)())

	assert.Nil(t, d.Reconfigure("Documents", r))
	assert.Equal(t, db.Loaded, r.State().Phase)

	cmd := d.Reconfigure("Contracts", r)
	require.NotNil(t, cmd)
	assert.Equal(t, db.Loading, r.State().Phase)
	apply(t, r, cmd())
	assert.Equal(t, []v1.CollectionTarget{"Documents", "Contracts"}, backend.targets)
}

func TestDispatchOpenDoesNotTouchState(t *testing.T) {
	backend := &fakeBackend{records: map[v1.CollectionTarget][]v1.RawRecord{
		"Documents": {record("1", "a.pdf")},
	}}
	opener := &recordingOpener{}
	d := &Dispatcher{Backend: backend, Opener: opener}
	r := db.NewRetrieval("Documents")
	apply(t, r, d.Dispatch(v1.Refresh(), r)())
	before := r.State()

	doc := before.Documents[0]
	msg := d.Dispatch(v1.Open(doc), r)()
	opened, ok := msg.(OpenedMsg)
	require.True(t, ok)
	assert.NoError(t, opened.Err)
	assert.Equal(t, []string{"/sites/Team/Documents/a.pdf"}, opener.paths)
	assert.Equal(t, before, r.State())
	assert.Len(t, backend.targets, 1)
}

func TestDispatchOpenWithoutOpener(t *testing.T) {
	d := &Dispatcher{}
	msg := d.Open(v1.Document{Path: "/x"})()
	assert.ErrorIs(t, msg.(OpenedMsg).Err, ErrNoOpener)
}

func TestDispatchCustomAction(t *testing.T) {
	d := &Dispatcher{Action: &NoticeAction{Label: "Archive"}}
	r := db.NewRetrieval("Documents")

	msg := d.Dispatch(v1.CustomAction(nil), r)().(ActionDoneMsg)
	assert.NoError(t, msg.Err)
	assert.Nil(t, msg.Document)
	assert.Equal(t, "Archive invoked", msg.Notice)

	doc := v1.Document{Name: "a.pdf"}
	msg = d.Dispatch(v1.CustomAction(&doc), r)().(ActionDoneMsg)
	require.NotNil(t, msg.Document)
	assert.Equal(t, "Archive invoked on a.pdf", msg.Notice)
	assert.Equal(t, db.Idle, r.State().Phase)
}
