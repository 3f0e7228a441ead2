package mock

import (
	"context"

	"github.com/fwojciec/readtrack"
)

var _ readtrack.NoteStore = (*NoteStore)(nil)

// NoteStore is a mock implementation of readtrack.NoteStore.
type NoteStore struct {
	SaveFn   func(ctx context.Context, note *readtrack.Note) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *NoteStore) Save(ctx context.Context, note *readtrack.Note) error {
	return s.SaveFn(ctx, note)
}

func (s *NoteStore) Commit() error {
	return s.CommitFn()
}

func (s *NoteStore) Abort() error {
	return s.AbortFn()
}
