package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type record struct {
	ID   int64
	Name string
}

func newTestCollection(server *[]record, notifier *recordingNotifier) *Collection[record] {
	return NewCollection(
		func(r record) int64 { return r.ID },
		func(ctx context.Context) ([]record, error) {
			items := make([]record, len(*server))
			copy(items, *server)
			return items, nil
		},
		notifier,
		zap.NewNop(),
	)
}

func TestCollectionAddSuccess(t *testing.T) {
	server := []record{{ID: 1, Name: "one"}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	var lenDuringCall int
	canonical, err := c.Add(context.Background(), record{Name: "two"},
		func(ctx context.Context) (record, error) {
			// The provisional record must be visible before the call returns.
			lenDuringCall = c.Len()
			return record{ID: 2, Name: "two"}, nil
		}, false, "Added!", "Could not add.")

	require.NoError(t, err)
	assert.Equal(t, 2, lenDuringCall)
	assert.Equal(t, int64(2), canonical.ID)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[1].ID, "provisional entry replaced by canonical record")
	assert.Equal(t, []string{"Added!"}, notifier.successes)
}

func TestCollectionAddFailureRemovesProvisional(t *testing.T) {
	server := []record{{ID: 1, Name: "one"}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Add(context.Background(), record{Name: "two"},
		func(ctx context.Context) (record, error) {
			return record{}, errors.New("boom")
		}, false, "Added!", "Could not add.")

	require.Error(t, err)
	assert.Equal(t, 1, c.Len(), "collection back to pre-add state")
	assert.Equal(t, []string{"Could not add."}, notifier.failures)
	assert.Empty(t, notifier.successes)
}

func TestCollectionAddPrepend(t *testing.T) {
	server := []record{{ID: 1, Name: "one"}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	_, err := c.Add(context.Background(), record{Name: "two"},
		func(ctx context.Context) (record, error) {
			return record{ID: 2, Name: "two"}, nil
		}, true, "Added!", "Could not add.")

	require.NoError(t, err)
	assert.Equal(t, int64(2), c.Items()[0].ID)
}

func TestCollectionDeleteSuccess(t *testing.T) {
	server := []record{{ID: 1}, {ID: 2}, {ID: 3}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	var lenDuringCall int
	err := c.Delete(context.Background(), 2,
		func(ctx context.Context) error {
			lenDuringCall = c.Len()
			return nil
		}, "Deleted!", "Could not delete.")

	require.NoError(t, err)
	assert.Equal(t, 2, lenDuringCall, "removal is local-first")
	assert.Equal(t, []int64{1, 3}, ids(c.Items()))
}

func TestCollectionDeleteFailureReloads(t *testing.T) {
	server := []record{{ID: 1}, {ID: 2}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	err := c.Delete(context.Background(), 2,
		func(ctx context.Context) error { return errors.New("boom") },
		"Deleted!", "Could not delete.")

	require.Error(t, err)
	assert.Equal(t, []int64{1, 2}, ids(c.Items()), "record restored from server truth")
	assert.Equal(t, []string{"Could not delete."}, notifier.failures)
}

func TestCollectionUpdateFailureReloads(t *testing.T) {
	server := []record{{ID: 1, Name: "one"}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	var nameDuringCall string
	err := c.Update(context.Background(), 1,
		func(r record) record { r.Name = "renamed"; return r },
		func(ctx context.Context) error {
			nameDuringCall = c.Items()[0].Name
			return errors.New("boom")
		}, "Updated!", "Could not update.")

	require.Error(t, err)
	assert.Equal(t, "renamed", nameDuringCall, "change applied before the call")
	assert.Equal(t, "one", c.Items()[0].Name, "reload reverted the change")
}

func TestCollectionReorder(t *testing.T) {
	server := []record{{ID: 1}, {ID: 2}, {ID: 3}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	err := c.Reorder(context.Background(), []int64{3, 1},
		func(ctx context.Context) error { return nil },
		"Reordered!", "Could not reorder.")

	require.NoError(t, err)
	// Named ids in given order, unnamed items keep relative order at the end.
	assert.Equal(t, []int64{3, 1, 2}, ids(c.Items()))
}

func TestCollectionFailureUsesStructuredMessage(t *testing.T) {
	server := []record{{ID: 1}}
	notifier := &recordingNotifier{}
	c := newTestCollection(&server, notifier)
	require.NoError(t, c.Load(context.Background()))

	err := c.Delete(context.Background(), 1,
		func(ctx context.Context) error {
			return messagedError{msg: "Slug already taken"}
		}, "Deleted!", "Could not delete.")

	require.Error(t, err)
	assert.Equal(t, []string{"Slug already taken"}, notifier.failures)
}

type messagedError struct{ msg string }

func (e messagedError) Error() string       { return e.msg }
func (e messagedError) UserMessage() string { return e.msg }

func ids(items []record) []int64 {
	out := make([]int64, len(items))
	for i, r := range items {
		out[i] = r.ID
	}
	return out
}
