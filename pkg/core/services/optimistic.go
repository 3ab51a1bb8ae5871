package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ArthurB95/linklink/pkg/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// userMessager is satisfied by backend errors carrying a structured message
// safe to show to the user.
type userMessager interface {
	UserMessage() string
}

// failureText picks the notification body for a failed mutation: the
// backend's structured message when present, otherwise the fixed fallback.
// Raw transport error text never reaches the user.
func failureText(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) && um.UserMessage() != "" {
		return um.UserMessage()
	}
	return fallback
}

// entry wraps an item with a token so a provisional record inserted by Add
// can be found again once the server echoes the canonical object, without
// relying on server-assigned ids the record does not have yet.
type entry[T any] struct {
	token string
	item  T
}

// Collection is an optimistic in-memory view of a server-owned collection.
// Mutations apply locally first, then issue the remote call; on failure the
// local change is rolled back by reloading authoritative state (or, for Add,
// by dropping the provisional entry). The mutex guards the slice only —
// overlapping mutations are not serialized, and the last reload-on-failure
// wins over any prior optimistic state.
type Collection[T any] struct {
	mu      sync.Mutex
	entries []entry[T]

	key    func(T) int64
	reload func(context.Context) ([]T, error)
	notify ports.Notifier
	log    *zap.Logger
}

func NewCollection[T any](
	key func(T) int64,
	reload func(context.Context) ([]T, error),
	notify ports.Notifier,
	log *zap.Logger,
) *Collection[T] {
	return &Collection[T]{key: key, reload: reload, notify: notify, log: log}
}

// Load replaces local state with server truth. On error the collection is
// left empty; the caller decides whether that is fatal or just "no items".
func (c *Collection[T]) Load(ctx context.Context) error {
	items, err := c.reload(ctx)
	if err != nil {
		c.Replace(nil)
		return err
	}
	c.Replace(items)
	return nil
}

// Replace overwrites local state with the given items.
func (c *Collection[T]) Replace(items []T) {
	entries := make([]entry[T], len(items))
	for i, item := range items {
		entries[i] = entry[T]{item: item}
	}
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
}

// Items returns a snapshot copy of the current local state.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.entries))
	for i, e := range c.entries {
		items[i] = e.item
	}
	return items
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Add inserts a provisional record immediately, then issues the create call.
// On success the provisional entry is replaced with the server's canonical
// object; on failure it is removed, returning the collection to its pre-Add
// state.
func (c *Collection[T]) Add(
	ctx context.Context,
	provisional T,
	create func(context.Context) (T, error),
	prepend bool,
	okMsg, failMsg string,
) (T, error) {
	token := uuid.NewString()

	c.mu.Lock()
	if prepend {
		c.entries = append([]entry[T]{{token: token, item: provisional}}, c.entries...)
	} else {
		c.entries = append(c.entries, entry[T]{token: token, item: provisional})
	}
	c.mu.Unlock()

	canonical, err := create(ctx)
	if err != nil {
		c.removeToken(token)
		c.notify.Failure(failureText(err, failMsg))
		var zero T
		return zero, err
	}

	c.mu.Lock()
	replaced := false
	for i := range c.entries {
		if c.entries[i].token == token {
			c.entries[i] = entry[T]{item: canonical}
			replaced = true
			break
		}
	}
	// A reload may have raced the create and already dropped the token;
	// server truth includes the new record then, so nothing is lost.
	if !replaced {
		c.log.Debug("provisional entry vanished before canonical replace")
	}
	c.mu.Unlock()

	c.notify.Success(okMsg)
	return canonical, nil
}

// Update applies the field change locally, then issues the remote call. On
// failure the full collection is reloaded, which may visibly revert the UI.
func (c *Collection[T]) Update(
	ctx context.Context,
	id int64,
	apply func(T) T,
	call func(context.Context) error,
	okMsg, failMsg string,
) error {
	c.mu.Lock()
	for i := range c.entries {
		if c.key(c.entries[i].item) == id {
			c.entries[i].item = apply(c.entries[i].item)
			break
		}
	}
	c.mu.Unlock()

	if err := call(ctx); err != nil {
		c.rollback(ctx, err, failMsg)
		return err
	}
	c.notify.Success(okMsg)
	return nil
}

// Delete removes the record locally, then issues the remote call. On failure
// the collection is reloaded so the record reappears if the delete did not
// actually happen server-side.
func (c *Collection[T]) Delete(
	ctx context.Context,
	id int64,
	call func(context.Context) error,
	okMsg, failMsg string,
) error {
	c.mu.Lock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if c.key(e.item) != id {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	c.mu.Unlock()

	if err := call(ctx); err != nil {
		c.rollback(ctx, err, failMsg)
		return err
	}
	c.notify.Success(okMsg)
	return nil
}

// Reorder applies a complete new ordering locally, then issues a single call
// carrying the full ordered id list. Ids not present locally are ignored;
// local items missing from the id list keep their relative order at the end.
func (c *Collection[T]) Reorder(
	ctx context.Context,
	ids []int64,
	call func(context.Context) error,
	okMsg, failMsg string,
) error {
	c.mu.Lock()
	byID := make(map[int64]entry[T], len(c.entries))
	for _, e := range c.entries {
		byID[c.key(e.item)] = e
	}
	ordered := make([]entry[T], 0, len(c.entries))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			ordered = append(ordered, e)
			seen[id] = true
		}
	}
	for _, e := range c.entries {
		if !seen[c.key(e.item)] {
			ordered = append(ordered, e)
		}
	}
	c.entries = ordered
	c.mu.Unlock()

	if err := call(ctx); err != nil {
		c.rollback(ctx, err, failMsg)
		return err
	}
	c.notify.Success(okMsg)
	return nil
}

func (c *Collection[T]) removeToken(token string) {
	c.mu.Lock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.token != token {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	c.mu.Unlock()
}

// rollback notifies the failure, then discards optimistic state by reloading
// authoritative truth. If the reload itself fails the collection is left
// empty rather than keeping unconfirmed optimistic state.
func (c *Collection[T]) rollback(ctx context.Context, cause error, failMsg string) {
	c.notify.Failure(failureText(cause, failMsg))
	if err := c.Load(ctx); err != nil {
		c.log.Warn("authoritative reload after failed mutation also failed", zap.Error(err))
	}
}
