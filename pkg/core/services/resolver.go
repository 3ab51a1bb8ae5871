package services

import (
	"context"
	"errors"

	"github.com/ArthurB95/linklink/pkg/ports"
	"go.uber.org/zap"
)

// ResolutionKind says how a handle was interpreted.
type ResolutionKind int

const (
	// ResolvedAsLink: the handle is a short code; navigate hard to URL.
	ResolvedAsLink ResolutionKind = iota
	// ResolvedAsProfile: render the public profile for Handle.
	ResolvedAsProfile
)

// Resolution is the outcome of one resolution pass.
type Resolution struct {
	Kind   ResolutionKind
	URL    string // set when Kind == ResolvedAsLink
	Handle string // set when Kind == ResolvedAsProfile
}

var ErrEmptyHandle = errors.New("handle is empty")

// HandleResolver decides whether a path segment names a shortened link or a
// public profile.
type HandleResolver struct {
	client ports.BackendClient
	log    *zap.Logger
}

func NewHandleResolver(client ports.BackendClient, log *zap.Logger) *HandleResolver {
	return &HandleResolver{client: client, log: log}
}

// Resolve runs the sequential two-phase probe: the short-link lookup is
// always tried first, and the profile interpretation is strictly the failure
// fallback. A handle that exists in both spaces is therefore always treated
// as a short link. The decision is made exactly once per call; the lookup is
// never retried within a pass.
func (r *HandleResolver) Resolve(ctx context.Context, handle string) (Resolution, error) {
	if handle == "" {
		return Resolution{}, ErrEmptyHandle
	}

	link, err := r.client.ResolveShortCode(ctx, handle)
	if err == nil && link != nil && link.OriginalURL != "" {
		return Resolution{Kind: ResolvedAsLink, URL: link.OriginalURL}, nil
	}
	if ctx.Err() != nil {
		return Resolution{}, ctx.Err()
	}
	if err != nil {
		r.log.Debug("short-link lookup failed, treating handle as profile",
			zap.String("handle", handle), zap.Error(err))
	}

	return Resolution{Kind: ResolvedAsProfile, Handle: handle}, nil
}
