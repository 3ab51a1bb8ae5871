package services

import (
	"context"
	"sync"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/ArthurB95/linklink/pkg/ports"
)

// fakeBackend overrides just the calls a test exercises; anything else
// panics through the nil embedded interface, which is exactly what we want
// from an unexpected call.
type fakeBackend struct {
	ports.BackendClient

	resolveShortCode func(ctx context.Context, code string) (*domain.ShortenedLink, error)
	publicBioPage    func(ctx context.Context, handle string) (*domain.BioPage, error)
	myBioPage        func(ctx context.Context) (*domain.BioPage, error)
	updateBioPage    func(ctx context.Context, patch domain.BioPagePatch) (*domain.BioPage, error)
	addLink          func(ctx context.Context, title, url string) (*domain.BioLink, error)
	updateLink       func(ctx context.Context, id int64, patch domain.BioLinkPatch) (*domain.BioLink, error)
	deleteLink       func(ctx context.Context, id int64) error
	reorderLinks     func(ctx context.Context, ids []int64) error
	listShortened    func(ctx context.Context) ([]domain.ShortenedLink, error)
	createShortened  func(ctx context.Context, originalURL, customSlug string) (*domain.ShortenedLink, error)
	listQRCodes      func(ctx context.Context) ([]domain.QRCode, error)
	deleteQRCode     func(ctx context.Context, id int64) error
	bindQRCode       func(ctx context.Context, id int64) error
	unbindQRCode     func(ctx context.Context) error
}

func (f *fakeBackend) ResolveShortCode(ctx context.Context, code string) (*domain.ShortenedLink, error) {
	return f.resolveShortCode(ctx, code)
}

func (f *fakeBackend) PublicBioPage(ctx context.Context, handle string) (*domain.BioPage, error) {
	return f.publicBioPage(ctx, handle)
}

func (f *fakeBackend) MyBioPage(ctx context.Context) (*domain.BioPage, error) {
	return f.myBioPage(ctx)
}

func (f *fakeBackend) UpdateBioPage(ctx context.Context, patch domain.BioPagePatch) (*domain.BioPage, error) {
	return f.updateBioPage(ctx, patch)
}

func (f *fakeBackend) AddLink(ctx context.Context, title, url string) (*domain.BioLink, error) {
	return f.addLink(ctx, title, url)
}

func (f *fakeBackend) UpdateLink(ctx context.Context, id int64, patch domain.BioLinkPatch) (*domain.BioLink, error) {
	return f.updateLink(ctx, id, patch)
}

func (f *fakeBackend) DeleteLink(ctx context.Context, id int64) error {
	return f.deleteLink(ctx, id)
}

func (f *fakeBackend) ReorderLinks(ctx context.Context, ids []int64) error {
	return f.reorderLinks(ctx, ids)
}

func (f *fakeBackend) ListShortenedLinks(ctx context.Context) ([]domain.ShortenedLink, error) {
	return f.listShortened(ctx)
}

func (f *fakeBackend) CreateShortenedLink(ctx context.Context, originalURL, customSlug string) (*domain.ShortenedLink, error) {
	return f.createShortened(ctx, originalURL, customSlug)
}

func (f *fakeBackend) ListQRCodes(ctx context.Context) ([]domain.QRCode, error) {
	return f.listQRCodes(ctx)
}

func (f *fakeBackend) DeleteQRCode(ctx context.Context, id int64) error {
	return f.deleteQRCode(ctx, id)
}

func (f *fakeBackend) BindQRCode(ctx context.Context, id int64) error {
	return f.bindQRCode(ctx, id)
}

func (f *fakeBackend) UnbindQRCode(ctx context.Context) error {
	return f.unbindQRCode(ctx)
}

// recordingNotifier captures toasts for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}
