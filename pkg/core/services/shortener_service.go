package services

import (
	"context"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/ArthurB95/linklink/pkg/ports"
	"go.uber.org/zap"
)

// ShortenerService manages the user's shortened links with the optimistic
// collection contract.
type ShortenerService struct {
	client ports.BackendClient
	notify ports.Notifier
	log    *zap.Logger
	links  *Collection[domain.ShortenedLink]
}

func NewShortenerService(client ports.BackendClient, notify ports.Notifier, log *zap.Logger) *ShortenerService {
	s := &ShortenerService{client: client, notify: notify, log: log}
	s.links = NewCollection(
		func(l domain.ShortenedLink) int64 { return l.ID },
		s.reload,
		notify,
		log,
	)
	return s
}

// reload lists server truth, newest first.
func (s *ShortenerService) reload(ctx context.Context) ([]domain.ShortenedLink, error) {
	links, err := s.client.ListShortenedLinks(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(links)-1; i < j; i, j = i+1, j-1 {
		links[i], links[j] = links[j], links[i]
	}
	return links, nil
}

// Load refreshes the list. Shortened links are a non-critical list: on error
// the view renders as if the user has no items, and the error surfaces as a
// notification only.
func (s *ShortenerService) Load(ctx context.Context) {
	if err := s.links.Load(ctx); err != nil {
		s.log.Warn("loading shortened links failed", zap.Error(err))
		s.notify.Failure("Could not load your links.")
	}
}

func (s *ShortenerService) Links() []domain.ShortenedLink { return s.links.Items() }

// Shorten validates locally, then creates with an optimistic prepend. The
// slug is normalized and, when blank, omitted from the payload entirely so
// the backend assigns one.
func (s *ShortenerService) Shorten(ctx context.Context, longURL, customSlug string) (domain.ShortenedLink, error) {
	if err := domain.ValidateLongURL(longURL); err != nil {
		s.notify.Failure("Invalid URL. Include http:// or https://")
		return domain.ShortenedLink{}, err
	}
	slug := domain.NormalizeSlug(customSlug)

	provisional := domain.ShortenedLink{OriginalURL: longURL, ShortURL: slug}
	return s.links.Add(ctx, provisional,
		func(ctx context.Context) (domain.ShortenedLink, error) {
			created, err := s.client.CreateShortenedLink(ctx, longURL, slug)
			if err != nil {
				return domain.ShortenedLink{}, err
			}
			return *created, nil
		},
		true,
		"Link shortened!", "Could not shorten link.")
}

func (s *ShortenerService) Delete(ctx context.Context, id int64) error {
	return s.links.Delete(ctx, id,
		func(ctx context.Context) error { return s.client.DeleteShortenedLink(ctx, id) },
		"Link deleted!", "Could not delete link.")
}

// TotalClicks sums click counters across the local view.
func (s *ShortenerService) TotalClicks() int64 {
	var total int64
	for _, l := range s.links.Items() {
		total += l.ClickCount
	}
	return total
}

// ClickRate is the average clicks per link, rounded down; zero when empty.
func (s *ShortenerService) ClickRate() int64 {
	n := int64(s.links.Len())
	if n == 0 {
		return 0
	}
	return s.TotalClicks() / n
}
