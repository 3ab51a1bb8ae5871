package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/ArthurB95/linklink/pkg/ports"
	"go.uber.org/zap"
)

// BioPageService owns the editable state of the user's own bio page: the
// singular profile fields plus the optimistic link collection.
type BioPageService struct {
	client ports.BackendClient
	notify ports.Notifier
	log    *zap.Logger

	mu    sync.Mutex
	page  *domain.BioPage
	links *Collection[domain.BioLink]
}

func NewBioPageService(client ports.BackendClient, notify ports.Notifier, log *zap.Logger) *BioPageService {
	s := &BioPageService{client: client, notify: notify, log: log}
	s.links = NewCollection(
		func(l domain.BioLink) int64 { return l.ID },
		s.reloadLinks,
		notify,
		log,
	)
	return s
}

// Load fetches the authoritative bio page. The own profile is a critical
// resource: errors propagate instead of degrading to empty.
func (s *BioPageService) Load(ctx context.Context) error {
	page, err := s.client.MyBioPage(ctx)
	if err != nil {
		return err
	}
	s.setPage(page)
	return nil
}

func (s *BioPageService) setPage(page *domain.BioPage) {
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	s.links.Replace(page.Links)
}

// Page returns a snapshot of the profile with the current local link state.
func (s *BioPageService) Page() *domain.BioPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return nil
	}
	copied := *s.page
	copied.Links = s.links.Items()
	return &copied
}

func (s *BioPageService) Links() []domain.BioLink { return s.links.Items() }

// reloadLinks refreshes the whole page from the server and hands the links
// to the collection; profile fields are refreshed as a side effect, which is
// exactly what rollback-by-reload wants.
func (s *BioPageService) reloadLinks(ctx context.Context) ([]domain.BioLink, error) {
	page, err := s.client.MyBioPage(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.page = page
	s.mu.Unlock()
	return page.Links, nil
}

// UpdateProfile applies the patch to local state immediately, then issues
// the update. Success keeps the server's canonical object; failure reloads
// the full authoritative page, discarding the optimistic change.
func (s *BioPageService) UpdateProfile(ctx context.Context, patch domain.BioPagePatch) error {
	s.mu.Lock()
	if s.page != nil {
		applyPagePatch(s.page, patch)
	}
	s.mu.Unlock()

	page, err := s.client.UpdateBioPage(ctx, patch)
	if err != nil {
		s.notify.Failure(failureText(err, "Could not save profile."))
		if lerr := s.Load(ctx); lerr != nil {
			s.log.Warn("profile reload after failed update failed", zap.Error(lerr))
		}
		return err
	}
	s.setPage(page)
	s.notify.Success("Profile updated!")
	return nil
}

func applyPagePatch(page *domain.BioPage, patch domain.BioPagePatch) {
	if patch.Title != nil {
		page.Title = *patch.Title
	}
	if patch.Bio != nil {
		page.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		page.AvatarURL = *patch.AvatarURL
	}
	if patch.Theme != nil {
		page.Theme = *patch.Theme
	}
	if patch.IsPublic != nil {
		page.IsPublic = *patch.IsPublic
	}
}

var errMissingLinkFields = errors.New("title and URL are required")

// AddLink inserts a provisional link at the end of the collection and issues
// the create; the canonical record (with the server-assigned id) replaces it
// on success.
func (s *BioPageService) AddLink(ctx context.Context, title, url string) (domain.BioLink, error) {
	if title == "" || url == "" {
		s.notify.Failure("Fill in both title and URL.")
		return domain.BioLink{}, errMissingLinkFields
	}
	provisional := domain.BioLink{Title: title, URL: url, Position: s.links.Len(), IsActive: true}
	return s.links.Add(ctx, provisional,
		func(ctx context.Context) (domain.BioLink, error) {
			created, err := s.client.AddLink(ctx, title, url)
			if err != nil {
				return domain.BioLink{}, err
			}
			return *created, nil
		},
		false,
		"Link added!", "Could not add link.")
}

func (s *BioPageService) EditLink(ctx context.Context, id int64, patch domain.BioLinkPatch) error {
	return s.links.Update(ctx, id,
		func(l domain.BioLink) domain.BioLink {
			if patch.Title != nil {
				l.Title = *patch.Title
			}
			if patch.URL != nil {
				l.URL = *patch.URL
			}
			if patch.IsActive != nil {
				l.IsActive = *patch.IsActive
			}
			return l
		},
		func(ctx context.Context) error {
			_, err := s.client.UpdateLink(ctx, id, patch)
			return err
		},
		"Link updated!", "Could not update link.")
}

func (s *BioPageService) RemoveLink(ctx context.Context, id int64) error {
	return s.links.Delete(ctx, id,
		func(ctx context.Context) error { return s.client.DeleteLink(ctx, id) },
		"Link removed!", "Could not remove link.")
}

// ReorderLinks applies the complete new ordering locally and sends the full
// id list in a single call.
func (s *BioPageService) ReorderLinks(ctx context.Context, ids []int64) error {
	return s.links.Reorder(ctx, ids,
		func(ctx context.Context) error { return s.client.ReorderLinks(ctx, ids) },
		"Order updated!", "Could not reorder links.")
}

// MoveLink swaps a link with its neighbor and issues the resulting full
// reorder. Out-of-range moves are no-ops.
func (s *BioPageService) MoveLink(ctx context.Context, id int64, up bool) error {
	links := s.links.Items()
	idx := -1
	for i, l := range links {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	swap := idx + 1
	if up {
		swap = idx - 1
	}
	if swap < 0 || swap >= len(links) {
		return nil
	}
	links[idx], links[swap] = links[swap], links[idx]

	ids := make([]int64, 0, len(links))
	for _, l := range links {
		if l.ID != 0 {
			ids = append(ids, l.ID)
		}
	}
	return s.ReorderLinks(ctx, ids)
}
