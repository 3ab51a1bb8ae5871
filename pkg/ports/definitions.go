package ports

import (
	"context"

	"github.com/ArthurB95/linklink/pkg/core/domain"
)

// BackendClient is the REST surface of the Link.Link backend as consumed by
// the client. List calls tolerate both raw-array and paginated envelope
// responses and normalize to a slice.
type BackendClient interface {
	// Authenticated
	Me(ctx context.Context) (*domain.User, error)
	MyBioPage(ctx context.Context) (*domain.BioPage, error)
	UpdateBioPage(ctx context.Context, patch domain.BioPagePatch) (*domain.BioPage, error)
	AddLink(ctx context.Context, title, url string) (*domain.BioLink, error)
	UpdateLink(ctx context.Context, id int64, patch domain.BioLinkPatch) (*domain.BioLink, error)
	DeleteLink(ctx context.Context, id int64) error
	ReorderLinks(ctx context.Context, ids []int64) error
	ListQRCodes(ctx context.Context) ([]domain.QRCode, error)
	CreateQRCode(ctx context.Context, req domain.QRCodeRequest) (*domain.QRCode, error)
	GetQRCode(ctx context.Context, id int64) (*domain.QRCode, error)
	DeleteQRCode(ctx context.Context, id int64) error
	BindQRCode(ctx context.Context, id int64) error
	UnbindQRCode(ctx context.Context) error
	ListShortenedLinks(ctx context.Context) ([]domain.ShortenedLink, error)
	CreateShortenedLink(ctx context.Context, originalURL, customSlug string) (*domain.ShortenedLink, error)
	DeleteShortenedLink(ctx context.Context, id int64) error

	// Public (no bearer token)
	PublicBioPage(ctx context.Context, handle string) (*domain.BioPage, error)
	RegisterLinkClick(ctx context.Context, handle string, linkID int64) error
	ResolveShortCode(ctx context.Context, code string) (*domain.ShortenedLink, error)
}

// TokenStore is the process-wide credential slot: written once at login,
// read before every authenticated call, cleared at logout.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

// Notifier surfaces user-visible success/failure toasts. Failure text never
// carries raw transport errors, only a structured backend message or a fixed
// fallback phrase.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}
