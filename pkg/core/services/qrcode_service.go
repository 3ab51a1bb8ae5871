package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ArthurB95/linklink/pkg/core/domain"
	"github.com/ArthurB95/linklink/pkg/ports"
	"go.uber.org/zap"
)

// QRCodeService manages the user's saved QR codes and the single binding to
// the bio page.
type QRCodeService struct {
	client ports.BackendClient
	notify ports.Notifier
	log    *zap.Logger
	codes  *Collection[domain.QRCode]

	mu      sync.Mutex
	boundID int64 // 0 when no code is bound to the bio page
}

func NewQRCodeService(client ports.BackendClient, notify ports.Notifier, log *zap.Logger) *QRCodeService {
	s := &QRCodeService{client: client, notify: notify, log: log}
	s.codes = NewCollection(
		func(q domain.QRCode) int64 { return q.ID },
		func(ctx context.Context) ([]domain.QRCode, error) { return client.ListQRCodes(ctx) },
		notify,
		log,
	)
	return s
}

// Load refreshes the saved codes (non-critical list: degrades to empty) and
// the current bio-page binding (best-effort, like the original page which
// swallowed the bio fetch error).
func (s *QRCodeService) Load(ctx context.Context) {
	if err := s.codes.Load(ctx); err != nil {
		s.log.Warn("loading QR codes failed", zap.Error(err))
		s.notify.Failure("Could not load your QR codes.")
	}

	page, err := s.client.MyBioPage(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || page == nil || page.CustomQRCode == nil {
		s.boundID = 0
		return
	}
	s.boundID = page.CustomQRCode.ID
}

func (s *QRCodeService) Codes() []domain.QRCode { return s.codes.Items() }

// BoundID is the id of the code currently bound to the bio page, 0 if none.
func (s *QRCodeService) BoundID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundID
}

func (s *QRCodeService) Create(ctx context.Context, req domain.QRCodeRequest) (domain.QRCode, error) {
	if req.Content == "" {
		s.notify.Failure("Enter content for the QR code.")
		return domain.QRCode{}, errMissingQRFields
	}
	if req.Name == "" {
		s.notify.Failure("Give your QR code a name.")
		return domain.QRCode{}, errMissingQRFields
	}
	provisional := domain.QRCode{
		Name:    req.Name,
		Content: req.Content,
		Size:    req.Size,
		FgColor: req.FgColor,
		BgColor: req.BgColor,
	}
	return s.codes.Add(ctx, provisional,
		func(ctx context.Context) (domain.QRCode, error) {
			created, err := s.client.CreateQRCode(ctx, req)
			if err != nil {
				return domain.QRCode{}, err
			}
			return *created, nil
		},
		true,
		"QR code saved!", "Could not save QR code.")
}

func (s *QRCodeService) Delete(ctx context.Context, id int64) error {
	err := s.codes.Delete(ctx, id,
		func(ctx context.Context) error { return s.client.DeleteQRCode(ctx, id) },
		"QR code deleted!", "Could not delete QR code.")
	if err == nil {
		s.mu.Lock()
		if s.boundID == id {
			s.boundID = 0
		}
		s.mu.Unlock()
	}
	return err
}

// Toggle binds the code to the bio page, or unbinds it when it is already
// the bound one. At most one code is bound at a time; the backend enforces
// it and we mirror the invariant locally.
func (s *QRCodeService) Toggle(ctx context.Context, id int64) error {
	if s.BoundID() == id {
		if err := s.client.UnbindQRCode(ctx); err != nil {
			s.notify.Failure(failureText(err, "Could not update bio page."))
			return err
		}
		s.mu.Lock()
		s.boundID = 0
		s.mu.Unlock()
		s.notify.Success("QR code removed from bio page.")
		return nil
	}

	if err := s.client.BindQRCode(ctx, id); err != nil {
		s.notify.Failure(failureText(err, "Could not update bio page."))
		return err
	}
	s.mu.Lock()
	s.boundID = id
	s.mu.Unlock()
	s.notify.Success("QR code set on bio page!")
	return nil
}

// TotalScans sums scan counters across the local view.
func (s *QRCodeService) TotalScans() int64 {
	var total int64
	for _, q := range s.codes.Items() {
		total += q.ScanCount
	}
	return total
}

var errMissingQRFields = errors.New("name and content are required")
