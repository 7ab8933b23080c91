package order

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"tireshop/internal/domain"
	"tireshop/internal/notify"
	orderrepo "tireshop/internal/repository/order"
)

type Service struct {
	repo          orderRepo
	carts         cartCounter
	notifier      notify.Notifier
	logger        *log.Logger
	notifyTimeout time.Duration
}

type orderRepo interface {
	Place(ctx context.Context, in orderrepo.PlaceInput) (*orderrepo.PlacedOrder, error)
}

type cartCounter interface {
	CountBySession(ctx context.Context, sessionToken string) (int, error)
}

func New(repo orderrepo.Repository, carts cartCounter, notifier notify.Notifier, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{
		repo:          repo,
		carts:         carts,
		notifier:      notifier,
		logger:        logger,
		notifyTimeout: 15 * time.Second,
	}
}

// Place converts the session's cart into an order. Validation happens
// before the transaction; the transaction itself is all-or-nothing;
// the operator notification runs after commit and its failure never
// reaches the caller.
func (s *Service) Place(ctx context.Context, sessionToken string, contact domain.Contact, address domain.Address) (int64, error) {
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return 0, domain.ErrEmptyCart
	}
	count, err := s.carts.CountBySession(ctx, sessionToken)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, domain.ErrEmptyCart
	}
	if err := validateContact(contact); err != nil {
		return 0, err
	}
	if err := validateAddress(address); err != nil {
		return 0, err
	}

	placed, err := s.repo.Place(ctx, orderrepo.PlaceInput{
		SessionToken: sessionToken,
		Contact:      contact,
		Address:      address,
	})
	if err != nil {
		return 0, err
	}

	// The order is committed at this point; delivery of the summary is
	// advisory and must not add latency or failure coupling.
	go s.notifyPlaced(placed, contact, address)

	return placed.Order.ID, nil
}

func (s *Service) notifyPlaced(placed *orderrepo.PlacedOrder, contact domain.Contact, address domain.Address) {
	ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
	defer cancel()
	if err := s.notifier.Send(ctx, Summary(placed, contact, address)); err != nil {
		s.logger.Printf("order service: notify order id=%d error=%v", placed.Order.ID, err)
	}
}

// Summary renders the operator-channel message for a placed order.
func Summary(placed *orderrepo.PlacedOrder, contact domain.Contact, address domain.Address) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Order #%d</b>\n", placed.Order.ID)
	fmt.Fprintf(&b, "<b>Client:</b> %s\n", notify.EscapeHTML(contact.DisplayName()))
	fmt.Fprintf(&b, "<b>Phone:</b> %s\n", notify.EscapeHTML(contact.Phone))
	fmt.Fprintf(&b, "<b>Address:</b> %s\n", notify.EscapeHTML(formatAddress(address)))
	fmt.Fprintf(&b, "<b>Order total:</b> %d\n\n", placed.Order.TotalPrice)
	b.WriteString("<b>Items:</b>")
	for _, line := range placed.Lines {
		fmt.Fprintf(&b, "\n<b>%s</b> - %d pcs (%d)", notify.EscapeHTML(line.Product.Name), line.Quantity, line.LineTotal())
	}
	return b.String()
}

func formatAddress(a domain.Address) string {
	return fmt.Sprintf("%s, %s, house %s, unit %s", a.City, a.Street, a.HouseNumber, a.ApartmentOrOffice)
}

func validateContact(c domain.Contact) error {
	if c.Type != domain.ContactTypeIndividual && c.Type != domain.ContactTypeLegalEntity {
		return domain.ErrInvalidContactType
	}
	required := map[string]string{
		"surname": c.Surname,
		"name":    c.Name,
		"email":   c.Email,
		"phone":   c.Phone,
	}
	if c.Type == domain.ContactTypeLegalEntity {
		required["registration_number"] = c.RegistrationNumber
		required["legal_address"] = c.LegalAddress
		required["organization_name"] = c.OrganizationName
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: contact %s required", domain.ErrInvalidInput, field)
		}
	}
	return nil
}

func validateAddress(a domain.Address) error {
	required := map[string]string{
		"city":         a.City,
		"street":       a.Street,
		"house_number": a.HouseNumber,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: address %s required", domain.ErrInvalidInput, field)
		}
	}
	return nil
}
