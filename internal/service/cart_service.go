package service

import (
	"fmt"
	"time"

	"sabrosa/internal/repositories"
	"sabrosa/models"
	"sabrosa/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ToastDuration is how long the "added to cart" notification stays visible
// before dismissing itself.
const ToastDuration = 3 * time.Second

const addedToCartMessage = "התווסף לסל בהצלחה!"

// AddOnSurcharge is the flat per-unit fee applied once a configuration has
// at least one add-on. It does not scale with the number of add-ons.
var AddOnSurcharge = decimal.NewFromInt(5)

// CartView is the read model handed to the rendering layer.
type CartView struct {
	Lines        []*models.CartLine  `json:"lines"`
	TotalItems   int                 `json:"total_items"`
	TotalPrice   decimal.Decimal     `json:"total_price"`
	Notification models.Notification `json:"notification"`
	Draft        *models.Draft       `json:"draft,omitempty"`
}

type CartServiceInterface interface {
	AddToCart(session *models.Session, productID int, addOnIDs []string) (*models.CartLine, error)
	BeginCustomization(session *models.Session, productID int) (*models.Draft, error)
	BeginEdit(session *models.Session, lineID string) (*models.Draft, error)
	ToggleAddOn(session *models.Session, addOnID string) (*models.Draft, error)
	CancelCustomization(session *models.Session)
	ConfirmCustomization(session *models.Session) (*models.CartLine, error)
	UpdateQuantity(session *models.Session, lineID string, delta int) (*models.CartLine, error)
	RemoveLine(session *models.Session, lineID string) error
	GetCart(session *models.Session) CartView
}

type CartService struct {
	catalogRepo repositories.CatalogRepositoryInterface
	logger      *logger.Logger
}

func NewCartService(catalogRepo repositories.CatalogRepositoryInterface, logger *logger.Logger) *CartService {
	return &CartService{
		catalogRepo: catalogRepo,
		logger:      logger.WithComponent("cart_service"),
	}
}

// UnitPrice computes the per-unit price of a configuration: the product's
// base price, plus the flat surcharge when any add-ons are selected.
func UnitPrice(product *models.Product, addOnIDs []string) decimal.Decimal {
	if len(addOnIDs) > 0 {
		return product.Price.Add(AddOnSurcharge)
	}
	return product.Price
}

// AddToCart adds one unit of the given configuration. An existing line with
// the same configuration absorbs the add (quantity and total grow by one
// unit); otherwise a new line is appended. Either way the toast is shown.
func (s *CartService) AddToCart(session *models.Session, productID int, addOnIDs []string) (*models.CartLine, error) {
	product, err := s.catalogRepo.GetProductByID(productID)
	if err != nil {
		s.logger.Warn("Add to cart failed: unknown product", "product_id", productID)
		return nil, err
	}

	if err := s.validateAddOns(addOnIDs); err != nil {
		s.logger.Warn("Add to cart failed: invalid add-ons", "product_id", productID, "error", err)
		return nil, err
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	line := s.addLineLocked(session, product, addOnIDs)
	s.showNotificationLocked(session)

	s.logger.Info("Added to cart",
		"session_id", session.ID,
		"product_id", product.ID,
		"line_id", line.LineID,
		"quantity", line.Quantity,
		"line_total", line.TotalPrice)
	return line.Clone(), nil
}

// addLineLocked performs the merge-or-append. Caller holds the session lock.
func (s *CartService) addLineLocked(session *models.Session, product *models.Product, addOnIDs []string) *models.CartLine {
	unitPrice := UnitPrice(product, addOnIDs)

	if existing := session.FindLineByKey(models.ConfigKey(product.ID, addOnIDs), ""); existing != nil {
		existing.Quantity++
		existing.TotalPrice = existing.TotalPrice.Add(unitPrice)
		return existing
	}

	line := &models.CartLine{
		LineID:     uuid.New().String(),
		Product:    product,
		AddOns:     copyAddOns(addOnIDs),
		Quantity:   1,
		TotalPrice: unitPrice,
	}
	session.Lines = append(session.Lines, line)
	return line
}

// BeginCustomization opens a fresh draft for the product with no add-ons
// selected, replacing any draft already open.
func (s *CartService) BeginCustomization(session *models.Session, productID int) (*models.Draft, error) {
	product, err := s.catalogRepo.GetProductByID(productID)
	if err != nil {
		s.logger.Warn("Customization failed: unknown product", "product_id", productID)
		return nil, err
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	session.Draft = &models.Draft{
		Product: product,
		AddOns:  []string{},
		Mode:    models.DraftModeNew,
	}

	s.logger.Debug("Customization started", "session_id", session.ID, "product_id", productID)
	return session.Draft.Clone(), nil
}

// BeginEdit opens a draft pre-filled from an existing line. The line's
// add-on set is copied, so toggling in the draft never touches the cart
// until confirm.
func (s *CartService) BeginEdit(session *models.Session, lineID string) (*models.Draft, error) {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	line := session.FindLine(lineID)
	if line == nil {
		s.logger.Warn("Edit failed: line not found", "session_id", session.ID, "line_id", lineID)
		return nil, fmt.Errorf("cart line with ID %s not found", lineID)
	}

	session.Draft = &models.Draft{
		Product: line.Product,
		AddOns:  copyAddOns(line.AddOns),
		Mode:    models.DraftModeEdit,
		LineID:  line.LineID,
	}

	s.logger.Debug("Edit started", "session_id", session.ID, "line_id", lineID)
	return session.Draft.Clone(), nil
}

// ToggleAddOn flips membership of the add-on in the open draft's selection.
func (s *CartService) ToggleAddOn(session *models.Session, addOnID string) (*models.Draft, error) {
	if _, err := s.catalogRepo.GetAddOnByID(addOnID); err != nil {
		s.logger.Warn("Toggle failed: unknown add-on", "add_on_id", addOnID)
		return nil, err
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	draft := session.Draft
	if draft == nil {
		return nil, fmt.Errorf("no customization in progress")
	}

	if draft.HasAddOn(addOnID) {
		kept := make([]string, 0, len(draft.AddOns)-1)
		for _, id := range draft.AddOns {
			if id != addOnID {
				kept = append(kept, id)
			}
		}
		draft.AddOns = kept
	} else {
		draft.AddOns = append(draft.AddOns, addOnID)
	}

	return draft.Clone(), nil
}

// CancelCustomization discards the open draft, if any.
func (s *CartService) CancelCustomization(session *models.Session) {
	session.Mu.Lock()
	defer session.Mu.Unlock()
	session.Draft = nil
}

// ConfirmCustomization commits the open draft. A new-mode draft behaves
// exactly like AddToCart, including the merge rule. An edit-mode draft
// replaces the target line's add-on set and reprices it at the line's
// existing quantity; if the new configuration now matches another line,
// the two are merged into that line so no two lines ever share a
// configuration.
func (s *CartService) ConfirmCustomization(session *models.Session) (*models.CartLine, error) {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	draft := session.Draft
	if draft == nil {
		return nil, fmt.Errorf("no customization in progress")
	}
	session.Draft = nil

	if draft.Mode == models.DraftModeEdit {
		return s.confirmEditLocked(session, draft)
	}

	line := s.addLineLocked(session, draft.Product, draft.AddOns)
	s.showNotificationLocked(session)

	s.logger.Info("Customization added to cart",
		"session_id", session.ID,
		"product_id", draft.Product.ID,
		"line_id", line.LineID,
		"add_ons", len(draft.AddOns))
	return line.Clone(), nil
}

func (s *CartService) confirmEditLocked(session *models.Session, draft *models.Draft) (*models.CartLine, error) {
	line := session.FindLine(draft.LineID)
	if line == nil {
		s.logger.Warn("Edit confirm failed: line no longer in cart", "session_id", session.ID, "line_id", draft.LineID)
		return nil, fmt.Errorf("cart line with ID %s not found", draft.LineID)
	}

	unitPrice := UnitPrice(draft.Product, draft.AddOns)

	// The edit may turn this line into a configuration another line already
	// holds. Merge into that line instead of leaving two identical
	// configurations in the cart.
	if target := session.FindLineByKey(models.ConfigKey(draft.Product.ID, draft.AddOns), line.LineID); target != nil {
		target.Quantity += line.Quantity
		target.TotalPrice = unitPrice.Mul(decimal.NewFromInt(int64(target.Quantity)))
		session.RemoveLine(line.LineID)

		s.logger.Info("Edit merged into existing line",
			"session_id", session.ID,
			"removed_line_id", line.LineID,
			"line_id", target.LineID,
			"quantity", target.Quantity)
		return target.Clone(), nil
	}

	line.AddOns = copyAddOns(draft.AddOns)
	line.TotalPrice = unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

	s.logger.Info("Line updated",
		"session_id", session.ID,
		"line_id", line.LineID,
		"add_ons", len(line.AddOns),
		"line_total", line.TotalPrice)
	return line.Clone(), nil
}

// UpdateQuantity changes a line's quantity by delta, never below 1. The
// unit price is recovered from the stored total, which is exact because a
// line's total is always unit price times quantity.
func (s *CartService) UpdateQuantity(session *models.Session, lineID string, delta int) (*models.CartLine, error) {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	line := session.FindLine(lineID)
	if line == nil {
		return nil, fmt.Errorf("cart line with ID %s not found", lineID)
	}

	newQuantity := line.Quantity + delta
	if newQuantity < 1 {
		newQuantity = 1
	}

	unitPrice := line.TotalPrice.Div(decimal.NewFromInt(int64(line.Quantity)))
	line.Quantity = newQuantity
	line.TotalPrice = unitPrice.Mul(decimal.NewFromInt(int64(newQuantity)))

	s.logger.Debug("Quantity updated",
		"session_id", session.ID,
		"line_id", lineID,
		"quantity", line.Quantity,
		"line_total", line.TotalPrice)
	return line.Clone(), nil
}

// RemoveLine deletes the line outright. No confirmation step.
func (s *CartService) RemoveLine(session *models.Session, lineID string) error {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	if !session.RemoveLine(lineID) {
		return fmt.Errorf("cart line with ID %s not found", lineID)
	}

	s.logger.Info("Line removed", "session_id", session.ID, "line_id", lineID)
	return nil
}

// GetCart returns the current cart read model. Totals are recomputed from
// the lines on every call. The view is a detached snapshot: callers encode
// it after the session lock is released, so it must not alias live state.
func (s *CartService) GetCart(session *models.Session) CartView {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	lines := make([]*models.CartLine, len(session.Lines))
	for i, line := range session.Lines {
		lines[i] = line.Clone()
	}

	var draft *models.Draft
	if session.Draft != nil {
		draft = session.Draft.Clone()
	}

	return CartView{
		Lines:        lines,
		TotalItems:   session.TotalItemCount(),
		TotalPrice:   session.TotalPrice(),
		Notification: session.Notification,
		Draft:        draft,
	}
}

// showNotificationLocked displays the toast and arms its auto-dismiss.
// A newer notification bumps the generation, so an older timer firing later
// is a no-op. Caller holds the session lock.
func (s *CartService) showNotificationLocked(session *models.Session) {
	session.Notification.Generation++
	generation := session.Notification.Generation

	session.Notification.Visible = true
	session.Notification.Message = addedToCartMessage
	session.Notification.ShownAt = time.Now()

	time.AfterFunc(ToastDuration, func() {
		session.Mu.Lock()
		defer session.Mu.Unlock()
		if session.Notification.Generation == generation {
			session.Notification.Visible = false
			session.Notification.Message = ""
		}
	})
}

func (s *CartService) validateAddOns(addOnIDs []string) error {
	for _, id := range addOnIDs {
		if _, err := s.catalogRepo.GetAddOnByID(id); err != nil {
			return fmt.Errorf("add-on with ID %s not found", id)
		}
	}
	return nil
}

func copyAddOns(addOnIDs []string) []string {
	copied := make([]string, len(addOnIDs))
	copy(copied, addOnIDs)
	return copied
}
