package service

import (
	"fmt"
	"net/url"
	"strings"

	"sabrosa/internal/repositories"
	"sabrosa/models"
	"sabrosa/pkg/logger"
)

// WhatsAppPhone is the bakery's order line. The final order is handed off as
// a prefilled chat message to this number; payment is arranged there.
const WhatsAppPhone = "972555567714"

const (
	orderGreeting = "היי, אשמח להזמין:"
	orderClosing  = "תודה!"
	totalPrefix   = `סה"כ לתשלום: ₪`
	addOnsPrefix  = "תוספות: "
	currencySign  = "₪"
)

// OrderHandoff pairs the human-readable order message with the deep link
// that opens it in the chat application.
type OrderHandoff struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type OrderServiceInterface interface {
	BuildHandoff(session *models.Session) OrderHandoff
}

type OrderService struct {
	catalogRepo repositories.CatalogRepositoryInterface
	logger      *logger.Logger
}

func NewOrderService(catalogRepo repositories.CatalogRepositoryInterface, logger *logger.Logger) *OrderService {
	return &OrderService{
		catalogRepo: catalogRepo,
		logger:      logger.WithComponent("order_service"),
	}
}

// BuildHandoff serializes the session's cart into the order message and
// wraps it in a wa.me link. An empty cart still produces the full
// greeting/total/closing skeleton with a zero total.
func (s *OrderService) BuildHandoff(session *models.Session) OrderHandoff {
	session.Mu.Lock()
	defer session.Mu.Unlock()

	itemLines := make([]string, 0, len(session.Lines))
	for _, line := range session.Lines {
		itemLines = append(itemLines, s.formatLine(line))
	}

	message := orderGreeting + "\n" +
		strings.Join(itemLines, "\n") + "\n\n" +
		totalPrefix + session.TotalPrice().String() + "\n" +
		orderClosing

	link := "https://wa.me/" + WhatsAppPhone + "?text=" + encodeMessage(message)

	s.logger.Info("Order handoff built",
		"session_id", session.ID,
		"lines", len(session.Lines),
		"total", session.TotalPrice())

	return OrderHandoff{Message: message, Link: link}
}

// formatLine renders one cart line:
//
//	- {product} (תוספות: {names}) x{qty}: ₪{total}
//
// The add-ons group is omitted when the line has none, and the quantity
// suffix is omitted when the quantity is 1.
func (s *OrderService) formatLine(line *models.CartLine) string {
	addOnsText := ""
	if len(line.AddOns) > 0 {
		names := make([]string, 0, len(line.AddOns))
		for _, id := range line.AddOns {
			names = append(names, s.resolveAddOnName(id))
		}
		addOnsText = " (" + addOnsPrefix + strings.Join(names, ", ") + ")"
	}

	quantityText := ""
	if line.Quantity > 1 {
		quantityText = fmt.Sprintf(" x%d", line.Quantity)
	}

	return "- " + line.Product.Name + addOnsText + quantityText + ": " +
		currencySign + line.TotalPrice.String()
}

// resolveAddOnName maps an add-on id to its display name. An id missing from
// the catalog degrades to an empty name; a slightly off message beats a
// failed order.
func (s *OrderService) resolveAddOnName(id string) string {
	addOn, err := s.catalogRepo.GetAddOnByID(id)
	if err != nil {
		s.logger.Warn("Unknown add-on in cart line, using empty name", "add_on_id", id)
		return ""
	}
	return addOn.Name
}

// encodeMessage percent-encodes the message for the wa.me query string,
// with spaces as %20 rather than '+' so the chat app renders them.
func encodeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
