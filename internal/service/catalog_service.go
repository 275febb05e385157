package service

import (
	"sabrosa/internal/repositories"
	"sabrosa/models"
	"sabrosa/pkg/logger"

	"github.com/shopspring/decimal"
)

// CatalogView is the full catalog as served to the rendering layer.
type CatalogView struct {
	Products    []*models.Product `json:"products"`
	AddOns      []*models.AddOn   `json:"add_ons"`
	AddOnFee    decimal.Decimal   `json:"add_on_fee"`
	AddOnShares map[string]string `json:"add_on_shares,omitempty"`
	DraftTotal  decimal.Decimal   `json:"draft_total"`
	HasDraft    bool              `json:"has_draft"`
}

type CatalogServiceInterface interface {
	GetCatalog() (CatalogView, error)
	GetCustomizationView(session *models.Session) (CatalogView, error)
}

type CatalogService struct {
	catalogRepo repositories.CatalogRepositoryInterface
	logger      *logger.Logger
}

func NewCatalogService(catalogRepo repositories.CatalogRepositoryInterface, logger *logger.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		logger:      logger.WithComponent("catalog_service"),
	}
}

// GetCatalog returns the fixed product and add-on lists.
func (s *CatalogService) GetCatalog() (CatalogView, error) {
	products, err := s.catalogRepo.GetProducts()
	if err != nil {
		s.logger.Error("Failed to get products", "error", err)
		return CatalogView{}, err
	}

	addOns, err := s.catalogRepo.GetAddOns()
	if err != nil {
		s.logger.Error("Failed to get add-ons", "error", err)
		return CatalogView{}, err
	}

	return CatalogView{
		Products:   products,
		AddOns:     addOns,
		AddOnFee:   AddOnSurcharge,
		DraftTotal: decimal.Zero,
	}, nil
}

// GetCustomizationView returns the catalog annotated with the session's
// draft state: the draft's running unit price and the per-add-on display
// share. The shares are cosmetic (fee divided across the selected add-ons);
// the charged total is always governed by the flat-fee rule alone.
func (s *CatalogService) GetCustomizationView(session *models.Session) (CatalogView, error) {
	view, err := s.GetCatalog()
	if err != nil {
		return CatalogView{}, err
	}

	session.Mu.Lock()
	draft := session.Draft
	var selected []string
	if draft != nil {
		selected = copyAddOns(draft.AddOns)
		view.DraftTotal = UnitPrice(draft.Product, draft.AddOns)
		view.HasDraft = true
	}
	session.Mu.Unlock()

	view.AddOnShares = addOnShares(view.AddOns, selected)
	return view, nil
}

// addOnShares computes the displayed price tag for each add-on given the
// current selection: the full fee when nothing is selected yet, the fee
// split across the selection for selected add-ons, and zero for the rest.
func addOnShares(addOns []*models.AddOn, selected []string) map[string]string {
	selectedSet := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	shares := make(map[string]string, len(addOns))
	for _, addOn := range addOns {
		switch {
		case len(selected) == 0:
			shares[addOn.ID] = AddOnSurcharge.String()
		case selectedSet[addOn.ID]:
			share := AddOnSurcharge.Div(decimal.NewFromInt(int64(len(selected))))
			shares[addOn.ID] = share.StringFixed(1)
		default:
			shares[addOn.ID] = "0"
		}
	}
	return shares
}
