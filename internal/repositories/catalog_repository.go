package repositories

import (
	"fmt"

	"sabrosa/models"
	"sabrosa/pkg/logger"
)

// CatalogRepositoryInterface exposes the fixed product and add-on catalog.
// The catalog never changes during a session, so there are no write methods.
type CatalogRepositoryInterface interface {
	GetProducts() ([]*models.Product, error)
	GetProductByID(id int) (*models.Product, error)
	GetAddOns() ([]*models.AddOn, error)
	GetAddOnByID(id string) (*models.AddOn, error)
}

// CatalogRepository serves the catalog from memory. It is seeded once at
// startup, either from the built-in fixtures or from rows loaded out of the
// catalog database.
type CatalogRepository struct {
	logger   *logger.Logger
	products []*models.Product
	addOns   []*models.AddOn

	productsByID map[int]*models.Product
	addOnsByID   map[string]*models.AddOn
}

// NewCatalogRepository builds an in-memory catalog from the given records.
func NewCatalogRepository(products []*models.Product, addOns []*models.AddOn, logger *logger.Logger) *CatalogRepository {
	repo := &CatalogRepository{
		logger:       logger.WithComponent("catalog_repository"),
		products:     products,
		addOns:       addOns,
		productsByID: make(map[int]*models.Product, len(products)),
		addOnsByID:   make(map[string]*models.AddOn, len(addOns)),
	}

	for _, p := range products {
		repo.productsByID[p.ID] = p
	}
	for _, a := range addOns {
		repo.addOnsByID[a.ID] = a
	}

	repo.logger.Info("Catalog loaded", "products", len(products), "add_ons", len(addOns))
	return repo
}

// NewDefaultCatalogRepository builds the catalog from the built-in bakery
// fixtures.
func NewDefaultCatalogRepository(logger *logger.Logger) *CatalogRepository {
	return NewCatalogRepository(models.DefaultProducts(), models.DefaultAddOns(), logger)
}

// GetProducts returns all products in catalog order.
func (r *CatalogRepository) GetProducts() ([]*models.Product, error) {
	return r.products, nil
}

// GetProductByID returns the product with the given id.
func (r *CatalogRepository) GetProductByID(id int) (*models.Product, error) {
	product, ok := r.productsByID[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d not found", id)
	}
	return product, nil
}

// GetAddOns returns all add-ons in catalog order.
func (r *CatalogRepository) GetAddOns() ([]*models.AddOn, error) {
	return r.addOns, nil
}

// GetAddOnByID returns the add-on with the given id.
func (r *CatalogRepository) GetAddOnByID(id string) (*models.AddOn, error) {
	addOn, ok := r.addOnsByID[id]
	if !ok {
		return nil, fmt.Errorf("add-on with ID %s not found", id)
	}
	return addOn, nil
}
