package repositories

import (
	"fmt"

	"sabrosa/models"
	"sabrosa/pkg/database"
	"sabrosa/pkg/logger"
)

// LoadCatalogFromDB reads the product and add-on catalog out of PostgreSQL.
// This is the startup path for deployments that manage the catalog in a
// database instead of the built-in fixtures; the result is still served from
// memory for the rest of the process lifetime.
func LoadCatalogFromDB(db *database.DB, log *logger.Logger) (*CatalogRepository, error) {
	log = log.WithComponent("catalog_loader")
	log.Debug("Loading catalog from database")

	products, err := loadProducts(db)
	if err != nil {
		log.Error("Failed to load products", "error", err)
		return nil, err
	}

	addOns, err := loadAddOns(db)
	if err != nil {
		log.Error("Failed to load add-ons", "error", err)
		return nil, err
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("catalog database contains no products")
	}

	log.Info("Catalog loaded from database", "products", len(products), "add_ons", len(addOns))
	return NewCatalogRepository(products, addOns, log), nil
}

func loadProducts(db *database.DB) ([]*models.Product, error) {
	query := `
        SELECT id, name, description, price, category, image
        FROM products
        ORDER BY id
    `

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %v", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %v", err)
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %v", err)
	}

	return products, nil
}

func loadAddOns(db *database.DB) ([]*models.AddOn, error) {
	query := `
        SELECT id, name, price
        FROM add_ons
        ORDER BY id
    `

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query add-ons: %v", err)
	}
	defer rows.Close()

	addOns := []*models.AddOn{}
	for rows.Next() {
		var a models.AddOn
		if err := rows.Scan(&a.ID, &a.Name, &a.Price); err != nil {
			return nil, fmt.Errorf("failed to scan add-on row: %v", err)
		}
		addOns = append(addOns, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating add-on rows: %v", err)
	}

	return addOns, nil
}
