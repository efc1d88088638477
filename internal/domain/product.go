package domain

// Product is a catalog entry belonging to a category. Names are unique
// across the catalog.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id"`
}

// NewProduct creates a product, validating required fields.
func NewProduct(name, description string, price float64, categoryID int64) (*Product, error) {
	product := &Product{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// Validate checks that the product has valid data.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.CategoryID <= 0 {
		return ErrInvalidCategoryID
	}
	return nil
}

// ProductPatch carries a partial update for a product. Nil fields are left
// untouched by Apply.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *int64
}

// Apply merges the patch into the product, overwriting only the fields
// present in the patch.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
}
