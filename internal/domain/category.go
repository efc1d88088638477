package domain

// Category groups products in the catalog. Names are unique across the
// catalog; the description is optional.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// NewCategory creates a category, validating required fields.
func NewCategory(name, description string) (*Category, error) {
	category := &Category{
		Name:        name,
		Description: description,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks that the category has valid data.
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}

// CategoryPatch carries a partial update for a category. Nil fields are left
// untouched by Apply.
type CategoryPatch struct {
	Name        *string
	Description *string
}

// Apply merges the patch into the category, overwriting only the fields
// present in the patch.
func (p CategoryPatch) Apply(c *Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}
