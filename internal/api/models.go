package api

// Common request/response structures

// SignUpRequest defines the payload for the sign-up endpoint.
type SignUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse is the public projection of an account. It never carries the
// password hash or the Google subject identifier.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// TokenResponse defines the successful response for sign-in and the OAuth
// callback.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest carries a partial category update; absent fields are
// left untouched.
type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty"`
}

// CreateProductRequest defines the payload for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"       validate:"gte=0"`
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
}

// UpdateProductRequest carries a partial product update; absent fields are
// left untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"        validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"       validate:"omitempty,gte=0"`
	CategoryID  *int64   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
}
