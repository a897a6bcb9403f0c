package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidParameter   = "INVALID_PARAMETER"
	ErrCodeInvalidCategory    = "INVALID_CATEGORY"
	ErrCodeInvalidPricingType = "INVALID_PRICING_TYPE"
	ErrCodeInvalidPrice       = "INVALID_PRICE"
	ErrCodeInvalidDiscount    = "INVALID_DISCOUNT"
	ErrCodeInvalidDate        = "INVALID_DATE"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeBoxSizeNotFound    = "BOX_SIZE_NOT_FOUND"
	ErrCodeOfferNotFound      = "OFFER_NOT_FOUND"
	ErrCodeOfferExpired       = "OFFER_EXPIRED"
	ErrCodeMeritNotFound      = "MERIT_NOT_FOUND"
	ErrCodeCartItemNotFound   = "CART_ITEM_NOT_FOUND"
	ErrCodeCartEmpty          = "CART_EMPTY"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeUploadFailed       = "UPLOAD_FAILED"
	ErrCodeInvalidImage       = "INVALID_IMAGE"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidCategory    = NewDomainError(ErrCodeInvalidCategory, "Category must be vegetable, fruit or juice")
	ErrInvalidPricingType = NewDomainError(ErrCodeInvalidPricingType, "Pricing type must be kg, box or piece")
	ErrInvalidPrice       = NewDomainError(ErrCodeInvalidPrice, "Price must not be negative")
	ErrInvalidDiscount    = NewDomainError(ErrCodeInvalidDiscount, "Discount must be between 0 and 100")
	ErrInvalidDate        = NewDomainError(ErrCodeInvalidDate, "End date is not a valid date")
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrBoxSizeNotFound    = NewDomainError(ErrCodeBoxSizeNotFound, "Box size not found for product")
	ErrOfferNotFound      = NewDomainError(ErrCodeOfferNotFound, "Offer not found")
	ErrOfferExpired       = NewDomainError(ErrCodeOfferExpired, "Sorry, this offer has expired!")
	ErrMeritNotFound      = NewDomainError(ErrCodeMeritNotFound, "Merit not found")
	ErrCartItemNotFound   = NewDomainError(ErrCodeCartItemNotFound, "Item not found in cart")
	ErrCartEmpty          = NewDomainError(ErrCodeCartEmpty, "Your cart is empty")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be between 1 and 999")
	ErrUploadFailed       = NewDomainError(ErrCodeUploadFailed, "Failed to upload image")
	ErrInvalidImage       = NewDomainError(ErrCodeInvalidImage, "File must be an image")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "Sign in to access the admin panel")
)

// MissingField returns a domain error for a required field that was left empty.
func MissingField(field string) *DomainError {
	return NewDomainError(ErrCodeMissingField, field+" is required")
}
