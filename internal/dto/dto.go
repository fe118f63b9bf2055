package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/checkout"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/pricing"
)

// --- Auth ---

type SignUpRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	FullName        string `json:"full_name" binding:"required"`
	Phone           string `json:"phone"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uuid.UUID  `json:"id"`
	Email    string     `json:"email"`
	FullName string     `json:"full_name"`
	Phone    string     `json:"phone,omitempty"`
	Role     model.Role `json:"role"`
}

// --- Product ---

type ListProductsRequest struct {
	Page     int    `form:"page,default=1" binding:"min=1"`
	Limit    int    `form:"limit,default=20" binding:"min=1,max=100"`
	Search   string `form:"search"`
	Category string `form:"category"`
}

type ProductResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         decimal.Decimal   `json:"price"`
	Category      model.Category    `json:"category"`
	Status        model.StockStatus `json:"status"`
	HasVariants   bool              `json:"has_variants"`
	ImageURL      string            `json:"image_url"`
	ThumbnailURLs []string          `json:"thumbnail_urls"`
	CreatedAt     time.Time         `json:"created_at"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// --- Session ---

type LanguageRequest struct {
	Language model.Language `json:"language" binding:"required"`
}

type LanguageResponse struct {
	Language model.Language `json:"language"`
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID uuid.UUID   `json:"product_id" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required,min=1"`
	Size      model.Size  `json:"size"`
	Color     model.Color `json:"color"`
}

// UpdateCartItemRequest allows quantity <= 0, which removes the entry.
type UpdateCartItemRequest struct {
	ProductID uuid.UUID   `json:"product_id" binding:"required"`
	Quantity  int         `json:"quantity"`
	Size      model.Size  `json:"size"`
	Color     model.Color `json:"color"`
}

type RemoveCartItemRequest struct {
	ProductID uuid.UUID   `json:"product_id" binding:"required"`
	Size      model.Size  `json:"size"`
	Color     model.Color `json:"color"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"total_items"`
	Breakdown  pricing.Breakdown  `json:"breakdown"`
}

type CartItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      model.Size      `json:"size,omitempty"`
	Color     model.Color     `json:"color,omitempty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// --- Checkout ---

type DeliveryRequest struct {
	DeliveryMethod model.DeliveryMethod   `json:"delivery_method" binding:"required"`
	Address        *model.DeliveryAddress `json:"address"`
}

type TermsRequest struct {
	AgreeTerms bool `json:"agree_terms"`
}

// PlaceOrderRequest carries guest contact details. Signed-in users may omit them.
type PlaceOrderRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	SpecialInstructions string `json:"special_instructions"`
}

type CheckoutResponse struct {
	Step           checkout.Step         `json:"step"`
	DeliveryMethod model.DeliveryMethod  `json:"delivery_method,omitempty"`
	Address        model.DeliveryAddress `json:"address"`
	AgreeTerms     bool                  `json:"agree_terms"`
	CanPlace       bool                  `json:"can_place"`
	Breakdown      pricing.Breakdown     `json:"breakdown"`
	OrderNumber    string                `json:"order_number,omitempty"`
	Summary        string                `json:"summary,omitempty"`
	Handoff        checkout.Handoff      `json:"handoff,omitempty"`
	MessagingLink  string                `json:"messaging_link,omitempty"`
}

// --- Order ---

type OrderResponse struct {
	ID                  uuid.UUID              `json:"id"`
	UserID              uuid.UUID              `json:"user_id"`
	OrderNumber         string                 `json:"order_number"`
	Customer            model.Customer         `json:"customer"`
	DeliveryMethod      model.DeliveryMethod   `json:"delivery_method"`
	DeliveryAddress     *model.DeliveryAddress `json:"delivery_address,omitempty"`
	Breakdown           pricing.Breakdown      `json:"breakdown"`
	PaymentStatus       model.PaymentStatus    `json:"payment_status"`
	OrderStatus         model.OrderStatus      `json:"order_status"`
	SpecialInstructions string                 `json:"special_instructions,omitempty"`
	AdminNotes          string                 `json:"admin_notes,omitempty"`
	FirstPaymentDate    *time.Time             `json:"first_payment_date"`
	FinalPaymentDate    *time.Time             `json:"final_payment_date"`
	ConfirmedAt         *time.Time             `json:"confirmed_at"`
	ReadyAt             *time.Time             `json:"ready_at"`
	DeliveredAt         *time.Time             `json:"delivered_at"`
	Items               []OrderItemResponse    `json:"items,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      model.Localized `json:"name"`
	Quantity  int             `json:"quantity"`
	Size      model.Size      `json:"size,omitempty"`
	Color     model.Color     `json:"color,omitempty"`
	Price     decimal.Decimal `json:"price"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// --- Admin ---

// StatusUpdateRequest names one of the mutable order fields. An empty value
// is only accepted for admin_notes, where it clears them.
type StatusUpdateRequest struct {
	Field string `json:"field" binding:"required,oneof=payment_status order_status admin_notes"`
	Value string `json:"value"`
}

type BulkStatusUpdateRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1"`
	Field    string      `json:"field" binding:"required,oneof=payment_status order_status"`
	Value    string      `json:"value" binding:"required"`
}

type BulkResult struct {
	OrderID uuid.UUID `json:"order_id"`
	Error   string    `json:"error,omitempty"`
}

type BulkStatusUpdateResponse struct {
	Results []BulkResult `json:"results"`
}
