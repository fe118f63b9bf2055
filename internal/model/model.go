package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID        uuid.UUID
	Email     string
	Password  string
	FullName  string
	Phone     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Localized holds one text in every supported language.
type Localized struct {
	HT string `json:"ht"`
	FR string `json:"fr"`
	EN string `json:"en"`
}

// In returns the text for lang, falling back to Haitian Creole.
func (l Localized) In(lang Language) string {
	switch lang {
	case LanguageFR:
		return l.FR
	case LanguageEN:
		return l.EN
	default:
		return l.HT
	}
}

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          Localized       `json:"name"`
	Description   Localized       `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      Category        `json:"category"`
	Status        StockStatus     `json:"status"`
	HasVariants   bool            `json:"has_variants"`
	ImageURL      string          `json:"image_url"`
	ThumbnailURLs []string        `json:"thumbnail_urls"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CartItem is keyed by (product id, size, color).
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     Size    `json:"size,omitempty"`
	Color    Color   `json:"color,omitempty"`
}

type ItemKey struct {
	ProductID uuid.UUID
	Size      Size
	Color     Color
}

func (i CartItem) Key() ItemKey {
	return ItemKey{ProductID: i.Product.ID, Size: i.Size, Color: i.Color}
}

type DeliveryAddress struct {
	Street     string     `json:"street"`
	City       string     `json:"city"`
	Department Department `json:"department"`
	Phone      string     `json:"phone"`
}

// Complete reports whether every field holds more than whitespace and the
// department is known.
func (a DeliveryAddress) Complete() bool {
	return filled(a.Street) && filled(a.City) && filled(a.Phone) && a.Department.Valid()
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Order struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	OrderNumber         string
	Customer            Customer
	DeliveryMethod      DeliveryMethod
	DeliveryAddress     *DeliveryAddress
	Subtotal            decimal.Decimal
	DeliveryFee         decimal.Decimal
	Total               decimal.Decimal
	PaymentStatus       PaymentStatus
	OrderStatus         OrderStatus
	SpecialInstructions string
	AdminNotes          string
	FirstPaymentDate    *time.Time
	FinalPaymentDate    *time.Time
	ConfirmedAt         *time.Time
	ReadyAt             *time.Time
	DeliveredAt         *time.Time
	Items               []OrderItem
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderItem freezes the unit price and name at placement time.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      Localized
	Quantity  int
	Size      Size
	Color     Color
	Price     decimal.Decimal
}

// OrderMessage is published when an order has been placed.
type OrderMessage struct {
	OrderID     uuid.UUID `json:"order_id"`
	UserID      uuid.UUID `json:"user_id"`
	OrderNumber string    `json:"order_number"`
	Language    Language  `json:"language"`
}
