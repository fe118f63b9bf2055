package model

type Language string

const (
	LanguageHT Language = "ht"
	LanguageFR Language = "fr"
	LanguageEN Language = "en"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageHT, LanguageFR, LanguageEN:
		return true
	}
	return false
}

type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryHome        Category = "Home & Living"
	CategoryBeauty      Category = "Beauty & Care"
	CategorySports      Category = "Sports"
	CategoryBags        Category = "Bags"
	CategoryTools       Category = "Tools"
	CategoryKids        Category = "Kids & Baby"
	CategoryJewelry     Category = "Jewelry"
	CategoryOther       Category = "Other"
)

var Categories = []Category{
	CategoryElectronics, CategoryClothing, CategoryHome, CategoryBeauty, CategorySports,
	CategoryBags, CategoryTools, CategoryKids, CategoryJewelry, CategoryOther,
}

func (c Category) Valid() bool { return contains(Categories, c) }

type StockStatus string

const (
	StockInStock StockStatus = "in_stock"
	StockOnOrder StockStatus = "on_order"
)

type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

var Sizes = []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL}

func (s Size) Valid() bool { return contains(Sizes, s) }

type Color string

const (
	ColorBlack  Color = "black"
	ColorWhite  Color = "white"
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorGray   Color = "gray"
	ColorPink   Color = "pink"
)

var Colors = []Color{ColorBlack, ColorWhite, ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorGray, ColorPink}

func (c Color) Valid() bool { return contains(Colors, c) }

// Department is one of Haiti's ten first-level administrative divisions.
type Department string

var Departments = []Department{
	"Artibonite", "Centre", "Grand'Anse", "Nippes", "Nord",
	"Nord-Est", "Nord-Ouest", "Ouest", "Sud", "Sud-Est",
}

func (d Department) Valid() bool { return contains(Departments, d) }

type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDelivery DeliveryMethod = "delivery"
)

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryPickup || m == DeliveryDelivery
}

type PaymentStatus string

const (
	PaymentPending50 PaymentStatus = "pending_50"
	PaymentPaid50    PaymentStatus = "paid_50"
	PaymentFullyPaid PaymentStatus = "fully_paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending50, PaymentPaid50, PaymentFullyPaid:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusReady, OrderStatusDelivered:
		return true
	}
	return false
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
