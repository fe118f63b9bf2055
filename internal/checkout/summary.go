package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/model"
)

type labels struct {
	header, orderNumber, products, subtotal, total, upfront, onDelivery string
	method, pickup, delivery, address                                    string
}

var summaryLabels = map[model.Language]labels{
	model.LanguageHT: {
		header: "Nouvo Komand", orderNumber: "Nimewo Komand", products: "Pwodwi yo",
		subtotal: "Soutotal", total: "Total", upfront: "50% Alavans", onDelivery: "50% Livrezon",
		method: "Metòd Livrezon", pickup: "Vin Pran - GRATIS", delivery: "Livrezon - Frè Aplike",
		address: "Adrès",
	},
	model.LanguageFR: {
		header: "Nouvelle Commande", orderNumber: "Numéro Commande", products: "Produits",
		subtotal: "Sous-total", total: "Total", upfront: "50% d'Avance", onDelivery: "50% Livraison",
		method: "Méthode de Livraison", pickup: "Récupération - GRATUIT", delivery: "Livraison - Frais Appliqués",
		address: "Adresse",
	},
	model.LanguageEN: {
		header: "New Order", orderNumber: "Order Number", products: "Products",
		subtotal: "Subtotal", total: "Total", upfront: "50% Upfront", onDelivery: "50% Delivery",
		method: "Delivery Method", pickup: "Pickup - FREE", delivery: "Delivery - Fee Applies",
		address: "Street Address",
	},
}

// Summary renders the plain-text order message handed to the messaging channel.
func Summary(order *model.Order, lang model.Language) string {
	l, ok := summaryLabels[lang]
	if !ok {
		l = summaryLabels[model.LanguageHT]
	}
	b := lifecycle.Breakdown(order)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", l.header)
	fmt.Fprintf(&sb, "%s: %s\n\n", l.orderNumber, order.OrderNumber)
	fmt.Fprintf(&sb, "%s:\n", l.products)
	for _, item := range order.Items {
		fmt.Fprintf(&sb, "- %s%s x%d\n", item.Name.In(lang), variant(item), item.Quantity)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s: %s\n", l.subtotal, FormatPrice(b.Subtotal))
	fmt.Fprintf(&sb, "%s: %s\n", l.total, FormatPrice(b.Total))
	fmt.Fprintf(&sb, "%s: %s\n", l.upfront, FormatPrice(b.Upfront))
	fmt.Fprintf(&sb, "%s: %s\n\n", l.onDelivery, FormatPrice(b.OnDelivery))

	if order.DeliveryMethod == model.DeliveryDelivery {
		fmt.Fprintf(&sb, "%s: %s\n", l.method, l.delivery)
		if a := order.DeliveryAddress; a != nil {
			fmt.Fprintf(&sb, "%s: %s, %s, %s (%s)\n", l.address, a.Street, a.City, a.Department, a.Phone)
		}
	} else {
		fmt.Fprintf(&sb, "%s: %s\n", l.method, l.pickup)
	}
	return strings.TrimSpace(sb.String())
}

// FormatPrice renders an amount in gourdes.
func FormatPrice(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " HTG"
}

func variant(item model.OrderItem) string {
	var parts []string
	if item.Size != "" {
		parts = append(parts, string(item.Size))
	}
	if item.Color != "" {
		parts = append(parts, string(item.Color))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
