// Package order turns a checkout into the WhatsApp message sent to the
// merchant.
package order

import (
	"strconv"
	"strings"

	"menulink/internal/cart"
	"menulink/internal/models"
	"menulink/pkg/whatsapp"
)

const DefaultBrand = "InnBeta"

var deliveryLabels = map[models.DeliveryType]string{
	models.DeliveryHome:   "Domicilio",
	models.DeliveryPickup: "Recoger en local",
	models.DeliveryDineIn: "Comer en el lugar",
}

var paymentLabels = map[models.PaymentMethod]string{
	models.PaymentCash:     "Efectivo",
	models.PaymentCard:     "Tarjeta",
	models.PaymentTransfer: "Transferencia",
}

func DeliveryLabel(t models.DeliveryType) string { return deliveryLabels[t] }

func PaymentLabel(m models.PaymentMethod) string {
	if label, ok := paymentLabels[m]; ok {
		return label
	}
	return string(m)
}

type Formatter struct {
	Brand string
}

func NewFormatter(brand string) *Formatter {
	if brand == "" {
		brand = DefaultBrand
	}
	return &Formatter{Brand: brand}
}

// Message renders the order. The total is recomputed from req.Items. The
// change line is cash minus total and does not account for the tip.
func (f *Formatter) Message(req models.OrderRequest) string {
	var b strings.Builder

	b.WriteString("*Nuevo Pedido - " + f.Brand + "*\n\n")
	b.WriteString("*Cliente:* " + req.CustomerName + "\n")
	b.WriteString("*Tipo de pedido:* " + DeliveryLabel(req.DeliveryType) + "\n\n")

	if req.DeliveryType == models.DeliveryHome {
		b.WriteString("*Quién recibe:* " + req.ReceiverName + "\n")
		b.WriteString("*Dirección:* " + req.Address + "\n")
		if req.References != "" {
			b.WriteString("*Referencias:* " + req.References + "\n")
		}
		if req.Location != nil {
			b.WriteString("*Ubicación:* " + MapsLink(*req.Location) + "\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("*Hora de llegada:* " + req.ArrivalTime + "\n\n")
	}

	b.WriteString("*Productos:*\n")
	for _, item := range req.Items {
		b.WriteString("• " + strconv.Itoa(item.Quantity) + "x " + item.Name + " - " + FormatPrice(item.Subtotal()) + "\n")
	}

	total := cart.Total(req.Items)
	b.WriteString("\n*Total:* " + FormatPrice(total) + "\n")

	if req.Tip > 0 {
		b.WriteString("*Propina:* " + FormatPrice(req.Tip) + "\n")
	}

	b.WriteString("\n*Pago:* " + PaymentLabel(req.PaymentMethod) + "\n")
	if req.PaymentMethod == models.PaymentCash {
		if req.HasChange {
			b.WriteString("Pago exacto\n")
		} else {
			b.WriteString("Paga con: " + FormatPrice(req.CashAmount) + "\n")
			b.WriteString("Cambio(Sin contar propina): " + FormatPrice(ChangeDue(req.CashAmount, total)) + "\n")
		}
	}

	if req.Notes != "" {
		b.WriteString("\n*Notas:* " + req.Notes + "\n")
	}

	return b.String()
}

// Link renders the message and wraps it in a wa.me deep link to phone.
func (f *Formatter) Link(phone string, req models.OrderRequest) (string, string) {
	msg := f.Message(req)
	return msg, whatsapp.DeepLink(phone, msg)
}

// ChangeDue is tendered minus total. The tip is not subtracted even
// though validation requires tendered >= total + tip.
func ChangeDue(tendered, total int64) int64 {
	return tendered - total
}

func MapsLink(loc models.Location) string {
	return "https://maps.google.com/?q=" +
		strconv.FormatFloat(loc.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(loc.Longitude, 'f', -1, 64)
}
