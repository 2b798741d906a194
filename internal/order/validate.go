package order

import (
	"strings"

	"menulink/internal/cart"
	"menulink/internal/models"
	"menulink/internal/validation"
)

// Validate checks a checkout before it is formatted. Cash that is not
// exact must cover total plus tip.
func Validate(req models.OrderRequest) error {
	errs, err := validation.Struct(req)
	if err != nil {
		return err
	}

	if len(req.Items) == 0 {
		errs["items"] = "El carrito está vacío"
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		errs["customerName"] = "El nombre es requerido"
	}

	switch req.DeliveryType {
	case models.DeliveryHome:
		if strings.TrimSpace(req.ReceiverName) == "" {
			errs["receiverName"] = "Indica quién recibe el pedido"
		}
		if strings.TrimSpace(req.Address) == "" {
			errs["address"] = "La dirección es requerida para domicilio"
		}
	case models.DeliveryPickup, models.DeliveryDineIn:
		if strings.TrimSpace(req.ArrivalTime) == "" {
			errs["arrivalTime"] = "La hora de llegada es requerida"
		}
	}

	if req.HasTip && req.Tip <= 0 {
		errs["tip"] = "Ingresa el valor de la propina"
	}

	if req.PaymentMethod == models.PaymentCash && !req.HasChange {
		due := cart.Total(req.Items) + req.Tip
		switch {
		case req.CashAmount <= 0:
			errs["cashAmount"] = "Indica con cuánto vas a pagar"
		case req.CashAmount < due:
			errs["cashAmount"] = "El monto debe cubrir el total " + FormatPrice(due)
		}
	}

	return errs.OrNil()
}
