package models

import "time"

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pendiente"
	PaymentPaid    PaymentStatus = "Pagado"
)

type DeliveryStatus string

const (
	DeliveryToDispatch DeliveryStatus = "Por despachar"
	DeliveryInTransit  DeliveryStatus = "En ruta"
	DeliveryDelivered  DeliveryStatus = "Entregado"
)

// Entregas sayfasının sabit başlığı. Sıra değişirse kolon numaraları da değişmeli.
var LedgerHeader = []string{
	"Fecha", "Ciudad", "Producto", "Codigo", "Telefono", "Direccion",
	"Monto", "Pago", "Estado", "Observaciones", "ReferidoPor",
}

// 1'den başlayan kolon numaraları
const (
	LedgerColumnCode    = 4
	LedgerColumnPayment = 8
	LedgerColumnStatus  = 9
)

const LedgerTimestampLayout = "2006-01-02 15:04:05"

// Delivery is one row of the Entregas ledger.
// Amount keeps whatever the client sent (text or number) so the store can type it.
type Delivery struct {
	Timestamp  time.Time
	City       string
	Product    string
	Code       string
	Phone      string
	Address    string
	Amount     any
	Payment    PaymentStatus
	Status     DeliveryStatus
	Notes      string
	ReferredBy string
}

// Row returns the values in LedgerHeader order.
func (d *Delivery) Row() []any {
	amount := d.Amount
	if amount == nil {
		amount = ""
	}
	return []any{
		d.Timestamp.Format(LedgerTimestampLayout),
		d.City,
		d.Product,
		d.Code,
		d.Phone,
		d.Address,
		amount,
		string(d.Payment),
		string(d.Status),
		d.Notes,
		d.ReferredBy,
	}
}

func PaymentStatusFor(paid bool) PaymentStatus {
	if paid {
		return PaymentPaid
	}
	return PaymentPending
}

func DeliveryStatusFor(delivered bool) DeliveryStatus {
	if delivered {
		return DeliveryDelivered
	}
	return DeliveryInTransit
}
