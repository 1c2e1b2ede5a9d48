package ledger

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"inventario-backend/internal/models"
)

// DeliveryInput is the registrar_entrega body. Every field is optional.
type DeliveryInput struct {
	City       Text `json:"ciudad"`
	Product    Text `json:"producto"`
	Code       Text `json:"codigo"`
	Phone      Text `json:"telefono"`
	Address    Text `json:"direccion"`
	Amount     any  `json:"monto"`
	Payment    Text `json:"pago"`
	Status     Text `json:"estado"`
	Notes      Text `json:"observaciones"`
	ReferredBy Text `json:"referido_por"`
}

// Delivery builds the ledger row stamped with now.
func (in DeliveryInput) Delivery(now time.Time) *models.Delivery {
	payment := models.PaymentStatus(in.Payment)
	if payment == "" {
		payment = models.PaymentPending
	}
	status := models.DeliveryStatus(in.Status)
	if status == "" {
		status = models.DeliveryToDispatch
	}

	amount := in.Amount
	if amount == nil {
		amount = ""
	}

	return &models.Delivery{
		Timestamp:  now,
		City:       string(in.City),
		Product:    string(in.Product),
		Code:       string(in.Code),
		Phone:      string(in.Phone),
		Address:    string(in.Address),
		Amount:     amount,
		Payment:    payment,
		Status:     status,
		Notes:      string(in.Notes),
		ReferredBy: string(in.ReferredBy),
	}
}

type PaymentInput struct {
	Code Text `json:"codigo"`
	Paid Flag `json:"pagado"`
}

type DeliveryStatusInput struct {
	Code      Text `json:"codigo"`
	Delivered Flag `json:"entregado"`
}

// Text accepts a JSON string, number or null. Bot bazen telefonu sayı olarak yolluyor.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = Text(strconv.FormatBool(v))
	return nil
}

// Flag is a loosely typed boolean: true/false, 0/1, "true"/"false"/"1"/"0";
// any other non-empty string counts as true.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*f = false
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	case string:
		s := strings.TrimSpace(t)
		if parsed, err := strconv.ParseBool(s); err == nil {
			*f = Flag(parsed)
		} else {
			*f = s != ""
		}
	default:
		*f = true
	}
	return nil
}
