// Package payment delegates checkout to Mercado Pago. No money is handled
// here: the gateway owns the payment, the API only hands out links and
// reports statuses.
package payment

import (
	"context"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/pkg/errors"
)

type Item struct {
	ID       string
	Title    string
	Price    float64
	Quantity int
}

type Preference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"initPoint"`
	SandboxInitPoint string `json:"sandboxInitPoint,omitempty"`
}

type Status struct {
	PaymentID         int     `json:"paymentId"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"statusDetail"`
	ExternalReference string  `json:"externalReference"`
	Amount            float64 `json:"amount"`
}

// Gateway is the slice of the payment provider the API uses.
type Gateway interface {
	CreatePreference(ctx context.Context, reference string, items []Item) (*Preference, error)
	GetPayment(ctx context.Context, id int) (*Status, error)
}

type MercadoPago struct {
	preferences preference.Client
	payments    payment.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, errors.Wrap(err, "mercadopago config")
	}
	return &MercadoPago{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) CreatePreference(ctx context.Context, reference string, items []Item) (*Preference, error) {
	req := preference.Request{ExternalReference: reference}
	for _, it := range items {
		req.Items = append(req.Items, preference.ItemRequest{
			ID:        it.ID,
			Title:     it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		})
	}

	res, err := m.preferences.Create(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "create preference")
	}
	return &Preference{
		ID:               res.ID,
		InitPoint:        res.InitPoint,
		SandboxInitPoint: res.SandboxInitPoint,
	}, nil
}

func (m *MercadoPago) GetPayment(ctx context.Context, id int) (*Status, error) {
	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get payment")
	}
	return &Status{
		PaymentID:         res.ID,
		Status:            res.Status,
		StatusDetail:      res.StatusDetail,
		ExternalReference: res.ExternalReference,
		Amount:            res.TransactionAmount,
	}, nil
}

var _ Gateway = (*MercadoPago)(nil)
