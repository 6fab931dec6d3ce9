package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"lms/config"
	"log"
	"math"
	"strings"

	"github.com/go-resty/resty/v2"
)

// ProviderOrder is the payment provider's order object
type ProviderOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// ProviderPayment is the payment provider's capture object
type ProviderPayment struct {
	ID       string `json:"id"`
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"` // created, captured, failed
}

// Captured reports whether the provider captured the payment
func (p *ProviderPayment) Captured() bool {
	return p.Status == "captured"
}

// CreateProviderOrder opens an order with the payment provider and returns it
func CreateProviderOrder(ctx context.Context, amount float64, currency, receipt string) (*ProviderOrder, []byte, error) {
	client := resty.New()

	resp, err := client.R().
		SetContext(ctx).
		SetBasicAuth(config.AppConfig.PaymentKeyID, config.AppConfig.PaymentKeySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   int64(math.Round(amount * 100)),
			"currency": currency,
			"receipt":  receipt,
		}).
		Post(paymentURL("orders"))
	if err != nil {
		log.Printf("Payment provider order creation failed: %v", err)
		return nil, nil, fmt.Errorf("payment provider unreachable: %w", err)
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		log.Printf("Payment provider order creation rejected: %s", resp.String())
		return nil, resp.Body(), fmt.Errorf("payment provider error: %s", resp.String())
	}

	var order ProviderOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, resp.Body(), fmt.Errorf("invalid payment provider response: %w", err)
	}

	return &order, resp.Body(), nil
}

// FetchProviderPayment looks up a payment capture by its provider id
func FetchProviderPayment(ctx context.Context, paymentID string) (*ProviderPayment, []byte, error) {
	client := resty.New()

	resp, err := client.R().
		SetContext(ctx).
		SetBasicAuth(config.AppConfig.PaymentKeyID, config.AppConfig.PaymentKeySecret).
		Get(paymentURL("payments/" + paymentID))
	if err != nil {
		log.Printf("Payment provider lookup failed: %v", err)
		return nil, nil, fmt.Errorf("payment provider unreachable: %w", err)
	}
	if resp.StatusCode() != 200 {
		log.Printf("Payment provider lookup rejected: %s", resp.String())
		return nil, resp.Body(), fmt.Errorf("payment provider error: %s", resp.String())
	}

	var payment ProviderPayment
	if err := json.Unmarshal(resp.Body(), &payment); err != nil {
		return nil, resp.Body(), fmt.Errorf("invalid payment provider response: %w", err)
	}

	return &payment, resp.Body(), nil
}

func paymentURL(path string) string {
	return strings.TrimRight(config.AppConfig.PaymentApiURL, "/") + "/" + path
}
