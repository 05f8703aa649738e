//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	pacttest "github.com/Apurer/retail-inventory-api/test/pact"
)

const (
	uuidPattern      = `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`
	timestampPattern = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`
)

type orderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type placeOrder struct {
	CustomerID string      `json:"customerId"`
	Items      []orderLine `json:"items"`
}

type orderPayload struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customerId"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	Items       []struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unitPrice"`
	} `json:"items"`
}

type problemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail"`
	Extensions map[string]any `json:"extensions"`
}

type apiError struct {
	problem problemDetail
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.problem.Title, e.problem.Detail, e.problem.Status)
}

func TestOrderPortalContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", `application\/json(?:;\s?charset=utf-8)?`)
	problemContentType := matchers.S("application/problem+json")
	orderBody := matchers.Map{
		"id":          matchers.Regex(pacttest.ExistingOrderID, uuidPattern),
		"customerId":  matchers.Regex(pacttest.CustomerID, uuidPattern),
		"status":      matchers.Term("Pending", "^(Pending|Completed|Cancelled)$"),
		"totalAmount": matchers.Like(49.98),
		"createdAt":   matchers.Regex("2024-06-01T09:00:00Z", timestampPattern),
		"items": matchers.ArrayMinLike(matchers.Map{
			"productId": matchers.Regex(pacttest.ProductID, uuidPattern),
			"quantity":  matchers.Like(2),
			"unitPrice": matchers.Like(24.99),
			"subtotal":  matchers.Like(49.98),
		}, 1),
	}
	placement := func(quantity int) matchers.Map {
		return matchers.Map{
			"customerId": matchers.S(pacttest.CustomerID),
			"items": []matchers.Map{{
				"productId": matchers.S(pacttest.ProductID),
				"quantity":  matchers.Like(quantity),
			}},
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateCatalogInStock).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(placement(2))
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{"orderId": matchers.Regex(pacttest.ExistingOrderID, uuidPattern)})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogLow).
		UponReceiving("a request to order more than the stock").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(placement(5))
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/insufficient-stock"),
				"title":  matchers.S("Insufficient Stock"),
				"status": matchers.Like(http.StatusBadRequest),
				"extensions": matchers.Map{
					"productId": matchers.S(pacttest.ProductID),
					"requested": matchers.Like(5),
					"available": matchers.Like(2),
				},
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", "/api/orders/"+pacttest.ExistingOrderID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderBody)
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", "/api/orders/"+pacttest.MissingOrderID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", problemContentType)
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		orderID, err := client.PlaceOrder(ctx, pacttest.CustomerID, pacttest.ProductID, 2)
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if orderID == "" {
			return errors.New("expected an order id")
		}

		_, err = client.PlaceOrder(ctx, pacttest.CustomerID, pacttest.ProductID, 5)
		var rejected apiError
		if !errors.As(err, &rejected) || rejected.problem.Type != "/problems/insufficient-stock" {
			return fmt.Errorf("expected insufficient stock problem, got %v", err)
		}

		order, err := client.GetOrder(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order.ID != pacttest.ExistingOrderID || len(order.Items) == 0 {
			return fmt.Errorf("unexpected order %+v", order)
		}

		_, err = client.GetOrder(ctx, pacttest.MissingOrderID)
		var missing apiError
		if !errors.As(err, &missing) || missing.problem.Status != http.StatusNotFound {
			return fmt.Errorf("expected 404 for order %s, got %v", pacttest.MissingOrderID, err)
		}
		return nil
	})
	require.NoError(t, err)
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *orderClient) PlaceOrder(ctx context.Context, customerID, productID string, quantity int) (string, error) {
	body, err := json.Marshal(placeOrder{CustomerID: customerID, Items: []orderLine{{ProductID: productID, Quantity: quantity}}})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	var created struct {
		OrderID string `json:"orderId"`
	}
	if err := c.do(req, &created); err != nil {
		return "", err
	}
	return created.OrderID, nil
}

func (c *orderClient) GetOrder(ctx context.Context, id string) (*orderPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	var order orderPayload
	if err := c.do(req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *orderClient) do(req *http.Request, out any) error {
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= http.StatusBadRequest {
		var problem problemDetail
		_ = json.NewDecoder(res.Body).Decode(&problem)
		if problem.Status == 0 {
			problem.Status = res.StatusCode
		}
		return apiError{problem: problem}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
