package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"crm/internal/core/domain/model/client"
	"crm/internal/core/domain/model/courier"
	"crm/internal/core/domain/model/kernel"
	"crm/internal/core/domain/model/order"
	"crm/internal/core/domain/model/payment"
)

func testMoney(t *testing.T, minorUnits int64) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoney(minorUnits)
	require.NoError(t, err)
	return money
}

func testPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func testClient(t *testing.T, email string) *client.Client {
	t.Helper()
	c, err := client.NewClient(kernel.NewUUID(), "Olena", "+380501112233", email, "Khreschatyk 1, Kyiv")
	require.NoError(t, err)
	return c
}

func testCourier(t *testing.T, transport courier.Transport) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewUUID(), "Petro", "+380931234567", transport,
		time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	c.SetAvailable(true)
	return c
}

func testLocatedCourier(t *testing.T, transport courier.Transport, lat, lon float64) *courier.Courier {
	t.Helper()
	c := testCourier(t, transport)
	require.NoError(t, c.UpdateLocation(testPoint(t, lat, lon), time.Now()))
	return c
}

func testNewOrder(t *testing.T, clientID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), clientID, "Pizza", 2, "Khreschatyk 1, Kyiv",
		order.PriorityNormal, testMoney(t, 30000), testMoney(t, 5000), testMoney(t, 0), time.Now())
	require.NoError(t, err)
	require.NoError(t, o.SetLocation(testPoint(t, 50.4501, 30.5234)))
	return o
}

func testUnplacedOrder(t *testing.T, clientID kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), clientID, "Pizza", 2, "Soborna 5, Dnipro",
		order.PriorityNormal, testMoney(t, 30000), testMoney(t, 5000), testMoney(t, 0), time.Now())
	require.NoError(t, err)
	return o
}

func testPendingPayment(t *testing.T, method payment.Method, amountMinor int64) *payment.Payment {
	t.Helper()
	p, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(), method,
		testMoney(t, amountMinor), time.Now())
	require.NoError(t, err)
	return p
}
