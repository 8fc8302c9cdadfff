package allegro

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oczkers/gollegro/pkg/soap"
)

const (
	// paymentWindow is the trailing range queried for incoming payments.
	paymentWindow = 90 * 24 * time.Hour
	// paymentPageLimit is the service-imposed cap on transactions per page.
	paymentPageLimit = 25
	// paymentStatusFinished is the service's (Polish) completed-payment
	// status string.
	paymentStatusFinished = "Zakończona"
)

// TotalPaid sums the completed incoming payments from one buyer on one
// auction over the trailing 90-day window, as an exact decimal.
//
// A transaction with a zero transaction-item id is a lump sum covering
// several items and is split into its detail lines, matched on item id;
// any other transaction contributes its full amount. The zero-id split is
// a best-effort heuristic over the service's data model, not a guaranteed
// reconciliation.
//
// Only the first result page is read: transactions beyond the first 25
// matching the window are not aggregated.
func (c *Client) TotalPaid(ctx context.Context, itemID, buyerID int64) (decimal.Decimal, error) {
	end := c.now().Unix()
	start := end - int64(paymentWindow/time.Second)

	resp, err := c.call(ctx, "doGetMyIncomingPayments", soap.Params{
		{Name: "buyerId", Value: buyerID},
		{Name: "itemId", Value: itemID},
		{Name: "transRecvDateFrom", Value: start},
		{Name: "transRecvDateTo", Value: end},
		{Name: "transPageLimit", Value: paymentPageLimit},
		{Name: "transOffset", Value: 0},
	})
	if err != nil {
		return decimal.Decimal{}, err
	}

	paid := decimal.Zero
	for _, trans := range resp.Items("payTransIncome") {
		if trans.Text("payTransStatus") != paymentStatusFinished {
			continue
		}
		incomplete, err := trans.Int("payTransIncomplete")
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("doGetMyIncomingPayments: %w", err)
		}
		if incomplete != 0 {
			continue
		}

		transItemID, err := trans.Int("payTransItId")
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("doGetMyIncomingPayments: %w", err)
		}
		if transItemID == 0 {
			for _, detail := range trans.Items("payTransDetails") {
				detailItemID, err := detail.Int("payTransDetailsItId")
				if err != nil {
					return decimal.Decimal{}, fmt.Errorf("doGetMyIncomingPayments: %w", err)
				}
				if detailItemID != itemID {
					continue
				}
				price, err := detail.Decimal("payTransDetailsPrice")
				if err != nil {
					return decimal.Decimal{}, fmt.Errorf("doGetMyIncomingPayments: %w", err)
				}
				paid = paid.Add(price)
			}
			continue
		}

		amount, err := trans.Decimal("payTransAmount")
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("doGetMyIncomingPayments: %w", err)
		}
		paid = paid.Add(amount)
	}
	return paid, nil
}
