package allegro

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oczkers/gollegro/pkg/soap"
)

// Bid is one bid on an auction.
type Bid struct {
	BuyerID  int64
	Price    decimal.Decimal
	Quantity int64
	// BoughtAt is the purchase time exactly as the service reports it.
	BoughtAt string
}

// AuctionDetails returns the item record for one auction, service-shaped.
func (c *Client) AuctionDetails(ctx context.Context, itemID int64) (*soap.Response, error) {
	return c.call(ctx, "doShowItemInfoExt", soap.Params{
		{Name: "itemId", Value: itemID},
	})
}

// Bids returns the bids on one auction keyed by buyer id.
func (c *Client) Bids(ctx context.Context, itemID int64) (map[int64]Bid, error) {
	resp, err := c.call(ctx, "doGetBidItem2", soap.Params{
		{Name: "itemId", Value: itemID},
	})
	if err != nil {
		return nil, err
	}

	bids := make(map[int64]Bid)
	for _, row := range resp.Items("biditemList") {
		// bidsArray is positional: [1] buyer id, [5] quantity, [6] price,
		// [7] purchase time.
		vals := row.Items("bidsArray")
		if len(vals) < 8 {
			return nil, fmt.Errorf("doGetBidItem2: short bidsArray (%d values)", len(vals))
		}
		buyerID, err := vals[1].Int("")
		if err != nil {
			return nil, fmt.Errorf("doGetBidItem2: %w", err)
		}
		quantity, err := vals[5].Int("")
		if err != nil {
			return nil, fmt.Errorf("doGetBidItem2: %w", err)
		}
		price, err := vals[6].Decimal("")
		if err != nil {
			return nil, fmt.Errorf("doGetBidItem2: %w", err)
		}
		bids[buyerID] = Bid{
			BuyerID:  buyerID,
			Price:    price,
			Quantity: quantity,
			BoughtAt: vals[7].Text(""),
		}
	}
	return bids, nil
}
