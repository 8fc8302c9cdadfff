package allegro

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oczkers/gollegro/pkg/soap"
)

// postBuyBatchSize is the service-imposed cap on item ids per
// doGetPostBuyData call.
const postBuyBatchSize = 25

// Order is one buyer's purchase on an auction: post-buy contact data
// merged with the matching bid.
type Order struct {
	ItemID    int64
	BuyerID   int64
	Login     string
	FirstName string
	LastName  string
	Company   string
	Postcode  string
	City      string
	Address   string
	Email     string
	Phone     string
	Price     decimal.Decimal
	Quantity  int64
	BoughtAt  string
}

// Orders returns the purchase records for the given auctions keyed by
// item id. Item ids are batched 25 per remote call; buyer records are
// cross-referenced against the auction's bids. Buyers the service reports
// without a matching bid are skipped.
func (c *Client) Orders(ctx context.Context, itemIDs []int64) (map[int64][]Order, error) {
	orders := make(map[int64][]Order)
	for _, batch := range chunk(itemIDs, postBuyBatchSize) {
		resp, err := c.call(ctx, "doGetPostBuyData", soap.Params{
			{Name: "itemsArray", Value: soap.List(batch...)},
		})
		if err != nil {
			return nil, err
		}

		for _, row := range resp.Items("itemsPostBuyData") {
			itemID, err := row.Int("itemId")
			if err != nil {
				return nil, fmt.Errorf("doGetPostBuyData: %w", err)
			}
			bids, err := c.Bids(ctx, itemID)
			if err != nil {
				return nil, err
			}

			itemOrders := []Order{}
			for _, buyer := range row.Items("usersPostBuyData") {
				data := buyer.Element("userData")
				if data == nil {
					continue
				}
				buyerID, err := data.Int("userId")
				if err != nil {
					return nil, fmt.Errorf("doGetPostBuyData: %w", err)
				}
				bid, ok := bids[buyerID]
				if !ok {
					// The service occasionally lists buyers with no
					// matching bid; skip them.
					continue
				}
				itemOrders = append(itemOrders, Order{
					ItemID:    itemID,
					BuyerID:   buyerID,
					Login:     data.Text("userLogin"),
					FirstName: data.Text("userFirstName"),
					LastName:  data.Text("userLastName"),
					Company:   data.Text("userCompany"),
					Postcode:  data.Text("userPostcode"),
					City:      data.Text("userCity"),
					Address:   data.Text("userAddress"),
					Email:     data.Text("userEmail"),
					Phone:     data.Text("userPhone"),
					Price:     bid.Price,
					Quantity:  bid.Quantity,
					BoughtAt:  bid.BoughtAt,
				})
			}
			orders[itemID] = itemOrders
		}
	}
	return orders, nil
}
