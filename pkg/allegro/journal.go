package allegro

import (
	"context"
	"fmt"

	"github.com/oczkers/gollegro/pkg/soap"
)

// DealEvent is one entry of the site's change-event journal.
type DealEvent struct {
	DealID        int64
	EventType     int64
	TransactionID int64
	EventTime     int64
	EventID       int64
	ItemID        int64
	BuyerID       int64
	Quantity      int64
}

// JournalDealsInfo returns the number of journal events pending after the
// given cursor.
func (c *Client) JournalDealsInfo(ctx context.Context, start int64) (int64, error) {
	resp, err := c.call(ctx, "doGetSiteJournalDealsInfo", soap.Params{
		{Name: "journalStart", Value: start},
	})
	if err != nil {
		return 0, err
	}
	count, err := resp.Int("siteJournalDealsInfo/dealEventsCount")
	if err != nil {
		return 0, fmt.Errorf("doGetSiteJournalDealsInfo: %w", err)
	}
	return count, nil
}

// JournalDeals drains the event journal from the given cursor: while the
// pending count is positive it fetches a batch and advances the cursor to
// the last event's event id. The caller owns the cursor and passes the
// final event id back in on its next poll.
func (c *Client) JournalDeals(ctx context.Context, start int64) ([]DealEvent, error) {
	var deals []DealEvent
	for {
		remaining, err := c.JournalDealsInfo(ctx, start)
		if err != nil {
			return nil, err
		}
		if remaining <= 0 {
			return deals, nil
		}

		resp, err := c.call(ctx, "doGetSiteJournalDeals", soap.Params{
			{Name: "journalStart", Value: start},
		})
		if err != nil {
			return nil, err
		}
		events := resp.Items("siteJournalDeals")
		if len(events) == 0 {
			return nil, fmt.Errorf("doGetSiteJournalDeals: empty batch with %d pending events", remaining)
		}

		for _, ev := range events {
			deal, err := parseDealEvent(ev)
			if err != nil {
				return nil, err
			}
			deals = append(deals, deal)
		}
		start = deals[len(deals)-1].EventID
	}
}

func parseDealEvent(ev *soap.Response) (DealEvent, error) {
	var deal DealEvent
	for _, field := range []struct {
		name string
		dst  *int64
	}{
		{"dealId", &deal.DealID},
		{"dealEventType", &deal.EventType},
		{"dealTransactionId", &deal.TransactionID},
		{"dealEventTime", &deal.EventTime},
		{"dealEventId", &deal.EventID},
		{"dealItemId", &deal.ItemID},
		{"dealBuyerId", &deal.BuyerID},
		{"dealQuantity", &deal.Quantity},
	} {
		v, err := ev.Int(field.name)
		if err != nil {
			return DealEvent{}, fmt.Errorf("doGetSiteJournalDeals: %w", err)
		}
		*field.dst = v
	}
	return deal, nil
}
