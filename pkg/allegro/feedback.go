package allegro

import (
	"context"
	"fmt"

	"github.com/oczkers/gollegro/pkg/soap"
)

// feedbackPageSize is the page size used when draining waiting feedbacks.
const feedbackPageSize = 200

// WaitingFeedback is one pending-feedback record.
type WaitingFeedback struct {
	ItemID           int64
	ItemTitle        string
	BuyerID          int64
	BuyerLogin       string
	Op               int64
	PossibilityToAdd int64
}

// FeedbackRequest describes one feedback entry to post.
type FeedbackRequest struct {
	ItemID             int64
	UseCommentTemplate bool
	BuyerID            int64
	Comment            string
	CommentType        string
	Op                 int64
}

// WaitingFeedbacks drains the list of buyers still awaiting feedback,
// paging through the service 200 records at a time.
func (c *Client) WaitingFeedbacks(ctx context.Context) ([]WaitingFeedback, error) {
	resp, err := c.call(ctx, "doGetWaitingFeedbacksCount", nil)
	if err != nil {
		return nil, err
	}
	remaining, err := resp.Int("feedbackCount")
	if err != nil {
		return nil, fmt.Errorf("doGetWaitingFeedbacksCount: %w", err)
	}

	var feedbacks []WaitingFeedback
	for offset := 0; remaining > 0; offset++ {
		page, err := c.call(ctx, "doGetWaitingFeedbacks", soap.Params{
			{Name: "offset", Value: offset},
			{Name: "packageSize", Value: feedbackPageSize},
		})
		if err != nil {
			return nil, err
		}
		for _, row := range page.Items("feWaitList") {
			fb, err := parseWaitingFeedback(row)
			if err != nil {
				return nil, err
			}
			feedbacks = append(feedbacks, fb)
		}
		remaining -= feedbackPageSize
	}
	return feedbacks, nil
}

func parseWaitingFeedback(row *soap.Response) (WaitingFeedback, error) {
	itemID, err := row.Int("feItemId")
	if err != nil {
		return WaitingFeedback{}, fmt.Errorf("doGetWaitingFeedbacks: %w", err)
	}
	buyerID, err := row.Int("feToUserId")
	if err != nil {
		return WaitingFeedback{}, fmt.Errorf("doGetWaitingFeedbacks: %w", err)
	}
	op, err := row.Int("feOp")
	if err != nil {
		return WaitingFeedback{}, fmt.Errorf("doGetWaitingFeedbacks: %w", err)
	}
	possibility, _ := row.Int("fePossibilityToAdd")
	return WaitingFeedback{
		ItemID:           itemID,
		ItemTitle:        row.Text("feItemTitle"),
		BuyerID:          buyerID,
		BuyerLogin:       row.Text("feToUserLogin"),
		Op:               op,
		PossibilityToAdd: possibility,
	}, nil
}

// SendFeedback posts one feedback entry and returns the feedback id.
func (c *Client) SendFeedback(ctx context.Context, req FeedbackRequest) (int64, error) {
	resp, err := c.call(ctx, "doFeedback", soap.Params{
		{Name: "feItemId", Value: req.ItemID},
		{Name: "feUseCommentTemplate", Value: req.UseCommentTemplate},
		{Name: "feToUserId", Value: req.BuyerID},
		{Name: "feComment", Value: req.Comment},
		{Name: "feCommentType", Value: req.CommentType},
		{Name: "feOp", Value: req.Op},
	})
	if err != nil {
		return 0, err
	}
	id, err := resp.Int("feedbackId")
	if err != nil {
		return 0, fmt.Errorf("doFeedback: %w", err)
	}
	return id, nil
}

// SendRefundForms files a refund claim for one purchase. The result items
// are returned service-shaped.
func (c *Client) SendRefundForms(ctx context.Context, itemID, buyerID, reason, quantitySold int64) ([]*soap.Response, error) {
	resp, err := c.call(ctx, "doSendRefundForms", soap.Params{
		{Name: "sendRefundFormsDataArr", Value: []any{soap.Params{
			{Name: "itemId", Value: itemID},
			{Name: "buyerId", Value: buyerID},
			{Name: "refundReason", Value: reason},
			{Name: "itemQuantitySold", Value: quantitySold},
		}}},
	})
	if err != nil {
		return nil, err
	}
	return resp.Items("sendRefundFormsResultsArr"), nil
}
