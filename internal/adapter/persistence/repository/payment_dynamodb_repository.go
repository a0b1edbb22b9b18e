package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsCampaignIDIndex  = "campaign_id-index"
	paymentsDonorIDIndex     = "donor_id-index"
	intentMarkerPrefix       = "intent#"
)

type refundItem struct {
	RefundID       string `dynamodbav:"refund_id"`
	IdempotencyKey string `dynamodbav:"idempotency_key,omitempty"`
	Amount         string `dynamodbav:"amount"`
	Reason         string `dynamodbav:"reason,omitempty"`
	RequestedBy    string `dynamodbav:"requested_by,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
}

type paymentItem struct {
	ID             string       `dynamodbav:"id"`
	CampaignID     string       `dynamodbav:"campaign_id"`
	DonorID        string       `dynamodbav:"donor_id"`
	IntentID       string       `dynamodbav:"intent_id"`
	ChargeID       string       `dynamodbav:"charge_id,omitempty"`
	Gateway        string       `dynamodbav:"gateway"`
	Amount         string       `dynamodbav:"amount"`
	Currency       string       `dynamodbav:"currency"`
	RefundedAmount string       `dynamodbav:"refunded_amount"`
	Status         string       `dynamodbav:"status"`
	LedgerRecorded bool         `dynamodbav:"ledger_recorded"`
	Refunds        []refundItem `dynamodbav:"refunds,omitempty"`
	DonorName      string       `dynamodbav:"donor_name,omitempty"`
	DonorEmail     string       `dynamodbav:"donor_email,omitempty"`
	Anonymous      bool         `dynamodbav:"anonymous"`
	Message        string       `dynamodbav:"message,omitempty"`
	Version        int64        `dynamodbav:"version"`
	CreatedAt      string       `dynamodbav:"created_at"`
	UpdatedAt      string       `dynamodbav:"updated_at"`
	SucceededAt    string       `dynamodbav:"succeeded_at,omitempty"`
}

// intentMarkerItem reserves an intent id so two payments can never share one.
type intentMarkerItem struct {
	ID        string `dynamodbav:"id"`
	PaymentID string `dynamodbav:"payment_id"`
	CreatedAt string `dynamodbav:"created_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: campaign_id-index (PK: campaign_id)
//   - GSI: donor_id-index (PK: donor_id)
//
// Intent uniqueness is kept by a marker item (id = "intent#<intent_id>") written in the
// same transaction as the payment. Markers carry no campaign_id/donor_id so they never
// show up in the indexes.
type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	if p.Version == 0 {
		p.Version = 1
	}
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}
	marker, err := attributevalue.MarshalMap(intentMarkerItem{
		ID:        intentMarkerPrefix + p.IntentID,
		PaymentID: p.ID,
		CreatedAt: formatTime(p.CreatedAt),
	})
	if err != nil {
		return entities.Payment{}, err
	}

	names := map[string]string{"#id": "id"}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     marker,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: names,
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: names,
			}},
		},
	})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for _, reason := range tce.CancellationReasons {
				if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
					return entities.Payment{}, interfaces.ErrDuplicateIntent
				}
			}
		}
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) GetByIntentID(ctx context.Context, intentID string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: intentMarkerPrefix + intentID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var marker intentMarkerItem
	if err := attributevalue.UnmarshalMap(out.Item, &marker); err != nil {
		return entities.Payment{}, err
	}
	return r.GetByID(ctx, marker.PaymentID)
}

// Update replaces the stored payment only if its version still equals expectedVersion.
// intent_id and created_at are immutable and kept from the stored item.
func (r *PaymentDynamoRepository) Update(ctx context.Context, p entities.Payment, expectedVersion int64) (entities.Payment, error) {
	p.Version = expectedVersion + 1
	it := toPaymentItem(p)
	refunds, err := refundsAttr(it.Refunds)
	if err != nil {
		return entities.Payment{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: p.ID},
		},
		UpdateExpression: aws.String("SET #charge_id = :charge_id, #status = :status, #refunded_amount = :refunded_amount, " +
			"#ledger_recorded = :ledger_recorded, #refunds = :refunds, #version = :next, #updated_at = :updated_at, #succeeded_at = :succeeded_at"),
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":              "id",
			"#charge_id":       "charge_id",
			"#status":          "status",
			"#refunded_amount": "refunded_amount",
			"#ledger_recorded": "ledger_recorded",
			"#refunds":         "refunds",
			"#version":         "version",
			"#updated_at":      "updated_at",
			"#succeeded_at":    "succeeded_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":charge_id":       &types.AttributeValueMemberS{Value: it.ChargeID},
			":status":          &types.AttributeValueMemberS{Value: it.Status},
			":refunded_amount": &types.AttributeValueMemberS{Value: it.RefundedAmount},
			":ledger_recorded": &types.AttributeValueMemberBOOL{Value: it.LedgerRecorded},
			":refunds":         refunds,
			":next":            &types.AttributeValueMemberN{Value: strconv.FormatInt(p.Version, 10)},
			":expected":        &types.AttributeValueMemberN{Value: strconv.FormatInt(expectedVersion, 10)},
			":updated_at":      &types.AttributeValueMemberS{Value: it.UpdatedAt},
			":succeeded_at":    &types.AttributeValueMemberS{Value: it.SucceededAt},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return entities.Payment{}, interfaces.ErrPaymentVersionConflict
		}
		return entities.Payment{}, err
	}

	var stored paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &stored); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(stored), nil
}

func (r *PaymentDynamoRepository) ListByCampaignID(ctx context.Context, campaignID string) ([]entities.Payment, error) {
	return r.queryIndex(ctx, paymentsCampaignIDIndex, "campaign_id", campaignID)
}

func (r *PaymentDynamoRepository) ListByDonorID(ctx context.Context, donorID string) ([]entities.Payment, error) {
	return r.queryIndex(ctx, paymentsDonorIDIndex, "donor_id", donorID)
}

func (r *PaymentDynamoRepository) queryIndex(ctx context.Context, index, attr, value string) ([]entities.Payment, error) {
	paginator := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
	})

	items := make([]entities.Payment, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it paymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromPaymentItem(it))
		}
	}
	return items, nil
}

func refundsAttr(refunds []refundItem) (types.AttributeValue, error) {
	list := make([]types.AttributeValue, 0, len(refunds))
	for _, rf := range refunds {
		av, err := attributevalue.MarshalMap(rf)
		if err != nil {
			return nil, fmt.Errorf("marshal refund %s: %w", rf.RefundID, err)
		}
		list = append(list, &types.AttributeValueMemberM{Value: av})
	}
	return &types.AttributeValueMemberL{Value: list}, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	it := paymentItem{
		ID:             p.ID,
		CampaignID:     p.CampaignID,
		DonorID:        p.DonorID,
		IntentID:       p.IntentID,
		ChargeID:       p.ChargeID,
		Gateway:        p.Gateway,
		Amount:         p.Amount.String(),
		Currency:       p.Currency,
		RefundedAmount: p.RefundedAmount.String(),
		Status:         string(p.Status),
		LedgerRecorded: p.LedgerRecorded,
		DonorName:      p.DonorName,
		DonorEmail:     p.DonorEmail,
		Anonymous:      p.Anonymous,
		Message:        p.Message,
		Version:        p.Version,
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
	if p.SucceededAt != nil {
		it.SucceededAt = formatTime(*p.SucceededAt)
	}
	for _, rf := range p.Refunds {
		it.Refunds = append(it.Refunds, refundItem{
			RefundID:       rf.RefundID,
			IdempotencyKey: rf.IdempotencyKey,
			Amount:         rf.Amount.String(),
			Reason:         rf.Reason,
			RequestedBy:    rf.RequestedBy,
			CreatedAt:      formatTime(rf.CreatedAt),
		})
	}
	return it
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:             it.ID,
		CampaignID:     it.CampaignID,
		DonorID:        it.DonorID,
		IntentID:       it.IntentID,
		ChargeID:       it.ChargeID,
		Gateway:        it.Gateway,
		Amount:         parseMoney(it.Amount),
		Currency:       it.Currency,
		RefundedAmount: parseMoney(it.RefundedAmount),
		Status:         entities.PaymentStatus(it.Status),
		LedgerRecorded: it.LedgerRecorded,
		DonorName:      it.DonorName,
		DonorEmail:     it.DonorEmail,
		Anonymous:      it.Anonymous,
		Message:        it.Message,
		Version:        it.Version,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
	if it.SucceededAt != "" {
		at := parseTime(it.SucceededAt)
		p.SucceededAt = &at
	}
	for _, rf := range it.Refunds {
		p.Refunds = append(p.Refunds, entities.RefundRecord{
			RefundID:       rf.RefundID,
			IdempotencyKey: rf.IdempotencyKey,
			Amount:         parseMoney(rf.Amount),
			Reason:         rf.Reason,
			RequestedBy:    rf.RequestedBy,
			CreatedAt:      parseTime(rf.CreatedAt),
		})
	}
	return p
}
