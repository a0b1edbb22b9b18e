package repository

import (
	"context"
	"fmt"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const (
	defaultCampaignsTableName = "campaigns"
	maxDecrementAttempts      = 5
)

type donationItem struct {
	PaymentID string `dynamodbav:"payment_id"`
	DonorID   string `dynamodbav:"donor_id,omitempty"`
	DonorName string `dynamodbav:"donor_name,omitempty"`
	Anonymous bool   `dynamodbav:"anonymous"`
	Amount    string `dynamodbav:"amount"`
	CreatedAt string `dynamodbav:"created_at"`
}

// campaignItem mirrors the campaign document. raised_amount is a Number attribute so
// ADD can work on it; it is handled outside attributevalue to keep decimal precision.
type campaignItem struct {
	ID         string         `dynamodbav:"id"`
	OwnerID    string         `dynamodbav:"owner_id"`
	Title      string         `dynamodbav:"title"`
	Type       string         `dynamodbav:"type"`
	Status     string         `dynamodbav:"status"`
	Currency   string         `dynamodbav:"currency"`
	GoalAmount string         `dynamodbav:"goal_amount"`
	Raised     string         `dynamodbav:"-"`
	Donations  []donationItem `dynamodbav:"donations"`
	CreatedAt  string         `dynamodbav:"created_at"`
	UpdatedAt  string         `dynamodbav:"updated_at"`
}

// CampaignLedgerDynamoRepository keeps campaign.raised_amount in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// Besides the campaign fields, each item carries two string sets used as dedupe
// guards: donation_ids (applied increments) and refund_ids (applied decrements).
type CampaignLedgerDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICampaignLedger = (*CampaignLedgerDynamoRepository)(nil)

func NewCampaignLedgerDynamoRepository(ddb *dynamodb.Client) *CampaignLedgerDynamoRepository {
	return &CampaignLedgerDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CAMPAIGNS_TABLE", defaultCampaignsTableName),
	}
}

func (r *CampaignLedgerDynamoRepository) Create(ctx context.Context, c entities.Campaign) (entities.Campaign, error) {
	it := toCampaignItem(c)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Campaign{}, err
	}
	av["raised_amount"] = numberAttr(c.RaisedAmount)

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return entities.Campaign{}, interfaces.ErrCampaignAlreadyExists
		}
		return entities.Campaign{}, err
	}
	return c, nil
}

func (r *CampaignLedgerDynamoRepository) FindDonatable(ctx context.Context, campaignID string) (entities.Campaign, error) {
	item, err := r.getRaw(ctx, campaignID)
	if err != nil || len(item) == 0 {
		return entities.Campaign{}, err
	}
	return campaignFromAttributes(item)
}

func (r *CampaignLedgerDynamoRepository) UpdateStatus(ctx context.Context, campaignID string, status entities.CampaignStatus) (entities.Campaign, error) {
	return r.update(ctx, campaignID, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// IncrementRaised adds the amount and appends the history entry in one UpdateItem,
// guarded by the payment id not yet being in donation_ids.
func (r *CampaignLedgerDynamoRepository) IncrementRaised(ctx context.Context, campaignID string, amount decimal.Decimal, entry entities.DonationEntry) (bool, error) {
	entryAV, err := attributevalue.MarshalMap(toDonationItem(entry))
	if err != nil {
		return false, err
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: campaignID},
		},
		UpdateExpression: aws.String("SET #donations = list_append(if_not_exists(#donations, :empty), :entry), #updated_at = :updated_at " +
			"ADD #raised :amount, #donation_ids :pid_set"),
		ConditionExpression: aws.String("attribute_exists(#id) AND NOT contains(#donation_ids, :pid)"),
		ExpressionAttributeNames: map[string]string{
			"#id":           "id",
			"#donations":    "donations",
			"#updated_at":   "updated_at",
			"#raised":       "raised_amount",
			"#donation_ids": "donation_ids",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty":      &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":entry":      &types.AttributeValueMemberL{Value: []types.AttributeValue{&types.AttributeValueMemberM{Value: entryAV}}},
			":updated_at": &types.AttributeValueMemberS{Value: nowRFC3339()},
			":amount":     numberAttr(amount),
			":pid_set":    &types.AttributeValueMemberSS{Value: []string{entry.PaymentID}},
			":pid":        &types.AttributeValueMemberS{Value: entry.PaymentID},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if cfe, ok := isConditionalCheckFailed(err); ok {
			if len(cfe.Item) == 0 {
				return false, interfaces.ErrLedgerCampaignNotFound
			}
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DecrementRaised subtracts the amount, flooring at zero. When raised >= amount a plain
// ADD of the negative amount is attempted; otherwise raised is set to zero. Both writes
// are conditional on the observed branch so a concurrent change retries instead of
// going negative.
func (r *CampaignLedgerDynamoRepository) DecrementRaised(ctx context.Context, campaignID string, amount decimal.Decimal, dedupeKey string) (bool, error) {
	for attempt := 0; attempt < maxDecrementAttempts; attempt++ {
		applied, retry, err := r.decrementOnce(ctx, campaignID, amount, dedupeKey,
			"ADD #raised :neg, #refund_ids :key_set SET #updated_at = :updated_at",
			"#raised >= :amount",
			map[string]types.AttributeValue{":neg": numberAttr(amount.Neg())},
		)
		if err != nil || !retry {
			return applied, err
		}

		applied, retry, err = r.decrementOnce(ctx, campaignID, amount, dedupeKey,
			"SET #raised = :zero, #updated_at = :updated_at ADD #refund_ids :key_set",
			"#raised < :amount",
			map[string]types.AttributeValue{":zero": numberAttr(decimal.Zero)},
		)
		if err != nil || !retry {
			return applied, err
		}
	}
	return false, fmt.Errorf("decrement raised on campaign %s: too many concurrent updates", campaignID)
}

// decrementOnce reports retry=true when the branch condition did not hold.
func (r *CampaignLedgerDynamoRepository) decrementOnce(
	ctx context.Context,
	campaignID string,
	amount decimal.Decimal,
	dedupeKey string,
	updateExpr string,
	branchCond string,
	extra map[string]types.AttributeValue,
) (applied bool, retry bool, err error) {
	values := map[string]types.AttributeValue{
		":amount":     numberAttr(amount),
		":key":        &types.AttributeValueMemberS{Value: dedupeKey},
		":key_set":    &types.AttributeValueMemberSS{Value: []string{dedupeKey}},
		":updated_at": &types.AttributeValueMemberS{Value: nowRFC3339()},
	}
	for k, v := range extra {
		values[k] = v
	}

	_, err = r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: campaignID},
		},
		UpdateExpression:    aws.String(updateExpr),
		ConditionExpression: aws.String("attribute_exists(#id) AND NOT contains(#refund_ids, :key) AND " + branchCond),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#raised":     "raised_amount",
			"#refund_ids": "refund_ids",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues:           values,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err == nil {
		return true, false, nil
	}
	cfe, ok := isConditionalCheckFailed(err)
	if !ok {
		return false, false, err
	}
	if len(cfe.Item) == 0 {
		return false, false, interfaces.ErrLedgerCampaignNotFound
	}
	if stringSetContains(cfe.Item, "refund_ids", dedupeKey) {
		return false, false, nil
	}
	return false, true, nil
}

func (r *CampaignLedgerDynamoRepository) ListDonationHistory(ctx context.Context, campaignID string) ([]entities.DonationEntry, error) {
	item, err := r.getRaw(ctx, campaignID)
	if err != nil || len(item) == 0 {
		return nil, err
	}
	c, err := campaignFromAttributes(item)
	if err != nil {
		return nil, err
	}
	return c.Donations, nil
}

func (r *CampaignLedgerDynamoRepository) getRaw(ctx context.Context, campaignID string) (map[string]types.AttributeValue, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: campaignID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	return out.Item, nil
}

func (r *CampaignLedgerDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Campaign, error) {
	updateExpr, values, names := build(nowRFC3339())

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return entities.Campaign{}, nil
		}
		return entities.Campaign{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Campaign{}, nil
	}
	return campaignFromAttributes(out.Attributes)
}

func campaignFromAttributes(item map[string]types.AttributeValue) (entities.Campaign, error) {
	var it campaignItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return entities.Campaign{}, err
	}
	raised, err := decimalAttr(item, "raised_amount")
	if err != nil {
		return entities.Campaign{}, err
	}
	it.Raised = raised.String()
	return fromCampaignItem(it), nil
}

func toCampaignItem(c entities.Campaign) campaignItem {
	it := campaignItem{
		ID:         c.ID,
		OwnerID:    c.OwnerID,
		Title:      c.Title,
		Type:       string(c.Type),
		Status:     string(c.Status),
		Currency:   c.Currency,
		GoalAmount: c.GoalAmount.String(),
		Raised:     c.RaisedAmount.String(),
		Donations:  make([]donationItem, 0, len(c.Donations)),
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
	}
	for _, d := range c.Donations {
		it.Donations = append(it.Donations, toDonationItem(d))
	}
	return it
}

func fromCampaignItem(it campaignItem) entities.Campaign {
	c := entities.Campaign{
		ID:           it.ID,
		OwnerID:      it.OwnerID,
		Title:        it.Title,
		Type:         entities.CampaignType(it.Type),
		Status:       entities.CampaignStatus(it.Status),
		Currency:     it.Currency,
		GoalAmount:   parseMoney(it.GoalAmount),
		RaisedAmount: parseMoney(it.Raised),
		CreatedAt:    parseTime(it.CreatedAt),
		UpdatedAt:    parseTime(it.UpdatedAt),
	}
	for _, d := range it.Donations {
		c.Donations = append(c.Donations, entities.DonationEntry{
			PaymentID: d.PaymentID,
			DonorID:   d.DonorID,
			DonorName: d.DonorName,
			Anonymous: d.Anonymous,
			Amount:    parseMoney(d.Amount),
			CreatedAt: parseTime(d.CreatedAt),
		})
	}
	return c
}

func toDonationItem(d entities.DonationEntry) donationItem {
	return donationItem{
		PaymentID: d.PaymentID,
		DonorID:   d.DonorID,
		DonorName: d.DonorName,
		Anonymous: d.Anonymous,
		Amount:    d.Amount.String(),
		CreatedAt: formatTime(d.CreatedAt),
	}
}
