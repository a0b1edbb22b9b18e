package repository

import (
	"context"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultReconciliationTableName = "reconciliation_tasks"
	reconciliationStatusIndex      = "status-index"
)

type reconciliationTaskItem struct {
	ID          string `dynamodbav:"id"`
	Kind        string `dynamodbav:"kind"`
	Status      string `dynamodbav:"status"`
	PaymentID   string `dynamodbav:"payment_id"`
	CampaignID  string `dynamodbav:"campaign_id"`
	DedupeKey   string `dynamodbav:"dedupe_key"`
	Amount      string `dynamodbav:"amount"`
	ChargeID    string `dynamodbav:"charge_id,omitempty"`
	RefundID    string `dynamodbav:"refund_id,omitempty"`
	IdemKey     string `dynamodbav:"idempotency_key,omitempty"`
	Reason      string `dynamodbav:"reason,omitempty"`
	RequestedBy string `dynamodbav:"requested_by,omitempty"`
	Attempts    int    `dynamodbav:"attempts"`
	LastError   string `dynamodbav:"last_error,omitempty"`
	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
}

// ReconciliationQueueDynamoRepository stores reconciliation tasks in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status, SK: created_at)
type ReconciliationQueueDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IReconciliationQueue = (*ReconciliationQueueDynamoRepository)(nil)

func NewReconciliationQueueDynamoRepository(ddb *dynamodb.Client) *ReconciliationQueueDynamoRepository {
	return &ReconciliationQueueDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("RECONCILIATION_TABLE", defaultReconciliationTableName),
	}
}

func (r *ReconciliationQueueDynamoRepository) Enqueue(ctx context.Context, task entities.ReconciliationTask) (entities.ReconciliationTask, error) {
	av, err := attributevalue.MarshalMap(toReconciliationTaskItem(task))
	if err != nil {
		return entities.ReconciliationTask{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ReconciliationTask{}, err
	}
	return task, nil
}

// ListPending returns pending tasks oldest first.
func (r *ReconciliationQueueDynamoRepository) ListPending(ctx context.Context, limit int) ([]entities.ReconciliationTask, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(reconciliationStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(entities.ReconciliationStatusPending)},
		},
		ScanIndexForward: aws.Bool(true),
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}

	tasks := make([]entities.ReconciliationTask, 0, len(out.Items))
	for _, raw := range out.Items {
		var it reconciliationTaskItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		tasks = append(tasks, fromReconciliationTaskItem(it))
	}
	return tasks, nil
}

func (r *ReconciliationQueueDynamoRepository) MarkResolved(ctx context.Context, id string) error {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(entities.ReconciliationStatusResolved)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *ReconciliationQueueDynamoRepository) MarkAttemptFailed(ctx context.Context, id string, lastErr string) error {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #last_error = :last_error, #updated_at = :updated_at ADD #attempts :one"
		vals := map[string]types.AttributeValue{
			":last_error": &types.AttributeValueMemberS{Value: lastErr},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":one":        &types.AttributeValueMemberN{Value: "1"},
		}
		names := map[string]string{
			"#last_error": "last_error",
			"#updated_at": "updated_at",
			"#attempts":   "attempts",
		}
		return expr, vals, names
	})
}

func (r *ReconciliationQueueDynamoRepository) MarkManualReview(ctx context.Context, id string, lastErr string) error {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :status, #last_error = :last_error, #updated_at = :updated_at ADD #attempts :one"
		vals := map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: string(entities.ReconciliationStatusManualReview)},
			":last_error": &types.AttributeValueMemberS{Value: lastErr},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":one":        &types.AttributeValueMemberN{Value: "1"},
		}
		names := map[string]string{
			"#status":     "status",
			"#last_error": "last_error",
			"#updated_at": "updated_at",
			"#attempts":   "attempts",
		}
		return expr, vals, names
	})
}

// update ignores missing tasks: a task deleted by an operator has nothing left to mark.
func (r *ReconciliationQueueDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) error {
	updateExpr, values, names := build(nowRFC3339())

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
	})
	if err != nil {
		if _, ok := isConditionalCheckFailed(err); ok {
			return nil
		}
		return err
	}
	return nil
}

func toReconciliationTaskItem(t entities.ReconciliationTask) reconciliationTaskItem {
	return reconciliationTaskItem{
		ID:          t.ID,
		Kind:        string(t.Kind),
		Status:      string(t.Status),
		PaymentID:   t.PaymentID,
		CampaignID:  t.CampaignID,
		DedupeKey:   t.DedupeKey,
		Amount:      t.Amount.String(),
		ChargeID:    t.ChargeID,
		RefundID:    t.RefundID,
		IdemKey:     t.IdempotencyKey,
		Reason:      t.Reason,
		RequestedBy: t.RequestedBy,
		Attempts:    t.Attempts,
		LastError:   t.LastError,
		CreatedAt:   formatTime(t.CreatedAt),
		UpdatedAt:   formatTime(t.UpdatedAt),
	}
}

func fromReconciliationTaskItem(it reconciliationTaskItem) entities.ReconciliationTask {
	return entities.ReconciliationTask{
		ID:             it.ID,
		Kind:           entities.ReconciliationKind(it.Kind),
		Status:         entities.ReconciliationStatus(it.Status),
		PaymentID:      it.PaymentID,
		CampaignID:     it.CampaignID,
		DedupeKey:      it.DedupeKey,
		Amount:         parseMoney(it.Amount),
		ChargeID:       it.ChargeID,
		RefundID:       it.RefundID,
		IdempotencyKey: it.IdemKey,
		Reason:         it.Reason,
		RequestedBy:    it.RequestedBy,
		Attempts:       it.Attempts,
		LastError:      it.LastError,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
}
