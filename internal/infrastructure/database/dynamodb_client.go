package database

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ConnectDynamoDB creates a DynamoDB client using environment variables.
//
// Supported env vars (local-friendly):
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID (default: local)
//   - AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
func ConnectDynamoDB(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := NewDynamoDBConfigFromEnv(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := os.Getenv("DYNAMODB_ENDPOINT")
	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	log.Printf("[database][dynamodb] client ready region=%s endpoint=%s", cfg.Region, endpoint)
	return client, nil
}

func NewDynamoDBConfigFromEnv(ctx context.Context) (aws.Config, error) {
	// Local DynamoDB does not validate credentials, but the AWS SDK requires them.
	creds := credentials.NewStaticCredentialsProvider(
		getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		"",
	)

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(getenvDefault("AWS_REGION", "us-east-1")),
		config.WithCredentialsProvider(creds),
	)
}

// TableSpec describes a table EnsureTables creates when it is missing.
type TableSpec struct {
	Name string
	// GSIs maps index name to its hash key and optional range key.
	GSIs map[string][2]string
}

// DonationTables lists the tables the service expects, honoring the same env
// overrides the repositories read.
func DonationTables() []TableSpec {
	return []TableSpec{
		{
			Name: getenvDefault("PAYMENTS_TABLE", "payments"),
			GSIs: map[string][2]string{
				"campaign_id-index": {"campaign_id", ""},
				"donor_id-index":    {"donor_id", ""},
			},
		},
		{Name: getenvDefault("CAMPAIGNS_TABLE", "campaigns")},
		{
			Name: getenvDefault("RECONCILIATION_TABLE", "reconciliation_tasks"),
			GSIs: map[string][2]string{
				"status-index": {"status", "created_at"},
			},
		},
	}
}

// EnsureTables creates missing tables on PAY_PER_REQUEST billing. Meant for
// DynamoDB Local and test accounts; production tables come from infrastructure code.
func EnsureTables(ctx context.Context, ddb *dynamodb.Client, specs []TableSpec) error {
	for _, spec := range specs {
		_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(spec.Name)})
		if err == nil {
			log.Printf("[database][dynamodb] table exists name=%s", spec.Name)
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return err
		}

		if _, err := ddb.CreateTable(ctx, createTableInput(spec)); err != nil {
			return err
		}
		log.Printf("[database][dynamodb] table created name=%s gsis=%d", spec.Name, len(spec.GSIs))
	}
	return nil
}

func createTableInput(spec TableSpec) *dynamodb.CreateTableInput {
	attrs := map[string]struct{}{"id": {}}
	in := &dynamodb.CreateTableInput{
		TableName:   aws.String(spec.Name),
		BillingMode: types.BillingModePayPerRequest,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
	}
	for name, keys := range spec.GSIs {
		schema := []types.KeySchemaElement{
			{AttributeName: aws.String(keys[0]), KeyType: types.KeyTypeHash},
		}
		attrs[keys[0]] = struct{}{}
		if keys[1] != "" {
			schema = append(schema, types.KeySchemaElement{AttributeName: aws.String(keys[1]), KeyType: types.KeyTypeRange})
			attrs[keys[1]] = struct{}{}
		}
		in.GlobalSecondaryIndexes = append(in.GlobalSecondaryIndexes, types.GlobalSecondaryIndex{
			IndexName:  aws.String(name),
			KeySchema:  schema,
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		})
	}
	for name := range attrs {
		in.AttributeDefinitions = append(in.AttributeDefinitions, types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		})
	}
	return in
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
