package database

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestCreateTableInput(t *testing.T) {
	in := createTableInput(TableSpec{
		Name: "reconciliation_tasks",
		GSIs: map[string][2]string{"status-index": {"status", "created_at"}},
	})

	if aws.ToString(in.TableName) != "reconciliation_tasks" || in.BillingMode != types.BillingModePayPerRequest {
		t.Fatalf("unexpected table input: %+v", in)
	}
	if len(in.AttributeDefinitions) != 3 {
		t.Fatalf("expected id, status and created_at definitions, got %d", len(in.AttributeDefinitions))
	}
	if len(in.GlobalSecondaryIndexes) != 1 || len(in.GlobalSecondaryIndexes[0].KeySchema) != 2 {
		t.Fatalf("unexpected indexes: %+v", in.GlobalSecondaryIndexes)
	}
}

func TestDonationTables_EnvOverrides(t *testing.T) {
	t.Setenv("PAYMENTS_TABLE", "payments-test")

	specs := DonationTables()
	if len(specs) != 3 || specs[0].Name != "payments-test" || specs[1].Name != "campaigns" {
		t.Fatalf("unexpected specs: %+v", specs)
	}
	if len(specs[0].GSIs) != 2 {
		t.Fatalf("expected payments indexes, got %v", specs[0].GSIs)
	}
}
