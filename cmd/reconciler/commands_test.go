package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/infrastructure/bootstrap"
	"donation_platform/internal/infrastructure/config"

	"github.com/shopspring/decimal"
)

func useMemoryContainer(t *testing.T) *bootstrap.Container {
	t.Helper()
	c, err := bootstrap.Build(context.Background(), &config.Config{
		StoreBackend:   config.BackendMemory,
		LedgerBackend:  config.BackendMemory,
		PaymentGateway: config.GatewayMock,
		MinDonation:    "1",
		MaxDonation:    "100",
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	prev := containerFactory
	containerFactory = func(context.Context) (*bootstrap.Container, error) { return c, nil }
	t.Cleanup(func() { containerFactory = prev })
	return c
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListAndDrain(t *testing.T) {
	c := useMemoryContainer(t)
	ctx := context.Background()

	if _, err := c.Ledger.Create(ctx, entities.Campaign{
		ID: "camp-1", OwnerID: "owner-1", Type: entities.CampaignTypeCrowdfunding,
		Status: entities.CampaignStatusActive, Currency: "USD", CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	if _, err := c.Queue.Enqueue(ctx, entities.ReconciliationTask{
		ID: "task-1", Kind: entities.ReconciliationLedgerIncrement, Status: entities.ReconciliationStatusPending,
		CampaignID: "camp-1", PaymentID: "legacy-9", DedupeKey: "legacy-9", Amount: decimal.RequireFromString("7"),
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed task: %v", err)
	}

	out, err := run(t, "list", "--limit", "10")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var tasks []entities.ReconciliationTask
	if err := json.Unmarshal([]byte(out), &tasks); err != nil || len(tasks) != 1 || tasks[0].ID != "task-1" {
		t.Fatalf("unexpected list output %q err=%v", out, err)
	}

	// The payment behind the task does not exist, so the drain reports a failure.
	if _, err := run(t, "drain"); err == nil {
		t.Fatalf("expected drain to report the unresolved task")
	}
}

func TestDrainEmptyQueue(t *testing.T) {
	useMemoryContainer(t)

	out, err := run(t, "drain", "--limit", "5")
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if !bytes.Contains([]byte(out), []byte(`"processed": 0`)) {
		t.Fatalf("unexpected output %q", out)
	}
}
