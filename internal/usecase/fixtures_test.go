package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"donation_platform/internal/adapter/persistence/memory"
	"donation_platform/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

// fakeGateway behaves like a processor: refunds are idempotent per key and bounded by
// the captured amount of the charge.
type fakeGateway struct {
	mu           sync.Mutex
	seq          int
	outcome      entities.IntentOutcome
	confirmCalls int
	charges      map[string]decimal.Decimal
	refunded     map[string]decimal.Decimal
	byKey        map[string]entities.GatewayRefund
	refundCalls  int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		outcome:  entities.IntentOutcomeSucceeded,
		charges:  make(map[string]decimal.Decimal),
		refunded: make(map[string]decimal.Decimal),
		byKey:    make(map[string]entities.GatewayRefund),
	}
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) CreateIntent(_ context.Context, req entities.GatewayIntentRequest) (entities.GatewayIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("pi_%d", g.seq)
	g.charges[chargeFor(id)] = req.Amount
	return entities.GatewayIntent{IntentID: id, ClientToken: id + "_secret"}, nil
}

func (g *fakeGateway) ConfirmIntent(_ context.Context, intentID string) (entities.GatewayConfirmation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.confirmCalls++
	conf := entities.GatewayConfirmation{Outcome: g.outcome, ProviderStatus: string(g.outcome)}
	switch g.outcome {
	case entities.IntentOutcomeSucceeded:
		conf.ChargeID = chargeFor(intentID)
	case entities.IntentOutcomeRequiresAction:
		conf.ContinuationToken = intentID + "_3ds"
	}
	return conf, nil
}

func (g *fakeGateway) CreateRefund(_ context.Context, req entities.GatewayRefundRequest) (entities.GatewayRefund, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refundCalls++
	if r, ok := g.byKey[req.IdempotencyKey]; ok {
		return r, nil
	}
	captured, ok := g.charges[req.ChargeID]
	if !ok {
		return entities.GatewayRefund{}, errors.New("no such charge")
	}
	if g.refunded[req.ChargeID].Add(req.Amount).GreaterThan(captured) {
		return entities.GatewayRefund{}, errors.New("refund exceeds captured amount")
	}
	g.refunded[req.ChargeID] = g.refunded[req.ChargeID].Add(req.Amount)
	g.seq++
	r := entities.GatewayRefund{RefundID: fmt.Sprintf("re_%d", g.seq), ProviderStatus: "succeeded"}
	g.byKey[req.IdempotencyKey] = r
	return r, nil
}

func chargeFor(intentID string) string {
	return "ch_" + strings.TrimPrefix(intentID, "pi_")
}

type testEnv struct {
	repo    *memory.PaymentRepository
	ledger  *memory.CampaignLedger
	queue   *memory.ReconciliationQueue
	gateway *fakeGateway

	intents   *PaymentIntentUseCase
	recorder  *DonationRecorderUseCase
	confirm   *PaymentConfirmUseCase
	refunds   *RefundUseCase
	stats     *StatsUseCase
	reconcile *ReconciliationUseCase
}

var testPolicy = PaymentPolicy{
	MinDonation:         money("0.50"),
	MaxDonation:         money("999999.99"),
	GatewayTimeout:      time.Second,
	LedgerRetryAttempts: 3,
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		repo:    memory.NewPaymentRepository(),
		ledger:  memory.NewCampaignLedger(),
		queue:   memory.NewReconciliationQueue(),
		gateway: newFakeGateway(),
	}
	e.intents = NewPaymentIntentUseCase(e.repo, e.ledger, e.gateway, testPolicy)
	e.recorder = NewDonationRecorderUseCase(e.repo, e.ledger, nil, nil, testPolicy)
	e.confirm = NewPaymentConfirmUseCase(e.repo, e.gateway, e.recorder, e.queue, nil, testPolicy)
	e.refunds = NewRefundUseCase(e.repo, e.ledger, e.gateway, e.queue, nil, nil, testPolicy)
	e.stats = NewStatsUseCase(e.repo, e.ledger, nil)
	e.reconcile = NewReconciliationUseCase(e.queue, e.repo, e.ledger, e.recorder, e.refunds, nil)
	return e
}

func (e *testEnv) seedCampaign(t *testing.T, id, ownerID string) entities.Campaign {
	t.Helper()
	c, err := e.ledger.Create(context.Background(), entities.Campaign{
		ID:           id,
		OwnerID:      ownerID,
		Title:        "Clean water",
		Type:         entities.CampaignTypeCrowdfunding,
		Status:       entities.CampaignStatusActive,
		Currency:     "USD",
		GoalAmount:   money("1000"),
		RaisedAmount: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("seed campaign: %v", err)
	}
	return c
}

// donate creates and confirms a donation end to end.
func (e *testEnv) donate(t *testing.T, campaignID string, donor entities.Actor, amount string, anonymous bool) entities.Payment {
	t.Helper()
	ctx := context.Background()
	created, err := e.intents.CreateIntent(ctx, CreateIntentCommand{
		CampaignID: campaignID,
		Amount:     money(amount),
		Currency:   "USD",
		Donor:      donor,
		Anonymous:  anonymous,
	})
	if err != nil {
		t.Fatalf("create intent: %v", err)
	}
	res, err := e.confirm.Confirm(ctx, created.IntentID, donor.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.Outcome != entities.IntentOutcomeSucceeded || res.LedgerPending {
		t.Fatalf("unexpected confirm result: %+v", res)
	}
	return res.Payment
}

func (e *testEnv) raised(t *testing.T, campaignID string) decimal.Decimal {
	t.Helper()
	c, err := e.ledger.FindDonatable(context.Background(), campaignID)
	if err != nil {
		t.Fatalf("find campaign: %v", err)
	}
	return c.RaisedAmount
}

// finishesWithin fails the test when fn is still running after d.
func finishesWithin(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("still running after %s", d)
	}
}

// overlappingGateway holds refund calls until want of them are in flight at once.
type overlappingGateway struct {
	*fakeGateway
	want    int
	gate    sync.Mutex
	arrived int
	release chan struct{}
}

func newOverlappingGateway(inner *fakeGateway, want int) *overlappingGateway {
	return &overlappingGateway{fakeGateway: inner, want: want, release: make(chan struct{})}
}

func (g *overlappingGateway) CreateRefund(ctx context.Context, req entities.GatewayRefundRequest) (entities.GatewayRefund, error) {
	g.gate.Lock()
	g.arrived++
	if g.arrived == g.want {
		close(g.release)
	}
	g.gate.Unlock()
	select {
	case <-g.release:
	case <-ctx.Done():
		return entities.GatewayRefund{}, ctx.Err()
	}
	return g.fakeGateway.CreateRefund(ctx, req)
}

var (
	donorAlice = entities.Actor{ID: "donor-alice", Role: entities.RoleDonor, Name: "Alice", Email: "alice@example.com"}
	donorBob   = entities.Actor{ID: "donor-bob", Role: entities.RoleDonor, Name: "Bob", Email: "bob@example.com"}
	ownerCarol = entities.Actor{ID: "owner-carol", Role: entities.RoleCreator, Name: "Carol"}
	adminDan   = entities.Actor{ID: "admin-dan", Role: entities.RoleAdmin, Name: "Dan"}
)
