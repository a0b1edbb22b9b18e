package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"donation_platform/internal/domain/entities"
	"donation_platform/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultCampaignsCollection = "campaigns"

type donationDocument struct {
	PaymentID string               `bson:"payment_id"`
	DonorID   string               `bson:"donor_id,omitempty"`
	DonorName string               `bson:"donor_name,omitempty"`
	Anonymous bool                 `bson:"anonymous"`
	Amount    primitive.Decimal128 `bson:"amount"`
	CreatedAt time.Time            `bson:"created_at"`
}

type campaignDocument struct {
	ID           string               `bson:"_id"`
	OwnerID      string               `bson:"owner_id"`
	Title        string               `bson:"title"`
	Type         string               `bson:"type"`
	Status       string               `bson:"status"`
	Currency     string               `bson:"currency"`
	GoalAmount   primitive.Decimal128 `bson:"goal_amount"`
	RaisedAmount primitive.Decimal128 `bson:"raised_amount"`
	Donations    []donationDocument   `bson:"donations"`
	RefundIDs    []string             `bson:"refund_ids"`
	CreatedAt    time.Time            `bson:"created_at"`
	UpdatedAt    time.Time            `bson:"updated_at"`
}

// CampaignLedgerMongoRepository keeps campaigns as documents, the way the
// campaign service stores them. Increments use $inc guarded by the payment id not
// being in donations; decrements use a pipeline update that floors at zero and
// records the dedupe key in refund_ids.
type CampaignLedgerMongoRepository struct {
	coll *mongo.Collection
}

var _ interfaces.ICampaignLedger = (*CampaignLedgerMongoRepository)(nil)

func NewCampaignLedgerMongoRepository(db *mongo.Database, collection string) *CampaignLedgerMongoRepository {
	if collection == "" {
		collection = defaultCampaignsCollection
	}
	return &CampaignLedgerMongoRepository{coll: db.Collection(collection)}
}

func (r *CampaignLedgerMongoRepository) Create(ctx context.Context, c entities.Campaign) (entities.Campaign, error) {
	doc, err := toCampaignDocument(c)
	if err != nil {
		return entities.Campaign{}, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return entities.Campaign{}, interfaces.ErrCampaignAlreadyExists
		}
		return entities.Campaign{}, err
	}
	return c, nil
}

func (r *CampaignLedgerMongoRepository) FindDonatable(ctx context.Context, campaignID string) (entities.Campaign, error) {
	var doc campaignDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": campaignID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Campaign{}, nil
	}
	if err != nil {
		return entities.Campaign{}, err
	}
	return fromCampaignDocument(doc)
}

func (r *CampaignLedgerMongoRepository) UpdateStatus(ctx context.Context, campaignID string, status entities.CampaignStatus) (entities.Campaign, error) {
	var doc campaignDocument
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": campaignID},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return entities.Campaign{}, nil
	}
	if err != nil {
		return entities.Campaign{}, err
	}
	return fromCampaignDocument(doc)
}

func (r *CampaignLedgerMongoRepository) IncrementRaised(ctx context.Context, campaignID string, amount decimal.Decimal, entry entities.DonationEntry) (bool, error) {
	amt, err := toDecimal128(amount)
	if err != nil {
		return false, err
	}
	entryDoc, err := toDonationDocument(entry)
	if err != nil {
		return false, err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": campaignID, "donations.payment_id": bson.M{"$ne": entry.PaymentID}},
		bson.M{
			"$inc":  bson.M{"raised_amount": amt},
			"$push": bson.M{"donations": entryDoc},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	return false, r.missingOrApplied(ctx, campaignID)
}

func (r *CampaignLedgerMongoRepository) DecrementRaised(ctx context.Context, campaignID string, amount decimal.Decimal, dedupeKey string) (bool, error) {
	amt, err := toDecimal128(amount)
	if err != nil {
		return false, err
	}
	zero, _ := primitive.ParseDecimal128("0")

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "raised_amount", Value: bson.D{{Key: "$max", Value: bson.A{
				zero,
				bson.D{{Key: "$subtract", Value: bson.A{"$raised_amount", amt}}},
			}}}},
			{Key: "refund_ids", Value: bson.D{{Key: "$concatArrays", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{"$refund_ids", bson.A{}}}},
				bson.A{dedupeKey},
			}}}},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": campaignID, "refund_ids": bson.M{"$ne": dedupeKey}}, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	return false, r.missingOrApplied(ctx, campaignID)
}

func (r *CampaignLedgerMongoRepository) ListDonationHistory(ctx context.Context, campaignID string) ([]entities.DonationEntry, error) {
	c, err := r.FindDonatable(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return c.Donations, nil
}

// missingOrApplied runs after a guarded update matched nothing: either the campaign is
// gone or the dedupe key was already applied.
func (r *CampaignLedgerMongoRepository) missingOrApplied(ctx context.Context, campaignID string) error {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": campaignID}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return interfaces.ErrLedgerCampaignNotFound
	}
	return nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal128 %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	s := v.String()
	if s == "" || s == "NaN" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func toDonationDocument(d entities.DonationEntry) (donationDocument, error) {
	amt, err := toDecimal128(d.Amount)
	if err != nil {
		return donationDocument{}, err
	}
	return donationDocument{
		PaymentID: d.PaymentID,
		DonorID:   d.DonorID,
		DonorName: d.DonorName,
		Anonymous: d.Anonymous,
		Amount:    amt,
		CreatedAt: d.CreatedAt.UTC(),
	}, nil
}

func toCampaignDocument(c entities.Campaign) (campaignDocument, error) {
	goal, err := toDecimal128(c.GoalAmount)
	if err != nil {
		return campaignDocument{}, err
	}
	raised, err := toDecimal128(c.RaisedAmount)
	if err != nil {
		return campaignDocument{}, err
	}
	doc := campaignDocument{
		ID:           c.ID,
		OwnerID:      c.OwnerID,
		Title:        c.Title,
		Type:         string(c.Type),
		Status:       string(c.Status),
		Currency:     c.Currency,
		GoalAmount:   goal,
		RaisedAmount: raised,
		Donations:    make([]donationDocument, 0, len(c.Donations)),
		RefundIDs:    []string{},
		CreatedAt:    c.CreatedAt.UTC(),
		UpdatedAt:    c.UpdatedAt.UTC(),
	}
	for _, d := range c.Donations {
		dd, err := toDonationDocument(d)
		if err != nil {
			return campaignDocument{}, err
		}
		doc.Donations = append(doc.Donations, dd)
	}
	return doc, nil
}

func fromCampaignDocument(doc campaignDocument) (entities.Campaign, error) {
	goal, err := fromDecimal128(doc.GoalAmount)
	if err != nil {
		return entities.Campaign{}, err
	}
	raised, err := fromDecimal128(doc.RaisedAmount)
	if err != nil {
		return entities.Campaign{}, err
	}
	c := entities.Campaign{
		ID:           doc.ID,
		OwnerID:      doc.OwnerID,
		Title:        doc.Title,
		Type:         entities.CampaignType(doc.Type),
		Status:       entities.CampaignStatus(doc.Status),
		Currency:     doc.Currency,
		GoalAmount:   goal,
		RaisedAmount: raised,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
	for _, d := range doc.Donations {
		amt, err := fromDecimal128(d.Amount)
		if err != nil {
			return entities.Campaign{}, err
		}
		c.Donations = append(c.Donations, entities.DonationEntry{
			PaymentID: d.PaymentID,
			DonorID:   d.DonorID,
			DonorName: d.DonorName,
			Anonymous: d.Anonymous,
			Amount:    amt,
			CreatedAt: d.CreatedAt,
		})
	}
	return c, nil
}
