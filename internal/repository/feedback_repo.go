package repository

import (
	"context"
	"errors"
	"math"
	"regexp"
	"time"

	"feedback-hub/internal/database"
	"feedback-hub/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

var (
	ErrNotFound  = errors.New("feedback not found")
	ErrInvalidID = errors.New("invalid feedback id")
	ErrInternal  = errors.New("database internal error")
)

// FeedbackStore is the store access contract the handlers depend on.
type FeedbackStore interface {
	List(ctx context.Context, opts ListOptions) ([]models.Feedback, int64, error)
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	Create(ctx context.Context, feedback *models.Feedback) error
	Update(ctx context.Context, id string, fields UpdateFields) (*models.Feedback, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
}

// ListOptions carries the already-parsed list query. Empty filter fields
// are ignored; Username is the anchored variant of User used by the
// per-user route.
type ListOptions struct {
	Sentiment string // exact match on sentiment.label
	User      string // case-insensitive substring match on user
	Username  string // case-insensitive whole-string match on user
	Search    string // text search across message and user
	SortBy    string // createdAt, updatedAt, score, user
	SortOrder string // asc or desc
	Limit     int64
	Offset    int64
}

// UpdateFields holds the partial update; nil fields are left untouched.
type UpdateFields struct {
	User      *string
	Message   *string
	Sentiment *models.Sentiment
}

type Stats struct {
	Total        int64            `json:"total"`
	ByLabel      map[string]int64 `json:"byLabel"`
	AverageScore float64          `json:"averageScore"`
}

type FeedbackRepo struct {
	collection *mongo.Collection
	logger     *zap.SugaredLogger
}

func NewFeedbackRepo(logger *zap.SugaredLogger) *FeedbackRepo {
	return &FeedbackRepo{
		collection: database.GetCollection("feedbacks"),
		logger:     logger,
	}
}

// List returns one page of matching records plus the total match count.
// The search filter runs against the text index; if the text query fails
// (index missing), it retries once with a case-insensitive substring match
// across message and user.
func (r *FeedbackRepo) List(ctx context.Context, opts ListOptions) ([]models.Feedback, int64, error) {
	records, total, err := r.runList(ctx, listFilter(opts, true), opts)
	if err != nil && opts.Search != "" {
		r.logger.Warnf("text search failed, retrying with substring match: %v", err)
		records, total, err = r.runList(ctx, listFilter(opts, false), opts)
	}
	if err != nil {
		r.logger.Errorw("failed to list feedback", "error", err)
		return nil, 0, ErrInternal
	}
	return records, total, nil
}

func (r *FeedbackRepo) runList(ctx context.Context, filter bson.M, opts ListOptions) ([]models.Feedback, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(listSort(opts.SortBy, opts.SortOrder)).
		SetSkip(opts.Offset).
		SetLimit(opts.Limit)

	cursor, err := r.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}

	records := []models.Feedback{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *FeedbackRepo) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	var feedback models.Feedback
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Errorw("failed to get feedback", "id", id, "error", err)
		return nil, ErrInternal
	}
	return &feedback, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	now := time.Now()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, feedback)
	if err != nil {
		r.logger.Errorw("failed to insert feedback", "error", err)
		return ErrInternal
	}
	feedback.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// Update applies the non-nil fields plus a fresh updated_at and returns the
// post-update record.
func (r *FeedbackRepo) Update(ctx context.Context, id string, fields UpdateFields) (*models.Feedback, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	update := bson.M{"$set": fields.setDoc(time.Now())}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var feedback models.Feedback
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		r.logger.Errorw("failed to update feedback", "id", id, "error", err)
		return nil, ErrInternal
	}
	return &feedback, nil
}

func (r *FeedbackRepo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Errorw("failed to delete feedback", "id", id, "error", err)
		return ErrInternal
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates the whole collection in one round trip: label counts and
// the global average score come back as two $facet branches.
func (r *FeedbackRepo) Stats(ctx context.Context) (*Stats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$facet", Value: bson.M{
			"byLabel": bson.A{
				bson.M{"$group": bson.M{"_id": "$sentiment.label", "count": bson.M{"$sum": 1}}},
			},
			"score": bson.A{
				bson.M{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": 1}, "avg": bson.M{"$avg": "$sentiment.score"}}},
			},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logger.Errorw("failed to aggregate stats", "error", err)
		return nil, ErrInternal
	}

	var facets []statsFacet
	if err := cursor.All(ctx, &facets); err != nil {
		r.logger.Errorw("failed to decode stats", "error", err)
		return nil, ErrInternal
	}
	if len(facets) == 0 {
		return shapeStats(statsFacet{}), nil
	}
	return shapeStats(facets[0]), nil
}

// EnsureIndexes creates the indexes the list and search queries rely on
func (r *FeedbackRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "message", Value: "text"}, {Key: "user", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "sentiment.label", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "user", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// --- query construction ---

var sortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"score":     "sentiment.score",
	"user":      "user",
}

func listFilter(opts ListOptions, useTextIndex bool) bson.M {
	filter := bson.M{}

	if opts.Sentiment != "" {
		filter["sentiment.label"] = opts.Sentiment
	}
	if opts.User != "" {
		filter["user"] = bson.M{"$regex": regexp.QuoteMeta(opts.User), "$options": "i"}
	}
	if opts.Username != "" {
		filter["user"] = bson.M{"$regex": "^" + regexp.QuoteMeta(opts.Username) + "$", "$options": "i"}
	}
	if opts.Search != "" {
		if useTextIndex {
			filter["$text"] = bson.M{"$search": opts.Search}
		} else {
			quoted := regexp.QuoteMeta(opts.Search)
			filter["$or"] = bson.A{
				bson.M{"message": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"user": bson.M{"$regex": quoted, "$options": "i"}},
			}
		}
	}
	return filter
}

// listSort maps an API sort key to its stored field. Unknown keys fall back
// to the default createdAt-descending ordering; ascending applies only when
// asked for explicitly.
func listSort(sortBy, order string) bson.D {
	field, ok := sortFields[sortBy]
	if !ok {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	direction := -1
	if order == "asc" {
		direction = 1
	}
	return bson.D{{Key: field, Value: direction}}
}

func (f UpdateFields) setDoc(now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if f.User != nil {
		set["user"] = *f.User
	}
	if f.Message != nil {
		set["message"] = *f.Message
	}
	if f.Sentiment != nil {
		set["sentiment"] = *f.Sentiment
	}
	return set
}

// --- stats shaping ---

type labelCount struct {
	Label string `bson:"_id"`
	Count int64  `bson:"count"`
}

type scoreSummary struct {
	Total int64   `bson:"total"`
	Avg   float64 `bson:"avg"`
}

type statsFacet struct {
	ByLabel []labelCount   `bson:"byLabel"`
	Score   []scoreSummary `bson:"score"`
}

// shapeStats starts every known label at zero so the response never omits
// one, then overlays the actual group counts. The average is rounded to two
// decimals and stays 0 for an empty collection.
func shapeStats(facet statsFacet) *Stats {
	stats := &Stats{
		ByLabel: map[string]int64{
			models.LabelPositive: 0,
			models.LabelNeutral:  0,
			models.LabelNegative: 0,
			models.LabelUnknown:  0,
		},
	}
	for _, group := range facet.ByLabel {
		stats.ByLabel[group.Label] = group.Count
	}
	if len(facet.Score) > 0 {
		stats.Total = facet.Score[0].Total
		stats.AverageScore = math.Round(facet.Score[0].Avg*100) / 100
	}
	return stats
}
