package mongodb

import (
	"context"
	"errors"
	"fmt"
	"interview-experience-backend/internal/domain"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type submissionRepo struct {
	coll *mongo.Collection
}

func NewSubmissionRepository(db *mongo.Database) domain.SubmissionRepository {
	return &submissionRepo{coll: db.Collection(submissionsCollection)}
}

func (r *submissionRepo) Create(ctx context.Context, s *domain.Submission) error {
	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// FindAll lists submissions of all users, newest first, joining the author's email.
func (r *submissionRepo) FindAll(ctx context.Context, company string) ([]domain.Submission, error) {
	cursor, err := r.coll.Aggregate(ctx, listPipeline(company))
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	submissions := []domain.Submission{}
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepo) FindOneOwned(ctx context.Context, id, userID string) (*domain.Submission, error) {
	var s domain.Submission
	err := r.coll.FindOne(ctx, ownedFilter(id, userID)).Decode(&s)
	return decodeOwned(&s, err, "get submission")
}

func (r *submissionRepo) UpdateOwned(ctx context.Context, id, userID string, fields domain.SubmissionFields, updatedAt time.Time) (*domain.Submission, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: fields.Name},
		{Key: "country", Value: fields.Country},
		{Key: "company", Value: fields.Company},
		{Key: "questions", Value: fields.Questions},
		{Key: "updated_at", Value: updatedAt},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s domain.Submission
	err := r.coll.FindOneAndUpdate(ctx, ownedFilter(id, userID), update, opts).Decode(&s)
	return decodeOwned(&s, err, "update submission")
}

func (r *submissionRepo) DeleteOwned(ctx context.Context, id, userID string) (*domain.Submission, error) {
	var s domain.Submission
	err := r.coll.FindOneAndDelete(ctx, ownedFilter(id, userID)).Decode(&s)
	return decodeOwned(&s, err, "delete submission")
}

func decodeOwned(s *domain.Submission, err error, op string) (*domain.Submission, error) {
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// ownedFilter matches a document only when both id and owner agree.
func ownedFilter(id, userID string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: userID},
	}
}

// companyFilter matches company as a literal, case-insensitive substring.
func companyFilter(company string) bson.D {
	if company == "" {
		return bson.D{}
	}
	return bson.D{{Key: "company", Value: bson.Regex{Pattern: regexp.QuoteMeta(company), Options: "i"}}}
}

func listPipeline(company string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: companyFilter(company)}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "user_email", Value: bson.D{{Key: "$ifNull", Value: bson.A{
				bson.D{{Key: "$arrayElemAt", Value: bson.A{"$owner.email", 0}}},
				"",
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "owner", Value: 0}}}},
	}
}
