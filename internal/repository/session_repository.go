package repository

import (
	"context"
	"errors"
	"time"

	"quiz-session-service/internal/engine"
	"quiz-session-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SessionRepository struct {
	Col *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{Col: db.Collection("quiz_sessions")}
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, engine.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindActive returns the active session for the user's subject+mode scope,
// or nil when there is none. Syllabus and standard narrow the lookup when
// set, so a daily session for one syllabus never resumes another's. At most
// one can exist per scope; the partial unique index enforces it.
func (r *SessionRepository) FindActive(ctx context.Context, userID, subject, syllabus, standard string, mode models.Mode) (*models.Session, error) {
	filter := bson.M{
		"user_id":   userID,
		"subject":   subject,
		"mode":      mode,
		"is_active": true,
	}
	if syllabus != "" {
		filter["syllabus"] = syllabus
	}
	if standard != "" {
		filter["standard"] = standard
	}
	var session models.Session
	err := r.Col.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Insert(ctx context.Context, session *models.Session) error {
	now := time.Now()
	if session.ID == "" {
		session.ID = primitive.NewObjectID().Hex()
	}
	session.Version = 1
	session.CreatedAt = now
	session.UpdatedAt = now
	_, err := r.Col.InsertOne(ctx, session)
	return err
}

// ReplaceVersioned persists the session conditional on the version it was
// read at, then bumps the in-memory version to match. A lost race surfaces as
// ErrStaleSession and the caller re-reads.
func (r *SessionRepository) ReplaceVersioned(ctx context.Context, session *models.Session) error {
	expected := session.Version
	session.Version = expected + 1
	session.UpdatedAt = time.Now()

	res, err := r.Col.ReplaceOne(ctx, bson.M{"_id": session.ID, "version": expected}, session)
	if err != nil {
		session.Version = expected
		return err
	}
	if res.MatchedCount == 0 {
		session.Version = expected
		return engine.ErrStaleSession
	}
	return nil
}

// DeactivateUserMode flips every active session the user has in a mode
// inactive, across all subjects. Exclusive modes call this before inserting
// the replacement, so a user holds at most one such session in total.
func (r *SessionRepository) DeactivateUserMode(ctx context.Context, userID string, mode models.Mode) error {
	_, err := r.Col.UpdateMany(ctx, bson.M{
		"user_id":   userID,
		"mode":      mode,
		"is_active": true,
	}, bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}})
	return err
}

// FindHistory returns the user's most recent inactive sessions for a subject,
// newest first, capped at limit. Used to mine previously attempted questions.
func (r *SessionRepository) FindHistory(ctx context.Context, userID, subject string, limit int64) ([]models.Session, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)
	cur, err := r.Col.Find(ctx, bson.M{
		"user_id":   userID,
		"subject":   subject,
		"is_active": false,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var sessions []models.Session
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// DeactivateDailyBefore retires active daily sessions created before the
// cutoff. The midnight rollover job calls this so each day starts fresh.
func (r *SessionRepository) DeactivateDailyBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.Col.UpdateMany(ctx, bson.M{
		"mode":       models.ModeDaily,
		"is_active":  true,
		"created_at": bson.M{"$lt": cutoff},
	}, bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// CreateIndexes sets up the partial unique index that guarantees at most one
// active session per user+subject+syllabus+standard+mode scope, plus the
// history sort index.
func (r *SessionRepository) CreateIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "subject", Value: 1},
				{Key: "syllabus", Value: 1},
				{Key: "standard", Value: 1},
				{Key: "mode", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"is_active": true}),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "subject", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	})
	return err
}
