package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Guyuepp/layers-blog/domain"
)

const (
	CollectionComments = "comments"

	// maxMutateAttempts bounds how often Mutate re-reads after losing a
	// version race.
	maxMutateAttempts = 5
)

// commentDocument is the stored shape: the comment with its replies embedded
// plus a version used for compare-and-swap writes.
type commentDocument struct {
	domain.Comment `bson:",inline"`
	Version        int64 `bson:"version"`
}

type commentRepository struct {
	coll *mongo.Collection
}

var _ domain.CommentRepository = (*commentRepository)(nil)

func NewCommentRepository(db *mongo.Database) *commentRepository {
	return &commentRepository{coll: db.Collection(CollectionComments)}
}

// EnsureIndexes creates the indexes the comment queries rely on.
func (r *commentRepository) EnsureIndexes(ctx context.Context) error {
	names, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "postSlug", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "author.email", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return translateError(err)
	}
	logrus.Debugf("mongo comment indexes ready: %v", names)
	return nil
}

func (r *commentRepository) Store(ctx context.Context, c *domain.Comment) error {
	_, err := r.coll.InsertOne(ctx, commentDocument{Comment: *c, Version: 1})
	return translateError(err)
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (domain.Comment, error) {
	doc, err := r.load(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	return doc.Comment, nil
}

func (r *commentRepository) FetchByPost(ctx context.Context, postSlug string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"postSlug": postSlug}, opts)
}

func (r *commentRepository) FetchRecent(ctx context.Context, limit int64) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *commentRepository) FetchAll(ctx context.Context) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return r.find(ctx, bson.M{}, opts)
}

// Mutate reads the document, applies fn and replaces it only if nobody
// wrote in between. On a lost race it starts over from a fresh read.
func (r *commentRepository) Mutate(ctx context.Context, id string, fn func(*domain.Comment) error) (domain.Comment, error) {
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		doc, err := r.load(ctx, id)
		if err != nil {
			return domain.Comment{}, err
		}
		if err := fn(&doc.Comment); err != nil {
			return domain.Comment{}, err
		}

		filter := bson.M{"_id": id, "version": doc.Version}
		doc.Version++
		res, err := r.coll.ReplaceOne(ctx, filter, doc)
		if err != nil {
			return domain.Comment{}, translateError(err)
		}
		if res.MatchedCount == 1 {
			return doc.Comment, nil
		}
		logrus.WithFields(logrus.Fields{
			"comment": id,
			"attempt": attempt + 1,
		}).Debug("comment changed concurrently, retrying")
	}
	return domain.Comment{}, fmt.Errorf("%w: comment %s kept changing", domain.ErrConflict, id)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *commentRepository) load(ctx context.Context, id string) (commentDocument, error) {
	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return commentDocument{}, translateError(err)
	}
	return doc, nil
}

func (r *commentRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Comment, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, translateError(err)
	}
	var docs []commentDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}
	comments := make([]domain.Comment, len(docs))
	for i := range docs {
		comments[i] = docs[i].Comment
	}
	return comments, nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrConflict
	default:
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
}
