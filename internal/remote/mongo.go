package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collections resolves collection names; *db.Client implements it.
type Collections interface {
	Collection(name string) *mongo.Collection
}

// MongoDocuments implements Documents on MongoDB. Live listeners are change
// streams, so the server must run as a replica set.
type MongoDocuments struct {
	colls Collections
	log   *slog.Logger
}

// NewMongoDocuments returns a MongoDB-backed Documents.
func NewMongoDocuments(colls Collections, log *slog.Logger) *MongoDocuments {
	return &MongoDocuments{colls: colls, log: log}
}

// Listen opens a change stream on the query's collection. The stream is
// owned by the returned registration, not by ctx; ctx only bounds opening it.
func (d *MongoDocuments) Listen(ctx context.Context, q Query, l Listener) (Registration, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	pipeline := mongo.Pipeline{bson.D{{Key: "$match", Value: changeFilter(q)}}}

	cs, err := d.colls.Collection(q.Collection).Watch(ctx, pipeline, opts)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", q.Collection, err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	go func() {
		defer func() { _ = cs.Close(context.Background()) }()

		// initial snapshot
		l.OnChange()
		for cs.Next(watchCtx) {
			l.OnChange()
		}
		if err := cs.Err(); err != nil && watchCtx.Err() == nil {
			d.log.Debug("change stream failed", "collection", q.Collection, "error", err)
			l.OnError(err)
		}
	}()

	return RegistrationFunc(cancel), nil
}

// Find runs q and decodes all results into out.
func (d *MongoDocuments) Find(ctx context.Context, q Query, out any) error {
	opts := options.Find()
	if q.OrderField != "" {
		dir := 1
		if q.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.OrderField, Value: dir}})
	}
	if q.MaxResults > 0 {
		opts.SetLimit(q.MaxResults)
	}

	cursor, err := d.colls.Collection(q.Collection).Find(ctx, queryFilter(q), opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

// Get decodes the document with the given id into out.
func (d *MongoDocuments) Get(ctx context.Context, collection, id string, out any) error {
	err := d.colls.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return err
}

// Add inserts doc under a new ObjectID hex id.
func (d *MongoDocuments) Add(ctx context.Context, collection string, doc any) (string, error) {
	fields, err := toM(doc)
	if err != nil {
		return "", err
	}
	id := bson.NewObjectID().Hex()
	fields["_id"] = id

	if _, err := d.colls.Collection(collection).InsertOne(ctx, fields); err != nil {
		return "", err
	}
	return id, nil
}

// Set upserts doc under id.
func (d *MongoDocuments) Set(ctx context.Context, collection, id string, doc any) error {
	fields, err := toM(doc)
	if err != nil {
		return err
	}
	fields["_id"] = id

	_, err = d.colls.Collection(collection).ReplaceOne(ctx, bson.M{"_id": id}, fields, options.Replace().SetUpsert(true))
	return err
}

// Update applies a $set of fields to the document with the given id.
func (d *MongoDocuments) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := d.colls.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// Delete removes the document with the given id.
func (d *MongoDocuments) Delete(ctx context.Context, collection, id string) error {
	res, err := d.colls.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s/%s: %w", collection, id, ErrNotFound)
	}
	return nil
}

// queryFilter translates query filters into a MongoDB filter document.
func queryFilter(q Query) bson.D {
	return filterDoc(q, "")
}

// changeFilter matches change events that may affect the result set of q:
// inserts/updates whose post-image matches, and every delete (deletes carry
// no document to test).
func changeFilter(q Query) bson.D {
	return bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "operationType", Value: "delete"}},
		filterDoc(q, "fullDocument."),
	}}}
}

func filterDoc(q Query, prefix string) bson.D {
	doc := bson.D{}
	for _, f := range q.Filters {
		key := prefix + f.Field
		switch f.Op {
		case OpPrefix:
			p, _ := f.Value.(string)
			doc = append(doc, bson.E{Key: key, Value: bson.D{
				{Key: "$gte", Value: p},
				{Key: "$lt", Value: p + PrefixEnd},
			}})
		default:
			// equality on an array field already matches any element
			doc = append(doc, bson.E{Key: key, Value: f.Value})
		}
	}
	return doc
}

func toM(doc any) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}
	return fields, nil
}
