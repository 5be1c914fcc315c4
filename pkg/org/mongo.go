package org

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
)

// MongoOptions configures [LoadMongo].
type MongoOptions struct {
	IDField     string // Document field holding the unit id (default "_id")
	ParentField string // Document field holding the parent id (default "parent")
	Filter      bson.M // Optional query filter; nil selects every document
}

func (o MongoOptions) withDefaults() MongoOptions {
	if o.IDField == "" {
		o.IDField = "_id"
	}
	if o.ParentField == "" {
		o.ParentField = DefaultParentColumn
	}
	if o.Filter == nil {
		o.Filter = bson.M{}
	}
	return o
}

// ConnectMongo opens a client for uri and verifies it with a ping.
// The caller must Disconnect the returned client.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// LoadMongo reads unit documents from coll. Documents are added in id
// order so repeated loads produce identical graphs. Scalar fields other
// than the id and parent fields become attributes; nested documents and
// arrays are ignored.
func LoadMongo(ctx context.Context, coll *mongo.Collection, opts MongoOptions) (*Graph, error) {
	opts = opts.withDefaults()

	cur, err := coll.Find(ctx, opts.Filter, options.Find().SetSort(bson.D{{Key: opts.IDField, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find units: %w", err)
	}
	defer cur.Close(ctx)

	var units []Unit
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode unit: %w", err)
		}
		u, err := unitFromDocument(doc, opts)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}

	// Server-side sort compares BSON types first; re-sort on the string form.
	sort.SliceStable(units, func(i, j int) bool { return units[i].ID < units[j].ID })

	g := New()
	for _, u := range units {
		if err := g.AddUnit(u); err != nil {
			return nil, orgerrors.Wrap(orgerrors.ErrCodeInvalidInput, err, "unit %q", u.ID)
		}
	}
	return g, nil
}

func unitFromDocument(doc bson.M, opts MongoOptions) (Unit, error) {
	id, ok := scalarString(doc[opts.IDField])
	if !ok || id == "" {
		return Unit{}, orgerrors.New(orgerrors.ErrCodeInvalidInput, "document without %q field", opts.IDField)
	}
	u := Unit{ID: id, Attrs: make(map[string]string)}
	if p, ok := scalarString(doc[opts.ParentField]); ok {
		u.Parent = p
	}
	for k, v := range doc {
		if k == opts.IDField || k == opts.ParentField || k == "_id" {
			continue
		}
		if s, ok := scalarString(v); ok && s != "" {
			u.Attrs[k] = s
		}
	}
	return u, nil
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case primitive.ObjectID:
		return x.Hex(), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}
