// Package indexes reconciles the MongoDB indexes the application depends on.
// EnsureAll runs once at startup; uniqueness guarantees (one user per
// external id, one application per user and job) live here, not in
// application code.
package indexes

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates or reconciles every index the application requires.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := ensureUsers(ctx, db, logger); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := ensureApplications(ctx, db, logger); err != nil {
		return fmt.Errorf("job_applications indexes: %w", err)
	}
	if err := ensureJobs(ctx, db, logger); err != nil {
		return fmt.Errorf("jobs indexes: %w", err)
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("users"), logger, []indexSpec{
		{
			name:   "uniq_users_external_id",
			keys:   bson.D{{Key: "external_id", Value: 1}},
			unique: true,
		},
		{
			name:   "uniq_users_email",
			keys:   bson.D{{Key: "email", Value: 1}},
			unique: true,
		},
	})
}

func ensureApplications(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("job_applications"), logger, []indexSpec{
		{
			name:   "uniq_apps_user_job",
			keys:   bson.D{{Key: "user_id", Value: 1}, {Key: "job_id", Value: 1}},
			unique: true,
		},
		{
			name: "idx_apps_user_applied",
			keys: bson.D{{Key: "user_id", Value: 1}, {Key: "applied_at", Value: -1}},
		},
	})
}

func ensureJobs(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("jobs"), logger, []indexSpec{
		{
			name: "idx_jobs_company",
			keys: bson.D{{Key: "company_id", Value: 1}},
		},
	})
}

type indexSpec struct {
	name   string
	keys   bson.D
	unique bool
}

// ensureIndexSet makes the collection's indexes match the given specs. An
// existing index with the same key pattern but a different unique setting is
// dropped and recreated.
func ensureIndexSet(ctx context.Context, c *mongo.Collection, logger *zap.Logger, specs []indexSpec) error {
	existing, err := listIndexes(ctx, c)
	if err != nil {
		return fmt.Errorf("list indexes on %s: %w", c.Name(), err)
	}

	for _, spec := range specs {
		sig := keySig(spec.keys)
		cur, ok := existing[sig]
		if ok && cur.unique == spec.unique {
			continue
		}
		if ok {
			if _, err := c.Indexes().DropOne(ctx, cur.name); err != nil {
				return fmt.Errorf("drop index %s on %s: %w", cur.name, c.Name(), err)
			}
			logger.Info("dropped index with stale options",
				zap.String("collection", c.Name()),
				zap.String("index", cur.name))
		}

		opts := options.Index().SetName(spec.name)
		if spec.unique {
			opts.SetUnique(true)
		}
		if _, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: spec.keys, Options: opts}); err != nil {
			return fmt.Errorf("create index %s on %s: %w", spec.name, c.Name(), err)
		}
		logger.Info("created index",
			zap.String("collection", c.Name()),
			zap.String("index", spec.name),
			zap.Bool("unique", spec.unique))
	}
	return nil
}

type existingIndex struct {
	name   string
	unique bool
}

func listIndexes(ctx context.Context, c *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := c.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make(map[string]existingIndex)
	for cur.Next(ctx) {
		var doc struct {
			Name   string `bson:"name"`
			Key    bson.D `bson:"key"`
			Unique bool   `bson:"unique"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		if doc.Name == "_id_" {
			continue
		}
		out[keySig(doc.Key)] = existingIndex{name: doc.Name, unique: doc.Unique}
	}
	return out, cur.Err()
}

// keySig renders a key document into a comparable string, e.g.
// "user_id:1,job_id:1". Field order matters for compound indexes.
func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, e := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", e.Key, e.Value))
	}
	return strings.Join(parts, ",")
}
