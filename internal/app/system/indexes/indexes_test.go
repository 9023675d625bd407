package indexes_test

import (
	"context"
	"testing"

	"github.com/hireloop/hireloop/internal/app/system/indexes"
	"github.com/hireloop/hireloop/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func indexNames(t *testing.T, ctx context.Context, db *mongo.Database, collection string) map[string]bool {
	t.Helper()
	cur, err := db.Collection(collection).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes on %s: %v", collection, err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var doc struct {
			Name   string `bson:"name"`
			Unique bool   `bson:"unique"`
		}
		if err := cur.Decode(&doc); err != nil {
			t.Fatalf("decode index doc: %v", err)
		}
		names[doc.Name] = doc.Unique
	}
	return names
}

func TestEnsureAll(t *testing.T) {
	// SetupTestDB already ran EnsureAll; verify what it produced.
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := indexNames(t, ctx, db, "users")
	if unique, ok := users["uniq_users_external_id"]; !ok || !unique {
		t.Errorf("users: uniq_users_external_id missing or not unique: %v", users)
	}
	if unique, ok := users["uniq_users_email"]; !ok || !unique {
		t.Errorf("users: uniq_users_email missing or not unique: %v", users)
	}

	apps := indexNames(t, ctx, db, "job_applications")
	if unique, ok := apps["uniq_apps_user_job"]; !ok || !unique {
		t.Errorf("job_applications: uniq_apps_user_job missing or not unique: %v", apps)
	}
	if unique, ok := apps["idx_apps_user_applied"]; !ok || unique {
		t.Errorf("job_applications: idx_apps_user_applied missing or unexpectedly unique: %v", apps)
	}

	jobs := indexNames(t, ctx, db, "jobs")
	if _, ok := jobs["idx_jobs_company"]; !ok {
		t.Errorf("jobs: idx_jobs_company missing: %v", jobs)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_RecreatesOnUniqueMismatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Replace the unique external_id index with a non-unique one under a
	// different name, then reconcile.
	c := db.Collection("users")
	if _, err := c.Indexes().DropOne(ctx, "uniq_users_external_id"); err != nil {
		t.Fatalf("drop index: %v", err)
	}
	if _, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "external_id", Value: 1}},
	}); err != nil {
		t.Fatalf("create stale index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	users := indexNames(t, ctx, db, "users")
	if unique, ok := users["uniq_users_external_id"]; !ok || !unique {
		t.Errorf("expected unique index recreated, got %v", users)
	}
}
