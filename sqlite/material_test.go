package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func createMaterial(t *testing.T, db *sqlite.DB, name string) *readtrack.Material {
	t.Helper()
	material := &readtrack.Material{
		Name:      name,
		SourceURL: "https://example.com/" + name,
	}
	require.NoError(t, sqlite.NewMaterialService(db).CreateMaterial(context.Background(), material))
	return material
}

func TestMaterialService_CreateMaterial(t *testing.T) {
	t.Parallel()

	t.Run("creates material with generated ID and timestamps", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMaterialService(db)
		ctx := context.Background()

		material := &readtrack.Material{
			Name:      "essays",
			SourceURL: "https://example.com/essays",
		}

		err := svc.CreateMaterial(ctx, material)
		require.NoError(t, err)

		assert.NotEmpty(t, material.ID, "ID should be generated")
		assert.Equal(t, readtrack.KindSingle, material.Kind, "kind should default to single")
		assert.False(t, material.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.False(t, material.UpdatedAt.IsZero(), "UpdatedAt should be set")
	})

	t.Run("returns error for invalid material", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMaterialService(db)

		err := svc.CreateMaterial(context.Background(), &readtrack.Material{})
		require.Error(t, err)
		assert.Equal(t, readtrack.EINVALID, readtrack.ErrorCode(err))
	})

	t.Run("returns ECONFLICT for a duplicate name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createMaterial(t, db, "essays")

		err := sqlite.NewMaterialService(db).CreateMaterial(context.Background(), &readtrack.Material{
			Name:      "essays",
			SourceURL: "https://example.com/other",
		})
		require.Error(t, err)
		assert.Equal(t, readtrack.ECONFLICT, readtrack.ErrorCode(err))
	})
}

func TestMaterialService_FindMaterialByID(t *testing.T) {
	t.Parallel()

	t.Run("returns material when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMaterialService(db)
		ctx := context.Background()

		material := &readtrack.Material{
			Name:      "a-book",
			Kind:      readtrack.KindBook,
			SourceURL: "https://example.com/book",
		}
		require.NoError(t, svc.CreateMaterial(ctx, material))

		found, err := svc.FindMaterialByID(ctx, material.ID)
		require.NoError(t, err)
		assert.Equal(t, material.ID, found.ID)
		assert.Equal(t, material.Name, found.Name)
		assert.Equal(t, readtrack.KindBook, found.Kind)
		assert.Equal(t, material.SourceURL, found.SourceURL)
		assert.True(t, material.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewMaterialService(db)

		_, err := svc.FindMaterialByID(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, readtrack.ENOTFOUND, readtrack.ErrorCode(err))
	})
}

func TestMaterialService_FindMaterials(t *testing.T) {
	t.Parallel()

	t.Run("returns all materials newest first", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		for _, name := range []string{"first", "second", "third"} {
			createMaterial(t, db, name)
		}

		materials, err := sqlite.NewMaterialService(db).FindMaterials(context.Background(), readtrack.MaterialFilter{})
		require.NoError(t, err)
		require.Len(t, materials, 3)
		assert.Equal(t, "third", materials[0].Name)
		assert.Equal(t, "first", materials[2].Name)
	})

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createMaterial(t, db, "alpha")
		createMaterial(t, db, "beta")

		name := "beta"
		materials, err := sqlite.NewMaterialService(db).FindMaterials(context.Background(), readtrack.MaterialFilter{Name: &name})
		require.NoError(t, err)
		require.Len(t, materials, 1)
		assert.Equal(t, "beta", materials[0].Name)
	})

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		createMaterial(t, db, "alpha")
		beta := createMaterial(t, db, "beta")

		materials, err := sqlite.NewMaterialService(db).FindMaterials(context.Background(), readtrack.MaterialFilter{SourceURL: &beta.SourceURL})
		require.NoError(t, err)
		require.Len(t, materials, 1)
		assert.Equal(t, beta.ID, materials[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		for _, name := range []string{"a", "b", "c", "d"} {
			createMaterial(t, db, name)
		}
		svc := sqlite.NewMaterialService(db)

		page, err := svc.FindMaterials(context.Background(), readtrack.MaterialFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "c", page[0].Name)
		assert.Equal(t, "b", page[1].Name)

		rest, err := svc.FindMaterials(context.Background(), readtrack.MaterialFilter{Offset: 3})
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "a", rest[0].Name)
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		name := "missing"

		materials, err := sqlite.NewMaterialService(db).FindMaterials(context.Background(), readtrack.MaterialFilter{Name: &name})
		require.NoError(t, err)
		assert.Empty(t, materials)
	})
}

func TestMaterialService_DeleteMaterial(t *testing.T) {
	t.Parallel()

	t.Run("deletes material with its chapters and quotes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		material := createMaterial(t, db, "book")
		require.NoError(t, sqlite.NewChapterService(db).CreateChapter(ctx, &readtrack.Chapter{
			MaterialID: material.ID,
			URL:        "https://example.com/book/1",
		}))
		require.NoError(t, sqlite.NewQuoteService(db).CreateQuote(ctx, &readtrack.Quote{
			MaterialID: material.ID,
			Text:       "call me Ishmael",
			URL:        "https://example.com/book/1",
		}))

		err := sqlite.NewMaterialService(db).DeleteMaterial(ctx, material.ID)
		require.NoError(t, err)

		_, err = sqlite.NewMaterialService(db).FindMaterialByID(ctx, material.ID)
		assert.Equal(t, readtrack.ENOTFOUND, readtrack.ErrorCode(err))
		chapters, err := sqlite.NewChapterService(db).FindChapters(ctx, readtrack.ChapterFilter{MaterialID: &material.ID})
		require.NoError(t, err)
		assert.Empty(t, chapters)
		quotes, err := sqlite.NewQuoteService(db).FindQuotes(ctx, readtrack.QuoteFilter{MaterialID: &material.ID})
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		err := sqlite.NewMaterialService(db).DeleteMaterial(context.Background(), "nonexistent-id")
		require.Error(t, err)
		assert.Equal(t, readtrack.ENOTFOUND, readtrack.ErrorCode(err))
	})
}
