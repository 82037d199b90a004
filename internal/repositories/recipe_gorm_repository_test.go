package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"resep/internal/models"
	"resep/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a named shared in-memory SQLite database so every pooled
// connection sees the same data, and migrates the full schema.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Subscription{},
		&models.FavoriteRecipe{},
		&models.ShoppingCart{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.New().String(),
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ingredient := &models.Ingredient{ID: uuid.New().String(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(ingredient).Error)
	return ingredient
}

func createTag(t *testing.T, db *gorm.DB, slug string) *models.Tag {
	t.Helper()
	tag := &models.Tag{ID: uuid.New().String(), Name: slug, Color: "#49b64e", Slug: slug}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func TestGORMRecipeRepository_UpdateReplacesIngredients(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMRecipeRepository(db)

	author := createUser(t, db, "chef")
	flour := createIngredient(t, db, "Flour", "g")
	sugar := createIngredient(t, db, "Sugar", "g")

	recipe := &models.Recipe{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		AuthorID:    author.ID,
		RecipeIngredients: []models.RecipeIngredient{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: sugar.ID, Amount: 50},
		},
	}
	require.NoError(t, repo.Create(recipe))

	recipe.Name = "Pancakes v2"
	recipe.RecipeIngredients = []models.RecipeIngredient{
		{IngredientID: flour.ID, Amount: 3},
	}
	require.NoError(t, repo.Update(recipe))

	got, err := repo.GetByID(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes v2", got.Name)
	// The old rows are gone, only the new set remains.
	require.Len(t, got.RecipeIngredients, 1)
	assert.Equal(t, flour.ID, got.RecipeIngredients[0].IngredientID)
	assert.Equal(t, 3, got.RecipeIngredients[0].Amount)

	var orphans int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&orphans).Error)
	assert.EqualValues(t, 1, orphans)
}

func TestGORMRecipeRepository_UpdateUnknownRecipe(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMRecipeRepository(db)

	err := repo.Update(&models.Recipe{ID: uuid.New().String(), Name: "ghost"})

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMRecipeRepository_TagFilterOrSemantics(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMRecipeRepository(db)

	author := createUser(t, db, "chef")
	breakfast := createTag(t, db, "breakfast")
	dinner := createTag(t, db, "dinner")
	lunch := createTag(t, db, "lunch")

	for i, tag := range []*models.Tag{breakfast, dinner, lunch} {
		recipe := &models.Recipe{
			Name:        fmt.Sprintf("recipe-%d", i),
			AuthorID:    author.ID,
			CookingTime: 10,
			Tags:        []models.Tag{*tag},
		}
		require.NoError(t, repo.Create(recipe))
	}

	recipes, err := repo.GetAll(repositories.RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}})

	require.NoError(t, err)
	assert.Len(t, recipes, 2)
	names := []string{recipes[0].Name, recipes[1].Name}
	assert.Contains(t, names, "recipe-0")
	assert.Contains(t, names, "recipe-1")
}

func TestGORMRecipeRepository_ShoppingListAggregation(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMRecipeRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	buyer := createUser(t, db, "buyer")
	author := createUser(t, db, "chef")
	sugar := createIngredient(t, db, "Sugar", "g")
	flour := createIngredient(t, db, "Flour", "g")

	cake := &models.Recipe{
		Name: "Cake", AuthorID: author.ID, CookingTime: 60,
		RecipeIngredients: []models.RecipeIngredient{
			{IngredientID: sugar.ID, Amount: 100},
			{IngredientID: flour.ID, Amount: 50},
		},
	}
	tea := &models.Recipe{
		Name: "Sweet tea", AuthorID: author.ID, CookingTime: 5,
		RecipeIngredients: []models.RecipeIngredient{
			{IngredientID: sugar.ID, Amount: 100},
		},
	}
	notInCart := &models.Recipe{
		Name: "Bread", AuthorID: author.ID, CookingTime: 90,
		RecipeIngredients: []models.RecipeIngredient{
			{IngredientID: flour.ID, Amount: 500},
		},
	}
	for _, recipe := range []*models.Recipe{cake, tea, notInCart} {
		require.NoError(t, repo.Create(recipe))
	}
	require.NoError(t, cartRepo.Create(&models.ShoppingCart{UserID: buyer.ID, RecipeID: cake.ID}))
	require.NoError(t, cartRepo.Create(&models.ShoppingCart{UserID: buyer.ID, RecipeID: tea.ID}))

	items, err := repo.ShoppingList(buyer.ID)

	require.NoError(t, err)
	// Shared ingredients collapse into one summed row, ordered by name,
	// and recipes outside the cart contribute nothing.
	require.Len(t, items, 2)
	assert.Equal(t, repositories.ShoppingListItem{Name: "Flour", TotalAmount: 50, MeasurementUnit: "g"}, items[0])
	assert.Equal(t, repositories.ShoppingListItem{Name: "Sugar", TotalAmount: 200, MeasurementUnit: "g"}, items[1])
}

func TestGORMRecipeRepository_ShoppingListEmptyCart(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMRecipeRepository(db)

	buyer := createUser(t, db, "buyer")

	items, err := repo.ShoppingList(buyer.ID)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGORMRecipeRepository_DeleteRemovesRelationRows(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMRecipeRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	author := createUser(t, db, "chef")
	reader := createUser(t, db, "reader")
	sugar := createIngredient(t, db, "Sugar", "g")

	doomed := &models.Recipe{
		Name: "Pancakes", AuthorID: author.ID, CookingTime: 20,
		RecipeIngredients: []models.RecipeIngredient{{IngredientID: sugar.ID, Amount: 100}},
	}
	kept := &models.Recipe{Name: "Waffles", AuthorID: author.ID, CookingTime: 15}
	require.NoError(t, repo.Create(doomed))
	require.NoError(t, repo.Create(kept))

	require.NoError(t, favoriteRepo.Create(&models.FavoriteRecipe{UserID: reader.ID, RecipeID: doomed.ID}))
	require.NoError(t, favoriteRepo.Create(&models.FavoriteRecipe{UserID: reader.ID, RecipeID: kept.ID}))
	require.NoError(t, cartRepo.Create(&models.ShoppingCart{UserID: reader.ID, RecipeID: doomed.ID}))

	require.NoError(t, repo.Delete(doomed.ID))

	// Ingredient, favorite and cart rows go with the recipe; rows of other
	// recipes stay untouched.
	var count int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", doomed.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.FavoriteRecipe{}).Where("recipe_id = ?", doomed.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.ShoppingCart{}).Where("recipe_id = ?", doomed.ID).Count(&count).Error)
	assert.Zero(t, count)

	favorites, err := favoriteRepo.RecipeIDs(reader.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{kept.ID}, favorites)
}

func TestGORMFavoriteRepository_DuplicatePair(t *testing.T) {
	db := setupDB(t)
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)

	user := createUser(t, db, "reader")
	author := createUser(t, db, "chef")
	recipe := &models.Recipe{Name: "Pancakes", AuthorID: author.ID, CookingTime: 20}
	require.NoError(t, recipeRepo.Create(recipe))

	require.NoError(t, favoriteRepo.Create(&models.FavoriteRecipe{UserID: user.ID, RecipeID: recipe.ID}))
	err := favoriteRepo.Create(&models.FavoriteRecipe{UserID: user.ID, RecipeID: recipe.ID})

	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	// Deleting and re-adding the pair is allowed.
	require.NoError(t, favoriteRepo.Delete(user.ID, recipe.ID))
	assert.NoError(t, favoriteRepo.Create(&models.FavoriteRecipe{UserID: user.ID, RecipeID: recipe.ID}))
}

func TestGORMFavoriteRepository_DeleteAbsentPair(t *testing.T) {
	db := setupDB(t)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)

	err := favoriteRepo.Delete(uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMSubscriptionRepository_Constraints(t *testing.T) {
	db := setupDB(t)
	subRepo := repositories.NewGORMSubscriptionRepository(db)

	author := createUser(t, db, "chef")
	follower := createUser(t, db, "fan")

	require.NoError(t, subRepo.Create(&models.Subscription{AuthorID: author.ID, SubscriberID: follower.ID}))

	err := subRepo.Create(&models.Subscription{AuthorID: author.ID, SubscriberID: follower.ID})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	// Self-follow is rejected by the check constraint even when the service
	// layer is bypassed.
	err = subRepo.Create(&models.Subscription{AuthorID: author.ID, SubscriberID: author.ID})
	assert.Error(t, err)

	exists, err := subRepo.Exists(author.ID, follower.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = subRepo.Exists(follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGORMIngredientRepository_PrefixSearch(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMIngredientRepository(db)

	createIngredient(t, db, "Sugar", "g")
	createIngredient(t, db, "sunflower oil", "ml")
	createIngredient(t, db, "Salt", "g")

	results, err := repo.Search("su")

	require.NoError(t, err)
	// Matching is a case-insensitive prefix, ordered by name.
	require.Len(t, results, 2)
	assert.Equal(t, "Sugar", results[0].Name)
	assert.Equal(t, "sunflower oil", results[1].Name)
}
