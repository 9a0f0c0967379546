package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/Esaius2058/drive-x/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Folder{}, &models.File{}, &models.FileLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo *GormUserRepository, email string) models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, PasswordHash: "x", Role: models.RoleClient}
	if err := repo.Create(context.Background(), nil, &user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestUserRepositoryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ada@example.com")

	count, err := repo.CountByEmail(ctx, "ada@example.com")
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d err %v", count, err)
	}

	got, err := repo.GetByEmail(ctx, nil, "ada@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected id %d, got %d", user.ID, got.ID)
	}

	if err := repo.UpdateByID(ctx, nil, user.ID, map[string]interface{}{"role": models.RoleAdmin}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err = repo.GetByID(ctx, nil, user.ID)
	if err != nil || got.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %q err %v", got.Role, err)
	}

	if err := repo.DeleteByID(ctx, nil, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, nil, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestUserRepositoryEmailReusableAfterDelete(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ada@example.com")
	if err := repo.DeleteByID(ctx, nil, user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	count, err := repo.CountByEmail(ctx, "ada@example.com")
	if err != nil || count != 0 {
		t.Fatalf("expected no user after deletion, got %d err %v", count, err)
	}

	// A fresh sign-up with the freed email must not hit the unique index.
	again := models.User{Name: "Ada Again", Email: "ada@example.com", PasswordHash: "y", Role: models.RoleClient}
	if err := repo.Create(ctx, nil, &again); err != nil {
		t.Fatalf("re-create with freed email: %v", err)
	}
	if again.ID == user.ID {
		t.Fatalf("expected a new row, got the old id %d", again.ID)
	}
}

func TestFolderRepositoryPathPrefix(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormFolderRepository(db)
	ctx := context.Background()

	isRoot := true
	root := models.Folder{Name: "root", UserID: 1, IsRoot: &isRoot, Path: "/"}
	if err := repo.Create(ctx, nil, &root); err != nil {
		t.Fatalf("create root: %v", err)
	}
	docs := models.Folder{Name: "docs", UserID: 1, ParentID: &root.ID, Path: "/docs"}
	if err := repo.Create(ctx, nil, &docs); err != nil {
		t.Fatalf("create docs: %v", err)
	}
	tax := models.Folder{Name: "tax", UserID: 1, ParentID: &docs.ID, Path: "/docs/tax"}
	if err := repo.Create(ctx, nil, &tax); err != nil {
		t.Fatalf("create tax: %v", err)
	}
	// A sibling whose name shares the prefix but not the subtree.
	docsOld := models.Folder{Name: "docs-old", UserID: 1, ParentID: &root.ID, Path: "/docs-old"}
	if err := repo.Create(ctx, nil, &docsOld); err != nil {
		t.Fatalf("create docs-old: %v", err)
	}

	ids, err := repo.PluckIDsByPathPrefix(ctx, nil, 1, docs.ID, docs.Path)
	if err != nil {
		t.Fatalf("pluck: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected the folder and its descendant, got %v", ids)
	}
	for _, id := range ids {
		if id == docsOld.ID {
			t.Fatalf("prefix match must not capture /docs-old")
		}
		if id == root.ID {
			t.Fatalf("prefix match must not capture the root")
		}
	}
}

func TestFolderRepositoryPathPrefixWildcardNames(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormFolderRepository(db)
	ctx := context.Background()

	isRoot := true
	root := models.Folder{Name: "root", UserID: 1, IsRoot: &isRoot, Path: "/"}
	if err := repo.Create(ctx, nil, &root); err != nil {
		t.Fatalf("create root: %v", err)
	}
	docs := models.Folder{Name: "docs", UserID: 1, ParentID: &root.ID, Path: "/docs"}
	if err := repo.Create(ctx, nil, &docs); err != nil {
		t.Fatalf("create docs: %v", err)
	}
	tax := models.Folder{Name: "tax", UserID: 1, ParentID: &docs.ID, Path: "/docs/tax"}
	if err := repo.Create(ctx, nil, &tax); err != nil {
		t.Fatalf("create tax: %v", err)
	}
	// Folder names may contain LIKE metacharacters.
	wild := models.Folder{Name: "d%", UserID: 1, ParentID: &root.ID, Path: "/d%"}
	if err := repo.Create(ctx, nil, &wild); err != nil {
		t.Fatalf("create d%%: %v", err)
	}
	underscore := models.Folder{Name: "d_cs", UserID: 1, ParentID: &root.ID, Path: "/d_cs"}
	if err := repo.Create(ctx, nil, &underscore); err != nil {
		t.Fatalf("create d_cs: %v", err)
	}

	ids, err := repo.PluckIDsByPathPrefix(ctx, nil, 1, wild.ID, wild.Path)
	if err != nil {
		t.Fatalf("pluck: %v", err)
	}
	if len(ids) != 1 || ids[0] != wild.ID {
		t.Fatalf("cascade for /d%% must cover only its own subtree, got %v", ids)
	}

	ids, err = repo.PluckIDsByPathPrefix(ctx, nil, 1, underscore.ID, underscore.Path)
	if err != nil {
		t.Fatalf("pluck: %v", err)
	}
	if len(ids) != 1 || ids[0] != underscore.ID {
		t.Fatalf("cascade for /d_cs must cover only its own subtree, got %v", ids)
	}

	child := models.Folder{Name: "sub", UserID: 1, ParentID: &wild.ID, Path: "/d%/sub"}
	if err := repo.Create(ctx, nil, &child); err != nil {
		t.Fatalf("create sub: %v", err)
	}
	ids, err = repo.PluckIDsByPathPrefix(ctx, nil, 1, wild.ID, wild.Path)
	if err != nil {
		t.Fatalf("pluck: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("descendants of a wildcard-named folder must still match, got %v", ids)
	}
}

func TestFolderRepositoryCountByParentAndName(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormFolderRepository(db)
	ctx := context.Background()

	isRoot := true
	root := models.Folder{Name: "root", UserID: 1, IsRoot: &isRoot, Path: "/"}
	if err := repo.Create(ctx, nil, &root); err != nil {
		t.Fatalf("create root: %v", err)
	}
	docs := models.Folder{Name: "docs", UserID: 1, ParentID: &root.ID, Path: "/docs"}
	if err := repo.Create(ctx, nil, &docs); err != nil {
		t.Fatalf("create docs: %v", err)
	}

	count, err := repo.CountByParentAndName(ctx, nil, 1, &root.ID, "docs")
	if err != nil || count != 1 {
		t.Fatalf("expected count 1, got %d err %v", count, err)
	}
	count, err = repo.CountByParentAndName(ctx, nil, 2, &root.ID, "docs")
	if err != nil || count != 0 {
		t.Fatalf("sibling check must be per user, got %d err %v", count, err)
	}
}

func TestFileRepositoryTrashFiltering(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormFileRepository(db)
	ctx := context.Background()

	folderID := uint(1)
	live := models.File{Name: "live.txt", UserID: 1, FolderID: &folderID, Size: 10, MimeType: "text/plain", StoragePath: "user-1/a"}
	trashed := models.File{Name: "gone.txt", UserID: 1, FolderID: &folderID, Size: 20, MimeType: "text/plain", StoragePath: "user-1/b", IsDeleted: true}
	for _, f := range []*models.File{&live, &trashed} {
		if err := repo.Create(ctx, nil, f); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	recent, err := repo.ListRecentByUser(ctx, nil, 1, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != live.ID {
		t.Fatalf("recents must hide trashed files, got %+v", recent)
	}

	inFolder, err := repo.ListByFolder(ctx, nil, 1, folderID)
	if err != nil {
		t.Fatalf("list by folder: %v", err)
	}
	if len(inFolder) != 1 || inFolder[0].ID != live.ID {
		t.Fatalf("folder listing must hide trashed files, got %+v", inFolder)
	}

	all, err := repo.ListAllByUser(ctx, nil, 1)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("storage accounting must see trashed files, got %d rows", len(all))
	}

	total, err := repo.SumSize(ctx, nil)
	if err != nil || total != 30 {
		t.Fatalf("expected sum 30, got %d err %v", total, err)
	}
}

func TestFileRepositorySumSizeEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormFileRepository(db)

	total, err := repo.SumSize(context.Background(), nil)
	if err != nil {
		t.Fatalf("sum: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 on an empty table, got %d", total)
	}
}

func TestFileLogRepositoryListRecent(t *testing.T) {
	db := openTestDB(t)
	repo := NewGormFileLogRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := models.FileLog{FileID: uint(i + 1), UserID: 1, Action: models.FileActionCreated, NewValue: "f"}
		if err := repo.Create(ctx, nil, &entry); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	logs, err := repo.ListRecent(ctx, nil, 3)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(logs))
	}
	if logs[0].ID < logs[1].ID {
		t.Fatalf("expected newest first, got %+v", logs)
	}
}

func TestTxManagerRollsBack(t *testing.T) {
	db := openTestDB(t)
	users := NewGormUserRepository(db)
	manager := &GormTxManager{db: db}
	ctx := context.Background()

	err := manager.WithTransaction(ctx, func(tx *gorm.DB) error {
		user := models.User{Name: "Ghost", Email: "ghost@example.com", PasswordHash: "x"}
		if err := users.Create(ctx, tx, &user); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	if err == nil {
		t.Fatalf("expected transaction error")
	}

	count, err := users.CountByEmail(ctx, "ghost@example.com")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to discard the row, got %d", count)
	}
}
