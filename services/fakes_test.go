package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/Esaius2058/drive-x/models"

	"gorm.io/gorm"
)

type fakeTxManager struct {
	failWith error
}

func (m fakeTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	if m.failWith != nil {
		return m.failWith
	}
	return fn(nil)
}

type fakeUserRepo struct {
	usersByID    map[uint]models.User
	usersByEmail map[string]models.User
	nextID       uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:    map[uint]models.User{},
		usersByEmail: map[string]models.User{},
		nextID:       1,
	}
}

func (r *fakeUserRepo) put(user models.User) {
	r.usersByID[user.ID] = user
	r.usersByEmail[user.Email] = user
}

func (r *fakeUserRepo) CountByEmail(_ context.Context, email string) (int64, error) {
	if _, ok := r.usersByEmail[email]; ok {
		return 1, nil
	}
	return 0, nil
}

func (r *fakeUserRepo) Create(_ context.Context, _ *gorm.DB, user *models.User) error {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.put(*user)
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ *gorm.DB, email string) (models.User, error) {
	user, ok := r.usersByEmail[email]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, _ *gorm.DB, userID uint) (models.User, error) {
	user, ok := r.usersByID[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) UpdateByID(_ context.Context, _ *gorm.DB, userID uint, updates map[string]interface{}) error {
	user, ok := r.usersByID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if hash, ok := updates["password_hash"].(string); ok {
		user.PasswordHash = hash
	}
	if role, ok := updates["role"].(string); ok {
		user.Role = role
	}
	r.put(user)
	return nil
}

func (r *fakeUserRepo) DeleteByID(_ context.Context, _ *gorm.DB, userID uint) error {
	user, ok := r.usersByID[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.usersByEmail, user.Email)
	delete(r.usersByID, userID)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ *gorm.DB) (int64, error) {
	return int64(len(r.usersByID)), nil
}

func (r *fakeUserRepo) ListAll(_ context.Context, _ *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0, len(r.usersByID))
	for _, u := range r.usersByID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

type fakeFolderRepo struct {
	foldersByID map[uint]models.Folder
	nextID      uint
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{foldersByID: map[uint]models.Folder{}, nextID: 100}
}

func (r *fakeFolderRepo) GetByID(_ context.Context, _ *gorm.DB, folderID uint) (models.Folder, error) {
	folder, ok := r.foldersByID[folderID]
	if !ok {
		return models.Folder{}, gorm.ErrRecordNotFound
	}
	return folder, nil
}

func (r *fakeFolderRepo) GetRootByUser(_ context.Context, _ *gorm.DB, userID uint) (models.Folder, error) {
	for _, f := range r.foldersByID {
		if f.UserID == userID && f.IsRoot != nil && *f.IsRoot {
			return f, nil
		}
	}
	return models.Folder{}, gorm.ErrRecordNotFound
}

func (r *fakeFolderRepo) Create(_ context.Context, _ *gorm.DB, folder *models.Folder) error {
	if folder.ID == 0 {
		folder.ID = r.nextID
		r.nextID++
	}
	r.foldersByID[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) ListByUser(_ context.Context, _ *gorm.DB, userID uint) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.foldersByID {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFolderRepo) ListByParent(_ context.Context, _ *gorm.DB, userID uint, parentID uint) ([]models.Folder, error) {
	var out []models.Folder
	for _, f := range r.foldersByID {
		if f.UserID == userID && f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFolderRepo) CountByParentAndName(_ context.Context, _ *gorm.DB, userID uint, parentID *uint, name string) (int64, error) {
	var count int64
	for _, f := range r.foldersByID {
		if f.UserID != userID || f.Name != name {
			continue
		}
		switch {
		case parentID == nil && f.ParentID == nil:
			count++
		case parentID != nil && f.ParentID != nil && *f.ParentID == *parentID:
			count++
		}
	}
	return count, nil
}

func (r *fakeFolderRepo) PluckIDsByPathPrefix(_ context.Context, _ *gorm.DB, userID uint, rootID uint, rootPath string) ([]uint, error) {
	prefix := rootPath + "/"
	var ids []uint
	for _, f := range r.foldersByID {
		if f.UserID != userID {
			continue
		}
		if f.ID == rootID || (len(f.Path) > len(prefix) && f.Path[:len(prefix)] == prefix) {
			ids = append(ids, f.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeFolderRepo) DeleteByIDs(_ context.Context, _ *gorm.DB, folderIDs []uint) error {
	for _, id := range folderIDs {
		delete(r.foldersByID, id)
	}
	return nil
}

func (r *fakeFolderRepo) DeleteByUser(_ context.Context, _ *gorm.DB, userID uint) error {
	for id, f := range r.foldersByID {
		if f.UserID == userID {
			delete(r.foldersByID, id)
		}
	}
	return nil
}

type fakeFileRepo struct {
	filesByID map[uint]models.File
	nextID    uint
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{filesByID: map[uint]models.File{}, nextID: 1}
}

func (r *fakeFileRepo) Create(_ context.Context, _ *gorm.DB, file *models.File) error {
	if file.ID == 0 {
		file.ID = r.nextID
		r.nextID++
	}
	r.filesByID[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, _ *gorm.DB, fileID uint) (models.File, error) {
	file, ok := r.filesByID[fileID]
	if !ok {
		return models.File{}, gorm.ErrRecordNotFound
	}
	return file, nil
}

func (r *fakeFileRepo) ListRecentByUser(_ context.Context, _ *gorm.DB, userID uint, limit int) ([]models.File, error) {
	var out []models.File
	for _, f := range r.filesByID {
		if f.UserID == userID && !f.IsDeleted {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeFileRepo) ListAllByUser(_ context.Context, _ *gorm.DB, userID uint) ([]models.File, error) {
	var out []models.File
	for _, f := range r.filesByID {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFileRepo) ListByFolder(_ context.Context, _ *gorm.DB, userID uint, folderID uint) ([]models.File, error) {
	var out []models.File
	for _, f := range r.filesByID {
		if f.UserID == userID && !f.IsDeleted && f.FolderID != nil && *f.FolderID == folderID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFileRepo) ListByFolderIDs(_ context.Context, _ *gorm.DB, userID uint, folderIDs []uint) ([]models.File, error) {
	wanted := map[uint]bool{}
	for _, id := range folderIDs {
		wanted[id] = true
	}
	var out []models.File
	for _, f := range r.filesByID {
		if f.UserID == userID && f.FolderID != nil && wanted[*f.FolderID] {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFileRepo) UpdateByID(_ context.Context, _ *gorm.DB, fileID uint, updates map[string]interface{}) error {
	file, ok := r.filesByID[fileID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		file.Name = name
	}
	if deleted, ok := updates["is_deleted"].(bool); ok {
		file.IsDeleted = deleted
	}
	r.filesByID[fileID] = file
	return nil
}

func (r *fakeFileRepo) DeleteByID(_ context.Context, _ *gorm.DB, fileID uint) error {
	if _, ok := r.filesByID[fileID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.filesByID, fileID)
	return nil
}

func (r *fakeFileRepo) DeleteByFolderIDs(_ context.Context, _ *gorm.DB, userID uint, folderIDs []uint) error {
	wanted := map[uint]bool{}
	for _, id := range folderIDs {
		wanted[id] = true
	}
	for id, f := range r.filesByID {
		if f.UserID == userID && f.FolderID != nil && wanted[*f.FolderID] {
			delete(r.filesByID, id)
		}
	}
	return nil
}

func (r *fakeFileRepo) DeleteByUser(_ context.Context, _ *gorm.DB, userID uint) error {
	for id, f := range r.filesByID {
		if f.UserID == userID {
			delete(r.filesByID, id)
		}
	}
	return nil
}

func (r *fakeFileRepo) Count(_ context.Context, _ *gorm.DB) (int64, error) {
	return int64(len(r.filesByID)), nil
}

func (r *fakeFileRepo) SumSize(_ context.Context, _ *gorm.DB) (int64, error) {
	var total int64
	for _, f := range r.filesByID {
		total += f.Size
	}
	return total, nil
}

type fakeFileLogRepo struct {
	entries []models.FileLog
}

func (r *fakeFileLogRepo) Create(_ context.Context, _ *gorm.DB, entry *models.FileLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeFileLogRepo) ListRecent(_ context.Context, _ *gorm.DB, limit int) ([]models.FileLog, error) {
	out := make([]models.FileLog, len(r.entries))
	copy(out, r.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeRevokedTokenRepo struct {
	revoked map[string]bool
}

func newFakeRevokedTokenRepo() *fakeRevokedTokenRepo {
	return &fakeRevokedTokenRepo{revoked: map[string]bool{}}
}

func (r *fakeRevokedTokenRepo) Revoke(_ context.Context, token string, _ time.Duration) error {
	r.revoked[token] = true
	return nil
}

func (r *fakeRevokedTokenRepo) IsRevoked(_ context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

type fakeObjectStore struct {
	blobs     map[string][]byte
	putErr    error
	deleteErr error
	deleted   []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{blobs: map[string][]byte{}}
}

func (s *fakeObjectStore) Put(_ context.Context, key string, _ string, r io.Reader) error {
	if s.putErr != nil {
		return s.putErr
	}
	if _, ok := s.blobs[key]; ok {
		return errors.New("key already exists")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.blobs[key] = data
	return nil
}

func (s *fakeObjectStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	if _, ok := s.blobs[key]; !ok {
		return "", errors.New("no such key")
	}
	return fmt.Sprintf("https://files.example.com/%s?ttl=%d", key, int(ttl.Seconds())), nil
}

func (s *fakeObjectStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.blobs, key)
	return nil
}
