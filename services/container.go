package services

import (
	"github.com/Esaius2058/drive-x/repositories"
	"github.com/Esaius2058/drive-x/storage"
)

type Container struct {
	Auth    AuthService
	Files   FileService
	Folders FolderService
	Profile ProfileService
}

func NewContainer(repos repositories.Container, objects storage.ObjectStore) *Container {
	return &Container{
		Auth:    NewAuthService(repos.TxManager, repos.Users, repos.Folders, repos.Files, repos.RevokedTokens, objects),
		Files:   NewFileService(repos.TxManager, repos.Files, repos.Folders, repos.FileLogs, objects),
		Folders: NewFolderService(repos.TxManager, repos.Folders, repos.Files, objects),
		Profile: NewProfileService(repos.Users, repos.Files, repos.FileLogs),
	}
}
