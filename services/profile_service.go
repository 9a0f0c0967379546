package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/Esaius2058/drive-x/config"
	"github.com/Esaius2058/drive-x/models"
	"github.com/Esaius2058/drive-x/repositories"

	"gorm.io/gorm"
)

type ProfileOutput struct {
	User        AuthUser          `json:"user"`
	RecentFiles []models.File     `json:"recent_files"`
	UserNames   map[uint]string   `json:"user_names"`
	UsedStorage int64             `json:"used_storage"`
	AdminStats  *AdminStatsOutput `json:"admin_stats,omitempty"`
}

type AdminStatsOutput struct {
	TotalUsers   int64            `json:"total_users"`
	TotalFiles   int64            `json:"total_files"`
	TotalStorage int64            `json:"total_storage"`
	Users        []AuthUser       `json:"users"`
	RecentLogs   []models.FileLog `json:"recent_logs"`
}

type ProfileService interface {
	BuildProfile(ctx context.Context, userID uint) (ProfileOutput, error)
	BuildAdminStats(ctx context.Context) (AdminStatsOutput, error)
}

type profileService struct {
	users    repositories.UserRepository
	files    repositories.FileRepository
	fileLogs repositories.FileLogRepository
}

func NewProfileService(
	users repositories.UserRepository,
	files repositories.FileRepository,
	fileLogs repositories.FileLogRepository,
) ProfileService {
	return &profileService{users: users, files: files, fileLogs: fileLogs}
}

// BuildProfile recomputes used storage from the user's file rows on
// every call. Trashed files still count; only permanent deletion
// releases quota. Admin callers additionally get the platform stats
// block.
func (s *profileService) BuildProfile(ctx context.Context, userID uint) (ProfileOutput, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileOutput{}, newAppError(http.StatusNotFound, "user not found", nil)
		}
		return ProfileOutput{}, newAppError(http.StatusInternalServerError, "failed to query user", err)
	}

	limit := config.AppConfig.Pagination.ProfileFileLimit
	recent, err := s.files.ListRecentByUser(ctx, nil, userID, limit)
	if err != nil {
		return ProfileOutput{}, newAppError(http.StatusInternalServerError, "failed to list recent files", err)
	}

	all, err := s.files.ListAllByUser(ctx, nil, userID)
	if err != nil {
		return ProfileOutput{}, newAppError(http.StatusInternalServerError, "failed to compute storage", err)
	}

	out := ProfileOutput{
		User:        AuthUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		RecentFiles: recent,
		UserNames:   map[uint]string{user.ID: user.Name},
		UsedStorage: TotalUsedStorage(all),
	}

	if user.Role == models.RoleAdmin {
		stats, err := s.BuildAdminStats(ctx)
		if err != nil {
			return ProfileOutput{}, err
		}
		out.AdminStats = &stats
		for _, u := range stats.Users {
			out.UserNames[u.ID] = u.Name
		}
	}
	return out, nil
}

func (s *profileService) BuildAdminStats(ctx context.Context) (AdminStatsOutput, error) {
	userCount, err := s.users.Count(ctx, nil)
	if err != nil {
		return AdminStatsOutput{}, newAppError(http.StatusInternalServerError, "failed to count users", err)
	}
	fileCount, err := s.files.Count(ctx, nil)
	if err != nil {
		return AdminStatsOutput{}, newAppError(http.StatusInternalServerError, "failed to count files", err)
	}
	totalStorage, err := s.files.SumSize(ctx, nil)
	if err != nil {
		return AdminStatsOutput{}, newAppError(http.StatusInternalServerError, "failed to sum storage", err)
	}

	users, err := s.users.ListAll(ctx, nil)
	if err != nil {
		return AdminStatsOutput{}, newAppError(http.StatusInternalServerError, "failed to list users", err)
	}
	roster := make([]AuthUser, 0, len(users))
	for _, u := range users {
		roster = append(roster, AuthUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}

	logs, err := s.fileLogs.ListRecent(ctx, nil, config.AppConfig.Pagination.AdminLogLimit)
	if err != nil {
		return AdminStatsOutput{}, newAppError(http.StatusInternalServerError, "failed to list activity", err)
	}

	return AdminStatsOutput{
		TotalUsers:   userCount,
		TotalFiles:   fileCount,
		TotalStorage: totalStorage,
		Users:        roster,
		RecentLogs:   logs,
	}, nil
}
