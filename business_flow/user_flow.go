package businessflow

import (
	"context"

	"github.com/voxlane/console/app/dto"
	"github.com/voxlane/console/models"
	"github.com/voxlane/console/platform"
)

// UserFlow manages platform user accounts.
type UserFlow interface {
	ListUsers(ctx context.Context) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID string, req *dto.DeleteResourceRequest) error
}

// UserFlowImpl implements UserFlow.
type UserFlowImpl struct {
	users platform.UserRepository
}

// NewUserFlow creates a new user flow.
func NewUserFlow(users platform.UserRepository) UserFlow {
	return &UserFlowImpl{users: users}
}

func (s *UserFlowImpl) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	return &dto.UserListResponse{Users: users, Total: len(users)}, nil
}

func (s *UserFlowImpl) GetUser(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, mapPlatformError(err, ErrUserNotFound)
	}
	return user, nil
}

func (s *UserFlowImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, NewBusinessError("USER_EMAIL_REQUIRED", "user email is required", ErrUserEmailRequired)
	}
	if req.Password == "" {
		return nil, NewBusinessError("PASSWORD_REQUIRED", "password is required for new users", ErrPasswordRequired)
	}
	status := models.UserStatus(req.Status)
	if status == "" {
		status = models.UserStatusActive
	}
	created, err := s.users.Create(ctx, &models.User{
		Email:          req.Email,
		Password:       req.Password,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		MobileNumber:   req.MobileNumber,
		RoleID:         req.RoleID,
		OrganizationID: req.OrgID,
		Status:         status,
	})
	if err != nil {
		return nil, mapPlatformError(err, nil)
	}
	created.Password = ""
	return created, nil
}

// UpdateUser sends the full record back. An empty password means keep the
// current one; the field is simply omitted from the payload.
func (s *UserFlowImpl) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, NewBusinessError("USER_EMAIL_REQUIRED", "user email is required", ErrUserEmailRequired)
	}
	current, err := s.users.ByID(ctx, userID)
	if err != nil {
		return nil, mapPlatformError(err, ErrUserNotFound)
	}

	current.Email = req.Email
	current.Password = req.Password
	current.FirstName = req.FirstName
	current.LastName = req.LastName
	current.MobileNumber = req.MobileNumber
	current.RoleID = req.RoleID
	current.OrganizationID = req.OrgID
	if req.Status != "" {
		current.Status = models.UserStatus(req.Status)
	}

	updated, err := s.users.Update(ctx, current)
	if err != nil {
		return nil, mapPlatformError(err, ErrUserNotFound)
	}
	updated.Password = ""
	return updated, nil
}

func (s *UserFlowImpl) DeleteUser(ctx context.Context, userID string, req *dto.DeleteResourceRequest) error {
	if req == nil || !req.Confirm {
		return NewBusinessError("CONFIRMATION_REQUIRED", "deleting a user requires confirmation", ErrConfirmationRequired)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return mapPlatformError(err, ErrUserNotFound)
	}
	return nil
}
