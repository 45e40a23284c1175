package platform

import (
	"context"

	"github.com/voxlane/console/models"
)

type userRepository struct {
	client *Client
}

// NewUserRepository creates the remote user store.
func NewUserRepository(client *Client) UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.client.getJSON(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := r.client.getJSON(ctx, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var created models.User
	if err := r.client.postJSON(ctx, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	var updated models.User
	if err := r.client.putJSON(ctx, "/users/"+user.ID, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *userRepository) Delete(ctx context.Context, userID string) error {
	return r.client.deleteJSON(ctx, "/users/"+userID)
}
