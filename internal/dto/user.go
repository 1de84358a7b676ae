package dto

import (
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a login.
type CreateUserRequest struct {
	Username   string      `json:"username" binding:"required,min=3,max=64"`
	Name       string      `json:"name" binding:"required,max=120"`
	Password   string      `json:"password" binding:"required,min=8,max=72"`
	Role       domain.Role `json:"role" binding:"required,oneof=admin branch_manager producer"`
	ProducerID *string     `json:"producerID"`
	BranchIDs  []string    `json:"branchIDs" binding:"omitempty,dive,required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID     string      `json:"userID"`
	Username   string      `json:"username"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	ProducerID *string     `json:"producerID,omitempty"`
	BranchIDs  []string    `json:"branchIDs"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	branchIDs := user.BranchIDs
	if branchIDs == nil {
		branchIDs = []string{}
	}
	return UserResponse{
		UserID:     user.UserID,
		Username:   user.Username,
		Name:       user.Name,
		Role:       user.Role,
		ProducerID: user.ProducerID,
		BranchIDs:  branchIDs,
	}
}
