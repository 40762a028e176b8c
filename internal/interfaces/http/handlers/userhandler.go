package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ta7wila/internal/application/user/usecases"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/utils"
)

// UserHandler exposes account provisioning to platform administrators.
type UserHandler struct {
	createUC *usecases.CreateUserUseCase
	listUC   *usecases.ListUsersUseCase
	logger   logger.Interface
}

func NewUserHandler(createUC *usecases.CreateUserUseCase, listUC *usecases.ListUsersUseCase) *UserHandler {
	return &UserHandler{
		createUC: createUC,
		listUC:   listUC,
		logger:   logger.NewLogger(),
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role" binding:"required"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Mobile:   req.Mobile,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toUserResponse(result.User), "account created")
}

func (h *UserHandler) List(c *gin.Context) {
	pagination := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListUsersCommand{
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]UserResponse, 0, len(result.Users))
	for _, u := range result.Users {
		items = append(items, toUserResponse(u))
	}
	utils.ListSuccessResponse(c, items, result.Total, pagination.Page, pagination.PageSize)
}
