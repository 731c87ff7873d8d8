package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"marketplace-backend/internal/auth"
	"marketplace-backend/internal/common"
	"marketplace-backend/internal/middleware"
	"marketplace-backend/internal/models"
	"marketplace-backend/internal/store"
)

const (
	msgEmailInUse   = "email already in use. Please login instead."
	msgUserNotFound = "User not found"
)

type UserHandler struct {
	users    UserStore
	uploader Uploader
	tokens   TokenIssuer
	log      logrus.FieldLogger
	images   ImagePolicy
}

func NewUserHandler(d Deps) *UserHandler {
	return &UserHandler{users: d.Users, uploader: d.Uploader, tokens: d.Tokens, log: d.Log, images: ReplaceImages}
}

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type updateUserRequest struct {
	Name        *string `json:"name" form:"name"`
	Email       *string `json:"email" form:"email" binding:"omitempty,email"`
	Password    *string `json:"password" form:"password" binding:"omitempty,min=1"`
	Username    *string `json:"username" form:"username"`
	Gender      *string `json:"gender" form:"gender"`
	Address     *string `json:"address" form:"address"`
	PhoneNumber *string `json:"phone_number" form:"phone_number"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}
	ctx := c.Request.Context()

	if err := h.emailAvailable(c, req.Email, ""); err != nil {
		fail(c, h.log, "creating user", err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, h.log, "creating user", err)
		return
	}
	user := &models.User{Name: req.Name, Email: req.Email, Password: hashed}
	if err := h.users.Create(ctx, user); err != nil {
		fail(c, h.log, "creating user", duplicateAs(err, msgEmailInUse))
		return
	}

	token, err := h.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		fail(c, h.log, "creating user", err)
		return
	}
	common.SuccessWithToken(c, http.StatusCreated, "User created successfully", user, token)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	user, err := h.users.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		fail(c, h.log, "logging in user", notFoundAs(err, "Invalid email"))
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		common.Fail(c, common.BadRequest("Invalid password", nil))
		return
	}

	token, err := h.tokens.Generate(user.ID.Hex(), user.Email)
	if err != nil {
		fail(c, h.log, "logging in user", err)
		return
	}
	common.SuccessWithToken(c, http.StatusOK, "", user, token)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, "fetching users", err)
		return
	}
	if len(users) == 0 {
		common.Fail(c, common.NotFound("No user found"))
		return
	}
	common.Success(c, http.StatusOK, "", users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, "fetching user", notFoundAs(err, msgUserNotFound))
		return
	}
	common.Success(c, http.StatusOK, "", user)
}

// Update writes only the fields present in the request.
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.users.GetByID(ctx, id); err != nil {
		fail(c, h.log, "updating user", notFoundAs(err, msgUserNotFound))
		return
	}

	var req updateUserRequest
	if err := bind(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	patch := &models.UserPatch{
		Name:        req.Name,
		Email:       req.Email,
		Username:    req.Username,
		Gender:      req.Gender,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Email != nil {
		if err := h.emailAvailable(c, *req.Email, id); err != nil {
			fail(c, h.log, "updating user", err)
			return
		}
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			fail(c, h.log, "updating user", err)
			return
		}
		patch.Password = &hashed
	}

	urls, err := upload(c, h.uploader, middleware.UploadedFiles(c))
	if err != nil {
		fail(c, h.log, "updating user", err)
		return
	}
	patch.ImageURL = h.images.Apply(urls)

	user, err := h.users.Update(ctx, id, patch)
	if err != nil {
		fail(c, h.log, "updating user", duplicateAs(notFoundAs(err, msgUserNotFound), msgEmailInUse))
		return
	}
	common.Success(c, http.StatusOK, "success updating user.", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.users.GetByID(ctx, id); err != nil {
		fail(c, h.log, "deleting user", notFoundAs(err, msgUserNotFound))
		return
	}
	if err := h.users.Delete(ctx, id); err != nil {
		fail(c, h.log, "deleting user", notFoundAs(err, msgUserNotFound))
		return
	}
	common.Success(c, http.StatusOK, "success deleting user.", gin.H{"id": id})
}

// emailAvailable fails with a conflict when another user than selfID owns email.
func (h *UserHandler) emailAvailable(c *gin.Context, email, selfID string) error {
	existing, err := h.users.GetByEmail(c.Request.Context(), email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID.Hex() == selfID:
		return nil
	default:
		return common.Conflict(msgEmailInUse)
	}
}

// duplicateAs maps a unique-index violation onto the same 400 as the pre-check.
func duplicateAs(err error, msg string) error {
	if errors.Is(err, store.ErrDuplicate) {
		return common.Conflict(msg)
	}
	return err
}
