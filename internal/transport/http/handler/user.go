package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sharespace/internal/app"
	"sharespace/internal/model"
	"sharespace/internal/transport/http/middleware"
	"sharespace/internal/transport/http/response"
)

// pictureKeys are the accepted spellings of the picture field, in priority order.
var pictureKeys = []string{"profilePictureUrl", "profilePic", "profilePicture"}

type UserHandler struct {
	userService *app.UserService
}

type profileUser struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Bio               string    `json:"bio"`
	ProfilePictureURL *string   `json:"profilePictureUrl"`
	CreatedAt         time.Time `json:"createdAt"`
}

type profileResponse struct {
	Message string      `json:"message,omitempty"`
	User    profileUser `json:"user"`
}

func NewUserHandler(userService *app.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, app.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.MsgUserNotFound)
			return
		}
		response.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, profileResponse{User: toProfileUser(user)})
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	input, err := decodeProfileUpdate(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return
	}
	input.Meta = requestMeta(c)

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNameEmpty):
			response.Error(c, http.StatusBadRequest, "Name cannot be empty")
		case errors.Is(err, app.ErrBioTooLong):
			response.Error(c, http.StatusBadRequest, "Bio must be less than 500 characters")
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.MsgUserNotFound)
		default:
			response.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		Message: "Profile updated successfully",
		User:    toProfileUser(user),
	})
}

// decodeProfileUpdate keeps only whitelisted keys. Values of the wrong JSON
// type are ignored. The first picture key holding a non-null value wins; if
// the keys that are present are all null the picture is cleared.
func decodeProfileUpdate(c *gin.Context) (app.UpdateProfileInput, error) {
	var input app.UpdateProfileInput

	body, err := c.GetRawData()
	if err != nil {
		return input, err
	}
	if len(body) == 0 {
		return input, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return input, err
	}

	input.Name = stringField(fields, "name")
	input.Bio = stringField(fields, "bio")

	for _, key := range pictureKeys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if isNull(raw) {
			input.PictureSet = true
			continue
		}
		input.Picture = stringField(fields, key)
		input.PictureSet = input.Picture != nil
		break
	}
	return input, nil
}

func stringField(fields map[string]json.RawMessage, key string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func toProfileUser(u *model.User) profileUser {
	return profileUser{
		ID:                u.ID.Hex(),
		Name:              u.Name,
		Email:             u.Email,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
	}
}
