package user

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ride-hailing/internal/models"
	"ride-hailing/pkg/utils"

	"github.com/labstack/echo/v4"
)

const maxProfileImageSize = 5 << 20 // 5 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type Handler struct {
	service   ServiceInterface
	uploadDir string
}

// NewHandler creates a new user handler. Profile images are written to uploadDir,
// which is served under /uploads.
func NewHandler(service ServiceInterface, uploadDir string) *Handler {
	return &Handler{
		service:   service,
		uploadDir: uploadDir,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req models.RegisterUserRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	authResponse, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "User already exists")
		}
		c.Logger().Error("Handler.Register: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Error registering user")
	}

	return utils.RespondWithMessage(c, http.StatusCreated, "User registered successfully", authResponse)
}

func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	authResponse, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "User not found")
		}
		if errors.Is(err, models.ErrInvalidCredentials) {
			return utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		}
		c.Logger().Error("Handler.Login: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Error logging in user")
	}

	return utils.RespondWithJSON(c, http.StatusOK, authResponse)
}

// GoogleLogin initiates the Google OAuth 2.0 login flow.
// It redirects the user to Google's consent screen.
func (h *Handler) GoogleLogin(c echo.Context) error {
	authURL, state, err := h.service.HandleGoogleLogin()
	if err != nil {
		if errors.Is(err, models.ErrFeatureDisabled) {
			return utils.RespondWithError(c, http.StatusNotImplemented, "Google sign-in is not configured")
		}
		c.Logger().Error("Handler.GoogleLogin: failed to generate auth URL: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Could not initiate Google login")
	}

	// Store the state in a short lived cookie to check it on the callback
	cookie := new(http.Cookie)
	cookie.Name = "oauthstate"
	cookie.Value = state
	cookie.Expires = time.Now().Add(10 * time.Minute)
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.Secure = c.IsTLS()
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)

	return c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback handles the redirect back from Google and validates the state
// parameter against the cookie set by GoogleLogin.
func (h *Handler) GoogleCallback(c echo.Context) error {
	oauthStateCookie, err := c.Cookie("oauthstate")
	if err != nil {
		c.Logger().Warn("Handler.GoogleCallback: could not read state cookie: ", err)
		return utils.RespondWithError(c, http.StatusUnauthorized, "Invalid or missing state cookie")
	}

	if c.QueryParam("state") != oauthStateCookie.Value {
		c.Logger().Warn("Handler.GoogleCallback: state parameter mismatch")
		return utils.RespondWithError(c, http.StatusUnauthorized, "Invalid state parameter")
	}

	// The state is single use
	oauthStateCookie.Value = ""
	oauthStateCookie.Expires = time.Unix(0, 0)
	c.SetCookie(oauthStateCookie)

	code := c.QueryParam("code")
	if code == "" {
		return utils.RespondWithError(c, http.StatusBadRequest, "Authorization code not provided")
	}

	authResponse, err := h.service.HandleGoogleCallback(c.Request().Context(), code)
	if err != nil {
		c.Logger().Error("Handler.GoogleCallback: service error: ", err)
		return c.Redirect(http.StatusTemporaryRedirect, fmt.Sprintf("%s/login/error", h.service.GetClientOrigin()))
	}

	// The app picks the token up from the URL
	redirectURL := fmt.Sprintf("%s/login/success?token=%s", h.service.GetClientOrigin(), authResponse.Token)
	return c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}

// --- User Profile Routes ---
func (h *Handler) GetProfile(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.service.GetUserProfile(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "User profile not found")
		}
		c.Logger().Error("Handler.GetProfile: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve profile")
	}
	return utils.RespondWithJSON(c, http.StatusOK, user)
}

// UpdateProfile accepts JSON, or multipart/form-data when a profileImage file is attached.
func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	data := models.UserUpdateData{}
	if req.Name != "" {
		data.Name = &req.Name
	}
	if req.Email != "" {
		data.Email = &req.Email
	}
	if req.PhoneNumber != "" {
		data.PhoneNumber = &req.PhoneNumber
	}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		file, err := c.FormFile("profileImage")
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			return utils.RespondWithError(c, http.StatusBadRequest, "Invalid profile image upload")
		}
		if file != nil {
			path, err := h.saveProfileImage(userID, file)
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					return httpErr
				}
				c.Logger().Error("Handler.UpdateProfile: saving image: ", err)
				return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to store profile image")
			}
			data.ProfileImage = &path
		}
	}

	user, err := h.service.UpdateUserProfile(c.Request().Context(), userID, data)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return utils.RespondWithError(c, http.StatusNotFound, "User profile not found")
		}
		if errors.Is(err, models.ErrConflict) {
			return utils.RespondWithError(c, http.StatusConflict, "Email already in use")
		}
		c.Logger().Error("Handler.UpdateProfile: ", err)
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
	}
	return utils.RespondWithMessage(c, http.StatusOK, "Profile updated successfully", user)
}

// saveProfileImage writes the upload to uploadDir and returns its public path.
func (h *Handler) saveProfileImage(userID string, file *multipart.FileHeader) (string, error) {
	if file.Size > maxProfileImageSize {
		return "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Profile image must be 5MB or smaller")
	}
	ext, ok := allowedImageTypes[file.Header.Get(echo.HeaderContentType)]
	if !ok {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Profile image must be a JPEG, PNG or WebP file")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", err
	}
	name, err := utils.UploadFileName(userID, ext)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(h.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
