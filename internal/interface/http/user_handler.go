package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/invoice-dashboard/internal/application"
	"github.com/oksasatya/invoice-dashboard/pkg/helpers"
	"github.com/oksasatya/invoice-dashboard/pkg/response"
)

// UserHandler serves the login and signup form posts plus the profile API.
type UserHandler struct {
	Service *application.UserService
	Cookies *helpers.Manager
}

func NewUserHandler(service *application.UserService, cookies *helpers.Manager) *UserHandler {
	return &UserHandler{Service: service, Cookies: cookies}
}

// Login handles the sign-in form. Success sets the cookie pair and lands on
// the dashboard; failure answers with the classified message.
func (h *UserHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	res, err := h.Service.SignIn(c.Request.Context(), email, password)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, application.MsgSomethingWentWrong, nil)
		return
	}
	if res.Message != "" {
		status := http.StatusUnauthorized
		if res.Message == application.MsgSomethingWentWrong {
			status = http.StatusInternalServerError
		}
		response.Error[any](c, status, res.Message, nil)
		return
	}

	h.setSession(c, res)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Signup handles the registration form. A successful registration signs the
// new user in immediately.
func (h *UserHandler) Signup(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		response.Error[any](c, http.StatusBadRequest, application.MsgRegisterMissingFields, nil)
		return
	}

	res, err := h.Service.Register(c.Request.Context(), c.Request.PostForm)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, application.MsgSomethingWentWrong, nil)
		return
	}
	if res.Message != "" {
		response.Error[any](c, statusForRegisterMessage(res.Message), res.Message, nil)
		return
	}

	h.setSession(c, res)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func statusForRegisterMessage(msg string) int {
	switch msg {
	case application.MsgUserExists:
		return http.StatusConflict
	case application.MsgRegisterMissingFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Logout drops the session and clears the cookie pair.
func (h *UserHandler) Logout(c *gin.Context) {
	if uid := c.GetString("user_id"); uid != "" {
		h.Service.Logout(c.Request.Context(), uid)
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// GetProfile returns the signed-in user for the API.
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Service.GetProfile(c.GetString("user_id"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "User not found", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "profile", nil)
}

func (h *UserHandler) setSession(c *gin.Context, res application.SignInResult) {
	t := res.Tokens
	h.Cookies.SetPair(c, t.AccessToken, t.AccessTokenExpiry, t.RefreshToken, t.RefreshTokenExpiry)
}
