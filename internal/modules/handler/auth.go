package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Renishchandera/gameforge-ai/internal/config"
	"github.com/Renishchandera/gameforge-ai/internal/modules/model"
	"github.com/Renishchandera/gameforge-ai/internal/modules/serializer"
	"github.com/Renishchandera/gameforge-ai/internal/modules/service"
)

const RefreshCookieName = "refreshToken"

type AuthHandler struct {
	svc    service.AuthService
	cfg    *config.Config
	log    *zap.Logger
	secure bool
}

func NewAuthHandler(s service.AuthService, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: s, cfg: cfg, log: log, secure: cfg.Auth.CookieSecure}
}

type UserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

type AuthData struct {
	AccessToken string   `json:"accessToken"`
	User        UserView `json:"user"`
}

func newUserView(u *model.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, Username: u.Username}
}

type RegisterReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register godoc
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		RegisterReq	true	"Credentials"
//	@Success	201		{object}	serializer.Response{data=AuthData}
//	@Failure	400		{object}	serializer.Response
//	@Router		/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := RegisterReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(service.ErrRegisterFieldsRequired.Error(), err))
		return
	}

	res, err := h.svc.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceErr(c, err, "Registration failed")
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusCreated, serializer.Response{
		Msg:  "User registered successfully",
		Data: AuthData{AccessToken: res.AccessToken, User: newUserView(res.User)},
	})
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginReq	true	"Credentials"
//	@Success	200		{object}	serializer.Response{data=AuthData}
//	@Failure	401		{object}	serializer.Response
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr(service.ErrLoginFieldsRequired.Error(), err))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeServiceErr(c, err, "Login failed")
		return
	}

	h.setRefreshCookie(c, res.RefreshToken)
	c.JSON(http.StatusOK, serializer.Response{
		Msg:  "Login successful",
		Data: AuthData{AccessToken: res.AccessToken, User: newUserView(res.User)},
	})
}

// Refresh exchanges the refresh cookie for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(RefreshCookieName)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(service.ErrNoRefreshToken.Error()))
		return
	}

	access, err := h.svc.Refresh(c.Request.Context(), raw)
	if err != nil {
		writeServiceErr(c, err, "Refresh failed")
		return
	}
	c.JSON(http.StatusOK, serializer.Response{Data: gin.H{"accessToken": access}})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if raw, err := c.Cookie(RefreshCookieName); err == nil && raw != "" {
		if err := h.svc.Logout(c.Request.Context(), raw); err != nil {
			h.log.Warn("revoke refresh session", zap.Error(err))
		}
	}
	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, serializer.Response{Msg: "Logged out"})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookieName, token, int(h.cfg.Auth.RefreshTTL.Seconds()), "/", "", h.secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", h.secure, true)
}
