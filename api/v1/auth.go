package v1

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/seowoojae/shelfd/api/auth"
	"github.com/seowoojae/shelfd/http/request"
	"github.com/seowoojae/shelfd/http/response"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
	"github.com/seowoojae/shelfd/validator"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	generalSetting, err := h.store.GetSystemGeneralSetting()
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Error("Failed to get general system setting", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
	}
	if generalSetting != nil && generalSetting.DisableSignup {
		log.Debug("Signup is disabled")
		response.Forbidden(w, r)
		return
	}

	signup := &model.UserSignupRequest{}
	if err := json.NewDecoder(r.Body).Decode(&signup); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	if err := validator.ValidateSignupRequest(h.store, signup); err != nil {
		log.Error("Failed to validate signup request", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to generate password hash", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// The first user to sign up becomes the host.
	newRole := model.RoleUser
	hostType := model.RoleHost
	existedHostUser, err := h.store.GetUser(&model.FindUser{Role: &hostType})
	if err != nil {
		log.Error("Failed to get users", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if existedHostUser == nil {
		newRole = model.RoleHost
	}

	user := model.User{
		Username:     signup.Username,
		Nickname:     signup.Nickname,
		Email:        signup.Email,
		PasswordHash: string(passwordHash),
		Role:         newRole,
	}

	newUser, err := h.store.CreateUser(&user)
	if err != nil {
		log.Error("Failed to signup user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	h.store.UserCache.Store(newUser.ID, newUser)

	response.Created(w, r, response.UserResponse(newUser))
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var signin model.UserSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&signin); err != nil {
		log.Error("Failed to decode request body", zap.Error(err))
		response.BadRequest(w, r, err)
		return
	}

	user, err := h.store.GetUser(&model.FindUser{Username: &signin.Username})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		log.Warn("User not found", zap.String("username", signin.Username))
		response.NotFound(w, r)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signin.Password)); err != nil {
		log.Debug("Failed to compare password", zap.Error(err))
		response.BadRequest(w, r, errors.New("invalid password"))
		return
	}

	// Browser flows pass ?next= and get redirected through the one-time
	// code exchange instead of receiving the cookie here.
	if next := request.QueryStringParam(r, "next", ""); next != "" {
		code, err := h.store.CreateSigninCode(user.ID, auth.SigninCodeDuration)
		if err != nil {
			log.Error("Failed to create signin code", zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
		callback := fmt.Sprintf("/api/v1/auth/callback?code=%s&next=%s",
			url.QueryEscape(code), url.QueryEscape(next))
		http.Redirect(w, r, callback, http.StatusFound)
		return
	}

	expireTime := time.Now().Add(auth.AccessTokenDuration)
	if signin.NeverExpire {
		// Set the expire time to 100 years.
		expireTime = time.Now().Add(100 * 365 * 24 * time.Hour)
	}
	if err := h.doSignIn(w, r, user, expireTime); err != nil {
		log.Error("Failed to sign in", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, response.UserResponse(user))
}

// authCallback exchanges a one-time sign-in code for a session cookie. A
// valid code redirects to next (default /home); anything else lands on
// /login.
func (h *Handler) authCallback(w http.ResponseWriter, r *http.Request) {
	code := request.QueryStringParam(r, "code", "")
	next := request.QueryStringParam(r, "next", "/home")

	if code == "" {
		log.Debug("Callback without code")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	userID, err := h.store.ConsumeSigninCode(code)
	if err != nil {
		log.Debug("Failed to consume signin code", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil || user == nil {
		log.Error("Failed to get user for signin code", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := h.doSignIn(w, r, user, time.Now().Add(auth.AccessTokenDuration)); err != nil {
		log.Error("Failed to sign in", zap.Error(err))
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	http.Redirect(w, r, next, http.StatusFound)
}

func (h *Handler) doSignIn(w http.ResponseWriter, r *http.Request, user *model.User, expireTime time.Time) error {
	sSetting, err := h.store.GetOrUpsertSystemSecuritySetting()
	if err != nil {
		return errors.Wrap(err, "failed to get security setting")
	}
	if sSetting.JWTSecret == "" {
		return errors.New("JWT secret is not set")
	}

	accessToken, err := auth.GenerateAccessToken(user.Username, user.ID, expireTime, []byte(sSetting.JWTSecret))
	if err != nil {
		return errors.Wrap(err, "failed to generate access token")
	}

	if err := h.store.UpsertAccessToken(user.ID, accessToken, "User sign in"); err != nil {
		return errors.Wrap(err, "failed to update access token")
	}

	cookie := buildAccessTokenCookie(accessToken, expireTime, r.Header.Get("Origin"))
	w.Header().Set("Set-Cookie", cookie)
	return nil
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	accessToken := getAccessToken(r)

	if err := h.store.RemoveAccessToken(userID, accessToken); err != nil {
		log.Error("Failed to remove access token", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	// Expire the cookie
	cookie := buildAccessTokenCookie("", time.Time{}, r.Header.Get("Origin"))
	w.Header().Set("Set-Cookie", cookie)
	response.NoContent(w, r)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	userID := request.GetUserID(r)
	user, err := h.store.GetUser(&model.FindUser{ID: &userID})
	if err != nil {
		log.Error("Failed to get user", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if user == nil {
		response.Unauthorized(w, r)
		return
	}
	response.OK(w, r, response.UserResponse(user))
}

func buildAccessTokenCookie(accessToken string, expireTime time.Time, origin string) string {
	attrs := []string{
		fmt.Sprintf("%s=%s", auth.AccessTokenCookieName, accessToken),
		"Path=/",
		"HttpOnly",
	}
	if expireTime.IsZero() {
		attrs = append(attrs, "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
	} else {
		attrs = append(attrs, "Expires="+expireTime.Format(time.RFC1123))
	}

	if strings.HasPrefix(origin, "https://") {
		attrs = append(attrs, "Secure")
		attrs = append(attrs, "SameSite=None")
	} else {
		attrs = append(attrs, "SameSite=Lax")
	}
	return strings.Join(attrs, "; ")
}
