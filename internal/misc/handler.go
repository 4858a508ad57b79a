package misc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/coachportal/internal/auth"
	"github.com/2beens/coachportal/internal/middleware"
	"github.com/2beens/coachportal/internal/telemetry/metrics"
	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=misc_mocks_test.go -package=misc_test

const (
	wrongCredentialsMsg = "Invalid email or password."
	unexpectedErrorMsg  = "An unexpected error occurred. Please try again."

	LoginMethodPassword = "password"
	LoginMethodGoogle   = "google"
)

type identity interface {
	SignIn(ctx context.Context, email, password string) (auth.Session, error)
	SignInWithGoogle(ctx context.Context, idToken string) (auth.Session, error)
	SignOut(ctx context.Context, token string) (bool, error)
}

type loginRecorder interface {
	RecordLogin(ctx context.Context, r *http.Request, uid, email, method string) error
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type Handler struct {
	identity       identity
	logins         loginRecorder
	versionInfo    string
	metricsManager *metrics.Manager
}

func NewHandler(
	identity identity,
	logins loginRecorder,
	versionInfo string,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		identity:       identity,
		logins:         logins,
		versionInfo:    versionInfo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginsPerMinute int,
	allowedOrigins []string,
) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")

	loginSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	loginSubrouter.
		HandleFunc("/login", handler.handleLogin).
		Methods("POST", "OPTIONS").Name("login")
	loginSubrouter.
		HandleFunc("/login/google", handler.handleGoogleLogin).
		Methods("POST", "OPTIONS").Name("login-google")
	loginSubrouter.
		HandleFunc("/logout", handler.handleLogout).
		Methods("GET", "OPTIONS").Name("logout")

	// rate limit the sign in endpoints to prevent abuse
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginsPerMinute, handler.metricsManager))
	loginSubrouter.Use(middleware.Cors(allowedOrigins))
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func allowOptions(w http.ResponseWriter, r *http.Request, allow string) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	w.Header().Add("Allow", allow)
	w.WriteHeader(http.StatusOK)
	return true
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func readLoginRequest(r *http.Request) (loginRequest, error) {
	var loginReq loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			return loginRequest{}, err
		}
		return loginReq, nil
	}
	if err := r.ParseForm(); err != nil {
		return loginRequest{}, err
	}
	return loginRequest{
		Email:    r.Form.Get("email"),
		Password: r.Form.Get("password"),
	}, nil
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.login")
	defer span.End()

	if allowOptions(w, r, "POST, OPTIONS") {
		return
	}

	loginReq, err := readLoginRequest(r)
	if err != nil {
		log.Errorf("login, read request: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := handler.identity.SignIn(ctx, loginReq.Email, loginReq.Password)
	handler.finishLogin(ctx, w, r, session, err, LoginMethodPassword)
}

func (handler *Handler) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.loginGoogle")
	defer span.End()

	if allowOptions(w, r, "POST, OPTIONS") {
		return
	}

	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := handler.identity.SignInWithGoogle(ctx, req.IDToken)
	handler.finishLogin(ctx, w, r, session, err, LoginMethodGoogle)
}

func (handler *Handler) finishLogin(
	ctx context.Context,
	w http.ResponseWriter,
	r *http.Request,
	session auth.Session,
	err error,
	method string,
) {
	outcome := "ok"
	defer func() {
		if handler.metricsManager != nil {
			handler.metricsManager.CounterLogins.WithLabelValues(method, outcome).Inc()
		}
	}()

	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		outcome = "rejected"
		http.Error(w, "Please enter your email and password.", http.StatusBadRequest)
		return
	case errors.Is(err, auth.ErrWrongCredentials):
		outcome = "rejected"
		log.Tracef("[%s] failed login attempt", method)
		http.Error(w, wrongCredentialsMsg, http.StatusUnauthorized)
		return
	case errors.Is(err, auth.ErrGoogleDisabled):
		outcome = "rejected"
		http.Error(w, "Google sign-in is not available.", http.StatusNotFound)
		return
	case err != nil:
		outcome = "error"
		log.Errorf("[%s] login failed: %s", method, err)
		http.Error(w, unexpectedErrorMsg, http.StatusInternalServerError)
		return
	}

	if err := handler.logins.RecordLogin(ctx, r, session.UserID, session.Email, method); err != nil {
		log.Warnf("record login for %s: %s", session.UserID, err)
	}

	log.Tracef("[%s] new login success for %s", method, session.UserID)
	pkg.WriteJSON(w, LoginResponse{
		Token:  session.Token,
		UserID: session.UserID,
	}, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.logout")
	defer span.End()

	if allowOptions(w, r, "GET, OPTIONS") {
		return
	}

	authToken := r.Header.Get(middleware.AuthTokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.identity.SignOut(ctx, authToken)
	if err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	log.Debug("logout success")
	pkg.WriteTextResponseOK(w, "logged-out")
}
