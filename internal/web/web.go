package web

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	embedded "kitserver"
	authservice "kitserver/auth/service"
	"kitserver/auth/users"
	"kitserver/internal/config"
	"kitserver/internal/domain"
	"kitserver/internal/service"
	"kitserver/internal/storage"
	"kitserver/internal/web/webpath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Server struct {
	auth       *authservice.Service
	kitService *service.KitService
	app        *fiber.App
	cfg        config.Server
	log        *logrus.Entry
	notify     func(msg string)
}

func New(l *logrus.Logger, cfg config.Server, kitService *service.KitService, authService *authservice.Service, notify func(msg string)) (*Server, error) {
	if notify == nil {
		notify = func(string) {}
	}
	server := Server{
		auth:       authService,
		kitService: kitService,
		cfg:        cfg,
		log:        l.WithField("from", "web"),
		notify:     notify,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: server.handleError,
	})
	app.Static("/", "./public")
	app.Use(server.withUser)

	app.Get(webpath.Home, server.handleIndex)
	app.Get(webpath.Login, server.handleSignInGet)
	app.Post(webpath.Login, server.handleSignInPost)
	app.Get(webpath.Signup, server.handleSignupGet)
	app.Post(webpath.Signup, server.handleSignupPost)
	app.Get(webpath.Logout, server.handleLogout)

	kits := app.Group(webpath.Kits, server.requireAuthenticated)
	kits.Get("/", server.handleKits)
	kits.Get("/new", server.handleNewKitGet)
	kits.Post("/", server.handleNewKitPost)
	kits.Get("/:id", server.handleKitCard)
	kits.Post("/:id/delete", server.handleDeleteKit)

	app.Get(webpath.Admin, server.requireAuthenticated, server.requireRole(users.RoleAdmin), server.handleAdmin)

	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

const userKey = "user"

func currentUser(ctx *fiber.Ctx) users.User {
	user, _ := ctx.Context().UserValue(userKey).(users.User)
	return user
}

// withUser restores the principal from the session cookie on every
// request. Missing or expired sessions degrade to anonymous.
func (s *Server) withUser(ctx *fiber.Ctx) error {
	token := ctx.Cookies(authservice.SessionCookieName)
	user, err := s.auth.Authenticate(ctx.Context(), token)
	if err != nil {
		return err
	}
	ctx.Context().SetUserValue(userKey, user)
	return ctx.Next()
}

// requireAuthenticated sends anonymous requests to the login page.
func (s *Server) requireAuthenticated(ctx *fiber.Ctx) error {
	if currentUser(ctx).IsZero() {
		return ctx.Redirect(webpath.Login)
	}
	return ctx.Next()
}

// requireRole assumes requireAuthenticated ran before it, but guards
// the anonymous case anyway instead of faulting on a missing principal.
func (s *Server) requireRole(role users.Role) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user := currentUser(ctx)
		if user.IsZero() || user.Role != role {
			return authservice.ErrForbidden
		}
		return ctx.Next()
	}
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, authservice.ErrForbidden):
		code = fiber.StatusForbidden
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	default:
		s.log.WithError(err).Error("request failed")
	}
	renderErr := ctx.Status(code).Render("error", newData("Error").
		WithUser(currentUser(ctx)).
		WithErrors(err), "layouts/main")
	if renderErr != nil {
		return ctx.SendString(err.Error())
	}
	return nil
}

func (s *Server) handleIndex(ctx *fiber.Ctx) error {
	kits, err := s.kitService.ListKits(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("index", newData("Model kits").
		WithUser(currentUser(ctx)).
		With("Kits", kits), "layouts/main")
}

func (s *Server) handleSignInGet(ctx *fiber.Ctx) error {
	return ctx.Render("signin", newData("Sign in").
		WithUser(currentUser(ctx)), "layouts/main")
}

func (s *Server) handleSignInPost(ctx *fiber.Ctx) error {
	req, err := parseSignInRequest(ctx)
	if err != nil {
		return ctx.Render("signin", newData("Sign in").WithErrors(err), "layouts/main")
	}
	user, err := s.auth.SignIn(ctx.Context(), req.nickname, req.password)
	if err != nil {
		if errors.Is(err, authservice.ErrInvalidCredentials) {
			return ctx.Render("signin", newData("Sign in").WithErrors(err), "layouts/main")
		}
		return err
	}
	err = s.startSession(ctx, user)
	if err != nil {
		return err
	}
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleSignupGet(ctx *fiber.Ctx) error {
	return ctx.Render("signup", newData("Sign up").
		WithUser(currentUser(ctx)), "layouts/main")
}

func (s *Server) handleSignupPost(ctx *fiber.Ctx) error {
	req, err := parseSignupRequest(ctx)
	if err != nil {
		return ctx.Render("signup", newData("Sign up").WithErrors(err), "layouts/main")
	}
	user, err := s.auth.SignUp(ctx.Context(), req.nickname, req.password, req.fullName)
	if err != nil {
		if errors.Is(err, authservice.ErrNicknameTaken) {
			return ctx.Render("signup", newData("Sign up").WithErrors(err), "layouts/main")
		}
		return err
	}
	s.notify("new user signed up: " + user.Nickname)
	err = s.startSession(ctx, user)
	if err != nil {
		return err
	}
	return ctx.Redirect(webpath.Kits)
}

func (s *Server) startSession(ctx *fiber.Ctx, user users.User) error {
	session, err := s.auth.StartSession(ctx.Context(), user.ID)
	if err != nil {
		return err
	}
	ctx.Cookie(s.auth.SessionCookie(session))
	return nil
}

func (s *Server) handleLogout(ctx *fiber.Ctx) error {
	token := ctx.Cookies(authservice.SessionCookieName)
	if token != "" {
		if err := s.auth.Logout(ctx.Context(), token); err != nil {
			return err
		}
	}
	ctx.ClearCookie(authservice.SessionCookieName)
	return ctx.Redirect(webpath.Home)
}

func (s *Server) handleKits(ctx *fiber.Ctx) error {
	kits, err := s.kitService.ListKits(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("kits", newData("My collection").
		WithUser(currentUser(ctx)).
		With("Kits", kits), "layouts/main")
}

func (s *Server) handleNewKitGet(ctx *fiber.Ctx) error {
	return ctx.Render("newKit", newData("Add model kit").
		WithUser(currentUser(ctx)), "layouts/main")
}

func (s *Server) handleNewKitPost(ctx *fiber.Ctx) error {
	req, err := parseNewKitRequest(ctx)
	if err != nil {
		return ctx.Render("newKit", newData("Add model kit").
			WithUser(currentUser(ctx)).
			WithErrors(err), "layouts/main")
	}
	_, err = s.kitService.CreateKit(ctx.Context(), domain.ModelKit{
		Name:    req.name,
		Brand:   req.brand,
		Scale:   req.scale,
		OwnerID: currentUser(ctx).ID,
	})
	if err != nil {
		return err
	}
	return ctx.Redirect(webpath.Kits)
}

func (s *Server) handleKitCard(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}
	kit, err := s.kitService.GetKit(ctx.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrKitNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	return ctx.Render("kitCard", newData(kit.Name).
		WithUser(currentUser(ctx)).
		With("Kit", kit), "layouts/main")
}

func (s *Server) handleDeleteKit(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}
	err = s.kitService.DeleteKit(ctx.Context(), id, currentUser(ctx))
	if err != nil {
		if errors.Is(err, storage.ErrKitNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}
	return ctx.Redirect(webpath.Kits)
}

func (s *Server) handleAdmin(ctx *fiber.Ctx) error {
	list, err := s.auth.ListUsers(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Render("admin", newData("Users").
		WithUser(currentUser(ctx)).
		With("Users", list), "layouts/main")
}

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}
