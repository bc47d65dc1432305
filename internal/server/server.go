// Package server exposes dashboards over a small JSON HTTP API.
package server

import (
	"time"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/alexanderramin/chewy/internal/domain"
	"github.com/alexanderramin/chewy/internal/poller"
	"github.com/alexanderramin/chewy/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

type Deps struct {
	Boards     service.BoardService
	Dashboards service.DashboardService
	// Watcher, when set, keeps one board's dashboard warm for /api/state.
	Watcher *poller.Watcher
}

type Server struct {
	app    *fiber.App
	deps   Deps
	logger *zap.Logger
}

func New(deps Deps, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "chewy",
			DisableStartupMessage: true,
			ReadTimeout:           30 * time.Second,
		}),
		deps:   deps,
		logger: logger.Named("server"),
	}

	s.app.Use(recover.New())
	s.app.Use(requestid.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET",
	}))
	s.app.Use(RequestLogger(s.logger))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.health)

	api := s.app.Group("/api")
	api.Get("/boards", s.listBoards)
	api.Get("/boards/:id/dashboard", s.dashboard)
	api.Get("/state", s.state)
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) health(c *fiber.Ctx) error {
	return success(c, fiber.Map{"status": "ok"})
}

type boardsResponse struct {
	Boards    []domain.Board `json:"boards"`
	LastBoard string         `json:"last_board,omitempty"`
}

func (s *Server) listBoards(c *fiber.Ctx) error {
	list, err := s.deps.Boards.ListBoards(c.UserContext())
	if err != nil {
		return failure(c, err)
	}
	return success(c, boardsResponse{Boards: list.Boards, LastBoard: list.LastBoard})
}

// dashboard answers from the watcher when it watches the board and has a
// result. ?refresh=1 computes a fresh dashboard directly.
func (s *Server) dashboard(c *fiber.Ctx) error {
	boardID := c.Params("id")
	refresh := c.QueryBool("refresh")

	if w := s.deps.Watcher; w != nil && w.BoardID() == boardID && !refresh {
		if snap := w.Snapshot(); snap.Dashboard != nil {
			return success(c, snap.Dashboard)
		}
	}

	resp, err := s.deps.Dashboards.Calc(c.UserContext(), app.NewDashboardRequest(boardID))
	if err != nil {
		return failure(c, err)
	}
	return success(c, resp)
}

type stateResponse struct {
	BoardID   string                 `json:"board_id"`
	State     app.ViewState          `json:"state"`
	Dashboard *app.DashboardResponse `json:"dashboard,omitempty"`
	Error     *app.DashboardError    `json:"error,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
	Cycle     string                 `json:"cycle,omitempty"`
}

func (s *Server) state(c *fiber.Ctx) error {
	if s.deps.Watcher == nil {
		return c.Status(fiber.StatusNotFound).JSON(errorResponse{
			Error:   app.DashboardErrNoBoard,
			Message: "no board is being watched; start the server with --board",
		})
	}
	snap := s.deps.Watcher.Snapshot()
	out := stateResponse{
		BoardID:   snap.BoardID,
		State:     snap.State,
		Dashboard: snap.Dashboard,
		UpdatedAt: snap.UpdatedAt,
		Cycle:     snap.Cycle,
	}
	if snap.Err != nil {
		out.Error = app.NewDashboardError(snap.Err)
	}
	return success(c, out)
}
