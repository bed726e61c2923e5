package mazeapi

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-walker/maze"
	"github.com/beka-birhanu/vinom-walker/minimap"
	"github.com/beka-birhanu/vinom-walker/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController serves maze generation and projection routes.
type MazeController struct {
	mazeService     i.MazeService
	defaultViewport minimap.Size
}

// NewMazeController initializes a MazeController. minimapSize is the side of
// the PNG minimap when the request gives none.
func NewMazeController(ms i.MazeService, minimapSize float64) (*MazeController, error) {
	if ms == nil {
		return nil, errors.New("maze controller needs a maze service")
	}
	return &MazeController{
		mazeService:     ms,
		defaultViewport: minimap.Size{W: minimapSize, H: minimapSize},
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.GET("", mc.list)
		mazes.GET("/:id", mc.maze)
		mazes.GET("/:id/cells/:row/:col", mc.cell)
		mazes.GET("/:id/geometry", mc.geometry)
		mazes.GET("/:id/solution", mc.solution)
		mazes.POST("/:id/minimap", mc.minimap)
		mazes.GET("/:id/minimap.png", mc.minimapPNG)
	}
}

// generate handles maze generation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, m, err := mc.mazeService.Generate(ctx.Request.Context(), i.GenerateRequest{
		Rows:      request.Rows,
		Cols:      request.Cols,
		Seed:      request.Seed,
		Algorithm: request.Algorithm,
		OpenEnds:  request.OpenEnds,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, newMazeResponse(id, m))
}

// list returns the most recent maze IDs.
func (mc *MazeController) list(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	ids, err := mc.mazeService.List(ctx.Request.Context(), limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &ListResponse{IDs: ids})
}

// maze returns a maze summary with its ASCII layout.
func (mc *MazeController) maze(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	m, err := mc.mazeService.Maze(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newMazeResponse(id, m))
}

// cell returns the walls of a single cell.
func (mc *MazeController) cell(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	row, rowErr := strconv.Atoi(ctx.Param("row"))
	col, colErr := strconv.Atoi(ctx.Param("col"))
	if rowErr != nil || colErr != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "row and col must be integers"})
		return
	}

	c, err := mc.mazeService.CellAt(ctx.Request.Context(), id, row, col)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newCellResponse(row, col, c))
}

// geometry returns the scene placements of a maze.
func (mc *MazeController) geometry(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	placements, err := mc.mazeService.Geometry(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newGeometryResponse(placements))
}

// solution returns the entrance to exit path of a maze.
func (mc *MazeController) solution(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	path, err := mc.mazeService.Solution(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newSolutionResponse(path))
}

// minimap returns the drawing commands of a minimap redraw.
func (mc *MazeController) minimap(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var request MinimapRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := mc.mazeService.Minimap(ctx.Request.Context(), id, request.Pose, request.Viewport)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, newDrawingResponse(d))
}

// minimapPNG returns a rasterized minimap.
func (mc *MazeController) minimapPNG(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var query MinimapQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	viewport := mc.defaultViewport
	if query.W != 0 || query.H != 0 {
		viewport = minimap.Size{W: query.W, H: query.H}
	}
	if err := viewport.CheckRaster(); err != nil {
		writeError(ctx, err)
		return
	}
	pose := query.Pose()
	if pose != nil {
		if err := pose.Validate(); err != nil {
			writeError(ctx, err)
			return
		}
	}

	d, err := mc.mazeService.Minimap(ctx.Request.Context(), id, pose, viewport)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := minimap.RenderPNG(d, &buf); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors onto HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, maze.ErrUnknownAlgorithm),
		errors.Is(err, minimap.ErrInvalidViewport),
		errors.Is(err, minimap.ErrInvalidPose):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrOutOfBounds),
		errors.Is(err, i.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrMazeExists):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}
