package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Harishez/data-voyage-visualizer/docs"
	"github.com/Harishez/data-voyage-visualizer/internal/dto"
	"github.com/Harishez/data-voyage-visualizer/internal/service"
)

type Handler struct {
	eventService    service.EventServicer
	explorerService service.ExplorerServicer
	router          *gin.Engine
	log             *zap.Logger
}

func NewHandler(eventService service.EventServicer, explorerService service.ExplorerServicer, log *zap.Logger) *Handler {
	h := &Handler{
		eventService:    eventService,
		explorerService: explorerService,
		router:          gin.Default(),
		log:             log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/events", h.publishEvent)
	h.router.POST("/events/bulk", h.publishEventsBulk)
	h.router.POST("/explore", h.explore)
	h.router.GET("/fields", h.fields)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// writeError answers 400 for caller mistakes and 500 for everything else
func (h *Handler) writeError(c *gin.Context, err error) {
	if service.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	})
}

func (h *Handler) bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}

// healthCheck handles GET /health
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// publishEvent handles POST /events
// @Summary Publish a single event
// @Description Publish a raw event with its property blob to the queue
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.PublishEventRequest true "Raw event"
// @Success 202 {object} dto.PublishEventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events [post]
func (h *Handler) publishEvent(c *gin.Context) {
	var req dto.PublishEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request", zap.Error(err))
		h.bindError(c, err)
		return
	}

	eventID, err := h.eventService.ProcessEvent(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to process event",
			zap.Error(err),
			zap.Int64("device_id", req.DeviceID),
			zap.String("platform", req.Platform))
		h.writeError(c, err)
		return
	}

	h.log.Info("Event accepted",
		zap.String("event_id", eventID),
		zap.Int64("device_id", req.DeviceID))

	c.JSON(http.StatusAccepted, dto.PublishEventResponse{
		EventID: eventID,
		Status:  "accepted",
	})
}

// publishEventsBulk handles POST /events/bulk
// @Summary Publish multiple events
// @Description Publish up to 1000 raw events in one request
// @Tags events
// @Accept json
// @Produce json
// @Param events body dto.PublishEventsBulkRequest true "Raw events"
// @Success 202 {object} dto.PublishBulkEventsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /events/bulk [post]
func (h *Handler) publishEventsBulk(c *gin.Context) {
	var bulkRequest dto.PublishEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		h.bindError(c, err)
		return
	}

	eventIDs, errors, err := h.eventService.ProcessBulkEvents(c.Request.Context(), bulkRequest.Events)
	if err != nil {
		h.log.Error("Failed to process bulk events",
			zap.Error(err),
			zap.Int("event_count", len(bulkRequest.Events)))
		h.writeError(c, err)
		return
	}

	h.log.Info("Bulk events processed",
		zap.Int("accepted", len(eventIDs)),
		zap.Int("rejected", len(errors)),
		zap.Int("total", len(bulkRequest.Events)))

	c.JSON(http.StatusAccepted, dto.PublishBulkEventsResponse{
		Accepted: len(eventIDs),
		Rejected: len(errors),
		EventIDs: eventIDs,
		Errors:   errors,
	})
}

// explore handles POST /explore
// @Summary Explore a batch of events
// @Description Filter, group and aggregate (or list) a batch of stored events
// @Tags explore
// @Accept json
// @Produce json
// @Param request body dto.ExploreRequest true "View configuration"
// @Success 200 {object} dto.ExploreResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /explore [post]
func (h *Handler) explore(c *gin.Context) {
	var req dto.ExploreRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid explore request", zap.Error(err))
		h.bindError(c, err)
		return
	}

	response, err := h.explorerService.Explore(c.Request.Context(), &req)
	if err != nil {
		if service.IsValidationError(err) {
			h.log.Warn("Rejected explore request", zap.Error(err))
		} else {
			h.log.Error("Failed to explore batch", zap.Error(err))
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// fields handles GET /fields
// @Summary List fields
// @Description List the property fields, their operators and the output modes
// @Tags explore
// @Produce json
// @Success 200 {object} dto.FieldsResponse
// @Router /fields [get]
func (h *Handler) fields(c *gin.Context) {
	c.JSON(http.StatusOK, h.explorerService.Fields())
}
