package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/streamvault/streaming-api/internal/core/ports"
)

// BeaconDispatcher is the interface the handler uses to enqueue progress
// beacons for asynchronous processing.
type BeaconDispatcher interface {
	Enqueue(event ports.PlaybackProgressEvent)
	EnqueueBatch(events []ports.PlaybackProgressEvent)
}

// PlaybackEventHandler handles asynchronous progress beacon ingestion.
type PlaybackEventHandler struct {
	dispatcher BeaconDispatcher
}

// NewPlaybackEventHandler creates a PlaybackEventHandler backed by the given
// dispatcher.
func NewPlaybackEventHandler(dispatcher BeaconDispatcher) *PlaybackEventHandler {
	return &PlaybackEventHandler{dispatcher: dispatcher}
}

type playbackEventRequest struct {
	PlaybackID      string    `json:"playback_id"      validate:"required"`
	ProgressSeconds int       `json:"progress_seconds" validate:"gte=0"`
	Timestamp       time.Time `json:"timestamp"        validate:"required"`
	Source          string    `json:"source"           validate:"required"`
}

func toProgressEvent(userID string, r playbackEventRequest) ports.PlaybackProgressEvent {
	return ports.PlaybackProgressEvent{
		UserID:          userID,
		PlaybackID:      r.PlaybackID,
		ProgressSeconds: r.ProgressSeconds,
		Timestamp:       r.Timestamp,
		Source:          r.Source,
	}
}

// Receive handles POST /v1/playback-events — enqueues a single beacon, returns 202.
//
// @Summary      Ingest a single progress beacon
// @Tags         playback-events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      playbackEventRequest  true  "Progress beacon"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/playback-events [post]
func (h *PlaybackEventHandler) Receive(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req playbackEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toProgressEvent(identity.UserID, req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "beacon accepted"})
}

// ReceiveBatch handles POST /v1/playback-events/batch — enqueues a batch, returns 202.
//
// @Summary      Ingest a batch of progress beacons
// @Tags         playback-events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []playbackEventRequest  true  "Array of progress beacons"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/playback-events/batch [post]
func (h *PlaybackEventHandler) ReceiveBatch(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var reqs []playbackEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	events := make([]ports.PlaybackProgressEvent, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		events = append(events, toProgressEvent(identity.UserID, req))
	}

	h.dispatcher.EnqueueBatch(events)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "beacons accepted",
		Count:   len(events),
	})
}
