package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/playmatatu/pitchviz/internal/animation"
	"github.com/playmatatu/pitchviz/internal/scene"
	"github.com/playmatatu/pitchviz/internal/viewer"
	"github.com/rs/zerolog/log"
)

// Outbound message types.
const (
	TypeFrame   = "frame"
	TypeOptions = "options"
	TypeState   = "state"
	TypeError   = "error"
)

// OptionsData fills one select control.
type OptionsData struct {
	Control string      `json:"control"`
	Options interface{} `json:"options"`
}

// clientRenderer pushes a snapshot of the stage for every rendered frame.
type clientRenderer struct {
	c *Client
}

func (r clientRenderer) Render(s *scene.Stage) error {
	r.c.enqueue(TypeFrame, s.Snapshot())
	return nil
}

// clientControls mirrors the viewer controls onto the socket.
type clientControls struct {
	c *Client
}

func (cc clientControls) SetTeamOptions(teams []string) {
	cc.c.enqueue(TypeOptions, OptionsData{Control: "team", Options: nonNil(teams)})
}

func (cc clientControls) SetPitcherOptions(pitchers []string) {
	cc.c.enqueue(TypeOptions, OptionsData{Control: "pitcher", Options: nonNil(pitchers)})
}

func (cc clientControls) SetPitchOptions(options []viewer.PitchOption) {
	if options == nil {
		options = []viewer.PitchOption{}
	}
	cc.c.enqueue(TypeOptions, OptionsData{Control: "pitch", Options: options})
}

func (cc clientControls) ShowState(s viewer.Status) {
	cc.c.enqueue(TypeState, s)
}

func (cc clientControls) ShowError(err error) {
	cc.c.sendError(err.Error())
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// HandleWebSocket upgrades the request and starts a viewer session loaded
// with the current catalog.
func HandleWebSocket(h *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		loop, err := animation.NewLoop(h.cfg.FrameRateHz)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn().Str("component", "ws").Err(err).Msg("upgrade failed")
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		client := &Client{
			id:     uuid.NewString(),
			conn:   conn,
			send:   make(chan []byte, sendBuffer),
			quit:   make(chan struct{}),
			cancel: cancel,
			loop:   loop,
		}

		stage := scene.NewStage(h.cfg.PlateY)
		opts := animation.Options{PlateY: h.cfg.PlateY, Duration: h.cfg.PitchDuration}
		ctrl := animation.NewController(stage, loop, animation.NewStopwatch(nil), clientRenderer{client}, opts)
		client.session = viewer.NewSession(clientControls{client}, ctrl)

		select {
		case h.register <- client:
		case <-h.done:
			cancel()
			conn.Close()
			return
		}

		go func() {
			if err := loop.Run(ctx); err != nil && err != context.Canceled {
				log.Error().Str("component", "ws").Str("client", client.id).Err(err).Msg("loop stopped")
			}
		}()

		cat := h.holder.Get()
		loop.Post(func() {
			client.enqueue(TypeFrame, stage.Snapshot())
			client.session.Load(cat)
		})

		go client.writePump()
		go client.readPump(h)
	}
}
