package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/pitch"
)

const (
	defaultPathSteps = 30
	maxPathSteps     = 1000
)

type pitchSummary struct {
	ID        string `json:"id"`
	PitchType string `json:"pitch_type"`
	Name      string `json:"name"`
	Color     string `json:"color"`
}

type plateCrossing struct {
	Reached  bool        `json:"reached"`
	Time     float64     `json:"time,omitempty"`
	Position *pitch.Vec3 `json:"position,omitempty"`
	Speed    float64     `json:"speed,omitempty"`
	Travel   float64     `json:"travel,omitempty"`
}

func hexColor(c uint32) string {
	return fmt.Sprintf("#%06x", c)
}

// catalogError maps lookup failures onto HTTP statuses.
func catalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrTeamNotFound),
		errors.Is(err, catalog.ErrPitcherNotFound),
		errors.Is(err, catalog.ErrPitchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ListTeams returns every team in sorted order.
func ListTeams(holder *catalog.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"teams": holder.Get().Teams()})
	}
}

// ListPitchers returns the pitchers of one team.
func ListPitchers(holder *catalog.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		team := c.Param("team")
		pitchers, err := holder.Get().Pitchers(team)
		if err != nil {
			catalogError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"team": team, "pitchers": pitchers})
	}
}

// ListPitches returns the pitches of one pitcher with their type and colour.
func ListPitches(holder *catalog.Holder) gin.HandlerFunc {
	return func(c *gin.Context) {
		team, pitcher := c.Param("team"), c.Param("pitcher")
		cat := holder.Get()

		ids, err := cat.PitchIDs(team, pitcher)
		if err != nil {
			catalogError(c, err)
			return
		}

		out := make([]pitchSummary, 0, len(ids))
		for _, id := range ids {
			rec, err := cat.Pitch(team, pitcher, id)
			if err != nil {
				catalogError(c, err)
				return
			}
			out = append(out, pitchSummary{
				ID:        id,
				PitchType: rec.PitchType,
				Name:      pitch.Name(rec.PitchType),
				Color:     hexColor(rec.Color()),
			})
		}
		c.JSON(http.StatusOK, gin.H{"team": team, "pitcher": pitcher, "pitches": out})
	}
}

// GetPitch returns one record plus its release point, release speed and
// plate crossing. Speeds are in ft/s and travel in feet.
func GetPitch(holder *catalog.Holder, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		team, pitcher, id := c.Param("team"), c.Param("pitcher"), c.Param("id")
		rec, err := holder.Get().Pitch(team, pitcher, id)
		if err != nil {
			catalogError(c, err)
			return
		}

		kin := pitch.NewKinematics(rec, cfg.PlateY)
		crossing := plateCrossing{}
		if pos, t, ok := kin.PlateCrossing(cfg.PlateY); ok {
			crossing = plateCrossing{
				Reached:  true,
				Time:     t,
				Position: &pos,
				Speed:    kin.VelocityAt(t).Magnitude(),
				Travel:   kin.Release.DistanceTo(pos),
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"id":             id,
			"team":           team,
			"pitcher":        pitcher,
			"record":         rec,
			"name":           pitch.Name(rec.PitchType),
			"known_type":     pitch.KnownType(rec.PitchType),
			"color":          hexColor(rec.Color()),
			"release_point":  kin.Release,
			"release_speed":  kin.VelocityAt(0).Magnitude(),
			"plate_crossing": crossing,
			"duration":       cfg.PitchDuration,
		})
	}
}

// GetPitchPath samples the flight at steps+1 evenly spaced times.
func GetPitchPath(holder *catalog.Holder, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		steps := defaultPathSteps
		if s := c.Query("steps"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n > maxPathSteps {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("steps must be an integer between 1 and %d", maxPathSteps)})
				return
			}
			steps = n
		}

		rec, err := holder.Get().Pitch(c.Param("team"), c.Param("pitcher"), c.Param("id"))
		if err != nil {
			catalogError(c, err)
			return
		}

		points, err := pitch.NewKinematics(rec, cfg.PlateY).Sample(cfg.PitchDuration, steps)
		if errors.Is(err, pitch.ErrInvalidSteps) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":       c.Param("id"),
			"duration": cfg.PitchDuration,
			"steps":    steps,
			"points":   points,
		})
	}
}
