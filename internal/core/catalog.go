package core

import (
	"fmt"

	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// Catalog is the static set of missions available to the player, kept in
// load order.
type Catalog struct {
	missions []models.Mission
	byID     map[string]int
}

// NewCatalog validates every mission and builds a catalog. Duplicate ids are
// rejected with ErrInvalidMission.
func NewCatalog(missions []models.Mission) (*Catalog, error) {
	c := &Catalog{
		missions: make([]models.Mission, 0, len(missions)),
		byID:     make(map[string]int, len(missions)),
	}
	for _, m := range missions {
		if err := ValidateMission(m); err != nil {
			return nil, err
		}
		if _, dup := c.byID[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate mission id %q", ErrInvalidMission, m.ID)
		}
		c.byID[m.ID] = len(c.missions)
		c.missions = append(c.missions, m.Clone())
	}
	return c, nil
}

// Len returns the number of missions.
func (c *Catalog) Len() int {
	return len(c.missions)
}

// List returns copies of all missions in catalog order.
func (c *Catalog) List() []models.Mission {
	out := make([]models.Mission, len(c.missions))
	for i, m := range c.missions {
		out[i] = m.Clone()
	}
	return out
}

// Get looks a mission up by id.
func (c *Catalog) Get(id string) (models.Mission, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Mission{}, fmt.Errorf("%w: %s", ErrMissionNotFound, id)
	}
	return c.missions[i].Clone(), nil
}
