package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// Sorter places games on shelves first-fit, in input order.
type Sorter struct {
	Settings model.SortSettings
	log      *zap.Logger
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithLogger makes the sorter report each placement at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sorter) {
		if l != nil {
			s.log = l
		}
	}
}

func New(settings model.SortSettings, opts ...Option) *Sorter {
	s := &Sorter{Settings: settings, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sort is shorthand for New(settings).Sort(games).
func Sort(games []model.Game, settings model.SortSettings) ([]model.Shelf, error) {
	return New(settings).Sort(games)
}

// Sort distributes games over Settings.ShelfCount fresh shelves. The first
// game that cannot be placed aborts the run and no shelves are returned.
func (s *Sorter) Sort(games []model.Game) ([]model.Shelf, error) {
	if err := s.Settings.Validate(); err != nil {
		return nil, err
	}

	template := s.Settings.Template()
	shelves := make([]model.Shelf, s.Settings.ShelfCount)
	for i := range shelves {
		shelves[i] = model.EmptyShelf(template.Width, template.Height)
	}

	for _, game := range games {
		if err := s.place(template, game, shelves); err != nil {
			s.log.Debug("sort aborted", zap.String("game", game.Name), zap.Error(err))
			return nil, err
		}
	}
	return shelves, nil
}

// Run sorts and wraps the shelves with the settings that produced them.
func (s *Sorter) Run(games []model.Game) (model.SortResult, error) {
	shelves, err := s.Sort(games)
	if err != nil {
		return model.SortResult{}, err
	}
	return model.SortResult{Settings: s.Settings, Shelves: shelves}, nil
}

// place validates a game against the template, then commits it to the
// first shelf with room.
func (s *Sorter) place(template model.Shelf, game model.Game, shelves []model.Shelf) error {
	if err := checkRotationFit(template, game, s.Settings.Placement, s.Settings.Rotation); err != nil {
		return err
	}
	if err := checkDepthFit(template, game, s.Settings.Placement); err != nil {
		return err
	}

	idx, orientation := firstFreeShelf(shelves, game, s.Settings.Placement)
	if idx < 0 {
		return &spaceError{game: game.Name}
	}

	if s.Settings.Placement == model.PlacementFree {
		shelves[idx].AcceptOriented(game, orientation)
	} else {
		shelves[idx].Accept(game)
	}
	s.log.Debug("game placed",
		zap.String("game", game.Name),
		zap.Int("shelf", idx),
		zap.Stringer("orientation", orientation),
	)
	return nil
}

// checkRotationFit compares the game's front face, after rotation, with
// the shelf bounds.
func checkRotationFit(shelf model.Shelf, game model.Game, placement model.Placement, rotation model.Rotation) error {
	faceW, faceH := game.Face(rotation)
	fitsVertically := shelf.Height >= faceH
	fitsHorizontally := shelf.Width >= faceW

	if rotation == model.RotationFree {
		if !fitsVertically && !fitsHorizontally {
			return fitError(game.Name, ErrGameDoesNotFit)
		}
		return nil
	}

	switch placement {
	case model.PlacementVertical:
		if !fitsVertically {
			return fitError(game.Name, ErrGameDoesNotFitVertically)
		}
	case model.PlacementHorizontal:
		if !fitsHorizontally {
			return fitError(game.Name, ErrGameDoesNotFitHorizontally)
		}
	}
	return nil
}

// checkDepthFit verifies the game's depth fits an empty shelf along the
// packing axis.
func checkDepthFit(shelf model.Shelf, game model.Game, placement model.Placement) error {
	fitsAlongWidth := shelf.Width >= game.Depth
	fitsAlongHeight := shelf.Height >= game.Depth

	switch placement {
	case model.PlacementVertical:
		if !fitsAlongWidth {
			return fitError(game.Name, ErrGameDoesNotFitHorizontally)
		}
	case model.PlacementHorizontal:
		if !fitsAlongHeight {
			return fitError(game.Name, ErrGameDoesNotFitVertically)
		}
	case model.PlacementFree:
		if !fitsAlongWidth && !fitsAlongHeight {
			return fitError(game.Name, ErrGameDoesNotFit)
		}
	default:
		return fmt.Errorf("%w: placement %d", model.ErrInvalidSettings, int(placement))
	}
	return nil
}

// firstFreeShelf returns the index of the first shelf with room for the
// game, or -1, and the orientation the game takes there. When both
// orientations fit under free placement the game stands vertically.
func firstFreeShelf(shelves []model.Shelf, game model.Game, placement model.Placement) (int, model.Placement) {
	for i, shelf := range shelves {
		switch placement {
		case model.PlacementVertical:
			if shelf.AvailableWidth() >= game.Depth {
				return i, model.PlacementVertical
			}
		case model.PlacementHorizontal:
			if shelf.AvailableHeight() >= game.Depth {
				return i, model.PlacementHorizontal
			}
		case model.PlacementFree:
			canLie := shelf.AvailableWidth() >= game.Width && shelf.AvailableHeight() >= game.Depth
			canStand := shelf.AvailableWidth() >= game.Depth && shelf.AvailableHeight() >= game.Height
			if canLie && !canStand {
				return i, model.PlacementHorizontal
			}
			if canStand {
				return i, model.PlacementVertical
			}
		}
	}
	return -1, placement
}
