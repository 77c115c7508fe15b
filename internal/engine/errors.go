package engine

import (
	"errors"
	"fmt"
)

// Sorting errors. Every failure aborts the whole run.
var (
	ErrGameDoesNotFit             = errors.New("does not fit")
	ErrGameDoesNotFitVertically   = errors.New("does not fit vertically")
	ErrGameDoesNotFitHorizontally = errors.New("does not fit horizontally")
	ErrNotEnoughSpace             = errors.New("there is not enough space in shelves for the games")
)

// FitError reports a game that can never fit the shelf template under the
// active placement and rotation.
type FitError struct {
	Game string
	Err  error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("game %q %s", e.Game, e.Err)
}

func (e *FitError) Unwrap() error {
	return e.Err
}

func fitError(game string, err error) error {
	return &FitError{Game: game, Err: err}
}

// GameName extracts the offending game's name from a sorting error, if any.
func GameName(err error) string {
	var fe *FitError
	if errors.As(err, &fe) {
		return fe.Game
	}
	var se *spaceError
	if errors.As(err, &se) {
		return se.game
	}
	return ""
}

// spaceError marks the first game no shelf had room for.
type spaceError struct {
	game string
}

func (e *spaceError) Error() string {
	return fmt.Sprintf("%s (first unplaced game %q)", ErrNotEnoughSpace, e.game)
}

func (e *spaceError) Unwrap() error {
	return ErrNotEnoughSpace
}
