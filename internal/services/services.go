// package services defines interface Source for reading the reference station list
package services

import (
	"context"

	"github.com/desertthunder/stationer/internal/models"
)

// Source supplies the reference station collection.
type Source interface {
	// Fetch retrieves every station published by the source, in source order.
	Fetch(ctx context.Context) ([]models.Station, error)

	// Name returns a short label for log lines and listings
	Name() string
}
