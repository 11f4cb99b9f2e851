package service

import (
	"context"
	"time"
)

// StartCatalogRefresher reloads the catalog snapshot every interval. It blocks
// until the context is cancelled, so it should be launched in a separate
// goroutine. A failed reload keeps serving the previous snapshot.
func (s *Service) StartCatalogRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Infof("Catalog refresher started (every %s)", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Catalog refresher stopped")
			return
		case <-ticker.C:
			if err := s.Reload(ctx); err != nil {
				s.logger.WithError(err).Error("Failed to refresh catalog")
			}
		}
	}
}
