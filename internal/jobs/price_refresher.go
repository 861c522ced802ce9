package jobs

import (
	"context"
	"fmt"

	"github.com/Niffb/Livwishlist/internal/metadata"
	"github.com/Niffb/Livwishlist/internal/services"
	"github.com/sirupsen/logrus"
)

// PriceRefresher re-runs metadata extraction over the stored items and
// records price changes, so the list does not drift from what shops
// currently charge.
type PriceRefresher struct {
	ItemService *services.ItemService
	Client      *metadata.Client
}

// NewPriceRefresher creates a new instance of PriceRefresher.
func NewPriceRefresher(itemService *services.ItemService, client *metadata.Client) *PriceRefresher {
	return &PriceRefresher{
		ItemService: itemService,
		Client:      client,
	}
}

// RunScan walks every item sequentially and updates the stored price when a
// fresh lookup detects a different one. Extraction failures are skipped;
// sites that block scrapers simply keep their last known price.
func (p *PriceRefresher) RunScan(ctx context.Context) error {
	items, err := p.ItemService.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch items: %v", err)
	}

	updated := 0
	for _, item := range items {
		if item.URL == "" {
			continue
		}

		data, err := p.Client.Fetch(ctx, item.URL)
		if err != nil {
			logrus.WithError(err).WithField("itemID", item.ID).Debug("Skipping price refresh for item")
			continue
		}

		price := services.DetectPrice(data)
		if price == "" || price == item.Price {
			continue
		}

		if err := p.ItemService.UpdateItem(ctx, item.ID, map[string]interface{}{"price": price}); err != nil {
			logrus.WithError(err).WithField("itemID", item.ID).Error("Failed to update refreshed price")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"itemID":   item.ID,
			"oldPrice": item.Price,
			"newPrice": price,
		}).Info("Refreshed item price")
		updated++
	}

	logrus.WithFields(logrus.Fields{
		"scanned": len(items),
		"updated": updated,
	}).Info("Price refresh scan complete")
	return nil
}
