package providers

import (
	"time"

	"weatherdash.app/models"
)

type ForecastLoggerDecorator struct {
	wrappedProvider ForecastProvider
	logger          FileLogger
	providerName    string
}

func NewForecastLoggerDecorator(provider ForecastProvider, logger FileLogger, providerName string) ForecastProvider {
	return &ForecastLoggerDecorator{
		wrappedProvider: provider,
		logger:          logger,
		providerName:    providerName,
	}
}

func (d *ForecastLoggerDecorator) FetchForecast(coords models.Coordinates) (*RawForecast, error) {
	d.logger.LogRequest(d.providerName, coords)
	startTime := time.Now()

	raw, err := d.wrappedProvider.FetchForecast(coords)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.LogError(d.providerName, coords, err, duration)
		return nil, err
	}

	d.logger.LogResponse(d.providerName, coords, raw, duration)
	return raw, nil
}
