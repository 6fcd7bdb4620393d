package model

import (
	"github.com/agroclima/agroclima/internal/model/entities"
	"github.com/agroclima/agroclima/internal/model/messages"
)

// Alias per esporre tipi comuni ai servizi

type (
	WeatherRecord     = entities.WeatherRecord
	PlantProfile      = entities.PlantProfile
	StepResult        = entities.StepResult
	PlantSeries       = entities.PlantSeries
	ValidationError   = entities.ValidationError
	LookupError       = entities.LookupError
	PlantResultEvent  = messages.PlantResultEvent
	RunCompletedEvent = messages.RunCompletedEvent
)
