package sample

import (
	"encoding/json"
	"math/rand"

	"github.com/Harishez/data-voyage-visualizer/internal/domain"
)

const (
	appVersion     = "3.7.0"
	firstGenDevice = 2141999127690
)

// Events returns the five reference records
func Events() []domain.RawEvent {
	return []domain.RawEvent{
		{
			Properties: `{"isPriceListApplied":false,"itemsInCart":18,"isOfferApplied":true,"inventoryCount":349,"time":0}`,
			AppVersion: appVersion,
			DeviceID:   2141999127683,
			Platform:   "Android",
			OSVersion:  "10",
		},
		{
			Properties: `{"isPriceListApplied":false,"itemsInCart":19,"isOfferApplied":true,"inventoryCount":329,"time":0}`,
			AppVersion: appVersion,
			DeviceID:   2141999127683,
			Platform:   "Android",
			OSVersion:  "10",
		},
		{
			Properties: `{"isPriceListApplied":true,"itemsInCart":12,"isOfferApplied":false,"inventoryCount":245,"time":10}`,
			AppVersion: appVersion,
			DeviceID:   2141999127684,
			Platform:   "iOS",
			OSVersion:  "14",
		},
		{
			Properties: `{"isPriceListApplied":true,"itemsInCart":8,"isOfferApplied":false,"inventoryCount":120,"time":15}`,
			AppVersion: appVersion,
			DeviceID:   2141999127685,
			Platform:   "Android",
			OSVersion:  "11",
		},
		{
			Properties: `{"isPriceListApplied":false,"itemsInCart":22,"isOfferApplied":false,"inventoryCount":80,"time":20}`,
			AppVersion: appVersion,
			DeviceID:   2141999127686,
			Platform:   "iOS",
			OSVersion:  "15",
		},
	}
}

type properties struct {
	IsPriceListApplied bool `json:"isPriceListApplied"`
	ItemsInCart        int  `json:"itemsInCart"`
	IsOfferApplied     bool `json:"isOfferApplied"`
	InventoryCount     int  `json:"inventoryCount"`
	Time               int  `json:"time"`
}

// Generate returns the reference records followed by n random ones drawn from rng
func Generate(n int, rng *rand.Rand) []domain.RawEvent {
	events := Events()

	for i := 0; i < n; i++ {
		props := properties{
			IsPriceListApplied: rng.Float64() > 0.5,
			IsOfferApplied:     rng.Float64() > 0.5,
			ItemsInCart:        rng.Intn(30) + 1,
			InventoryCount:     rng.Intn(500) + 50,
			Time:               rng.Intn(100),
		}
		blob, _ := json.Marshal(props)

		platform := "iOS"
		if rng.Float64() > 0.5 {
			platform = "Android"
		}
		osVersion := "15"
		if rng.Float64() > 0.5 {
			osVersion = "10"
		}

		events = append(events, domain.RawEvent{
			Properties: string(blob),
			AppVersion: appVersion,
			DeviceID:   firstGenDevice + int64(i),
			Platform:   platform,
			OSVersion:  osVersion,
		})
	}

	return events
}
